package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storebot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	logger := zerolog.Nop()
	s, err := NewStore(path, &logger)
	require.NoError(t, err)
	return s, path
}

func TestStoreCreateAssignsSequentialIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := &models.Item{PhotoID: "p1", Description: "Blue Shirt", Price: "19.99"}
	second := &models.Item{PhotoID: "p2", Description: "Red Hat", Price: "5"}

	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, 2, s.Count(ctx))
}

func TestStoreIDsNotReusedAfterDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p1", Description: "a", Price: "1"}))
	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p2", Description: "b", Price: "2"}))
	require.NoError(t, s.Delete(ctx, "2"))

	third := &models.Item{PhotoID: "p3", Description: "c", Price: "3"}
	require.NoError(t, s.Create(ctx, third))

	assert.Equal(t, "3", third.ID)
}

func TestStoreGetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), "42")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStoreDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p1", Description: "a", Price: "1"}))

	err := s.Delete(ctx, "99")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 1, s.Count(ctx))
}

func TestStoreAppendCommentPreservesOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p1", Description: "a", Price: "1"}))

	require.NoError(t, s.AppendComment(ctx, "1", models.Comment{User: "Alice", UserID: 10, Text: "first"}))
	require.NoError(t, s.AppendComment(ctx, "1", models.Comment{User: "Bob", UserID: 20, Text: "second"}))

	item, err := s.Get(ctx, "1")
	require.NoError(t, err)
	require.Len(t, item.Comments, 2)
	assert.Equal(t, "first", item.Comments[0].Text)
	assert.Equal(t, "second", item.Comments[1].Text)

	err = s.AppendComment(ctx, "99", models.Comment{Text: "nope"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStoreReloadPreservesItems(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p1", Description: "Blue Shirt", Price: "19.99"}))
	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p2", Description: "Red Hat", Price: "5"}))
	require.NoError(t, s.AppendComment(ctx, "1", models.Comment{User: "Alice", UserID: 10, Text: "love it"}))

	logger := zerolog.Nop()
	reopened, err := NewStore(path, &logger)
	require.NoError(t, err)

	item, err := reopened.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Blue Shirt", item.Description)
	assert.Equal(t, "19.99", item.Price)
	assert.Equal(t, "p1", item.PhotoID)
	require.Len(t, item.Comments, 1)
	assert.Equal(t, "love it", item.Comments[0].Text)

	// The counter survives the restart too.
	third := &models.Item{PhotoID: "p3", Description: "c", Price: "3"}
	require.NoError(t, reopened.Create(ctx, third))
	assert.Equal(t, "3", third.ID)
}

func TestStoreEstablishesFileOnFirstRun(t *testing.T) {
	_, path := newTestStore(t)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreCorruptFileFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	logger := zerolog.Nop()
	s, err := NewStore(path, &logger)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, 0, s.Count(ctx))

	item := &models.Item{PhotoID: "p", Description: "d", Price: "1"}
	require.NoError(t, s.Create(ctx, item))
	assert.Equal(t, "1", item.ID)
}

func TestStoreLoadsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	legacy := `{
		"1": {"photo_id": "p1", "description": "Blue Shirt", "price": "19.99", "comments": []},
		"7": {"photo_id": "p7", "description": "Old Coat", "price": "40", "comments": [{"user": "Alice", "user_id": 10, "text": "hi"}]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	logger := zerolog.Nop()
	s, err := NewStore(path, &logger)
	require.NoError(t, err)

	ctx := context.Background()
	item, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Old Coat", item.Description)
	require.Len(t, item.Comments, 1)

	// Counter seeds past the highest numeric ID in the legacy file.
	created := &models.Item{PhotoID: "p", Description: "d", Price: "1"}
	require.NoError(t, s.Create(ctx, created))
	assert.Equal(t, "8", created.ID)
}

func TestStoreListSortedNumerically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	legacy := `{
		"10": {"photo_id": "a", "description": "ten", "price": "1", "comments": []},
		"2": {"photo_id": "b", "description": "two", "price": "1", "comments": []},
		"1": {"photo_id": "c", "description": "one", "price": "1", "comments": []}
	}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	logger := zerolog.Nop()
	s, err := NewStore(path, &logger)
	require.NoError(t, err)

	items := s.List(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Item{PhotoID: "p", Description: "d", Price: "1"}))

	item, err := s.Get(ctx, "1")
	require.NoError(t, err)
	item.Description = "mutated"
	item.Comments = append(item.Comments, models.Comment{Text: "sneaky"})

	fresh, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "d", fresh.Description)
	assert.Empty(t, fresh.Comments)
}
