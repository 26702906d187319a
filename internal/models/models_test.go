package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStateTempData(t *testing.T) {
	state := &UserState{UserID: 1, CurrentStep: StateAwaitingPhoto}

	assert.Equal(t, "", state.GetString(TempPhotoID))

	state.SetString(TempPhotoID, "photo-1")
	assert.Equal(t, "photo-1", state.GetString(TempPhotoID))

	// Значения не строкового типа читаются как пустая строка.
	state.TempData["count"] = 5
	assert.Equal(t, "", state.GetString("count"))

	var nilState *UserState
	assert.Equal(t, "", nilState.GetString(TempPhotoID))
}

func TestItemClone(t *testing.T) {
	item := &Item{
		ID:          "1",
		PhotoID:     "photo-1",
		Description: "Blue Shirt",
		Price:       "19.99",
		Comments:    []Comment{{User: "Alice", UserID: 10, Text: "hi"}},
	}

	clone := item.Clone()
	require.NotSame(t, item, clone)
	assert.Equal(t, item, clone)

	clone.Comments[0].Text = "changed"
	clone.Comments = append(clone.Comments, Comment{Text: "extra"})

	assert.Equal(t, "hi", item.Comments[0].Text)
	assert.Len(t, item.Comments, 1)
}
