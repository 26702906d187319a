package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"storebot/internal/models"

	"github.com/rs/zerolog"
)

var ErrItemNotFound = errors.New("item not found")

// document is the on-disk layout: a monotonic ID counter plus the item map.
// Files written by the previous generation of the bot held the bare item map;
// those still load, see loadLocked.
type document struct {
	NextID int64                   `json:"next_id"`
	Items  map[string]*models.Item `json:"items"`
}

// Store keeps the full item catalog in memory and mirrors it to a single JSON
// document on every mutation. Writes go through a temp file and rename, so a
// crash mid-write never leaves a corrupt store behind.
type Store struct {
	path   string
	logger *zerolog.Logger

	mu     sync.Mutex
	items  map[string]*models.Item
	nextID int64
}

// NewStore loads the document at path, creating it when absent. An unparsable
// file is logged and replaced with an empty catalog on the next mutation.
func NewStore(path string, logger *zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}

	s := &Store{
		path:   path,
		logger: logger,
		items:  make(map[string]*models.Item),
		nextID: 1,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// Establish the file right away so later save failures show up early.
		return s.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	var doc document
	if jsonErr := json.Unmarshal(data, &doc); jsonErr == nil && doc.Items != nil {
		s.items = doc.Items
		s.nextID = doc.NextID
		if s.nextID <= 0 {
			s.nextID = maxNumericID(s.items) + 1
		}
		return nil
	}

	// Legacy layout: the document is the item map itself.
	var legacy map[string]*models.Item
	if jsonErr := json.Unmarshal(data, &legacy); jsonErr == nil {
		s.items = legacy
		if s.items == nil {
			s.items = make(map[string]*models.Item)
		}
		s.nextID = maxNumericID(s.items) + 1
		return nil
	}

	s.logger.Error().Str("path", s.path).Msg("store file is not valid JSON, starting with an empty catalog")
	s.items = make(map[string]*models.Item)
	s.nextID = 1
	return nil
}

func maxNumericID(items map[string]*models.Item) int64 {
	var max int64
	for id := range items {
		n, err := strconv.ParseInt(id, 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return max
}

// saveLocked serializes the whole catalog and replaces the document in one
// rename. Caller must hold s.mu.
func (s *Store) saveLocked() error {
	doc := document{NextID: s.nextID, Items: s.items}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// persist logs save failures instead of propagating them: the mutation stays
// applied in memory and the fault is an operational problem, not the user's.
func (s *Store) persist() {
	if err := s.saveLocked(); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to persist item store")
	}
}

// Create assigns the next sequential ID to the item, stores it and persists.
// IDs come from a monotonic counter, so deleting an item never frees its ID
// for reuse.
func (s *Store) Create(ctx context.Context, item *models.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = strconv.FormatInt(s.nextID, 10)
	s.nextID++
	if item.Comments == nil {
		item.Comments = []models.Comment{}
	}
	s.items[item.ID] = item.Clone()
	s.persist()
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	clone := item.Clone()
	clone.ID = id
	return clone, nil
}

// List returns all items ordered by numeric ID.
func (s *Store) List(ctx context.Context) []*models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*models.Item, 0, len(s.items))
	for id, item := range s.items {
		clone := item.Clone()
		clone.ID = id
		items = append(items, clone)
	}

	sort.Slice(items, func(i, j int) bool {
		a, errA := strconv.ParseInt(items[i].ID, 10, 64)
		b, errB := strconv.ParseInt(items[j].ID, 10, 64)
		if errA != nil || errB != nil {
			return items[i].ID < items[j].ID
		}
		return a < b
	})
	return items
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	delete(s.items, id)
	s.persist()
	return nil
}

// AppendComment adds a comment to the end of the item's comment list and
// persists. Comments are immutable once appended.
func (s *Store) AppendComment(ctx context.Context, id string, comment models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	item.Comments = append(item.Comments, comment)
	s.persist()
	return nil
}

func (s *Store) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
