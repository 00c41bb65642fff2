package store

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/truthlens/internal/model"
)

// MemoryStore keeps results in process memory for the process lifetime.
// It stores and hands out copies, so callers cannot alter a stored result.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a memory store whose entries never expire
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a result by id
func (s *MemoryStore) Get(_ context.Context, id string) (*model.AnalysisResult, error) {
	if val, found := s.cache.Get(id); found {
		return val.(*model.AnalysisResult).Clone(), nil
	}
	return nil, ErrNotFound
}

// Put stores a result; an id can only be written once
func (s *MemoryStore) Put(_ context.Context, result *model.AnalysisResult) error {
	if err := s.cache.Add(result.ID, result.Clone(), gocache.NoExpiration); err != nil {
		return ErrAlreadyExists
	}
	return nil
}

// Count returns the number of stored results
func (s *MemoryStore) Count() int {
	return s.cache.ItemCount()
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
