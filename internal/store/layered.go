package store

import (
	"context"
	"errors"

	"github.com/ppiankov/truthlens/internal/model"
)

// LayeredStore puts a memory store in front of a persistent one
type LayeredStore struct {
	memory  *MemoryStore
	durable Store
}

// NewLayeredStore creates a new layered store
func NewLayeredStore(memory *MemoryStore, durable Store) *LayeredStore {
	return &LayeredStore{
		memory:  memory,
		durable: durable,
	}
}

// Get checks memory first, then the durable store
func (s *LayeredStore) Get(ctx context.Context, id string) (*model.AnalysisResult, error) {
	if result, err := s.memory.Get(ctx, id); err == nil {
		return result, nil
	}

	result, err := s.durable.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Promote; a concurrent promotion of the same id is harmless
	if err := s.memory.Put(ctx, result); err != nil && !errors.Is(err, ErrAlreadyExists) {
		return nil, err
	}
	return result, nil
}

// Put writes to the durable store first so memory never holds an unsaved result
func (s *LayeredStore) Put(ctx context.Context, result *model.AnalysisResult) error {
	if err := s.durable.Put(ctx, result); err != nil {
		return err
	}
	if err := s.memory.Put(ctx, result); err != nil && !errors.Is(err, ErrAlreadyExists) {
		return err
	}
	return nil
}

// Close closes both layers
func (s *LayeredStore) Close() error {
	return errors.Join(s.memory.Close(), s.durable.Close())
}
