package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/truthlens/internal/model"
)

var (
	// ErrNotFound is returned when no result exists for an id
	ErrNotFound = errors.New("analysis result not found")

	// ErrAlreadyExists is returned when a result id is written twice
	ErrAlreadyExists = errors.New("analysis result already exists")
)

// Store holds analysis results keyed by id. Results are written once and
// never mutated or expired.
type Store interface {
	Get(ctx context.Context, id string) (*model.AnalysisResult, error)
	Put(ctx context.Context, result *model.AnalysisResult) error
	Close() error
}

// Open builds the store selected by cfg.Driver
func Open(ctx context.Context, cfg model.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil

	case "sqlite", "postgres":
		sqlStore, err := NewSQLStore(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewLayeredStore(NewMemoryStore(), sqlStore), nil

	default:
		return nil, fmt.Errorf("unknown store driver: %s (supported: memory, sqlite, postgres)", cfg.Driver)
	}
}
