package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ppiankov/truthlens/internal/model"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		content_type TEXT NOT NULL,
		overall INTEGER NOT NULL,
		analyzed_at BIGINT NOT NULL,
		payload TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at)`,
}

// SQLStore persists results in sqlite or postgres.
// The full result is kept as JSON; the other columns are for querying.
type SQLStore struct {
	db *sqlx.DB
}

type analysisRow struct {
	ID          string `db:"id"`
	ContentType string `db:"content_type"`
	Overall     int    `db:"overall"`
	AnalyzedAt  int64  `db:"analyzed_at"` // Unix milliseconds
	Payload     string `db:"payload"`
}

// NewSQLStore connects to the database and ensures the schema exists.
// driver is "sqlite" (modernc) or "postgres" (lib/pq).
func NewSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store dsn is required for driver %s", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &SQLStore{db: db}, nil
}

// Get retrieves a result by id
func (s *SQLStore) Get(ctx context.Context, id string) (*model.AnalysisResult, error) {
	var row analysisRow
	query := s.db.Rebind(`SELECT id, content_type, overall, analyzed_at, payload FROM analyses WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select analysis: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(row.Payload), &result); err != nil {
		return nil, fmt.Errorf("decode analysis %s: %w", id, err)
	}
	return &result, nil
}

// Put inserts a result; an id can only be written once
func (s *SQLStore) Put(ctx context.Context, result *model.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}

	row := analysisRow{
		ID:          result.ID,
		ContentType: string(result.Type),
		Overall:     result.CredibilityScore.Overall,
		AnalyzedAt:  result.AnalyzedAt.UnixMilli(),
		Payload:     string(payload),
	}

	res, err := s.db.NamedExecContext(ctx, `INSERT INTO analyses (id, content_type, overall, analyzed_at, payload)
		VALUES (:id, :content_type, :overall, :analyzed_at, :payload)
		ON CONFLICT (id) DO NOTHING`, row)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}
