package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ppiankov/truthlens/internal/model"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := NewSQLStore(context.Background(), "sqlite", filepath.Join(t.TempDir(), "truthlens.db"))
	if err != nil {
		t.Fatalf("NewSQLStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	want := sampleResult("analysis_1710408413000_k3j9x0a1b")
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.ID != want.ID || got.Content != want.Content || got.Type != want.Type {
		t.Errorf("Identity mismatch: got %+v", got)
	}
	if got.CredibilityScore != want.CredibilityScore {
		t.Errorf("Expected score %+v, got %+v", want.CredibilityScore, got.CredibilityScore)
	}
	if !got.AnalyzedAt.Equal(want.AnalyzedAt) {
		t.Errorf("Expected analyzedAt %v, got %v", want.AnalyzedAt, got.AnalyzedAt)
	}
	if got.ProcessingTime != want.ProcessingTime {
		t.Errorf("Expected processing time %d, got %d", want.ProcessingTime, got.ProcessingTime)
	}
	if len(got.FactChecks) != 1 || got.FactChecks[0].Status != model.VerdictTrue {
		t.Errorf("Unexpected fact-checks: %+v", got.FactChecks)
	}
	if len(got.Sources) != 1 || got.Sources[0].Credibility != 8.7 {
		t.Errorf("Unexpected sources: %+v", got.Sources)
	}
}

func TestSQLStore_NotFound(t *testing.T) {
	s := newSQLiteStore(t)

	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_WriteOnce(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	if err := s.Put(ctx, sampleResult("dup")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, sampleResult("dup")); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestSQLStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "truthlens.db")

	first, err := NewSQLStore(ctx, "sqlite", path)
	if err != nil {
		t.Fatalf("NewSQLStore failed: %v", err)
	}
	if err := SeedDemo(ctx, first, sampleResult("x").AnalyzedAt); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	_ = first.Close()

	second, err := NewSQLStore(ctx, "sqlite", path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	// Seeding an already-seeded database is not an error
	if err := SeedDemo(ctx, second, sampleResult("x").AnalyzedAt); err != nil {
		t.Fatalf("second SeedDemo failed: %v", err)
	}

	demo, err := second.Get(ctx, DemoID)
	if err != nil {
		t.Fatalf("Get demo failed: %v", err)
	}
	if demo.CredibilityScore.Overall != 35 {
		t.Errorf("Expected demo overall 35, got %d", demo.CredibilityScore.Overall)
	}
}

func TestNewSQLStore_RequiresDSN(t *testing.T) {
	if _, err := NewSQLStore(context.Background(), "postgres", ""); err == nil {
		t.Fatal("Expected error for empty DSN")
	}
}

func TestOpen_SQLiteIsLayered(t *testing.T) {
	s, err := Open(context.Background(), model.StoreConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "t.db")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*LayeredStore); !ok {
		t.Errorf("Expected *LayeredStore, got %T", s)
	}
}
