package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/truthlens/internal/model"
)

func sampleResult(id string) *model.AnalysisResult {
	return &model.AnalysisResult{
		ID:      id,
		Content: "CleanTech Corp was founded in 2018 and registered publicly.",
		Type:    model.ContentTypeText,
		CredibilityScore: model.CredibilityScore{
			Overall:          42,
			SourceAuthority:  30,
			FactVerification: 44,
			LanguageAnalysis: 101,
		},
		KeyFindings:    []model.KeyFinding{{Type: model.FindingError, Title: "Low Credibility Score", Description: "d"}},
		FactChecks:     []model.FactCheck{{Claim: "CleanTech Corp was founded in 2018 and registered publicly", Status: model.VerdictTrue, Explanation: "e"}},
		Sources:        []model.Source{{URL: "https://www.snopes.com/", Title: "Snopes Fact-Checking", Credibility: 8.7}},
		AnalyzedAt:     time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		ProcessingTime: 2718,
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, sampleResult("analysis_1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "analysis_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CredibilityScore.Overall != 42 {
		t.Errorf("Expected overall 42, got %d", got.CredibilityScore.Overall)
	}
	if s.Count() != 1 {
		t.Errorf("Expected 1 stored result, got %d", s.Count())
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_WriteOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := sampleResult("analysis_1")
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	second := sampleResult("analysis_1")
	second.CredibilityScore.Overall = 90
	if err := s.Put(ctx, second); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}

	got, _ := s.Get(ctx, "analysis_1")
	if got.CredibilityScore.Overall != 42 {
		t.Errorf("Expected first write to win, got overall %d", got.CredibilityScore.Overall)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := sampleResult("analysis_1")
	if err := s.Put(ctx, original); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	original.CredibilityScore.Overall = 0
	original.KeyFindings[0].Title = "changed after Put"

	got, _ := s.Get(ctx, "analysis_1")
	got.KeyFindings[0].Title = "changed after Get"
	got.Sources = append(got.Sources, model.Source{URL: "https://example.com"})

	again, _ := s.Get(ctx, "analysis_1")
	if again.CredibilityScore.Overall != 42 {
		t.Errorf("Expected overall 42, got %d", again.CredibilityScore.Overall)
	}
	if again.KeyFindings[0].Title != "Low Credibility Score" {
		t.Errorf("Expected stored finding untouched, got %q", again.KeyFindings[0].Title)
	}
	if len(again.Sources) != 1 {
		t.Errorf("Expected 1 source, got %d", len(again.Sources))
	}
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := SeedDemo(ctx, s, at); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	// Seeding twice is fine
	if err := SeedDemo(ctx, s, at.Add(time.Hour)); err != nil {
		t.Fatalf("second SeedDemo failed: %v", err)
	}

	demo, err := s.Get(ctx, DemoID)
	if err != nil {
		t.Fatalf("Get demo failed: %v", err)
	}
	if demo.CredibilityScore.Overall != 35 {
		t.Errorf("Expected demo overall 35, got %d", demo.CredibilityScore.Overall)
	}
	if !demo.AnalyzedAt.Equal(at) {
		t.Errorf("Expected first seed time to be kept, got %v", demo.AnalyzedAt)
	}
	if len(demo.FactChecks) != 3 || len(demo.Sources) != 3 || len(demo.KeyFindings) != 3 {
		t.Errorf("Unexpected demo shape: %d findings, %d checks, %d sources",
			len(demo.KeyFindings), len(demo.FactChecks), len(demo.Sources))
	}
}

// countingStore records durable reads
type countingStore struct {
	*MemoryStore
	gets int
}

func (c *countingStore) Get(ctx context.Context, id string) (*model.AnalysisResult, error) {
	c.gets++
	return c.MemoryStore.Get(ctx, id)
}

func TestLayeredStore_PromotesOnRead(t *testing.T) {
	ctx := context.Background()
	durable := &countingStore{MemoryStore: NewMemoryStore()}
	if err := durable.Put(ctx, sampleResult("analysis_1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	memory := NewMemoryStore()
	s := NewLayeredStore(memory, durable)

	for i := 0; i < 3; i++ {
		if _, err := s.Get(ctx, "analysis_1"); err != nil {
			t.Fatalf("Get %d failed: %v", i, err)
		}
	}

	if durable.gets != 1 {
		t.Errorf("Expected 1 durable read, got %d", durable.gets)
	}
	if memory.Count() != 1 {
		t.Errorf("Expected result promoted to memory, got %d entries", memory.Count())
	}
}

func TestLayeredStore_PutWritesBoth(t *testing.T) {
	ctx := context.Background()
	durable := NewMemoryStore()
	memory := NewMemoryStore()
	s := NewLayeredStore(memory, durable)

	if err := s.Put(ctx, sampleResult("analysis_2")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if durable.Count() != 1 || memory.Count() != 1 {
		t.Errorf("Expected both layers written, got durable=%d memory=%d", durable.Count(), memory.Count())
	}

	if err := s.Put(ctx, sampleResult("analysis_2")); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), model.StoreConfig{Driver: "redis"})
	if err == nil {
		t.Fatal("Expected error for unknown driver")
	}
}

func TestOpen_DefaultsToMemory(t *testing.T) {
	s, err := Open(context.Background(), model.StoreConfig{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Expected *MemoryStore, got %T", s)
	}
}
