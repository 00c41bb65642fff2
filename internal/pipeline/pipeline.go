package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/truthlens/internal/events"
	"github.com/ppiankov/truthlens/internal/extract"
	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/score"
	"github.com/ppiankov/truthlens/internal/store"
	"github.com/ppiankov/truthlens/internal/validate"
)

const (
	idPrefix    = "analysis_"
	idSuffixLen = 9
	idAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"

	minProcessingMS  = 1500
	processingSpanMS = 2000
)

// Options tunes an Analyzer. Zero values fall back to defaults.
type Options struct {
	Rand      score.Rand       // default: clock-seeded source
	Delay     time.Duration    // simulated analysis pause
	Publisher events.Publisher // default: events.Noop
	Logger    *zerolog.Logger  // default: disabled
	Now       func() time.Time // default: time.Now
}

// Analyzer runs the heuristic credibility analysis and stores the result
type Analyzer struct {
	scorer    *score.Scorer
	claims    *extract.ClaimExtractor
	sources   *validate.SourceCatalog
	store     store.Store
	publisher events.Publisher
	rng       score.Rand
	delay     time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAnalyzer creates an analyzer writing into s
func NewAnalyzer(s store.Store, opts Options) *Analyzer {
	if opts.Rand == nil {
		opts.Rand = score.NewRand(0)
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Noop{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Analyzer{
		scorer:    score.NewScorer(opts.Rand),
		claims:    extract.NewClaimExtractor(),
		sources:   validate.NewSourceCatalog(opts.Rand),
		store:     s,
		publisher: opts.Publisher,
		rng:       opts.Rand,
		delay:     opts.Delay,
		logger:    logger,
		now:       opts.Now,
	}
}

// Analyze validates the submission, scores it and stores the result.
// Only invalid input, cancellation and store failures return an error.
func (a *Analyzer) Analyze(ctx context.Context, in model.AnalysisInput) (*model.AnalysisResult, error) {
	if err := validate.Input(in); err != nil {
		return nil, err
	}

	if err := a.pause(ctx); err != nil {
		return nil, err
	}

	breakdown := a.scorer.Calculate(in)
	now := a.now()

	result := &model.AnalysisResult{
		ID:               a.newID(now),
		Content:          in.Content,
		Type:             in.Type,
		CredibilityScore: breakdown.Score,
		KeyFindings:      score.Findings(in.Content, breakdown.Overall),
		FactChecks:       a.claims.Extract(in.Content),
		Sources:          a.sources.Sources(in),
		AnalyzedAt:       now.UTC(),
		ProcessingTime:   int64(score.Round(minProcessingMS + score.Uniform(a.rng, 0, processingSpanMS))),
	}

	if err := a.store.Put(ctx, result); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	a.logger.Debug().
		Str("id", result.ID).
		Str("type", string(result.Type)).
		Int("overall", result.CredibilityScore.Overall).
		Int("penalty_rules", len(breakdown.Penalties)).
		Msg("analysis stored")

	// Events never affect the stored result
	if err := a.publisher.Publish(ctx, result); err != nil {
		a.logger.Warn().Err(err).Str("id", result.ID).Msg("publish analysis event failed")
	}

	return result, nil
}

// Get returns a stored result or store.ErrNotFound
func (a *Analyzer) Get(ctx context.Context, id string) (*model.AnalysisResult, error) {
	return a.store.Get(ctx, id)
}

// pause waits for the simulated analysis delay
func (a *Analyzer) pause(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newID builds analysis_<unix-ms>_<9 base-36 chars>; collisions are not checked
func (a *Analyzer) newID(now time.Time) string {
	var b strings.Builder
	b.WriteString(idPrefix)
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < idSuffixLen; i++ {
		b.WriteByte(idAlphabet[int(a.rng.Float64()*float64(len(idAlphabet)))%len(idAlphabet)])
	}
	return b.String()
}
