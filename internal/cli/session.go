package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/truthlens/internal/events"
	"github.com/ppiankov/truthlens/internal/logging"
	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/pipeline"
	"github.com/ppiankov/truthlens/internal/score"
	"github.com/ppiankov/truthlens/internal/store"
)

// session bundles the store, publisher and analyzer a command works with
type session struct {
	cfg       *model.Config
	logger    zerolog.Logger
	store     store.Store
	publisher events.Publisher
	analyzer  *pipeline.Analyzer
}

// openSession opens the configured store (seeded with the demo result)
// and event publisher and builds the analyzer on top of them.
func openSession(ctx context.Context, cfg *model.Config) (*session, error) {
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid log settings, using defaults")
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.SeedDemo(ctx, st, time.Now()); err != nil {
		_ = st.Close()
		return nil, err
	}

	publisher := events.New(cfg.Events)

	sess := &session{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		publisher: publisher,
	}
	sess.analyzer = pipeline.NewAnalyzer(st, pipeline.Options{
		Rand:      score.NewRand(cfg.Analysis.Seed),
		Delay:     cfg.Analysis.SimulatedDelay,
		Publisher: publisher,
		Logger:    &sess.logger,
	})

	logger.Debug().
		Str("store", cfg.Store.Driver).
		Int("brokers", len(cfg.Events.Brokers)).
		Dur("delay", cfg.Analysis.SimulatedDelay).
		Msg("session ready")

	return sess, nil
}

// Close releases the publisher and the store
func (sess *session) Close() error {
	return errors.Join(sess.publisher.Close(), sess.store.Close())
}
