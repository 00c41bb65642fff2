// Package logging builds the zerolog logger shared by the CLI and the API server.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/truthlens/internal/model"
)

// New returns a logger writing to w. Unknown levels fall back to info
// and are reported as an error so callers can surface them.
func New(cfg model.LogConfig, w io.Writer) (zerolog.Logger, error) {
	var err error

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, perr := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if perr != nil {
			err = fmt.Errorf("log level %q: %w", cfg.Level, perr)
		} else {
			level = parsed
		}
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	default:
		if err == nil {
			err = fmt.Errorf("log format %q: expected console or json", cfg.Format)
		}
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, err
}
