package logger

import (
	"log/slog"
	"os"
)

// New builds a logger from cfg. Records pass through the extractors first.
// With a Sentry DSN, warnings and errors are also sent to Sentry.
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}

	h, err := cfg.handler(w)
	if err != nil {
		return nil, err
	}

	if cfg.Sentry.DSN != "" {
		sh, err := newSentryHandler(cfg.Sentry)
		if err != nil {
			slog.New(h).Error("sentry disabled", slog.String("error", err.Error()))
		} else {
			h = fanout{h, sh}
		}
	}

	return slog.New(withContext(h, extractors...)), nil
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
