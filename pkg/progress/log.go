package progress

import (
	"log/slog"

	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
)

// Log reports events through slog. Steps are logged at debug level.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a reporter writing to logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Verifying()  { l.logger.Debug("verifying transport") }
func (l *Log) Throttling() { l.logger.Debug("throttling") }

func (l *Log) Rendering(address string) {
	l.logger.Debug("rendering", slog.String("address", address))
}

func (l *Log) Dispatching(address, subject string) {
	l.logger.Debug("dispatching", slog.String("address", address), slog.String("subject", subject))
}

func (l *Log) Done(address string) {
	l.logger.Info("recipient done", slog.String("address", address))
}

func (l *Log) Failed(address, message string) {
	l.logger.Warn("recipient failed", slog.String("address", address), slog.String("error", message))
}

func (l *Log) Finished(s *dispatch.Summary) {
	l.logger.Info("run finished",
		slog.String("run_id", s.RunID),
		slog.Int("succeeded", s.Succeeded),
		slog.Int("total", s.Total),
		slog.Bool("dry_run", s.DryRun),
		slog.String("failure_file", s.FailureFile),
	)
}
