package dispatch

import (
	"context"
	"log/slog"
)

type runIDKey struct{}

// ContextWithRunID stores the run id in ctx.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run id stored in ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// RunIDExtractor adds the run id to log records. It satisfies logger.ContextExtractor.
func RunIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := RunIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("run_id", id), true
}
