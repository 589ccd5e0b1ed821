// Package logger builds the slog logger used by mailmerge.
//
// Output goes to stderr by default so it never mixes with progress lines on
// stdout. Level and format come from Config:
//
//	log, err := logger.New(logger.Config{Level: "debug", Format: "json"}, dispatch.RunIDExtractor)
//
// A ContextExtractor adds an attribute taken from the context of every log call.
// The dispatch package stores the run id in the context, so every record written
// during a run carries run_id.
//
// # Sentry
//
// When SENTRY_DSN is set, records are also sent to Sentry: warnings and errors
// are stored as logs, errors open issues. Initialization failures are logged
// and the logger keeps working without Sentry. Call Flush before the process
// exits so queued events are delivered.
package logger
