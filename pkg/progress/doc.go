// Package progress renders dispatch events for people and logs.
//
// Console prints a line per recipient, styled with lipgloss when the output is a
// terminal. Log sends the same events to slog. Multi combines reporters.
package progress
