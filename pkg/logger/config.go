package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects level, format and destination of log output.
type Config struct {
	Output io.Writer    `yaml:"-"`                                 // Default: os.Stderr
	Level  string       `yaml:"level" env:"MAILMERGE_LOG_LEVEL"`   // debug, info, warn, error; Default: info
	Format string       `yaml:"format" env:"MAILMERGE_LOG_FORMAT"` // text or json; Default: text
	Sentry SentryConfig `yaml:"sentry"`
}

// ParseLevel parses a level name. An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return level, nil
}

func (c Config) handler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "", FormatText:
		return slog.NewTextHandler(w, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
}
