package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailmerge/pkg/db"
	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailmerge/pkg/recipient"
	"github.com/dmitrymomot/mailmerge/pkg/source"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// FileName is the project configuration file, looked up in the project root.
const FileName = "mailmerge.yaml"

// Defaults for paths relative to the project root.
const (
	DefaultTemplate = "email.md"
	DefaultData     = "data.csv"
)

// Transport providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// Config is the project configuration.
// Values come from mailmerge.yaml, then environment variables, then Apply.
type Config struct {
	Defaults     Defaults       `yaml:"defaults" env:"-"`
	SMTP         smtp.Config    `yaml:"smtp"`
	Resend       resend.Config  `yaml:"resend"`
	Storage      storage.Config `yaml:"storage"`
	Database     db.Config      `yaml:"database"`
	Log          logger.Config  `yaml:"log"`
	Delay        *time.Duration `yaml:"delay" env:"MAILMERGE_DELAY"` // Default: 1s
	Root         string         `yaml:"-"`
	Template     string         `yaml:"template" env:"MAILMERGE_TEMPLATE"`
	Layout       string         `yaml:"layout" env:"MAILMERGE_LAYOUT"`
	Data         string         `yaml:"data" env:"MAILMERGE_DATA"` // File path or postgres:// URL
	Query        string         `yaml:"query" env:"MAILMERGE_QUERY"`
	Attachments  string         `yaml:"attachments" env:"MAILMERGE_ATTACHMENTS"`
	Output       string         `yaml:"output" env:"MAILMERGE_OUTPUT"`
	OutputPrefix string         `yaml:"output_prefix" env:"MAILMERGE_OUTPUT_PREFIX"` // Dry-run key prefix when storage.bucket is set
	FailureFile  string         `yaml:"failure_file" env:"MAILMERGE_FAILURE_FILE"`
	Provider     string         `yaml:"provider" env:"MAILMERGE_PROVIDER"`
	Sender       string         `yaml:"sender" env:"MAILMERGE_SENDER"`
	To           string         `yaml:"-" env:"MAILMERGE_TO"` // Single recipient, skips the data source
	Rate         float64        `yaml:"rate" env:"MAILMERGE_RATE"`
	DryRun       bool           `yaml:"dry_run" env:"MAILMERGE_DRY_RUN"`
}

// Load reads mailmerge.yaml from root, if present, and applies environment overrides.
func Load(root string) (*Config, error) {
	if root == "" {
		root = "."
	}

	cfg := &Config{}
	data, err := os.ReadFile(filepath.Join(root, FileName))
	switch {
	case err == nil:
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	cfg.Root = root
	return cfg, nil
}

// Parse decodes YAML into cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, FileName, err)
	}
	return nil
}

// Overrides are command line values. Empty fields leave the config untouched.
type Overrides struct {
	Template string
	Data     string
	Query    string
	To       string
	User     string
	Pass     string
	Provider string
	LogLevel string
	DryRun   bool
}

// Apply sets every non-empty override.
func (c *Config) Apply(o Overrides) {
	set(&c.Template, o.Template)
	set(&c.Data, o.Data)
	set(&c.Query, o.Query)
	set(&c.To, o.To)
	set(&c.SMTP.Username, o.User)
	set(&c.SMTP.Password, o.Pass)
	set(&c.Provider, o.Provider)
	set(&c.Log.Level, o.LogLevel)
	if o.DryRun {
		c.DryRun = true
	}
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.ProviderName(); err != nil {
		return err
	}
	if c.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidConfig)
	}
	if c.Delay != nil && *c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", ErrInvalidConfig)
	}
	if source.IsDatabase(c.DataLocation()) && c.To == "" && c.Query == "" {
		return fmt.Errorf("%w: query is required for a database source", ErrInvalidConfig)
	}
	if _, err := c.Defaults.Build(); err != nil {
		return err
	}
	return nil
}

// ProviderName returns the configured provider. Without an explicit choice it
// is inferred from which provider has credentials; empty means none.
func (c *Config) ProviderName() (string, error) {
	switch c.Provider {
	case ProviderSMTP, ProviderResend:
		return c.Provider, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}

	switch {
	case c.Resend.APIKey != "":
		return ProviderResend, nil
	case c.SMTP.Host != "":
		return ProviderSMTP, nil
	}
	return "", nil
}

// Enabled reports whether messages are sent for real.
// Without a provider every run is a dry run.
func (c *Config) Enabled() bool {
	provider, err := c.ProviderName()
	return err == nil && provider != "" && !c.DryRun
}

// Path resolves name against the project root.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Root, name)
}

// TemplatePath is the markdown template file.
func (c *Config) TemplatePath() string {
	return c.Path(or(c.Template, DefaultTemplate))
}

// LayoutPath is the optional HTML layout file; empty means the built-in layout.
func (c *Config) LayoutPath() string {
	return c.Path(c.Layout)
}

// DataLocation is the data file path or database URL.
func (c *Config) DataLocation() string {
	data := or(c.Data, DefaultData)
	if source.IsDatabase(data) {
		return data
	}
	return c.Path(data)
}

// AttachmentDir is the base directory of attachment paths.
func (c *Config) AttachmentDir() string {
	return c.Path(or(c.Attachments, "."))
}

// OutputDir is the dry-run output root.
func (c *Config) OutputDir() string {
	return c.Path(or(c.Output, dispatch.DefaultOutputDir))
}

// FailurePath is where failed records are written after a real send.
func (c *Config) FailurePath() string {
	if c.FailureFile != "" {
		return c.Path(c.FailureFile)
	}
	if data := c.DataLocation(); !source.IsDatabase(data) {
		return source.FailurePath(data)
	}
	return c.Path(dispatch.DefaultFailureFile)
}

// ProtectedPaths lists the project files a dry run must never delete
// when it clears its output directory.
func (c *Config) ProtectedPaths() []string {
	paths := []string{
		or(c.Root, "."),
		c.Path(FileName),
		c.TemplatePath(),
		c.LayoutPath(),
		c.AttachmentDir(),
		c.FailurePath(),
	}
	if data := c.DataLocation(); !source.IsDatabase(data) {
		paths = append(paths, data)
	}
	return paths
}

// RecipientDefaults compiles the defaults section.
func (c *Config) RecipientDefaults() (*recipient.Defaults, error) {
	return c.Defaults.Build()
}

// RunConfig builds the immutable run configuration.
func (c *Config) RunConfig() (dispatch.RunConfig, error) {
	vars, err := c.RecipientDefaults()
	if err != nil {
		return dispatch.RunConfig{}, err
	}

	delay := dispatch.DefaultDelay
	if c.Delay != nil {
		delay = *c.Delay
	}

	return dispatch.RunConfig{
		Variables:     vars,
		Sender:        c.Sender,
		AttachmentDir: c.AttachmentDir(),
		OutputDir:     c.OutputDir(),
		FailureFile:   c.FailurePath(),
		Delay:         delay,
		RatePerSecond: c.Rate,
		Enabled:       c.Enabled(),
	}, nil
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
