package dispatch

import (
	"time"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

// Defaults for RunConfig.
const (
	DefaultDelay       = time.Second
	DefaultExtension   = ".html"
	DefaultOutputDir   = ".output"
	DefaultFailureFile = "data.error.csv"
)

// RunConfig is the immutable configuration of a merge run.
// It is built once at the boundary and passed by value.
type RunConfig struct {
	Variables     *recipient.Defaults // Run-level default variables; nil means none
	Sender        string              // From address used in real-send mode
	AttachmentDir string              // Base directory for attachment paths
	OutputDir     string              // Dry-run output root
	FailureFile   string              // Failure list destination
	Extension     string              // Dry-run artifact extension; Default: ".html"
	Delay         time.Duration       // Pause between recipients
	RatePerSecond float64             // Optional send cap; 0 disables it
	Enabled       bool                // true sends for real; false is a dry run
}

// DryRun reports whether the run only writes artifacts.
func (c RunConfig) DryRun() bool { return !c.Enabled }

func (c RunConfig) withDefaults() RunConfig {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	return c
}
