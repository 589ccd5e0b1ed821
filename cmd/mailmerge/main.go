// Command mailmerge renders a markdown template for every record of a data
// file and sends or writes the results.
//
// Usage:
//
//	mailmerge [send] [flags] [root]
//	mailmerge init [root]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrymomot/mailmerge"
	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "mailmerge: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "init":
			return runInit(args[1:], stdout)
		case "send":
			args = args[1:]
		}
	}
	return runSend(args, stdout, stderr)
}

func runInit(args []string, stdout io.Writer) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if err := mailmerge.Init(root); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Created %s, %s and %s in %s\n",
		config.FileName, config.DefaultTemplate, config.DefaultData, root)
	return nil
}

func runSend(args []string, stdout, stderr io.Writer) error {
	var o config.Overrides
	var verbose bool

	fs := flag.NewFlagSet("mailmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.Template, "t", "", "template file (shorthand)")
	fs.StringVar(&o.Template, "template", "", "template file relative to root (default email.md)")
	fs.StringVar(&o.Data, "data", "", "CSV or YAML file, or postgres:// URL (default data.csv)")
	fs.StringVar(&o.Query, "query", "", "SQL query for a database source")
	fs.StringVar(&o.To, "send", "", "send only to this address, ignoring the data source")
	fs.StringVar(&o.User, "user", "", "SMTP user")
	fs.StringVar(&o.Pass, "pass", "", "SMTP password")
	fs.StringVar(&o.Provider, "provider", "", "transport provider: smtp or resend")
	fs.StringVar(&o.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&o.DryRun, "dry-run", false, "write documents instead of sending")
	fs.BoolVar(&verbose, "verbose", false, "print every step")

	if err := fs.Parse(args); err != nil {
		return err
	}
	root := fs.Arg(0)

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	cfg.Apply(o)
	if cfg.Log.Level == "" && !verbose {
		cfg.Log.Level = "warn"
	}

	log, err := logger.New(cfg.Log, dispatch.RunIDExtractor)
	if err != nil {
		return err
	}
	defer logger.Flush(2 * time.Second)

	summary, err := mailmerge.New(cfg,
		mailmerge.WithLogger(log),
		mailmerge.WithOutput(stdout),
		mailmerge.WithVerbose(verbose),
	).Run()
	if err != nil {
		return err
	}
	if summary.Failed() > 0 {
		return fmt.Errorf("%d of %d recipients failed", summary.Failed(), summary.Total)
	}
	return nil
}
