// Package mailmerge renders one personalized document per recipient from a
// markdown template and a table of records, then sends it through an email
// provider or writes it to disk for inspection.
//
// # Quick Start
//
// A project is a directory holding mailmerge.yaml, a template and a data file.
// Init creates one:
//
//	if err := mailmerge.Init("./campaign"); err != nil {
//	    log.Fatal(err)
//	}
//
// Load its configuration and run it:
//
//	cfg, err := mailmerge.LoadConfig("./campaign")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := mailmerge.New(cfg).Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.Succeeded, "of", summary.Total)
//
// # Templates
//
// Templates are markdown with {{ name }} placeholders. A placeholder whose
// name is not in the recipient's variables fails that recipient only. The
// first level-1 heading becomes the subject unless the record has a subject
// column. Optional YAML frontmatter supplies template-level defaults:
//
//	---
//	signature: The team
//	---
//
//	# Hello {{ name }}
//
//	Regards, {{ signature }}
//
// # Data
//
// Records come from a CSV or YAML file, or from a PostgreSQL query when the
// data setting is a postgres:// URL. Every record needs an address, either as
// a column or through a default:
//
//	defaults:
//	  company: Example Inc.            # literal
//	  address: { column: email }       # copy another column
//	  name: { template: "{{ .first | title }}" }
//
// # Sending
//
// A run sends for real when a provider is configured (smtp or resend) and
// dry_run is off. Otherwise every document is written under .output/, or to
// object storage when storage.bucket is set. Records that fail during a real
// send are written to data.error.csv so they can be merged again.
package mailmerge
