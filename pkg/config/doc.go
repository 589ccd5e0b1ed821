// Package config loads the project configuration of a merge.
//
// A project is a directory holding the template, the data file and an optional
// mailmerge.yaml:
//
//	template: email.md
//	data: data.csv
//	provider: smtp
//	sender: Team <team@example.com>
//	delay: 1s
//	defaults:
//	  greeting: Hello
//	  address: { column: email }
//	  name: { template: "{{ .first | title }} {{ .last }}" }
//	smtp:
//	  host: smtp.example.com
//	  user: team@example.com
//
// Environment variables override the file (MAILMERGE_*, SMTP_*, RESEND_*,
// STORAGE_*, SENTRY_*), and command line flags override both through Apply.
//
// Without a provider, or with dry_run set, a merge only writes its output for
// inspection.
package config
