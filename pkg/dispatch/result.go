package dispatch

import "github.com/dmitrymomot/mailmerge/pkg/recipient"

// Status is the terminal state of one recipient.
type Status string

const (
	StatusDispatched Status = "dispatched"
	StatusFailed     Status = "failed"
)

// Result is the outcome for one recipient.
type Result struct {
	Err     error // Per-item failure; nil when dispatched
	Address string
	Subject string
	Status  Status
}

// OK reports whether the recipient was dispatched.
func (r Result) OK() bool { return r.Status == StatusDispatched }

// FailureList holds the merged fields of failed recipients, in processing order.
type FailureList []recipient.Fields

// Columns returns the union of keys across all records in first-seen order.
func (l FailureList) Columns() []string {
	return recipient.Columns(l)
}

// Summary describes a finished or interrupted run.
type Summary struct {
	RunID       string
	FailureFile string // Path of the persisted failure list, if any
	Results     []Result
	Failures    FailureList
	Total       int
	Succeeded   int
	DryRun      bool
}

// Failed returns the number of failed recipients.
func (s *Summary) Failed() int { return len(s.Failures) }

// Processed returns the number of recipients that reached a terminal state.
func (s *Summary) Processed() int { return len(s.Results) }
