package progress

import "github.com/dmitrymomot/mailmerge/pkg/dispatch"

// Multi forwards every event to each reporter in order.
type Multi []dispatch.Reporter

func (m Multi) Verifying() {
	for _, r := range m {
		r.Verifying()
	}
}

func (m Multi) Throttling() {
	for _, r := range m {
		r.Throttling()
	}
}

func (m Multi) Rendering(address string) {
	for _, r := range m {
		r.Rendering(address)
	}
}

func (m Multi) Dispatching(address, subject string) {
	for _, r := range m {
		r.Dispatching(address, subject)
	}
}

func (m Multi) Done(address string) {
	for _, r := range m {
		r.Done(address)
	}
}

func (m Multi) Failed(address, message string) {
	for _, r := range m {
		r.Failed(address, message)
	}
}

func (m Multi) Finished(s *dispatch.Summary) {
	for _, r := range m {
		r.Finished(s)
	}
}
