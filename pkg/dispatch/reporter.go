package dispatch

// Reporter receives progress events. Implementations must not block for long;
// the loop waits for every call to return.
type Reporter interface {
	Verifying()
	Throttling()
	Rendering(address string)
	Dispatching(address, subject string)
	Done(address string)
	Failed(address, message string)
	Finished(summary *Summary)
}

type nopReporter struct{}

func (nopReporter) Verifying()                 {}
func (nopReporter) Throttling()                {}
func (nopReporter) Rendering(string)           {}
func (nopReporter) Dispatching(string, string) {}
func (nopReporter) Done(string)                {}
func (nopReporter) Failed(string, string)      {}
func (nopReporter) Finished(*Summary)          {}
