package dispatch

import "fmt"

// Status is the outcome of one dispatch step.
type Status int

const (
	Skipped Status = iota
	OK
	Failed
	// Pending marks a step still running in the background.
	Pending
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case OK:
		return "ok"
	case Failed:
		return "failed"
	case Pending:
		return "pending"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the status of a step and the error of a failed one.
type Outcome struct {
	Status Status
	Err    error
}

func ok() Outcome              { return Outcome{Status: OK} }
func failed(err error) Outcome { return Outcome{Status: Failed, Err: err} }
func skipped() Outcome         { return Outcome{Status: Skipped} }
func pending() Outcome         { return Outcome{Status: Pending} }

// Result describes a dispatch. URL is empty when nothing was dispatched.
type Result struct {
	URL        string
	TargetLang string
	Navigation Outcome
	Preview    Outcome
	History    Outcome
}

// Dispatched reports whether the translator page was opened.
func (r Result) Dispatched() bool {
	return r.Navigation.Status == OK
}
