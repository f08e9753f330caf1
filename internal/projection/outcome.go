package projection

import "time"

// Run status values reported to callers.
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// Outcome is the result of one projection run. A run either succeeds or
// fails with the error that aborted it; no error escapes Run.
type Outcome struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	// Entries is the number of PROJECTED entries written by a successful run.
	Entries int
	Err     error
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Status returns StatusSuccess or StatusFailed.
func (o Outcome) Status() string {
	if o.OK() {
		return StatusSuccess
	}
	return StatusFailed
}

// String renders "Success" or "Failed: <message>".
func (o Outcome) String() string {
	if o.OK() {
		return StatusSuccess
	}
	return StatusFailed + ": " + o.Err.Error()
}
