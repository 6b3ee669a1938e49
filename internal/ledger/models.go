package ledger

import "time"

// Kind identifies which tool produced a run.
type Kind string

const (
	KindScaffold Kind = "scaffold"
	KindRecord   Kind = "record"
	KindEncode   Kind = "encode"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// IsTerminal reports whether the status closes a run.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// Run is one persisted tool invocation.
type Run struct {
	ID         string
	Kind       Kind
	Status     Status
	Detail     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall time of a finished run, or zero while running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Outcome is the result of one best-effort step within a run.
type Outcome struct {
	// Segment is the 1-based recording segment, or zero outside a recording.
	Segment  int
	Name     string
	OK       bool
	Detail   string
	Duration time.Duration
}

// Step is a persisted Outcome.
type Step struct {
	RunID      string
	Seq        int
	Outcome    Outcome
	RecordedAt time.Time
}
