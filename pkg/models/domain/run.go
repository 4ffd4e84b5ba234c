package domain

import (
	"fmt"
	"time"
)

// RunStatus is the terminal status reported back to the trigger.
type RunStatus string

const (
	RunSucceeded RunStatus = "success"
	RunFailed    RunStatus = "failure"
)

// ErrorKind partitions run failures by which stage produced them.
type ErrorKind string

const (
	ErrKindConfiguration ErrorKind = "configuration"
	ErrKindBilling       ErrorKind = "fatal-billing"
	ErrKindDispatch      ErrorKind = "fatal-dispatch"
	ErrKindTimeout       ErrorKind = "fatal-timeout"
	ErrKindInternal      ErrorKind = "internal"
)

// RunError is a classified fatal run error. Absorbed scan failures never
// become a RunError; they only reduce the resource counts.
type RunError struct {
	Kind ErrorKind
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

func NewRunError(kind ErrorKind, err error) *RunError {
	return &RunError{Kind: kind, Err: err}
}

// RunCounts summarizes how much the run saw.
type RunCounts struct {
	RegionsScanned int
	ResourcesFound int
	CostLineItems  int
}

// RunResult is returned to the trigger collaborator and is what a manual
// invocation inspects.
type RunResult struct {
	Status      RunStatus
	StartedAt   time.Time
	ElapsedSecs float64
	Counts      RunCounts
	Summary     string
	Err         *RunError
}

// ExecutionMarker is the single-slot record of the most recent run,
// overwritten in durable storage at the end of every run. It is write-only
// for the job: observability and idempotency checks read it, the report
// pipeline never does.
type ExecutionMarker struct {
	RunAt        time.Time `json:"run_at"`
	Outcome      RunStatus `json:"outcome"`
	TotalCost    float64   `json:"total_cost"`
	Counts       RunCounts `json:"counts"`
	ErrorSummary string    `json:"error_summary,omitempty"`
}
