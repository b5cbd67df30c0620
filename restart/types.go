package restart

import (
	"time"

	"github.com/mea-boop/kroll/meta"
	"github.com/mea-boop/kroll/service"
)

// State of a single broker's restart sequence.
type State int

const (
	Idle State = iota
	Stopping
	WaitingClosed
	CoolingDown
	Starting
	WaitingOpen
	Verifying
)

var stateNames = map[State]string{
	Idle:          "idle",
	Stopping:      "stopping",
	WaitingClosed: "waiting closed",
	CoolingDown:   "cooling down",
	Starting:      "starting",
	WaitingOpen:   "waiting open",
	Verifying:     "verifying",
}

func (s State) String() string {
	return stateNames[s]
}

// FailureKind classifies why a broker's restart failed.
type FailureKind int

const (
	PortCloseTimeout FailureKind = iota + 1
	PortOpenTimeout
	HealthCheckFailed
	Cancelled
)

var failureNames = map[FailureKind]string{
	PortCloseTimeout:  "port close timeout",
	PortOpenTimeout:   "port open timeout",
	HealthCheckFailed: "health check failed",
	Cancelled:         "cancelled",
}

func (k FailureKind) String() string {
	return failureNames[k]
}

// Outcome is a broker's terminal result within a run.
type Outcome int

const (
	Skipped Outcome = iota
	Succeeded
	Failed
)

var outcomeNames = map[Outcome]string{
	Skipped:   "skipped",
	Succeeded: "succeeded",
	Failed:    "failed",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// BrokerResult is the finalized result for one broker of the plan.
type BrokerResult struct {
	Broker  meta.Broker
	Outcome Outcome
	Failure FailureKind // set when Outcome == Failed
	Err     error       // underlying cause, when any
	Elapsed time.Duration
}

// PortCheck is one port's open/closed observation from the final
// verification pass.
type PortCheck struct {
	Port int
	Open bool
}

// VerifyResult is the read-only post-run report for one broker.
type VerifyResult struct {
	Broker    meta.Broker
	Ports     []PortCheck
	Status    service.Status
	StatusErr error
}

func (v VerifyResult) Healthy() bool {
	if v.StatusErr != nil || !v.Status.Healthy() {
		return false
	}
	for _, p := range v.Ports {
		if !p.Open {
			return false
		}
	}
	return true
}

// RunReport aggregates a whole run.
type RunReport struct {
	Results      []BrokerResult // plan order
	Aborted      bool
	AbortReason  string
	Verification []VerifyResult // empty when the run aborted
}

func (r *RunReport) AllSucceeded() bool {
	for _, res := range r.Results {
		if res.Outcome != Succeeded {
			return false
		}
	}
	return !r.Aborted
}
