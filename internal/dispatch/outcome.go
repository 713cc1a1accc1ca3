package dispatch

import (
	"fmt"
	"strings"

	"prepare-test/internal/cleanup"
	"prepare-test/internal/scenario"
	"prepare-test/internal/staging"
)

// State is the dispatcher state within one invocation.
type State int

const (
	StateDispatching State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDispatching:
		return "Dispatching"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Outcome describes what one Dispatch call did.
type Outcome struct {
	State     State
	Requested string
	Matched   bool
	Scenario  scenario.Definition
	Usage     error // wraps ErrMalformedInvocation when the argument count was wrong
	Unknown   error // wraps scenario.ErrUnknownScenario on the fallback path
	Cleanup   cleanup.Report
	Staging   *staging.Result
	Listed    []string
}

// Report renders a short summary of the run.
func (o Outcome) Report() string {
	var b strings.Builder

	requested := o.Requested
	if requested == "" {
		requested = "(none)"
	}
	if o.Matched {
		fmt.Fprintf(&b, "Scenario:  %s\n", requested)
	} else {
		fmt.Fprintf(&b, "Scenario:  %s (unrecognized, listed %d known)\n", requested, len(o.Listed))
	}

	fmt.Fprintf(&b, "Artifacts: %d removed, %d missing, %d failed\n",
		o.Cleanup.Removed(), o.Cleanup.Missing(), o.Cleanup.Failed())

	switch {
	case o.Staging == nil:
		b.WriteString("Config:    not staged\n")
	case o.Staging.Err != nil:
		fmt.Fprintf(&b, "Config:    %s -> %s (failed: %v)\n", o.Staging.Preset, o.Staging.Target, o.Staging.Err)
	default:
		fmt.Fprintf(&b, "Config:    %s -> %s\n", o.Staging.Preset, o.Staging.Target)
	}

	if o.Usage != nil {
		fmt.Fprintf(&b, "Usage:     %v\n", o.Usage)
	}
	return b.String()
}
