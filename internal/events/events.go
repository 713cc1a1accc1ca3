// Package events provides the audit event stream of a preparation run.
package events

import "time"

// EventType represents the type of event
type EventType string

const (
	// EventUsageHint is emitted when the invocation has the wrong argument count
	EventUsageHint EventType = "usage_hint"
	// EventArtifactRemoval is emitted once per attempted artifact deletion
	EventArtifactRemoval EventType = "artifact_removal"
	// EventCleanupDone is emitted after every artifact deletion was attempted
	EventCleanupDone EventType = "cleanup_done"
	// EventConfigStaged is emitted once per attempted preset copy
	EventConfigStaged EventType = "config_staged"
	// EventInstructions is emitted when the run instructions of a scenario are printed
	EventInstructions EventType = "instructions"
	// EventScenarioListing is emitted when the known scenarios are listed as a fallback
	EventScenarioListing EventType = "scenario_listing"
)

// Event represents one attempted action of a run
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Scenario  string    `json:"scenario,omitempty"`
	Data      EventData `json:"data,omitempty"`
}

// EventData contains event-specific data
type EventData struct {
	Path   string `json:"path,omitempty"`
	Preset string `json:"preset,omitempty"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewUsageHintEvent creates a usage hint event
func NewUsageHintEvent(argCount int) Event {
	return Event{
		Type:      EventUsageHint,
		Timestamp: time.Now(),
		Data:      EventData{Count: argCount},
	}
}

// NewArtifactRemovalEvent creates an artifact removal event; err may be nil
func NewArtifactRemovalEvent(path string, err error) Event {
	return Event{
		Type:      EventArtifactRemoval,
		Timestamp: time.Now(),
		Data: EventData{
			Path:  path,
			Error: errString(err),
		},
	}
}

// NewCleanupDoneEvent creates a cleanup completion event
func NewCleanupDoneEvent(attempted int) Event {
	return Event{
		Type:      EventCleanupDone,
		Timestamp: time.Now(),
		Data:      EventData{Count: attempted},
	}
}

// NewConfigStagedEvent creates a staging event; err may be nil
func NewConfigStagedEvent(scenario, preset, source, target string, err error) Event {
	return Event{
		Type:      EventConfigStaged,
		Timestamp: time.Now(),
		Scenario:  scenario,
		Data: EventData{
			Preset: preset,
			Source: source,
			Target: target,
			Error:  errString(err),
		},
	}
}

// NewInstructionsEvent creates an instructions event
func NewInstructionsEvent(scenario string, lines int) Event {
	return Event{
		Type:      EventInstructions,
		Timestamp: time.Now(),
		Scenario:  scenario,
		Data:      EventData{Count: lines},
	}
}

// NewScenarioListingEvent creates a fallback listing event for the requested token
func NewScenarioListingEvent(requested string, known int) Event {
	return Event{
		Type:      EventScenarioListing,
		Timestamp: time.Now(),
		Scenario:  requested,
		Data:      EventData{Count: known},
	}
}
