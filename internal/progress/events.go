// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a lifecycle update for one item or sequence child.
type Event struct {
	Path      []string  // Item label, then the child label for sequence children.
	Type      EventType // What happened.
	Message   string    // Human-readable status message.
	Timestamp time.Time // When the event occurred.
	Data      EventData // Completion details.
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates the item has been admitted and its process spawned.
	EventStarted EventType = iota
	// EventCompleted indicates the item exited successfully.
	EventCompleted
	// EventFailed indicates the item failed.
	EventFailed
	// EventSkipped indicates the item was never started.
	EventSkipped
	// EventOutput carries the latest line of child output in Message.
	EventOutput
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	case EventOutput:
		return "output"
	default:
		return "unknown"
	}
}

// EventData contains completion details for EventCompleted and EventFailed.
type EventData struct {
	ExitCode int
	Error    error
}

// Reporter receives progress events. Report is called from many goroutines
// and must not block for long.
type Reporter interface {
	Report(event Event)
}

// NullReporter drops every event.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Report implements Reporter.
func (f ReporterFunc) Report(e Event) {
	f(e)
}
