// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{eventType: EventStarted, expected: "started"},
		{eventType: EventCompleted, expected: "completed"},
		{eventType: EventFailed, expected: "failed"},
		{eventType: EventSkipped, expected: "skipped"},
		{eventType: EventOutput, expected: "output"},
		{eventType: EventType(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.String())
		})
	}
}

func TestNullReporter(t *testing.T) {
	var r Reporter = NullReporter{}

	assert.NotPanics(t, func() {
		r.Report(Event{Path: []string{"test"}, Type: EventStarted, Timestamp: time.Now()})
	})
}

func TestReporterFunc(t *testing.T) {
	var got []Event

	var r Reporter = ReporterFunc(func(e Event) { got = append(got, e) })

	r.Report(Event{Path: []string{"a"}, Type: EventStarted})
	r.Report(Event{Path: []string{"a"}, Type: EventFailed, Data: EventData{ExitCode: 3}})

	assert.Len(t, got, 2)
	assert.Equal(t, EventFailed, got[1].Type)
	assert.Equal(t, 3, got[1].Data.ExitCode)
}
