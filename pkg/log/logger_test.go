package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp:    time.Now(),
		ConnectionID: "test-conn",
		Layer:        LayerManager,
		Category:     CategoryAttempt,
	}
	logger.Log(event)

	event.Attempt = &AttemptEvent{Number: 1, Result: AttemptPending}
	logger.Log(event)

	event.Attempt = nil
	event.StateChange = &StateChangeEvent{NewState: "CONNECTED"}
	logger.Log(event)

	event.StateChange = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{LayerTransport.String(), "TRANSPORT"},
		{LayerManager.String(), "MANAGER"},
		{Layer(99).String(), "UNKNOWN"},
		{CategoryAttempt.String(), "ATTEMPT"},
		{CategoryState.String(), "STATE"},
		{CategoryError.String(), "ERROR"},
		{Category(99).String(), "UNKNOWN"},
		{AttemptPending.String(), "PENDING"},
		{AttemptAlreadyConnected.String(), "ALREADY_CONNECTED"},
		{AttemptRejected.String(), "REJECTED"},
		{AttemptResult(99).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range []Category{CategoryAttempt, CategoryState, CategoryError} {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCategory("attempt"); ok {
		t.Error("ParseCategory should be case-sensitive")
	}
}
