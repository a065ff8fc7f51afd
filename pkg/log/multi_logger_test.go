package log

import (
	"testing"
	"time"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	r1 := &recordingLogger{}
	r2 := &recordingLogger{}

	multi := NewMultiLogger(r1, nil, r2)

	multi.Log(Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Layer:        LayerTransport,
		Category:     CategoryState,
	})

	for i, r := range []*recordingLogger{r1, r2} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].ConnectionID != "conn-123" {
			t.Errorf("logger %d: ConnectionID = %q, want %q", i, r.events[0].ConnectionID, "conn-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()
	multi.Log(Event{ConnectionID: "conn"})
}
