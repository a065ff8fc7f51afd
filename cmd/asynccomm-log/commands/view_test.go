package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/asynccomm/asynccomm-go/pkg/log"
)

func TestFormatAttemptEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
		Layer:        log.LayerManager,
		Category:     log.CategoryAttempt,
		RemoteAddr:   "db.internal:38040",
		Attempt: &log.AttemptEvent{
			Number:        3,
			Result:        log.AttemptRejected,
			SincePrevious: 10 * time.Second,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[conn:abc12345]",
		"MANAGER Attempt db.internal:38040",
		"Number: 3",
		"Result: REJECTED",
		"Since previous: 10.000s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	event := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: "short",
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		StateChange:  &log.StateChangeEvent{NewState: "CONNECTING"},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "[conn:short]") {
		t.Errorf("expected unshortened short ID, got: %s", output)
	}
	if !strings.Contains(output, "  -> CONNECTING") {
		t.Errorf("expected arrow without old state, got: %s", output)
	}
	if strings.Contains(output, "Reason:") {
		t.Errorf("unexpected reason line: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerTransport,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Layer: log.LayerTransport, Message: "connection refused", Context: "dial"},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "TRANSPORT Error") {
		t.Errorf("expected error header, got: %s", output)
	}
	if !strings.Contains(output, "Message: connection refused") || !strings.Contains(output, "Context: dial") {
		t.Errorf("expected error details, got: %s", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{1500 * time.Microsecond, "1.500ms"},
		{2 * time.Second, "2.000s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLayerFlag("Manager"); err != nil || l != log.LayerManager {
		t.Errorf("ParseLayerFlag(Manager) = %v, %v", l, err)
	}
	if _, err := ParseLayerFlag("wire"); err == nil {
		t.Error("expected error for unknown layer")
	}
	if c, err := ParseCategoryFlag("error"); err != nil || c != log.CategoryError {
		t.Errorf("ParseCategoryFlag(error) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestRunViewFiltered(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sampleEvents(base))

	cat := log.CategoryAttempt
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if got := strings.Count(output, "MANAGER Attempt"); got != 2 {
		t.Errorf("expected 2 attempt events, got %d: %s", got, output)
	}
	if strings.Contains(output, "Error") {
		t.Errorf("error event should be filtered out: %s", output)
	}

	buf.Reset()
	if err := RunView(path, ViewFilter{ConnID: "conn-1"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if strings.Count(buf.String(), "[conn:conn-1]") != 2 {
		t.Errorf("expected 2 conn-1 events, got: %s", buf.String())
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView("/nonexistent/file.alog", ViewFilter{}, &buf); err == nil {
		t.Error("expected error for missing file")
	}
}
