package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func decodeSlog(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsAttemptEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Log(Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Layer:        LayerManager,
		Category:     CategoryAttempt,
		RemoteAddr:   "10.0.0.1:38040",
		Attempt:      &AttemptEvent{Number: 4, Result: AttemptAlreadyConnected},
	})

	entry := decodeSlog(t, &buf)
	if entry["conn_id"] != "conn-123" {
		t.Errorf("conn_id: got %v", entry["conn_id"])
	}
	if entry["layer"] != "MANAGER" {
		t.Errorf("layer: got %v", entry["layer"])
	}
	if entry["attempt"] != float64(4) {
		t.Errorf("attempt: got %v", entry["attempt"])
	}
	if entry["result"] != "ALREADY_CONNECTED" {
		t.Errorf("result: got %v", entry["result"])
	}
	if entry["remote_addr"] != "10.0.0.1:38040" {
		t.Errorf("remote_addr: got %v", entry["remote_addr"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v", entry["level"])
	}
}

func TestSlogAdapterLogsStateChangeEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, nil))).WithLevel(slog.LevelInfo)

	adapter.Log(Event{
		ConnectionID: "conn-456",
		Layer:        LayerTransport,
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{OldState: "CONNECTED", NewState: "DISCONNECTED", Reason: "EOF"},
	})

	entry := decodeSlog(t, &buf)
	if entry["new_state"] != "DISCONNECTED" {
		t.Errorf("new_state: got %v", entry["new_state"])
	}
	if entry["reason"] != "EOF" {
		t.Errorf("reason: got %v", entry["reason"])
	}
}

func TestSlogAdapterLogsErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Log(Event{
		ConnectionID: "conn-789",
		Layer:        LayerTransport,
		Category:     CategoryError,
		Error:        &ErrorEventData{Layer: LayerTransport, Message: "connection refused", Context: "dial"},
	})

	entry := decodeSlog(t, &buf)
	if entry["error_msg"] != "connection refused" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
	if entry["error_context"] != "dial" {
		t.Errorf("error_context: got %v", entry["error_context"])
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	adapter.Log(Event{ConnectionID: "hidden"})

	if buf.Len() != 0 {
		t.Errorf("debug event should be filtered at info level, got %q", buf.String())
	}
}
