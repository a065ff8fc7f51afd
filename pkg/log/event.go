package log

import (
	"time"
)

// Event represents a connection log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the connection or attempt (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the target address (host:port).
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Attempt     *AttemptEvent     `cbor:"10,keyasint,omitempty"` // Connect request issued
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Connection state
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerTransport is the socket layer (dial, read, close).
	LayerTransport Layer = 0
	// LayerManager is the reconnect manager.
	LayerManager Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerManager:
		return "MANAGER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryAttempt indicates a connect request was issued.
	CategoryAttempt Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAttempt:
		return "ATTEMPT"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory converts a category name (case-sensitive, as printed by
// String) back to a Category.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "ATTEMPT":
		return CategoryAttempt, true
	case "STATE":
		return CategoryState, true
	case "ERROR":
		return CategoryError, true
	default:
		return 0, false
	}
}

// AttemptEvent captures a single connect request.
type AttemptEvent struct {
	// Number is the 1-based attempt counter of the manager.
	Number uint64 `cbor:"1,keyasint"`

	// Result is the synchronous outcome of the request.
	Result AttemptResult `cbor:"2,keyasint"`

	// SincePrevious is the gap to the previous attempt (0 for the first).
	// Stored as nanoseconds.
	SincePrevious time.Duration `cbor:"3,keyasint,omitempty"`
}

// AttemptResult is the synchronous outcome of a connect request.
type AttemptResult uint8

const (
	// AttemptPending means the request is in flight; an event will follow.
	AttemptPending AttemptResult = 0
	// AttemptAlreadyConnected means the transport reported an existing connection.
	AttemptAlreadyConnected AttemptResult = 1
	// AttemptRejected means the transport refused the request synchronously.
	AttemptRejected AttemptResult = 2
)

// String returns the attempt result name.
func (r AttemptResult) String() string {
	switch r {
	case AttemptPending:
		return "PENDING"
	case AttemptAlreadyConnected:
		return "ALREADY_CONNECTED"
	case AttemptRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures connection lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
