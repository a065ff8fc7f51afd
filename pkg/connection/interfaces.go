package connection

import "time"

// EventSink receives asynchronous connection events.
// HandleEvent is called from the transport's own goroutines and must not block.
type EventSink interface {
	HandleEvent(ev Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev Event)

// HandleEvent calls f(ev).
func (f EventSinkFunc) HandleEvent(ev Event) {
	f(ev)
}

// Transport performs the actual connect and delivers outcomes to a sink.
//
// Connect must not block on the network. A nil return means the attempt is
// in flight and exactly one Established or Disconnected event will follow;
// an established connection later reports its loss with another
// Disconnected. ErrAlreadyConnected means a connection to addr already
// exists and no event will be delivered. Any other error means the attempt
// was refused and no event will be delivered.
type Transport interface {
	Connect(addr string, timeout time.Duration, sink EventSink) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(addr string, timeout time.Duration, sink EventSink) error

// Connect calls f(addr, timeout, sink).
func (f TransportFunc) Connect(addr string, timeout time.Duration, sink EventSink) error {
	return f(addr, timeout, sink)
}

// Observer receives lifecycle notifications from a Manager. Calls are made
// from the Manager's goroutines and from WaitForConnection callers.
type Observer interface {
	// AttemptFinished is called after each connect request with the
	// synchronous result (nil when in flight or already connected).
	AttemptFinished(target Target, err error)

	// ConnectionUp is called when a cycle observes the connection established.
	ConnectionUp(target Target)

	// ConnectionDown is called when an established connection is lost.
	ConnectionDown(target Target, reason error)

	// WaitFinished is called when a WaitForConnection call returns.
	WaitFinished(target Target, connected bool, waited time.Duration)
}

// Compile-time interface satisfaction checks.
var (
	_ EventSink = (*State)(nil)
	_ EventSink = EventSinkFunc(nil)
	_ Transport = TransportFunc(nil)
)
