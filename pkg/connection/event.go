package connection

import "fmt"

// Event is a terminal notification delivered by a Transport.
// It is either Established or Disconnected.
type Event interface {
	fmt.Stringer
	isEvent()
}

// Established reports that the connection to Addr is up.
type Established struct {
	Addr string
}

func (Established) isEvent() {}

// String returns a human-readable description.
func (e Established) String() string {
	return fmt.Sprintf("connection established to %s", e.Addr)
}

// Disconnected reports that a connection attempt failed or an established
// connection to Addr was lost.
type Disconnected struct {
	Addr   string
	Reason error
}

func (Disconnected) isEvent() {}

// Err returns the reason, or ErrConnectionLost if none was given.
func (e Disconnected) Err() error {
	if e.Reason == nil {
		return ErrConnectionLost
	}
	return e.Reason
}

// String returns a human-readable description.
func (e Disconnected) String() string {
	return fmt.Sprintf("disconnected from %s: %v", e.Addr, e.Err())
}
