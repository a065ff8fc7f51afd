// Package transport provides the TCP implementation of connection.Transport.
//
// Comm performs non-blocking connects: Connect starts a dial in the
// background and returns at once. The outcome is reported to the caller's
// EventSink:
//
//	dial ok         -> Established
//	dial failed     -> Disconnected(reason)
//	peer closed     -> Disconnected(io.EOF)
//	Disconnect/Close -> Disconnected(ErrConnectionClosed)
//
// A live connection per address is tracked, so a second Connect to the same
// address returns connection.ErrAlreadyConnected without an event.
//
// Incoming bytes are handed to CommConfig.OnData from the connection's read
// goroutine. Framing and protocol semantics are left to the caller.
package transport
