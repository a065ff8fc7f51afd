package connection

import (
	"fmt"
	"time"
)

// Defaults applied by DefaultTarget.
const (
	// DefaultRetryInterval is the minimum spacing between connect attempts.
	DefaultRetryInterval = 10 * time.Second

	// DefaultConnectTimeout bounds a single connect attempt.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultWaitMessage is logged each time a cycle ends without a connection.
	DefaultWaitMessage = "waiting for connection"
)

// Target describes the endpoint a Manager keeps a connection to.
// It is a value type and is never modified after Start.
type Target struct {
	// Address is the remote host:port.
	Address string

	// ConnectTimeout is passed to the transport for each attempt.
	ConnectTimeout time.Duration

	// RetryInterval is the minimum time between the starts of two attempts.
	RetryInterval time.Duration

	// WaitMessage is logged whenever a cycle ends (connection lost or
	// attempt failed) and another attempt will follow.
	WaitMessage string
}

// DefaultTarget returns a Target for addr with default timings.
func DefaultTarget(addr string) Target {
	return Target{
		Address:        addr,
		ConnectTimeout: DefaultConnectTimeout,
		RetryInterval:  DefaultRetryInterval,
		WaitMessage:    DefaultWaitMessage,
	}
}

// Validate checks that the target can be used by a Manager.
func (t Target) Validate() error {
	if t.Address == "" {
		return fmt.Errorf("target address is required")
	}
	if t.ConnectTimeout < 0 {
		return fmt.Errorf("connect timeout must not be negative: %v", t.ConnectTimeout)
	}
	if t.RetryInterval <= 0 {
		return fmt.Errorf("retry interval must be positive: %v", t.RetryInterval)
	}
	return nil
}

// String returns the address.
func (t Target) String() string {
	return t.Address
}
