package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the single source of truth for whether the connection to one
// target is up. Transports update it through HandleEvent; any number of
// goroutines may block on it.
//
// Every mutation closes the current change channel and installs a new one,
// so all goroutines waiting at that moment are woken together.
type State struct {
	addr    string
	timeout time.Duration
	logger  *slog.Logger

	mu        sync.Mutex
	connected bool
	lastErr   error
	changed   chan struct{}
}

// NewState creates a disconnected State for the target.
// The logger may be nil.
func NewState(target Target, logger *slog.Logger) *State {
	return &State{
		addr:    target.Address,
		timeout: target.ConnectTimeout,
		logger:  logger,
		changed: make(chan struct{}),
	}
}

// HandleEvent applies a transport event. Established marks the connection
// up; anything else marks it down and records the reason.
func (s *State) HandleEvent(ev Event) {
	var reason error
	if _, ok := ev.(Established); !ok {
		reason = fmt.Errorf("unexpected event: %v", ev)
		if d, ok := ev.(Disconnected); ok {
			reason = d.Err()
		}
	}

	s.mu.Lock()
	s.connected = reason == nil
	s.lastErr = reason
	s.broadcastLocked()
	s.mu.Unlock()

	if reason != nil && s.logger != nil {
		s.logger.Warn("connection down", "addr", s.addr, "reason", reason)
	}
}

// SendConnectRequest asks the transport to connect, with s as the event sink.
//
// If the transport reports ErrAlreadyConnected the state is marked connected
// immediately and nil is returned. Any other error is recorded and returned;
// no event will follow for it.
func (s *State) SendConnectRequest(t Transport) error {
	_, err := s.sendConnectRequest(t)
	return err
}

// sendConnectRequest is SendConnectRequest that also reports whether the
// transport answered ErrAlreadyConnected.
func (s *State) sendConnectRequest(t Transport) (bool, error) {
	err := t.Connect(s.addr, s.timeout, s)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrAlreadyConnected):
		s.mu.Lock()
		s.connected = true
		s.lastErr = nil
		s.broadcastLocked()
		s.mu.Unlock()
		return true, nil
	default:
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Error("connect failed", "addr", s.addr, "error", err)
		}
		return false, fmt.Errorf("connect to %s: %w", s.addr, err)
	}
}

// Connected reports whether the connection is currently up.
func (s *State) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// LastError returns the most recent failure reason, or nil after a
// successful connect.
func (s *State) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Changed returns a channel that is closed on the next state mutation.
func (s *State) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// WaitBounded returns true at once if connected. Otherwise it blocks until
// the next mutation, until d elapses or until ctx is done, and returns the
// flag at that point. A single wake may report false even though a
// connection is about to be established.
func (s *State) WaitBounded(ctx context.Context, d time.Duration) bool {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return true
	}
	ch := s.changed
	s.mu.Unlock()

	if d <= 0 {
		return false
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ch:
	case <-timer.C:
	case <-ctx.Done():
	}
	return s.Connected()
}

// WaitUnbounded blocks until the next mutation and returns the flag.
// It returns ctx.Err() if ctx is done first.
func (s *State) WaitUnbounded(ctx context.Context) (bool, error) {
	connected, _, err := s.waitFrom(ctx, s.Changed())
	return connected, err
}

// waitFrom blocks until ch is closed and returns the flag together with the
// channel for the following mutation. Callers that capture ch before
// triggering a mutation cannot miss it.
func (s *State) waitFrom(ctx context.Context, ch <-chan struct{}) (bool, <-chan struct{}, error) {
	select {
	case <-ch:
	case <-ctx.Done():
		return false, nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected, s.changed, nil
}

// broadcastLocked wakes all waiters. s.mu must be held.
func (s *State) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}
