package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/asynccomm/asynccomm-go/pkg/log"
)

// Connection errors.
var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrAlreadyStarted   = errors.New("manager already started")
	ErrManagerClosed    = errors.New("manager closed")
	ErrConnectionLost   = errors.New("connection lost")
)

// Phase is the position of a Manager in its retry cycle.
type Phase uint8

const (
	// PhaseIdle indicates the manager is pacing before the next attempt.
	PhaseIdle Phase = iota

	// PhaseAttempting indicates a connect request is in flight.
	PhaseAttempting

	// PhaseConnected indicates the connection is up.
	PhaseConnected

	// PhaseDisconnected indicates an established connection was lost.
	PhaseDisconnected

	// PhaseFailed indicates an attempt ended without a connection.
	PhaseFailed

	// PhaseClosed indicates the manager has been closed.
	PhaseClosed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseAttempting:
		return "ATTEMPTING"
	case PhaseConnected:
		return "CONNECTED"
	case PhaseDisconnected:
		return "DISCONNECTED"
	case PhaseFailed:
		return "FAILED"
	case PhaseClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Manager. All fields are optional.
type Config struct {
	// Logger receives operational diagnostics. If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives structured attempt and state events.
	ProtocolLogger log.Logger

	// Observer receives lifecycle notifications (e.g. metrics).
	Observer Observer
}

// Manager keeps one connection to a Target alive with a background retry
// loop and lets callers wait for it.
type Manager struct {
	mu sync.RWMutex

	phase         Phase
	target        Target
	state         *State
	pacer         *Pacer
	started       bool
	onPhaseChange func(oldPhase, newPhase Phase)

	logger      *slog.Logger
	protoLogger log.Logger
	observer    Observer

	attempts atomic.Uint64

	// startedCh is closed by Start so early waiters can pick up the state.
	startedCh chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a Manager. Call Start to begin connecting.
func NewManager(cfg Config) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	protoLogger := cfg.ProtocolLogger
	if protoLogger == nil {
		protoLogger = log.NoopLogger{}
	}

	return &Manager{
		phase:       PhaseIdle,
		logger:      cfg.Logger,
		protoLogger: protoLogger,
		observer:    cfg.Observer,
		startedCh:   make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start creates the connection state for target and launches the retry
// loop. It returns immediately. Start may be called once; later calls
// return ErrAlreadyStarted, and calls after Close return ErrManagerClosed.
func (m *Manager) Start(t Transport, target Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.phase == PhaseClosed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	if m.started {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.started = true
	m.target = target
	m.state = NewState(target, m.logger)
	m.pacer = NewPacer(target.RetryInterval)
	close(m.startedCh)
	m.mu.Unlock()

	m.debugLog("starting retry loop",
		"addr", target.Address,
		"retryInterval", target.RetryInterval,
		"connectTimeout", target.ConnectTimeout)

	m.wg.Add(1)
	go m.run(t)
	return nil
}

// Close stops the retry loop and waits for it to exit. Pending and future
// WaitForConnection calls return false. Close is idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.phase == PhaseClosed {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()

	m.setPhase(PhaseClosed)
}

// WaitForConnection blocks until the connection is up or maxWait has
// elapsed, and reports whether it is up. It returns false early when ctx is
// done or the manager is closed. With maxWait <= 0 it only polls.
func (m *Manager) WaitForConnection(ctx context.Context, maxWait time.Duration) bool {
	start := time.Now()
	connected := m.waitForConnection(ctx, start.Add(maxWait))

	if m.observer != nil {
		m.observer.WaitFinished(m.Target(), connected, time.Since(start))
	}
	return connected
}

// WaitForConnectionSeconds is WaitForConnection with a whole-second bound
// and no caller context.
func (m *Manager) WaitForConnectionSeconds(maxWaitSecs int) bool {
	return m.WaitForConnection(context.Background(), time.Duration(maxWaitSecs)*time.Second)
}

func (m *Manager) waitForConnection(ctx context.Context, deadline time.Time) bool {
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	stop := context.AfterFunc(m.ctx, cancel)
	defer stop()

	state := m.awaitState(ctx)
	if state == nil {
		return false
	}

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return state.Connected() && m.ctx.Err() == nil
		}
		if state.WaitBounded(ctx, remaining) {
			return m.ctx.Err() == nil
		}
		if ctx.Err() != nil {
			return false
		}
		// Woken by a false state (e.g. a failed attempt); keep waiting
		// for the remainder of the deadline.
	}
}

// awaitState returns the connection state, blocking until Start has been
// called or ctx is done.
func (m *Manager) awaitState(ctx context.Context) *State {
	select {
	case <-m.startedCh:
	default:
		select {
		case <-m.startedCh:
		case <-ctx.Done():
			return nil
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// run is the retry loop. It exits only when the manager is closed.
func (m *Manager) run(t Transport) {
	defer m.wg.Done()

	for {
		if err := m.cycle(t); err != nil {
			m.debugLog("retry loop stopped", "addr", m.target.Address, "reason", err)
			return
		}
		if m.logger != nil {
			m.logger.Info(m.target.WaitMessage, "addr", m.target.Address)
		}
	}
}

// cycle performs one retry cycle: pace, connect, hold. It returns a
// non-nil error only when the manager's context is cancelled.
func (m *Manager) cycle(t Transport) error {
	m.setPhase(PhaseIdle)
	if err := m.pacer.Wait(m.ctx); err != nil {
		return err
	}

	// Subscribe before connecting so an event delivered before we start
	// waiting is not lost.
	wake := m.state.Changed()

	prev := m.pacer.LastAttempt()
	attempt := m.attempts.Add(1)
	attemptID := uuid.NewString()
	m.setPhase(PhaseAttempting)

	already, err := m.state.sendConnectRequest(t)
	sentAt := time.Now()
	m.pacer.MarkAttempt(sentAt)

	m.logAttempt(attemptID, attempt, prev, sentAt, already, err)
	if m.observer != nil {
		m.observer.AttemptFinished(m.target, err)
	}

	if err != nil {
		m.setPhase(PhaseFailed)
		return m.ctx.Err()
	}

	wasConnected := false
	for {
		connected, next, err := m.state.waitFrom(m.ctx, wake)
		if err != nil {
			return err
		}
		if !connected {
			break
		}
		if !wasConnected {
			wasConnected = true
			m.setPhase(PhaseConnected)
			m.logState(attemptID, PhaseAttempting, PhaseConnected, nil)
			if m.observer != nil {
				m.observer.ConnectionUp(m.target)
			}
		}
		wake = next
	}

	reason := m.state.LastError()
	if wasConnected {
		m.setPhase(PhaseDisconnected)
		m.logState(attemptID, PhaseConnected, PhaseDisconnected, reason)
		if m.observer != nil {
			m.observer.ConnectionDown(m.target, reason)
		}
	} else {
		m.setPhase(PhaseFailed)
		m.logState(attemptID, PhaseAttempting, PhaseFailed, reason)
	}
	return nil
}

// Phase returns the current phase.
func (m *Manager) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// IsConnected returns true if the connection is currently up.
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	return state != nil && state.Connected()
}

// LastError returns the most recent failure reason, if any.
func (m *Manager) LastError() error {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	if state == nil {
		return nil
	}
	return state.LastError()
}

// Target returns the target passed to Start.
func (m *Manager) Target() Target {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.target
}

// Attempts returns the number of connect requests issued so far.
func (m *Manager) Attempts() uint64 {
	return m.attempts.Load()
}

// OnPhaseChange sets a callback for phase transitions. The callback runs on
// the retry loop goroutine and must not block.
func (m *Manager) OnPhaseChange(fn func(oldPhase, newPhase Phase)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPhaseChange = fn
}

func (m *Manager) setPhase(p Phase) {
	m.mu.Lock()
	old := m.phase
	if old == p || old == PhaseClosed {
		m.mu.Unlock()
		return
	}
	m.phase = p
	fn := m.onPhaseChange
	m.mu.Unlock()

	if fn != nil {
		fn(old, p)
	}
}

func (m *Manager) logAttempt(id string, n uint64, prev, sentAt time.Time, already bool, err error) {
	result := log.AttemptPending
	switch {
	case err != nil:
		result = log.AttemptRejected
	case already:
		result = log.AttemptAlreadyConnected
	}

	var since time.Duration
	if !prev.IsZero() {
		since = sentAt.Sub(prev)
	}

	m.protoLogger.Log(log.Event{
		Timestamp:    sentAt,
		ConnectionID: id,
		Layer:        log.LayerManager,
		Category:     log.CategoryAttempt,
		RemoteAddr:   m.target.Address,
		Attempt: &log.AttemptEvent{
			Number:        n,
			Result:        result,
			SincePrevious: since,
		},
	})

	if err != nil {
		m.protoLogger.Log(log.Event{
			Timestamp:    sentAt,
			ConnectionID: id,
			Layer:        log.LayerManager,
			Category:     log.CategoryError,
			RemoteAddr:   m.target.Address,
			Error: &log.ErrorEventData{
				Layer:   log.LayerManager,
				Message: err.Error(),
				Context: "connect request",
			},
		})
	}
}

func (m *Manager) logState(id string, oldPhase, newPhase Phase, reason error) {
	ev := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: id,
		Layer:        log.LayerManager,
		Category:     log.CategoryState,
		RemoteAddr:   m.target.Address,
		StateChange: &log.StateChangeEvent{
			OldState: oldPhase.String(),
			NewState: newPhase.String(),
		},
	}
	if reason != nil {
		ev.StateChange.Reason = reason.Error()
	}
	m.protoLogger.Log(ev)
}

func (m *Manager) debugLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
