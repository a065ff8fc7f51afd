package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asynccomm/asynccomm-go/pkg/connection"
	"github.com/asynccomm/asynccomm-go/pkg/log"
)

// Transport errors.
var (
	ErrEmptyAddress      = errors.New("empty address")
	ErrCommClosed        = errors.New("comm closed")
	ErrConnectInProgress = errors.New("connect already in progress")
	ErrConnectionClosed  = errors.New("connection closed")
	ErrNotConnected      = errors.New("not connected")
)

// Defaults applied by NewComm.
const (
	// DefaultConnectTimeout is used when Connect is given a zero timeout.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultKeepAlive is the TCP keep-alive period.
	DefaultKeepAlive = 30 * time.Second

	// DefaultReadBufferSize is the size of the per-connection read buffer.
	DefaultReadBufferSize = 32 * 1024
)

// CommConfig configures a Comm.
type CommConfig struct {
	// TLSConfig enables TLS on top of TCP when non-nil.
	TLSConfig *tls.Config

	// KeepAlive is the TCP keep-alive period (default: 30s, negative disables).
	KeepAlive time.Duration

	// ReadBufferSize is the per-connection read buffer (default: 32KB).
	ReadBufferSize int

	// OnData receives bytes read from a connection. The slice is owned by
	// the callee. If nil, incoming data is discarded.
	OnData func(conn *ClientConn, data []byte)

	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// ProtocolLogger receives connection state and error events.
	ProtocolLogger log.Logger
}

// Comm dials and tracks outbound connections, one per address.
type Comm struct {
	config      CommConfig
	protoLogger log.Logger

	mu      sync.Mutex
	conns   map[string]*ClientConn
	pending map[string]struct{}
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewComm creates a Comm.
func NewComm(config CommConfig) *Comm {
	if config.KeepAlive == 0 {
		config.KeepAlive = DefaultKeepAlive
	}
	if config.ReadBufferSize <= 0 {
		config.ReadBufferSize = DefaultReadBufferSize
	}

	protoLogger := config.ProtocolLogger
	if protoLogger == nil {
		protoLogger = log.NoopLogger{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Comm{
		config:      config,
		protoLogger: protoLogger,
		conns:       make(map[string]*ClientConn),
		pending:     make(map[string]struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Connect starts a connection attempt to addr and returns immediately.
// See the package documentation for the events delivered to sink.
func (c *Comm) Connect(addr string, timeout time.Duration, sink connection.EventSink) error {
	if addr == "" {
		return ErrEmptyAddress
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrCommClosed
	}
	if _, ok := c.conns[addr]; ok {
		c.mu.Unlock()
		return connection.ErrAlreadyConnected
	}
	if _, ok := c.pending[addr]; ok {
		c.mu.Unlock()
		return ErrConnectInProgress
	}
	c.pending[addr] = struct{}{}
	c.wg.Add(1)
	c.mu.Unlock()

	go c.dial(addr, timeout, sink)
	return nil
}

// Conn returns the live connection to addr.
func (c *Comm) Conn(addr string) (*ClientConn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cc, ok := c.conns[addr]
	return cc, ok
}

// ConnectionCount returns the number of live connections.
func (c *Comm) ConnectionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conns)
}

// Disconnect closes the live connection to addr. The connection's sink
// receives Disconnected with ErrConnectionClosed.
func (c *Comm) Disconnect(addr string) error {
	cc, ok := c.Conn(addr)
	if !ok {
		return ErrNotConnected
	}
	return cc.Close()
}

// Close closes every connection, aborts pending dials and waits for all
// connection goroutines to exit. Close is idempotent.
func (c *Comm) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conns := make([]*ClientConn, 0, len(c.conns))
	for _, cc := range c.conns {
		conns = append(conns, cc)
	}
	c.mu.Unlock()

	c.cancel()
	for _, cc := range conns {
		cc.Close()
	}
	c.wg.Wait()
	return nil
}

func (c *Comm) dial(addr string, timeout time.Duration, sink connection.EventSink) {
	defer c.wg.Done()

	connID := uuid.NewString()
	c.logState(connID, addr, "", "CONNECTING", "")

	conn, err := c.dialContext(addr, timeout)

	c.mu.Lock()
	delete(c.pending, addr)
	if err == nil && c.closed {
		conn.Close()
		err = ErrCommClosed
	}
	var cc *ClientConn
	if err == nil {
		cc = newClientConn(connID, conn)
		c.conns[addr] = cc
	}
	c.mu.Unlock()

	if err != nil {
		c.debugLog("dial failed", "addr", addr, "error", err)
		c.logError(connID, addr, "dial", err)
		c.logState(connID, addr, "CONNECTING", "FAILED", err.Error())
		sink.HandleEvent(connection.Disconnected{Addr: addr, Reason: err})
		return
	}

	c.debugLog("connected", "addr", addr, "connID", connID, "local", conn.LocalAddr().String())
	c.logState(connID, addr, "CONNECTING", "CONNECTED", "")
	sink.HandleEvent(connection.Established{Addr: addr})

	reason := c.readLoop(cc)

	c.mu.Lock()
	if c.conns[addr] == cc {
		delete(c.conns, addr)
	}
	c.mu.Unlock()
	cc.Close()

	c.debugLog("connection lost", "addr", addr, "connID", connID, "reason", reason)
	c.logState(connID, addr, "CONNECTED", "DISCONNECTED", reason.Error())
	sink.HandleEvent(connection.Disconnected{Addr: addr, Reason: reason})
}

func (c *Comm) dialContext(addr string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	dialer := &net.Dialer{KeepAlive: c.config.KeepAlive}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	if c.config.TLSConfig == nil {
		return conn, nil
	}

	tlsConn := tls.Client(conn, c.config.TLSConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("TLS handshake failed: %w", err)
	}
	return tlsConn, nil
}

// readLoop reads until the connection fails and returns the reason.
func (c *Comm) readLoop(cc *ClientConn) error {
	buf := make([]byte, c.config.ReadBufferSize)
	for {
		n, err := cc.conn.Read(buf)
		if n > 0 && c.config.OnData != nil {
			data := make([]byte, n)
			copy(data, buf[:n])
			c.config.OnData(cc, data)
		}
		if err != nil {
			if cc.isClosed() {
				return ErrConnectionClosed
			}
			return err
		}
	}
}

func (c *Comm) logState(connID, addr, oldState, newState, reason string) {
	c.protoLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		RemoteAddr:   addr,
		StateChange: &log.StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (c *Comm) logError(connID, addr, op string, err error) {
	c.protoLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Layer:        log.LayerTransport,
		Category:     log.CategoryError,
		RemoteAddr:   addr,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: err.Error(),
			Context: op,
		},
	})
}

func (c *Comm) debugLog(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, args...)
	}
}

// Compile-time interface satisfaction check.
var _ connection.Transport = (*Comm)(nil)
