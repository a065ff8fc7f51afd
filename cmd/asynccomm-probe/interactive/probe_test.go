package interactive

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/asynccomm/asynccomm-go/pkg/connection"
)

type fakeConn struct {
	connected bool
	phase     connection.Phase
	attempts  uint64
	lastErr   error
	waited    time.Duration
}

func (f *fakeConn) WaitForConnection(_ context.Context, d time.Duration) bool {
	f.waited = d
	return f.connected
}
func (f *fakeConn) IsConnected() bool { return f.connected }
func (f *fakeConn) Phase() connection.Phase { return f.phase }
func (f *fakeConn) Attempts() uint64 { return f.attempts }
func (f *fakeConn) LastError() error { return f.lastErr }
func (f *fakeConn) Target() connection.Target { return connection.DefaultTarget("db.internal:38040") }

func newTestProbe(conn Connection, drop func() error) (*Probe, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Probe{conn: conn, drop: drop, out: &buf}, &buf
}

func TestExecuteStatus(t *testing.T) {
	conn := &fakeConn{
		phase:    connection.PhaseFailed,
		attempts: 3,
		lastErr:  errors.New("connection refused"),
	}
	p, out := newTestProbe(conn, nil)

	assert.True(t, p.Execute(context.Background(), "status"))

	s := out.String()
	assert.Contains(t, s, "Target:         db.internal:38040")
	assert.Contains(t, s, "Retry Interval: 10s")
	assert.Contains(t, s, "Phase:          FAILED")
	assert.Contains(t, s, "Connected:      false")
	assert.Contains(t, s, "Attempts:       3")
	assert.Contains(t, s, "Last Error:     connection refused")
}

func TestExecuteWait(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		conn := &fakeConn{connected: true}
		p, out := newTestProbe(conn, nil)

		p.Execute(context.Background(), "wait 5")
		assert.Equal(t, 5*time.Second, conn.waited)
		assert.Contains(t, out.String(), "Connected after")
	})

	t.Run("timeout", func(t *testing.T) {
		p, out := newTestProbe(&fakeConn{}, nil)
		p.Execute(context.Background(), "w 0")
		assert.Contains(t, out.String(), "Not connected after")
	})

	t.Run("bad args", func(t *testing.T) {
		conn := &fakeConn{}
		p, out := newTestProbe(conn, nil)

		p.Execute(context.Background(), "wait")
		assert.Contains(t, out.String(), "Usage: wait <seconds>")

		p.Execute(context.Background(), "wait -1")
		assert.Contains(t, out.String(), "Invalid seconds: -1")
		assert.Zero(t, conn.waited)
	})
}

func TestExecuteDrop(t *testing.T) {
	calls := 0
	p, out := newTestProbe(&fakeConn{}, func() error {
		calls++
		if calls > 1 {
			return errors.New("not connected")
		}
		return nil
	})

	p.Execute(context.Background(), "drop")
	assert.Contains(t, out.String(), "Connection dropped")

	p.Execute(context.Background(), "drop")
	assert.Contains(t, out.String(), "Drop failed: not connected")
	assert.Equal(t, 2, calls)

	p, out = newTestProbe(&fakeConn{}, nil)
	p.Execute(context.Background(), "drop")
	assert.Contains(t, out.String(), "Drop not supported")
}

func TestExecuteMisc(t *testing.T) {
	p, out := newTestProbe(&fakeConn{}, nil)

	assert.True(t, p.Execute(context.Background(), "   "))
	assert.Empty(t, out.String())

	assert.True(t, p.Execute(context.Background(), "help"))
	assert.Contains(t, out.String(), "Probe Commands:")

	assert.True(t, p.Execute(context.Background(), "bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")

	assert.False(t, p.Execute(context.Background(), "QUIT"))
}

var _ Connection = (*connection.Manager)(nil)
