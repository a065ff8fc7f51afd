package transport

import (
	"net"
	"sync"
)

// ClientConn is a live outbound connection owned by a Comm.
type ClientConn struct {
	id   string
	conn net.Conn

	closeOnce sync.Once
	closeCh   chan struct{}
	writeMu   sync.Mutex
}

func newClientConn(id string, conn net.Conn) *ClientConn {
	return &ClientConn{
		id:      id,
		conn:    conn,
		closeCh: make(chan struct{}),
	}
}

// ID returns the unique connection ID.
func (c *ClientConn) ID() string {
	return c.id
}

// LocalAddr returns the local network address.
func (c *ClientConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *ClientConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Send writes data to the peer.
func (c *ClientConn) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.isClosed() {
		return ErrConnectionClosed
	}

	_, err := c.conn.Write(data)
	return err
}

// Close closes the connection. The owning Comm reports the loss to the
// connection's sink.
func (c *ClientConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}

func (c *ClientConn) isClosed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}
