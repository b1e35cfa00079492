package transport

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
)

var _ Transport = new(Conn)

// Conn adapts a net.Conn to the Transport semantics. Reads are bounded by the poll
// timeout, which is reported as "no data yet" instead of an error. Writes are left
// blocking, as a timed out write corrupts the state of a TLS connection.
type Conn struct {
	conn    net.Conn
	timeout time.Duration
}

// NewConn wraps the connection. A zero timeout makes reads blocking.
func NewConn(conn net.Conn, timeout time.Duration) *Conn {
	return &Conn{
		conn:    conn,
		timeout: timeout,
	}
}

// Read reads data into the passed buffer. Timeouts are handled automatically.
func (c *Conn) Read(b []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, errors.Wrap(err, "set read deadline")
		}
	}

	n, err := c.conn.Read(b)
	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		return n, io.EOF
	case errors.Is(err, os.ErrDeadlineExceeded):
		return n, nil
	default:
		return n, errors.Wrap(err, "read")
	}
}

// Write writes data into the underlying connection.
func (c *Conn) Write(b []byte) (int, error) {
	n, err := c.conn.Write(b)
	if err != nil {
		return n, errors.Wrap(err, "write")
	}

	return n, nil
}

// Conn unwraps the underlying net.Conn.
func (c *Conn) Conn() net.Conn {
	return c.conn
}

// Close closes the connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}
