package transport

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/pkg/errors"
)

// NewTLS wraps an established connection into a TLS client and completes the handshake
// before returning, so the poll timeout applied afterwards can't interrupt it.
func NewTLS(ctx context.Context, conn net.Conn, cfg *tls.Config, timeout time.Duration) (*Conn, error) {
	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return nil, errors.Wrap(err, "tls handshake")
	}

	return NewConn(tlsConn, timeout), nil
}
