package frameio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// ErrPoolType indicates FramePool yielded a value of an unexpected type.
// This should never happen in practice; it guards against a future
// change to FramePool.New's return type going unnoticed.
var ErrPoolType = errors.New("frame pool: unexpected value type")

// Listener reads unicast SOME/IP datagrams from a UDP socket using
// pooled buffers.
type Listener struct {
	conn *net.UDPConn
}

// NewListener binds a UDP listener to addr (e.g., ":30509").
func NewListener(addr string) (*Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve frameio listen addr %q: %w", addr, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen udp %q: %w", addr, err)
	}

	return &Listener{conn: conn}, nil
}

// NewListenerFromConn wraps an existing UDP connection. Useful for
// tests that need a listener bound to an ephemeral port, or for
// sharing one socket between Listener and Sender.
func NewListenerFromConn(conn *net.UDPConn) *Listener {
	return &Listener{conn: conn}
}

// LocalAddr returns the address the listener is bound to.
func (l *Listener) LocalAddr() net.Addr {
	return l.conn.LocalAddr()
}

// Recv blocks until a datagram is received. Returns a slice borrowed
// from FramePool, the sender's address, and the pool pointer the slice
// was carved from — the caller must FramePool.Put(bufp) once the
// payload has been consumed or copied out.
//
// ctx is accepted for API symmetry with the rest of the daemon's
// context-threaded calls; cancellation is achieved by calling Close,
// which unblocks the underlying read with a use-of-closed-connection
// error.
func (l *Listener) Recv(ctx context.Context) ([]byte, netip.AddrPort, *[]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, netip.AddrPort{}, nil, fmt.Errorf("listener recv: %w", err)
	}

	bufp, ok := FramePool.Get().(*[]byte)
	if !ok {
		return nil, netip.AddrPort{}, nil, fmt.Errorf("listener recv: %w", ErrPoolType)
	}

	n, addr, err := l.conn.ReadFromUDPAddrPort(*bufp)
	if err != nil {
		FramePool.Put(bufp)
		return nil, netip.AddrPort{}, nil, fmt.Errorf("listener read: %w", err)
	}

	return (*bufp)[:n], addr, bufp, nil
}

// Close closes the underlying UDP connection, unblocking any pending Recv.
func (l *Listener) Close() error {
	if err := l.conn.Close(); err != nil {
		return fmt.Errorf("close listener: %w", err)
	}
	return nil
}
