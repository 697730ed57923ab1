package frameio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"sync"
)

// ErrSenderClosed indicates Send was called after Close.
var ErrSenderClosed = errors.New("frameio sender: closed")

// Sender writes pre-encoded SOME/IP frame bytes to unicast UDP peers.
// It performs no retry and no session correlation — the caller owns
// delivery semantics.
type Sender struct {
	conn   *net.UDPConn
	mu     sync.Mutex
	closed bool
}

// NewSender binds a sending UDP socket to localAddr (e.g., ":0" for an
// ephemeral port).
func NewSender(localAddr string) (*Sender, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", localAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve frameio sender addr %q: %w", localAddr, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("create frameio sender %q: %w", localAddr, err)
	}

	return &Sender{conn: conn}, nil
}

// NewSenderFromConn wraps an existing UDP connection, letting a
// Listener's bound socket double as the Sender's transport.
func NewSenderFromConn(conn *net.UDPConn) *Sender {
	return &Sender{conn: conn}
}

// Send writes buf (a fully-encoded SOME/IP frame) to addr. ctx is
// accepted for API symmetry; there is no retry loop to cancel.
func (s *Sender) Send(ctx context.Context, buf []byte, addr netip.AddrPort) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sender send: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("send to %s: %w", addr, ErrSenderClosed)
	}
	s.mu.Unlock()

	if _, err := s.conn.WriteToUDPAddrPort(buf, addr); err != nil {
		return fmt.Errorf("send frame to %s: %w", addr, err)
	}

	return nil
}

// Close closes the underlying UDP connection. Safe to call once; a
// Sender created via NewSenderFromConn shares its caller's connection,
// so closing it also closes that connection.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close sender socket: %w", err)
	}

	return nil
}
