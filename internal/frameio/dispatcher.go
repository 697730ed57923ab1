package frameio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"

	"github.com/dantte-lp/go-someip/internal/sd"
	"github.com/dantte-lp/go-someip/internal/someip"
	"github.com/dantte-lp/go-someip/internal/wire"
)

// ErrNoListeners indicates Run was called without any listeners.
var ErrNoListeners = errors.New("dispatcher run: no listeners provided")

// FrameObserver receives every frame the Dispatcher classifies. This
// interface decouples frameio from the caller's application state,
// letting the daemon wire in its own routing without frameio importing
// application packages.
type FrameObserver interface {
	// ObserveSD is called for a frame that classified as a Service
	// Discovery message (service 0xffff, method 0x8100, Notification).
	ObserveSD(payload sd.WirePayload, header someip.Header, from netip.AddrPort)

	// ObserveFrame is called for any other successfully parsed frame.
	// The payload is left opaque — frameio does not know the
	// application's service methods.
	ObserveFrame(frame someip.Frame, from netip.AddrPort)

	// ObserveError is called when a datagram failed to parse or, for
	// an SD-classified frame, failed to decode as an SD payload. kind
	// is the wire.Kind string driving metrics labeling.
	ObserveError(kind string, from netip.AddrPort, err error)
}

// Dispatcher reads SOME/IP frames from one or more Listeners and routes
// them to a FrameObserver.
type Dispatcher struct {
	observer FrameObserver
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher that routes frames to observer.
func NewDispatcher(observer FrameObserver, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		observer: observer,
		logger:   logger.With(slog.String("component", "frameio.dispatcher")),
	}
}

// Run reads from all listeners concurrently until ctx is cancelled or
// every listener's connection is closed. When ctx is cancelled Run
// closes the listeners to unblock pending reads. Run blocks until all
// listener goroutines return.
func (d *Dispatcher) Run(ctx context.Context, listeners ...*Listener) error {
	if len(listeners) == 0 {
		return fmt.Errorf("dispatcher: %w", ErrNoListeners)
	}

	// Recv does not observe ctx while blocked; closing the sockets does.
	stop := context.AfterFunc(ctx, func() {
		for _, ln := range listeners {
			_ = ln.Close()
		}
	})
	defer stop()

	done := make(chan struct{}, len(listeners))

	for _, ln := range listeners {
		go func(l *Listener) {
			d.recvLoop(ctx, l)
			done <- struct{}{}
		}(ln)
	}

	for range len(listeners) {
		<-done
	}

	return nil
}

// recvLoop reads datagrams from a single Listener until ctx is
// cancelled or the read fails (typically because Close was called).
func (d *Dispatcher) recvLoop(ctx context.Context, ln *Listener) {
	for {
		if ctx.Err() != nil {
			return
		}

		if err := d.recvOne(ctx, ln); err != nil {
			// Context cancellation during read is expected at shutdown.
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			d.logger.Warn("recv error", slog.String("error", err.Error()))
		}
	}
}

// recvOne performs a single receive-parse-classify-dispatch cycle. The
// pooled buffer is always returned to FramePool before recvOne returns.
func (d *Dispatcher) recvOne(ctx context.Context, ln *Listener) error {
	raw, from, bufp, err := ln.Recv(ctx)
	if err != nil {
		return fmt.Errorf("recv: %w", err)
	}
	defer FramePool.Put(bufp)

	d.Dispatch(raw, from)
	return nil
}

// Dispatch classifies and routes a single already-received datagram. It
// is exported so callers that obtain frame bytes outside of a Listener
// (e.g. a CLI replaying a captured frame) can reuse the same
// classification path as Run.
func (d *Dispatcher) Dispatch(raw []byte, from netip.AddrPort) {
	frame, err := someip.TryParseFrame(raw)
	if err != nil {
		d.observer.ObserveError(wireKind(err), from, err)
		return
	}

	if !isSDFrame(frame.Header) {
		d.observer.ObserveFrame(frame, from)
		return
	}

	payload, err := sd.DecodePayload(frame.Payload)
	if err != nil {
		d.observer.ObserveError(wireKind(err), from, err)
		return
	}

	d.observer.ObserveSD(payload, frame.Header, from)
}

// isSDFrame reports whether h addresses the well-known Service
// Discovery service/method as a Notification, per the classification
// predicate used throughout internal/sd.
func isSDFrame(h someip.Header) bool {
	return h.ServiceID == sd.ServiceID &&
		h.MethodID == sd.MethodID &&
		h.MessageType == someip.Notification
}

// wireKind extracts the wire.Kind string from err for metrics labeling,
// falling back to "other" if err did not originate from this module's
// wire.Error type.
func wireKind(err error) string {
	var werr *wire.Error
	if errors.As(err, &werr) {
		return werr.Kind.String()
	}
	return wire.KindOther.String()
}
