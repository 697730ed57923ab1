package someip_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dantte-lp/go-someip/internal/someip"
	"github.com/dantte-lp/go-someip/internal/wire"
)

// TestMinimalHeaderRoundTrip exercises the minimal 16-byte header case.
func TestMinimalHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	h := someip.Header{
		ServiceID:        0x1234,
		MethodID:         0x5678,
		Length:           8,
		ClientID:         0x9ABC,
		SessionID:        0xDEF0,
		ProtocolVersion:  1,
		InterfaceVersion: 2,
		MessageType:      someip.Request,
		ReturnCode:       0,
	}

	w := wire.NewWriter(nil)
	if err := someip.EncodeHeader(w, h); err != nil {
		t.Fatalf("EncodeHeader() error: %v", err)
	}

	want := []byte{
		0x12, 0x34, 0x56, 0x78, 0x00, 0x00, 0x00, 0x08,
		0x9A, 0xBC, 0xDE, 0xF0, 0x01, 0x02, 0x00, 0x00,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("EncodeHeader() = % X, want % X", w.Bytes(), want)
	}

	got, err := someip.DecodeHeader(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeHeader() error: %v", err)
	}
	if got != h {
		t.Fatalf("DecodeHeader() = %+v, want %+v", got, h)
	}
}

// TestFrameSizeFromPrefix is scenario S2.
func TestFrameSizeFromPrefix(t *testing.T) {
	t.Parallel()

	prefix := []byte{0x12, 0x34, 0x56, 0x78, 0x00, 0x00, 0x00, 0x08}
	got, err := someip.FrameSizeFromPrefix(prefix)
	if err != nil {
		t.Fatalf("FrameSizeFromPrefix() error: %v", err)
	}
	if got != 16 {
		t.Fatalf("FrameSizeFromPrefix() = %d, want 16", got)
	}
}

func TestDecodeHeaderRejectsBadProtocolVersion(t *testing.T) {
	t.Parallel()

	buf := make([]byte, someip.HeaderSize)
	wire.PutUint32(buf[4:8], 8, wire.Big)
	buf[12] = 2 // protocol version

	_, err := someip.DecodeHeader(buf)
	if !errors.Is(err, wire.ErrInvalidProtocolVersion) {
		t.Fatalf("DecodeHeader() error = %v, want ErrInvalidProtocolVersion", err)
	}
}

func TestDecodeHeaderRejectsShortLength(t *testing.T) {
	t.Parallel()

	buf := make([]byte, someip.HeaderSize)
	buf[12] = 1
	wire.PutUint32(buf[4:8], 4, wire.Big)

	_, err := someip.DecodeHeader(buf)
	if !errors.Is(err, wire.ErrInvalidLength) {
		t.Fatalf("DecodeHeader() error = %v, want ErrInvalidLength", err)
	}
}

func TestHasTPFlag(t *testing.T) {
	t.Parallel()

	h := someip.Header{MessageType: someip.Request}
	if h.HasTPFlag() {
		t.Fatalf("HasTPFlag() = true for plain Request")
	}
	h.MessageType = someip.MessageType(uint8(someip.Request) | uint8(someip.TPFlag))
	if !h.HasTPFlag() {
		t.Fatalf("HasTPFlag() = false for TP-flagged Request")
	}
}
