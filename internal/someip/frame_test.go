package someip_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dantte-lp/go-someip/internal/someip"
	"github.com/dantte-lp/go-someip/internal/wire"
)

// TestFrameRoundTrip encodes and reparses a representative set of
// headers and payloads.
func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  someip.Header
		payload []byte
	}{
		{
			name: "empty payload",
			header: someip.Header{
				ServiceID: 0x0001, MethodID: 0x0002, ClientID: 0x0003, SessionID: 0x0004,
				ProtocolVersion: 1, InterfaceVersion: 1, MessageType: someip.Request,
			},
			payload: nil,
		},
		{
			name: "small payload",
			header: someip.Header{
				ServiceID: 0xFFFF, MethodID: 0x8100, ClientID: 0, SessionID: 0,
				ProtocolVersion: 1, InterfaceVersion: 1, MessageType: someip.Notification,
			},
			payload: []byte{0xAA, 0xBB, 0xCC},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := wire.NewWriter(nil)
			if err := someip.EncodeFrame(w, tt.header, nil, tt.payload); err != nil {
				t.Fatalf("EncodeFrame() error: %v", err)
			}

			frame, err := someip.TryParseFrame(w.Bytes())
			if err != nil {
				t.Fatalf("TryParseFrame() error: %v", err)
			}

			wantHeader := tt.header
			wantHeader.Length = uint32(8 + len(tt.payload))
			if frame.Header != wantHeader {
				t.Fatalf("Header = %+v, want %+v", frame.Header, wantHeader)
			}
			if frame.TP != nil {
				t.Fatalf("TP = %+v, want nil", frame.TP)
			}
			if !bytes.Equal(frame.Payload, tt.payload) {
				t.Fatalf("Payload = % X, want % X", frame.Payload, tt.payload)
			}
			if frame.Consumed != someip.HeaderSize+len(tt.payload) {
				t.Fatalf("Consumed = %d, want %d", frame.Consumed, someip.HeaderSize+len(tt.payload))
			}
		})
	}
}

// TestTPParse exercises a frame carrying a TP sub-header.
func TestTPParse(t *testing.T) {
	t.Parallel()

	header := someip.Header{
		ServiceID: 0x1111, MethodID: 0x2222, ClientID: 0, SessionID: 0,
		ProtocolVersion: 1, InterfaceVersion: 1, MessageType: someip.Request,
	}
	tp := someip.TPHeader{OffsetUnits: 0, Reserved: 0, More: true}
	payload := []byte{0xAA, 0xBB}

	w := wire.NewWriter(nil)
	if err := someip.EncodeFrame(w, header, &tp, payload); err != nil {
		t.Fatalf("EncodeFrame() error: %v", err)
	}

	if !bytes.Equal(w.Bytes()[16:20], []byte{0x00, 0x00, 0x00, 0x01}) {
		t.Fatalf("TP sub-header bytes = % X, want 00 00 00 01", w.Bytes()[16:20])
	}

	frame, err := someip.TryParseFrame(w.Bytes())
	if err != nil {
		t.Fatalf("TryParseFrame() error: %v", err)
	}
	if frame.TP == nil || frame.TP.OffsetUnits != 0 || !frame.TP.More {
		t.Fatalf("TP = %+v, want offset=0 more=true", frame.TP)
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("Payload = % X, want % X", frame.Payload, payload)
	}
	if frame.Consumed != 22 {
		t.Fatalf("Consumed = %d, want 22", frame.Consumed)
	}
	if frame.Header.Length != 14 {
		t.Fatalf("Header.Length = %d, want 14", frame.Header.Length)
	}
}

func TestTryParseFrameIncomplete(t *testing.T) {
	t.Parallel()

	buf := []byte{0x12, 0x34, 0x56, 0x78, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00}
	_, err := someip.TryParseFrame(buf)
	if !errors.Is(err, wire.ErrIncompleteFrame) {
		t.Fatalf("TryParseFrame() error = %v, want ErrIncompleteFrame", err)
	}
}

func TestTryParseFrameRejectsShortTPLength(t *testing.T) {
	t.Parallel()

	header := someip.Header{ProtocolVersion: 1, MessageType: someip.MessageType(uint8(someip.Request) | uint8(someip.TPFlag))}
	buf := make([]byte, 16)
	wire.PutUint16(buf[0:2], header.ServiceID, wire.Big)
	wire.PutUint32(buf[4:8], 8, wire.Big) // length=8 < 12 required with TP flag
	buf[12] = 1
	buf[14] = uint8(header.MessageType)

	_, err := someip.TryParseFrame(buf)
	if !errors.Is(err, wire.ErrInvalidLength) {
		t.Fatalf("TryParseFrame() error = %v, want ErrInvalidLength", err)
	}
}
