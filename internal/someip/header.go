// Package someip implements the SOME/IP frame codec: the 16-byte fixed
// header, the optional TP sub-header, and one-pass frame parsing that
// yields header, optional TP sub-header, and a payload view.
package someip

import (
	"github.com/dantte-lp/go-someip/internal/wire"
)

// HeaderSize is the fixed SOME/IP header size in bytes (service_id,
// method_id, length, client_id, session_id, protocol_version,
// interface_version, message_type, return_code).
const HeaderSize = 16

// ProtocolVersion is the only protocol version this codec accepts on
// decode.
const ProtocolVersion uint8 = 1

// MessageType is the SOME/IP message type byte. TPFlag ORs onto any of
// the base values to indicate a TP sub-header follows the header.
type MessageType uint8

const (
	Request         MessageType = 0x00
	RequestNoReturn MessageType = 0x01
	Notification    MessageType = 0x02
	Response        MessageType = 0x80
	Error           MessageType = 0x81

	// TPFlag marks the message as SOME/IP-TP segmented; it ORs onto any
	// base message type above.
	TPFlag MessageType = 0x20
)

// Header is the decoded 16-byte SOME/IP header.
type Header struct {
	ServiceID        uint16
	MethodID         uint16
	Length           uint32 // bytes after the Length field itself
	ClientID         uint16
	SessionID        uint16
	ProtocolVersion  uint8
	InterfaceVersion uint8
	MessageType      MessageType
	ReturnCode       uint8
}

// HasTPFlag reports whether the header's message type has the TP flag
// set.
func (h Header) HasTPFlag() bool {
	return uint8(h.MessageType)&uint8(TPFlag) != 0
}

// EncodeHeader writes the 16-byte header to w in the fixed field order:
// service_id, method_id, length, client_id, session_id, protocol_version,
// interface_version, message_type, return_code — all big-endian.
func EncodeHeader(w wire.ByteWriter, h Header) error {
	var buf [HeaderSize]byte
	wire.PutUint16(buf[0:2], h.ServiceID, wire.Big)
	wire.PutUint16(buf[2:4], h.MethodID, wire.Big)
	wire.PutUint32(buf[4:8], h.Length, wire.Big)
	wire.PutUint16(buf[8:10], h.ClientID, wire.Big)
	wire.PutUint16(buf[10:12], h.SessionID, wire.Big)
	buf[12] = h.ProtocolVersion
	buf[13] = h.InterfaceVersion
	buf[14] = uint8(h.MessageType)
	buf[15] = h.ReturnCode
	return w.WriteBytes(buf[:])
}

// DecodeHeader parses the first 16 bytes of frame into a Header. frame
// must be at least HeaderSize bytes; only the first HeaderSize are read.
//
// Rejects protocol_version != 1 with KindInvalidProtocolVersion and
// length < 8 with KindInvalidLength.
func DecodeHeader(frame []byte) (Header, error) {
	if len(frame) < HeaderSize {
		return Header{}, wire.NewError(wire.KindBufferOverrun,
			"header needs %d bytes, got %d", HeaderSize, len(frame))
	}

	h := Header{
		ServiceID:        wire.Uint16(frame[0:2], wire.Big),
		MethodID:         wire.Uint16(frame[2:4], wire.Big),
		Length:           wire.Uint32(frame[4:8], wire.Big),
		ClientID:         wire.Uint16(frame[8:10], wire.Big),
		SessionID:        wire.Uint16(frame[10:12], wire.Big),
		ProtocolVersion:  frame[12],
		InterfaceVersion: frame[13],
		MessageType:      MessageType(frame[14]),
		ReturnCode:       frame[15],
	}

	if h.ProtocolVersion != ProtocolVersion {
		return Header{}, wire.NewError(wire.KindInvalidProtocolVersion,
			"got %d, want %d", h.ProtocolVersion, ProtocolVersion)
	}
	if h.Length < 8 {
		return Header{}, wire.NewError(wire.KindInvalidLength,
			"length field %d below minimum 8", h.Length)
	}

	return h, nil
}

// FrameSizeFromPrefix reads the length field from an 8-byte frame prefix
// (service_id, method_id, length) and returns the total frame size
// (length + 8). Rejects length < 8 with KindInvalidLength.
func FrameSizeFromPrefix(prefix []byte) (int, error) {
	if len(prefix) < 8 {
		return 0, wire.NewError(wire.KindBufferOverrun,
			"prefix needs 8 bytes, got %d", len(prefix))
	}
	length := wire.Uint32(prefix[4:8], wire.Big)
	if length < 8 {
		return 0, wire.NewError(wire.KindInvalidLength,
			"length field %d below minimum 8", length)
	}
	return int(length) + 8, nil
}
