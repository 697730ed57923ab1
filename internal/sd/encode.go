package sd

import (
	"github.com/dantte-lp/go-someip/internal/someip"
	"github.com/dantte-lp/go-someip/internal/wire"
)

// EncodeMessage lowers p via Build and writes it as a complete SOME/IP
// frame: the fixed SD header (service 0xFFFF, method 0x8100, interface
// version 1, message type Notification), then flags, reserved, the
// entries array, and the options array — each of the latter two
// prefixed by its own byte length, computed by measuring the encoded
// region rather than by a parallel arithmetic formula.
func EncodeMessage(p Packet) ([]byte, error) {
	wp, err := Build(p)
	if err != nil {
		return nil, err
	}
	payload, err := EncodePayload(wp)
	if err != nil {
		return nil, err
	}

	header := someip.Header{
		ServiceID:        ServiceID,
		MethodID:         MethodID,
		ClientID:         p.ClientID,
		SessionID:        p.SessionID,
		ProtocolVersion:  someip.ProtocolVersion,
		InterfaceVersion: 1,
		MessageType:      someip.Notification,
	}

	out := wire.NewWriter(nil)
	if err := someip.EncodeFrame(out, header, nil, payload); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodePayload encodes wp's SD payload bytes (everything after the
// SOME/IP header): flags, reserved(24), entries_length, entries,
// options_length, options.
func EncodePayload(wp WirePayload) ([]byte, error) {
	entriesBuf := wire.NewWriter(nil)
	for _, e := range wp.Entries {
		if err := encodeEntry(entriesBuf, e); err != nil {
			return nil, err
		}
	}

	optionsBuf := wire.NewWriter(nil)
	for _, o := range wp.Options {
		if err := encodeOption(optionsBuf, o); err != nil {
			return nil, err
		}
	}

	out := wire.NewWriter(nil)
	if err := out.WriteByte(wp.Flags); err != nil {
		return nil, err
	}
	var reserved [3]byte
	if err := out.WriteBytes(reserved[:]); err != nil {
		return nil, err
	}

	var lenBuf [4]byte
	wire.PutUint32(lenBuf[:], uint32(entriesBuf.Position()), wire.Big)
	if err := out.WriteBytes(lenBuf[:]); err != nil {
		return nil, err
	}
	if err := out.WriteBytes(entriesBuf.Bytes()); err != nil {
		return nil, err
	}

	wire.PutUint32(lenBuf[:], uint32(optionsBuf.Position()), wire.Big)
	if err := out.WriteBytes(lenBuf[:]); err != nil {
		return nil, err
	}
	if err := out.WriteBytes(optionsBuf.Bytes()); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
