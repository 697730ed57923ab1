package someip

import "github.com/dantte-lp/go-someip/internal/wire"

// Frame is the result of successfully parsing one SOME/IP frame out of a
// byte buffer: the decoded header, an optional TP sub-header, a view of
// the payload bytes (borrowed from the input buffer, zero-copy), and the
// number of bytes consumed from the input.
type Frame struct {
	Header  Header
	TP      *TPHeader
	Payload []byte
	// PayloadBase is the payload's absolute offset within the frame — 16
	// without a TP sub-header, 20 with one. Payload serializer callers
	// thread this through as the base_offset for pad_to alignment.
	PayloadBase int
	Consumed    int
}

// TryParseFrame is the single entry point for SOME/IP framing. Higher
// layers loop over it on a streaming buffer and advance by
// Frame.Consumed on success.
//
// Returns KindIncompleteFrame when buf does not yet hold a complete
// frame — this means "wait for more bytes", not a protocol error. Any
// other error is a structural failure for this frame.
func TryParseFrame(buf []byte) (Frame, error) {
	if len(buf) < 8 {
		return Frame{}, wire.NewError(wire.KindIncompleteFrame,
			"need 8 bytes for frame-size prefix, got %d", len(buf))
	}

	total, err := FrameSizeFromPrefix(buf[:8])
	if err != nil {
		return Frame{}, err
	}

	if len(buf) < total {
		return Frame{}, wire.NewError(wire.KindIncompleteFrame,
			"need %d bytes for full frame, got %d", total, len(buf))
	}

	header, err := DecodeHeader(buf[:HeaderSize])
	if err != nil {
		return Frame{}, err
	}

	var (
		tp          *TPHeader
		payloadBase int
		payloadSize int
	)

	if header.HasTPFlag() {
		if header.Length < 12 {
			return Frame{}, wire.NewError(wire.KindInvalidLength,
				"tp frame length %d below minimum 12", header.Length)
		}
		tpVal, err := DecodeTPHeader(buf[HeaderSize : HeaderSize+TPHeaderSize])
		if err != nil {
			return Frame{}, err
		}
		tp = &tpVal
		payloadBase = HeaderSize + TPHeaderSize
		payloadSize = int(header.Length) - 12
	} else {
		payloadBase = HeaderSize
		payloadSize = int(header.Length) - 8
	}

	if payloadBase+payloadSize > total {
		return Frame{}, wire.NewError(wire.KindInvalidLength,
			"payload region [%d:%d) exceeds total frame size %d", payloadBase, payloadBase+payloadSize, total)
	}

	return Frame{
		Header:      header,
		TP:          tp,
		Payload:     buf[payloadBase : payloadBase+payloadSize],
		PayloadBase: payloadBase,
		Consumed:    total,
	}, nil
}

// EncodeFrame writes header, an optional TP sub-header, and payload to w,
// computing and patching header.Length from the actual payload size
// (8 bytes of header tail + 4 for TP if present + len(payload)).
// The caller-supplied header.Length is ignored and overwritten.
func EncodeFrame(w wire.ByteWriter, header Header, tp *TPHeader, payload []byte) error {
	if tp != nil {
		header.MessageType = MessageType(uint8(header.MessageType) | uint8(TPFlag))
		header.Length = uint32(12 + len(payload))
	} else {
		header.MessageType = MessageType(uint8(header.MessageType) &^ uint8(TPFlag))
		header.Length = uint32(8 + len(payload))
	}

	if err := EncodeHeader(w, header); err != nil {
		return err
	}
	if tp != nil {
		if err := EncodeTPHeader(w, *tp); err != nil {
			return err
		}
	}
	return w.WriteBytes(payload)
}
