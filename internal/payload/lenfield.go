package payload

import "github.com/dantte-lp/go-someip/internal/wire"

// writeLenField writes a length or selector prefix field of the given
// bit width (8, 16, or 32) in big-endian, independent of cfg.Endian.
func writeLenField(w wire.ByteWriter, bits int, v uint64) error {
	switch bits {
	case 8:
		return w.WriteByte(byte(v))
	case 16:
		var buf [2]byte
		wire.PutUint16(buf[:], uint16(v), wire.Big)
		return w.WriteBytes(buf[:])
	case 32:
		var buf [4]byte
		wire.PutUint32(buf[:], uint32(v), wire.Big)
		return w.WriteBytes(buf[:])
	default:
		return wire.NewError(wire.KindOther, "unsupported length field width %d bits", bits)
	}
}

// readLenField reads a length or selector prefix field written by
// writeLenField.
func readLenField(r *wire.Reader, bits int) (uint64, error) {
	switch bits {
	case 8:
		b, err := r.ReadByte()
		return uint64(b), err
	case 16:
		buf, err := r.ReadBytes(2)
		if err != nil {
			return 0, err
		}
		return uint64(wire.Uint16(buf, wire.Big)), nil
	case 32:
		buf, err := r.ReadBytes(4)
		if err != nil {
			return 0, err
		}
		return uint64(wire.Uint32(buf, wire.Big)), nil
	default:
		return 0, wire.NewError(wire.KindOther, "unsupported length field width %d bits", bits)
	}
}

// alignAfter pads w to alignBits (a multiple of 8, or 0 for no-op)
// frame-absolute alignment, using PadTo's semantics.
func alignAfter(w wire.ByteWriter, cfg Config, baseOffset, alignBits int) error {
	if alignBits == 0 {
		return nil
	}
	pt := PadTo{Align: alignBits / 8}
	return pt.Encode(w, cfg, baseOffset)
}

// decodeAlignAfter skips the padding written by alignAfter.
func decodeAlignAfter(r *wire.Reader, baseOffset, alignBits int) error {
	if alignBits == 0 {
		return nil
	}
	pt := PadTo{Align: alignBits / 8}
	return pt.Decode(r, Config{}, baseOffset)
}

// wrapField annotates err with the name of the aggregate field being
// encoded or decoded, preserving its Kind for errors.Is comparisons.
func wrapField(name string, err error) error {
	if err == nil {
		return nil
	}
	if we, ok := err.(*wire.Error); ok {
		return wire.NewError(we.Kind, "field %s: %s", name, we.Msg)
	}
	return err
}
