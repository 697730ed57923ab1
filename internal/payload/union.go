package payload

import "github.com/dantte-lp/go-someip/internal/wire"

// UnionVariant is a tagged union: a length prefix, a selector, then the
// selected alternative's payload (or nothing at all when Selector is
// zero, the monostate/empty case). LenBits and SelectorBits must each be
// 8, 16, or 32; both fields are always big-endian. AlignPayloadBits, if
// nonzero, pads the alternative's own encoded byte length out to that
// many bits (a multiple of 8) — measured from the start of the
// alternative's payload, not the frame's absolute position, so a given
// value always produces the same wire length regardless of where the
// union happens to sit in a frame.
//
// Alternatives maps a nonzero selector to the Field it decodes into;
// Encode reads the currently populated alternative from this map using
// Selector, and Decode resets Selector from the wire and populates the
// matching entry in place. Decode tolerates and skips any trailing bytes
// within the declared length beyond what the selected alternative
// consumed, so AlignPayloadBits padding (and any other slack) never
// needs validating on the way in.
type UnionVariant struct {
	LenBits          int
	SelectorBits     int
	AlignPayloadBits int
	Selector         int
	Alternatives     map[int]Field
}

func (u *UnionVariant) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	if u.Selector == 0 {
		if err := writeLenField(w, u.LenBits, 0); err != nil {
			return err
		}
		return writeLenField(w, u.SelectorBits, 0)
	}

	alt, ok := u.Alternatives[u.Selector]
	if !ok {
		return wire.NewError(wire.KindInvalidUnionSelector, "union_variant selector %d has no registered alternative", u.Selector)
	}

	sizer := &wire.Sizer{}
	if err := alt.Encode(sizer, cfg, baseOffset); err != nil {
		return err
	}
	altLen := sizer.Position()

	pad := 0
	if u.AlignPayloadBits != 0 {
		pad = padNeeded(altLen, u.AlignPayloadBits/8)
	}

	if err := writeLenField(w, u.LenBits, uint64(altLen+pad)); err != nil {
		return err
	}
	if err := writeLenField(w, u.SelectorBits, uint64(u.Selector)); err != nil {
		return err
	}
	if err := alt.Encode(w, cfg, baseOffset); err != nil {
		return err
	}
	if pad == 0 {
		return nil
	}
	buf := make([]byte, pad)
	if cfg.PadByte != 0 {
		for i := range buf {
			buf[i] = cfg.PadByte
		}
	}
	return w.WriteBytes(buf)
}

func (u *UnionVariant) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	n, err := readLenField(r, u.LenBits)
	if err != nil {
		return err
	}
	sel, err := readLenField(r, u.SelectorBits)
	if err != nil {
		return err
	}

	if r.Remaining() < int(n) {
		return wire.NewError(wire.KindBufferOverrun, "union_variant region of %d bytes exceeds remaining input", n)
	}
	regionEnd := r.Position() + int(n)

	if sel == 0 {
		u.Selector = 0
		return r.Skip(int(n))
	}

	alt, ok := u.Alternatives[int(sel)]
	if !ok {
		return wire.NewError(wire.KindInvalidUnionSelector, "union_variant selector %d has no registered alternative", sel)
	}
	if err := alt.Decode(r, cfg, baseOffset); err != nil {
		return err
	}
	u.Selector = int(sel)

	if r.Position() > regionEnd {
		return wire.NewError(wire.KindInvalidLength, "union_variant alternative overran its declared length")
	}
	return r.Skip(regionEnd - r.Position())
}
