package payload

import "github.com/dantte-lp/go-someip/internal/wire"

// PadBytes is a fixed-size padding region: N bytes of cfg.PadByte on
// encode, N bytes skipped unvalidated on decode.
type PadBytes struct {
	N int
}

func (p PadBytes) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	buf := make([]byte, p.N)
	if cfg.PadByte != 0 {
		for i := range buf {
			buf[i] = cfg.PadByte
		}
	}
	return w.WriteBytes(buf)
}

func (p PadBytes) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	return r.Skip(p.N)
}

func padNeeded(offset, align int) int {
	if align <= 1 {
		return 0
	}
	rem := offset % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// PadTo pads with cfg.PadByte until the frame-absolute offset
// (baseOffset plus the cursor's current position) is a multiple of
// Align bytes.
type PadTo struct {
	Align int
}

func (p PadTo) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	n := padNeeded(baseOffset+w.Position(), p.Align)
	if n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if cfg.PadByte != 0 {
		for i := range buf {
			buf[i] = cfg.PadByte
		}
	}
	return w.WriteBytes(buf)
}

func (p PadTo) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	n := padNeeded(baseOffset+r.Position(), p.Align)
	if n == 0 {
		return nil
	}
	return r.Skip(n)
}
