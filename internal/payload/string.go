package payload

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dantte-lp/go-someip/internal/wire"
)

// UTF8String is a length-prefixed, BOM-tagged, NUL-terminated UTF-8
// string field: EF BB BF, the text bytes, then a single 0x00 terminator.
// LenBits selects the width of the length prefix (8, 16, or 32); the
// length field is always big-endian. AlignAfterBits, if nonzero, pads to
// that bit alignment (a multiple of 8) after the field.
type UTF8String struct {
	LenBits        int
	AlignAfterBits int
	Value          string
}

func (s *UTF8String) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	if !utf8.ValidString(s.Value) {
		return wire.NewError(wire.KindInvalidUTF8, "utf8_string value is not valid UTF-8")
	}

	body := make([]byte, 0, 4+len(s.Value))
	body = append(body, 0xEF, 0xBB, 0xBF)
	body = append(body, s.Value...)
	body = append(body, 0x00)

	if err := writeLenField(w, s.LenBits, uint64(len(body))); err != nil {
		return err
	}
	if err := w.WriteBytes(body); err != nil {
		return err
	}
	return alignAfter(w, cfg, baseOffset, s.AlignAfterBits)
}

func (s *UTF8String) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	n, err := readLenField(r, s.LenBits)
	if err != nil {
		return err
	}
	if n < 4 {
		return wire.NewError(wire.KindInvalidLength, "utf8_string length %d below minimum 4", n)
	}
	body, err := r.ReadBytes(int(n))
	if err != nil {
		return err
	}
	if body[0] != 0xEF || body[1] != 0xBB || body[2] != 0xBF {
		return wire.NewError(wire.KindInvalidBOM, "utf8_string missing EF BB BF BOM")
	}
	if body[len(body)-1] != 0x00 {
		return wire.NewError(wire.KindInvalidStringTermination, "utf8_string missing NUL terminator")
	}
	text := body[3 : len(body)-1]
	if !utf8.Valid(text) {
		return wire.NewError(wire.KindInvalidUTF8, "utf8_string payload is not valid UTF-8")
	}
	s.Value = string(text)
	return decodeAlignAfter(r, baseOffset, s.AlignAfterBits)
}

// UTF16String is a length-prefixed, BOM-tagged, NUL-terminated UTF-16
// string field: a BOM code unit (0xFEFF, byte order per cfg.Endian), the
// text code units, then a single 0x0000 terminator code unit.
type UTF16String struct {
	LenBits        int
	AlignAfterBits int
	Value          string
}

func (s *UTF16String) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	units := utf16.Encode([]rune(s.Value))
	total := 2 * (1 + len(units) + 1)
	if err := writeLenField(w, s.LenBits, uint64(total)); err != nil {
		return err
	}

	var buf [2]byte
	wire.PutUint16(buf[:], 0xFEFF, cfg.Endian)
	if err := w.WriteBytes(buf[:]); err != nil {
		return err
	}
	for _, u := range units {
		wire.PutUint16(buf[:], u, cfg.Endian)
		if err := w.WriteBytes(buf[:]); err != nil {
			return err
		}
	}
	wire.PutUint16(buf[:], 0, cfg.Endian)
	if err := w.WriteBytes(buf[:]); err != nil {
		return err
	}
	return alignAfter(w, cfg, baseOffset, s.AlignAfterBits)
}

func (s *UTF16String) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	n, err := readLenField(r, s.LenBits)
	if err != nil {
		return err
	}
	if n < 4 || n%2 != 0 {
		return wire.NewError(wire.KindInvalidUTF16, "utf16_string length %d invalid", n)
	}
	body, err := r.ReadBytes(int(n))
	if err != nil {
		return err
	}
	if body[len(body)-2] != 0x00 || body[len(body)-1] != 0x00 {
		return wire.NewError(wire.KindInvalidStringTermination, "utf16_string missing NUL terminator")
	}
	if wire.Uint16(body[0:2], cfg.Endian) != 0xFEFF {
		return wire.NewError(wire.KindInvalidBOM, "utf16_string missing BOM")
	}
	dataLen := len(body) - 4
	if dataLen%2 != 0 {
		return wire.NewError(wire.KindInvalidUTF16, "utf16_string data length %d not a multiple of 2", dataLen)
	}
	units := make([]uint16, dataLen/2)
	for i := range units {
		units[i] = wire.Uint16(body[2+2*i:4+2*i], cfg.Endian)
	}
	s.Value = string(utf16.Decode(units))
	return decodeAlignAfter(r, baseOffset, s.AlignAfterBits)
}
