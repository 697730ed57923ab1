package someip

import "github.com/dantte-lp/go-someip/internal/wire"

// TPHeaderSize is the fixed size of the SOME/IP-TP sub-header in bytes.
const TPHeaderSize = 4

// TPHeader is the decoded 4-byte SOME/IP-TP sub-header: a 28-bit segment
// offset (in 16-byte units), a 3-bit reserved field, and a 1-bit
// more-segments flag, packed as (offset<<4 | reserved<<1 | more).
//
// Reassembly of TP segments is out of scope for this codec (see package
// doc); Reserved is preserved verbatim on encode and decode and is never
// validated against zero.
type TPHeader struct {
	OffsetUnits uint32 // offset in 16-byte units (28 bits)
	Reserved    uint8  // 3 bits, preserved as-is
	More        bool
}

// ByteOffset returns the segment's byte offset (OffsetUnits * 16).
func (t TPHeader) ByteOffset() uint32 {
	return t.OffsetUnits * 16
}

// EncodeTPHeader packs t into the standard (offset<<4 | reserved<<1 |
// more) layout and writes it to w as 4 big-endian bytes.
func EncodeTPHeader(w wire.ByteWriter, t TPHeader) error {
	packed := (t.OffsetUnits&0x0FFFFFFF)<<4 | uint32(t.Reserved&0x7)<<1
	if t.More {
		packed |= 1
	}
	var buf [TPHeaderSize]byte
	wire.PutUint32(buf[:], packed, wire.Big)
	return w.WriteBytes(buf[:])
}

// DecodeTPHeader unpacks a 4-byte TP sub-header from buf.
func DecodeTPHeader(buf []byte) (TPHeader, error) {
	if len(buf) < TPHeaderSize {
		return TPHeader{}, wire.NewError(wire.KindBufferOverrun,
			"tp header needs %d bytes, got %d", TPHeaderSize, len(buf))
	}
	packed := wire.Uint32(buf[:TPHeaderSize], wire.Big)
	return TPHeader{
		OffsetUnits: packed >> 4,
		Reserved:    uint8((packed >> 1) & 0x7),
		More:        packed&0x1 != 0,
	}, nil
}
