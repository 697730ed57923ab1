package sd

import "github.com/dantte-lp/go-someip/internal/wire"

// entrySize is the fixed byte length of one wire entry.
const entrySize = 16

// EntryData is one entry as a caller builds a packet: a service or
// eventgroup entry together with up to two option runs that reference
// options by value rather than by a pre-resolved wire index. Build
// lowers a slice of EntryData plus their options into a WirePayload.
//
// Type determines which tail fields apply: IsService reports true for
// FindService/OfferService, in which case MinorVersion is meaningful;
// otherwise Reserved12Counter4 and EventgroupID are.
type EntryData struct {
	Type         EntryType
	ServiceID    uint16
	InstanceID   uint16
	MajorVersion uint8
	TTL          uint32 // masked to 24 bits on build

	MinorVersion uint32

	Reserved12Counter4 uint16
	EventgroupID       uint16

	Run1 []Option
	Run2 []Option
}

// IsService reports whether e lowers to a service_entry.
func (e EntryData) IsService() bool { return IsServiceEntryType(e.Type) }

// WireEntry is one entry after lowering: Run1/Run2 have been replaced by
// Index1/Index2 (start offsets into the packet's shared Options slice)
// and NumOpt1/NumOpt2 (run lengths, each 0-15).
type WireEntry struct {
	Type     EntryType
	Index1   uint8
	Index2   uint8
	NumOpt1  uint8
	NumOpt2  uint8

	ServiceID    uint16
	InstanceID   uint16
	MajorVersion uint8
	TTL          uint32

	MinorVersion uint32

	Reserved12Counter4 uint16
	EventgroupID       uint16
}

// IsService reports whether e decodes as a service_entry.
func (e WireEntry) IsService() bool { return IsServiceEntryType(e.Type) }

func (e WireEntry) numOpt1NumOpt2() byte {
	return (e.NumOpt1&0x0F)<<4 | (e.NumOpt2 & 0x0F)
}

func encodeEntry(w wire.ByteWriter, e WireEntry) error {
	var buf [entrySize]byte
	buf[0] = byte(e.Type)
	buf[1] = e.Index1
	buf[2] = e.Index2
	buf[3] = e.numOpt1NumOpt2()
	wire.PutUint16(buf[4:6], e.ServiceID, wire.Big)
	wire.PutUint16(buf[6:8], e.InstanceID, wire.Big)
	buf[8] = e.MajorVersion
	if err := wire.PutUint24BE(buf[9:12], e.TTL&0xFFFFFF); err != nil {
		return err
	}
	if e.IsService() {
		wire.PutUint32(buf[12:16], e.MinorVersion, wire.Big)
	} else {
		wire.PutUint16(buf[12:14], e.Reserved12Counter4, wire.Big)
		wire.PutUint16(buf[14:16], e.EventgroupID, wire.Big)
	}
	return w.WriteBytes(buf[:])
}

func decodeEntry(buf []byte) (WireEntry, error) {
	if len(buf) != entrySize {
		return WireEntry{}, wire.NewError(wire.KindSDInvalidLengths, "entry is %d bytes, want %d", len(buf), entrySize)
	}
	t := EntryType(buf[0])
	if !IsServiceEntryType(t) && !IsEventgroupEntryType(t) {
		return WireEntry{}, wire.NewError(wire.KindSDInvalidHeader, "unknown sd entry type %#x", buf[0])
	}

	e := WireEntry{
		Type:         t,
		Index1:       buf[1],
		Index2:       buf[2],
		NumOpt1:      buf[3] >> 4,
		NumOpt2:      buf[3] & 0x0F,
		ServiceID:    wire.Uint16(buf[4:6], wire.Big),
		InstanceID:   wire.Uint16(buf[6:8], wire.Big),
		MajorVersion: buf[8],
		TTL:          wire.Uint24BE(buf[9:12]),
	}
	if e.IsService() {
		e.MinorVersion = wire.Uint32(buf[12:16], wire.Big)
	} else {
		e.Reserved12Counter4 = wire.Uint16(buf[12:14], wire.Big)
		e.EventgroupID = wire.Uint16(buf[14:16], wire.Big)
	}
	return e, nil
}
