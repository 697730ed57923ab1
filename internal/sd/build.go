package sd

import "github.com/dantte-lp/go-someip/internal/wire"

// Packet is the caller-facing SD message: the SOME/IP session fields
// that wrap every SD payload, plus the entries to send. Flags carries
// the payload's reboot/unicast bits (bit7 = reboot flag, bit6 = unicast
// flag; the remaining bits and the 24-bit reserved field are always 0).
type Packet struct {
	ClientID  uint16
	SessionID uint16
	Flags     uint8
	Entries   []EntryData
}

// WirePayload is the lowered form of a Packet's SD payload: entries with
// run1/run2 replaced by index/count pairs into the shared Options array.
type WirePayload struct {
	Flags   uint8
	Entries []WireEntry
	Options []Option
}

const maxOptionRunLen = 0x0F

// Build lowers a Packet into a WirePayload: each entry's Run1/Run2
// option slices are interned into one shared, de-duplicated options
// array (see optionTable), recorded as an (index, count) pair. TTL is
// masked to 24 bits. A run longer than 15 options, or an options array
// that grows past 255 entries (Index1/Index2 are single bytes), fails
// with KindInvalidLength.
func Build(p Packet) (WirePayload, error) {
	table := newOptionTable()
	entries := make([]WireEntry, 0, len(p.Entries))

	for _, ed := range p.Entries {
		if len(ed.Run1) > maxOptionRunLen || len(ed.Run2) > maxOptionRunLen {
			return WirePayload{}, wire.NewError(wire.KindInvalidLength,
				"entry option run exceeds %d options", maxOptionRunLen)
		}

		idx1, n1, err := table.internRun(ed.Run1, optionRange{})
		if err != nil {
			return WirePayload{}, err
		}
		// Exclude Run1's own range: Run2 must never alias it, or this
		// entry's two resolved runs would overlap on decode.
		idx2, n2, err := table.internRun(ed.Run2, optionRange{idx1, n1})
		if err != nil {
			return WirePayload{}, err
		}
		if idx1 > 0xFF || idx2 > 0xFF || len(table.options) > 0xFF {
			return WirePayload{}, wire.NewError(wire.KindInvalidLength,
				"packet options array exceeds 255 entries")
		}

		we := WireEntry{
			Type:         ed.Type,
			Index1:       uint8(idx1),
			Index2:       uint8(idx2),
			NumOpt1:      uint8(n1),
			NumOpt2:      uint8(n2),
			ServiceID:    ed.ServiceID,
			InstanceID:   ed.InstanceID,
			MajorVersion: ed.MajorVersion,
			TTL:          ed.TTL & 0xFFFFFF,
		}
		if ed.IsService() {
			we.MinorVersion = ed.MinorVersion
		} else {
			we.Reserved12Counter4 = ed.Reserved12Counter4
			we.EventgroupID = ed.EventgroupID
		}
		if n1 == 0 {
			we.Index1 = 0
		}
		if n2 == 0 {
			we.Index2 = 0
		}
		entries = append(entries, we)
	}

	return WirePayload{Flags: p.Flags, Entries: entries, Options: table.options}, nil
}
