package sd

import (
	"github.com/dantte-lp/go-someip/internal/someip"
	"github.com/dantte-lp/go-someip/internal/wire"
)

// DecodeMessage parses a complete SOME/IP frame as an SD message: the
// frame itself, then the fixed SD header fields (service, method,
// interface version, message type), then the SD payload.
func DecodeMessage(frame []byte) (someip.Header, WirePayload, error) {
	f, err := someip.TryParseFrame(frame)
	if err != nil {
		return someip.Header{}, WirePayload{}, err
	}

	h := f.Header
	if h.ServiceID != ServiceID || h.MethodID != MethodID {
		return someip.Header{}, WirePayload{}, wire.NewError(wire.KindSDInvalidHeader,
			"service/method %#x/%#x, want %#x/%#x", h.ServiceID, h.MethodID, ServiceID, MethodID)
	}
	if h.InterfaceVersion != 1 {
		return someip.Header{}, WirePayload{}, wire.NewError(wire.KindSDInvalidHeader,
			"interface_version %d, want 1", h.InterfaceVersion)
	}
	if h.MessageType != someip.Notification {
		return someip.Header{}, WirePayload{}, wire.NewError(wire.KindSDInvalidHeader,
			"message_type %#x, want notification", h.MessageType)
	}

	wp, err := DecodePayload(f.Payload)
	if err != nil {
		return someip.Header{}, WirePayload{}, err
	}
	return h, wp, nil
}

// DecodePayload parses an SD payload (everything after the SOME/IP
// header): flags, reserved(24, ignored), entries_length, entries,
// options_length, options. entries_length must be a multiple of 16; any
// bytes left over after the declared options region is consumed fail
// with KindSDInvalidLengths.
func DecodePayload(payload []byte) (WirePayload, error) {
	r := wire.NewReader(payload)

	flags, err := r.ReadByte()
	if err != nil {
		return WirePayload{}, err
	}
	if _, err := r.ReadBytes(3); err != nil {
		return WirePayload{}, err
	}

	entriesLenBuf, err := r.ReadBytes(4)
	if err != nil {
		return WirePayload{}, err
	}
	entriesLen := wire.Uint32(entriesLenBuf, wire.Big)
	if entriesLen%entrySize != 0 {
		return WirePayload{}, wire.NewError(wire.KindSDInvalidLengths,
			"entries_length %d is not a multiple of %d", entriesLen, entrySize)
	}
	entriesBytes, err := r.ReadBytes(int(entriesLen))
	if err != nil {
		return WirePayload{}, err
	}

	entries := make([]WireEntry, 0, int(entriesLen)/entrySize)
	for off := 0; off < len(entriesBytes); off += entrySize {
		e, err := decodeEntry(entriesBytes[off : off+entrySize])
		if err != nil {
			return WirePayload{}, err
		}
		entries = append(entries, e)
	}

	optionsLenBuf, err := r.ReadBytes(4)
	if err != nil {
		return WirePayload{}, err
	}
	optionsLen := wire.Uint32(optionsLenBuf, wire.Big)
	optionsBytes, err := r.ReadBytes(int(optionsLen))
	if err != nil {
		return WirePayload{}, err
	}

	var options []Option
	optReader := wire.NewReader(optionsBytes)
	for !optReader.Empty() {
		o, err := decodeOption(optReader)
		if err != nil {
			return WirePayload{}, err
		}
		options = append(options, o)
	}

	if !r.Empty() {
		return WirePayload{}, wire.NewError(wire.KindSDInvalidLengths,
			"%d bytes remain after the options region", r.Remaining())
	}

	return WirePayload{Flags: flags, Entries: entries, Options: options}, nil
}

// ResolveOptionRuns returns e's two option runs as slices into wp's
// shared options array. A zero-count run with a nonzero index, an
// out-of-range (index, count) pair, or two runs that overlap each other
// all fail with KindSDInvalidLengths.
func ResolveOptionRuns(wp WirePayload, e WireEntry) (run1, run2 []Option, err error) {
	n := len(wp.Options)

	resolve := func(index, count uint8) (int, int, error) {
		if count == 0 {
			if index != 0 {
				return 0, 0, wire.NewError(wire.KindSDInvalidLengths, "zero-count option run has nonzero index %d", index)
			}
			return 0, 0, nil
		}
		start, c := int(index), int(count)
		if start+c > n {
			return 0, 0, wire.NewError(wire.KindSDInvalidLengths,
				"option run [%d,%d) exceeds options array of length %d", start, start+c, n)
		}
		return start, c, nil
	}

	start1, count1, err := resolve(e.Index1, e.NumOpt1)
	if err != nil {
		return nil, nil, err
	}
	start2, count2, err := resolve(e.Index2, e.NumOpt2)
	if err != nil {
		return nil, nil, err
	}

	if count1 > 0 && count2 > 0 {
		end1, end2 := start1+count1, start2+count2
		if start1 < end2 && start2 < end1 {
			return nil, nil, wire.NewError(wire.KindSDInvalidLengths,
				"option runs [%d,%d) and [%d,%d) overlap", start1, end1, start2, end2)
		}
	}

	return wp.Options[start1 : start1+count1], wp.Options[start2 : start2+count2], nil
}
