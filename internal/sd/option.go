// Package sd implements the SOME/IP Service Discovery sub-protocol: a
// packet model with per-entry option runs, lowered to a flat wire model
// of entries and options cross-referenced by index, and the encode/
// decode of that wire model to and from SOME/IP frames.
package sd

import "github.com/dantte-lp/go-someip/internal/wire"

// ServiceID and MethodID are the fixed SOME/IP header fields every SD
// message carries.
const (
	ServiceID uint16 = 0xFFFF
	MethodID  uint16 = 0x8100
)

// EntryType discriminates a wire entry's 16-byte tail layout: service
// entries carry a minor_version, eventgroup entries carry a counter and
// eventgroup id.
type EntryType uint8

const (
	FindService            EntryType = 0x00
	OfferService            EntryType = 0x01
	SubscribeEventgroup     EntryType = 0x06
	SubscribeEventgroupAck  EntryType = 0x07
)

// IsServiceEntryType reports whether t decodes as a service_entry.
func IsServiceEntryType(t EntryType) bool { return t == FindService || t == OfferService }

// IsEventgroupEntryType reports whether t decodes as an eventgroup_entry.
func IsEventgroupEntryType(t EntryType) bool {
	return t == SubscribeEventgroup || t == SubscribeEventgroupAck
}

// OptionType discriminates an option's type-id byte and payload layout.
type OptionType uint8

const (
	OptionConfiguration  OptionType = 0x01
	OptionLoadBalancing  OptionType = 0x02
	OptionIPv4Endpoint   OptionType = 0x04
	OptionIPv6Endpoint   OptionType = 0x06
	OptionIPv4Multicast  OptionType = 0x14
	OptionIPv6Multicast  OptionType = 0x16
	OptionIPv4SDEndpoint OptionType = 0x24
	OptionIPv6SDEndpoint OptionType = 0x26
)

// Option is a closed tagged union over every SD option layout, kept as
// one flat struct with a Type discriminant rather than an interface
// hierarchy — the option set is fixed by the wire format and every
// encode/decode path switches exhaustively over Type.
//
// Bytes holds the opaque payload for configuration and unknown options.
// Addr4/Addr6, L4Proto, Port, and Reserved hold the endpoint-family
// fields (endpoint, multicast, and sd_endpoint options share one
// layout). An option whose Type is none of the named constants above
// decodes as unknown: Type keeps the raw wire byte, Bytes keeps the raw
// payload, and it is never rejected.
type Option struct {
	Type        OptionType
	Discardable bool

	Bytes []byte

	Priority uint16
	Weight   uint16

	Addr4    [4]byte
	Addr6    [16]byte
	L4Proto  uint8
	Port     uint16
	Reserved uint8
}

func isIPv4OptionType(t OptionType) bool {
	return t == OptionIPv4Endpoint || t == OptionIPv4Multicast || t == OptionIPv4SDEndpoint
}

func isIPv6OptionType(t OptionType) bool {
	return t == OptionIPv6Endpoint || t == OptionIPv6Multicast || t == OptionIPv6SDEndpoint
}

func isKnownOptionType(t OptionType) bool {
	switch t {
	case OptionConfiguration, OptionLoadBalancing:
		return true
	default:
		return isIPv4OptionType(t) || isIPv6OptionType(t)
	}
}

// optionLenValue is the option's length-field value: flags (1 byte)
// plus the type-specific payload, excluding the length and type fields
// themselves.
func optionLenValue(o Option) (uint16, error) {
	switch {
	case o.Type == OptionConfiguration || !isKnownOptionType(o.Type):
		n := 1 + len(o.Bytes)
		if n > 0xFFFF {
			return 0, wire.NewError(wire.KindInvalidLength, "configuration/unknown option payload too large: %d bytes", len(o.Bytes))
		}
		return uint16(n), nil
	case o.Type == OptionLoadBalancing:
		return 1 + 4, nil
	case isIPv4OptionType(o.Type):
		return 0x0009, nil
	case isIPv6OptionType(o.Type):
		return 0x0015, nil
	default:
		return 0, wire.NewError(wire.KindOther, "unreachable option type %d", o.Type)
	}
}

func encodeOption(w wire.ByteWriter, o Option) error {
	n, err := optionLenValue(o)
	if err != nil {
		return err
	}
	var lenBuf [2]byte
	wire.PutUint16(lenBuf[:], n, wire.Big)
	if err := w.WriteBytes(lenBuf[:]); err != nil {
		return err
	}
	if err := w.WriteByte(byte(o.Type)); err != nil {
		return err
	}
	flags := byte(0)
	if o.Discardable {
		flags = 0x80
	}
	if err := w.WriteByte(flags); err != nil {
		return err
	}

	switch {
	case o.Type == OptionConfiguration || !isKnownOptionType(o.Type):
		return w.WriteBytes(o.Bytes)
	case o.Type == OptionLoadBalancing:
		var buf [4]byte
		wire.PutUint16(buf[0:2], o.Priority, wire.Big)
		wire.PutUint16(buf[2:4], o.Weight, wire.Big)
		return w.WriteBytes(buf[:])
	case isIPv4OptionType(o.Type):
		if err := w.WriteBytes(o.Addr4[:]); err != nil {
			return err
		}
		if err := w.WriteByte(o.L4Proto); err != nil {
			return err
		}
		var portBuf [2]byte
		wire.PutUint16(portBuf[:], o.Port, wire.Big)
		if err := w.WriteBytes(portBuf[:]); err != nil {
			return err
		}
		return w.WriteByte(o.Reserved)
	case isIPv6OptionType(o.Type):
		if err := w.WriteBytes(o.Addr6[:]); err != nil {
			return err
		}
		if err := w.WriteByte(o.L4Proto); err != nil {
			return err
		}
		var portBuf [2]byte
		wire.PutUint16(portBuf[:], o.Port, wire.Big)
		if err := w.WriteBytes(portBuf[:]); err != nil {
			return err
		}
		return w.WriteByte(o.Reserved)
	default:
		return wire.NewError(wire.KindOther, "unreachable option type %d", o.Type)
	}
}

// decodeOption reads one length-prefixed option from r.
func decodeOption(r *wire.Reader) (Option, error) {
	lenBuf, err := r.ReadBytes(2)
	if err != nil {
		return Option{}, err
	}
	n := wire.Uint16(lenBuf, wire.Big)
	typeByte, err := r.ReadByte()
	if err != nil {
		return Option{}, err
	}
	if n == 0 {
		return Option{}, wire.NewError(wire.KindInvalidLength, "sd option length field is zero")
	}

	rest, err := r.ReadBytes(int(n))
	if err != nil {
		return Option{}, err
	}
	if len(rest) == 0 {
		return Option{}, wire.NewError(wire.KindInvalidLength, "sd option has no flags byte")
	}
	discardable := rest[0]&0x80 != 0
	body := rest[1:]
	t := OptionType(typeByte)

	switch {
	case t == OptionConfiguration:
		return Option{Type: t, Discardable: discardable, Bytes: body}, nil

	case t == OptionLoadBalancing:
		if len(body) != 4 {
			return Option{}, wire.NewError(wire.KindInvalidLength, "load_balancing option payload is %d bytes, want 4", len(body))
		}
		return Option{
			Type: t, Discardable: discardable,
			Priority: wire.Uint16(body[0:2], wire.Big),
			Weight:   wire.Uint16(body[2:4], wire.Big),
		}, nil

	case isIPv4OptionType(t):
		if n != 0x0009 || len(body) != 8 {
			return Option{}, wire.NewError(wire.KindInvalidLength, "ipv4 endpoint-family option payload is %d bytes, want 8", len(body))
		}
		var addr [4]byte
		copy(addr[:], body[0:4])
		return Option{
			Type: t, Discardable: discardable,
			Addr4: addr, L4Proto: body[4], Port: wire.Uint16(body[5:7], wire.Big), Reserved: body[7],
		}, nil

	case isIPv6OptionType(t):
		if n != 0x0015 || len(body) != 20 {
			return Option{}, wire.NewError(wire.KindInvalidLength, "ipv6 endpoint-family option payload is %d bytes, want 20", len(body))
		}
		var addr [16]byte
		copy(addr[:], body[0:16])
		return Option{
			Type: t, Discardable: discardable,
			Addr6: addr, L4Proto: body[16], Port: wire.Uint16(body[17:19], wire.Big), Reserved: body[19],
		}, nil

	default:
		return Option{Type: t, Discardable: discardable, Bytes: body}, nil
	}
}
