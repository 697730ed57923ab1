// Package payload implements the AUTOSAR structural payload serializer
// layered on top of a SOME/IP frame's payload bytes: a three-pass
// (measure/encode/decode) visitor over scalar fields, padding, strings,
// arrays, and tagged unions, driven by Go's reflect package in place of
// the source serializer's C++ structural-reflection step.
package payload

import "github.com/dantte-lp/go-someip/internal/wire"

// Config parametrizes one Encode/Decode call: the byte order used for
// scalar payload bytes and array/union element bytes, and the fill byte
// written into padding regions.
//
// Length and selector prefix fields (string lengths, dyn_array/
// fixed_array lengths, union length and selector) are always big-endian
// regardless of Endian — that convention comes from the source
// serializer's write_len_field helper, which hardcodes network byte
// order independent of the configured payload endian.
type Config struct {
	Endian  wire.Endian
	PadByte byte
}
