package payload

import (
	"reflect"

	"github.com/dantte-lp/go-someip/internal/wire"
)

// maxAggregateFields caps the number of fields (as reported by
// reflect.VisibleFields) of each struct that Encode/Decode walks; a
// nested struct is checked against the same cap on its own.
const maxAggregateFields = 24

// Encode walks v — a pointer to a struct — field by field in
// declaration order, via structural reflection (reflect.VisibleFields):
// each field is dispatched to its own Field implementation (pad_bytes,
// pad_to, utf8_string, utf16_string, dyn_array, fixed_array,
// union_variant), to a nested aggregate, to a raw byte-array copy, or to
// the shared scalar codec. baseOffset is the frame-absolute offset of
// v's first byte, threaded through unchanged for pad_to and
// union_variant alignment.
func Encode(w wire.ByteWriter, cfg Config, v any, baseOffset int) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return wire.NewError(wire.KindOther, "payload.Encode requires a pointer to a struct, got %T", v)
	}
	return encodeStruct(w, cfg, rv.Elem(), baseOffset)
}

// Decode is the inverse of Encode.
func Decode(r *wire.Reader, cfg Config, v any, baseOffset int) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return wire.NewError(wire.KindOther, "payload.Decode requires a pointer to a struct, got %T", v)
	}
	return decodeStruct(r, cfg, rv.Elem(), baseOffset)
}

func encodeStruct(w wire.ByteWriter, cfg Config, sv reflect.Value, baseOffset int) error {
	fields := reflect.VisibleFields(sv.Type())
	if len(fields) > maxAggregateFields {
		return wire.NewError(wire.KindOther, "aggregate %s has %d fields, exceeds cap of %d", sv.Type(), len(fields), maxAggregateFields)
	}
	for _, sf := range fields {
		if len(sf.Index) != 1 {
			continue // promoted fields from embedding are not addressed directly
		}
		if err := encodeField(w, cfg, sv.FieldByIndex(sf.Index), baseOffset); err != nil {
			return wrapField(sf.Name, err)
		}
	}
	return nil
}

func decodeStruct(r *wire.Reader, cfg Config, sv reflect.Value, baseOffset int) error {
	fields := reflect.VisibleFields(sv.Type())
	if len(fields) > maxAggregateFields {
		return wire.NewError(wire.KindOther, "aggregate %s has %d fields, exceeds cap of %d", sv.Type(), len(fields), maxAggregateFields)
	}
	for _, sf := range fields {
		if len(sf.Index) != 1 {
			continue
		}
		if err := decodeField(r, cfg, sv.FieldByIndex(sf.Index), baseOffset); err != nil {
			return wrapField(sf.Name, err)
		}
	}
	return nil
}

func encodeField(w wire.ByteWriter, cfg Config, fv reflect.Value, baseOffset int) error {
	if fv.CanAddr() {
		if f, ok := fv.Addr().Interface().(Field); ok {
			return f.Encode(w, cfg, baseOffset)
		}
	}
	if fv.Kind() == reflect.Array && fv.Type().Elem().Kind() == reflect.Uint8 {
		return encodeByteArray(w, fv)
	}
	if fv.Kind() == reflect.Struct {
		return encodeStruct(w, cfg, fv, baseOffset)
	}
	return encodeScalar(w, cfg, fv)
}

func decodeField(r *wire.Reader, cfg Config, fv reflect.Value, baseOffset int) error {
	if fv.CanAddr() {
		if f, ok := fv.Addr().Interface().(Field); ok {
			return f.Decode(r, cfg, baseOffset)
		}
	}
	if fv.Kind() == reflect.Array && fv.Type().Elem().Kind() == reflect.Uint8 {
		return decodeByteArray(r, fv)
	}
	if fv.Kind() == reflect.Struct {
		return decodeStruct(r, cfg, fv, baseOffset)
	}
	return decodeScalar(r, cfg, fv)
}
