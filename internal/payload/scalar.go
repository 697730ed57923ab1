package payload

import (
	"reflect"

	"github.com/dantte-lp/go-someip/internal/wire"
)

// Field is implemented by concrete payload types that need control over
// their own wire representation beyond a raw scalar: padding, strings,
// arrays, and unions. The aggregate walker dispatches directly to a
// struct field's Field implementation when it has one; everything else
// is handled as a plain scalar via reflect.Kind (this also covers named
// enum types, since reflect.Kind reports their underlying integer kind).
type Field interface {
	Encode(w wire.ByteWriter, cfg Config, baseOffset int) error
	Decode(r *wire.Reader, cfg Config, baseOffset int) error
}

// Scalar adapts a bare scalar value to the Field interface, for places
// that need a Field (most notably union_variant alternatives) but only
// want a single scalar as the payload.
type Scalar[T ScalarElem] struct {
	Value T
}

func (s *Scalar[T]) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	return encodeScalar(w, cfg, reflect.ValueOf(s.Value))
}

func (s *Scalar[T]) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	return decodeScalar(r, cfg, reflect.ValueOf(&s.Value).Elem())
}

func signedBits(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return uint64(v.Int())
	default:
		return v.Uint()
	}
}

func encodeScalar(w wire.ByteWriter, cfg Config, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		b := byte(0)
		if v.Bool() {
			b = 1
		}
		return w.WriteByte(b)
	case reflect.Uint8, reflect.Int8:
		return w.WriteByte(byte(signedBits(v)))
	case reflect.Uint16, reflect.Int16:
		var buf [2]byte
		wire.PutUint16(buf[:], uint16(signedBits(v)), cfg.Endian)
		return w.WriteBytes(buf[:])
	case reflect.Uint32, reflect.Int32:
		var buf [4]byte
		wire.PutUint32(buf[:], uint32(signedBits(v)), cfg.Endian)
		return w.WriteBytes(buf[:])
	case reflect.Uint64, reflect.Int64:
		var buf [8]byte
		wire.PutUint64(buf[:], signedBits(v), cfg.Endian)
		return w.WriteBytes(buf[:])
	case reflect.Float32:
		var buf [4]byte
		wire.PutUint32(buf[:], wire.Float32ToBits(float32(v.Float())), cfg.Endian)
		return w.WriteBytes(buf[:])
	case reflect.Float64:
		var buf [8]byte
		wire.PutUint64(buf[:], wire.Float64ToBits(v.Float()), cfg.Endian)
		return w.WriteBytes(buf[:])
	default:
		return wire.NewError(wire.KindOther, "unsupported scalar kind %s", v.Kind())
	}
}

func decodeScalar(r *wire.Reader, cfg Config, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b&0xFE != 0 {
			return wire.NewError(wire.KindInvalidBoolValue, "bool byte %#x has bits set beyond bit 0", b)
		}
		v.SetBool(b&0x01 != 0)
		return nil
	case reflect.Uint8:
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.SetUint(uint64(b))
		return nil
	case reflect.Int8:
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.SetInt(int64(int8(b)))
		return nil
	case reflect.Uint16:
		buf, err := r.ReadBytes(2)
		if err != nil {
			return err
		}
		v.SetUint(uint64(wire.Uint16(buf, cfg.Endian)))
		return nil
	case reflect.Int16:
		buf, err := r.ReadBytes(2)
		if err != nil {
			return err
		}
		v.SetInt(int64(int16(wire.Uint16(buf, cfg.Endian))))
		return nil
	case reflect.Uint32:
		buf, err := r.ReadBytes(4)
		if err != nil {
			return err
		}
		v.SetUint(uint64(wire.Uint32(buf, cfg.Endian)))
		return nil
	case reflect.Int32:
		buf, err := r.ReadBytes(4)
		if err != nil {
			return err
		}
		v.SetInt(int64(int32(wire.Uint32(buf, cfg.Endian))))
		return nil
	case reflect.Uint64:
		buf, err := r.ReadBytes(8)
		if err != nil {
			return err
		}
		v.SetUint(wire.Uint64(buf, cfg.Endian))
		return nil
	case reflect.Int64:
		buf, err := r.ReadBytes(8)
		if err != nil {
			return err
		}
		v.SetInt(int64(wire.Uint64(buf, cfg.Endian)))
		return nil
	case reflect.Float32:
		buf, err := r.ReadBytes(4)
		if err != nil {
			return err
		}
		v.SetFloat(float64(wire.BitsToFloat32(wire.Uint32(buf, cfg.Endian))))
		return nil
	case reflect.Float64:
		buf, err := r.ReadBytes(8)
		if err != nil {
			return err
		}
		v.SetFloat(wire.BitsToFloat64(wire.Uint64(buf, cfg.Endian)))
		return nil
	default:
		return wire.NewError(wire.KindOther, "unsupported scalar kind %s", v.Kind())
	}
}

func encodeByteArray(w wire.ByteWriter, fv reflect.Value) error {
	n := fv.Len()
	buf := make([]byte, n)
	reflect.Copy(reflect.ValueOf(buf), fv)
	return w.WriteBytes(buf)
}

func decodeByteArray(r *wire.Reader, fv reflect.Value) error {
	buf, err := r.ReadBytes(fv.Len())
	if err != nil {
		return err
	}
	reflect.Copy(fv, reflect.ValueOf(buf))
	return nil
}
