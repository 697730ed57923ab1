package payload

import (
	"reflect"

	"github.com/dantte-lp/go-someip/internal/wire"
)

// ScalarElem is the set of element types DynArray and FixedArray accept.
// Both array kinds are scalar-only in this serializer: nested composite
// elements are out of scope.
type ScalarElem interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

func elemSize[T ScalarElem]() int {
	var v T
	return int(reflect.TypeOf(v).Size())
}

func encodeElem[T ScalarElem](w wire.ByteWriter, cfg Config, v T) error {
	return encodeScalar(w, cfg, reflect.ValueOf(v))
}

func decodeElem[T ScalarElem](r *wire.Reader, cfg Config) (T, error) {
	var v T
	err := decodeScalar(r, cfg, reflect.ValueOf(&v).Elem())
	return v, err
}

// DynArray is a dynamically-sized array of scalar elements, prefixed by
// a byte-count length field (not an element count). LenBits selects the
// width of the length prefix; the length field is always big-endian.
type DynArray[T ScalarElem] struct {
	LenBits        int
	AlignAfterBits int
	Value          []T
}

func (a *DynArray[T]) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	size := elemSize[T]()
	if err := writeLenField(w, a.LenBits, uint64(size*len(a.Value))); err != nil {
		return err
	}
	for _, e := range a.Value {
		if err := encodeElem(w, cfg, e); err != nil {
			return err
		}
	}
	return alignAfter(w, cfg, baseOffset, a.AlignAfterBits)
}

func (a *DynArray[T]) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	n, err := readLenField(r, a.LenBits)
	if err != nil {
		return err
	}
	size := elemSize[T]()
	if size == 0 || n%uint64(size) != 0 {
		return wire.NewError(wire.KindInvalidLength, "dyn_array byte length %d not a multiple of element size %d", n, size)
	}
	count := int(n) / size
	a.Value = make([]T, count)
	for i := range a.Value {
		e, err := decodeElem[T](r, cfg)
		if err != nil {
			return err
		}
		a.Value[i] = e
	}
	return decodeAlignAfter(r, baseOffset, a.AlignAfterBits)
}

// FixedArray is a fixed-length array of N scalar elements with an
// optional byte-count length prefix (OptionalLenBits == 0 means no
// prefix is written or expected).
type FixedArray[T ScalarElem] struct {
	N               int
	OptionalLenBits int
	Value           []T
}

func (a *FixedArray[T]) Encode(w wire.ByteWriter, cfg Config, baseOffset int) error {
	if len(a.Value) != a.N {
		return wire.NewError(wire.KindInvalidLength, "fixed_array has %d elements, want %d", len(a.Value), a.N)
	}
	if a.OptionalLenBits != 0 {
		size := elemSize[T]()
		if err := writeLenField(w, a.OptionalLenBits, uint64(a.N*size)); err != nil {
			return err
		}
	}
	for _, e := range a.Value {
		if err := encodeElem(w, cfg, e); err != nil {
			return err
		}
	}
	return nil
}

func (a *FixedArray[T]) Decode(r *wire.Reader, cfg Config, baseOffset int) error {
	if a.OptionalLenBits != 0 {
		n, err := readLenField(r, a.OptionalLenBits)
		if err != nil {
			return err
		}
		size := elemSize[T]()
		want := uint64(a.N * size)
		if n != want {
			return wire.NewError(wire.KindInvalidLength, "fixed_array length field %d, want %d", n, want)
		}
	}
	a.Value = make([]T, a.N)
	for i := range a.Value {
		e, err := decodeElem[T](r, cfg)
		if err != nil {
			return err
		}
		a.Value[i] = e
	}
	return nil
}
