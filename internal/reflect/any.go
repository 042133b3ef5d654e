package reflect

import "reflect"

// MetaAny is a type-erased value: it holds either a value copy or a
// reference (a pointer) to the original, standing in for entt::meta_any.
// Reference mode matters for Set -- mutating through a MetaAny obtained by
// reference must be visible to the original, the way the source's
// by-reference meta_any wraps a pointer-to-member result.
type MetaAny struct {
	value any
	isRef bool
}

// NewAny wraps v by value.
func NewAny(v any) MetaAny { return MetaAny{value: v} }

// RefAny wraps ptr, a pointer to the original storage, by reference.
func RefAny(ptr any) MetaAny { return MetaAny{value: ptr, isRef: true} }

// IsRef reports whether a holds a reference rather than a value copy.
func (a MetaAny) IsRef() bool { return a.isRef }

// Raw returns the wrapped value exactly as stored (a pointer, if a is a
// reference).
func (a MetaAny) Raw() any { return a.value }

// Type returns the reflect.Type of the held value, dereferencing one level
// of pointer when a is a reference.
func (a MetaAny) Type() reflect.Type {
	t := reflect.TypeOf(a.value)
	if a.isRef && t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// TryCast attempts to extract a T from a, dereferencing a reference and
// converting numeric kinds to a destination that is at least as wide
// (e.g. int32 -> int64, float32 -> float64). Integer-to-integer conversion
// also accepts a same-width destination of either signedness, and any
// integer converts to any float kind; both can lose precision or sign
// (e.g. int64 -> float32, uint64 -> int64).
func TryCast[T any](a MetaAny) (T, bool) {
	var zero T

	target := a.value
	if a.isRef {
		rv := reflect.ValueOf(a.value)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return zero, false
		}
		target = rv.Elem().Interface()
	}

	if v, ok := target.(T); ok {
		return v, true
	}

	srcVal := reflect.ValueOf(target)
	wantType := reflect.TypeOf(zero)
	if wantType == nil || !srcVal.IsValid() {
		return zero, false
	}
	if !isWideningConvertible(srcVal.Type(), wantType) {
		return zero, false
	}
	converted := srcVal.Convert(wantType).Interface()
	v, ok := converted.(T)
	return v, ok
}

// Cast extracts a T from a, panicking if the value cannot be cast -- the
// source's entt::meta_any::cast has the same contract.
func Cast[T any](a MetaAny) T {
	v, ok := TryCast[T](a)
	if !ok {
		panic(ErrTypeMismatch)
	}
	return v
}

func isWideningConvertible(src, dst reflect.Type) bool {
	if !src.ConvertibleTo(dst) {
		return false
	}
	switch {
	case isIntKind(src.Kind()) && isIntKind(dst.Kind()):
		return dst.Bits() >= src.Bits() || (dst.Kind() == src.Kind())
	case isFloatKind(src.Kind()) && isFloatKind(dst.Kind()):
		return dst.Bits() >= src.Bits()
	case isIntKind(src.Kind()) && isFloatKind(dst.Kind()):
		return true
	default:
		return false
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// SequenceContainer is a sequence-container view over a MetaAny whose
// underlying value is a slice, standing in for
// entt::meta_any::as_sequence_container.
type SequenceContainer struct {
	rv reflect.Value
}

// AsSequenceContainer returns a sequence view over a if its underlying
// value is a slice (by value or by reference).
func (a MetaAny) AsSequenceContainer() (SequenceContainer, error) {
	rv := reflect.ValueOf(a.value)
	if a.isRef {
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return SequenceContainer{}, ErrNotSequence
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return SequenceContainer{}, ErrNotSequence
	}
	return SequenceContainer{rv: rv}, nil
}

// Len returns the number of elements in the sequence.
func (s SequenceContainer) Len() int { return s.rv.Len() }

// Get returns element i wrapped as a MetaAny reference, so it can be
// further cast or, if the backing slice is addressable, mutated in place.
func (s SequenceContainer) Get(i int) MetaAny {
	elem := s.rv.Index(i)
	if elem.CanAddr() {
		return RefAny(elem.Addr().Interface())
	}
	return NewAny(elem.Interface())
}

// Each calls fn with every element's MetaAny, in order.
func (s SequenceContainer) Each(fn func(i int, v MetaAny)) {
	for i := 0; i < s.rv.Len(); i++ {
		fn(i, s.Get(i))
	}
}
