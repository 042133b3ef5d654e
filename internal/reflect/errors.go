package reflect

import "errors"

var (
	// ErrTypeMismatch is returned when a MetaAny does not hold (or cannot be
	// widened to) the type a caller asked for.
	ErrTypeMismatch = errors.New("reflect: type mismatch")
	// ErrUnknownType identifies an id with no registered type. No function
	// in this package returns it: Resolve reports a missing type with false.
	ErrUnknownType = errors.New("reflect: unknown type id")
	// ErrUnknownField identifies a data member name with no registration. No
	// function in this package returns it: Data reports absence with false.
	ErrUnknownField = errors.New("reflect: unknown field")
	// ErrUnknownFunc identifies a func name with no registration. No function
	// in this package returns it: Func reports absence with false.
	ErrUnknownFunc = errors.New("reflect: unknown func")
	// ErrArgCount is returned when Invoke is called with the wrong arity.
	ErrArgCount = errors.New("reflect: wrong argument count")
	// ErrNotSequence is returned when AsSequenceContainer is called on a
	// MetaAny whose underlying value is not a slice.
	ErrNotSequence = errors.New("reflect: value is not a sequence container")
)
