package scene

import "errors"

var (
	// ErrNullEntity is returned by operations that reject world.NullEntity
	// as an argument.
	ErrNullEntity = errors.New("scene: entity must not be null")

	// ErrInvalidHierarchy describes a constructed or updated Hierarchy
	// component that violates one of the structural invariants. No function
	// in this package returns it: Scene logs such a mutation, rejects it and
	// leaves the cache untouched.
	ErrInvalidHierarchy = errors.New("scene: hierarchy component is structurally invalid")
)
