package world

import "errors"

var (
	// ErrInvalidEntity identifies an entity that is not (or is no longer)
	// alive. No function in this package returns it.
	ErrInvalidEntity = errors.New("world: invalid entity")

	// ErrComponentNotPresent is returned by Replace when the entity does not
	// carry the component being operated on; Remove reports that case by
	// returning false.
	ErrComponentNotPresent = errors.New("world: component not present on entity")

	// ErrEntitySpaceExhausted is the value CreateEntity and CreateEntityNamed
	// panic with when every slot index below NullEntity's has been handed out
	// and none are free.
	ErrEntitySpaceExhausted = errors.New("world: entity index space exhausted")
)
