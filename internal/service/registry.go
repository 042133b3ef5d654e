package service

import (
	"reflect"
	"sync"
)

// Registry owns one Slot per interface type, created lazily on first use.
// Go has no per-type static storage the way a C++ class template does, so
// the slot lives keyed by reflect.Type inside the registry instead of as a
// package-level variable of the instantiated generic type.
type Registry struct {
	mu    sync.Mutex
	slots map[reflect.Type]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[reflect.Type]any)}
}

// Default is the process-wide registry used by the package-level
// Register/Unregister/Get helpers.
var Default = NewRegistry()

// Of returns the slot for interface I on r, creating it on first use.
func Of[I comparable](r *Registry) *Slot[I] {
	key := reflect.TypeOf((*I)(nil)).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.slots[key]; ok {
		return existing.(*Slot[I])
	}
	s := NewSlot[I]()
	r.slots[key] = s
	return s
}

// Register binds p into the Default registry's slot for I.
func Register[I comparable](p I) error {
	return Of[I](Default).Register(p)
}

// Unregister clears p from the Default registry's slot for I.
func Unregister[I comparable](p I) error {
	return Of[I](Default).Unregister(p)
}

// Get returns the Default registry's current binding for I.
func Get[I comparable]() (I, bool) {
	return Of[I](Default).Get()
}
