package service

import (
	"runtime"

	"github.com/forgecore/engine/internal/app"
)

// Handler is the Go analogue of the source engine's nested Service<I>::Handler
// base class: construction registers self as the publisher for I, and
// releasing it unregisters. Go has no destructors, so callers must call
// Close explicitly; a finalizer logs a warning if one is dropped without it,
// the same fallback used by ebus's handler wrappers.
type Handler[I comparable] struct {
	reg        *Registry
	self       I
	registered bool
}

// NewHandler registers self as the publisher of I on reg and returns a
// Handler owning that binding. If reg is nil, the Default registry is used.
func NewHandler[I comparable](reg *Registry, self I) (*Handler[I], error) {
	if reg == nil {
		reg = Default
	}
	if err := Of[I](reg).Register(self); err != nil {
		return nil, err
	}
	h := &Handler[I]{reg: reg, self: self, registered: true}
	runtime.SetFinalizer(h, (*Handler[I]).finalize)
	return h, nil
}

// Close unregisters self. It is safe to call more than once.
func (h *Handler[I]) Close() error {
	if !h.registered {
		return nil
	}
	err := Of[I](h.reg).Unregister(h.self)
	h.registered = false
	runtime.SetFinalizer(h, nil)
	return err
}

func (h *Handler[I]) finalize() {
	if h.registered {
		app.GetLogger().Warn("service: Handler garbage collected while still registered; call Close before dropping it")
	}
}
