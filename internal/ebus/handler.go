package ebus

import (
	"runtime"
	"sync"

	"github.com/forgecore/engine/internal/app"
)

// NonIdHandler binds self to the single anonymous address of an
// AddressSingle bus. Its lifetime is tied to Connect/Disconnect: a finalizer
// logs a warning if it is garbage collected while still connected, standing
// in for the source engine's "destructor must disconnect" assertion (Go has
// no destructors to assert from).
type NonIdHandler[I comparable] struct {
	mu        sync.Mutex
	bus       *Bus[I, struct{}]
	self      I
	connected bool
}

// NewNonIdHandler creates a handler wrapper bound to bus.
func NewNonIdHandler[I comparable](bus *Bus[I, struct{}]) *NonIdHandler[I] {
	return &NonIdHandler[I]{bus: bus}
}

// Connect binds self to the bus's anonymous address.
func (h *NonIdHandler[I]) Connect(self I) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connected {
		return ErrHandlerAlreadyConnected
	}
	if err := h.bus.Connect(self); err != nil {
		return err
	}
	h.self = self
	h.connected = true
	runtime.SetFinalizer(h, (*NonIdHandler[I]).finalize)
	return nil
}

// Disconnect unbinds the handler. It is safe to call more than once.
func (h *NonIdHandler[I]) Disconnect() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.connected {
		return nil
	}
	err := h.bus.Disconnect(h.self)
	h.connected = false
	runtime.SetFinalizer(h, nil)
	return err
}

// IsConnected reports whether the handler is currently bound.
func (h *NonIdHandler[I]) IsConnected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connected
}

func (h *NonIdHandler[I]) finalize() {
	if h.IsConnected() {
		app.GetLogger().Warn("ebus: NonIdHandler garbage collected while still connected; call Disconnect before dropping it")
	}
}

// IdHandler binds self to exactly one address at a time. Reassigning to a
// different id requires an explicit Disconnect first.
type IdHandler[I comparable, K comparable] struct {
	mu        sync.Mutex
	bus       *Bus[I, K]
	self      I
	id        K
	connected bool
}

// NewIdHandler creates a handler wrapper bound to bus.
func NewIdHandler[I comparable, K comparable](bus *Bus[I, K]) *IdHandler[I, K] {
	return &IdHandler[I, K]{bus: bus}
}

// Connect binds self to id. If the handler is already connected to a
// different id, it returns ErrIDReassignRequiresDisconnect.
func (h *IdHandler[I, K]) Connect(self I, id K) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connected {
		if h.id == id && h.self == self {
			return ErrHandlerAlreadyConnected
		}
		return ErrIDReassignRequiresDisconnect
	}
	if err := h.bus.Connect(self, id); err != nil {
		return err
	}
	h.self = self
	h.id = id
	h.connected = true
	runtime.SetFinalizer(h, (*IdHandler[I, K]).finalize)
	return nil
}

// Disconnect unbinds the handler from its current id.
func (h *IdHandler[I, K]) Disconnect() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.connected {
		return nil
	}
	err := h.bus.Disconnect(h.self, h.id)
	h.connected = false
	runtime.SetFinalizer(h, nil)
	return err
}

// IsConnected reports whether the handler is currently bound.
func (h *IdHandler[I, K]) IsConnected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connected
}

// ID returns the currently bound id and whether the handler is connected.
func (h *IdHandler[I, K]) ID() (K, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id, h.connected
}

func (h *IdHandler[I, K]) finalize() {
	if h.IsConnected() {
		app.GetLogger().Warn("ebus: IdHandler garbage collected while still connected; call Disconnect before dropping it")
	}
}

// MultiHandler binds self to any number of ids simultaneously.
type MultiHandler[I comparable, K comparable] struct {
	mu   sync.Mutex
	bus  *Bus[I, K]
	self I
	ids  map[K]struct{}
}

// NewMultiHandler creates a handler wrapper bound to bus.
func NewMultiHandler[I comparable, K comparable](bus *Bus[I, K], self I) *MultiHandler[I, K] {
	h := &MultiHandler[I, K]{bus: bus, self: self, ids: make(map[K]struct{})}
	runtime.SetFinalizer(h, (*MultiHandler[I, K]).finalize)
	return h
}

// Connect adds a binding at id.
func (h *MultiHandler[I, K]) Connect(id K) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ids[id]; ok {
		return ErrHandlerAlreadyConnected
	}
	if err := h.bus.Connect(h.self, id); err != nil {
		return err
	}
	h.ids[id] = struct{}{}
	return nil
}

// Disconnect removes the binding at id.
func (h *MultiHandler[I, K]) Disconnect(id K) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ids[id]; !ok {
		return ErrHandlerNotConnected
	}
	err := h.bus.Disconnect(h.self, id)
	delete(h.ids, id)
	return err
}

// DisconnectAll removes every binding this handler currently holds.
func (h *MultiHandler[I, K]) DisconnectAll() {
	h.mu.Lock()
	ids := make([]K, 0, len(h.ids))
	for id := range h.ids {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		_ = h.Disconnect(id)
	}
}

// ConnectedIDs returns the ids this handler currently holds a binding for.
func (h *MultiHandler[I, K]) ConnectedIDs() []K {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]K, 0, len(h.ids))
	for id := range h.ids {
		ids = append(ids, id)
	}
	return ids
}

func (h *MultiHandler[I, K]) finalize() {
	h.mu.Lock()
	n := len(h.ids)
	h.mu.Unlock()
	if n > 0 {
		app.GetLogger().Warn("ebus: MultiHandler garbage collected with %d bindings still connected; call DisconnectAll before dropping it", n)
	}
}
