package world

import (
	"context"
	"reflect"

	"github.com/forgecore/engine/internal/ebus"
)

// World owns every entity slot and component store for one simulation.
// It is not internally locked: World and Scene both assume a
// main-thread-only contract, and this package keeps that contract rather
// than paying for synchronization nothing in this codebase needs.
type World struct {
	generations []uint32
	freeList    []uint32

	stores   map[reflect.Type]store
	observed map[reflect.Type]bool

	entityBus    *ebus.Bus[EntityObserver, struct{}]
	componentBus *ebus.Bus[ComponentObserver, reflect.Type]
}

// Option configures a World at construction time.
type Option func(*World)

// WithCapacityHint pre-sizes the entity slot table, avoiding repeated
// reallocation when the caller already knows roughly how many entities a
// scene will hold. It is a pure hint: CreateEntity still grows the table
// past n on demand.
func WithCapacityHint(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.generations = make([]uint32, 0, n)
			w.freeList = make([]uint32, 0, n)
		}
	}
}

// New returns an empty world.
func New(opts ...Option) *World {
	w := &World{
		stores:       make(map[reflect.Type]store),
		observed:     make(map[reflect.Type]bool),
		entityBus:    newEntityBus(),
		componentBus: newComponentBus(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ComponentID returns the stable key this package uses to identify
// component type T -- its reflect.Type.
func ComponentID[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// EntityBus exposes the entity create/destroy bus so collaborators can
// connect an EntityObserver.
func (w *World) EntityBus() *ebus.Bus[EntityObserver, struct{}] { return w.entityBus }

// ComponentBus exposes the construct/update/destroy bus so collaborators
// can connect a ComponentObserver at a specific component's ComponentID.
func (w *World) ComponentBus() *ebus.Bus[ComponentObserver, reflect.Type] { return w.componentBus }

// allocate reserves a fresh slot, recycling a freed one (with its
// generation bumped) when one is available. It does not fire OnEntityCreate;
// callers do that once any components the caller wants present at creation
// time are installed.
func (w *World) allocate() Entity {
	if n := len(w.freeList); n > 0 {
		idx := w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
		return makeEntity(idx, w.generations[idx])
	}
	idx := uint32(len(w.generations))
	if idx >= MaxEntities {
		panic(ErrEntitySpaceExhausted)
	}
	w.generations = append(w.generations, 0)
	return makeEntity(idx, 0)
}

// CreateEntity allocates a fresh handle, recycling a freed slot (with its
// generation bumped) when one is available.
func (w *World) CreateEntity() Entity {
	e := w.allocate()
	w.entityBus.Broadcast(context.Background(), func(o EntityObserver) { o.OnEntityCreate(e) })
	entitiesLive.Inc()
	return e
}

// CreateEntityNamed allocates a fresh handle exactly like CreateEntity, then
// installs a Name component before broadcasting OnEntityCreate, mirroring
// original_source's CreateEntity(eastl::string_view name) overload.
func (w *World) CreateEntityNamed(name string) Entity {
	e := w.allocate()
	Add(w, e, Name{Name: name})
	w.entityBus.Broadcast(context.Background(), func(o EntityObserver) { o.OnEntityCreate(e) })
	entitiesLive.Inc()
	return e
}

// Valid reports whether e refers to a currently live entity.
func (w *World) Valid(e Entity) bool {
	if e == NullEntity {
		return false
	}
	idx := entityIndex(e)
	if int(idx) >= len(w.generations) {
		return false
	}
	return w.generations[idx] == entityGeneration(e)
}

// DestroyEntity fires OnEntityDestroy, then removes every component the
// entity carries and frees its slot for reuse under a bumped generation.
func (w *World) DestroyEntity(e Entity) {
	if !w.Valid(e) {
		return
	}
	w.entityBus.Broadcast(context.Background(), func(o EntityObserver) { o.OnEntityDestroy(e) })

	for typ, s := range w.stores {
		if s.has(e) {
			w.emitDestroy(typ, e)
			s.remove(e)
		}
	}

	idx := entityIndex(e)
	w.generations[idx] = (w.generations[idx] + 1) & (entityGenerationMask >> entityIndexBits)
	w.freeList = append(w.freeList, idx)
	entitiesLive.Dec()
}

// Clear destroys every entity without firing entity or component events
// and drops every component store, matching the source's WorldContext::Clear.
func (w *World) Clear() {
	entitiesLive.Sub(float64(len(w.generations) - len(w.freeList)))
	w.stores = make(map[reflect.Type]store)
	w.observed = make(map[reflect.Type]bool)
	w.generations = nil
	w.freeList = nil
}

// SetupComponentEvents opts component type T into construct/update/destroy
// notification. Calling it more than once for the same T is a no-op.
func SetupComponentEvents[T any](w *World) {
	w.observed[ComponentID[T]()] = true
}

func storeFor[T any](w *World) *Store[T] {
	typ := ComponentID[T]()
	s, ok := w.stores[typ]
	if !ok {
		ns := newStore[T]()
		w.stores[typ] = ns
		return ns
	}
	return s.(*Store[T])
}

// Add installs T on e. The entity must not already carry T; use
// AddOrReplace when it might.
func Add[T any](w *World, e Entity, value T) T {
	s := storeFor[T](w)
	s.set(e, value)
	w.emitConstruct(ComponentID[T](), e)
	return value
}

// AddOrReplace installs or overwrites T on e, firing construct on first
// insertion and update on overwrite.
func AddOrReplace[T any](w *World, e Entity, value T) T {
	s := storeFor[T](w)
	wasConstruct := s.set(e, value)
	if wasConstruct {
		w.emitConstruct(ComponentID[T](), e)
	} else {
		w.emitUpdate(ComponentID[T](), e)
	}
	return value
}

// Replace overwrites an existing T on e and fires update. It returns
// ErrComponentNotPresent if e does not already carry T.
func Replace[T any](w *World, e Entity, value T) error {
	s := storeFor[T](w)
	if !s.has(e) {
		return ErrComponentNotPresent
	}
	s.set(e, value)
	w.emitUpdate(ComponentID[T](), e)
	return nil
}

// Get returns e's T component. It panics if e does not carry T, the same
// contract as entt::registry::get.
func Get[T any](w *World, e Entity) T {
	s := storeFor[T](w)
	v, ok := s.get(e)
	if !ok {
		panic("world: Get called for a component the entity does not have")
	}
	return *v
}

// TryGet returns e's T component and whether it is present.
func TryGet[T any](w *World, e Entity) (*T, bool) {
	return storeFor[T](w).get(e)
}

// MutableGet returns a pointer directly into T's backing storage for e, so
// callers can patch fields in place without going through AddOrReplace or
// Replace -- and therefore without firing an update event. This mirrors
// entt::registry::get() returning a mutable reference: the source's
// SceneManager relies on exactly this to re-link sibling/parent pointers
// during AddEntityInternal/RemoveEntityInternal without re-triggering its
// own observer. It panics if e does not carry T.
func MutableGet[T any](w *World, e Entity) *T {
	v, ok := storeFor[T](w).get(e)
	if !ok {
		panic("world: MutableGet called for a component the entity does not have")
	}
	return v
}

// Has reports whether e carries T.
func Has[T any](w *World, e Entity) bool {
	return storeFor[T](w).has(e)
}

// HasAny reports whether e carries at least one of the given component types.
func (w *World) HasAny(e Entity, types ...reflect.Type) bool {
	for _, typ := range types {
		if s, ok := w.stores[typ]; ok && s.has(e) {
			return true
		}
	}
	return false
}

// HasAll reports whether e carries every one of the given component types.
func (w *World) HasAll(e Entity, types ...reflect.Type) bool {
	for _, typ := range types {
		s, ok := w.stores[typ]
		if !ok || !s.has(e) {
			return false
		}
	}
	return true
}

// Remove drops T from e, firing destroy if it was present. It reports
// whether the component had been present.
func Remove[T any](w *World, e Entity) bool {
	s := storeFor[T](w)
	if !s.has(e) {
		return false
	}
	w.emitDestroy(ComponentID[T](), e)
	return s.remove(e)
}
