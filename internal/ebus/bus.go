package ebus

import (
	"context"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/forgecore/engine/internal/ebus")

// Bus is a policy-driven, many-to-many dispatcher over handler interface I,
// keyed by address id K. Construct one with New and a Traits bundle; see
// policy.go for the available address/handler cardinalities.
//
// For AddressSingle buses, use K = struct{} and pass no id to
// Connect/Disconnect/Event.
type Bus[I comparable, K comparable] struct {
	name   string
	traits Traits[I, K]

	// mu is the "context lock": guards the address containers themselves
	// (creating/removing addresses), distinct from the dispatch lock below.
	mu     sync.RWMutex
	single *holder[I]
	byID   map[K]*holder[I]
	order  []K // sorted by traits.IDLess when AddressByIDOrdered; insertion order otherwise

	// dispatchMu is the per-context dispatch lock. Lockless buses skip it
	// entirely; the caller is responsible for ensuring no concurrent
	// mutation races an in-flight dispatch.
	dispatchMu sync.Mutex

	queue *eventQueue[I]

	metrics *busMetrics

	// callstack is the head of the in-flight dispatch frame list; see
	// callstack.go. Mutation is serialized by dispatchMu for non-Lockless
	// buses, and is the caller's responsibility for Lockless ones.
	callstack *callstackEntry[K]
}

// New constructs a Bus with the given traits. The name is used only for
// metrics labels and log messages.
func New[I comparable, K comparable](name string, traits Traits[I, K]) (*Bus[I, K], error) {
	if err := traits.validate(); err != nil {
		return nil, err
	}
	b := &Bus[I, K]{
		name:    name,
		traits:  traits,
		byID:    make(map[K]*holder[I]),
		metrics: newBusMetrics(name),
	}
	if traits.EnableQueue {
		b.queue = newEventQueue[I](traits.QueueActiveByDefault)
	}
	return b, nil
}

func (b *Bus[I, K]) newHolder() *holder[I] {
	return newHolder[I](b.traits.HandlerPolicy, b.traits.HandlerLess)
}

// resolveID validates the id arity against the address policy.
// Single-address buses must be called with no id; keyed buses with exactly one.
func (b *Bus[I, K]) resolveID(ids []K) (*K, error) {
	switch b.traits.AddressPolicy {
	case AddressSingle:
		if len(ids) != 0 {
			return nil, ErrIDNotAllowed
		}
		return nil, nil
	default:
		if len(ids) != 1 {
			return nil, ErrIDRequired
		}
		id := ids[0]
		return &id, nil
	}
}

// Connect attaches handler to the address identified by id (omit id for
// AddressSingle buses). It fails if the handler cardinality policy is
// violated or the handler is already connected at that address.
func (b *Bus[I, K]) Connect(handler I, ids ...K) error {
	var zero I
	if handler == zero {
		return ErrNilHandler
	}
	id, err := b.resolveID(ids)
	if err != nil {
		return err
	}

	h := b.addressHolder(id, true)
	if err := h.connect(handler); err != nil {
		return err
	}
	b.metrics.handlersConnected.Inc()
	return nil
}

// Disconnect detaches handler from the address identified by id.
func (b *Bus[I, K]) Disconnect(handler I, ids ...K) error {
	id, err := b.resolveID(ids)
	if err != nil {
		return err
	}

	h := b.addressHolder(id, false)
	if h == nil {
		return ErrHandlerNotConnected
	}
	if err := h.disconnect(handler); err != nil {
		return err
	}
	b.metrics.handlersDisconnected.Inc()
	b.reclaimIfEmpty(id, h)
	return nil
}

// Has reports whether handler is currently connected at the given address.
func (b *Bus[I, K]) Has(handler I, ids ...K) bool {
	id, err := b.resolveID(ids)
	if err != nil {
		return false
	}
	h := b.addressHolder(id, false)
	return h != nil && h.has(handler)
}

// HasHandlers reports whether the address identified by id has any
// connected handlers at all.
func (b *Bus[I, K]) HasHandlers(ids ...K) bool {
	id, err := b.resolveID(ids)
	if err != nil {
		return false
	}
	h := b.addressHolder(id, false)
	return h != nil && !h.empty()
}

// addressHolder returns the holder for id, creating it under the context
// lock if createIfMissing is set and the policy permits it.
func (b *Bus[I, K]) addressHolder(id *K, createIfMissing bool) *holder[I] {
	if b.traits.AddressPolicy == AddressSingle {
		b.mu.RLock()
		h := b.single
		b.mu.RUnlock()
		if h != nil || !createIfMissing {
			return h
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.single == nil {
			b.single = b.newHolder()
		}
		return b.single
	}

	key := *id
	b.mu.RLock()
	h, ok := b.byID[key]
	b.mu.RUnlock()
	if ok || !createIfMissing {
		return h
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if h, ok = b.byID[key]; ok {
		return h
	}
	h = b.newHolder()
	b.byID[key] = h
	b.insertOrderKeyLocked(key)
	return h
}

func (b *Bus[I, K]) insertOrderKeyLocked(key K) {
	if b.traits.AddressPolicy != AddressByIDOrdered {
		b.order = append(b.order, key)
		return
	}
	less := b.traits.IDLess
	idx := sort.Search(len(b.order), func(i int) bool { return !less(b.order[i], key) })
	b.order = append(b.order, key)
	copy(b.order[idx+1:], b.order[idx:])
	b.order[idx] = key
}

// reclaimIfEmpty removes the address entry for id once its holder is both
// empty and has no in-flight dispatch, so a disconnected address doesn't
// linger in the map once nothing references it.
func (b *Bus[I, K]) reclaimIfEmpty(id *K, h *holder[I]) {
	if id == nil || !h.empty() || h.refCount() > 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := *id
	if cur, ok := b.byID[key]; ok && cur == h && h.empty() && h.refCount() == 0 {
		delete(b.byID, key)
		for i, k := range b.order {
			if k == key {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// lockDispatch acquires the dispatch lock unless the bus is lockless.
func (b *Bus[I, K]) lockDispatch() {
	if !b.traits.Lockless {
		b.dispatchMu.Lock()
	}
}

func (b *Bus[I, K]) unlockDispatch() {
	if !b.traits.Lockless {
		b.dispatchMu.Unlock()
	}
}

// Event delivers fn to every handler connected at address id.
func (b *Bus[I, K]) Event(ctx context.Context, id K, fn func(I)) error {
	if b.traits.AddressPolicy == AddressSingle {
		return ErrIDNotAllowed
	}
	return b.dispatchAt(ctx, &id, fn)
}

// Broadcast delivers fn to every handler on every address (or the single
// anonymous address, for AddressSingle buses).
func (b *Bus[I, K]) Broadcast(ctx context.Context, fn func(I)) {
	if b.traits.AddressPolicy == AddressSingle {
		_ = b.dispatchAt(ctx, nil, fn)
		return
	}

	for _, h := range b.snapshotHolders() {
		id := h.id
		_ = b.dispatchAt(ctx, &id, fn)
	}
}

type idHolderPair[I comparable, K comparable] struct {
	id K
	h  *holder[I]
}

func (b *Bus[I, K]) snapshotHolders() []idHolderPair[I, K] {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]idHolderPair[I, K], 0, len(b.byID))
	for _, key := range b.order {
		result = append(result, idHolderPair[I, K]{id: key, h: b.byID[key]})
	}
	return result
}

func (b *Bus[I, K]) dispatchAt(ctx context.Context, id *K, fn func(I)) error {
	h := b.addressHolder(id, false)
	if h == nil {
		return nil // no handlers connected at this address: a dispatch is a no-op, not an error
	}

	b.lockDispatch()
	defer b.unlockDispatch()

	_, span := tracer.Start(ctx, "ebus.dispatch", trace.WithAttributes(
		attribute.String("ebus.bus", b.name),
		attribute.Bool("ebus.reentrant", isInDispatch(b)),
	))
	defer span.End()

	pop := pushCallstack(b, id)
	defer pop()

	b.metrics.dispatches.Inc()
	h.dispatch(func(handler I) bool {
		fn(handler)
		return true
	})

	if id != nil {
		b.reclaimIfEmpty(id, h)
	}
	return nil
}

// EnumerateHandlers visits every handler at address id (or every address for
// a nil id on a keyed bus, or the anonymous address when ids is empty on a
// Single bus). visit returning false stops enumeration early.
func (b *Bus[I, K]) EnumerateHandlers(visit func(I) bool, ids ...K) {
	if b.traits.AddressPolicy != AddressSingle && len(ids) == 0 {
		for _, p := range b.snapshotHolders() {
			stopped := false
			p.h.dispatch(func(handler I) bool {
				if !visit(handler) {
					stopped = true
					return false
				}
				return true
			})
			if stopped {
				return
			}
		}
		return
	}
	id, err := b.resolveID(ids)
	if err != nil {
		return
	}
	h := b.addressHolder(id, false)
	if h == nil {
		return
	}
	h.dispatch(visit)
}

// IsInDispatchThisThread reports whether the caller is running nested inside
// an in-flight dispatch on this bus. ctx is accepted for call-site symmetry
// with Event/Broadcast and future span correlation; the callstack itself
// lives on the bus, not in ctx, since interface handlers are not required to
// thread a context through to report their own reentrancy status.
func (b *Bus[I, K]) IsInDispatchThisThread(ctx context.Context) bool {
	return isInDispatch(b)
}

// CurrentBusID returns the id of the innermost active dispatch, if any.
func (b *Bus[I, K]) CurrentBusID(ctx context.Context) (K, bool) {
	return currentID(b)
}

// HasReentrantUseThisThread reports whether id is already being dispatched
// somewhere up the current call chain.
func (b *Bus[I, K]) HasReentrantUseThisThread(ctx context.Context, id K) bool {
	return hasReentrantUse(b, id)
}

// QueueEvent enqueues fn for later delivery to address id's handlers.
func (b *Bus[I, K]) QueueEvent(id K, fn func(I)) error {
	if b.queue == nil {
		return ErrQueueDisabled
	}
	queuedID := id
	ok := b.queue.push(queuedInvocation[I]{
		id: &queuedID,
		invoke: func(handler I) bool {
			fn(handler)
			return true
		},
	})
	if !ok {
		return ErrQueueDisabled
	}
	return nil
}

// QueueBroadcast enqueues fn for later delivery to every address's handlers.
func (b *Bus[I, K]) QueueBroadcast(fn func(I)) error {
	if b.queue == nil {
		return ErrQueueDisabled
	}
	ok := b.queue.push(queuedInvocation[I]{
		invoke: func(handler I) bool {
			fn(handler)
			return true
		},
	})
	if !ok {
		return ErrQueueDisabled
	}
	return nil
}

// ExecuteQueued drains and runs every invocation queued since the last call,
// in enqueue order.
func (b *Bus[I, K]) ExecuteQueued(ctx context.Context) {
	if b.queue == nil {
		return
	}
	items := b.queue.drain()
	for _, item := range items {
		if item.id == nil {
			b.Broadcast(ctx, func(handler I) { item.invoke(handler) })
			continue
		}
		id := *item.id.(*K)
		_ = b.Event(ctx, id, func(handler I) { item.invoke(handler) })
	}
}

// SetQueueActive enables or disables queueing; disabling clears any pending
// queued invocations.
func (b *Bus[I, K]) SetQueueActive(active bool) {
	if b.queue == nil {
		return
	}
	b.queue.setActive(active)
}

// QueueActive reports whether the queue currently accepts new invocations.
func (b *Bus[I, K]) QueueActive() bool {
	return b.queue != nil && b.queue.isActive()
}

// QueueLen returns the number of invocations currently queued.
func (b *Bus[I, K]) QueueLen() int {
	if b.queue == nil {
		return 0
	}
	return b.queue.len()
}

// EventResult delivers fn to every handler on address id and folds the
// per-handler results with reduce, starting from zero. It is a package-level
// generic function (methods cannot introduce new type parameters in Go).
func EventResult[I comparable, K comparable, R any](b *Bus[I, K], ctx context.Context, id K, fn func(I) R, reduce func(acc, v R) R, zero R) R {
	acc := zero
	_ = b.Event(ctx, id, func(h I) {
		acc = reduce(acc, fn(h))
	})
	return acc
}

// BroadcastResult delivers fn to every handler on every address and folds
// the results with reduce, starting from zero.
func BroadcastResult[I comparable, K comparable, R any](b *Bus[I, K], ctx context.Context, fn func(I) R, reduce func(acc, v R) R, zero R) R {
	acc := zero
	b.Broadcast(ctx, func(h I) {
		acc = reduce(acc, fn(h))
	})
	return acc
}
