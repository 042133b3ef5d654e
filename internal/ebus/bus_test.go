package ebus_test

import (
	"context"
	"testing"

	"github.com/forgecore/engine/internal/ebus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterHandler implements a tiny interface used across these tests.
type counterHandler struct {
	id    string
	count int
}

func (h *counterHandler) OnEvent() { h.count++ }

type eventIface interface {
	OnEvent()
}

// Single-bus dispatch.
func TestSingleBusDispatch(t *testing.T) {
	bus, err := ebus.New[eventIface, struct{}]("s1", ebus.Traits[eventIface, struct{}]{
		AddressPolicy: ebus.AddressSingle,
		HandlerPolicy: ebus.HandlerMultiple,
	})
	require.NoError(t, err)

	h := &counterHandler{id: "h1"}
	require.NoError(t, bus.Connect(h))

	bus.Broadcast(context.Background(), func(i eventIface) { i.OnEvent() })
	bus.Broadcast(context.Background(), func(i eventIface) { i.OnEvent() })
	assert.Equal(t, 2, h.count)

	require.NoError(t, bus.Disconnect(h))
	assert.False(t, bus.HasHandlers())
}

// Id bus.
func TestIDBusDispatch(t *testing.T) {
	bus, err := ebus.New[eventIface, uint32]("s2", ebus.Traits[eventIface, uint32]{
		AddressPolicy: ebus.AddressByID,
		HandlerPolicy: ebus.HandlerMultiple,
	})
	require.NoError(t, err)

	h1 := &counterHandler{id: "h1"}
	h2 := &counterHandler{id: "h2"}
	require.NoError(t, bus.Connect(h1, uint32(1)))
	require.NoError(t, bus.Connect(h2, uint32(2)))

	require.NoError(t, bus.Event(context.Background(), 1, func(i eventIface) { i.OnEvent() }))
	assert.Equal(t, 1, h1.count)
	assert.Equal(t, 0, h2.count)

	require.NoError(t, bus.Event(context.Background(), 2, func(i eventIface) { i.OnEvent() }))
	assert.Equal(t, 1, h1.count)
	assert.Equal(t, 1, h2.count)

	bus.Broadcast(context.Background(), func(i eventIface) { i.OnEvent() })
	assert.Equal(t, 2, h1.count)
	assert.Equal(t, 2, h2.count)
}

// orderedHandler records the sequence in which handlers were invoked.
type orderRecorder struct {
	order []int
}

type orderedHandler struct {
	tag   int
	order int
	rec   *orderRecorder
}

func (h *orderedHandler) OnEvent() { h.rec.order = append(h.rec.order, h.tag) }

// Ordered handlers.
func TestOrderedHandlerDispatch(t *testing.T) {
	bus, err := ebus.New[eventIface, uint32]("s3", ebus.Traits[eventIface, uint32]{
		AddressPolicy: ebus.AddressByID,
		HandlerPolicy: ebus.HandlerMultipleOrdered,
		HandlerLess: func(a, b eventIface) bool {
			return a.(*orderedHandler).order < b.(*orderedHandler).order
		},
	})
	require.NoError(t, err)

	rec := &orderRecorder{}
	h3 := &orderedHandler{tag: 3, order: 3, rec: rec}
	h1 := &orderedHandler{tag: 1, order: 1, rec: rec}
	h2 := &orderedHandler{tag: 2, order: 2, rec: rec}

	require.NoError(t, bus.Connect(h3, uint32(100)))
	require.NoError(t, bus.Connect(h1, uint32(100)))
	require.NoError(t, bus.Connect(h2, uint32(100)))

	require.NoError(t, bus.Event(context.Background(), 100, func(i eventIface) { i.OnEvent() }))
	assert.Equal(t, []int{1, 2, 3}, rec.order)
}

// Queued events.
func TestQueuedEvents(t *testing.T) {
	bus, err := ebus.New[eventIface, struct{}]("s4", ebus.Traits[eventIface, struct{}]{
		AddressPolicy:        ebus.AddressSingle,
		HandlerPolicy:        ebus.HandlerMultiple,
		EnableQueue:          true,
		QueueActiveByDefault: true,
	})
	require.NoError(t, err)

	h1 := &counterHandler{id: "h1"}
	h2 := &counterHandler{id: "h2"}
	require.NoError(t, bus.Connect(h1))
	require.NoError(t, bus.Connect(h2))

	require.NoError(t, bus.QueueBroadcast(func(i eventIface) { i.OnEvent() }))
	assert.Equal(t, 0, h1.count)

	bus.ExecuteQueued(context.Background())
	assert.Equal(t, 1, h1.count)
	assert.Equal(t, 1, h2.count)

	bus.SetQueueActive(false)
	require.Error(t, bus.QueueBroadcast(func(i eventIface) { i.OnEvent() }))
	bus.ExecuteQueued(context.Background())
	assert.Equal(t, 1, h1.count) // unaffected; queue cleared
}

// Connect/disconnect parity.
func TestConnectDisconnectParity(t *testing.T) {
	bus, err := ebus.New[eventIface, struct{}]("parity", ebus.DefaultTraits[eventIface, struct{}]())
	require.NoError(t, err)

	h := &counterHandler{}
	before := bus.HasHandlers()
	require.NoError(t, bus.Connect(h))
	require.NoError(t, bus.Disconnect(h))
	assert.Equal(t, before, bus.HasHandlers())
}

// Reentrant disconnect safety: a handler that disconnects
// another handler mid-dispatch must not cause the victim to be invoked for
// the in-flight dispatch, and every other handler is visited exactly once.
func TestReentrantDisconnectSafety(t *testing.T) {
	bus, err := ebus.New[eventIface, struct{}]("reentrant", ebus.DefaultTraits[eventIface, struct{}]())
	require.NoError(t, err)

	victim := &counterHandler{id: "victim"}
	var disconnector *disconnectingHandler
	tail := &counterHandler{id: "tail"}

	disconnector = &disconnectingHandler{bus: bus, target: victim}

	require.NoError(t, bus.Connect(disconnector))
	require.NoError(t, bus.Connect(victim))
	require.NoError(t, bus.Connect(tail))

	bus.Broadcast(context.Background(), func(i eventIface) { i.OnEvent() })

	assert.Equal(t, 0, victim.count, "victim must not be invoked once disconnected mid-dispatch")
	assert.Equal(t, 1, tail.count, "handler after the removed one must still be visited exactly once")
}

type disconnectingHandler struct {
	bus    *ebus.Bus[eventIface, struct{}]
	target *counterHandler
}

func (h *disconnectingHandler) OnEvent() {
	_ = h.bus.Disconnect(h.target)
}

// Dispatch visits each connected handler exactly once.
func TestDispatchVisitsEachHandlerOnce(t *testing.T) {
	bus, err := ebus.New[eventIface, uint32]("visit-once", ebus.Traits[eventIface, uint32]{
		AddressPolicy: ebus.AddressByID,
		HandlerPolicy: ebus.HandlerMultiple,
	})
	require.NoError(t, err)

	const n = 10
	handlers := make([]*counterHandler, n)
	for i := range handlers {
		handlers[i] = &counterHandler{}
		require.NoError(t, bus.Connect(handlers[i], uint32(7)))
	}

	require.NoError(t, bus.Event(context.Background(), 7, func(i eventIface) { i.OnEvent() }))
	for _, h := range handlers {
		assert.Equal(t, 1, h.count)
	}
}

func TestEventResultSumsAcrossHandlers(t *testing.T) {
	type summer interface {
		Sum() int
	}
	bus, err := ebus.New[summer, struct{}]("sum", ebus.DefaultTraits[summer, struct{}]())
	require.NoError(t, err)

	require.NoError(t, bus.Connect(constSummer(2)))
	require.NoError(t, bus.Connect(constSummer(3)))

	total := ebus.BroadcastResult(bus, context.Background(), func(s summer) int { return s.Sum() },
		func(acc, v int) int { return acc + v }, 0)
	assert.Equal(t, 5, total)
}

type constSummer int

func (c constSummer) Sum() int { return int(c) }

// Queue idempotence: queue_broadcast; execute_queued produces
// the same visible effect as a direct broadcast.
func TestQueueIdempotence(t *testing.T) {
	newBus := func() *ebus.Bus[eventIface, struct{}] {
		bus, err := ebus.New[eventIface, struct{}]("idem", ebus.Traits[eventIface, struct{}]{
			AddressPolicy: ebus.AddressSingle,
			HandlerPolicy: ebus.HandlerMultiple,
			EnableQueue:   true,
		})
		require.NoError(t, err)
		bus.SetQueueActive(true)
		return bus
	}

	direct := newBus()
	dh := &counterHandler{}
	require.NoError(t, direct.Connect(dh))
	direct.Broadcast(context.Background(), func(i eventIface) { i.OnEvent() })

	queued := newBus()
	qh := &counterHandler{}
	require.NoError(t, queued.Connect(qh))
	require.NoError(t, queued.QueueBroadcast(func(i eventIface) { i.OnEvent() }))
	queued.ExecuteQueued(context.Background())

	assert.Equal(t, dh.count, qh.count)
}

// reentrancyProbe reports, from inside its own handler callback, whether the
// bus correctly considers itself mid-dispatch and on which id.
type reentrancyProbe struct {
	bus           *ebus.Bus[eventIface, uint32]
	id            uint32
	sawInDispatch bool
	sawCurrentID  uint32
	sawHasCurrent bool
}

func (p *reentrancyProbe) OnEvent() {
	ctx := context.Background()
	p.sawInDispatch = p.bus.IsInDispatchThisThread(ctx)
	p.sawCurrentID, p.sawHasCurrent = p.bus.CurrentBusID(ctx)
}

func TestIsInDispatchThisThread(t *testing.T) {
	bus, err := ebus.New[eventIface, uint32]("reentry-probe", ebus.Traits[eventIface, uint32]{
		AddressPolicy: ebus.AddressByID,
		HandlerPolicy: ebus.HandlerMultiple,
	})
	require.NoError(t, err)

	assert.False(t, bus.IsInDispatchThisThread(context.Background()), "no dispatch is in flight yet")

	probe := &reentrancyProbe{bus: bus, id: 9}
	require.NoError(t, bus.Connect(probe, uint32(9)))
	require.NoError(t, bus.Event(context.Background(), 9, func(i eventIface) { i.OnEvent() }))

	assert.True(t, probe.sawInDispatch, "handler should observe itself mid-dispatch")
	assert.True(t, probe.sawHasCurrent)
	assert.Equal(t, uint32(9), probe.sawCurrentID)
	assert.False(t, bus.IsInDispatchThisThread(context.Background()), "dispatch must end once the call returns")
}
