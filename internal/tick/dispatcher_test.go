package tick_test

import (
	"context"
	"testing"
	"time"

	"github.com/forgecore/engine/internal/tick"
	"github.com/forgecore/engine/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler appends its own label to a shared sequence slice each
// time OnTick fires, so tests can assert visitation order.
type recordingHandler struct {
	label string
	order tick.Order
	seq   *[]string
}

func (h *recordingHandler) OnTick(_ context.Context, _ *world.World, _ time.Duration) {
	*h.seq = append(*h.seq, h.label)
}
func (h *recordingHandler) Order() tick.Order { return h.order }

// Ordered handlers: three handlers with orders 1, 2, 3 connected in
// order 3, 1, 2 must still be visited in ascending order.
func TestDispatcherOrderStability(t *testing.T) {
	var seq []string
	d := tick.New(tick.FixedClock{DT: 16 * time.Millisecond})

	h3 := &recordingHandler{label: "h3", order: 3, seq: &seq}
	h1 := &recordingHandler{label: "h1", order: 1, seq: &seq}
	h2 := &recordingHandler{label: "h2", order: 2, seq: &seq}

	require.NoError(t, d.Connect(h3))
	require.NoError(t, d.Connect(h1))
	require.NoError(t, d.Connect(h2))

	w := world.New()
	dt := d.Tick(context.Background(), w)

	assert.Equal(t, 16*time.Millisecond, dt)
	assert.Equal(t, []string{"h1", "h2", "h3"}, seq)
}

func TestDispatcherWellKnownOrdersAreAscending(t *testing.T) {
	assert.True(t, tick.Less(tick.OrderFirst, tick.OrderPlacement))
	assert.True(t, tick.Less(tick.OrderPlacement, tick.OrderInput))
	assert.True(t, tick.Less(tick.OrderInput, tick.OrderGame))
	assert.True(t, tick.Less(tick.OrderGame, tick.OrderAnimation))
	assert.True(t, tick.Less(tick.OrderAnimation, tick.OrderPhysics))
	assert.True(t, tick.Less(tick.OrderPhysics, tick.OrderPreRender))
	assert.True(t, tick.Less(tick.OrderPreRender, tick.OrderDefault))
	assert.True(t, tick.Less(tick.OrderDefault, tick.OrderUI))
	assert.True(t, tick.Less(tick.OrderUI, tick.OrderLast))
}

func TestDispatcherFuncHandler(t *testing.T) {
	d := tick.New(tick.FixedClock{DT: time.Millisecond})
	var got time.Duration
	h := tick.NewFunc(tick.OrderGame, func(_ context.Context, _ *world.World, dt time.Duration) {
		got = dt
	})
	require.NoError(t, d.Connect(h))
	d.Tick(context.Background(), world.New())
	assert.Equal(t, time.Millisecond, got)

	require.NoError(t, d.Disconnect(h))
	assert.False(t, d.Has(h))
}

func TestSystemClockAdvancesMonotonically(t *testing.T) {
	c := tick.NewSystemClock()
	time.Sleep(2 * time.Millisecond)
	dt := c.Advance()
	assert.Greater(t, dt, time.Duration(0))
}
