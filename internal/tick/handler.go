package tick

import (
	"context"
	"time"

	"github.com/forgecore/engine/internal/world"
)

// Handler is implemented by any subsystem that wants to act once per frame.
// Order is read once at Connect time (ebus.HandlerMultipleOrdered sorts the
// handler list at insertion, not per dispatch), so a handler must not change
// the value it returns from Order after connecting -- reconnect instead.
type Handler interface {
	OnTick(ctx context.Context, w *world.World, dt time.Duration)
	Order() Order
}

// Func adapts a plain function plus a fixed order into a Handler, for
// subsystems that don't otherwise need a type of their own -- the tick
// equivalent of http.HandlerFunc.
type Func struct {
	Fn    func(ctx context.Context, w *world.World, dt time.Duration)
	order Order
}

// NewFunc returns a Handler that calls fn at the given order.
func NewFunc(order Order, fn func(ctx context.Context, w *world.World, dt time.Duration)) *Func {
	return &Func{Fn: fn, order: order}
}

// OnTick implements Handler.
func (f *Func) OnTick(ctx context.Context, w *world.World, dt time.Duration) { f.Fn(ctx, w, dt) }

// Order implements Handler.
func (f *Func) Order() Order { return f.order }
