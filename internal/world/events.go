package world

import (
	"context"
	"reflect"

	"github.com/forgecore/engine/internal/ebus"
)

// EntityObserver receives create/destroy notifications for every entity,
// regardless of which components it carries. World broadcasts on a
// dedicated Single-address bus, mirroring the source's EntityEventBus.
type EntityObserver interface {
	OnEntityCreate(e Entity)
	OnEntityDestroy(e Entity)
}

// ComponentObserver receives construct/update/destroy notifications for one
// component type. World multiplexes every observed component type through
// one ById bus keyed by reflect.Type, mirroring the source's
// ComponentEventBus keyed by GetTypeId<Component>() -- only types that call
// SetupComponentEvents ever dispatch here.
type ComponentObserver interface {
	OnComponentConstruct(w *World, e Entity)
	OnComponentUpdate(w *World, e Entity)
	OnComponentDestroy(w *World, e Entity)
}

func newEntityBus() *ebus.Bus[EntityObserver, struct{}] {
	bus, err := ebus.New[EntityObserver, struct{}]("world.entity", ebus.Traits[EntityObserver, struct{}]{
		AddressPolicy: ebus.AddressSingle,
		HandlerPolicy: ebus.HandlerMultiple,
		Lockless:      true, // World carries the same main-thread-only contract tick does
	})
	if err != nil {
		// Traits above are a fixed, known-valid literal; New only fails on
		// traits misconfiguration, which is a programming error here.
		panic(err)
	}
	return bus
}

func newComponentBus() *ebus.Bus[ComponentObserver, reflect.Type] {
	bus, err := ebus.New[ComponentObserver, reflect.Type]("world.component", ebus.Traits[ComponentObserver, reflect.Type]{
		AddressPolicy: ebus.AddressByID,
		HandlerPolicy: ebus.HandlerMultiple,
		Lockless:      true, // World carries the same main-thread-only contract tick does
	})
	if err != nil {
		panic(err)
	}
	return bus
}

func (w *World) emitConstruct(typ reflect.Type, e Entity) {
	if !w.observed[typ] {
		return
	}
	_ = w.componentBus.Event(context.Background(), typ, func(o ComponentObserver) { o.OnComponentConstruct(w, e) })
}

func (w *World) emitUpdate(typ reflect.Type, e Entity) {
	if !w.observed[typ] {
		return
	}
	_ = w.componentBus.Event(context.Background(), typ, func(o ComponentObserver) { o.OnComponentUpdate(w, e) })
}

func (w *World) emitDestroy(typ reflect.Type, e Entity) {
	if !w.observed[typ] {
		return
	}
	_ = w.componentBus.Event(context.Background(), typ, func(o ComponentObserver) { o.OnComponentDestroy(w, e) })
}
