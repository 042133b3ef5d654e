package runtime

import (
	"context"
	"time"

	"github.com/forgecore/engine/internal/app"
	"github.com/forgecore/engine/internal/reflect"
	"github.com/forgecore/engine/internal/scene"
	"github.com/forgecore/engine/internal/service"
	"github.com/forgecore/engine/internal/tick"
	"github.com/forgecore/engine/internal/world"
)

// Runtime owns one instance of every core component (C1-C6) for one
// process: a reflection context and type registry (C1), a service registry
// (C2), a world whose entity/component buses are themselves internal/ebus
// instances (C3+C4), the scene hierarchy observing that world (C5), and the
// per-frame tick dispatcher (C6). Constructing a Runtime replaces a
// collection of process-wide statics with one explicit value that a caller
// can construct more than once (tests, multiple worlds in one process).
type Runtime struct {
	Reflect  *reflect.ReflectContext
	Types    *reflect.TypeRegistry
	Services *service.Registry
	World    *world.World
	Scene    *scene.Scene
	Tick     *tick.Dispatcher

	Log     *app.Logger
	LogSink *RingSink

	sceneHandler *service.Handler[scene.IScene]
}

// New constructs a Runtime, wiring components in the order a collaborator
// depends on its predecessor: reflection and services have no dependency on
// anything else and come first; the world comes before the scene that
// observes it; the scene is published as the IScene service as soon as it
// exists; the tick dispatcher comes last, since tick handlers typically read
// the fully wired Runtime.
func New(opts ...Option) *Runtime {
	cfg := config{logRingCapacity: 1024}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger, sink := NewLogger("runtime", cfg.logRingCapacity)

	rt := &Runtime{
		Reflect:  reflect.NewReflectContext(),
		Types:    reflect.NewTypeRegistry(),
		Services: service.NewRegistry(),
		World:    world.New(cfg.worldOpts...),
		Log:      logger,
		LogSink:  sink,
	}
	rt.Scene = scene.New(rt.World, scene.WithLogger(logger.WithComponent("scene")))

	if h, err := service.NewHandler[scene.IScene](rt.Services, rt.Scene); err != nil {
		rt.Log.Error("failed to publish scene as IScene service: %v", err)
	} else {
		rt.sceneHandler = h
	}

	rt.Tick = tick.New(cfg.clock)

	return rt
}

// RegisterTypes runs every Reflect(ctx) func deferred on Types against
// Reflect, in insertion order. Call this once during startup, before the
// main loop begins -- the reflection context is mutated only here, so reads
// during the loop stay lock-free.
func (rt *Runtime) RegisterTypes() {
	rt.Types.RegisterAll(rt.Reflect)
}

// Connect attaches h to the tick dispatcher, a thin convenience so callers
// don't need to reach through Runtime.Tick for the common case.
func (rt *Runtime) Connect(h tick.Handler) error {
	return rt.Tick.Connect(h)
}

// Step advances the clock and broadcasts one tick across every connected
// handler, operating on rt.World.
func (rt *Runtime) Step(ctx context.Context) time.Duration {
	return rt.Tick.Tick(ctx, rt.World)
}

// Close unwinds the Runtime in reverse construction order: unpublish the
// IScene service, then close the scene observer, releasing its connection
// to the world's component bus.
func (rt *Runtime) Close() {
	if rt.sceneHandler != nil {
		_ = rt.sceneHandler.Close()
		rt.sceneHandler = nil
	}
	if rt.Scene != nil {
		rt.Scene.Close()
	}
}
