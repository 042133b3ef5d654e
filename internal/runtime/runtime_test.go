package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/forgecore/engine/internal/reflect"
	"github.com/forgecore/engine/internal/runtime"
	"github.com/forgecore/engine/internal/scene"
	"github.com/forgecore/engine/internal/service"
	"github.com/forgecore/engine/internal/tick"
	"github.com/forgecore/engine/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Position is a tiny reflected component used to exercise the wiring between
// C1 (reflection), C4 (entity store) and the Runtime that owns both.
type Position struct {
	X, Y, Z float32
}

func TestNewWiresAllSixComponents(t *testing.T) {
	rt := runtime.New()
	defer rt.Close()

	assert.NotNil(t, rt.Reflect)
	assert.NotNil(t, rt.Types)
	assert.NotNil(t, rt.Services)
	assert.NotNil(t, rt.World)
	assert.NotNil(t, rt.Scene)
	assert.NotNil(t, rt.Tick)
}

// Scene is published as the IScene service as soon as the Runtime exists.
func TestScenePublishedAsService(t *testing.T) {
	rt := runtime.New()
	defer rt.Close()

	resolved, ok := service.Of[scene.IScene](rt.Services).Get()
	require.True(t, ok)
	assert.Same(t, rt.Scene, resolved)

	rt.Close()
	_, ok = service.Of[scene.IScene](rt.Services).Get()
	assert.False(t, ok, "Close must unpublish the scene service")
}

// Reflection invocation, driven through a Runtime instead of a bare
// ReflectContext, proving RegisterTypes wires C1 to C4 end to end.
func TestReflectionInvocationThroughRuntime(t *testing.T) {
	rt := runtime.New()
	defer rt.Close()

	rt.Types.Register(func(ctx *reflect.ReflectContext) {
		reflect.ComponentOperation[Position](reflect.Reflect[Position](ctx).Type("Position"))
	})
	rt.RegisterTypes()

	node, ok := rt.Reflect.ResolveName("Position")
	require.True(t, ok)

	e := rt.World.CreateEntity()
	fn, ok := node.Func("AddComponent")
	require.True(t, ok)

	_, err := fn.Invoke(reflect.MetaAny{}, reflect.NewAny(rt.World), reflect.NewAny(e), reflect.NewAny(Position{X: 1, Y: 1, Z: 1}))
	require.NoError(t, err)

	got := world.Get[Position](rt.World, e)
	assert.Equal(t, Position{X: 1, Y: 1, Z: 1}, got)
}

// Hierarchy mutations on rt.World are visible through rt.Scene, proving C4
// and C5 share one world via the Runtime rather than two independent ones.
func TestSceneObservesRuntimeWorld(t *testing.T) {
	rt := runtime.New()
	defer rt.Close()

	parent := rt.World.CreateEntity()
	child := rt.World.CreateEntity()
	require.NoError(t, rt.Scene.SetParent(child, parent, world.NullEntity))

	assert.Equal(t, []world.Entity{child}, rt.Scene.GetChildren(parent))
}

// Connect + Step exercises C6 against the shared world and the bounded log
// ring backing rt.Log.
func TestTickStepsRuntimeWorld(t *testing.T) {
	rt := runtime.New(runtime.WithClock(tick.FixedClock{DT: 5 * time.Millisecond}))
	defer rt.Close()

	var seenWorld *world.World
	require.NoError(t, rt.Connect(tick.NewFunc(tick.OrderGame, func(_ context.Context, w *world.World, dt time.Duration) {
		seenWorld = w
		rt.Log.Info("tick dt=%s", dt)
	})))

	dt := rt.Step(context.Background())
	assert.Equal(t, 5*time.Millisecond, dt)
	assert.Same(t, rt.World, seenWorld)
	assert.Greater(t, rt.LogSink.Len(), 0)
}

func TestWorldCapacityHintOption(t *testing.T) {
	rt := runtime.New(runtime.WithWorldOptions(world.WithCapacityHint(64)))
	defer rt.Close()

	e := rt.World.CreateEntity()
	assert.True(t, rt.World.Valid(e))
}
