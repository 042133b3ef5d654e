package reflect_test

import (
	"testing"

	"github.com/forgecore/engine/internal/reflect"
	"github.com/forgecore/engine/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y, Z float32
}

func reflectPosition(ctx *reflect.ReflectContext) {
	r := reflect.Reflect[Position](ctx)
	r = r.Type("Position")
	r = reflect.Data(r, "x", func(p *Position) float32 { return p.X }, func(p *Position, v float32) { p.X = v })
	r = reflect.Data(r, "y", func(p *Position) float32 { return p.Y }, func(p *Position, v float32) { p.Y = v })
	r = reflect.Data(r, "z", func(p *Position) float32 { return p.Z }, func(p *Position, v float32) { p.Z = v })
	reflect.ComponentOperation(r)
}

// Reflection round-trip.
func TestFieldGetSetRoundTrip(t *testing.T) {
	ctx := reflect.NewReflectContext()
	reflectPosition(ctx)

	node, ok := reflect.Resolve[Position](ctx)
	require.True(t, ok)

	field, ok := node.Data("x")
	require.True(t, ok)

	v := Position{X: 1, Y: 2, Z: 3}
	got, ok := reflect.TryCast[float32](field.Get(&v))
	require.True(t, ok)
	assert.Equal(t, float32(1), got)

	require.NoError(t, field.Set(&v, reflect.NewAny(float32(9))))
	assert.Equal(t, float32(9), v.X)

	got2, ok := reflect.TryCast[float32](field.Get(&v))
	require.True(t, ok)
	assert.Equal(t, float32(9), got2)
}

// Reflection invocation.
func TestReflectionInvocation(t *testing.T) {
	ctx := reflect.NewReflectContext()
	reflectPosition(ctx)

	w := world.New()
	e := w.CreateEntity()

	node, ok := reflect.Resolve[Position](ctx)
	require.True(t, ok)

	fn, ok := node.Func("AddComponent")
	require.True(t, ok)

	_, err := fn.Invoke(reflect.MetaAny{}, reflect.NewAny(w), reflect.NewAny(e), reflect.NewAny(Position{X: 1, Y: 1, Z: 1}))
	require.NoError(t, err)

	got := world.Get[Position](w, e)
	assert.Equal(t, Position{X: 1, Y: 1, Z: 1}, got)
}

func TestComponentOperationHasAndRemove(t *testing.T) {
	ctx := reflect.NewReflectContext()
	reflectPosition(ctx)

	w := world.New()
	e := w.CreateEntity()
	world.Add(w, e, Position{X: 5})

	node, _ := reflect.Resolve[Position](ctx)

	hasFn, _ := node.Func("HasComponent")
	out, err := hasFn.Invoke(reflect.MetaAny{}, reflect.NewAny(w), reflect.NewAny(e))
	require.NoError(t, err)
	has, ok := reflect.TryCast[bool](out[0])
	require.True(t, ok)
	assert.True(t, has)

	removeFn, _ := node.Func("RemoveComponent")
	_, err = removeFn.Invoke(reflect.MetaAny{}, reflect.NewAny(w), reflect.NewAny(e))
	require.NoError(t, err)
	assert.False(t, world.Has[Position](w, e))
}

func TestTypeRegistryRegisterAllRunsInInsertionOrder(t *testing.T) {
	registry := reflect.NewTypeRegistry()
	var order []string
	registry.Register(func(ctx *reflect.ReflectContext) { order = append(order, "first") })
	registry.Register(func(ctx *reflect.ReflectContext) { order = append(order, "second") })

	ctx := reflect.NewReflectContext()
	registry.RegisterAll(ctx)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestGetAllTypesSortedByComparator(t *testing.T) {
	ctx := reflect.NewReflectContext()
	reflectPosition(ctx)

	type Velocity struct{ X, Y, Z float32 }
	reflect.Reflect[Velocity](ctx).Type("Velocity")

	types := ctx.GetAllTypes(func(a, b *reflect.TypeNode) bool { return a.Name < b.Name })
	require.Len(t, types, 2)
	assert.Equal(t, "Position", types[0].Name)
	assert.Equal(t, "Velocity", types[1].Name)
}

func TestCustomAttachesUIMetadataToLastField(t *testing.T) {
	ctx := reflect.NewReflectContext()
	r := reflect.Reflect[Position](ctx).Type("Position")
	r = reflect.Data(r, "x", func(p *Position) float32 { return p.X }, func(p *Position, v float32) { p.X = v })
	r.Custom(reflect.FloatElement{Min: -100, Max: 100, Speed: 0.1})

	node, _ := reflect.Resolve[Position](ctx)
	field, _ := node.Data("x")
	elem, ok := field.Custom.(reflect.FloatElement)
	require.True(t, ok)
	assert.Equal(t, float32(-100), elem.Min)
}

func TestBaseRecordsInheritance(t *testing.T) {
	type Base struct{ ID int }
	ctx := reflect.NewReflectContext()
	reflect.Base[Position, Base](reflect.Reflect[Position](ctx).Type("Position"))

	node, _ := reflect.Resolve[Position](ctx)
	assert.Len(t, node.Bases(), 1)
}

func TestTraits(t *testing.T) {
	type Editable struct{ Value bool }
	ctx := reflect.NewReflectContext()
	reflect.Reflect[Position](ctx).Type("Position").Traits(Editable{Value: true})

	node, _ := reflect.Resolve[Position](ctx)
	editable, ok := reflect.Trait[Editable](node)
	require.True(t, ok)
	assert.True(t, editable.Value)
}

func TestSequenceContainerIntrospection(t *testing.T) {
	values := []float32{1, 2, 3}
	seq, err := reflect.RefAny(&values).AsSequenceContainer()
	require.NoError(t, err)
	require.Equal(t, 3, seq.Len())

	var seen []float32
	seq.Each(func(i int, v reflect.MetaAny) {
		f, ok := reflect.TryCast[float32](v)
		require.True(t, ok)
		seen = append(seen, f)
	})
	assert.Equal(t, []float32{1, 2, 3}, seen)
}

func TestCastPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() {
		reflect.Cast[int](reflect.NewAny("not an int"))
	})
}

func TestTryCastWidensNumericKinds(t *testing.T) {
	v, ok := reflect.TryCast[float64](reflect.NewAny(float32(2.5)))
	require.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = reflect.TryCast[float32](reflect.NewAny(float64(2.5)))
	assert.False(t, ok, "narrowing float64 -> float32 is not implicit")
}

func TestJSONBridgeGetPath(t *testing.T) {
	doc := []byte(`{"transform":{"x":1,"y":2}}`)
	v, ok := reflect.GetPath(doc, "transform.x")
	require.True(t, ok)
	f, ok := reflect.TryCast[float64](v)
	require.True(t, ok)
	assert.Equal(t, 1.0, f)

	updated, err := reflect.SetPath(doc, "transform.x", 9)
	require.NoError(t, err)
	v2, _ := reflect.GetPath(updated, "transform.x")
	f2, _ := reflect.TryCast[float64](v2)
	assert.Equal(t, 9.0, f2)
}
