package reflect

import (
	"reflect"
	"sort"
	"sync"

	"github.com/forgecore/engine/internal/hashstring"
)

// ReflectContext holds every reflected type, keyed by stable id, standing
// in for the source's ReflectContext (itself a thin wrapper over an
// entt::meta_ctx). Per the concurrency model, contexts are mutated only
// during RegisterAll, before the main loop starts; this package does not
// itself enforce that, the same way the source leaves it to discipline
// rather than a runtime lock.
type ReflectContext struct {
	mu    sync.RWMutex
	types map[TypeID]*TypeNode
	order []TypeID
}

// NewReflectContext returns an empty context.
func NewReflectContext() *ReflectContext {
	return &ReflectContext{types: make(map[TypeID]*TypeNode)}
}

// Reset drops every registered type.
func (ctx *ReflectContext) Reset() {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.types = make(map[TypeID]*TypeNode)
	ctx.order = nil
}

// ResetID drops the single type registered under id, if any.
func (ctx *ReflectContext) ResetID(id TypeID) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if _, ok := ctx.types[id]; !ok {
		return
	}
	delete(ctx.types, id)
	for i, o := range ctx.order {
		if o.Equal(id) {
			ctx.order = append(ctx.order[:i], ctx.order[i+1:]...)
			break
		}
	}
}

// ResetType drops whatever type T most recently reflected registered.
func ResetType[T any](ctx *ReflectContext) {
	ctx.ResetID(idOf[T]())
}

func idOf[T any]() TypeID {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	return hashstring.New(typ.PkgPath() + "." + typ.Name())
}

// Resolve looks up a previously registered type by id.
func (ctx *ReflectContext) Resolve(id TypeID) (*TypeNode, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	n, ok := ctx.types[id]
	return n, ok
}

// ResolveName looks up a previously registered type by its declared name.
func (ctx *ReflectContext) ResolveName(name string) (*TypeNode, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	for _, id := range ctx.order {
		if n := ctx.types[id]; n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Resolve looks up the type most recently reflected for Go type T.
func Resolve[T any](ctx *ReflectContext) (*TypeNode, bool) {
	return ctx.Resolve(idOf[T]())
}

// TypeSize returns how many types are currently registered.
func (ctx *ReflectContext) TypeSize() int {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return len(ctx.types)
}

// GetAllTypes returns every registered type, sorted by the given comparator
// or, if none is given, by ascending TypeID hash -- the same default
// DefaultTypeCompare uses in the source.
func (ctx *ReflectContext) GetAllTypes(less ...func(a, b *TypeNode) bool) []*TypeNode {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	out := make([]*TypeNode, 0, len(ctx.order))
	for _, id := range ctx.order {
		out = append(out, ctx.types[id])
	}

	cmp := defaultTypeCompare
	if len(less) > 0 {
		cmp = less[0]
	}
	sort.Slice(out, func(i, j int) bool { return cmp(out[i], out[j]) })
	return out
}

func defaultTypeCompare(a, b *TypeNode) bool { return a.ID.Hash() < b.ID.Hash() }

// Reflect begins (or resumes) reflecting Go type T against ctx, returning a
// fluent builder, standing in for ctx.Reflect<T>().
func Reflect[T any](ctx *ReflectContext) *Reflector[T] {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	id := idOf[T]()
	goType := reflect.TypeOf((*T)(nil)).Elem()
	node, ok := ctx.types[id]
	if !ok {
		node = newTypeNode(goType.Name(), id, goType)
		ctx.types[id] = node
		ctx.order = append(ctx.order, id)
	}
	return &Reflector[T]{ctx: ctx, node: node, lastFieldIdx: -1}
}
