package scene

import (
	"io"
	"sort"

	"github.com/forgecore/engine/internal/app"
	"github.com/forgecore/engine/internal/world"
)

// Scene observes Hierarchy construct/update/destroy events on a world.World
// and maintains the derived root set, children map, and DFS tree. It is not
// safe for concurrent use, matching world.World's own main-thread contract.
type Scene struct {
	w   *world.World
	log *app.Logger

	entities map[world.Entity]struct{}
	roots    map[world.Entity]struct{}
	children map[world.Entity][]world.Entity
	cache    map[world.Entity]Hierarchy
	dfsTree  []TreeNode

	pending []func()
}

// Option configures a Scene at construction time.
type Option func(*Scene)

// WithLogger overrides the default logger, which discards its output.
func WithLogger(l *app.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// New creates a Scene bound to w, opts Hierarchy into component events, and
// connects as its observer -- the Go equivalent of SceneManager::Initialize.
func New(w *world.World, opts ...Option) *Scene {
	s := &Scene{
		w:        w,
		entities: make(map[world.Entity]struct{}),
		roots:    make(map[world.Entity]struct{}),
		children: make(map[world.Entity][]world.Entity),
		cache:    make(map[world.Entity]Hierarchy),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = app.NewLogger(app.LoggerConfig{Output: io.Discard}).WithComponent("scene")
	}

	world.SetupComponentEvents[Hierarchy](w)
	_ = w.ComponentBus().Connect(s, world.ComponentID[Hierarchy]())
	return s
}

// Close disconnects the observer and drops every cache, matching
// SceneManager::ShutDown.
func (s *Scene) Close() {
	_ = s.w.ComponentBus().Disconnect(s, world.ComponentID[Hierarchy]())
	s.roots = make(map[world.Entity]struct{})
	s.children = make(map[world.Entity][]world.Entity)
	s.entities = make(map[world.Entity]struct{})
	s.cache = make(map[world.Entity]Hierarchy)
	s.dfsTree = nil
}

// EntityCount returns how many entities currently carry a valid Hierarchy.
func (s *Scene) EntityCount() int { return len(s.entities) }

// AddEntity installs an empty Hierarchy on e if it doesn't already have one.
func (s *Scene) AddEntity(e world.Entity) error {
	if e == world.NullEntity {
		s.log.Error("AddEntity: entity is null")
		return ErrNullEntity
	}
	if !world.Has[Hierarchy](s.w, e) {
		world.Add(s.w, e, Hierarchy{Parent: world.NullEntity, FirstChild: world.NullEntity, PrevSibling: world.NullEntity, NextSibling: world.NullEntity})
	}
	return nil
}

// AddEntities installs an empty Hierarchy on every entity in the slice.
func (s *Scene) AddEntities(entities []world.Entity) error {
	for _, e := range entities {
		if e == world.NullEntity {
			s.log.Error("AddEntities: there is a null entity in input entities")
			return ErrNullEntity
		}
	}
	for _, e := range entities {
		if err := s.AddEntity(e); err != nil {
			return err
		}
	}
	return nil
}

// RemoveEntity strips e's Hierarchy component, if present.
func (s *Scene) RemoveEntity(e world.Entity) error {
	if e == world.NullEntity {
		s.log.Error("RemoveEntity: entity is null")
		return ErrNullEntity
	}
	if world.Has[Hierarchy](s.w, e) {
		world.Remove[Hierarchy](s.w, e)
	}
	return nil
}

// RemoveEntities strips the Hierarchy component from every listed entity.
func (s *Scene) RemoveEntities(entities []world.Entity) error {
	for _, e := range entities {
		if e == world.NullEntity {
			s.log.Error("RemoveEntities: there is a null entity in input entities")
			return ErrNullEntity
		}
	}
	for _, e := range entities {
		if err := s.RemoveEntity(e); err != nil {
			return err
		}
	}
	return nil
}

// Contain reports whether e currently carries a known-valid Hierarchy.
func (s *Scene) Contain(e world.Entity) bool {
	if e == world.NullEntity {
		s.log.Error("Contain: entity is null")
		return false
	}
	_, ok := s.entities[e]
	return ok
}

// GetHierarchyPath returns e's ancestors, ordered from root down to (but
// excluding) e itself.
func (s *Scene) GetHierarchyPath(e world.Entity) []world.Entity {
	var ancestors []world.Entity
	cur := e
	for world.Has[Hierarchy](s.w, cur) {
		parent := world.Get[Hierarchy](s.w, cur).Parent
		if parent == world.NullEntity {
			break
		}
		ancestors = append(ancestors, parent)
		cur = parent
	}
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors
}

// IsAncestor reports whether ancestor is among entity's parents.
func (s *Scene) IsAncestor(entity, ancestor world.Entity) bool {
	cur := entity
	for world.Has[Hierarchy](s.w, cur) {
		parent := world.Get[Hierarchy](s.w, cur).Parent
		if parent == world.NullEntity {
			break
		}
		if parent == ancestor {
			return true
		}
		cur = parent
	}
	return false
}

// GetEntityRoot walks to, and returns, entity's topmost parent.
func (s *Scene) GetEntityRoot(entity world.Entity) world.Entity {
	cur := entity
	for world.Has[Hierarchy](s.w, cur) {
		parent := world.Get[Hierarchy](s.w, cur).Parent
		if parent == world.NullEntity {
			break
		}
		cur = parent
	}
	return cur
}

// GetRootEntities returns every entity whose Hierarchy has no parent,
// optionally sorted by less.
func (s *Scene) GetRootEntities(less ...func(a, b world.Entity) bool) []world.Entity {
	out := make([]world.Entity, 0, len(s.roots))
	for e := range s.roots {
		out = append(out, e)
	}
	if len(less) > 0 {
		cmp := less[0]
		sort.Slice(out, func(i, j int) bool { return cmp(out[i], out[j]) })
	}
	return out
}

// GetChildren returns entity's first-level children, in sibling-chain order.
func (s *Scene) GetChildren(entity world.Entity) []world.Entity {
	children, ok := s.children[entity]
	if !ok {
		return nil
	}
	out := make([]world.Entity, len(children))
	copy(out, children)
	return out
}

// GetDepth returns entity's distance from its root.
func (s *Scene) GetDepth(entity world.Entity) int {
	depth := 0
	cur := entity
	for world.Has[Hierarchy](s.w, cur) {
		parent := world.Get[Hierarchy](s.w, cur).Parent
		if parent == world.NullEntity {
			break
		}
		depth++
		cur = parent
	}
	return depth
}

// GetEntityTree returns the cached depth-annotated DFS traversal.
func (s *Scene) GetEntityTree() []TreeNode {
	out := make([]TreeNode, len(s.dfsTree))
	copy(out, s.dfsTree)
	return out
}

// SetParent replaces entity's Hierarchy so it becomes a child of parent,
// inserted immediately after prevSibling (or at the front of parent's
// children if prevSibling is world.NullEntity). Missing parent/prevSibling
// entities are auto-registered with an empty Hierarchy first.
func (s *Scene) SetParent(entity, parent, prevSibling world.Entity) error {
	if entity == world.NullEntity || parent == world.NullEntity {
		s.log.Error("SetParent: entity or parent is null")
		return ErrNullEntity
	}

	if !s.Contain(parent) {
		if err := s.AddEntity(parent); err != nil {
			return err
		}
	}
	if prevSibling != world.NullEntity && !s.Contain(prevSibling) {
		if err := s.AddEntity(prevSibling); err != nil {
			return err
		}
	}

	var hier Hierarchy
	if world.Has[Hierarchy](s.w, entity) {
		hier = world.Get[Hierarchy](s.w, entity)
	} else {
		hier = Hierarchy{Parent: world.NullEntity, FirstChild: world.NullEntity, PrevSibling: world.NullEntity, NextSibling: world.NullEntity}
	}

	var next world.Entity
	if prevSibling != world.NullEntity {
		next = world.Get[Hierarchy](s.w, prevSibling).NextSibling
	} else {
		next = world.Get[Hierarchy](s.w, parent).FirstChild
	}

	hier.Parent = parent
	hier.PrevSibling = prevSibling
	hier.NextSibling = next
	world.AddOrReplace(s.w, entity, hier)
	return nil
}

// PatchEntityHierarchy applies fn to entity and every descendant, in DFS
// pre-order, useful for bulk delete/select.
func (s *Scene) PatchEntityHierarchy(entity world.Entity, fn func(world.Entity)) {
	stack := []world.Entity{entity}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(cur)

		children := s.GetChildren(cur)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}
