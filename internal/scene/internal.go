package scene

import "github.com/forgecore/engine/internal/world"

// valid enforces the structural invariants a Hierarchy component must
// satisfy before Scene will accept it: every referenced entity must be
// known to the scene, siblings must agree on their parent and on each
// other, and an ambiguous insertion point (a parent with an existing
// firstChild but no sibling to anchor against) is rejected rather than
// guessed at -- see DESIGN.md's Open Question decisions.
func (s *Scene) valid(h Hierarchy) bool {
	if h.Parent != world.NullEntity && !s.Contain(h.Parent) {
		s.log.Error("Valid: entity has parent but the parent entity is not in scene")
		return false
	}
	if h.PrevSibling != world.NullEntity && !s.Contain(h.PrevSibling) {
		s.log.Error("Valid: entity has prevSibling but the prevSibling entity is not in scene")
		return false
	}
	if h.NextSibling != world.NullEntity && !s.Contain(h.NextSibling) {
		s.log.Error("Valid: entity has nextSibling but the nextSibling entity is not in scene")
		return false
	}
	if h.FirstChild != world.NullEntity && !s.Contain(h.FirstChild) {
		s.log.Error("Valid: entity has firstChild but the firstChild entity is not in scene")
		return false
	}

	if h.NextSibling != world.NullEntity || h.PrevSibling != world.NullEntity {
		if h.Parent == world.NullEntity {
			s.log.Error("Valid: entity has a sibling but no parent")
			return false
		}
		if h.PrevSibling != world.NullEntity {
			prevHier := world.Get[Hierarchy](s.w, h.PrevSibling)
			if prevHier.Parent != h.Parent {
				s.log.Error("Valid: entity and its previous sibling have different parents")
				return false
			}
			if prevHier.NextSibling != h.NextSibling {
				s.log.Error("Valid: previous sibling's next does not point back at this entity's next")
				return false
			}
		}
		if h.NextSibling != world.NullEntity {
			nextHier := world.Get[Hierarchy](s.w, h.NextSibling)
			if nextHier.Parent != h.Parent {
				s.log.Error("Valid: entity and its next sibling have different parents")
				return false
			}
			if nextHier.PrevSibling != h.PrevSibling {
				s.log.Error("Valid: next sibling's prev does not point back at this entity's prev")
				return false
			}
		}
		if h.PrevSibling != world.NullEntity && h.NextSibling != world.NullEntity {
			next := world.Get[Hierarchy](s.w, h.PrevSibling).NextSibling
			prev := world.Get[Hierarchy](s.w, h.NextSibling).PrevSibling
			if next != prev {
				s.log.Error("Valid: prevSibling and nextSibling are not adjacent")
				return false
			}
		}
	} else if h.Parent != world.NullEntity {
		if world.Get[Hierarchy](s.w, h.Parent).FirstChild != world.NullEntity {
			s.log.Error("Valid: parent already has a child but neither sibling pointer was specified")
			return false
		}
	}

	return true
}

func (s *Scene) forEachChild(h Hierarchy, fn func(world.Entity)) {
	cur := h.FirstChild
	for cur != world.NullEntity && world.Has[Hierarchy](s.w, cur) {
		fn(cur)
		cur = world.Get[Hierarchy](s.w, cur).NextSibling
	}
}

// addEntityInternal re-links the entity's parent/sibling pointers (and its
// children's parent pointers) to match a freshly validated Hierarchy. It
// never touches the entity's own component, mirroring AddEntityInternal's
// use of entt's signal-free mutable Get on every *other* entity involved.
func (s *Scene) addEntityInternal(entity world.Entity) {
	hier := world.Get[Hierarchy](s.w, entity)
	parent, prevSibling, nextSibling := hier.Parent, hier.PrevSibling, hier.NextSibling

	if parent != world.NullEntity {
		if prevSibling == world.NullEntity {
			world.MutableGet[Hierarchy](s.w, parent).FirstChild = entity
		}
		s.pending = append(s.pending, func() { s.updateChildrenMap(parent) })
	}

	if prevSibling == world.NullEntity && nextSibling != world.NullEntity {
		prevSibling = world.Get[Hierarchy](s.w, nextSibling).PrevSibling
	}
	if prevSibling != world.NullEntity && nextSibling == world.NullEntity {
		nextSibling = world.Get[Hierarchy](s.w, prevSibling).NextSibling
	}

	if prevSibling != world.NullEntity {
		world.MutableGet[Hierarchy](s.w, prevSibling).NextSibling = entity
		s.pending = append(s.pending, func() { s.updateRoots(prevSibling) })
	}
	if nextSibling != world.NullEntity {
		world.MutableGet[Hierarchy](s.w, nextSibling).PrevSibling = entity
		s.pending = append(s.pending, func() { s.updateRoots(nextSibling) })
	}

	isFirst := true
	s.forEachChild(hier, func(child world.Entity) {
		childHier := world.MutableGet[Hierarchy](s.w, child)
		childHier.Parent = entity
		if isFirst {
			if prev := childHier.PrevSibling; prev != world.NullEntity {
				prevHier := world.MutableGet[Hierarchy](s.w, prev)
				prevHier.NextSibling = world.NullEntity
				oldParent := prevHier.Parent
				s.pending = append(s.pending, func() { s.updateChildrenMap(oldParent) })
			}
			childHier.PrevSibling = world.NullEntity
			s.pending = append(s.pending, func() { s.updateChildrenMap(entity) })
			isFirst = false
		}
		s.pending = append(s.pending, func() { s.updateRoots(child) })
	})

	s.pending = append(s.pending, func() { s.updateRoots(entity) })
}

// removeEntityInternal undoes the linking addEntityInternal performed for
// h, promoting h's children to h's former parent (or to root) and
// re-linking h's former neighbours directly to each other.
func (s *Scene) removeEntityInternal(h Hierarchy) {
	parent, prevSibling, nextSibling, firstChild := h.Parent, h.PrevSibling, h.NextSibling, h.FirstChild

	if parent != world.NullEntity {
		if prevSibling == world.NullEntity {
			world.MutableGet[Hierarchy](s.w, parent).FirstChild = nextSibling
		}
		s.pending = append(s.pending, func() { s.updateChildrenMap(parent) })
	}

	first := firstChild
	last := world.NullEntity
	isFirst := true
	s.forEachChild(h, func(child world.Entity) {
		childHier := world.MutableGet[Hierarchy](s.w, child)
		if isFirst && parent != world.NullEntity {
			if prevSibling == world.NullEntity {
				world.MutableGet[Hierarchy](s.w, parent).FirstChild = child
			}
			isFirst = false
		}
		childHier.Parent = parent
		s.pending = append(s.pending, func() { s.updateRoots(child) })
		last = child
	})

	if prevSibling != world.NullEntity {
		prevHier := world.MutableGet[Hierarchy](s.w, prevSibling)
		if first != world.NullEntity {
			world.MutableGet[Hierarchy](s.w, first).PrevSibling = prevSibling
			prevHier.NextSibling = first
		} else {
			prevHier.NextSibling = nextSibling
		}
	}

	if nextSibling != world.NullEntity {
		nextHier := world.MutableGet[Hierarchy](s.w, nextSibling)
		if last != world.NullEntity {
			world.MutableGet[Hierarchy](s.w, last).NextSibling = nextSibling
			nextHier.PrevSibling = last
		} else {
			nextHier.PrevSibling = prevSibling
		}
	}
}

func (s *Scene) updateChildrenMap(entity world.Entity) {
	if entity == world.NullEntity {
		s.log.Error("UpdateChildrenMap: NullEntity does not have a children map")
		return
	}
	if !world.Has[Hierarchy](s.w, entity) {
		s.log.Error("UpdateChildrenMap: entity does not have a Hierarchy component")
		return
	}

	hier := world.Get[Hierarchy](s.w, entity)
	var newChildren []world.Entity
	cur := hier.FirstChild
	for cur != world.NullEntity {
		newChildren = append(newChildren, cur)
		if world.Has[Hierarchy](s.w, cur) {
			cur = world.Get[Hierarchy](s.w, cur).NextSibling
		} else {
			cur = world.NullEntity
		}
	}

	if len(newChildren) == 0 {
		delete(s.children, entity)
		return
	}
	s.children[entity] = newChildren
}

func (s *Scene) updateRoots(entity world.Entity) {
	if entity == world.NullEntity {
		s.log.Error("UpdateRoots: entity is null")
		return
	}
	if !world.Has[Hierarchy](s.w, entity) {
		s.log.Error("UpdateRoots: entity does not have a Hierarchy component")
		return
	}

	if world.Get[Hierarchy](s.w, entity).Parent != world.NullEntity {
		delete(s.roots, entity)
	} else {
		s.roots[entity] = struct{}{}
	}
}

func (s *Scene) updateEntityTree() {
	roots := s.GetRootEntities()

	s.dfsTree = make([]TreeNode, 0, len(s.entities))
	for _, root := range roots {
		stack := []TreeNode{{Entity: root, Depth: 0}}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			s.dfsTree = append(s.dfsTree, cur)

			children := s.GetChildren(cur.Entity)
			depth := cur.Depth + 1
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, TreeNode{Entity: children[i], Depth: depth})
			}
		}
	}

	if len(s.dfsTree) != len(s.entities) {
		s.log.Error("UpdateEntityTree: an error has occurred in the entity hierarchy")
	}
}

func (s *Scene) drainPending() {
	for len(s.pending) > 0 {
		fn := s.pending[0]
		s.pending = s.pending[1:]
		fn()
	}
}

// OnComponentConstruct implements world.ComponentObserver.
func (s *Scene) OnComponentConstruct(w *world.World, entity world.Entity) {
	hier := world.Get[Hierarchy](w, entity)
	if !s.valid(hier) {
		s.log.Error("OnComponentConstruct: Hierarchy is invalid")
		return
	}

	s.addEntityInternal(entity)
	s.entities[entity] = struct{}{}
	s.cache[entity] = hier

	s.drainPending()
	s.updateEntityTree()
}

// OnComponentUpdate implements world.ComponentObserver.
func (s *Scene) OnComponentUpdate(w *world.World, entity world.Entity) {
	hier := world.Get[Hierarchy](w, entity)
	if !s.valid(hier) {
		s.log.Error("OnComponentUpdate: Hierarchy is invalid")
		return
	}

	cached, ok := s.cache[entity]
	if !ok {
		s.OnComponentConstruct(w, entity)
		return
	}

	s.removeEntityInternal(cached)
	s.drainPending()

	s.OnComponentConstruct(w, entity)
}

// OnComponentDestroy implements world.ComponentObserver.
func (s *Scene) OnComponentDestroy(w *world.World, entity world.Entity) {
	if _, ok := s.cache[entity]; !ok {
		return
	}

	hier := world.Get[Hierarchy](w, entity)
	s.removeEntityInternal(hier)
	s.drainPending()

	delete(s.cache, entity)
	delete(s.roots, entity)
	delete(s.entities, entity)
	delete(s.children, entity)
	s.updateEntityTree()
}
