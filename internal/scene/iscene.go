package scene

import "github.com/forgecore/engine/internal/world"

// IScene is the read/query surface Scene exposes to collaborators, published
// through the service registry as Service[IScene]. An editor scene-view
// panel or a renderer culling pass depends on this interface rather than the
// concrete *Scene, so a test double can stand in for it.
type IScene interface {
	EntityCount() int
	Contain(e world.Entity) bool
	GetHierarchyPath(e world.Entity) []world.Entity
	IsAncestor(entity, ancestor world.Entity) bool
	GetEntityRoot(entity world.Entity) world.Entity
	GetRootEntities(less ...func(a, b world.Entity) bool) []world.Entity
	GetChildren(entity world.Entity) []world.Entity
	GetDepth(entity world.Entity) int
	GetEntityTree() []TreeNode
	SetParent(entity, parent, prevSibling world.Entity) error
	PatchEntityHierarchy(entity world.Entity, fn func(world.Entity))
}

var _ IScene = (*Scene)(nil)
