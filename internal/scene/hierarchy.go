package scene

import "github.com/forgecore/engine/internal/world"

// Hierarchy is the single component that encodes scene structure: every
// reference is a lookup key, never an ownership edge (see DESIGN.md on
// ownership cycles). Inserting it directly is supported but callers must
// leave it self-consistent; Scene validates every construct/update and
// rejects anything that isn't, per the source's own documented contract.
type Hierarchy struct {
	Parent      world.Entity
	FirstChild  world.Entity
	PrevSibling world.Entity
	NextSibling world.Entity
}

// TreeNode is one entry of a depth-annotated DFS traversal.
type TreeNode struct {
	Entity world.Entity
	Depth  uint32
}
