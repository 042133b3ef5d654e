// Package scene maintains the authoritative parent/child/sibling graph
// over a world.World's entities, derived from a single Hierarchy component
// by reacting to its construct/update/destroy notifications.
//
// This is a direct Go rendering of original_source's SceneManager: the
// Hierarchy component only stores raw handles (parent/firstChild/
// prevSibling/nextSibling); every derived structure -- the root set, the
// per-entity children list, and the depth-annotated DFS order -- is a
// cache rebuilt by Scene as it observes mutations through
// internal/world's ComponentBus. Invalid hierarchies are rejected and
// logged rather than auto-repaired; see Scene.valid and DESIGN.md's Open
// Question decisions for the exact boundary cases.
package scene
