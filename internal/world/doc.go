// Package world implements the entity store: opaque entity handles backed
// by generation-tagged slots, typed dense component storage, and
// construct/update/destroy notifications for component types that opt in
// to observation.
//
// The source engine (original_source/.../ECS/WorldContext.h) wraps EnTT's
// entt::registry directly. Go has no template-based sparse-set library in
// the example pack to lean on, so World reimplements EnTT's dense/sparse
// split itself: Store[T] keeps a contiguous value slice plus a sparse
// index-to-dense-slot map, matching entt's own storage layout, and World
// keeps one Store[T] per component type behind a reflect.Type-keyed map in
// place of entt::registry's internal type-erased pool table. Component
// operations are package-level generic functions (Add, Get, Remove, ...)
// because Go methods cannot introduce new type parameters beyond the
// receiver's.
package world
