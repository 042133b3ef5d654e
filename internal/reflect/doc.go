// Package reflect is a runtime type registry: a reflection context that
// types register fields, invokable functions, base types and UI metadata
// into, so editor-style tooling can inspect and mutate arbitrary component
// values without per-type code.
//
// It plays the role of the source's entt::meta wrapper (RTTI.h,
// ReflectContext.h, TypeRegistry.h): Reflect[T](ctx) returns a fluent
// builder standing in for Reflector<T>, MetaAny is the type-erased value
// carrier standing in for entt::meta_any, and TypeRegistry replaces the
// deferred eastl::vector<RegisterFunc> of Reflect(ctx) functions invoked by
// RegisterAll.
//
// Go has no pointer-to-member literal, so where the source writes
// data<&Position::x>("x") this package takes a getter/setter closure pair
// instead -- the same field-accessor shape, expressed the only way Go's
// type system allows it.
package reflect
