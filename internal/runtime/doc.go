// Package runtime wires the engine core's six components (C1-C6: reflection,
// service registry, event bus, entity store, scene hierarchy, tick
// dispatcher) into one process-wide Runtime struct, constructed once at
// program start instead of as package-level globals, so bootstrap ordering
// stays explicit and testable rather than relying on init() order.
//
// Bootstrap order: reflection and the service registry first, since they
// depend on nothing else; then the world, which owns its event buses; then
// the scene observer that reacts to it, published as the IScene service as
// soon as it exists; then the tick dispatcher last, since tick handlers are
// typically the subsystems that read the fully wired Runtime.
package runtime
