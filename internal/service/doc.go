// Package service implements the process-wide service registry: one
// singleton slot per interface type, with RAII-style handler binding.
//
// The source engine expresses this as a class template Service<I> holding a
// static (pointer, assigned_flag, mutex) triple per instantiation -- the C++
// compiler mints one static slot per I. Go has no per-type static storage, so
// a Registry keeps one Slot[I] per interface, keyed by reflect.Type, as
// instance state instead of a package global, and a process-wide default
// registry (Default) reproduces the "one slot per interface, globally
// reachable" behaviour the source relies on. Call Of[I](reg) to fetch (or
// lazily create) the slot for interface I on a given registry; most callers
// use the package-level Register/Unregister/Get helpers bound to Default.
package service
