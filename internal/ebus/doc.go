// Package ebus implements the engine's many-to-many publish/subscribe
// dispatcher: a policy-driven address/handler bus with ordering, mid-dispatch
// mutation safety, queued events and per-dispatch reentrancy tracking.
//
// # Architecture
//
// A Bus[I, K] is parameterised over a handler interface I and an address key
// type K. Its Traits choose, at construction time rather than compile time
// (Go has no template specialisation), the address cardinality
// (AddressSingle / AddressByID / AddressByIDOrdered) and the handler
// cardinality at each address (HandlerSingle / HandlerMultiple /
// HandlerMultipleOrdered). This is the Go-idiomatic rendering of the source
// engine's four EBusTraits specialisations: a runtime switch over two small
// enums instead of four template instantiations, per the design note that a
// "runtime switch is acceptable but must not dominate dispatch cost" -- the
// switch happens once per Connect/Disconnect, never per handler invocation.
//
// # Dispatch
//
// Event and Broadcast walk a holder's handler list using an iterator
// pre-advance pattern (capture current, advance the cursor, then invoke) so
// that a handler disconnecting another handler mid-dispatch cannot corrupt
// the walk: see holder.dispatch. Reentrancy and same-call-chain tracking is
// kept as a linked callstack directly on the Bus (see callstack.go), since
// Go has no stable, portable goroutine-local storage to hang a per-thread
// list off of the way the source's per-thread CallstackEntry does; a
// non-Lockless bus serializes every dispatch through dispatchMu, so exactly
// one call chain mutates that list at a time, and a Lockless bus puts that
// same obligation on its caller.
//
// # Queued events
//
// When Traits.EnableQueue is set, QueueEvent/QueueBroadcast append a closure
// to a FIFO guarded by its own mutex; ExecuteQueued swaps the queue with a
// fresh empty slice under lock, then invokes the captured closures outside
// the lock, exactly mirroring the source's "atomically swap the queue with
// an empty local, release the lock, invoke" algorithm.
package ebus
