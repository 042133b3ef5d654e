// Package tick implements the engine's per-frame ordered broadcast (C6):
// a single bus whose handlers implement OnTick(world, dt) and are visited in
// ascending Order(), so every subscribed system acts on a shared world once
// per frame in a stable, predictable sequence.
//
// Order is a plain ordering key, not a priority queue: handlers are inserted
// once (usually at subsystem construction) and Dispatcher.Tick re-visits
// the same ordered list every frame rather than re-prioritising per frame.
package tick
