// Package hashstring provides HashString, a string-keyed identifier with a
// cached hash for use as a comparable, orderable map key across the engine
// core (EventBus ids, reflection stable ids, component type keys).
//
// Equality and ordering are hash-based rather than lexical: two HashStrings
// are equal when their hashes match, and Less orders by hash value. This
// mirrors the source engine's "name"_hs literal, which bakes the hash in at
// compile time; Go has no compile-time string hashing, so New computes it
// once at construction and the value is cheap to copy and compare after
// that.
package hashstring
