package world

import "reflect"

// View returns every entity currently carrying T, in dense storage order.
// The source's views are lazy entt::view iterators; this package
// materializes a snapshot instead, which is sufficient at the scale this
// engine core targets and keeps the query surface a plain slice rather
// than a stateful iterator type.
func View[T any](w *World) []Entity {
	s := storeFor[T](w)
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// View2 returns every entity carrying both A and B.
func View2[A, B any](w *World) []Entity {
	sa := storeFor[A](w)
	sb := storeFor[B](w)
	out := make([]Entity, 0, min(len(sa.entities), len(sb.entities)))
	for _, e := range sa.entities {
		if sb.has(e) {
			out = append(out, e)
		}
	}
	return out
}

// View3 returns every entity carrying A, B and C.
func View3[A, B, C any](w *World) []Entity {
	sa := storeFor[A](w)
	sb := storeFor[B](w)
	sc := storeFor[C](w)
	out := make([]Entity, 0, len(sa.entities))
	for _, e := range sa.entities {
		if sb.has(e) && sc.has(e) {
			out = append(out, e)
		}
	}
	return out
}

// ViewExclude returns every entity carrying T but none of the excluded
// component types, the Go rendering of entt::exclude_t. Build the
// exclusion list with Exclude[T]().
func ViewExclude[T any](w *World, exclude ...reflect.Type) []Entity {
	s := storeFor[T](w)
	out := make([]Entity, 0, len(s.entities))
	for _, e := range s.entities {
		excluded := false
		for _, typ := range exclude {
			if st, ok := w.stores[typ]; ok && st.has(e) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, e)
		}
	}
	return out
}

// Exclude returns the ComponentID for T, for use in ViewExclude's variadic
// exclusion list.
func Exclude[T any]() reflect.Type {
	return ComponentID[T]()
}
