package reflect

import "github.com/forgecore/engine/internal/world"

// ComponentOperation bulk-registers five functions on T's reflected type --
// HasComponent, GetComponent, AddComponent, RemoveComponent and
// ReplaceComponent -- each forwarding to the matching internal/world entity
// operation. Editors iterate every registered type and invoke these through
// reflection to build generic inspectors with no per-type code, exactly the
// adapter the source describes for ComponentOperation<T>.
func ComponentOperation[T any](r *Reflector[T]) *Reflector[T] {
	Func[T](r, "HasComponent", func(w *world.World, e world.Entity) bool {
		return world.Has[T](w, e)
	})
	Func[T](r, "GetComponent", func(w *world.World, e world.Entity) T {
		return world.Get[T](w, e)
	})
	Func[T](r, "AddComponent", func(w *world.World, e world.Entity, v T) T {
		return world.Add(w, e, v)
	})
	Func[T](r, "RemoveComponent", func(w *world.World, e world.Entity) bool {
		return world.Remove[T](w, e)
	})
	Func[T](r, "ReplaceComponent", func(w *world.World, e world.Entity, v T) error {
		return world.Replace(w, e, v)
	})
	return r
}
