package reflect

import "sync"

// RegisterFunc is a deferred reflection registrar, standing in for the
// source's TypeRegistry::RegisterFunc (eastl::function<void(ReflectContext&)>).
type RegisterFunc func(*ReflectContext)

// TypeRegistry collects RegisterFunc values at package-init time and runs
// them all, in insertion order, against a shared context when RegisterAll
// is called -- matching the source's static TypeRegistry, but as an
// explicit value instead of a process-wide static (see the package-level
// Default for the equivalent of the source's global instance).
type TypeRegistry struct {
	mu    sync.Mutex
	funcs []RegisterFunc
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{}
}

// Register appends fn to the deferred registration list.
func (r *TypeRegistry) Register(fn RegisterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs = append(r.funcs, fn)
}

// RegisterAll invokes every deferred func, in insertion order, against ctx.
func (r *TypeRegistry) RegisterAll(ctx *ReflectContext) {
	r.mu.Lock()
	funcs := make([]RegisterFunc, len(r.funcs))
	copy(funcs, r.funcs)
	r.mu.Unlock()

	for _, fn := range funcs {
		fn(ctx)
	}
}

// Len reports how many registrars are currently deferred.
func (r *TypeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.funcs)
}

// Default is the process-wide registry collaborators register their types'
// Reflect funcs against, mirroring the source's static TypeRegistry.
var Default = NewTypeRegistry()
