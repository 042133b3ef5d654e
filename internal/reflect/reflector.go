package reflect

import (
	"reflect"

	"github.com/forgecore/engine/internal/hashstring"
)

// Reflector is the fluent builder returned by Reflect[T], standing in for
// the source's Reflector<T>. Its methods mutate the shared TypeNode in
// place and return the receiver so calls can be chained.
type Reflector[T any] struct {
	ctx          *ReflectContext
	node         *TypeNode
	lastFieldIdx int
}

// Type (re)declares the type's name and, optionally, overrides its stable
// id (the default is derived from the Go type's package path and name).
func (r *Reflector[T]) Type(name string, id ...TypeID) *Reflector[T] {
	r.ctx.mu.Lock()
	defer r.ctx.mu.Unlock()
	r.node.Name = name
	if len(id) > 0 {
		old := r.node.ID
		delete(r.ctx.types, old)
		r.node.ID = id[0]
		r.ctx.types[r.node.ID] = r.node
		for i, o := range r.ctx.order {
			if o.Equal(old) {
				r.ctx.order[i] = r.node.ID
				break
			}
		}
	}
	return r
}

// Custom attaches value as the UI/editor metadata object for the most
// recently added field. Calling it before any Data call is a no-op.
func (r *Reflector[T]) Custom(value any) *Reflector[T] {
	if r.lastFieldIdx < 0 || r.lastFieldIdx >= len(r.node.fields) {
		return r
	}
	r.node.fields[r.lastFieldIdx].Custom = value
	return r
}

// Traits attaches value, keyed by its own type, as a flag bundle on the
// type (e.g. an Editable marker struct).
func (r *Reflector[T]) Traits(value any) *Reflector[T] {
	r.node.traits[reflect.TypeOf(value)] = value
	return r
}

// Data registers field name on T, using get/set as the pointer-to-member
// substitute -- Go has no pointer-to-member literal to template on, so the
// accessor pair stands in for it.
func Data[T any, F any](r *Reflector[T], name string, get func(*T) F, set func(*T, F)) *Reflector[T] {
	idx, exists := r.node.fieldIndex[name]

	accessor := &FieldAccessor{
		Name: name,
		ID:   hashstring.New(name),
		Type: reflect.TypeOf((*F)(nil)).Elem(),
		get: func(instance any) MetaAny {
			return NewAny(get(instance.(*T)))
		},
		set: func(instance any, value MetaAny) error {
			fv, ok := TryCast[F](value)
			if !ok {
				return ErrTypeMismatch
			}
			set(instance.(*T), fv)
			return nil
		},
	}

	if exists {
		r.node.fields[idx] = accessor
		r.lastFieldIdx = idx
	} else {
		r.node.fields = append(r.node.fields, accessor)
		r.lastFieldIdx = len(r.node.fields) - 1
		r.node.fieldIndex[name] = r.lastFieldIdx
	}
	return r
}

// Func registers an invokable member or free function under name. fn must
// be a Go function value; its signature determines the argument/return
// widening Invoke will perform.
func Func[T any](r *Reflector[T], name string, fn any) *Reflector[T] {
	fv := reflect.ValueOf(fn)
	r.node.funcs[name] = &FuncAccessor{
		Name:   name,
		ID:     hashstring.New(name),
		fn:     fv,
		fnType: fv.Type(),
	}
	return r
}

// Base records that T inherits from B, enabling upcasts during generic
// inspection.
func Base[T any, B any](r *Reflector[T]) *Reflector[T] {
	r.node.bases = append(r.node.bases, reflect.TypeOf((*B)(nil)).Elem())
	return r
}
