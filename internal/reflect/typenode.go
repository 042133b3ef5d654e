package reflect

import (
	"reflect"

	"github.com/forgecore/engine/internal/hashstring"
)

// TypeID is the stable identifier a type is registered and resolved under,
// standing in for the source's entt::id_type ("name"_hs literal).
type TypeID = hashstring.HashString

// FieldAccessor is one registered data member: a name, its static type, and
// get/set closures derived from a getter/setter pair supplied to Data,
// standing in for a pointer-to-member.
type FieldAccessor struct {
	Name   string
	ID     TypeID
	Type   reflect.Type
	Custom any

	get func(instance any) MetaAny
	set func(instance any, value MetaAny) error
}

// Get returns field f's current value on instance, which must be a pointer
// to the type the field was registered against.
func (f *FieldAccessor) Get(instance any) MetaAny { return f.get(instance) }

// Set assigns value into field f on instance. It returns ErrTypeMismatch if
// value cannot be widened to the field's static type.
func (f *FieldAccessor) Set(instance any, value MetaAny) error { return f.set(instance, value) }

// FuncAccessor is one registered invokable member or free function,
// standing in for entt::meta_func.
type FuncAccessor struct {
	Name string
	ID   TypeID

	fn     reflect.Value
	fnType reflect.Type
}

// NumArgs returns the number of parameters fn expects. For a member-style
// function this count includes the leading instance parameter that Invoke
// fills from its instance argument.
func (f *FuncAccessor) NumArgs() int { return f.fnType.NumIn() }

// Invoke calls the registered function, standing in for the source's
// type.func(id).invoke(instance, args...). instance is consumed as the
// leading argument only when the underlying fn's arity needs it (a
// member-style reflection target); free functions registered via
// ComponentOperation ignore it entirely, the same way invoking a static
// member through entt::meta_func does.
func (f *FuncAccessor) Invoke(instance MetaAny, args ...MetaAny) ([]MetaAny, error) {
	all := args
	if f.fnType.NumIn() == len(args)+1 {
		all = append([]MetaAny{instance}, args...)
	}
	if len(all) != f.fnType.NumIn() {
		return nil, ErrArgCount
	}

	in := make([]reflect.Value, len(all))
	for i, a := range all {
		want := f.fnType.In(i)
		rv, ok := coerce(a, want)
		if !ok {
			return nil, ErrTypeMismatch
		}
		in[i] = rv
	}

	out := f.fn.Call(in)
	results := make([]MetaAny, len(out))
	for i, v := range out {
		results[i] = NewAny(v.Interface())
	}
	return results, nil
}

func coerce(a MetaAny, want reflect.Type) (reflect.Value, bool) {
	raw := a.Raw()
	if a.IsRef() {
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			raw = rv.Elem().Interface()
		}
	}
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() {
		if want.Kind() == reflect.Interface || want.Kind() == reflect.Pointer {
			return reflect.Zero(want), true
		}
		return reflect.Value{}, false
	}
	if rv.Type() == want {
		return rv, true
	}
	if rv.Type().AssignableTo(want) {
		return rv, true
	}
	if isWideningConvertible(rv.Type(), want) {
		return rv.Convert(want), true
	}
	return reflect.Value{}, false
}

// TypeNode is everything reflected about one Go type: its fields, its
// invokable functions, its declared bases, and a flag-bundle of traits,
// standing in for one entt::meta_type entry in the context.
type TypeNode struct {
	Name   string
	ID     TypeID
	GoType reflect.Type

	fields     []*FieldAccessor
	fieldIndex map[string]int
	funcs      map[string]*FuncAccessor
	bases      []reflect.Type
	traits     map[reflect.Type]any
}

func newTypeNode(name string, id TypeID, goType reflect.Type) *TypeNode {
	return &TypeNode{
		Name:       name,
		ID:         id,
		GoType:     goType,
		fieldIndex: make(map[string]int),
		funcs:      make(map[string]*FuncAccessor),
		traits:     make(map[reflect.Type]any),
	}
}

// Data returns the field registered under name, if any.
func (n *TypeNode) Data(name string) (*FieldAccessor, bool) {
	idx, ok := n.fieldIndex[name]
	if !ok {
		return nil, false
	}
	return n.fields[idx], true
}

// Fields returns every registered field, in registration order.
func (n *TypeNode) Fields() []*FieldAccessor {
	out := make([]*FieldAccessor, len(n.fields))
	copy(out, n.fields)
	return out
}

// Func returns the invokable function registered under name, if any.
func (n *TypeNode) Func(name string) (*FuncAccessor, bool) {
	f, ok := n.funcs[name]
	return f, ok
}

// Bases returns every type declared as a base via Base.
func (n *TypeNode) Bases() []reflect.Type {
	out := make([]reflect.Type, len(n.bases))
	copy(out, n.bases)
	return out
}

// Trait returns the trait value of type T previously attached with Traits,
// if any.
func Trait[T any](n *TypeNode) (T, bool) {
	var zero T
	key := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := n.traits[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
