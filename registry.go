package schemagen

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/reoring/schemagen/internal/introspect"
)

// TypeLoader turns a fully-qualified type name into a loadable type.
// Implementations return an error wrapping ErrTypeNotFound for unknown names.
type TypeLoader interface {
	LoadType(name string) (reflect.Type, error)
}

// Hints is implemented by loaders that also carry enum literal tables and
// interface variant tables. The generator consults it when present.
type Hints interface {
	Enums() map[reflect.Type][]any
	Variants() map[reflect.Type][]reflect.Type
}

// Registry is a TypeLoader backed by static registration: the host program
// imports its model packages and registers the types it wants schemas for.
type Registry struct {
	types    map[string]reflect.Type
	enums    map[reflect.Type][]any
	variants map[reflect.Type][]reflect.Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:    make(map[string]reflect.Type),
		enums:    make(map[reflect.Type][]any),
		variants: make(map[reflect.Type][]reflect.Type),
	}
}

// Register adds named types under their qualified names. Each value may be a
// zero value, a pointer to one, or a reflect.Type.
func (r *Registry) Register(values ...any) error {
	for _, v := range values {
		t := typeOf(v)
		name := QualifiedName(t)
		if name == "" {
			return fmt.Errorf("schemagen: cannot register unnamed type %v", t)
		}
		r.types[name] = t
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(values ...any) *Registry {
	if err := r.Register(values...); err != nil {
		panic(err)
	}
	return r
}

// RegisterEnum declares the literal set of v's type, for types that do not
// implement EnumValues themselves.
func (r *Registry) RegisterEnum(v any, literals ...any) *Registry {
	r.enums[typeOf(v)] = append([]any(nil), literals...)
	return r
}

// RegisterVariants declares the concrete types an interface field may hold.
// Pass the interface as a nil pointer: RegisterVariants((*Shape)(nil), Circle{}, Square{}).
func (r *Registry) RegisterVariants(iface any, impls ...any) *Registry {
	it := typeOf(iface)
	for _, impl := range impls {
		r.variants[it] = append(r.variants[it], typeOf(impl))
	}
	return r
}

// LoadType implements TypeLoader.
func (r *Registry) LoadType(name string) (reflect.Type, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.types))
	for n := range r.types {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Enums implements Hints.
func (r *Registry) Enums() map[reflect.Type][]any { return r.enums }

// Variants implements Hints.
func (r *Registry) Variants() map[reflect.Type][]reflect.Type { return r.variants }

// QualifiedName returns import path + "." + type name, or "" for unnamed types.
func QualifiedName(t reflect.Type) string { return introspect.QualifiedName(t) }

// SimpleName returns the unqualified type name used for ids, $ref values and
// file names.
func SimpleName(t reflect.Type) string { return introspect.SimpleName(t) }

func typeOf(v any) reflect.Type {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	return introspect.Indirect(t)
}
