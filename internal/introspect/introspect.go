// Package introspect turns Go types into ir descriptors, honoring struct tags,
// the metadata table and registered enum/variant hints.
package introspect

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/reoring/schemagen/internal/ir"
)

// ErrUnsupportedType reports a Go type with no JSON Schema representation.
var ErrUnsupportedType = errors.New("unsupported type")

// Enumerated is implemented by types that declare a fixed literal set.
type Enumerated interface {
	EnumValues() []any
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	numberType        = reflect.TypeOf(json.Number(""))
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	enumeratedType    = reflect.TypeOf((*Enumerated)(nil)).Elem()
)

// Options carries the hints consulted while describing types.
type Options struct {
	Enums    map[reflect.Type][]any
	Variants map[reflect.Type][]reflect.Type
	Metadata *Metadata
	// Comments maps "pkg.Type" and "pkg.Type.Field" to Go doc comments.
	Comments map[string]string
}

// Introspector describes types into a single arena. Each type is described at
// most once; a type reached again while its own members are still being
// described gets the handle reserved for it, which is what keeps cyclic
// graphs finite.
type Introspector struct {
	arena *ir.Arena
	opts  Options
	memo  map[reflect.Type]ir.Handle
}

// New returns an Introspector writing into arena.
func New(arena *ir.Arena, opts Options) *Introspector {
	return &Introspector{arena: arena, opts: opts, memo: make(map[reflect.Type]ir.Handle)}
}

// Describe returns the handle describing t. Pointers are described by their
// element type.
func (in *Introspector) Describe(t reflect.Type) (ir.Handle, error) {
	if t == nil {
		return in.arena.Add(ir.Descriptor{Kind: ir.NodeAny}), nil
	}
	t = Indirect(t)
	if h, ok := in.memo[t]; ok {
		return h, nil
	}

	if vals, ok := in.enumValues(t); ok {
		d := in.named(t, ir.NodeEnum)
		d.Values = vals
		d.Primitive = enumPrimitive(vals)
		return in.add(t, d), nil
	}

	switch {
	case t == timeType:
		return in.primitive(t, ir.String, "date-time"), nil
	case t == numberType:
		return in.primitive(t, ir.Number, ""), nil
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 && !implementsText(t.Elem()):
		return in.primitive(t, ir.String, ""), nil
	case implementsText(t):
		return in.primitive(t, ir.String, ""), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return in.primitive(t, ir.Boolean, ""), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return in.primitive(t, ir.Integer, ""), nil
	case reflect.Float32, reflect.Float64:
		return in.primitive(t, ir.Number, ""), nil
	case reflect.String:
		return in.primitive(t, ir.String, ""), nil
	case reflect.Interface:
		return in.describeInterface(t)
	case reflect.Slice, reflect.Array:
		return in.describeContainer(t, ir.NodeArray)
	case reflect.Map:
		if !validMapKey(t.Key()) {
			return ir.NoHandle, fmt.Errorf("%w: map key %s in %s", ErrUnsupportedType, t.Key(), t)
		}
		return in.describeContainer(t, ir.NodeMap)
	case reflect.Struct:
		return in.describeStruct(t)
	default:
		return ir.NoHandle, fmt.Errorf("%w: %s (kind %s)", ErrUnsupportedType, t, t.Kind())
	}
}

func (in *Introspector) describeStruct(t reflect.Type) (ir.Handle, error) {
	h := in.add(t, in.named(t, ir.NodeObject))

	fields := in.visibleFields(t)
	members := make([]ir.Member, 0, len(fields))
	for _, f := range fields {
		mh, err := in.Describe(f.typ)
		if err != nil {
			return ir.NoHandle, fmt.Errorf("field %s.%s: %w", SimpleName(t), f.goName, err)
		}
		desc := f.policy.description
		if desc == "" {
			desc = in.opts.Comments[QualifiedName(f.owner)+"."+f.goName]
		}
		members = append(members, ir.Member{
			Name:        f.policy.name,
			Field:       f.goName,
			Required:    f.policy.required,
			Description: desc,
			Type:        mh,
		})
	}

	d := *in.arena.Get(h)
	d.Members = members
	in.arena.Set(h, d)
	return h, nil
}

func (in *Introspector) describeContainer(t reflect.Type, kind ir.NodeKind) (ir.Handle, error) {
	d := in.named(t, kind)
	d.Elem = ir.NoHandle
	h := in.add(t, d)

	eh, err := in.Describe(t.Elem())
	if err != nil {
		return ir.NoHandle, err
	}
	d = *in.arena.Get(h)
	d.Elem = eh
	in.arena.Set(h, d)
	return h, nil
}

func (in *Introspector) describeInterface(t reflect.Type) (ir.Handle, error) {
	impls := in.opts.Variants[t]
	if len(impls) == 0 {
		return in.add(t, in.named(t, ir.NodeAny)), nil
	}
	h := in.add(t, in.named(t, ir.NodeOneOf))
	variants := make([]ir.Handle, 0, len(impls))
	for _, impl := range impls {
		vh, err := in.Describe(impl)
		if err != nil {
			return ir.NoHandle, fmt.Errorf("variant %s of %s: %w", impl, t, err)
		}
		variants = append(variants, vh)
	}
	d := *in.arena.Get(h)
	d.Variants = variants
	in.arena.Set(h, d)
	return h, nil
}

func (in *Introspector) enumValues(t reflect.Type) ([]any, bool) {
	if vals, ok := in.opts.Enums[t]; ok {
		return vals, true
	}
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	switch {
	case t.Implements(enumeratedType):
		return reflect.Zero(t).Interface().(Enumerated).EnumValues(), true
	case reflect.PointerTo(t).Implements(enumeratedType):
		return reflect.New(t).Interface().(Enumerated).EnumValues(), true
	}
	return nil, false
}

func (in *Introspector) named(t reflect.Type, kind ir.NodeKind) ir.Descriptor {
	d := ir.Descriptor{Kind: kind, Name: QualifiedName(t), SimpleName: SimpleName(t)}
	if tm, ok := in.opts.Metadata.typ(d.Name); ok && tm.Description != "" {
		d.Description = tm.Description
	} else if d.Name != "" {
		d.Description = in.opts.Comments[d.Name]
	}
	return d
}

func (in *Introspector) primitive(t reflect.Type, typ, format string) ir.Handle {
	d := in.named(t, ir.NodePrimitive)
	d.Primitive = typ
	d.Format = format
	return in.add(t, d)
}

func (in *Introspector) add(t reflect.Type, d ir.Descriptor) ir.Handle {
	h := in.arena.Add(d)
	in.memo[t] = h
	return h
}

// Indirect strips pointer layers from t. A pointer type that leads back to
// itself (type P *P) is returned as is, still of kind Pointer.
func Indirect(t reflect.Type) reflect.Type {
	var seen map[reflect.Type]bool
	for t != nil && t.Kind() == reflect.Pointer {
		if seen[t] {
			return t
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true
		t = t.Elem()
	}
	return t
}

func implementsText(t reflect.Type) bool {
	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

func validMapKey(k reflect.Type) bool {
	switch k.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return implementsText(k)
}

// enumPrimitive derives the JSON type shared by all literals, or "" when the
// literals are mixed.
func enumPrimitive(vals []any) string {
	typ := ""
	for _, v := range vals {
		var cur string
		rv := reflect.ValueOf(v)
		switch {
		case !rv.IsValid():
			return ""
		case implementsText(rv.Type()):
			cur = ir.String
		default:
			switch rv.Kind() {
			case reflect.String:
				cur = ir.String
			case reflect.Bool:
				cur = ir.Boolean
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
				reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				cur = ir.Integer
			case reflect.Float32, reflect.Float64:
				cur = ir.Number
			default:
				return ""
			}
		}
		switch {
		case typ == "":
			typ = cur
		case typ == cur:
		case (typ == ir.Integer && cur == ir.Number) || (typ == ir.Number && cur == ir.Integer):
			typ = ir.Number
		default:
			return ""
		}
	}
	return typ
}

// QualifiedName returns import path + "." + type name, or "" for unnamed types.
func QualifiedName(t reflect.Type) string {
	if t == nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// SimpleName returns the unqualified type name with generic type arguments
// removed, so Page[example.com/x.Item] becomes Page.
func SimpleName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
