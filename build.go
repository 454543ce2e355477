package schemagen

import (
	"errors"
	"reflect"

	"github.com/reoring/schemagen/internal/introspect"
	"github.com/reoring/schemagen/internal/ir"
	"github.com/reoring/schemagen/internal/resolve"
	"github.com/reoring/schemagen/jsonschema"
)

// Build derives the schema tree for t. Every call starts from a fresh
// descriptor arena and SeenSet, so repeated builds of the same type render
// identically. The root carries $schema and an id equal to t's simple name.
func Build(t reflect.Type, opts ...Option) (*jsonschema.Schema, error) {
	return newOptions(opts).build(t)
}

// BuildText is Build followed by jsonschema.Render.
func BuildText(t reflect.Type, opts ...Option) ([]byte, error) {
	s, err := Build(t, opts...)
	if err != nil {
		return nil, err
	}
	return jsonschema.Render(s)
}

func (o *options) build(t reflect.Type) (*jsonschema.Schema, error) {
	if t == nil {
		return nil, errors.New("schemagen: nil type")
	}
	arena := ir.NewArena()
	h, err := introspect.New(arena, o.introspectOptions()).Describe(t)
	if err != nil {
		return nil, err
	}
	a := &assembler{
		arena:     arena,
		seen:      resolve.NewSeenSet(),
		expanding: make(map[ir.Handle]bool),
		recursive: make(map[ir.Handle]bool),
	}
	root := a.node(h)
	root.Schema = jsonschema.Draft04
	root.ID = SimpleName(t)
	return root, nil
}

// assembler walks descriptors into schema nodes, asking the resolver at every
// composite boundary.
type assembler struct {
	arena *ir.Arena
	seen  *resolve.SeenSet
	// expanding/recursive catch named containers that reach themselves
	// without passing through a struct (type Tree map[string]Tree).
	expanding map[ir.Handle]bool
	recursive map[ir.Handle]bool
}

func (a *assembler) node(h ir.Handle) *jsonschema.Schema {
	d := a.arena.Get(h)
	switch d.Kind {
	case ir.NodeObject:
		dec := resolve.Resolve(a.arena, h, a.seen)
		if !dec.Inline {
			return jsonschema.Ref(dec.ID)
		}
		s := &jsonschema.Schema{ID: dec.ID, Type: "object", Description: d.Description}
		for _, m := range d.Members {
			p := a.node(m.Type)
			if m.Description != "" && !p.IsRef() {
				p.Description = m.Description
			}
			s.SetProperty(m.Name, p)
			if m.Required {
				s.Required = append(s.Required, m.Name)
			}
		}
		return s

	case ir.NodeArray, ir.NodeMap, ir.NodeOneOf:
		if a.expanding[h] {
			a.recursive[h] = true
			return jsonschema.Ref(d.SimpleName)
		}
		a.expanding[h] = true
		s := &jsonschema.Schema{Description: d.Description}
		switch d.Kind {
		case ir.NodeArray:
			s.Type = "array"
			s.Items = a.node(d.Elem)
		case ir.NodeMap:
			s.Type = "object"
			s.AdditionalProperties = a.node(d.Elem)
		default:
			for _, v := range d.Variants {
				s.OneOf = append(s.OneOf, a.node(v))
			}
		}
		delete(a.expanding, h)
		if a.recursive[h] {
			s.ID = d.SimpleName
		}
		return s

	case ir.NodeEnum:
		return &jsonschema.Schema{Type: d.Primitive, Description: d.Description, Enum: d.Values}

	case ir.NodePrimitive:
		return &jsonschema.Schema{Type: d.Primitive, Format: d.Format, Description: d.Description}

	default:
		return &jsonschema.Schema{Description: d.Description}
	}
}
