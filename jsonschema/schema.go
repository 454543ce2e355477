package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Draft04 is the meta-schema URI written on every root document.
const Draft04 = "http://json-schema.org/draft-04/schema#"

// Schema is the draft-04 style node tree produced by the builder.
//
// The struct field order is the rendered key order. Properties keep the order
// in which they were added (member declaration order).
type Schema struct {
	// Root only
	Schema string `json:"$schema,omitempty"`

	// Reference node: only Ref is set
	Ref string `json:"$ref,omitempty"`

	// Core
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// Object
	Properties           *orderedmap.OrderedMap[string, *Schema] `json:"properties,omitempty"`
	Required             []string                                `json:"required,omitempty"`
	AdditionalProperties *Schema                                 `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Ref returns a reference node pointing at id.
func Ref(id string) *Schema { return &Schema{Ref: id} }

// IsRef reports whether s is a reference node.
func (s *Schema) IsRef() bool { return s != nil && s.Ref != "" }

// SetProperty appends (or replaces) the property name.
func (s *Schema) SetProperty(name string, p *Schema) {
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *Schema]()
	}
	s.Properties.Set(name, p)
}

// Property returns the property name, if present.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// PropertyNames lists property names in order.
func (s *Schema) PropertyNames() []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
