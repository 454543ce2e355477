package introspect

// Metadata is the declarative per-type member table. It overrides what struct
// tags say, for types whose source cannot (or should not) carry schema tags.
type Metadata struct {
	// Types is keyed by qualified type name (import path + "." + type name).
	Types map[string]TypeMetadata `yaml:"types" json:"types"`
}

// TypeMetadata carries the overrides for one type.
type TypeMetadata struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Members is keyed by Go field name.
	Members map[string]MemberPolicy `yaml:"members,omitempty" json:"members,omitempty"`
}

// MemberPolicy overrides the serialization policy of a single field.
type MemberPolicy struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Required    *bool  `yaml:"required,omitempty" json:"required,omitempty"`
	Ignore      bool   `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

func (m *Metadata) typ(name string) (TypeMetadata, bool) {
	if m == nil || m.Types == nil {
		return TypeMetadata{}, false
	}
	tm, ok := m.Types[name]
	return tm, ok
}

func (m *Metadata) member(typeName, field string) *MemberPolicy {
	tm, ok := m.typ(typeName)
	if !ok {
		return nil
	}
	p, ok := tm.Members[field]
	if !ok {
		return nil
	}
	return &p
}
