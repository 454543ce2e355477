package ir

// Package ir defines the descriptor arena shared by the introspector and the
// schema builder. This package is internal and not part of the public API.
//
// Descriptors point at each other through Handles rather than pointers so a
// cyclic type graph (A -> B -> A) is just two entries referring to each other.

// NodeKind identifies a descriptor shape.
type NodeKind int

const (
	NodePrimitive NodeKind = iota
	NodeArray
	NodeObject
	NodeMap
	NodeEnum
	NodeOneOf
	NodeAny
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	case NodeMap:
		return "map"
	case NodeEnum:
		return "enum"
	case NodeOneOf:
		return "oneOf"
	case NodeAny:
		return "any"
	default:
		return "unknown"
	}
}

// Handle addresses a Descriptor inside an Arena.
type Handle int

// NoHandle marks an unset element/member target.
const NoHandle Handle = -1

// Primitive JSON type names.
const (
	String  = "string"
	Integer = "integer"
	Number  = "number"
	Boolean = "boolean"
)

// Descriptor describes one structural type.
type Descriptor struct {
	Kind NodeKind
	// Name is the canonical name (import path + "." + type name); empty for
	// unnamed types.
	Name string
	// SimpleName is the unqualified name; empty for unnamed types.
	SimpleName  string
	Description string

	Primitive string // primitives and enums: JSON type name ("" for mixed enums)
	Format    string // primitives: optional format (e.g. "date-time")

	Members  []Member // objects, in serialization order
	Elem     Handle   // arrays and maps
	Values   []any    // enums, in declaration order
	Variants []Handle // oneOf
}

// Member maps a serialized property name to its target descriptor.
type Member struct {
	Name        string // wire name (post-rename)
	Field       string // Go field name, for diagnostics
	Required    bool
	Description string
	Type        Handle
}

// Arena owns every Descriptor produced during one schema build.
type Arena struct {
	nodes []Descriptor
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Add appends d and returns its handle.
func (a *Arena) Add(d Descriptor) Handle {
	a.nodes = append(a.nodes, d)
	return Handle(len(a.nodes) - 1)
}

// Get returns the descriptor for h. The pointer stays valid until the next Add.
func (a *Arena) Get(h Handle) *Descriptor {
	if h < 0 || int(h) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[h]
}

// Set replaces the descriptor stored at h.
func (a *Arena) Set(h Handle, d Descriptor) {
	a.nodes[h] = d
}

// Len reports the number of descriptors in the arena.
func (a *Arena) Len() int { return len(a.nodes) }
