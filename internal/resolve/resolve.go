// Package resolve decides, per occurrence of a composite type, whether the
// schema builder inlines its definition or emits a reference to it.
package resolve

import "github.com/reoring/schemagen/internal/ir"

// SeenSet records the composite descriptors already expanded in one document
// together with the identifier minted for each. It is created per root type
// and never shared between documents.
type SeenSet struct {
	ids map[ir.Handle]string
}

// NewSeenSet returns an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[ir.Handle]string)}
}

// Has reports whether h was already expanded.
func (s *SeenSet) Has(h ir.Handle) bool {
	_, ok := s.ids[h]
	return ok
}

// ID returns the identifier minted for h.
func (s *SeenSet) ID(h ir.Handle) (string, bool) {
	id, ok := s.ids[h]
	return id, ok
}

// Len returns the number of expanded composites.
func (s *SeenSet) Len() int { return len(s.ids) }

// Decision is the outcome of Resolve.
type Decision struct {
	// Inline is true when the caller must expand the full definition.
	Inline bool
	// ID is the identifier of the composite: attached to the inline
	// definition, or the target of the reference.
	ID string
}

// Resolve returns Inline for the first occurrence of a composite in seen and
// a reference for every later one. Non-composites are always inlined and
// never recorded.
//
// The identifier is the bare simple name. Two composites from different
// packages sharing a simple name therefore share an identifier inside one
// document; this is not detected.
func Resolve(arena *ir.Arena, h ir.Handle, seen *SeenSet) Decision {
	d := arena.Get(h)
	if !IsComposite(d) {
		return Decision{Inline: true}
	}
	if id, ok := seen.ids[h]; ok {
		return Decision{ID: id}
	}
	seen.ids[h] = d.SimpleName
	return Decision{Inline: true, ID: d.SimpleName}
}

// IsComposite reports whether d is tracked by the SeenSet: named objects only.
func IsComposite(d *ir.Descriptor) bool {
	return d != nil && d.Kind == ir.NodeObject && d.SimpleName != ""
}
