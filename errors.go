package schemagen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/schemagen/internal/introspect"
)

// Kind classifies a generation failure.
type Kind string

// Failure kinds. Only KindEnumeration aborts a run; every other kind is
// contained to the class that produced it.
const (
	KindEnumeration Kind = "enumeration"
	KindTypeLoad    Kind = "type_load"
	KindMapping     Kind = "mapping"
	KindPersistence Kind = "persistence"
)

var (
	// ErrTypeNotFound is returned by a TypeLoader for names it cannot load.
	ErrTypeNotFound = errors.New("schemagen: type not found")
	// ErrUnsupportedType reports a Go type with no JSON Schema representation.
	ErrUnsupportedType = introspect.ErrUnsupportedType
)

// Error is a classified failure, optionally tied to one class.
type Error struct {
	Kind  Kind
	Class string // fully-qualified type name; empty for run-level failures
	Err   error
}

func (e *Error) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Class, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts an *Error using errors.As.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Errors collects per-class failures and implements error.
type Errors []*Error

// Error summarizes the first few failures.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. type_load example.com/m.Missing
		fmt.Fprintf(b, "%s %s", es[i].Kind, es[i].Class)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}
