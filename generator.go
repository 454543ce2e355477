package schemagen

import (
	"fmt"
	"log/slog"

	"github.com/reoring/schemagen/jsonschema"
	"github.com/reoring/schemagen/sink"
)

// Outcome is the result of one class: a written file or a classified error.
type Outcome struct {
	Class string
	File  string
	Err   *Error
}

// OK reports whether the class was written.
func (o Outcome) OK() bool { return o.Err == nil }

// Report folds the outcomes of one batch.
type Report struct {
	Outcomes []Outcome
}

// Count returns the number of schemas written.
func (r *Report) Count() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failures returns the per-class errors in batch order.
func (r *Report) Failures() Errors {
	if r == nil {
		return nil
	}
	var es Errors
	for _, o := range r.Outcomes {
		if !o.OK() {
			es = append(es, o.Err)
		}
	}
	return es
}

// Err returns the failures as an error, or nil when every class succeeded.
func (r *Report) Err() error {
	if es := r.Failures(); len(es) > 0 {
		return es
	}
	return nil
}

// Generator runs the per-class pipeline load → build → render → persist.
type Generator struct {
	loader TypeLoader
	sink   sink.Sink
	opts   *options
}

// New returns a Generator. When loader implements Hints and no WithHints
// option is given, the loader's tables are used.
func New(loader TypeLoader, s sink.Sink, opts ...Option) *Generator {
	o := newOptions(opts)
	if h, ok := loader.(Hints); ok && o.hints == nil {
		o.hints = h
	}
	return &Generator{loader: loader, sink: s, opts: o}
}

// Generate processes names in order, each exactly once. A failing class is
// logged and recorded; it never stops the batch.
func (g *Generator) Generate(names []string) *Report {
	rep := &Report{Outcomes: make([]Outcome, 0, len(names))}
	for _, name := range names {
		out := g.generateOne(name)
		if out.Err != nil {
			g.opts.logger.Error("schema generation failed",
				slog.String("class", name),
				slog.String("kind", string(out.Err.Kind)),
				slog.Any("err", out.Err.Err))
		} else {
			g.opts.logger.Info("generated", slog.String("class", name), slog.String("file", out.File))
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}
	return rep
}

func (g *Generator) generateOne(name string) (out Outcome) {
	fail := func(k Kind, err error) Outcome {
		return Outcome{Class: name, Err: &Error{Kind: k, Class: name, Err: err}}
	}
	// a panicking EnumValues or loader must not take the batch down
	defer func() {
		if r := recover(); r != nil {
			out = fail(KindMapping, fmt.Errorf("panic: %v", r))
		}
	}()

	t, err := g.loader.LoadType(name)
	if err != nil {
		return fail(KindTypeLoad, err)
	}
	s, err := g.opts.build(t)
	if err != nil {
		return fail(KindMapping, err)
	}
	data, err := jsonschema.Render(s)
	if err != nil {
		return fail(KindMapping, err)
	}
	file, err := g.sink.Write(SimpleName(t), data)
	if err != nil {
		return fail(KindPersistence, err)
	}
	return Outcome{Class: name, File: file}
}
