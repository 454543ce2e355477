package schemagen

import (
	"log/slog"

	"github.com/reoring/schemagen/internal/introspect"
)

// Option configures Build, New and Run.
type Option func(*options)

type options struct {
	metadata *Metadata
	comments map[string]string
	hints    Hints
	logger   *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithMetadata applies a declarative member table over struct tags.
func WithMetadata(md *Metadata) Option {
	return func(o *options) { o.metadata = md }
}

// WithComments supplies Go doc comments keyed by "pkg.Type" and
// "pkg.Type.Field"; they become descriptions where no tag or table entry
// provides one.
func WithComments(comments map[string]string) Option {
	return func(o *options) { o.comments = comments }
}

// WithHints supplies enum and variant tables. New picks them up from the
// loader automatically when it implements Hints.
func WithHints(h Hints) Option {
	return func(o *options) { o.hints = h }
}

// WithLogger sets the logger used by New and Run. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func (o *options) introspectOptions() introspect.Options {
	in := introspect.Options{Metadata: o.metadata, Comments: o.comments}
	if o.hints != nil {
		in.Enums = o.hints.Enums()
		in.Variants = o.hints.Variants()
	}
	return in
}
