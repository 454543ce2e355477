package schemagen

import (
	"fmt"
	"log/slog"

	"github.com/reoring/schemagen/config"
	"github.com/reoring/schemagen/discover"
	"github.com/reoring/schemagen/internal/comments"
	"github.com/reoring/schemagen/sink"
)

// Enumerate lists the qualified type names selected by cfg.
func Enumerate(cfg config.Config) ([]string, error) {
	names, err := discover.Resolve(cfg.SourceDirectory, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, &Error{Kind: KindEnumeration, Err: err}
	}
	return names, nil
}

// Run performs one batch: enumerate the source tree, then generate a schema
// file per name into cfg.OutputDirectory(). Only a failure to enumerate (or
// to load the configured metadata table or comments) is returned; per-class
// failures are in the report.
func Run(cfg config.Config, loader TypeLoader, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	log := o.logger
	log.Debug("configuration",
		slog.String("source", cfg.SourceDirectory),
		slog.String("output", cfg.OutputDirectory()),
		slog.Any("include", cfg.IncludePatterns),
		slog.Any("exclude", cfg.ExcludePatterns))

	names, err := Enumerate(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("enumerated classes", slog.Int("count", len(names)), slog.Any("names", names))

	if cfg.MetadataFile != "" {
		md, err := LoadMetadataFile(cfg.MetadataFile)
		if err != nil {
			return nil, &Error{Kind: KindEnumeration, Err: err}
		}
		opts = append(opts, WithMetadata(md))
	}
	if cfg.Comments {
		cm, err := comments.Load(cfg.SourceDirectory)
		if err != nil {
			return nil, &Error{Kind: KindEnumeration, Err: err}
		}
		opts = append(opts, WithComments(cm))
	}

	rep := New(loader, sink.NewDir(cfg.OutputDirectory()), opts...).Generate(names)
	log.Info(fmt.Sprintf("generated %d JSON schema files", rep.Count()), slog.Int("failed", len(rep.Failures())))
	return rep, nil
}
