// Package discover enumerates the exported type names of a Go source tree,
// filtered by include/exclude glob patterns.
package discover

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every file.
const DefaultInclude = "**"

// Resolve walks root and returns the qualified names (import path + "." +
// type name) of exported, non-generic, non-interface type declarations in the
// .go files whose root-relative path matches an include pattern and no
// exclude pattern. Files are visited in lexical order and declarations keep
// source order. Any I/O or parse failure aborts enumeration.
func Resolve(root string, includes, excludes []string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	mod, err := FindModule(abs)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	inc := Patterns(includes, DefaultInclude)
	exc := Patterns(excludes, "")
	for _, p := range append(append([]string(nil), inc...), exc...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("discover: bad pattern %q", p)
		}
	}

	var names []string
	seen := make(map[string]bool)
	fset := token.NewFileSet()

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != abs && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !Match(inc, rel) || Match(exc, rel) {
			return nil
		}

		f, err := parser.ParseFile(fset, p, nil, parser.SkipObjectResolution)
		if err != nil {
			return err
		}
		relDir := path.Dir(rel)
		if relDir == "." {
			relDir = ""
		}
		pkg := mod.ImportPath(filepath.Dir(p), relDir)
		for _, n := range exportedTypes(f) {
			q := n
			if pkg != "" {
				q = pkg + "." + n
			}
			if !seen[q] {
				seen[q] = true
				names = append(names, q)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return names, nil
}

// Patterns normalizes pattern list entries: each entry may hold several
// comma-separated patterns; a leading "/" is dropped and a trailing "/"
// matches everything below. An empty result falls back to def (if non-empty).
func Patterns(entries []string, def string) []string {
	var out []string
	for _, e := range entries {
		for _, p := range strings.Split(e, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			p = strings.TrimPrefix(filepath.ToSlash(p), "/")
			if strings.HasSuffix(p, "/") {
				p += "**"
			}
			if p == "" {
				p = DefaultInclude
			}
			out = append(out, p)
		}
	}
	if len(out) == 0 && def != "" {
		out = []string{def}
	}
	return out
}

// Match reports whether rel matches any of patterns. Patterns must have been
// validated.
func Match(patterns []string, rel string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}
	return false
}

func exportedTypes(f *ast.File) []string {
	var out []string
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name == nil || !ts.Name.IsExported() {
				continue
			}
			if ts.Assign.IsValid() || ts.TypeParams != nil {
				continue
			}
			if _, ok := ts.Type.(*ast.InterfaceType); ok {
				continue
			}
			out = append(out, ts.Name.Name)
		}
	}
	return out
}

// skipDir mirrors the go tool: testdata, vendor, and dot/underscore
// directories are never part of a package tree.
func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
