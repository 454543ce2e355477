// Package comments collects Go doc comments of a source tree, keyed the way
// the introspector looks them up: "importpath.Type" and
// "importpath.Type.Field".
package comments

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/reoring/schemagen/discover"
)

// Load parses every package under dir. Type comments are reduced to their
// first sentence; field comments are kept whole.
func Load(dir string) (map[string]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	mod, err := discover.FindModule(abs)
	if err != nil {
		return nil, err
	}

	// Keys come back prefixed with the slash form of the directory holding
	// the declaration.
	r := &jsonschema.Reflector{}
	if err := r.AddGoComments("", abs); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}

	pkgs, err := packageDirs(abs, mod)
	if err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	out := make(map[string]string, len(r.CommentMap))
	for k, v := range r.CommentMap {
		if v == "" {
			continue
		}
		if nk, ok := rekey(k, pkgs); ok {
			out[nk] = v
		}
	}
	return out, nil
}

type pkgDir struct {
	dir        string // slash form, absolute
	importPath string
}

// packageDirs lists the directories under root, longest first, with the
// import path each one maps to.
func packageDirs(root string, mod discover.Module) ([]pkgDir, error) {
	var out []pkgDir
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}
		out = append(out, pkgDir{dir: filepath.ToSlash(p), importPath: mod.ImportPath(p, rel)})
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return len(out[i].dir) > len(out[j].dir) })
	return out, err
}

// rekey swaps the directory prefix of a key for the package import path.
func rekey(key string, pkgs []pkgDir) (string, bool) {
	for _, p := range pkgs {
		if !strings.HasPrefix(key, p.dir+".") {
			continue
		}
		rest := key[len(p.dir)+1:]
		if p.importPath == "" {
			return rest, true
		}
		return p.importPath + "." + rest, true
	}
	return "", false
}
