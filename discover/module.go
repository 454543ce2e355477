package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Module locates a Go module on disk.
type Module struct {
	Root string // absolute directory holding go.mod; "" when none was found
	Path string // module path declared in go.mod
}

// FindModule walks up from dir to the nearest go.mod. A tree without one
// yields a zero Module and no error.
func FindModule(dir string) (Module, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Module{}, err
	}
	for d := abs; ; {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		switch {
		case err == nil:
			mp := modfile.ModulePath(data)
			if mp == "" {
				return Module{}, fmt.Errorf("discover: %s: no module directive", filepath.Join(d, "go.mod"))
			}
			return Module{Root: d, Path: mp}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Module{}, err
		}
		parent := filepath.Dir(d)
		if parent == d {
			return Module{}, nil
		}
		d = parent
	}
}

// ImportPath returns the import path of the package in absDir. Outside a
// module it falls back to rel, the slash-separated directory relative to the
// scanned root.
func (m Module) ImportPath(absDir, rel string) string {
	if m.Root == "" {
		return rel
	}
	r, err := filepath.Rel(m.Root, absDir)
	if err != nil {
		return rel
	}
	r = filepath.ToSlash(r)
	if r == "." {
		return m.Path
	}
	return path.Join(m.Path, r)
}
