// Package sink persists rendered schema documents.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the file extension appended to every artifact name.
const Ext = ".json"

// Sink stores one named text artifact and returns where it went.
type Sink interface {
	Write(name string, data []byte) (string, error)
}

// Dir writes artifacts as <Path>/<name>.json, creating Path on demand.
type Dir struct {
	Path string
}

// NewDir returns a Dir sink rooted at path.
func NewDir(path string) *Dir { return &Dir{Path: path} }

// Write implements Sink. An existing file with the same name is overwritten.
func (d *Dir) Write(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return "", fmt.Errorf("sink: creating %s: %w", d.Path, err)
	}
	file := filepath.Join(d.Path, name+Ext)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", fmt.Errorf("sink: writing %s: %w", file, err)
	}
	return file, nil
}

// Memory keeps artifacts in memory, in write order.
type Memory struct {
	names []string
	files map[string][]byte
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory { return &Memory{files: make(map[string][]byte)} }

// Write implements Sink.
func (m *Memory) Write(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	file := name + Ext
	if _, ok := m.files[file]; !ok {
		m.names = append(m.names, file)
	}
	m.files[file] = append([]byte(nil), data...)
	return file, nil
}

// Names lists written artifact file names in first-write order.
func (m *Memory) Names() []string { return append([]string(nil), m.names...) }

// Get returns the contents of file (e.g. "Person.json").
func (m *Memory) Get(file string) ([]byte, bool) {
	b, ok := m.files[file]
	return b, ok
}

func checkName(name string) error {
	if name == "" {
		return errors.New("sink: empty artifact name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("sink: invalid artifact name %q", name)
	}
	return nil
}
