package fsops

import (
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Op names a recorded file operation.
type Op string

const (
	OpRemove Op = "remove"
	OpCopy   Op = "copy"
	OpRead   Op = "read"
)

// Call is one operation recorded by Memory.
type Call struct {
	Op     Op
	Path   string
	Target string
}

// Memory is an in-memory filesystem that records every call in order.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
	calls []Call
}

// NewMemory creates a Memory seeded with files.
func NewMemory(files map[string]string) *Memory {
	m := &Memory{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		m.files[p] = []byte(content)
	}
	return m
}

// Remove deletes path.
func (m *Memory) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpRemove, Path: path})
	if _, ok := m.files[path]; !ok {
		return errors.Wrapf(ErrMissingArtifact, "remove %s", path)
	}
	delete(m.files, path)
	return nil
}

// Copy overwrites dst with src.
func (m *Memory) Copy(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpCopy, Path: src, Target: dst})
	data, ok := m.files[src]
	if !ok {
		return errors.Wrapf(ErrMissingArtifact, "copy %s", src)
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return errors.Wrapf(ErrSameFile, "copy %s to %s", src, dst)
	}
	m.files[dst] = append([]byte(nil), data...)
	return nil
}

// ReadFile returns the contents of path.
func (m *Memory) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpRead, Path: path})
	data, ok := m.files[path]
	if !ok {
		return nil, errors.Wrapf(ErrMissingArtifact, "read %s", path)
	}
	return append([]byte(nil), data...), nil
}

// Exists reports whether path is present.
func (m *Memory) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

// Content returns the contents of path, or "" when absent.
func (m *Memory) Content(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.files[path])
}

// Calls returns the recorded operations in order.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsOf returns the recorded operations of one kind.
func (m *Memory) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
