// Package sink persists generated cursor files.
package sink

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
)

// Sink accepts finished files. Put is called at most once per name and may be
// called from several goroutines.
type Sink interface {
	Put(name string, data []byte) error
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return cursorerr.New(cursorerr.KindSink, "invalid file name %q", name)
	}
	return nil
}

// Memory keeps files in a map.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemory() *Memory { return &Memory{files: map[string][]byte{}} }

func (m *Memory) Put(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

// Get returns a stored file.
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[name]
	return b, ok
}

// Names returns the stored file names, sorted.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for n := range m.files {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Dir writes files into a style-named directory under a root.
//
// Every file is written to a temporary name, synced and renamed into place,
// so a reader never observes a partial cursor.
type Dir struct {
	path string
}

// NewDir creates root/style if needed.
func NewDir(root, style string) (*Dir, error) {
	if root == "" {
		return nil, cursorerr.New(cursorerr.KindSink, "output root directory is required")
	}
	if err := checkName(style); err != nil {
		return nil, err
	}
	path := filepath.Join(root, style)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, cursorerr.Wrap(cursorerr.KindSink, err, "create %s", path)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory files are written to.
func (d *Dir) Path() string { return d.path }

func (d *Dir) Put(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	final := filepath.Join(d.path, name)
	if err := writeAtomic(d.path, final, data); err != nil {
		return cursorerr.Wrap(cursorerr.KindSink, err, "write %s", final)
	}
	return nil
}

func writeAtomic(dir, final string, data []byte) error {
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(final)+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, werr := f.Write(data)
	if werr == nil {
		werr = f.Sync()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		if err := os.Chmod(tmp, 0o644); err != nil {
			werr = err
		}
	}
	if werr == nil {
		werr = os.Rename(tmp, final)
	}
	if werr != nil {
		_ = os.Remove(tmp)
		return werr
	}
	return nil
}

// ErrNotExist is returned by ReadDir for a missing style directory.
var ErrNotExist = errors.New("sink: directory does not exist")

// ReadDir loads every regular file of a Dir-written directory, skipping
// leftover temporary files.
func ReadDir(path string) (map[string][]byte, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	out := map[string][]byte{}
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		out[e.Name()] = b
	}
	return out, nil
}
