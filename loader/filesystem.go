package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileSystem is where .pm programs come from and where their
// <program>_semantic_report.txt files go.
type FileSystem interface {
	// ReadFile returns the source of one program.
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces name with data in one step, so a reader never sees
	// half a report. The directory must already exist.
	WriteFile(name string, data []byte) error

	// ListFiles returns the regular files directly inside dir, sorted.
	// It fails when dir is missing or is not a directory.
	ListFiles(dir string) ([]string, error)
}

// DiskFS serves programs from disk. Relative names are taken from Root.
type DiskFS struct {
	Root string
}

func NewDiskFS(root string) *DiskFS {
	return &DiskFS{Root: root}
}

func (d *DiskFS) abs(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Root, name)
}

func (d *DiskFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.abs(name))
}

// WriteFile writes to a hidden temp file beside name and renames it over
// name once complete.
func (d *DiskFS) WriteFile(name string, data []byte) (err error) {
	target := d.abs(name)
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// ListFiles skips subdirectories and dot files, which include temp files
// left by an interrupted WriteFile.
func (d *DiskFS) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(dir))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, filepath.Join(dir, e.Name()))
	}
	return names, nil
}

// MemFS keeps programs and reports in a map keyed by slash separated
// names. Directories exist implicitly while some file lives under them.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFS returns a MemFS holding the given sources.
func NewMemFS(sources map[string]string) *MemFS {
	m := &MemFS{files: make(map[string][]byte, len(sources))}
	for name, src := range sources {
		m.files[path.Clean(name)] = []byte(src)
	}
	return m
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFS) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	if !m.isDir(path.Dir(name)) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrNotExist}
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *MemFS) ListFiles(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dir = path.Clean(dir)
	if _, ok := m.files[dir]; ok {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}
	if !m.isDir(dir) {
		return nil, &fs.PathError{Op: "list", Path: dir, Err: fs.ErrNotExist}
	}
	var names []string
	for name := range m.files {
		if path.Dir(name) == dir {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// caller holds mu
func (m *MemFS) isDir(dir string) bool {
	if dir == "." || dir == "/" {
		return true
	}
	prefix := dir + "/"
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
