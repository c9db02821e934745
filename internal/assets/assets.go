// Package assets locates map files and textures across GRF archives and
// extracted data directories.
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Faultbox/midgard-world/pkg/encoding"
	"github.com/Faultbox/midgard-world/pkg/grf"
)

// ErrNotFound is returned when no source holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Source is something files can be read from by archive path.
type Source interface {
	Read(path string) ([]byte, error)
}

// Lister is a source that can enumerate its files as normalized paths.
// grf.Archive and Dir implement it.
type Lister interface {
	List() []string
}

// Dir reads files from an extracted data directory. Lookups are
// case-insensitive on the file name, like archive lookups. Directories
// extracted by older tools keep Korean names as raw EUC-KR bytes, so those
// spellings are tried as well.
type Dir string

// Read implements Source.
func (d Dir) Read(path string) ([]byte, error) {
	rel := filepath.FromSlash(strings.ReplaceAll(path, "\\", "/"))
	data, err := os.ReadFile(filepath.Join(string(d), rel))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return data, err
	}
	if raw := string(encoding.UTF8ToEUCKR(rel)); raw != rel {
		if data, rerr := os.ReadFile(filepath.Join(string(d), raw)); rerr == nil {
			return data, nil
		}
	}

	dir, name := filepath.Split(filepath.Join(string(d), rel))
	entries, derr := os.ReadDir(dir)
	if derr != nil {
		return nil, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name(), name) {
			return os.ReadFile(filepath.Join(dir, e.Name()))
		}
	}
	return nil, err
}

// List implements Lister. Names stored as EUC-KR are decoded.
func (d Dir) List() []string {
	var names []string
	filepath.WalkDir(string(d), func(path string, e fs.DirEntry, err error) error {
		if err != nil || e.IsDir() {
			return nil
		}
		if rel, rerr := filepath.Rel(string(d), path); rerr == nil {
			names = append(names, encoding.NormalizePath(encoding.EUCKRToUTF8([]byte(filepath.ToSlash(rel)))))
		}
		return nil
	})
	sort.Strings(names)
	return names
}

// Manager searches its sources in reverse order, so the last added source
// wins.
type Manager struct {
	mu      sync.RWMutex
	sources []Source
	closers []io.Closer
	cache   *Cache
}

// NewManager creates an empty asset manager.
func NewManager() *Manager {
	return &Manager{cache: NewCache()}
}

// AddArchive opens a GRF archive and adds it as a source.
func (m *Manager) AddArchive(path string) error {
	archive, err := grf.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.sources = append(m.sources, archive)
	m.closers = append(m.closers, archive)
	m.mu.Unlock()
	return nil
}

// AddDir adds an extracted data directory as a source.
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding data directory: %s is not a directory", path)
	}
	m.AddSource(Dir(path))
	return nil
}

// AddSource adds any source.
func (m *Manager) AddSource(s Source) {
	m.mu.Lock()
	m.sources = append(m.sources, s)
	m.mu.Unlock()
}

// Load returns the contents of path from the highest priority source
// holding it.
func (m *Manager) Load(path string) ([]byte, error) {
	key := encoding.NormalizePath(path)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].Read(path)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Maps returns the sorted names of every map with a GND file directly under
// data/ in a source that can list its files.
func (m *Manager) Maps() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, s := range m.sources {
		l, ok := s.(Lister)
		if !ok {
			continue
		}
		for _, p := range l.List() {
			name, found := strings.CutPrefix(p, "data/")
			if !found || strings.Contains(name, "/") || !strings.HasSuffix(name, ".gnd") {
				continue
			}
			seen[strings.TrimSuffix(name, ".gnd")] = true
		}
	}

	maps := make([]string, 0, len(seen))
	for name := range seen {
		maps = append(maps, name)
	}
	sort.Strings(maps)
	return maps
}

// MapPaths returns the GND and RSW paths of a map name such as "prontera".
func MapPaths(name string) (gnd, rsw string) {
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".rsw"), ".gnd")
	return "data/" + name + ".gnd", "data/" + name + ".rsw"
}

// TexturePath returns the path of a ground texture named in a GND file.
func TexturePath(name string) string {
	return "data/texture/" + strings.ReplaceAll(name, "\\", "/")
}

// Close closes every archive and drops the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.closers {
		c.Close()
	}
	m.sources = nil
	m.closers = nil
	m.cache.Clear()
}

// Cache is an in-memory byte cache keyed by normalized path.
type Cache struct {
	mu     sync.RWMutex
	data   map[string][]byte
	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

// Get retrieves an item.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
