package icons

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const (
	// DefaultCapacity is the cache size used when none is configured.
	DefaultCapacity = 200
	// DefaultSize is the icon pixel size used when none is requested.
	DefaultSize = 48
)

// Backend looks an icon name up in the installed themes.
// Lookup returns the file path and true, or false when nothing matches.
type Backend interface {
	Lookup(name string, size int, theme string) (string, bool)
}

// Resetter is implemented by backends that memoize state of their own.
// Cache.Clear calls Reset so a cleared cache sees freshly installed themes.
type Resetter interface {
	Reset()
}

// BackendFunc adapts an ordinary function to the Backend interface.
type BackendFunc func(name string, size int, theme string) (string, bool)

// Lookup calls f.
func (f BackendFunc) Lookup(name string, size int, theme string) (string, bool) {
	return f(name, size, theme)
}

// key identifies one lookup; the same name at another size or theme is a
// separate entry
type key struct {
	name  string
	size  int
	theme string
}

// result is a cached lookup outcome, found or not.
type result struct {
	path  string
	found bool
}

// Stats counts cache activity since construction. Clear does not reset
// the counters and is not counted as evictions.
type Stats struct {
	Hits           uint64
	Misses         uint64
	Evictions      uint64
	BackendLookups uint64
	DirectPaths    uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity bounds the number of cached entries. Non-positive values
// keep DefaultCapacity.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithSize sets the default pixel size passed to the backend.
func WithSize(px int) Option {
	return func(c *Cache) {
		if px > 0 {
			c.size = px
		}
	}
}

// WithTheme sets the default theme passed to the backend.
func WithTheme(theme string) Option {
	return func(c *Cache) {
		c.theme = theme
	}
}

// Cache is a bounded LRU front for a Backend. Misses are cached too, so a
// name that resolves to nothing costs one backend lookup until evicted.
// All methods are safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	lru      *simplelru.LRU[key, result]
	backend  Backend
	capacity int
	size     int
	theme    string
	stats    Stats
	purging  bool
}

// NewCache creates a cache in front of backend.
func NewCache(backend Backend, opts ...Option) *Cache {
	c := &Cache{
		backend:  backend,
		capacity: DefaultCapacity,
		size:     DefaultSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	l, err := simplelru.NewLRU[key, result](c.capacity, c.onEvict)
	if err != nil {
		// Only fails for non-positive sizes, which the options reject
		l, _ = simplelru.NewLRU[key, result](DefaultCapacity, c.onEvict)
		c.capacity = DefaultCapacity
	}
	c.lru = l
	return c
}

// Resolve looks up ref at the cache's default size and theme.
func (c *Cache) Resolve(ref string) (string, bool) {
	return c.ResolveWith(ref, c.size, c.theme)
}

// ResolveWith looks up ref at an explicit size and theme. An absolute path
// to an existing file is returned as is without consulting the backend.
func (c *Cache) ResolveWith(ref string, size int, theme string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if size <= 0 {
		size = c.size
	}
	k := key{name: ref, size: size, theme: theme}

	if filepath.IsAbs(ref) && isFile(ref) {
		c.mu.Lock()
		c.stats.DirectPaths++
		c.lru.Add(k, result{path: ref, found: true})
		c.mu.Unlock()
		return ref, true
	}

	c.mu.Lock()
	if r, ok := c.lru.Get(k); ok {
		c.stats.Hits++
		c.mu.Unlock()
		return r.path, r.found
	}
	c.stats.Misses++
	c.mu.Unlock()

	// The backend runs unlocked; concurrent misses for one key may both
	// reach it and the later Add wins with an identical value
	path, found := c.backend.Lookup(ref, size, theme)

	c.mu.Lock()
	c.stats.BackendLookups++
	c.lru.Add(k, result{path: path, found: found})
	c.mu.Unlock()

	if !found {
		return "", false
	}
	return path, true
}

// Clear drops every cached entry and resets the backend when it
// implements Resetter.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.purging = true
	c.lru.Purge()
	c.purging = false
	c.mu.Unlock()

	if r, ok := c.backend.(Resetter); ok {
		r.Reset()
	}
}

// Len returns the number of cached entries, found and not found.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Size returns the default pixel size.
func (c *Cache) Size() int {
	return c.size
}

// Theme returns the default theme.
func (c *Cache) Theme() string {
	return c.theme
}

// Stats returns a snapshot of the activity counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// onEvict runs with c.mu held
func (c *Cache) onEvict(_ key, _ result) {
	if !c.purging {
		c.stats.Evictions++
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
