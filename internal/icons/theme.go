package icons

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rkoesters/xdg/keyfile"

	"github.com/dshills/launchrank/internal/xdg"
)

// FallbackTheme is searched after the requested theme and its parents.
const FallbackTheme = "hicolor"

var iconExtensions = []string{".png", ".svg", ".xpm"}

// themeDir is one sized directory declared in a theme's index.theme
type themeDir struct {
	rel       string
	size      int
	minSize   int
	maxSize   int
	threshold int
	kind      string // Fixed, Scalable or Threshold
}

// iconTheme is a parsed theme index with every root it was found under
type iconTheme struct {
	name     string
	roots    []string
	dirs     []themeDir
	inherits []string
}

// ThemeBackend implements the freedesktop icon theme lookup: requested
// theme, its Inherits chain, hicolor, then the pixmap directories.
// Parsed theme indexes are memoized until Reset.
type ThemeBackend struct {
	iconDirs   []string
	pixmapDirs []string

	mu     sync.Mutex
	themes map[string]*iconTheme // nil value: theme not installed
}

// NewThemeBackend searches the standard XDG icon locations.
func NewThemeBackend() *ThemeBackend {
	dirs := []string{filepath.Join(xdg.DataHome(), "icons")}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".icons"))
	}
	for _, d := range xdg.DataDirs() {
		dirs = append(dirs, filepath.Join(d, "icons"))
	}
	return NewThemeBackendWithDirs(dirs, []string{"/usr/share/pixmaps"})
}

// NewThemeBackendWithDirs searches explicit icon and pixmap directories.
func NewThemeBackendWithDirs(iconDirs, pixmapDirs []string) *ThemeBackend {
	return &ThemeBackend{
		iconDirs:   iconDirs,
		pixmapDirs: pixmapDirs,
		themes:     make(map[string]*iconTheme),
	}
}

// Lookup returns the best file for name at size.
// An empty theme starts at hicolor.
func (b *ThemeBackend) Lookup(name string, size int, theme string) (string, bool) {
	if name == "" {
		return "", false
	}
	if size <= 0 {
		size = DefaultSize
	}

	visited := make(map[string]bool)
	start := theme
	if start == "" {
		start = FallbackTheme
	}
	if p, ok := b.lookupChain(start, name, size, visited); ok {
		return p, true
	}
	if !visited[FallbackTheme] {
		if p, ok := b.lookupChain(FallbackTheme, name, size, visited); ok {
			return p, true
		}
	}

	for _, dir := range b.pixmapDirs {
		if p, ok := findFile(dir, name); ok {
			return p, true
		}
	}
	return "", false
}

func (b *ThemeBackend) lookupChain(name, icon string, size int, visited map[string]bool) (string, bool) {
	if visited[name] {
		return "", false
	}
	visited[name] = true

	t := b.theme(name)
	if t == nil {
		return "", false
	}
	if p, ok := t.find(icon, size); ok {
		return p, true
	}
	for _, parent := range t.inherits {
		if p, ok := b.lookupChain(parent, icon, size, visited); ok {
			return p, true
		}
	}
	return "", false
}

// Reset forgets every parsed theme index, so themes installed or removed
// since the last lookup are picked up. Cache.Clear calls it.
func (b *ThemeBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.themes = make(map[string]*iconTheme)
}

// theme loads and memoizes a theme index until the next Reset.
func (b *ThemeBackend) theme(name string) *iconTheme {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.themes[name]; ok {
		return t
	}
	t := b.loadTheme(name)
	b.themes[name] = t
	return t
}

func (b *ThemeBackend) loadTheme(name string) *iconTheme {
	t := &iconTheme{name: name}
	parsed := false

	for _, base := range b.iconDirs {
		root := filepath.Join(base, name)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		t.roots = append(t.roots, root)
		if parsed {
			continue
		}

		kf, err := xdg.LoadKeyFile(filepath.Join(root, "index.theme"))
		if err != nil || !kf.GroupExists("Icon Theme") {
			continue
		}
		parsed = true
		t.inherits = commaList(kf, "Icon Theme", "Inherits")
		for _, rel := range commaList(kf, "Icon Theme", "Directories") {
			if d, ok := parseThemeDir(kf, rel); ok {
				t.dirs = append(t.dirs, d)
			}
		}
	}

	if !parsed {
		return nil
	}
	return t
}

func parseThemeDir(kf *keyfile.KeyFile, rel string) (themeDir, bool) {
	size, ok := intValue(kf, rel, "Size")
	if !ok {
		return themeDir{}, false
	}
	d := themeDir{rel: rel, size: size, minSize: size, maxSize: size, threshold: 2, kind: "Threshold"}
	if v, ok := xdg.String(kf, rel, "Type"); ok {
		d.kind = v
	}
	if v, ok := intValue(kf, rel, "MinSize"); ok {
		d.minSize = v
	}
	if v, ok := intValue(kf, rel, "MaxSize"); ok {
		d.maxSize = v
	}
	if v, ok := intValue(kf, rel, "Threshold"); ok {
		d.threshold = v
	}
	return d, true
}

// commaList reads a theme index list. Unlike desktop entries these are
// comma separated.
func commaList(kf *keyfile.KeyFile, group, key string) []string {
	v, ok := xdg.String(kf, group, key)
	if !ok {
		return nil
	}
	return xdg.SplitList(v, ",")
}

func intValue(kf *keyfile.KeyFile, group, key string) (int, bool) {
	v, ok := xdg.String(kf, group, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// find prefers a directory matching size exactly, then the closest one
func (t *iconTheme) find(icon string, size int) (string, bool) {
	for _, d := range t.dirs {
		if !d.matches(size) {
			continue
		}
		for _, root := range t.roots {
			if p, ok := findFile(filepath.Join(root, d.rel), icon); ok {
				return p, true
			}
		}
	}

	best, bestDist := "", math.MaxInt
	for _, d := range t.dirs {
		dist := d.distance(size)
		if dist >= bestDist {
			continue
		}
		for _, root := range t.roots {
			if p, ok := findFile(filepath.Join(root, d.rel), icon); ok {
				best, bestDist = p, dist
				break
			}
		}
	}
	return best, best != ""
}

func (d themeDir) matches(size int) bool {
	switch d.kind {
	case "Fixed":
		return d.size == size
	case "Scalable":
		return d.minSize <= size && size <= d.maxSize
	default:
		return d.size-d.threshold <= size && size <= d.size+d.threshold
	}
}

func (d themeDir) distance(size int) int {
	switch d.kind {
	case "Fixed":
		return abs(d.size - size)
	case "Scalable":
		if size < d.minSize {
			return d.minSize - size
		}
		if size > d.maxSize {
			return size - d.maxSize
		}
		return 0
	default:
		if size < d.size-d.threshold {
			return d.minSize - size
		}
		if size > d.size+d.threshold {
			return size - d.maxSize
		}
		return 0
	}
}

func findFile(dir, icon string) (string, bool) {
	for _, ext := range iconExtensions {
		p := filepath.Join(dir, icon+ext)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
