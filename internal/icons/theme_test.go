package icons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const hicolorIndex = `[Icon Theme]
Name=Hicolor
Directories=16x16/apps,48x48/apps,scalable/apps

[16x16/apps]
Size=16
Type=Threshold

[48x48/apps]
Size=48
Type=Fixed

[scalable/apps]
Size=128
MinSize=8
MaxSize=512
Type=Scalable
`

const papirusIndex = `[Icon Theme]
Name=Papirus
Inherits=breeze,hicolor
Directories=48x48/apps

[48x48/apps]
Size=48
Type=Fixed
`

const breezeIndex = `[Icon Theme]
Name=Breeze
Inherits=papirus
Directories=32x32/apps

[32x32/apps]
Size=32
Type=Fixed
`

func setupThemes(t *testing.T) (base, pixmaps string) {
	t.Helper()
	root := t.TempDir()
	base = filepath.Join(root, "icons")
	pixmaps = filepath.Join(root, "pixmaps")

	writeFile(t, filepath.Join(base, "hicolor", "index.theme"), hicolorIndex)
	writeFile(t, filepath.Join(base, "hicolor", "48x48", "apps", "firefox.png"), "png")
	writeFile(t, filepath.Join(base, "hicolor", "16x16", "apps", "tiny.png"), "png")
	writeFile(t, filepath.Join(base, "hicolor", "scalable", "apps", "vector.svg"), "svg")

	writeFile(t, filepath.Join(base, "papirus", "index.theme"), papirusIndex)
	writeFile(t, filepath.Join(base, "papirus", "48x48", "apps", "firefox.svg"), "svg")

	writeFile(t, filepath.Join(base, "breeze", "index.theme"), breezeIndex)
	writeFile(t, filepath.Join(base, "breeze", "32x32", "apps", "kate.png"), "png")

	writeFile(t, filepath.Join(pixmaps, "legacy.xpm"), "xpm")
	return base, pixmaps
}

func TestThemeLookupFallbackTheme(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	p, ok := b.Lookup("firefox", 48, "")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor", "48x48", "apps", "firefox.png"), p)
}

func TestThemeLookupRequestedTheme(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	p, ok := b.Lookup("firefox", 48, "papirus")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "papirus", "48x48", "apps", "firefox.svg"), p)
}

func TestThemeLookupInheritsWithCycle(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	// papirus -> breeze -> papirus is a cycle; must still terminate
	p, ok := b.Lookup("kate", 32, "papirus")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "breeze", "32x32", "apps", "kate.png"), p)
}

func TestThemeLookupClosestSize(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	p, ok := b.Lookup("tiny", 48, "")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor", "16x16", "apps", "tiny.png"), p)

	p, ok = b.Lookup("vector", 256, "")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor", "scalable", "apps", "vector.svg"), p)
}

func TestThemeLookupPixmaps(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	p, ok := b.Lookup("legacy", 48, "missing-theme")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(pixmaps, "legacy.xpm"), p)
}

func TestThemeLookupNotFound(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	_, ok := b.Lookup("nothing-here", 48, "papirus")
	assert.False(t, ok)
	_, ok = b.Lookup("", 48, "")
	assert.False(t, ok)
}

func TestThemeBackendBehindCache(t *testing.T) {
	base, pixmaps := setupThemes(t)
	cache := NewCache(NewThemeBackendWithDirs([]string{base}, []string{pixmaps}), WithTheme("papirus"))

	p, ok := cache.Resolve("firefox")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "papirus", "48x48", "apps", "firefox.svg"), p)

	_, ok = cache.Resolve("nothing-here")
	assert.False(t, ok)
	_, ok = cache.Resolve("nothing-here")
	assert.False(t, ok)
	assert.Equal(t, uint64(2), cache.Stats().BackendLookups)
}

func TestThemeInstalledAfterClear(t *testing.T) {
	base, pixmaps := setupThemes(t)
	cache := NewCache(NewThemeBackendWithDirs([]string{base}, []string{pixmaps}), WithTheme("numix"))

	// numix is not installed yet, so hicolor answers
	p, ok := cache.Resolve("firefox")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor", "48x48", "apps", "firefox.png"), p)

	writeFile(t, filepath.Join(base, "numix", "index.theme"), "[Icon Theme]\nName=Numix\nDirectories=48x48/apps\n\n[48x48/apps]\nSize=48\nType=Fixed\n")
	writeFile(t, filepath.Join(base, "numix", "48x48", "apps", "firefox.svg"), "svg")

	cache.Clear()
	p, ok = cache.Resolve("firefox")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "numix", "48x48", "apps", "firefox.svg"), p)
}

func TestThemeBackendReset(t *testing.T) {
	base, pixmaps := setupThemes(t)
	b := NewThemeBackendWithDirs([]string{base}, []string{pixmaps})

	_, ok := b.Lookup("kate", 32, "oxygen")
	assert.False(t, ok)

	writeFile(t, filepath.Join(base, "oxygen", "index.theme"), "[Icon Theme]\nName=Oxygen\nInherits=breeze\nDirectories=32x32/apps\n\n[32x32/apps]\nSize=32\nType=Fixed\n")

	// memoized as not installed until Reset
	_, ok = b.Lookup("kate", 32, "oxygen")
	assert.False(t, ok)

	b.Reset()
	p, ok := b.Lookup("kate", 32, "oxygen")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "breeze", "32x32", "apps", "kate.png"), p)
}
