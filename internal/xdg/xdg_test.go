package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setenv sets XDG variables for one test and reloads the resolved
// directories before and after
func setenv(t *testing.T, kv ...string) {
	t.Helper()
	t.Cleanup(Reload)
	for i := 0; i+1 < len(kv); i += 2 {
		t.Setenv(kv[i], kv[i+1])
	}
	Reload()
}

func TestDataDirs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setenv(t, "XDG_DATA_DIRS", "")
		assert.Equal(t, []string{"/usr/local/share", "/usr/share"}, DataDirs())
	})

	t.Run("from env", func(t *testing.T) {
		setenv(t, "XDG_DATA_DIRS", "/opt/share:/usr/share")
		assert.Equal(t, []string{"/opt/share", "/usr/share"}, DataDirs())
	})

	t.Run("copy", func(t *testing.T) {
		setenv(t, "XDG_DATA_DIRS", "/opt/share")
		dirs := DataDirs()
		dirs[0] = "/mutated"
		assert.Equal(t, []string{"/opt/share"}, DataDirs())
	})
}

func TestSearchDirs(t *testing.T) {
	setenv(t, "XDG_DATA_HOME", "/home/u/.local/share", "XDG_DATA_DIRS", "/usr/share")

	assert.Equal(t, []string{
		filepath.Join("/home/u/.local/share", "applications"),
		filepath.Join("/usr/share", "applications"),
	}, SearchDirs("applications"))
}

func TestConfigHome(t *testing.T) {
	setenv(t, "XDG_CONFIG_HOME", "/tmp/cfg")
	assert.Equal(t, "/tmp/cfg", ConfigHome())
}

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entry.desktop")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadKeyFile(t *testing.T) {
	path := writeKeyFile(t, `# comment
[Desktop Entry]
Name=Firefox
Name[de]=Firefox Browser
Keywords=browser;web;
NoDisplay=true
Terminal=maybe
Comment=Line\sone

[Desktop Action new-window]
Name=New Window
`)
	kf, err := LoadKeyFile(path)
	require.NoError(t, err)

	name, ok := String(kf, "Desktop Entry", "Name")
	assert.True(t, ok)
	assert.Equal(t, "Firefox", name)

	comment, _ := String(kf, "Desktop Entry", "Comment")
	assert.Equal(t, "Line one", comment)

	assert.Equal(t, []string{"browser", "web"}, List(kf, "Desktop Entry", "Keywords"))
	assert.Nil(t, List(kf, "Desktop Entry", "Categories"))

	assert.True(t, Bool(kf, "Desktop Entry", "NoDisplay"))
	assert.False(t, Bool(kf, "Desktop Entry", "Hidden"))
	assert.False(t, Bool(kf, "Desktop Entry", "Terminal"))

	assert.True(t, kf.GroupExists("Desktop Action new-window"))
	_, ok = String(kf, "Missing", "Name")
	assert.False(t, ok)
}

func TestLoadKeyFileMissing(t *testing.T) {
	_, err := LoadKeyFile(filepath.Join(t.TempDir(), "absent.desktop"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"48x48/apps", "scalable/apps"}, SplitList("48x48/apps, scalable/apps,", ","))
	assert.Nil(t, SplitList("", ","))
}
