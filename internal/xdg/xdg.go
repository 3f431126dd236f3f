// Package xdg adapts the XDG base directory and key file libraries to the
// lookups shared by desktop entries and icon theme indexes.
package xdg

import (
	"path/filepath"

	basedir "github.com/adrg/xdg"
)

// DataHome returns the user data directory, $XDG_DATA_HOME or ~/.local/share.
func DataHome() string {
	return basedir.DataHome
}

// ConfigHome returns the user config directory, $XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	return basedir.ConfigHome
}

// DataDirs returns the system data directories in precedence order.
// The result is a copy and may be modified by the caller.
func DataDirs() []string {
	return append([]string(nil), basedir.DataDirs...)
}

// SearchDirs returns DataHome followed by DataDirs, each joined with sub.
func SearchDirs(sub string) []string {
	dirs := []string{filepath.Join(DataHome(), sub)}
	for _, d := range DataDirs() {
		dirs = append(dirs, filepath.Join(d, sub))
	}
	return dirs
}

// Reload re-reads the XDG environment variables.
// The directories are resolved once at startup, so callers that change the
// environment afterwards must call Reload before the next lookup.
func Reload() {
	basedir.Reload()
}
