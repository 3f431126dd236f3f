// Package catalog discovers launchable applications from freedesktop
// .desktop files.
//
// Directories are read concurrently and merged in the order given, so an
// entry in $XDG_DATA_HOME/applications shadows one with the same file name
// in /usr/share/applications. The id of an item is its file name without
// the .desktop suffix.
//
// Entries are dropped when they are marked NoDisplay or Hidden, are not of
// Type=Application, or lack a Name or Exec key. The result is sorted by
// lowercase name.
package catalog
