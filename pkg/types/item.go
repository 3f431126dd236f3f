package types

import "strings"

// fieldCodes are the desktop entry Exec field codes stripped before launch.
var fieldCodes = []string{"%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%i", "%c", "%k", "%v", "%m"}

// Item is an immutable catalog record for one launchable application.
type Item struct {
	ID          string   // Unique and stable across runs (desktop file stem)
	Name        string   // Display name
	Exec        string   // Raw executable command, may contain field codes
	Icon        string   // Optional icon reference: theme name or absolute path
	Keywords    []string // Ordered search keywords
	Description string   // Optional comment
	Path        string   // Source file, empty for synthetic items
}

// LaunchCommand returns Exec with desktop field codes removed.
// Runs of whitespace left behind collapse to single spaces.
func (it Item) LaunchCommand() string {
	cmd := it.Exec
	for _, code := range fieldCodes {
		cmd = strings.ReplaceAll(cmd, code, "")
	}
	return strings.Join(strings.Fields(cmd), " ")
}

// Haystack returns the text matched against a query: the name followed by
// every keyword, separated by single spaces.
func (it Item) Haystack() string {
	if len(it.Keywords) == 0 {
		return it.Name
	}
	var b strings.Builder
	b.WriteString(it.Name)
	for _, kw := range it.Keywords {
		b.WriteByte(' ')
		b.WriteString(kw)
	}
	return b.String()
}

// Validate checks that the item carries the fields the core relies on.
func (it Item) Validate() error {
	if it.ID == "" {
		return ErrMissingItemID
	}
	if it.Name == "" {
		return ErrMissingItemName
	}
	if strings.TrimSpace(it.Exec) == "" {
		return ErrMissingExec
	}
	return nil
}
