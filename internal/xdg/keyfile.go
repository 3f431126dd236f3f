package xdg

import (
	"fmt"
	"os"
	"strings"

	"github.com/rkoesters/xdg/keyfile"
)

// LoadKeyFile parses the key file at path.
func LoadKeyFile(path string) (*keyfile.KeyFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	kf, err := keyfile.New(f)
	if err != nil {
		return nil, fmt.Errorf("parse key file: %w", err)
	}
	return kf, nil
}

// String returns the unescaped value of key in group.
// The second result is false when the key is absent or malformed.
func String(kf *keyfile.KeyFile, group, key string) (string, bool) {
	if !kf.KeyExists(group, key) {
		return "", false
	}
	v, err := kf.String(group, key)
	if err != nil {
		return "", false
	}
	return v, true
}

// Bool reports whether key in group is set to true. Absent and malformed
// values read as false.
func Bool(kf *keyfile.KeyFile, group, key string) bool {
	if !kf.KeyExists(group, key) {
		return false
	}
	v, err := kf.Bool(group, key)
	return err == nil && v
}

// List returns the semicolon separated list stored under key, without
// empty elements.
func List(kf *keyfile.KeyFile, group, key string) []string {
	if !kf.KeyExists(group, key) {
		return nil
	}
	values, err := kf.StringList(group, key)
	if err != nil {
		return nil
	}
	return compact(values)
}

// SplitList splits v on sep with the same trimming as List. Icon theme
// indexes store their lists comma separated.
func SplitList(v, sep string) []string {
	return compact(strings.Split(v, sep))
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
