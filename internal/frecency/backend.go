package frecency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/launchrank/pkg/types"
)

var (
	// ErrNoHistory is returned by a backend when no durable state exists yet
	ErrNoHistory = errors.New("no history stored")
	// ErrCorruptHistory is returned when stored state cannot be decoded
	ErrCorruptHistory = errors.New("corrupt history")
)

// Backend loads and saves the complete id -> entry mapping.
// Load returns ErrNoHistory when nothing was saved yet.
type Backend interface {
	Load(ctx context.Context) (map[string]types.FrecencyEntry, error)
	Save(ctx context.Context, entries map[string]types.FrecencyEntry) error
	Location() string
}

// document is the on-disk JSON layout
type document struct {
	Apps map[string]types.FrecencyEntry `json:"apps"`
}

// FileBackend persists history as a JSON document at a fixed path.
type FileBackend struct {
	path string
}

// NewFileBackend creates a JSON backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Location returns the document path.
func (b *FileBackend) Location() string {
	return b.path
}

// Load reads and decodes the document.
func (b *FileBackend) Load(ctx context.Context) (map[string]types.FrecencyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoHistory
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	if doc.Apps == nil {
		doc.Apps = make(map[string]types.FrecencyEntry)
	}
	return doc.Apps, nil
}

// Save writes the document to a temp file in the same directory and renames
// it over the previous one, creating parent directories as needed.
func (b *FileBackend) Save(ctx context.Context, entries map[string]types.FrecencyEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(document{Apps: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
