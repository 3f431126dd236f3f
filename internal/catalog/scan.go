package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rkoesters/xdg/keyfile"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/launchrank/internal/xdg"
	"github.com/dshills/launchrank/pkg/types"
)

const (
	desktopGroup  = "Desktop Entry"
	desktopSuffix = ".desktop"
)

// DefaultDirs returns the XDG applications directories in precedence order.
func DefaultDirs() []string {
	return xdg.SearchDirs("applications")
}

// Statistics describes one scan.
type Statistics struct {
	DirsScanned   int
	FilesParsed   int
	FilesSkipped  int
	FilesFailed   int
	Duplicates    int
	ErrorMessages []string
}

// Result is the outcome of a scan. Items are sorted by name.
type Result struct {
	Items []types.Item
	Stats Statistics
}

// Option configures a scan.
type Option func(*scanner)

// WithWorkers bounds the number of directories read at once.
func WithWorkers(n int) Option {
	return func(s *scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger for unreadable files.
func WithLogger(logger *slog.Logger) Option {
	return func(s *scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type scanner struct {
	workers int
	logger  *slog.Logger
}

type dirResult struct {
	items []types.Item
	stats Statistics
}

// Scan reads every .desktop file directly inside dirs. Missing directories
// are skipped; unreadable files are logged and counted. Only context
// cancellation makes Scan fail.
//
// An id belongs to the first directory that yields a visible entry for it.
// Entries that are Hidden, NoDisplay, not of type Application, or missing a
// Name or Exec do not claim their id, so a hidden copy in the user directory
// leaves the system entry in place.
func Scan(ctx context.Context, dirs []string, opts ...Option) (*Result, error) {
	s := &scanner{workers: runtime.NumCPU(), logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	results := make([]dirResult, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, dir := range dirs {
		g.Go(func() error {
			r, err := s.scanDir(gctx, dir)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(results), nil
}

// merge combines per-directory results in directory order. The first
// visible entry for an id wins.
func merge(results []dirResult) *Result {
	out := &Result{}
	seen := make(map[string]bool)

	for _, r := range results {
		out.Stats.DirsScanned += r.stats.DirsScanned
		out.Stats.FilesParsed += r.stats.FilesParsed
		out.Stats.FilesSkipped += r.stats.FilesSkipped
		out.Stats.FilesFailed += r.stats.FilesFailed
		out.Stats.ErrorMessages = append(out.Stats.ErrorMessages, r.stats.ErrorMessages...)

		for _, item := range r.items {
			if seen[item.ID] {
				out.Stats.Duplicates++
				continue
			}
			seen[item.ID] = true
			out.Items = append(out.Items, item)
		}
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := strings.ToLower(out.Items[i].Name), strings.ToLower(out.Items[j].Name)
		if a != b {
			return a < b
		}
		return out.Items[i].ID < out.Items[j].ID
	})
	return out
}

func (s *scanner) scanDir(ctx context.Context, dir string) (dirResult, error) {
	var r dirResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("skipping applications dir", "dir", dir, "error", err)
		}
		return r, nil
	}
	r.stats.DirsScanned = 1

	// os.ReadDir sorts by name, so ids within a directory resolve
	// deterministically
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, desktopSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, desktopSuffix)
		if id == "" {
			continue
		}
		path := filepath.Join(dir, name)

		item, err := ParseFile(path, id)
		if err != nil {
			r.stats.FilesFailed++
			r.stats.ErrorMessages = append(r.stats.ErrorMessages, fmt.Sprintf("%s: %v", path, err))
			s.logger.Warn("unreadable desktop entry", "path", path, "error", err)
			continue
		}
		r.stats.FilesParsed++
		if item == nil {
			r.stats.FilesSkipped++
			continue
		}
		r.items = append(r.items, *item)
	}
	return r, nil
}

// ParseFile reads one desktop entry. It returns a nil item without error when
// the entry is valid but must not be shown.
func ParseFile(path, id string) (*types.Item, error) {
	kf, err := xdg.LoadKeyFile(path)
	if err != nil {
		return nil, err
	}
	if !kf.GroupExists(desktopGroup) {
		return nil, fmt.Errorf("missing [%s] group", desktopGroup)
	}
	return fromKeyFile(kf, id, path), nil
}

func fromKeyFile(kf *keyfile.KeyFile, id, path string) *types.Item {
	if xdg.Bool(kf, desktopGroup, "NoDisplay") || xdg.Bool(kf, desktopGroup, "Hidden") {
		return nil
	}
	if t, _ := xdg.String(kf, desktopGroup, "Type"); t != "Application" {
		return nil
	}

	name, _ := xdg.String(kf, desktopGroup, "Name")
	exec, _ := xdg.String(kf, desktopGroup, "Exec")
	if name == "" || exec == "" {
		return nil
	}

	item := &types.Item{
		ID:       id,
		Name:     name,
		Exec:     exec,
		Keywords: xdg.List(kf, desktopGroup, "Keywords"),
		Path:     path,
	}
	item.Icon, _ = xdg.String(kf, desktopGroup, "Icon")
	item.Description, _ = xdg.String(kf, desktopGroup, "Comment")
	return item
}
