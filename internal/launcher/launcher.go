package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/launchrank/internal/catalog"
	"github.com/dshills/launchrank/internal/config"
	"github.com/dshills/launchrank/internal/frecency"
	"github.com/dshills/launchrank/internal/icons"
	"github.com/dshills/launchrank/internal/ranker"
	"github.com/dshills/launchrank/pkg/types"
)

var (
	// ErrLaunchFailed wraps a spawn failure; nothing was recorded
	ErrLaunchFailed = errors.New("launch failed")
	// ErrPersist wraps a history save failure after a successful launch
	ErrPersist = errors.New("history not saved")
	// ErrReloadInProgress is returned when another Reload holds the lock
	ErrReloadInProgress = errors.New("reload already in progress")
	// ErrNoStore is returned by New without a frecency store
	ErrNoStore = errors.New("frecency store is required")
)

// Catalog produces the full list of launchable items.
type Catalog func(ctx context.Context) ([]types.Item, error)

// StaticCatalog serves a fixed item list. Each call returns a fresh copy.
func StaticCatalog(items []types.Item) Catalog {
	return func(context.Context) ([]types.Item, error) {
		out := make([]types.Item, len(items))
		copy(out, items)
		return out, nil
	}
}

// DirCatalog scans desktop entries in dirs, or the XDG defaults when dirs
// is empty.
func DirCatalog(dirs []string, logger *slog.Logger) Catalog {
	return func(ctx context.Context) ([]types.Item, error) {
		d := dirs
		if len(d) == 0 {
			d = catalog.DefaultDirs()
		}
		res, err := catalog.Scan(ctx, d, catalog.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		logger.Debug("catalog scanned",
			"dirs", res.Stats.DirsScanned,
			"items", len(res.Items),
			"skipped", res.Stats.FilesSkipped,
			"failed", res.Stats.FilesFailed)
		return res.Items, nil
	}
}

// Deps are the collaborators of a Launcher. Store is required; the rest
// default from the config.
type Deps struct {
	Catalog Catalog
	Store   *frecency.Store
	Icons   *icons.Cache
	Runner  Runner
	Logger  *slog.Logger
}

// Status summarizes the session.
type Status struct {
	Items             int         `json:"items"`
	HistoryEntries    int         `json:"history_entries"`
	HistoryLocation   string      `json:"history_location"`
	IconCacheLen      int         `json:"icon_cache_len"`
	IconCacheCapacity int         `json:"icon_cache_capacity"`
	IconStats         icons.Stats `json:"icon_stats"`
	MaxResults        int         `json:"max_results"`
	LastReload        time.Time   `json:"last_reload"`
	Reloading         bool        `json:"reloading"`
}

// HistoryEntry is one launched item with its current score.
// InCatalog is false for ids whose desktop entry is gone.
type HistoryEntry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Frequency    uint32  `json:"frequency"`
	LastAccessed uint64  `json:"last_accessed"`
	Score        float64 `json:"score"`
	InCatalog    bool    `json:"in_catalog"`
}

// Launcher is the owning handle for one session.
// All methods are safe for concurrent use.
type Launcher struct {
	maxResults int
	catalog    Catalog
	store      *frecency.Store
	icons      *icons.Cache
	runner     Runner
	logger     *slog.Logger

	mu         sync.RWMutex
	items      []types.Item
	byID       map[string]int
	lastReload time.Time

	rankMu sync.Mutex
	ranker *ranker.Ranker

	reload ReloadLock
}

// New builds a launcher and loads the initial catalog.
// Icons and Runner default from cfg when nil; Store is required.
func New(ctx context.Context, cfg *config.Config, deps Deps) (*Launcher, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Store == nil {
		return nil, ErrNoStore
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	l := &Launcher{
		maxResults: cfg.MaxResults,
		catalog:    deps.Catalog,
		store:      deps.Store,
		icons:      deps.Icons,
		runner:     deps.Runner,
		logger:     logger,
		byID:       make(map[string]int),
		ranker: ranker.New(
			ranker.WithMinScore(cfg.MinScore),
			ranker.WithFrecencyWeight(cfg.FrecencyWeight),
		),
	}
	if l.maxResults <= 0 {
		l.maxResults = config.Default().MaxResults
	}
	if l.catalog == nil {
		l.catalog = DirCatalog(cfg.ApplicationDirs, logger)
	}
	if l.icons == nil {
		l.icons = icons.NewCache(icons.NewThemeBackend(),
			icons.WithCapacity(cfg.IconCacheCapacity),
			icons.WithSize(cfg.IconSize),
			icons.WithTheme(cfg.IconTheme))
	}
	if l.runner == nil {
		l.runner = ShellRunner{Logger: logger}
	}

	if _, err := l.Reload(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return l, nil
}

// Reload replaces the catalog snapshot and drops cached icon lookups.
// It returns the new item count.
func (l *Launcher) Reload(ctx context.Context) (int, error) {
	if !l.reload.TryAcquire() {
		return 0, ErrReloadInProgress
	}
	defer l.reload.Release()

	items, err := l.catalog(ctx)
	if err != nil {
		return 0, err
	}

	byID := make(map[string]int, len(items))
	kept := make([]types.Item, 0, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			l.logger.Warn("dropping invalid catalog item", "id", it.ID, "error", err)
			continue
		}
		if _, dup := byID[it.ID]; dup {
			l.logger.Warn("dropping duplicate catalog item", "id", it.ID)
			continue
		}
		byID[it.ID] = len(kept)
		kept = append(kept, it)
	}

	l.mu.Lock()
	l.items = kept
	l.byID = byID
	l.lastReload = time.Now()
	l.mu.Unlock()

	l.icons.Clear()
	return len(kept), nil
}

// Items returns a copy of the catalog snapshot.
func (l *Launcher) Items() []types.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]types.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Item looks an item up by id.
func (l *Launcher) Item(id string) (types.Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.byID[id]
	if !ok {
		return types.Item{}, false
	}
	return l.items[i], true
}

// Search ranks the catalog against query, returning at most the configured
// number of results.
func (l *Launcher) Search(query string) []types.MatchCandidate {
	return l.SearchLimit(query, l.maxResults)
}

// SearchLimit ranks the catalog against query with an explicit limit.
func (l *Launcher) SearchLimit(query string, limit int) []types.MatchCandidate {
	l.mu.RLock()
	items := l.items
	l.mu.RUnlock()

	// items is never mutated in place; Reload swaps the slice
	l.rankMu.Lock()
	defer l.rankMu.Unlock()
	return l.ranker.Rank(query, items, l.store, limit)
}

// Launch starts the item, then records and persists the launch. A returned
// error wrapping ErrPersist means the item is running and the launch is
// counted in memory.
func (l *Launcher) Launch(ctx context.Context, id string) (types.Item, error) {
	item, ok := l.Item(id)
	if !ok {
		return types.Item{}, fmt.Errorf("%w: %s", types.ErrItemNotFound, id)
	}

	command := item.LaunchCommand()
	if command == "" {
		return item, fmt.Errorf("%w: %w: %s", ErrLaunchFailed, types.ErrMissingExec, id)
	}

	l.logger.Info("launching", "id", id, "command", command)
	if err := l.runner.Start(ctx, command); err != nil {
		l.logger.Error("launch failed", "id", id, "command", command, "error", err)
		return item, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}

	l.store.RecordLaunch(id)
	if err := l.store.Persist(ctx); err != nil {
		l.logger.Warn("failed to save history", "location", l.store.Location(), "error", err)
		return item, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return item, nil
}

// ResolveIcon maps an icon reference to a file path.
func (l *Launcher) ResolveIcon(ref string) (string, bool) {
	return l.icons.Resolve(ref)
}

// ResolveIconSize maps an icon reference at an explicit size in the
// configured theme. size <= 0 uses the configured size.
func (l *Launcher) ResolveIconSize(ref string, size int) (string, bool) {
	return l.icons.ResolveWith(ref, size, l.icons.Theme())
}

// ResolveIconWith maps an icon reference at an explicit size and theme.
func (l *Launcher) ResolveIconWith(ref string, size int, theme string) (string, bool) {
	return l.icons.ResolveWith(ref, size, theme)
}

// Entry returns the launch history of id.
func (l *Launcher) Entry(id string) (types.FrecencyEntry, bool) {
	return l.store.Entry(id)
}

// History lists launched items by descending score. limit <= 0 returns all.
func (l *Launcher) History(limit int) []HistoryEntry {
	ranked := l.store.Ranking()
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]HistoryEntry, 0, len(ranked))
	for _, r := range ranked {
		e := HistoryEntry{
			ID:           r.ID,
			Frequency:    r.Entry.Frequency,
			LastAccessed: r.Entry.LastAccessed,
			Score:        r.Score,
		}
		if item, ok := l.Item(r.ID); ok {
			e.Name = item.Name
			e.InCatalog = true
		}
		out = append(out, e)
	}
	return out
}

// Status reports catalog, history and icon cache sizes.
func (l *Launcher) Status() Status {
	l.mu.RLock()
	items, last := len(l.items), l.lastReload
	l.mu.RUnlock()

	return Status{
		Items:             items,
		HistoryEntries:    l.store.Len(),
		HistoryLocation:   l.store.Location(),
		IconCacheLen:      l.icons.Len(),
		IconCacheCapacity: l.icons.Capacity(),
		IconStats:         l.icons.Stats(),
		MaxResults:        l.maxResults,
		LastReload:        last,
		Reloading:         l.reload.IsLocked(),
	}
}
