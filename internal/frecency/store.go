package frecency

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/dshills/launchrank/pkg/types"
)

const (
	// HalfLifeDays is how long it takes a score to halve without launches.
	HalfLifeDays = 7.0

	secondsPerDay = 86400.0
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for launches and scoring.
// A nil clock keeps time.Now.
func WithClock(clock Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger sets the logger used to report recovered load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store maps item ids to their launch history.
// All methods are safe for concurrent use. Persist calls are serialized so
// the backend always receives snapshots in the order they were taken.
type Store struct {
	mu      sync.RWMutex
	entries map[string]types.FrecencyEntry

	// persistMu is held across snapshot and Save
	persistMu sync.Mutex

	backend Backend
	now     Clock
	logger  *slog.Logger
}

// New creates an empty store bound to backend.
// Nothing is read until Load; use Load to start from durable state.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]types.FrecencyEntry),
		backend: backend,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads durable state from backend. Any failure yields an empty store.
func Load(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := New(backend, opts...)

	entries, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoHistory):
		s.logger.Debug("no frecency history yet", "location", backend.Location())
	case err != nil:
		s.logger.Warn("discarding unreadable frecency history",
			"location", backend.Location(), "error", err)
	case entries != nil:
		s.entries = entries
	}
	return s
}

// LoadFile loads a store from the JSON document at path.
func LoadFile(path string, opts ...Option) *Store {
	return Load(context.Background(), NewFileBackend(path), opts...)
}

// RecordLaunch bumps the frequency of id and stamps it with the current time.
// The change is in memory only until the next Persist.
func (s *Store) RecordLaunch(id string) {
	now := s.epoch()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		entry = types.FrecencyEntry{Frequency: 0, LastAccessed: now}
	}
	entry.Frequency++
	entry.LastAccessed = now
	s.entries[id] = entry
}

// Score returns the decayed score of id, or 0 if it was never launched.
func (s *Store) Score(id string) float64 {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return EntryScore(entry, s.epoch())
}

// EntryScore computes the score of entry as seen at epoch seconds now.
// A LastAccessed in the future counts as age zero.
func EntryScore(entry types.FrecencyEntry, now uint64) float64 {
	var ageSecs uint64
	if now > entry.LastAccessed {
		ageSecs = now - entry.LastAccessed
	}
	ageDays := float64(ageSecs) / secondsPerDay
	return float64(entry.Frequency) * math.Pow(0.5, ageDays/HalfLifeDays)
}

// Persist writes the full mapping through the backend.
// A concurrent Persist waits for the running save to finish and then writes
// a fresh snapshot, so an older snapshot never lands after a newer one.
func (s *Store) Persist(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	return s.backend.Save(ctx, s.Entries())
}

// Entries returns a copy of the current mapping.
func (s *Store) Entries() map[string]types.FrecencyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]types.FrecencyEntry, len(s.entries))
	for id, e := range s.entries {
		out[id] = e
	}
	return out
}

// Entry returns the record for id and whether it exists.
func (s *Store) Entry(id string) (types.FrecencyEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of ids with history.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Location describes where the store is persisted.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Ranked is an id with its current score.
type Ranked struct {
	ID    string
	Entry types.FrecencyEntry
	Score float64
}

// Ranking lists every entry by descending score.
// Equal scores are ordered by id.
func (s *Store) Ranking() []Ranked {
	now := s.epoch()

	s.mu.RLock()
	out := make([]Ranked, 0, len(s.entries))
	for id, e := range s.entries {
		out = append(out, Ranked{ID: id, Entry: e, Score: EntryScore(e, now)})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) epoch() uint64 {
	secs := s.now().Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs)
}
