package frecency

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/launchrank/pkg/types"
)

// fakeClock is a settable time source
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func testStore(t *testing.T, c *fakeClock) *Store {
	t.Helper()
	return New(NewFileBackend(filepath.Join(t.TempDir(), "history.json")), WithClock(c.Now))
}

func TestRecordLaunch(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testStore(t, clock)

	store.RecordLaunch("firefox")
	store.RecordLaunch("firefox")
	store.RecordLaunch("firefox")

	entry, ok := store.Entry("firefox")
	require.True(t, ok)
	assert.Equal(t, uint32(3), entry.Frequency)
	assert.Equal(t, uint64(1_700_000_000), entry.LastAccessed)
}

func TestRecordLaunchUpdatesTimestamp(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testStore(t, clock)

	store.RecordLaunch("code")
	clock.Advance(2 * time.Hour)
	store.RecordLaunch("code")

	entry, _ := store.Entry("code")
	assert.Equal(t, uint32(2), entry.Frequency)
	assert.Equal(t, uint64(1_700_000_000+7200), entry.LastAccessed)
}

func TestScoreNeverLaunched(t *testing.T) {
	store := testStore(t, newFakeClock(time.Now()))
	assert.Equal(t, 0.0, store.Score("missing"))
}

func TestScoreFreshEntry(t *testing.T) {
	now := uint64(time.Now().Unix())
	score := EntryScore(types.FrecencyEntry{Frequency: 10, LastAccessed: now}, now)
	assert.Greater(t, score, 9.0)
	assert.LessOrEqual(t, score, 10.0)
}

func TestScoreHalfLife(t *testing.T) {
	const day = 86400
	tests := []struct {
		name    string
		ageDays uint64
		want    float64
	}{
		{name: "fresh", ageDays: 0, want: 8},
		{name: "one half-life", ageDays: 7, want: 4},
		{name: "two half-lives", ageDays: 14, want: 2},
		{name: "four half-lives", ageDays: 28, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := types.FrecencyEntry{Frequency: 8, LastAccessed: 1_000_000}
			got := EntryScore(entry, 1_000_000+tt.ageDays*day)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreClampsFutureTimestamps(t *testing.T) {
	entry := types.FrecencyEntry{Frequency: 5, LastAccessed: 2_000_000}
	assert.Equal(t, 5.0, EntryScore(entry, 1_000_000))
}

func TestScoreMonotonicDecay(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testStore(t, clock)
	store.RecordLaunch("term")
	store.RecordLaunch("term")

	prev := store.Score("term")
	for i := 0; i < 60; i++ {
		clock.Advance(13 * time.Hour)
		cur := store.Score("term")
		assert.LessOrEqual(t, cur, prev, "score rose without a launch at step %d", i)
		prev = cur
	}

	store.RecordLaunch("term")
	assert.Greater(t, store.Score("term"), prev)
}

func TestPersistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "launchrank", "history.json")
	clock := newFakeClock(time.Unix(1_700_000_000, 0))

	store := Load(context.Background(), NewFileBackend(path), WithClock(clock.Now))
	store.RecordLaunch("firefox")
	clock.Advance(time.Minute)
	store.RecordLaunch("chromium")
	store.RecordLaunch("firefox")

	require.NoError(t, store.Persist(context.Background()))

	reloaded := LoadFile(path, WithClock(clock.Now))
	assert.Equal(t, store.Entries(), reloaded.Entries())
	assert.Equal(t, path, reloaded.Location())
}

func TestLoadMissingFile(t *testing.T) {
	store := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal(t, 0, store.Len())
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "{not json"},
		{name: "negative frequency", content: `{"apps":{"a":{"frequency":-1,"last_accessed":1}}}`},
		{name: "wrong shape", content: `{"apps":[1,2,3]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "history.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			store := LoadFile(path)
			assert.Equal(t, 0, store.Len())

			// The store stays usable after a recovered failure
			store.RecordLaunch("a")
			assert.NoError(t, store.Persist(context.Background()))
		})
	}
}

func TestLoadNullApps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apps":null}`), 0644))

	store := LoadFile(path)
	assert.Equal(t, 0, store.Len())
	store.RecordLaunch("x")
	assert.Equal(t, 1, store.Len())
}

func TestPersistFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))

	// Parent "directory" is a regular file, so MkdirAll fails
	store := New(NewFileBackend(filepath.Join(blocker, "history.json")))
	store.RecordLaunch("firefox")

	err := store.Persist(context.Background())
	assert.Error(t, err)

	// In-memory state is untouched by the failed save
	entry, ok := store.Entry("firefox")
	require.True(t, ok)
	assert.Equal(t, uint32(1), entry.Frequency)
}

func TestRanking(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testStore(t, clock)

	store.RecordLaunch("old")
	store.RecordLaunch("old")
	store.RecordLaunch("old")
	clock.Advance(30 * 24 * time.Hour)
	store.RecordLaunch("recent")
	store.RecordLaunch("b-tie")
	store.RecordLaunch("a-tie")

	ranking := store.Ranking()
	require.Len(t, ranking, 4)
	assert.Equal(t, "a-tie", ranking[0].ID)
	assert.Equal(t, "b-tie", ranking[1].ID)
	assert.Equal(t, "recent", ranking[2].ID)
	assert.Equal(t, "old", ranking[3].ID)
}

func TestEntriesIsCopy(t *testing.T) {
	store := testStore(t, newFakeClock(time.Unix(1_700_000_000, 0)))
	store.RecordLaunch("a")

	snapshot := store.Entries()
	delete(snapshot, "a")
	assert.Equal(t, 1, store.Len())
}

// gatedBackend blocks its first Save until release is closed
type gatedBackend struct {
	Backend
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *gatedBackend) Save(ctx context.Context, entries map[string]types.FrecencyEntry) error {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.Backend.Save(ctx, entries)
}

func TestPersistSerializesSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	backend := &gatedBackend{
		Backend: NewFileBackend(path),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := New(backend)
	ctx := context.Background()

	store.RecordLaunch("a")
	first := make(chan error, 1)
	go func() { first <- store.Persist(ctx) }()
	<-backend.entered

	store.RecordLaunch("b")
	second := make(chan error, 1)
	go func() { second <- store.Persist(ctx) }()

	select {
	case err := <-second:
		t.Fatalf("second persist finished while the first save was blocked: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(backend.release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	reloaded := LoadFile(path)
	assert.Equal(t, store.Entries(), reloaded.Entries())
	assert.Equal(t, 2, reloaded.Len())
}
