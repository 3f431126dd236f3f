// Package frecency tracks how often and how recently catalog items are
// launched and turns that history into a decaying score.
//
// A Store is loaded once, mutated by RecordLaunch and written back with
// Persist:
//
//	store := frecency.LoadFile(path)
//	store.RecordLaunch("firefox")
//	if err := store.Persist(ctx); err != nil {
//	    // report, the launch already happened
//	}
//
// # Scoring
//
// The score of an entry is
//
//	frequency * 0.5^(ageDays / 7)
//
// where ageDays is the time since the last launch, clamped at zero so a
// clock that moved backwards never inflates a score. Items that were never
// launched score 0.
//
// # Persistence
//
// Durable state goes through a Backend. FileBackend stores a JSON document
// and replaces it atomically on save; the storage package provides a SQLite
// backend. Missing or malformed state loads as an empty store.
package frecency
