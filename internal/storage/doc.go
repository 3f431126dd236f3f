// Package storage provides a SQLite-backed launch history.
//
// SQLiteHistory implements frecency.Backend, so it can replace the default
// JSON document without the store noticing:
//
//	backend, err := storage.NewSQLiteHistory("~/.local/share/launchrank/history.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	store := frecency.Load(ctx, backend)
//
// # Database Schema
//
// Tables:
//   - schema_version: applied migration versions
//   - launch_history: one row per launched item (item_id, frequency, last_accessed)
//
// Migrations are ordered by semantic version and applied on open.
//
// # Build Tags
//
// The default build uses the pure Go modernc.org/sqlite driver and needs no C
// compiler. Building with the sqlite_cgo tag switches to
// github.com/mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
package storage
