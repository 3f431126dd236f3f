// Package launcher owns the catalog snapshot, launch history, ranker and
// icon cache for one session.
//
// # Basic Usage
//
//	store, closer, err := launcher.OpenStore(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	l, err := launcher.New(ctx, cfg, launcher.Deps{Store: store})
//	if err != nil {
//	    return err
//	}
//
//	for _, c := range l.Search("fire") {
//	    fmt.Println(c.Item.Name, c.CombinedScore)
//	}
//
//	item, err := l.Launch(ctx, "firefox")
//	if errors.Is(err, launcher.ErrPersist) {
//	    // launched, but history was not saved
//	}
//
// # Launch Flow
//
// Launch spawns the item's command detached from the launcher, then records
// the launch and persists history. A failed spawn records nothing. A failed
// save keeps the in-memory record and the running process.
//
// # Concurrency
//
// All methods are safe for concurrent use. Ranking is serialized because
// the ranker reuses scratch memory; catalog reads take a shared lock; only
// one Reload runs at a time.
package launcher
