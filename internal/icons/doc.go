// Package icons resolves icon references to file paths through a bounded
// LRU cache that remembers misses as well as hits.
//
// # Basic Usage
//
//	cache := icons.NewCache(icons.NewThemeBackend(), icons.WithSize(48))
//	if path, ok := cache.Resolve("firefox"); ok {
//	    // draw path
//	}
//
// # Resolution Order
//
//  1. An absolute path that exists is returned as is.
//  2. A cached result is returned, including a cached "not found".
//  3. Otherwise the backend is queried once and its answer is cached.
//
// The cache is safe for concurrent use. Two goroutines missing on the same
// icon at the same time may both query the backend; the backend must
// therefore be idempotent.
package icons
