package launcher

import "sync/atomic"

// ReloadLock provides non-blocking lock semantics using atomic operations.
// A second caller fails fast instead of queueing behind a catalog scan.
type ReloadLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if a reload holds it.
func (l *ReloadLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that acquired the lock.
func (l *ReloadLock) Release() {
	l.state.Store(0)
}

// IsLocked reports whether a reload is running.
func (l *ReloadLock) IsLocked() bool {
	return l.state.Load() == 1
}
