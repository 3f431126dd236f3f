package types

// FrecencyEntry is the usage record kept for an item id that has been
// launched at least once.
type FrecencyEntry struct {
	Frequency    uint32 `json:"frequency"`
	LastAccessed uint64 `json:"last_accessed"` // Unix epoch seconds
}
