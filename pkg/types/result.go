package types

// MatchCandidate is one ranked entry produced by a single ranking call.
type MatchCandidate struct {
	Item Item

	// Scoring
	FuzzyScore    float64 // Textual match quality, 0 for the empty query
	FrecencyScore float64 // Decayed usage score at ranking time
	CombinedScore float64 // Ordering key, only meaningful within one call
}
