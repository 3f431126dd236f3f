// Package types provides shared type definitions for the launchrank core.
//
// This package defines domain types used across multiple components,
// including catalog items, frecency entries and ranked match candidates.
//
// # Core Types
//
// Item represents one launchable entry supplied by the catalog provider:
//
//	item := types.Item{
//	    ID:          "firefox",
//	    Name:        "Firefox",
//	    Exec:        "firefox %u",
//	    Icon:        "firefox",
//	    Keywords:    []string{"browser", "web"},
//	}
//
// FrecencyEntry is the persisted usage record for one item id:
//
//	entry := types.FrecencyEntry{Frequency: 3, LastAccessed: 1718000000}
//
// MatchCandidate is produced by the ranker for a single query and carries
// the textual score, the frecency score and the combined ordering key.
// Combined scores are only comparable within one ranking call.
//
// # Validation
//
//	if err := item.Validate(); err != nil {
//	    return err
//	}
package types
