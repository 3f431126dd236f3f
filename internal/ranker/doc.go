// Package ranker orders catalog items against a typed query.
//
// An empty query lists every item by descending frecency, ties broken by
// case-insensitive name. A non-empty query is matched against each item's
// name and keywords with fzf's FuzzyMatchV2 scorer, which rewards
// contiguous runs and matches that start at a word boundary. Items with no
// subsequence match are dropped. The remaining candidates are ordered by
//
//	combined = fuzzy + frecency * FrecencyWeight
//
// so usage history separates textually similar items without overturning
// a clearly better textual match.
//
// Matching uses smart case: a query with no uppercase letters is compared
// against Unicode case-folded text, a query containing an uppercase letter
// is compared exactly.
//
// A Ranker reuses scratch memory between calls and is not safe for
// concurrent use.
package ranker
