package ranker

import (
	"sort"
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"golang.org/x/text/cases"

	"github.com/dshills/launchrank/pkg/types"
)

const (
	// FrecencyWeight scales the frecency score before it is added to the
	// fuzzy score. Adjustable with WithFrecencyWeight.
	FrecencyWeight = 10.0

	// Scratch sizes matching fzf's own matcher
	slab16Size = 100 * 1024
	slab32Size = 2048
)

func init() {
	algo.Init("default")
}

// Scorer supplies the frecency score of an item id.
// frecency.Store implements it.
type Scorer interface {
	Score(id string) float64
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithMinScore drops candidates whose fuzzy score is below min.
// The empty query is unaffected.
func WithMinScore(min float64) Option {
	return func(r *Ranker) {
		if min >= 0 {
			r.minScore = min
		}
	}
}

// WithFrecencyWeight overrides FrecencyWeight.
// Non-positive weights are ignored; history must always break fuzzy ties.
func WithFrecencyWeight(w float64) Option {
	return func(r *Ranker) {
		if w > 0 {
			r.weight = w
		}
	}
}

// Ranker scores and orders items for a query.
// It reuses a matching scratch buffer, so callers serialize Rank calls.
type Ranker struct {
	minScore float64
	weight   float64
	slab     *util.Slab
	folder   cases.Caser
}

// New creates a Ranker.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		weight: FrecencyWeight,
		slab:   util.MakeSlab(slab16Size, slab32Size),
		folder: cases.Fold(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MinScore returns the fuzzy score threshold.
func (r *Ranker) MinScore() float64 {
	return r.minScore
}

// Rank returns at most limit candidates for query, best first.
// A limit of zero or less returns nil.
func (r *Ranker) Rank(query string, items []types.Item, scores Scorer, limit int) []types.MatchCandidate {
	if limit <= 0 {
		return nil
	}

	var results []types.MatchCandidate
	if query == "" {
		results = r.rankAll(items, scores)
	} else {
		results = r.rankMatches(query, items, scores)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// rankAll includes every item ordered by frecency, then alphabetically
func (r *Ranker) rankAll(items []types.Item, scores Scorer) []types.MatchCandidate {
	results := make([]types.MatchCandidate, 0, len(items))
	for _, item := range items {
		f := scoreOf(scores, item.ID)
		results = append(results, types.MatchCandidate{
			Item:          item,
			FuzzyScore:    0,
			FrecencyScore: f,
			CombinedScore: f,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.FrecencyScore != b.FrecencyScore {
			return a.FrecencyScore > b.FrecencyScore
		}
		return nameLess(a.Item, b.Item)
	})
	return results
}

// rankMatches keeps matching items ordered by combined score
func (r *Ranker) rankMatches(query string, items []types.Item, scores Scorer) []types.MatchCandidate {
	p := r.compile(query)

	results := make([]types.MatchCandidate, 0, 32)
	for _, item := range items {
		fuzzy, ok := r.match(p, item.Haystack())
		if !ok || fuzzy < r.minScore {
			continue
		}

		f := scoreOf(scores, item.ID)
		results = append(results, types.MatchCandidate{
			Item:          item,
			FuzzyScore:    fuzzy,
			FrecencyScore: f,
			CombinedScore: fuzzy + f*r.weight,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		return nameLess(a.Item, b.Item)
	})
	return results
}

// Score reports the fuzzy score of query against haystack and whether it
// matched at all
func (r *Ranker) Score(query, haystack string) (float64, bool) {
	if query == "" {
		return 0, true
	}
	return r.match(r.compile(query), haystack)
}

// pattern is a query prepared for matching
type pattern struct {
	runes         []rune
	caseSensitive bool
}

func (r *Ranker) compile(query string) pattern {
	sensitive := hasUpper(query)
	text := query
	if !sensitive {
		text = r.folder.String(query)
	}
	return pattern{
		runes:         algo.NormalizeRunes([]rune(text)),
		caseSensitive: sensitive,
	}
}

func (r *Ranker) match(p pattern, haystack string) (float64, bool) {
	text := haystack
	if !p.caseSensitive {
		// fzf only folds ASCII in its fast path, so fold both sides up
		// front and always match case-sensitively
		text = r.folder.String(haystack)
	}

	chars := util.ToChars([]byte(text))
	res, _ := algo.FuzzyMatchV2(true, true, true, &chars, p.runes, false, r.slab)
	if res.Start < 0 {
		return 0, false
	}
	return float64(res.Score), true
}

func hasUpper(s string) bool {
	for _, c := range s {
		if unicode.IsUpper(c) {
			return true
		}
	}
	return false
}

func nameLess(a, b types.Item) bool {
	na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if na != nb {
		return na < nb
	}
	return a.ID < b.ID
}

func scoreOf(scores Scorer, id string) float64 {
	if scores == nil {
		return 0
	}
	return scores.Score(id)
}
