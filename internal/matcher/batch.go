package matcher

import (
	"math"

	"github.com/codyseavey/tcg-matcher/internal/models"
)

const (
	// DefaultThreshold is the minimum composite similarity (0-1) for a match
	DefaultThreshold = 0.85
	// ExploratoryThreshold trades precision for recall
	ExploratoryThreshold = 0.80
	// DefaultFallbackBucketLimit caps which buckets an unclassified query is
	// compared against: larger buckets are assumed to be well classified.
	DefaultFallbackBucketLimit = 20
)

// Options tunes a batch match. Threshold is taken as given, so 0 accepts any
// scored candidate; only a negative or NaN Threshold falls back to
// DefaultThreshold. A non-positive FallbackBucketLimit takes the default.
type Options struct {
	Threshold           float64
	FallbackBucketLimit int
}

// DefaultOptions returns the production threshold and fallback limit
func DefaultOptions() Options {
	return Options{
		Threshold:           DefaultThreshold,
		FallbackBucketLimit: DefaultFallbackBucketLimit,
	}
}

func (o Options) withDefaults() Options {
	if o.Threshold < 0 || math.IsNaN(o.Threshold) {
		o.Threshold = DefaultThreshold
	}
	if o.FallbackBucketLimit <= 0 {
		o.FallbackBucketLimit = DefaultFallbackBucketLimit
	}
	return o
}

// MatchResult is the best candidate found for a query
type MatchResult struct {
	Card         string      `json:"card"`
	Score        float64     `json:"score"`
	ScoresDetail ScoreDetail `json:"scores_detail"`
}

// MatchTable maps each distinct query to its best match, or nil
type MatchTable map[string]*MatchResult

// Matched counts the queries that found a match
func (t MatchTable) Matched() int {
	n := 0
	for _, m := range t {
		if m != nil {
			n++
		}
	}
	return n
}

// MatchInGroup scores query against every candidate and returns the highest
// scoring one at or above threshold. Ties go to the earliest candidate.
func MatchInGroup(game models.Game, query string, candidates []string, threshold float64) *MatchResult {
	threshold = Options{Threshold: threshold}.withDefaults().Threshold
	processed := make([]string, len(candidates))
	for i, c := range candidates {
		processed[i] = Preprocess(game, c)
	}
	return bestInBucket(Preprocess(game, query), candidates, processed, threshold*100)
}

func bestInBucket(query string, candidates, processed []string, minScore float64) *MatchResult {
	var best *MatchResult
	for i, c := range candidates {
		ps := scorePreprocessed(query, processed[i])
		if ps.Final < minScore {
			continue
		}
		if best == nil || ps.Final > best.Score {
			best = &MatchResult{Card: c, Score: ps.Final, ScoresDetail: ps.Detail}
		}
	}
	return best
}

// Resolve finds the best match for one query in a prebuilt group. When the
// query's family has a bucket only that bucket is searched; otherwise the
// ungrouped bucket and every bucket no larger than FallbackBucketLimit are.
// Resolve never mutates g and is safe to call concurrently.
func Resolve(game models.Game, query string, g CandidateGroup, opts Options) *MatchResult {
	opts = opts.withDefaults()
	q := Preprocess(game, query)
	minScore := opts.Threshold * 100

	if key := ExtractFamily(game, query); key != "" {
		if bucket, ok := g.Buckets[key]; ok {
			return bestInBucket(q, bucket, g.processedBucket(game, key), minScore)
		}
	}

	var best *MatchResult
	consider := func(key string) {
		m := bestInBucket(q, g.Buckets[key], g.processedBucket(game, key), minScore)
		if m != nil && (best == nil || m.Score > best.Score) {
			best = m
		}
	}

	if _, ok := g.Buckets[UngroupedKey]; ok {
		consider(UngroupedKey)
	}
	for _, key := range g.Keys {
		if key == UngroupedKey || len(g.Buckets[key]) > opts.FallbackBucketLimit {
			continue
		}
		consider(key)
	}
	return best
}

// BatchMatch groups candidates once and resolves every query against them.
// The table has exactly one entry per distinct query.
func BatchMatch(game models.Game, queries, candidates []string, opts Options) MatchTable {
	return matchAll(game, queries, Group(game, candidates), opts)
}

func matchAll(game models.Game, queries []string, g CandidateGroup, opts Options) MatchTable {
	table := make(MatchTable, len(queries))
	for _, q := range queries {
		if _, done := table[q]; done {
			continue
		}
		table[q] = Resolve(game, q, g, opts)
	}
	return table
}
