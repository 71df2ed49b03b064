package matcher

import (
	"encoding/json"

	"github.com/codyseavey/tcg-matcher/internal/models"
)

// UngroupedKey is the bucket for candidates no family could be extracted for
const UngroupedKey = "_ungrouped"

// CandidateGroup partitions candidate names by family key. Keys keeps the
// buckets in first-seen order, with UngroupedKey last when present. Every
// candidate lands in exactly one bucket.
type CandidateGroup struct {
	Keys    []string
	Buckets map[string][]string

	// preprocessed candidate names, parallel to Buckets
	game      models.Game
	processed map[string][]string
}

// Group buckets candidates by their family key. It builds a fresh value on
// every call.
func Group(game models.Game, candidates []string) CandidateGroup {
	g := CandidateGroup{
		Buckets:   make(map[string][]string),
		game:      game,
		processed: make(map[string][]string),
	}
	var ungrouped []string

	for _, c := range candidates {
		key := ExtractFamily(game, c)
		if key == "" || key == UngroupedKey {
			ungrouped = append(ungrouped, c)
			continue
		}
		if _, ok := g.Buckets[key]; !ok {
			g.Keys = append(g.Keys, key)
		}
		g.Buckets[key] = append(g.Buckets[key], c)
		g.processed[key] = append(g.processed[key], Preprocess(game, c))
	}

	if len(ungrouped) > 0 {
		g.Keys = append(g.Keys, UngroupedKey)
		g.Buckets[UngroupedKey] = ungrouped
		for _, c := range ungrouped {
			g.processed[UngroupedKey] = append(g.processed[UngroupedKey], Preprocess(game, c))
		}
	}
	return g
}

// processedBucket returns the preprocessed names of a bucket, computing them
// when the group was assembled by hand or for another game.
func (g CandidateGroup) processedBucket(game models.Game, key string) []string {
	if g.game == game && g.processed != nil {
		if p, ok := g.processed[key]; ok && len(p) == len(g.Buckets[key]) {
			return p
		}
	}
	bucket := g.Buckets[key]
	out := make([]string, len(bucket))
	for i, c := range bucket {
		out[i] = Preprocess(game, c)
	}
	return out
}

// Len returns the number of buckets
func (g CandidateGroup) Len() int {
	return len(g.Keys)
}

// Size returns the total number of candidates across all buckets
func (g CandidateGroup) Size() int {
	n := 0
	for _, b := range g.Buckets {
		n += len(b)
	}
	return n
}

// MarshalJSON encodes the group as its bucket map, {} when empty
func (g CandidateGroup) MarshalJSON() ([]byte, error) {
	if g.Buckets == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g.Buckets)
}
