package matcher

import "github.com/codyseavey/tcg-matcher/internal/models"

// AutoMatchResult is the outcome of AutoMatch
type AutoMatchResult struct {
	Game    models.Game    `json:"tcg_detected"`
	Matches MatchTable     `json:"matches"`
	Groups  CandidateGroup `json:"groups"`
}

// AutoMatch matches queries against candidates using the rules for tag, or
// for the detected game when tag is empty. The only error is an
// *UnsupportedGameError for an unknown tag.
func AutoMatch(queries, candidates []string, opts Options, tag string) (*AutoMatchResult, error) {
	game, err := SelectGame(tag, queries, candidates)
	if err != nil {
		return nil, err
	}

	g := Group(game, candidates)
	return &AutoMatchResult{Game: game, Matches: matchAll(game, queries, g, opts), Groups: g}, nil
}

// SelectGame parses tag when given, otherwise detects the game from the
// queries followed by the candidates.
func SelectGame(tag string, queries, candidates []string) (models.Game, error) {
	if tag != "" {
		return ParseGame(tag)
	}
	sample := make([]string, 0, min(len(queries)+len(candidates), detectSampleSize))
	for _, names := range [][]string{queries, candidates} {
		for _, n := range names {
			if len(sample) == detectSampleSize {
				break
			}
			sample = append(sample, n)
		}
	}
	return DetectGame(sample), nil
}
