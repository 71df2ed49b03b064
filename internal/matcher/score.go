package matcher

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/codyseavey/tcg-matcher/internal/models"
)

const (
	fullMatchWeight   = 0.4
	tokenMatchWeight  = 0.3
	sortedMatchWeight = 0.2
	prefixBonusWeight = 0.1

	prefixBonusValue = 0.1
)

// ScoreDetail breaks a composite score into its strategies. Values are on
// the 0-100 scale.
type ScoreDetail struct {
	FullMatch   float64 `json:"full_match"`
	TokenMatch  float64 `json:"token_match"`
	SortedMatch float64 `json:"sorted_match"`
	PrefixBonus float64 `json:"prefix_bonus"`
}

// PairScore is the composite comparison of a query against one candidate
type PairScore struct {
	Detail ScoreDetail
	Final  float64 // 0-100
}

// ScorePair preprocesses both names and blends four Jaro-Winkler strategies
// into a single score.
func ScorePair(game models.Game, query, candidate string) PairScore {
	return scorePreprocessed(Preprocess(game, query), Preprocess(game, candidate))
}

func scorePreprocessed(q, c string) PairScore {
	qTokens := strings.Fields(q)
	cTokens := strings.Fields(c)

	full := Similarity(q, c)

	token := 0.0
	if len(qTokens) > 0 {
		sum := 0.0
		for _, qt := range qTokens {
			best := 0.0
			for _, ct := range cTokens {
				best = max(best, Similarity(qt, ct))
			}
			sum += best
		}
		token = sum / float64(len(qTokens))
	}

	sorted := Similarity(sortedTokens(qTokens), sortedTokens(cTokens))

	// Missing when either side is empty; counts as zero
	prefix := 0.0
	if q != "" && c != "" && firstRune(q) == firstRune(c) {
		prefix = prefixBonusValue
	}

	final := fullMatchWeight*full + tokenMatchWeight*token +
		sortedMatchWeight*sorted + prefixBonusWeight*prefix

	return PairScore{
		Detail: ScoreDetail{
			FullMatch:   full * 100,
			TokenMatch:  token * 100,
			SortedMatch: sorted * 100,
			PrefixBonus: prefix * 100,
		},
		Final: final * 100,
	}
}

func sortedTokens(tokens []string) string {
	s := make([]string, len(tokens))
	copy(s, tokens)
	sort.Strings(s)
	return strings.Join(s, " ")
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
