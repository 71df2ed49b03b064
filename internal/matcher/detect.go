package matcher

import (
	"strings"

	"github.com/codyseavey/tcg-matcher/internal/models"
)

const detectSampleSize = 20

var gameIndicators = map[models.Game][]string{
	models.GamePokemon: {"pokemon", "pikachu", "charizard", "gx", "ex", "vmax"},
	models.GameYugioh:  {"yu-gi-oh", "yugioh", "spell", "trap", "xyz", "synchro"},
	models.GameMagic:   {"magic", "mtg", "planeswalker", "instant", "sorcery", "mana"},
}

// DetectGame guesses the game from the first names of a sample by counting
// which indicator keywords appear. Ties resolve pokemon, then yugioh, then
// magic; an empty sample is pokemon.
func DetectGame(sample []string) models.Game {
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}
	text := strings.ToLower(strings.Join(sample, " "))

	best, bestHits := models.GamePokemon, -1
	for _, game := range models.AllGames() {
		hits := 0
		for _, kw := range gameIndicators[game] {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = game, hits
		}
	}
	return best
}
