package matcher

import (
	"fmt"
	"strings"

	"github.com/codyseavey/tcg-matcher/internal/models"
)

// UnsupportedGameError is returned when a caller explicitly asks for a game
// the matcher has no rules for.
type UnsupportedGameError struct {
	Tag string
}

func (e *UnsupportedGameError) Error() string {
	return fmt.Sprintf("TCG type '%s' not supported", e.Tag)
}

var gameAliases = map[string]models.Game{
	"pokemon":  models.GamePokemon,
	"pokémon":  models.GamePokemon,
	"ptcg":     models.GamePokemon,
	"yugioh":   models.GameYugioh,
	"yu-gi-oh": models.GameYugioh,
	"ygo":      models.GameYugioh,
	"magic":    models.GameMagic,
	"mtg":      models.GameMagic,
}

// ParseGame resolves an explicit game tag, case-insensitively
func ParseGame(tag string) (models.Game, error) {
	if game, ok := gameAliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return game, nil
	}
	return "", &UnsupportedGameError{Tag: tag}
}

// ExtractFamily returns the grouping key for a raw card name, or "" when the
// name cannot be classified.
func ExtractFamily(game models.Game, rawName string) string {
	switch game {
	case models.GamePokemon:
		return pokemonFamily(rawName)
	case models.GameYugioh:
		return yugiohFamily(rawName)
	case models.GameMagic:
		return magicFamily(rawName)
	default:
		return ""
	}
}

// Preprocess normalizes a card name and canonicalizes the game's rarity,
// mechanic and edition vocabulary, dropping collector numbers and set codes.
// Preprocess(Preprocess(x)) == Preprocess(x).
func Preprocess(game models.Game, name string) string {
	switch game {
	case models.GamePokemon:
		return pokemonRules.preprocess(name)
	case models.GameYugioh:
		return yugiohRules.preprocess(name)
	case models.GameMagic:
		return magicRules.preprocess(name)
	default:
		return collapseTokens(Normalize(stripCollectorNumbers(name)))
	}
}
