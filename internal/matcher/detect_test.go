package matcher

import (
	"testing"

	"github.com/codyseavey/tcg-matcher/internal/models"
)

func TestDetectGame(t *testing.T) {
	tests := []struct {
		name   string
		sample []string
		want   models.Game
	}{
		{"empty sample", nil, models.GamePokemon},
		{"no indicators", []string{"Mirror Force", "Sol Ring"}, models.GamePokemon},
		{"pokemon names", []string{"Pikachu VMAX", "Charizard GX"}, models.GamePokemon},
		{"yugioh types", []string{"Pot of Greed Spell", "Mirror Force Trap"}, models.GameYugioh},
		{"magic types", []string{"Lightning Bolt Instant", "Sol Ring mana rock"}, models.GameMagic},
		{"tie prefers pokemon", []string{"Pikachu Spell"}, models.GamePokemon},
		{"tie prefers yugioh over magic", []string{"Trap Hole Sorcery"}, models.GameYugioh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectGame(tt.sample); got != tt.want {
				t.Errorf("DetectGame(%q) = %q, want %q", tt.sample, got, tt.want)
			}
		})
	}
}

func TestDetectGameSamplesFirstNames(t *testing.T) {
	sample := make([]string, 0, detectSampleSize+1)
	for range detectSampleSize {
		sample = append(sample, "Mirror Force")
	}
	sample = append(sample, "Lightning Bolt Instant Sorcery")

	if got := DetectGame(sample); got != models.GamePokemon {
		t.Errorf("names past the sample size should be ignored, got %q", got)
	}
	if got := DetectGame(sample[detectSampleSize:]); got != models.GameMagic {
		t.Errorf("DetectGame on the tail = %q, want magic", got)
	}
}
