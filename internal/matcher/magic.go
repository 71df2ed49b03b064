package matcher

import "strings"

var magicRules = newCardRules([]term{
	{"INSTANT", []string{"instant", "instantáneo"}},
	{"SORCERY", []string{"sorcery", "conjuro"}},
	{"CREATURE", []string{"creature", "criatura"}},
	{"ARTIFACT", []string{"artifact", "artefacto"}},
	{"ENCHANTMENT", []string{"enchantment", "encantamiento"}},
	{"PLANESWALKER", []string{"planeswalker"}},
	{"LAND", []string{"land", "tierra"}},
	{"TRIBAL", []string{"tribal"}},
	{"LEGENDARY", []string{"legendary", "legendario", "legendaria"}},
	{"BASIC", []string{"basic", "básica", "básico"}},
	{"SNOW", []string{"snow", "nevado"}},
	{"MYTHIC RARE", []string{"mythic rare", "mythic", "mítica"}},
	{"RARE", []string{"rare", "rara"}},
	{"UNCOMMON", []string{"uncommon", "infrecuente"}},
	{"COMMON", []string{"common", "común"}},
	{"FOIL", []string{"foil"}},
	{"PROMO", []string{"promo"}},
	{"EXTENDED ART", []string{"extended art", "arte extendido"}},
	{"BORDERLESS", []string{"borderless", "sin borde"}},
	{"SHOWCASE", []string{"showcase"}},
	{"RETRO FRAME", []string{"retro frame"}},
	{"FULL ART", []string{"full art", "arte completo"}},
},
	// set code glued to collector number: ABC123, M21123
	`\b[a-z][a-z0-9]{2}\d{3}\b`,
).withMarks(
	// single letters are the rarity marks stores append: "Lightning Bolt (U)"
	mark{"m", "mythic rare"},
	mark{"r", "rare"},
	mark{"u", "uncommon"},
	mark{"c", "common"},
	mark{"retro", "retro frame"},
)

var magicIconicCards = []string{
	"lightning bolt", "counterspell", "dark ritual", "giant growth",
	"ancestral recall", "black lotus", "mox", "serra angel", "shivan dragon",
	"llanowar elves", "birds of paradise", "sol ring", "wrath of god",
	"brainstorm", "force of will", "tarmogoyf", "snapcaster mage",
	"jace", "liliana", "chandra", "garruk", "elspeth", "ajani", "nissa",
	"gideon", "vraska", "teferi", "karn", "ugin", "nicol bolas", "eldrazi",
}

var magicStopWords = map[string]bool{
	"the": true, "of": true, "and": true, "or": true, "a": true,
	"an": true, "to": true, "for": true, "with": true,
}

const magicFamilyMinScore = 75.0

func magicFamily(rawName string) string {
	normalized := Normalize(rawName)
	if normalized == "" {
		return ""
	}

	best, bestScore := "", 0.0
	for _, card := range magicIconicCards {
		score := Similarity(card, normalized) * 100
		if score > bestScore && score >= magicFamilyMinScore {
			best, bestScore = card, score
		}
	}
	if best != "" {
		return best
	}

	// Fall back to the first significant word
	for _, w := range strings.Fields(normalized) {
		if !magicStopWords[w] && len([]rune(w)) > 2 {
			return w
		}
	}
	return ""
}
