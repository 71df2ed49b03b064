package matcher

import "strings"

var pokemonRules = newCardRules([]term{
	{"EX", []string{"ex"}},
	{"GX", []string{"gx"}},
	{"V", []string{"v"}},
	{"VMAX", []string{"vmax"}},
	{"VSTAR", []string{"vstar"}},
	{"TAG TEAM", []string{"tag team"}},
	{"BREAK", []string{"break"}},
	{"PRIME", []string{"prime"}},
	{"LV X", []string{"lv.x", "lvx"}},
	{"MEGA", []string{"mega"}},
	{"PRISM STAR", []string{"prism star", "prism"}},
	{"RADIANT", []string{"radiant", "radiante"}},
	{"SHINING", []string{"shining", "brillante"}},
	{"CRYSTAL", []string{"crystal", "cristal"}},
	{"DELTA SPECIES", []string{"delta species", "delta"}},
	{"HOLO", []string{"holo", "holo rare", "rare holo", "holofoil", "holo foil", "holográfica", "holográfico", "holographic", "foil"}},
	{"REVERSE", []string{"reverse", "reverse holo", "reverse foil", "reversa", "reverso"}},
	{"FULL ART", []string{"full art", "arte completo", "arte completa"}},
	{"SECRET RARE", []string{"secret", "secret rare", "secreta", "rara secreta"}},
	{"RAINBOW", []string{"rainbow", "rainbow rare", "arcoíris"}},
	{"RARE", []string{"rare", "rara"}},
},
	// black star promo numbers: SM60, SWSH050, XY121
	`\b(?:swsh|svp|sm|xy|bw|dp|hgss)\d{1,3}\b`,
)

// pokemonSpecies are matched token by token against the normalized name
var pokemonSpecies = []string{
	"pikachu", "charizard", "blastoise", "venusaur", "mewtwo", "mew",
	"lugia", "ho-oh", "rayquaza", "kyogre", "groudon", "dialga", "palkia",
	"giratina", "arceus", "reshiram", "zekrom", "kyurem", "xerneas", "yveltal",
	"zygarde", "solgaleo", "lunala", "necrozma", "zacian", "zamazenta",
	"eternatus", "calyrex", "koraidon", "miraidon", "alakazam", "machamp",
	"gengar", "dragonite", "tyranitar", "salamence", "metagross", "garchomp",
	"lucario", "zoroark", "greninja", "talonflame", "decidueye", "incineroar",
	"primarina", "toxapex", "mimikyu", "dragapult", "corviknight", "grimmsnarl",
}

type speciesVariants struct {
	species  string
	variants []string
}

// Localized and alternate spellings, checked as substrings before any fuzzy
// scoring. Order matters: the first hit wins.
var pokemonVariants = normalizeVariants([]speciesVariants{
	{"charizard", []string{"charizard", "lizardon", "dracaufeu", "glurak"}},
	{"pikachu", []string{"pikachu", "pikachú", "pikachù"}},
	{"mewtwo", []string{"mewtwo", "mew-two", "mew two"}},
	{"ho-oh", []string{"ho-oh", "ho oh", "hooh"}},
})

const pokemonFamilyMinScore = 80.0

func pokemonFamily(rawName string) string {
	normalized := Normalize(rawName)
	if normalized == "" {
		return ""
	}

	for _, sv := range pokemonVariants {
		for _, v := range sv.variants {
			if strings.Contains(normalized, v) {
				return sv.species
			}
		}
	}

	words := strings.Fields(normalized)
	best, bestScore := "", 0.0
	for _, species := range pokemonSpecies {
		partial := 0.0
		for _, word := range words {
			partial = max(partial, Similarity(species, word))
		}
		score := partial * 100
		if score > bestScore && score >= pokemonFamilyMinScore {
			best, bestScore = species, score
		}
	}
	return best
}

func normalizeVariants(in []speciesVariants) []speciesVariants {
	out := make([]speciesVariants, len(in))
	for i, sv := range in {
		seen := make(map[string]bool)
		var variants []string
		for _, v := range sv.variants {
			n := Normalize(v)
			if n != "" && !seen[n] {
				seen[n] = true
				variants = append(variants, n)
			}
		}
		out[i] = speciesVariants{species: sv.species, variants: variants}
	}
	return out
}
