package matcher

import "strings"

var yugiohRules = newCardRules([]term{
	{"NORMAL", []string{"normal"}},
	{"EFFECT", []string{"effect", "efecto"}},
	{"RITUAL", []string{"ritual"}},
	{"FUSION", []string{"fusion", "fusión"}},
	{"SYNCHRO", []string{"synchro", "sincronía"}},
	{"XYZ", []string{"xyz"}},
	{"PENDULUM", []string{"pendulum", "péndulo"}},
	{"LINK", []string{"link"}},
	{"SPELL", []string{"spell", "magia"}},
	{"TRAP", []string{"trap", "trampa"}},
	{"CONTINUOUS", []string{"continuous", "continua"}},
	{"FIELD", []string{"field", "campo"}},
	{"EQUIP", []string{"equip", "equipo"}},
	{"QUICK-PLAY", []string{"quick-play", "quick play", "juego rápido"}},
	{"COUNTER", []string{"counter", "contraefecto"}},
	{"SECRET RARE", []string{"secret rare", "secreta", "rara secreta"}},
	{"ULTRA RARE", []string{"ultra rare", "ultra rara"}},
	{"SUPER RARE", []string{"super rare", "super rara"}},
	{"RARE", []string{"rare", "rara"}},
	{"COMMON", []string{"common", "común"}},
	{"STARLIGHT RARE", []string{"starlight", "starlight rare"}},
	{"GHOST RARE", []string{"ghost rare"}},
	{"ULTIMATE RARE", []string{"ultimate rare"}},
	{"PARALLEL RARE", []string{"parallel rare"}},
	{"DUEL TERMINAL", []string{"duel terminal"}},
},
	// set code + number: LOB-001, LOB-EN001, SDK-E001
	`\b[a-z0-9]{3,4}-[a-z]{0,2}\d{3}\b`,
	// legacy print codes: ABCD12345
	`\b[a-z]{4,5}\d{5}\b`,
	`\b(?:1st|1ra|primera|unlimited|limited)\s*(?:edition|edicion)\b`,
).withMarks(
	mark{"secret", "secret rare"},
	mark{"ultra", "ultra rare"},
	mark{"super", "super rare"},
	mark{"ghost", "ghost rare"},
	mark{"ultimate", "ultimate rare"},
	mark{"parallel", "parallel rare"},
)

// Archetypes are checked in order. Entries made of several words (spaces or
// hyphens) need every word present for an immediate hit.
var yugiohArchetypes = []string{
	"blue-eyes", "dark magician", "red-eyes", "elemental hero", "blackwing",
	"lightsworn", "six samurai", "dragon ruler", "burning abyss", "shaddoll",
	"qliphort", "nekroz", "kozmo", "domain monarch", "performapal", "dracoslayer",
	"kaiju", "phantom knight", "metalfoe", "crystal beast", "ancient gear",
	"cyber dragon", "gladiator beast", "fire fist", "mermail", "madolche",
	"noble knight", "bujin", "geargia", "sylvan", "battlin boxer", "ghostrick",
	"vampire", "zombie", "spellcaster", "warrior", "dragon", "fiend", "fairy",
	"machine", "thunder", "dinosaur", "sea serpent", "pyro", "rock", "winged beast",
}

const (
	yugiohSingleWordMinScore = 70.0
	yugiohFamilyMinScore     = 60.0
)

func yugiohFamily(rawName string) string {
	normalized := Normalize(rawName)
	if normalized == "" {
		return ""
	}

	best, bestScore := "", 0.0
	for _, archetype := range yugiohArchetypes {
		words := strings.Fields(strings.ReplaceAll(archetype, "-", " "))
		if len(words) > 1 {
			hits := 0
			for _, w := range words {
				if strings.Contains(normalized, w) {
					hits++
				}
			}
			if hits == len(words) {
				return archetype
			}
			if hits > 0 {
				score := float64(hits) / float64(len(words)) * 100
				if score > bestScore {
					best, bestScore = archetype, score
				}
			}
			continue
		}

		score := Similarity(archetype, normalized) * 100
		if score > bestScore && score >= yugiohSingleWordMinScore {
			best, bestScore = archetype, score
		}
	}

	if bestScore < yugiohFamilyMinScore {
		return ""
	}
	return best
}
