package matcher

import (
	"regexp"
	"sort"
	"strings"
)

// Collector numbers are removed before normalization, which would otherwise
// split "12/102" or "(123)" into loose digit tokens.
var collectorNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,3}\s*/\s*\d{1,3}\b`),
	regexp.MustCompile(`#\s*\d+`),
	regexp.MustCompile(`\(\s*\d+\s*\)`),
}

// canonicalization can expand a term ("secret" -> "SECRET RARE"), so it is
// repeated until the output stops changing
const maxCanonicalPasses = 8

func stripCollectorNumbers(s string) string {
	for _, re := range collectorNumberPatterns {
		s = re.ReplaceAllString(s, " ")
	}
	return s
}

// term maps every store spelling of a rarity, mechanic or edition marker to
// one canonical uppercase form
type term struct {
	canonical string
	spellings []string
}

// mark is a bare word that only reads as a rarity or frame annotation when a
// store brackets it, as in "Blue-Eyes White Dragon (Ultra)". Unbracketed it
// stays part of the name: "Super Polymerization".
type mark struct {
	word   string
	phrase string
}

type cardRules struct {
	lookup     map[string]string
	vocabulary *regexp.Regexp
	strip      []*regexp.Regexp

	marks       *regexp.Regexp
	markPhrases map[string]string
}

func newCardRules(vocabulary []term, strip ...string) cardRules {
	rules := cardRules{lookup: make(map[string]string)}

	var keys []string
	for _, t := range vocabulary {
		for _, s := range append([]string{t.canonical}, t.spellings...) {
			n := Normalize(s)
			if n == "" {
				continue
			}
			if _, dup := rules.lookup[n]; dup {
				continue
			}
			rules.lookup[n] = t.canonical
			keys = append(keys, n)
		}
	}
	// Longest first so "ultra rare" wins over "rare"
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	// A leading hyphen is consumed so "charizard-gx" splits into "charizard GX"
	rules.vocabulary = regexp.MustCompile(`(?i)-?\b(?:` + strings.Join(quoted, "|") + `)\b`)

	for _, pattern := range strip {
		rules.strip = append(rules.strip, regexp.MustCompile(`(?i)`+pattern))
	}
	return rules
}

// withMarks returns a copy of r that rewrites "(word)" and "[word]" to the
// mark's phrase before normalization.
func (r cardRules) withMarks(marks ...mark) cardRules {
	r.markPhrases = make(map[string]string, len(marks))
	words := make([]string, 0, len(marks))
	for _, m := range marks {
		r.markPhrases[m.word] = m.phrase
		words = append(words, regexp.QuoteMeta(m.word))
	}
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i]) > len(words[j])
	})
	r.marks = regexp.MustCompile(`(?i)[(\[]\s*(` + strings.Join(words, "|") + `)\s*[)\]]`)
	return r
}

func (r cardRules) expandMarks(name string) string {
	if r.marks == nil {
		return name
	}
	return r.marks.ReplaceAllStringFunc(name, func(m string) string {
		word := strings.ToLower(r.marks.FindStringSubmatch(m)[1])
		return " " + r.markPhrases[word] + " "
	})
}

func (r cardRules) preprocess(name string) string {
	s := collapseTokens(Normalize(stripCollectorNumbers(r.expandMarks(name))))

	// Removing one pattern can bring the pieces of another together
	for {
		before := s
		for _, re := range r.strip {
			s = re.ReplaceAllString(s, " ")
		}
		s = collapseTokens(s)
		if s == before {
			break
		}
	}

	for i := 0; i < maxCanonicalPasses; i++ {
		next := r.canonicalize(strings.ToLower(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

func (r cardRules) canonicalize(s string) string {
	out := r.vocabulary.ReplaceAllStringFunc(s, func(m string) string {
		key := strings.ToLower(strings.TrimPrefix(m, "-"))
		if canonical, ok := r.lookup[key]; ok {
			return " " + canonical + " "
		}
		return " " + strings.ToUpper(key) + " "
	})
	return collapseTokens(out)
}

// collapseTokens squeezes whitespace and drops tokens made only of hyphens,
// which separators like "Pikachu EX - Holo" leave behind
func collapseTokens(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if strings.Trim(f, "-") != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
