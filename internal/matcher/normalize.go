package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Latin letters that do not decompose into base letter + combining mark
var foldLigatures = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ı", "i",
)

// Normalize lowercases text, folds accented Latin letters to ASCII, replaces
// everything that is not a word character, whitespace or hyphen with a
// space and collapses runs of whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lower := foldLigatures.Replace(strings.ToLower(text))
	folded, _, err := transform.String(stripAccents, lower)
	if err != nil {
		folded = lower
	}

	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || r == '-' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, folded)

	return strings.Join(strings.Fields(cleaned), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
