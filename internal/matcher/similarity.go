package matcher

// Similarity returns the Jaro-Winkler similarity of a and b in [0, 1].
// Identical strings (including two empty strings) score 1, and an empty
// string against a non-empty one scores 0. The Winkler prefix boost is only
// applied once the plain Jaro score reaches 0.7.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	r1, r2 := []rune(a), []rune(b)
	j := jaro(r1, r2)
	if j < winklerThreshold {
		return j
	}

	prefix := 0
	for i := 0; i < min(len(r1), len(r2), maxPrefixLength); i++ {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}

	return j + float64(prefix)*prefixScale*(1-j)
}

const (
	winklerThreshold = 0.7
	maxPrefixLength  = 4
	prefixScale      = 0.1
)

func jaro(r1, r2 []rune) float64 {
	len1, len2 := len(r1), len(r2)

	matchDistance := max(0, max(len1, len2)/2-1)

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)

	matches := 0
	for i := 0; i < len1; i++ {
		start := max(0, i-matchDistance)
		end := min(i+matchDistance+1, len2)
		for j := start; j < end; j++ {
			if matched2[j] || r1[i] != r2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	k := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(len1) + m/float64(len2) + (m-float64(transpositions)/2)/m) / 3.0
}
