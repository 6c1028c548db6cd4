package match

import (
	"slices"
	"strings"
)

// Levenshtein computes the edit distance between two strings, counted in runes.
// Only two rows of the distance matrix are kept.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Suggest returns the candidates within maxDistance edits of word, nearest first.
// The comparison is case-insensitive; ties keep alphabetical order.
func Suggest(word string, candidates []string, maxDistance int) []string {
	type scored struct {
		name     string
		distance int
	}

	lower := strings.ToLower(word)

	var hits []scored

	for _, c := range candidates {
		d := Levenshtein(lower, strings.ToLower(c))
		if d <= maxDistance {
			hits = append(hits, scored{name: c, distance: d})
		}
	}

	slices.SortFunc(hits, func(x, y scored) int {
		if x.distance != y.distance {
			return x.distance - y.distance
		}

		return strings.Compare(x.name, y.name)
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
