package query

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

// maxSuggestDistance is the largest edit distance still offered as a
// suggestion.
const maxSuggestDistance = 3

// Suggest returns a "did you mean" candidate for a search term that matched
// nothing: the title word across master closest to term by edit distance,
// within maxSuggestDistance. The comparison is case-insensitive; ok is false
// when no word is close enough.
func Suggest(term string, master []blog.Record) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return "", false
	}

	best := ""
	bestDist := maxSuggestDistance + 1
	for _, r := range master {
		for _, word := range strings.Fields(r.Title) {
			candidate := strings.ToLower(strings.Trim(word, ".,:;!?\"'()"))
			if candidate == "" || candidate == needle {
				continue
			}
			d := levenshtein.ComputeDistance(needle, candidate)
			if d < bestDist {
				best = candidate
				bestDist = d
			}
		}
	}

	if bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}
