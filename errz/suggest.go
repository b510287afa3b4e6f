package errz

import (
	"sort"
	"strings"
)

// MaxSuggestions is the maximum number of suggestions to return.
const MaxSuggestions = 3

// SuggestSimilar returns up to MaxSuggestions candidates close to target,
// closest first. The allowed edit distance grows with the target length.
func SuggestSimilar(target string, candidates []string) []string {
	if target == "" {
		return nil
	}
	target = strings.ToLower(target)
	threshold := 3
	if len(target) <= 3 {
		threshold = 1
	} else if len(target) <= 5 {
		threshold = 2
	}

	type scored struct {
		value    string
		distance int
	}
	var found []scored
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if candidate == "" || lower == target {
			continue
		}
		if d := levenshteinDistance(target, lower); d <= threshold {
			found = append(found, scored{candidate, d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].value < found[j].value
	})
	if len(found) > MaxSuggestions {
		found = found[:MaxSuggestions]
	}
	result := make([]string, len(found))
	for i, s := range found {
		result[i] = s.value
	}
	return result
}

// FormatSuggestions formats suggestions as a hint, or returns "" when there
// are none.
func FormatSuggestions(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean '" + suggestions[0] + "'?"
	default:
		return "did you mean one of '" + strings.Join(suggestions, "', '") + "'?"
	}
}

// levenshteinDistance computes the edit distance between two strings using
// two rows instead of a full matrix.
func levenshteinDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
