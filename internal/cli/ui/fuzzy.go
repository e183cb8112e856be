package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the largest edit distance still considered a
	// plausible misspelling.
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps how many candidates a diagnostic lists.
	DefaultMaxSuggestions = 3
)

// FuzzyOptions configures FindSimilar.
type FuzzyOptions struct {
	MaxDistance    int
	MaxSuggestions int
	CaseSensitive  bool
}

// FindSimilar returns the candidates closest to target by Levenshtein
// distance, nearest first, ties broken alphabetically.
func FindSimilar(target string, candidates []string, opts *FuzzyOptions) []string {
	if opts == nil {
		opts = &FuzzyOptions{}
	}
	maxDistance := opts.MaxDistance
	if maxDistance == 0 {
		maxDistance = DefaultMaxDistance
	}
	maxSuggestions := opts.MaxSuggestions
	if maxSuggestions == 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	type match struct {
		value    string
		distance int
	}

	var matches []match
	for _, candidate := range candidates {
		a, b := target, candidate
		if !opts.CaseSensitive {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		if d := levenshtein(a, b); d <= maxDistance {
			matches = append(matches, match{candidate, d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].value < matches[j].value
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming formulation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
