package service

import "strings"

// levenshteinDistance returns the minimum number of single-character edits
// (insertions, deletions, substitutions) needed to turn a into b.
// Operates on runes so multi-byte characters (mąka, śmietana) count as one
// edit each. Two-row DP, O(len(a)*len(b)) time, O(len(b)) space.
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Similarity returns a case-insensitive normalized edit-distance score
// between two names: 1 - distance/max(len). 1.0 means identical (two empty
// strings included), 0.0 means nothing in common.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshteinDistance(ra, rb)
	return 1.0 - float64(distance)/float64(maxLen)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
