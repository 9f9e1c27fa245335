package errors

import "strings"

// maxSuggestionDistance is the largest edit distance that still produces
// a keyword suggestion. Anything further away is more likely a different
// word than a typo.
const maxSuggestionDistance = 2

// SuggestKeyword finds the keyword a misspelled candidate most likely
// meant. A case-insensitive exact match wins immediately; otherwise the
// keyword with the smallest Levenshtein distance is returned, provided
// that distance is at most 2. Returns false when nothing is close enough.
func SuggestKeyword(candidate string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.EqualFold(candidate, kw) {
			return kw, true
		}
	}

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, kw := range keywords {
		if dist := LevenshteinDistance(candidate, kw); dist < bestDist {
			bestDist = dist
			best = kw
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

// LevenshteinDistance computes the edit distance between two strings:
// the minimum number of single-character insertions, deletions and
// substitutions turning one into the other.
func LevenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1, len2 := len(s1), len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len1][len2]
}
