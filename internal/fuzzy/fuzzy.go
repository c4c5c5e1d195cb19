// Package fuzzy scores string similarity on a 0-100 scale.
//
// Ratio follows the normalized Levenshtein ratio where a substitution costs
// two edits (one deletion plus one insertion), so
// ratio = (len(a)+len(b)-dist) / (len(a)+len(b)). All functions work on runes.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Ratio returns the similarity of a and b in [0, 100].
// Two empty strings score 0, matching the usual fuzzy-matching convention
// that empty input never counts as a match.
func Ratio(a, b string) int {
	return score(ratio([]rune(a), []rune(b)))
}

// PartialRatio returns the best Ratio between the shorter string and every
// window of the same length in the longer one. A substring match scores 100.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	best := 0.0
	for start := 0; start+len(ra) <= len(rb); start++ {
		r := ratio(ra, rb[start:start+len(ra)])
		if r > best {
			best = r
			if best >= 0.995 {
				break
			}
		}
	}
	return score(best)
}

// TokenSortRatio lowercases both strings, keeps alphanumeric tokens, sorts
// them and compares the rejoined strings with Ratio.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio computes 2*LCS/(len(a)+len(b)), which equals the indel-weighted
// Levenshtein ratio.
func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return float64(2*lcs(a, b)) / float64(total)
}

// lcs returns the length of the longest common subsequence using two rows.
func lcs(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func score(r float64) int {
	return int(math.Round(100 * r))
}
