// Package match implements the 0-100 fuzzy similarity ratios used by the
// voice resolver and the similarity recommender. Scores are compatible with
// the usual token-set / partial-ratio conventions: insert/delete edit
// similarity over lowercased strings.
package match

import (
	"sort"
	"strings"
)

// Ratio returns the indel similarity of a and b scaled to 0-100:
// 100 * 2*LCS(a,b) / (len(a)+len(b)). Two empty strings are identical.
func Ratio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 100 * 2 * float64(lcs(a, b)) / float64(len(a)+len(b))
}

// PartialRatio slides the shorter string across the longer one and returns
// the best Ratio of any equal-length window. It rewards a good match on a
// fragment of the longer string ("apple" inside "organic apple" scores 100).
func PartialRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}
	if len(short) == len(long) {
		return Ratio(short, long)
	}

	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		if r := Ratio(short, long[i:i+len(short)]); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSetRatio compares two strings as unordered token sets. Tokens common
// to both sides are factored out; if either side is fully covered by the
// intersection the score is 100. Otherwise the score is the best Ratio among
// the three combinations of intersection and leftovers.
func TokenSetRatio(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	sect := make([]string, 0)
	diffA := make([]string, 0)
	diffB := make([]string, 0)
	for tok := range ta {
		if tb[tok] {
			sect = append(sect, tok)
		} else {
			diffA = append(diffA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			diffB = append(diffB, tok)
		}
	}

	if len(sect) > 0 && (len(diffA) == 0 || len(diffB) == 0) {
		return 100
	}

	sort.Strings(sect)
	sort.Strings(diffA)
	sort.Strings(diffB)

	s0 := strings.Join(sect, " ")
	s1 := joinParts(s0, diffA)
	s2 := joinParts(s0, diffB)

	best := Ratio(s1, s2)
	if len(sect) > 0 {
		if r := Ratio(s0, s1); r > best {
			best = r
		}
		if r := Ratio(s0, s2); r > best {
			best = r
		}
	}
	return best
}

func joinParts(sect string, diff []string) string {
	rest := strings.Join(diff, " ")
	if sect == "" {
		return rest
	}
	if rest == "" {
		return sect
	}
	return sect + " " + rest
}

func tokenSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		out[tok] = true
	}
	return out
}

// lcs computes the longest common subsequence length with a rolling row.
func lcs(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
