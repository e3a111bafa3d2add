package voice

import (
	"regexp"
	"strconv"
)

// wordNumbers is scanned in declaration order and the first hit wins, so an
// earlier entry always beats a later one. Keep the order stable.
var wordNumbers = []struct {
	word string
	n    int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	{"eleven", 11}, {"twelve", 12}, {"fifteen", 15}, {"twenty", 20},
	{"a", 1}, {"an", 1}, {"single", 1}, {"couple", 2}, {"few", 3},
}

var (
	digitPattern = regexp.MustCompile(`\b(\d+)\b`)
	wordPatterns = compileWordPatterns()
)

func compileWordPatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(wordNumbers))
	for i, entry := range wordNumbers {
		out[i] = regexp.MustCompile(`\b` + entry.word + `\b`)
	}
	return out
}

// ExtractQuantity recovers an integer quantity from the command text:
// number words first (in table order), then the first standalone digit run.
// Words match on word boundaries so "a" does not fire inside "add".
// Defaults to 1 and never returns less.
func ExtractQuantity(text string) int {
	for i, entry := range wordNumbers {
		if wordPatterns[i].MatchString(text) {
			return entry.n
		}
	}

	if m := digitPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
