// Package voice turns noisy voice-transcribed text into shopping commands:
// normalization, quantity extraction, intent classification, fuzzy product
// resolution and the orchestrating interpreter.
package voice

import "strings"

// stopWords are filler tokens dropped before any further processing.
var stopWords = map[string]bool{
	"the": true,
	"my":  true,
	"to":  true,
	"a":   true,
	"an":  true,
}

// voiceCorrections maps common transcription errors to the intended word.
// Static configuration, loaded once; unknown tokens pass through unchanged.
var voiceCorrections = map[string]string{
	// cart variations
	"cut":    "cart",
	"kat":    "cart",
	"kart":   "cart",
	"caught": "cart",
	"cot":    "cart",
	"cat":    "cart",

	// add variations
	"ad":  "add",
	"had": "add",
	"at":  "add",
	"ed":  "add",

	// remove variations
	"remov":  "remove",
	"delete": "remove",

	// show variations
	"so":  "show",
	"sho": "show",

	// product name corrections
	"apples":   "apple",
	"aple":     "apple",
	"aplle":    "apple",
	"melk":     "milk",
	"milke":    "milk",
	"bred":     "bread",
	"brd":      "bread",
	"bananas":  "banana",
	"bannana":  "banana",
	"banna":    "banana",
	"tomatos":  "tomato",
	"tomatoes": "tomato",
	"potatos":  "potato",
	"potatoes": "potato",
}

// Normalize lowercases the text, drops filler words and applies the
// voice-correction table token by token. The result is intentionally lossy;
// it only needs to be good enough for keyword and fuzzy matching.
func Normalize(text string) string {
	words := strings.Fields(strings.ToLower(text))
	corrected := make([]string, 0, len(words))
	for _, word := range words {
		if stopWords[word] {
			continue
		}
		if fixed, ok := voiceCorrections[word]; ok {
			word = fixed
		}
		corrected = append(corrected, word)
	}
	return strings.Join(corrected, " ")
}
