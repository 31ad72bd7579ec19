package similarity

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// Normalize lowercases s and strips everything that is not a word character or whitespace.
func Normalize(s string) string {
	return nonWord.ReplaceAllString(strings.ToLower(s), "")
}

// Tokens returns the whitespace-separated words of the normalized text
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// Lexical returns |dedup(A) ∩ set(B)| / max(|dedup(A)|, |set(B)|).
// Two texts without any words score 0.
func Lexical(a, b string) float64 {
	setA := toSet(Tokens(a))
	setB := toSet(Tokens(b))

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	if denom == 0 {
		return 0
	}

	shared := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(denom)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
