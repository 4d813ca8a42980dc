package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// TextSimilarity is the case-insensitive Ratcliff/Obershelp ratio 2*M/T of
// two labels, compared rune by rune. Either label empty gives 0.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	m := difflib.NewMatcher(runes(strings.ToLower(a)), runes(strings.ToLower(b)))
	return m.Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
