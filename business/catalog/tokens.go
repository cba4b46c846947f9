package catalog

import (
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it into alphanumeric tokens. Used both for
// the snapshot keyword index and for query normalization in the scorer, so
// the two sides always agree on token boundaries.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}

// searchTokens builds the per-product token set cached on the record. Only
// name tokens: brand matches are a separate relevance band.
func searchTokens(name string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)

	for _, tok := range Tokenize(name) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}

	return out
}
