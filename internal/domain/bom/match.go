package bom

import (
	"strings"
	"unicode"
)

// Fuzzy header matching. Pure functions, fully decoupled from storage.
//
// A header is a candidate only when its combined code+name token set contains
// every query token. Candidates score 10 per matched token minus one per
// header token absent from the query, so tight supersets of the query beat
// headers that merely contain it amid lots of irrelevant text. Ties go to the
// first candidate in scan order.

const matchedTokenWeight = 10

// normalizeText lowercases, strips quote characters, collapses runs of
// non-alphanumeric characters to single spaces and trims.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'' || r == '"' || r == '`':
			// quotes vanish without breaking a token
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// tokenize splits normalized text into tokens.
func tokenize(s string) []string {
	return strings.Fields(normalizeText(s))
}

// queryTokens picks the token source for a lookup: name wins when it
// yields tokens, otherwise code.
func queryTokens(code, name string) []string {
	if name != "" {
		if tokens := tokenize(name); len(tokens) > 0 {
			return tokens
		}
	}
	return tokenize(code)
}

// headerTokenSet combines the tokens of a header's product code and name.
func headerTokenSet(h *Header) map[string]struct{} {
	set := make(map[string]struct{})
	if h.ProductCode != nil {
		for _, t := range tokenize(*h.ProductCode) {
			set[t] = struct{}{}
		}
	}
	for _, t := range tokenize(h.ProductName) {
		set[t] = struct{}{}
	}
	return set
}

// bestMatch scans headers for the highest-scoring candidate.
// Returns nil when no header contains all query tokens.
func bestMatch(tokens []string, headers []*Header) *Header {
	if len(tokens) == 0 {
		return nil
	}

	query := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		query[t] = struct{}{}
	}

	var best *Header
	bestScore := 0
	for _, h := range headers {
		set := headerTokenSet(h)

		allPresent := true
		for t := range query {
			if _, ok := set[t]; !ok {
				allPresent = false
				break
			}
		}
		if !allPresent {
			continue
		}

		extra := 0
		for t := range set {
			if _, ok := query[t]; !ok {
				extra++
			}
		}

		score := matchedTokenWeight*len(query) - extra
		if best == nil || score > bestScore {
			best = h
			bestScore = score
		}
	}
	return best
}
