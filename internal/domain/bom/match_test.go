package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Quart TOM", "quart tom"},
		{"strips quotes", `Tas "Quart" 6'`, "tas quart 6"},
		{"collapses separators", "quart--tom__6", "quart tom 6"},
		{"trims", "  quart tom  ", "quart tom"},
		{"empty", "!!??", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.in))
		})
	}
}

func TestQueryTokens_PrefersName(t *testing.T) {
	assert.Equal(t, []string{"quart", "tom"}, queryTokens("XX-01", "Quart Tom"))
	// name that normalizes to nothing falls back to code
	assert.Equal(t, []string{"xx", "01"}, queryTokens("XX-01", "??"))
	assert.Empty(t, queryTokens("", ""))
}

func TestBestMatch_RequiresAllTokens(t *testing.T) {
	headers := []*Header{
		{ProductName: "quart tom"},
		{ProductName: "quart putih"},
	}

	match := bestMatch([]string{"quart", "tom", "6"}, headers)
	assert.Nil(t, match)
}

func TestBestMatch_FewerExtraTokensWins(t *testing.T) {
	loose := &Header{ProductName: "quart tom 6 head putih"}
	tight := &Header{ProductName: "quart tom 6 putih"}
	headers := []*Header{loose, tight}

	match := bestMatch([]string{"quart", "tom", "6"}, headers)
	assert.Same(t, tight, match)
}

func TestBestMatch_TieGoesToFirstFound(t *testing.T) {
	first := &Header{ProductName: "quart tom 6 a"}
	second := &Header{ProductName: "quart tom 6 b"}

	match := bestMatch([]string{"quart", "tom", "6"}, []*Header{first, second})
	assert.Same(t, first, match)
}

func TestHeaderTokenSet_CombinesCodeAndName(t *testing.T) {
	h := &Header{ProductCode: strPtr("TQ-06"), ProductName: "Tas Quart 6"}

	set := headerTokenSet(h)
	for _, tok := range []string{"tq", "06", "tas", "quart", "6"} {
		_, ok := set[tok]
		assert.True(t, ok, "missing token %q", tok)
	}
}
