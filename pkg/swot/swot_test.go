package swot

import (
	"testing"

	"github.com/OFFIS-RIT/feedlens/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestParse_WellFormed(t *testing.T) {
	got := Parse("Strengths:\n- Fast service\nWeaknesses:\n- High price")
	assert.Equal(t, common.SwotAnalysis{
		Strengths:     []string{"Fast service"},
		Weaknesses:    []string{"High price"},
		Opportunities: []string{},
		Threats:       []string{},
	}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  common.SwotAnalysis
	}{
		{
			name:  "empty input",
			input: "",
			want:  common.NewSwotAnalysis(),
		},
		{
			name:  "free text only",
			input: "I could not produce an analysis for this text.",
			want:  common.NewSwotAnalysis(),
		},
		{
			name:  "bullets before first heading are ignored",
			input: "- orphan\nThreats:\n- New competitors",
			want: common.SwotAnalysis{
				Strengths:     []string{},
				Weaknesses:    []string{},
				Opportunities: []string{},
				Threats:       []string{"New competitors"},
			},
		},
		{
			name: "indentation, blank lines and prose",
			input: `Here is your analysis.

  Strengths (internal):
    - Friendly staff
    -   Quick delivery
  Some commentary in between.

Opportunities
- Loyalty program
-
- 
Weaknesses:
- Confusing website`,
			want: common.SwotAnalysis{
				Strengths:     []string{"Friendly staff", "Quick delivery"},
				Weaknesses:    []string{"Confusing website"},
				Opportunities: []string{"Loyalty program", "", ""},
				Threats:       []string{},
			},
		},
		{
			name:  "empty bullets are kept",
			input: "Strengths:\n-\n- Fast\nWeaknesses:\n- \n",
			want: common.SwotAnalysis{
				Strengths:     []string{"", "Fast"},
				Weaknesses:    []string{""},
				Opportunities: []string{},
				Threats:       []string{},
			},
		},
		{
			name:  "headings are case sensitive",
			input: "strengths:\n- ignored\nSTRENGTHS\n- ignored too",
			want:  common.NewSwotAnalysis(),
		},
		{
			name:  "a heading line never becomes an item",
			input: "Strengths: great taste\n- Price",
			want: common.SwotAnalysis{
				Strengths:     []string{"Price"},
				Weaknesses:    []string{},
				Opportunities: []string{},
				Threats:       []string{},
			},
		},
		{
			name:  "repeated heading appends",
			input: "Threats:\n- A\nStrengths:\n- B\nThreats:\n- C",
			want: common.SwotAnalysis{
				Strengths:     []string{"B"},
				Weaknesses:    []string{},
				Opportunities: []string{},
				Threats:       []string{"A", "C"},
			},
		},
		{
			name:  "windows line endings",
			input: "Strengths:\r\n- Fast\r\n",
			want: common.SwotAnalysis{
				Strengths:     []string{"Fast"},
				Weaknesses:    []string{},
				Opportunities: []string{},
				Threats:       []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestMissing(t *testing.T) {
	assert.Equal(t, Sections, Missing(common.NewSwotAnalysis()))
	assert.Equal(t, []string{Opportunities, Threats},
		Missing(Parse("Strengths:\n- Fast service\nWeaknesses:\n- High price")))

	full := Parse("Strengths:\n- a\nWeaknesses:\n- b\nOpportunities:\n- c\nThreats:\n- d")
	assert.Empty(t, Missing(full))
}

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  common.SwotAnalysis
	}{
		{
			name:  "json object",
			input: `{"Strengths": ["Fast service"], "Threats": ["Competition"]}`,
			want: common.SwotAnalysis{
				Strengths:     []string{"Fast service"},
				Weaknesses:    []string{},
				Opportunities: []string{},
				Threats:       []string{"Competition"},
			},
		},
		{
			name:  "lowercase keys in a code fence",
			input: "```json\n{\"strengths\": [\"A\"], \"weaknesses\": \"B\", \"opportunities\": []}\n```",
			want: common.SwotAnalysis{
				Strengths:     []string{"A"},
				Weaknesses:    []string{"B"},
				Opportunities: []string{},
				Threats:       []string{},
			},
		},
		{
			name:  "malformed json is repaired",
			input: `{Strengths: ['A', 'B',], Weaknesses: ['C']`,
			want: common.SwotAnalysis{
				Strengths:     []string{"A", "B"},
				Weaknesses:    []string{"C"},
				Opportunities: []string{},
				Threats:       []string{},
			},
		},
		{
			name:  "bulleted text",
			input: "Strengths:\n- Fast service\nWeaknesses:\n- High price",
			want: common.SwotAnalysis{
				Strengths:     []string{"Fast service"},
				Weaknesses:    []string{"High price"},
				Opportunities: []string{},
				Threats:       []string{},
			},
		},
		{
			name:  "json without known sections",
			input: `{"summary": "nothing to report"}`,
			want:  common.NewSwotAnalysis(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFlexible(tt.input))
		})
	}
}

func TestParseFlexible_CaseVariantKeysKeepOrder(t *testing.T) {
	input := `{"strengths": ["B"], "Strengths": ["A"], "THREATS": ["D"], "threats": ["C"]}`
	for range 50 {
		got := ParseFlexible(input)
		assert.Equal(t, []string{"A", "B"}, got.Strengths)
		assert.Equal(t, []string{"D", "C"}, got.Threats)
	}
}
