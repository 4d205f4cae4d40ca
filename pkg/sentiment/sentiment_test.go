package sentiment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/feedlens/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_StrictBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		polarity  float64
		want      common.SentimentLabel
	}{
		{"default at cutoff", DefaultThreshold, 0.1, common.Neutral},
		{"default below negative cutoff", DefaultThreshold, -0.1, common.Neutral},
		{"default above", DefaultThreshold, 0.1001, common.Positive},
		{"default below", DefaultThreshold, -0.1001, common.Negative},
		{"legacy at cutoff", LegacyThreshold, 0.2, common.Neutral},
		{"legacy negative at cutoff", LegacyThreshold, -0.2, common.Neutral},
		{"legacy between cutoffs", LegacyThreshold, 0.15, common.Neutral},
		{"legacy above", LegacyThreshold, 0.21, common.Positive},
		{"legacy below", LegacyThreshold, -0.21, common.Negative},
		{"zero", DefaultThreshold, 0, common.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(nil, WithThreshold(tt.threshold))
			assert.Equal(t, tt.want, a.Classify(tt.polarity))
		})
	}
}

func TestWithThreshold_Magnitude(t *testing.T) {
	a := NewAnalyzer(nil, WithThreshold(-0.2))
	assert.Equal(t, 0.2, a.Threshold())
	assert.Equal(t, DefaultThreshold, NewAnalyzer(nil).Threshold())
}

func TestScore(t *testing.T) {
	a := NewAnalyzer(nil)

	assert.Equal(t, Score{}, a.Score("the parcel arrived on tuesday"))
	assert.Equal(t, Score{}, a.Score(""))

	great := a.Score("great product")
	assert.InDelta(t, 0.8, great.Polarity, 1e-9)
	assert.InDelta(t, 0.75, great.Subjectivity, 1e-9)

	// mean over hits
	mixed := a.Score("good food but slow service")
	assert.InDelta(t, (0.7-0.3)/2, mixed.Polarity, 1e-9)

	// intensifier scales only the word right after it
	very := a.Score("very good")
	assert.InDelta(t, 0.91, very.Polarity, 1e-9)
	assert.InDelta(t, 0.7, a.Score("very much the product is good").Polarity, 1e-9)
	assert.InDelta(t, 0.6, a.Score("very much the product is good").Subjectivity, 1e-9)

	// polarity stays clamped even when an intensifier overshoots
	assert.Equal(t, 1.0, a.Score("extremely excellent").Polarity)
	assert.Equal(t, 1.0, a.Score("extremely excellent").Subjectivity)
}

func TestScore_Negation(t *testing.T) {
	a := NewAnalyzer(nil)

	assert.InDelta(t, -0.35, a.Score("not good").Polarity, 1e-9)
	assert.InDelta(t, -0.35, a.Score("don't think it's good").Polarity, 1e-9)
	// negation window is three tokens
	assert.InDelta(t, 0.7, a.Score("not that i think it is good").Polarity, 1e-9)
	assert.InDelta(t, 0.35, a.Score("never bad").Polarity, 1e-9)
}

func TestAnalyze(t *testing.T) {
	a := NewAnalyzer(nil)

	r := a.Analyze("terrible support")
	assert.Equal(t, "terrible support", r.Text)
	assert.Equal(t, -1.0, r.Polarity)
	assert.Equal(t, common.Negative, r.Label)

	r = a.Analyze("the parcel arrived on tuesday")
	assert.Equal(t, common.Neutral, r.Label)
	assert.Zero(t, r.Polarity)
}

func TestAnalyze_ThresholdChangesLabel(t *testing.T) {
	// "fast" scores 0.2 on its own
	assert.Equal(t, common.Positive, NewAnalyzer(nil).Analyze("fast").Label)
	assert.Equal(t, common.Neutral, NewAnalyzer(nil, WithThreshold(LegacyThreshold)).Analyze("fast").Label)
}

func TestAnalyzeBatch_PreservesOrder(t *testing.T) {
	a := NewAnalyzer(nil)
	in := []string{"great product", "terrible support", "loved the packaging", "it arrived"}

	got := a.AnalyzeBatch(in)
	require.Len(t, got, len(in))
	for i, r := range got {
		assert.Equal(t, in[i], r.Text)
	}
	assert.Equal(t, common.Positive, got[0].Label)
	assert.Equal(t, common.Negative, got[1].Label)
	assert.Equal(t, common.Positive, got[2].Label)
	assert.Equal(t, common.Neutral, got[3].Label)

	assert.Empty(t, a.AnalyzeBatch(nil))
}

func TestSummarize(t *testing.T) {
	records := []common.SentimentRecord{
		{Text: "a", Polarity: 0.8, Label: common.Positive},
		{Text: "b", Polarity: -1, Label: common.Negative},
		{Text: "c", Polarity: 0.7, Label: common.Positive},
		{Text: "d", Polarity: 0, Label: common.Neutral},
	}

	s, err := Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, common.SentimentSummary{
		Total:           4,
		Positive:        2,
		Neutral:         1,
		Negative:        1,
		AveragePolarity: 0.125,
	}, s)
	assert.Equal(t, s.Total, s.Positive+s.Neutral+s.Negative)
}

func TestSummarize_RoundsMean(t *testing.T) {
	s, err := Summarize([]common.SentimentRecord{
		{Polarity: 0.1, Label: common.Neutral},
		{Polarity: 0.2, Label: common.Positive},
		{Polarity: 0.2, Label: common.Positive},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.167, s.AveragePolarity)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	var empty *EmptyInputError
	assert.True(t, errors.As(err, &empty))
}

func TestOverview(t *testing.T) {
	a := NewAnalyzer(nil)

	o := a.Overview("Great product, but the support was slow.")
	assert.Equal(t, 7, o.Length)
	assert.InDelta(t, 0.25, o.Polarity, 1e-9)
	assert.Equal(t, common.Positive, o.Label)
	assert.InDelta(t, 0.575, o.Subjectivity, 1e-9)
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	data := []byte(`
words:
  splendid: {polarity: 0.9, subjectivity: 0.8}
intensifiers:
  truly: 2
negations: [hardly]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	a := NewAnalyzer(lex)
	assert.Equal(t, 1.0, a.Score("truly splendid").Polarity)
	assert.InDelta(t, -0.45, a.Score("hardly splendid").Polarity, 1e-9)
	assert.Zero(t, a.Score("great").Polarity)
}

func TestParseLexicon_Invalid(t *testing.T) {
	tests := map[string]string{
		"no words":     "negations: [not]",
		"bad polarity": "words:\n  odd: {polarity: 2, subjectivity: 0.5}",
		"bad yaml":     "words: [",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLexicon([]byte(in))
			assert.Error(t, err)
		})
	}

	_, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
