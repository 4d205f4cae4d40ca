// Package sentiment scores feedback sentences with a local word lexicon and
// classifies them as positive, neutral or negative.
package sentiment

import (
	"math"
	"regexp"
	"strings"

	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

const (
	// DefaultThreshold is the polarity a sentence must exceed (or fall below,
	// negated) to be classified as positive (or negative).
	DefaultThreshold = 0.1
	// LegacyThreshold is the stricter cutoff older report views used. It is
	// kept selectable through WithThreshold and is not applied implicitly.
	LegacyThreshold = 0.2

	negationWindow = 3
	negationFactor = -0.5
)

var reWord = regexp.MustCompile(`[\p{L}\p{N}']+`)

// Score is the raw sentiment of a piece of text.
type Score struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Analyzer scores and classifies text. It is safe for concurrent use.
type Analyzer struct {
	lexicon   *Lexicon
	threshold float64
}

type Option func(*Analyzer)

// WithThreshold sets the classification cutoff. Negative values are
// interpreted by their magnitude.
func WithThreshold(t float64) Option {
	return func(a *Analyzer) {
		a.threshold = math.Abs(t)
	}
}

// NewAnalyzer returns an analyzer backed by lex. A nil lexicon selects the
// embedded default.
func NewAnalyzer(lex *Lexicon, opts ...Option) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	a := &Analyzer{lexicon: lex, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Threshold returns the classification cutoff in use.
func (a *Analyzer) Threshold() float64 {
	return a.threshold
}

// Score computes polarity in [-1, 1] and subjectivity in [0, 1] as the mean
// over all lexicon words found in text. Text without any lexicon word scores
// zero on both axes.
func (a *Analyzer) Score(text string) Score {
	tokens := tokenize(text)

	var polarity, subjectivity float64
	hits := 0
	scale := 1.0
	for i, tok := range tokens {
		if f, ok := a.lexicon.Intensifiers[tok]; ok {
			scale = f
			continue
		}
		e, ok := a.lexicon.Words[tok]
		if !ok {
			scale = 1
			continue
		}

		p := e.Polarity * scale
		if a.negated(tokens, i) {
			p *= negationFactor
		}
		polarity += p
		subjectivity += e.Subjectivity * scale
		hits++
		scale = 1
	}

	if hits == 0 {
		return Score{}
	}
	n := float64(hits)
	return Score{
		Polarity:     clamp(polarity/n, -1, 1),
		Subjectivity: clamp(subjectivity/n, 0, 1),
	}
}

// Classify maps a polarity to a label. Both comparisons are strict, so a
// polarity exactly at the cutoff is neutral.
func (a *Analyzer) Classify(polarity float64) common.SentimentLabel {
	switch {
	case polarity > a.threshold:
		return common.Positive
	case polarity < -a.threshold:
		return common.Negative
	default:
		return common.Neutral
	}
}

// Analyze scores and classifies a single sentence. The label is derived
// from the unrounded polarity; the record carries it rounded to three
// decimals.
func (a *Analyzer) Analyze(text string) common.SentimentRecord {
	s := a.Score(text)
	return common.SentimentRecord{
		Text:     text,
		Polarity: round3(s.Polarity),
		Label:    a.Classify(s.Polarity),
	}
}

// AnalyzeBatch analyzes every sentence and returns the records in input
// order.
func (a *Analyzer) AnalyzeBatch(sentences []string) []common.SentimentRecord {
	out := make([]common.SentimentRecord, len(sentences))
	for i, s := range sentences {
		out[i] = a.Analyze(s)
	}
	return out
}

// Overview scores a whole document at once.
func (a *Analyzer) Overview(text string) common.SentimentOverview {
	s := a.Score(text)
	return common.SentimentOverview{
		Label:        a.Classify(s.Polarity),
		Polarity:     round3(s.Polarity),
		Subjectivity: round3(s.Subjectivity),
		Length:       len(strings.Fields(text)),
	}
}

func (a *Analyzer) negated(tokens []string, i int) bool {
	for j := max(0, i-negationWindow); j < i; j++ {
		if a.lexicon.isNegation(tokens[j]) {
			return true
		}
	}
	return false
}

// tokenize lowercases text and drops apostrophes so "don't" matches "dont".
func tokenize(text string) []string {
	words := reWord.FindAllString(strings.ToLower(text), -1)
	out := words[:0]
	for _, w := range words {
		w = strings.ReplaceAll(w, "'", "")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
