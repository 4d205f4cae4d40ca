package text

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

// MinSentenceLength is the number of characters a fragment must exceed to
// count as a sentence. Shorter fragments are treated as noise.
const MinSentenceLength = 10

var reTerminal = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits s on runs of terminal punctuation and returns the
// trimmed fragments longer than MinSentenceLength characters, in order.
// Text without terminal punctuation is a single fragment.
func SplitSentences(s string) []string {
	parts := reTerminal.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > MinSentenceLength {
			out = append(out, p)
		}
	}
	return out
}

// Segment turns a raw document into indexed, normalized sentences.
//
// The raw text is split before it is normalized, because normalization
// removes the terminal punctuation the split depends on. URLs are removed
// first so their dots do not produce bogus boundaries. The length filter
// applies to the normalized fragment.
func Segment(raw string) []common.Sentence {
	raw = reURL.ReplaceAllString(strings.ToLower(raw), "")

	parts := reTerminal.Split(raw, -1)
	out := make([]common.Sentence, 0, len(parts))
	for _, p := range parts {
		p = Normalize(p)
		if utf8.RuneCountInString(p) <= MinSentenceLength {
			continue
		}
		out = append(out, common.Sentence{Index: len(out), Text: p})
	}
	return out
}

// Texts returns the text of every sentence in order.
func Texts(sentences []common.Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}
