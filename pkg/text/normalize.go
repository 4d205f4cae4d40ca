// Package text holds the pure text stages of the feedback pipeline:
// normalization, sentence segmentation and trimming of generated text.
package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var reURL = regexp.MustCompile(`http\S+|www\S+`)

// Normalize lowercases s, removes URLs, punctuation and symbols, and
// collapses every whitespace run (newlines included) to a single space.
// The result is trimmed.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = reURL.ReplaceAllString(s, "")
	s = stripPunctuation(s)
	// stripping punctuation can glue a new "http…" token together
	s = reURL.ReplaceAllString(s, "")
	// removed symbols can leave a letter and a combining mark adjacent
	s = norm.NFC.String(s)
	return collapseSpaces(s)
}

// Clean is the lighter preparation used for prompts: URLs are removed and
// whitespace is collapsed, but case and punctuation are kept so the model
// still sees sentence structure.
func Clean(s string) string {
	s = reURL.ReplaceAllString(s, "")
	return collapseSpaces(s)
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
