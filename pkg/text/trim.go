package text

import "strings"

// TrimToCompleteSentences drops everything after the last terminal
// punctuation mark, so a response cut off by a token limit ends on a
// complete sentence. Text without any terminal mark yields "".
func TrimToCompleteSentences(s string) string {
	idx := strings.LastIndexAny(s, ".!?")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(s[:idx+1])
}

// WordCount returns the number of whitespace separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
