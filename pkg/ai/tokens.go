package ai

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "o200k_base"

var loadEncoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding(tokenEncoding)
})

// CountTokens returns the number of tokens text encodes to.
func CountTokens(text string) (int, error) {
	enc, err := loadEncoding()
	if err != nil {
		return 0, fmt.Errorf("failed to load %s encoding: %w", tokenEncoding, err)
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// TruncateToTokens cuts text to at most maxTokens tokens. Text that already
// fits, or a non-positive budget, is returned unchanged.
func TruncateToTokens(text string, maxTokens int) (string, error) {
	// every token covers at least one byte
	if maxTokens <= 0 || len(text) <= maxTokens {
		return text, nil
	}

	enc, err := loadEncoding()
	if err != nil {
		return "", fmt.Errorf("failed to load %s encoding: %w", tokenEncoding, err)
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, nil
	}
	return enc.Decode(tokens[:maxTokens]), nil
}
