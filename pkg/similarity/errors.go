package similarity

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is matched by every InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data for similarity")

// InsufficientDataError is returned when fewer than two sentences reach the
// vectorizer. Similarity between fewer than two items is undefined.
type InsufficientDataError struct {
	Count int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for similarity: need at least 2 sentences, got %d", e.Count)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
