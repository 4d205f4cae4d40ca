package sentiment

import (
	"errors"

	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

// ErrEmptyInput is matched by every EmptyInputError.
var ErrEmptyInput = errors.New("empty input")

// EmptyInputError is returned when an aggregate is requested over nothing.
// The mean polarity of zero records is undefined.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return e.Op + ": empty input"
}

func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// Summarize counts the records per label and averages their polarity. The
// mean is rounded to three decimals.
func Summarize(records []common.SentimentRecord) (common.SentimentSummary, error) {
	if len(records) == 0 {
		return common.SentimentSummary{}, &EmptyInputError{Op: "summarize"}
	}

	s := common.SentimentSummary{Total: len(records)}
	var sum float64
	for _, r := range records {
		switch r.Label {
		case common.Positive:
			s.Positive++
		case common.Negative:
			s.Negative++
		default:
			s.Neutral++
		}
		sum += r.Polarity
	}
	s.AveragePolarity = round3(sum / float64(len(records)))
	return s, nil
}
