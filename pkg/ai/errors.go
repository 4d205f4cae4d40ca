package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoClient is wrapped when generation is requested without a configured
// client.
var ErrNoClient = errors.New("no generative text client configured")

// ErrEmptyResponse is wrapped when the service answers with no text.
var ErrEmptyResponse = errors.New("empty response")

// GenerationError reports a failed call to the generative-text service:
// transport errors, timeouts, rejected credentials or an unusable response.
// Op names the pipeline step that issued the call.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call ran out of time.
func (e *GenerationError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Generate issues one completion through client and wraps every failure in
// a GenerationError. A nil client and a blank response are failures too.
func Generate(ctx context.Context, client TextClient, op, prompt string, opts ...GenerateOption) (string, error) {
	if client == nil {
		return "", &GenerationError{Op: op, Err: ErrNoClient}
	}

	out, err := client.GenerateCompletion(ctx, prompt, opts...)
	if err != nil {
		return "", &GenerationError{Op: op, Err: err}
	}
	if strings.TrimSpace(out) == "" {
		return "", &GenerationError{Op: op, Err: ErrEmptyResponse}
	}
	return out, nil
}

// GenerateFormat is Generate for structured output decoded into out.
func GenerateFormat(
	ctx context.Context,
	client TextClient,
	op, name, description, prompt string,
	out any,
	opts ...GenerateOption,
) error {
	if client == nil {
		return &GenerationError{Op: op, Err: ErrNoClient}
	}
	if err := client.GenerateCompletionWithFormat(ctx, name, description, prompt, out, opts...); err != nil {
		return &GenerationError{Op: op, Err: err}
	}
	return nil
}
