// Package ai defines the contract between the analysis pipeline and the
// external generative-text service, plus the prompts and helpers shared by
// the service adapters.
package ai

import (
	"context"
)

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
	MaxTokens     int      // Upper bound for generated tokens, 0 leaves it to the service
}

// ModelMetrics contains performance metrics from AI model operations.
type ModelMetrics struct {
	Requests       int     `json:"requests"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// NewGenerateOptions applies opts on top of the given defaults.
func NewGenerateOptions(defaults GenerateOptions, opts ...GenerateOption) GenerateOptions {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Higher values (e.g., 1.0) produce more random outputs, while lower values
// (e.g., 0.2) make outputs more focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens returns a GenerateOption that caps the length of the
// generated response.
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = n
	}
}

// TextClient is the generative-text service used for SWOT extraction and
// interpretation. Implementations must be safe for concurrent use and must
// honour ctx cancellation.
type TextClient interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error

	ResetMetrics()
	GetMetrics() ModelMetrics
}
