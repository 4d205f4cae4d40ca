package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"

	"github.com/ollama/ollama/api"
)

const (
	defaultContext = 4096
	contextReserve = 200
)

// GenerateCompletion sends a single-turn prompt and returns assistant text.
func (c *TextOllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.NewGenerateOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.3,
	}, opts...)

	return c.chat(ctx, c.newRequest(prompt, options))
}

// GenerateCompletionWithFormat enforces a JSON schema and unmarshals into out.
func (c *TextOllamaClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	if out == nil {
		return errors.New("out must be a non-nil pointer")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("out must be a non-nil pointer")
	}

	formatBytes, err := json.Marshal(ai.GenerateSchema(out))
	if err != nil {
		return err
	}

	options := ai.NewGenerateOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.1,
	}, opts...)

	req := c.newRequest(prompt, options)
	req.Format = json.RawMessage(formatBytes)

	content, err := c.chat(ctx, req)
	if err != nil {
		return err
	}
	return ai.UnmarshalFlexible(content, out)
}

func (c *TextOllamaClient) newRequest(prompt string, options ai.GenerateOptions) *api.ChatRequest {
	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sys := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}
	if n := contextSize(msgs); n > defaultContext {
		req.Options["num_ctx"] = n
	}
	return req
}

// contextSize estimates the context window a request needs. Short prompts
// never exceed the default window, so they skip tokenization.
func contextSize(msgs []api.Message) int {
	size := 0
	for _, m := range msgs {
		size += len(m.Content)
	}
	if size+contextReserve <= defaultContext {
		return 0
	}

	tokens := contextReserve
	for _, m := range msgs {
		n, err := ai.CountTokens(m.Content)
		if err != nil {
			logger.Debug("[AI] Token count unavailable, using byte length", "err", err)
			n = len(m.Content)
		}
		tokens += n
	}
	return tokens
}

func (c *TextOllamaClient) chat(ctx context.Context, req *api.ChatRequest) (string, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
			final.Metrics = cr.Metrics
		}
		return nil
	}); err != nil {
		return "", err
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	})

	return final.Message.Content, nil
}
