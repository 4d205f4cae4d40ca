package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"

	"github.com/openai/openai-go/v3"
)

// GenerateCompletion sends a single-turn prompt to the chat model and
// returns the generated completion as plain text.
//
// Example:
//
//	resp, err := client.GenerateCompletion(ctx, prompt,
//		ai.WithSystemPrompts(ai.SwotSystemPrompt),
//		ai.WithTemperature(ai.SwotTemperature),
//	)
func (c *TextOpenAIClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.NewGenerateOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.3,
	}, opts...)

	body := c.newRequest(prompt, options)

	response, err := c.complete(ctx, body)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response from model")
	}
	return response.Choices[0].Message.Content, nil
}

// GenerateCompletionWithFormat sends a prompt to the chat model and
// unmarshals the response into out, using a JSON schema derived from out to
// enforce structure.
//
// Example:
//
//	var out common.SwotAnalysis
//	err := client.GenerateCompletionWithFormat(ctx, "swot", "SWOT analysis", prompt, &out)
func (c *TextOpenAIClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      ai.GenerateSchema(out),
		Strict:      openai.Bool(true),
	}

	options := ai.NewGenerateOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.1,
	}, opts...)

	body := c.newRequest(prompt, options)
	body.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: schemaParam,
		},
	}

	response, err := c.complete(ctx, body)
	if err != nil {
		return err
	}
	if len(response.Choices) == 0 {
		return fmt.Errorf("no choices in response from model")
	}
	message := response.Choices[0].Message.Content
	if message == "" {
		return fmt.Errorf("empty response from model (finish_reason: %s)", response.Choices[0].FinishReason)
	}
	return ai.UnmarshalFlexible(message, out)
}

func (c *TextOpenAIClient) newRequest(prompt string, options ai.GenerateOptions) openai.ChatCompletionNewParams {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(options.SystemPrompts)+1)
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}
	msgs = append(msgs, openai.UserMessage(prompt))

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(options.Model),
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		body.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}
	return body
}

func (c *TextOpenAIClient) complete(
	ctx context.Context,
	body openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		logger.Debug("[AI] Chat completion failed", "model", body.Model, "err", err)
		return nil, err
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   time.Since(start).Milliseconds(),
	})
	return response, nil
}
