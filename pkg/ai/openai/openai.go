package openai

import (
	"sync"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"
)

// TextOpenAIClient implements ai.TextClient on top of an OpenAI compatible
// chat completions endpoint.
//
// A TextOpenAIClient should be created using NewTextOpenAIClient.
type TextOpenAIClient struct {
	model string

	limiter *rate.Limiter

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewTextOpenAIClientParams defines the configuration parameters for creating
// a new TextOpenAIClient.
//
// ChatURL may be empty to use the public OpenAI endpoint. RequestsPerSecond
// limits outgoing requests; zero disables the limit. MaxRetries is handed to
// the SDK, which retries transient failures itself.
type NewTextOpenAIClientParams struct {
	Model   string
	ChatURL string
	ChatKey string

	RequestsPerSecond float64
	MaxRetries        int
}

// NewTextOpenAIClient creates and returns a new TextOpenAIClient configured
// with the provided parameters.
//
// Example:
//
//	client := openai.NewTextOpenAIClient(openai.NewTextOpenAIClientParams{
//		Model:   "gpt-4.1-mini",
//		ChatKey: os.Getenv("AI_CHAT_KEY"),
//	})
func NewTextOpenAIClient(params NewTextOpenAIClientParams) *TextOpenAIClient {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if params.RequestsPerSecond > 0 {
		burst := max(1, int(params.RequestsPerSecond))
		limiter = rate.NewLimiter(rate.Limit(params.RequestsPerSecond), burst)
	}

	return &TextOpenAIClient{
		model:      params.Model,
		limiter:    limiter,
		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey, params.MaxRetries),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
	maxRetries int,
) *openai.Client {
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(max(0, maxRetries)),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
