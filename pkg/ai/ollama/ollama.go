package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

const defaultBaseURL = "http://localhost:11434"

// TextOllamaClient implements ai.TextClient using Ollama as the backend.
type TextOllamaClient struct {
	model string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	Client *api.Client
}

// NewTextOllamaClientParams contains configuration options for creating a new TextOllamaClient.
//
// MaxConcurrentRequests bounds the number of requests in flight; values
// below one allow a single request at a time.
type NewTextOllamaClientParams struct {
	Model string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewTextOllamaClient creates a new Ollama-based client. It connects to the
// Ollama server at BaseURL, or the local default if empty.
func NewTextOllamaClient(
	params NewTextOllamaClientParams,
) (*TextOllamaClient, error) {
	base := params.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if params.ApiKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.ApiKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	return &TextOllamaClient{
		model:   params.Model,
		reqLock: semaphore.NewWeighted(max(1, params.MaxConcurrentRequests)),
		Client:  api.NewClient(u, httpClient),
	}, nil
}
