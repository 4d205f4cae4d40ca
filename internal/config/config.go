// Package config reads the process configuration from the environment and
// builds the long-lived dependencies shared by the binaries.
package config

import (
	"fmt"
	"time"

	"github.com/OFFIS-RIT/feedlens/internal/util"
	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/ai/ollama"
	"github.com/OFFIS-RIT/feedlens/pkg/ai/openai"
	"github.com/OFFIS-RIT/feedlens/pkg/analysis"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	"github.com/OFFIS-RIT/feedlens/pkg/logger/console"
	"github.com/OFFIS-RIT/feedlens/pkg/sentiment"
	"github.com/OFFIS-RIT/feedlens/pkg/similarity"
)

// AI configures the generative-text service.
type AI struct {
	Adapter           string
	Model             string
	URL               string
	Key               string
	ParallelRequests  int
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxRetries        int
	MaxPromptTokens   int
}

// Analysis configures the pipeline stages.
type Analysis struct {
	DuplicateThreshold float64
	ClusterThreshold   float64
	SampleClusters     int
	SentimentThreshold float64
	SentimentLexicon   string
	StructuredSwot     bool
}

// Config is the full process configuration.
type Config struct {
	Debug     bool
	LogFormat string
	Port      string

	DatabaseURL    string
	MigrationsPath string
	Bucket         string

	AI       AI
	Analysis Analysis
}

// Load reads the configuration from the environment, after loading a .env
// file if one exists.
func Load() Config {
	util.LoadEnv()

	return Config{
		Debug:     util.GetEnvBool("DEBUG", false),
		LogFormat: util.GetEnvString("LOG_FORMAT", "text"),
		Port:      util.GetEnvString("PORT", "8080"),

		DatabaseURL:    util.GetEnv("DATABASE_URL"),
		MigrationsPath: util.GetEnvString("MIGRATIONS_PATH", "migrations"),
		Bucket:         util.GetEnvString("AWS_BUCKET", "feedlens"),
		AI: AI{
			Adapter:           util.GetEnvString("AI_ADAPTER", "openai"),
			Model:             util.GetEnvString("AI_CHAT_MODEL", "gpt-4.1-mini"),
			URL:               util.GetEnv("AI_CHAT_URL"),
			Key:               util.GetEnv("AI_CHAT_KEY"),
			ParallelRequests:  util.GetEnvInt("AI_PARALLEL_REQ", 4),
			RequestsPerSecond: util.GetEnvNumeric("AI_REQUESTS_PER_SECOND", 0),
			Timeout:           util.GetEnvDuration("AI_TIMEOUT", analysis.DefaultTimeout),
			MaxRetries:        util.GetEnvInt("AI_MAX_RETRIES", 1),
			MaxPromptTokens:   util.GetEnvInt("AI_MAX_PROMPT_TOKENS", analysis.DefaultMaxPromptTokens),
		},
		Analysis: Analysis{
			DuplicateThreshold: util.GetEnvNumeric("DUPLICATE_THRESHOLD", similarity.DefaultDuplicateThreshold),
			ClusterThreshold:   util.GetEnvNumeric("CLUSTER_THRESHOLD", similarity.DefaultClusterThreshold),
			SampleClusters:     util.GetEnvInt("SAMPLE_CLUSTERS", analysis.DefaultSampleClusters),
			SentimentThreshold: util.GetEnvNumeric("SENTIMENT_THRESHOLD", sentiment.DefaultThreshold),
			SentimentLexicon:   util.GetEnv("SENTIMENT_LEXICON"),
			StructuredSwot:     util.GetEnvBool("SWOT_STRUCTURED", false),
		},
	}
}

// InitLogger registers the console backend.
func (c Config) InitLogger(prefix string) {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  c.Debug,
		JSON:   c.LogFormat == "json",
		Prefix: prefix,
	}))
}

// NewTextClient builds the generative-text client. Without a key for the
// openai adapter it returns nil; generating calls then fail with an
// ai.GenerationError while the local stages keep working.
func (c Config) NewTextClient() (ai.TextClient, error) {
	switch c.AI.Adapter {
	case "openai":
		if c.AI.Key == "" {
			logger.Warn("AI_CHAT_KEY is not set, generation is disabled")
			return nil, nil
		}
		return openai.NewTextOpenAIClient(openai.NewTextOpenAIClientParams{
			Model:             c.AI.Model,
			ChatURL:           c.AI.URL,
			ChatKey:           c.AI.Key,
			RequestsPerSecond: c.AI.RequestsPerSecond,
			MaxRetries:        c.AI.MaxRetries,
		}), nil
	case "ollama":
		client, err := ollama.NewTextOllamaClient(ollama.NewTextOllamaClientParams{
			Model:                 c.AI.Model,
			BaseURL:               c.AI.URL,
			ApiKey:                c.AI.Key,
			MaxConcurrentRequests: int64(c.AI.ParallelRequests),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI_ADAPTER %q", c.AI.Adapter)
	}
}

// NewAnalyzer builds the sentiment analyzer, loading a custom lexicon if
// one is configured.
func (c Config) NewAnalyzer() (*sentiment.Analyzer, error) {
	var lex *sentiment.Lexicon
	if c.Analysis.SentimentLexicon != "" {
		var err error
		lex, err = sentiment.LoadLexicon(c.Analysis.SentimentLexicon)
		if err != nil {
			return nil, err
		}
	}
	return sentiment.NewAnalyzer(lex, sentiment.WithThreshold(c.Analysis.SentimentThreshold)), nil
}

// PipelineOptions returns the pipeline options selected by the
// configuration.
func (c Config) PipelineOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithDuplicateThreshold(c.Analysis.DuplicateThreshold),
		analysis.WithClusterThreshold(c.Analysis.ClusterThreshold),
		analysis.WithSampleClusters(c.Analysis.SampleClusters),
		analysis.WithTimeout(c.AI.Timeout),
		analysis.WithMaxPromptTokens(c.AI.MaxPromptTokens),
		analysis.WithStructuredSwot(c.Analysis.StructuredSwot),
	}
}

// NewPipeline wires the analysis pipeline with client and the configured
// analyzer. client may be nil.
func (c Config) NewPipeline(client ai.TextClient) (*analysis.Pipeline, error) {
	analyzer, err := c.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return analysis.New(client, analyzer, c.PipelineOptions()...), nil
}
