// Package analysis sequences the text stages into the end-to-end feedback
// analysis: quick summary, sentiment, SWOT extraction and interpretation.
//
// A Pipeline holds no per-call state. The generative-text client is passed
// in once and shared by all calls.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/common"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	"github.com/OFFIS-RIT/feedlens/pkg/sentiment"
	"github.com/OFFIS-RIT/feedlens/pkg/similarity"
	"github.com/OFFIS-RIT/feedlens/pkg/swot"
	"github.com/OFFIS-RIT/feedlens/pkg/text"

	"golang.org/x/sync/errgroup"
)

// Pipeline runs the analysis stages with one configuration.
type Pipeline struct {
	client   ai.TextClient
	analyzer *sentiment.Analyzer

	duplicateThreshold float64
	clusterThreshold   float64
	sampleClusters     int
	timeout            time.Duration
	maxPromptTokens    int
	structuredSwot     bool
}

// New creates a Pipeline. client may be nil, in which case every generating
// call fails with an ai.GenerationError. A nil analyzer uses the default
// lexicon and threshold.
func New(client ai.TextClient, analyzer *sentiment.Analyzer, opts ...Option) *Pipeline {
	if analyzer == nil {
		analyzer = sentiment.NewAnalyzer(nil)
	}
	p := defaults()
	p.client = client
	p.analyzer = analyzer
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

// Sentences segments raw into indexed, normalized sentences.
func (p *Pipeline) Sentences(raw string) []common.Sentence {
	return text.Segment(raw)
}

// Summarize computes the quick summary of raw: the sentence count, the
// number of near-duplicate pairs and clusters, and the member texts of the
// first clusters.
//
// With fewer than two sentences there is nothing to compare, and the
// summary reports zero duplicates and zero clusters.
func (p *Pipeline) Summarize(raw string) common.QuickSummary {
	sentences := p.Sentences(raw)
	out := common.QuickSummary{
		TotalSentences: len(sentences),
		SampleClusters: [][]string{},
	}

	vectors, err := similarity.Vectorize(sentences)
	if err != nil {
		logger.Debug("[Analysis] Skipping similarity", "err", err)
		return out
	}
	m := similarity.CosineMatrix(vectors)

	duplicates := similarity.FindDuplicates(sentences, m, p.duplicateThreshold)
	clusters := similarity.SeedClusters(sentences, m, p.clusterThreshold)

	out.NumDuplicates = len(duplicates)
	out.NumClusters = len(clusters)
	for _, c := range clusters[:min(len(clusters), p.sampleClusters)] {
		out.SampleClusters = append(out.SampleClusters, c.Texts())
	}

	logger.Debug("[Analysis] Summary computed",
		"sentences", out.TotalSentences,
		"duplicates", out.NumDuplicates,
		"clusters", out.NumClusters,
	)
	return out
}

// Sentiment classifies every sentence of raw and summarizes the result.
// A document without sentences is a sentiment.EmptyInputError.
func (p *Pipeline) Sentiment(raw string) (common.SentimentReport, error) {
	records := p.analyzer.AnalyzeBatch(text.Texts(p.Sentences(raw)))
	summary, err := sentiment.Summarize(records)
	if err != nil {
		return common.SentimentReport{}, err
	}
	return common.SentimentReport{Records: records, Summary: summary}, nil
}

// Overview scores raw as a single document.
func (p *Pipeline) Overview(raw string) common.SentimentOverview {
	return p.analyzer.Overview(text.Clean(raw))
}

// Swot asks the generative-text service for a SWOT analysis of raw.
//
// A response that only partly follows the requested format still yields a
// result; missing sections are empty and logged. Service failures, including
// the timeout, are returned as ai.GenerationError.
func (p *Pipeline) Swot(ctx context.Context, raw string) (common.SwotAnalysis, error) {
	cleaned := text.Clean(raw)
	if cleaned == "" {
		return common.NewSwotAnalysis(), &sentiment.EmptyInputError{Op: "swot"}
	}

	feedback, err := ai.TruncateToTokens(cleaned, p.maxPromptTokens)
	if err != nil {
		return common.NewSwotAnalysis(), &ai.GenerationError{Op: "swot", Err: err}
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	opts := []ai.GenerateOption{
		ai.WithSystemPrompts(ai.SwotSystemPrompt),
		ai.WithTemperature(ai.SwotTemperature),
		ai.WithMaxTokens(ai.SwotMaxTokens),
	}

	var result common.SwotAnalysis
	if p.structuredSwot {
		result = common.NewSwotAnalysis()
		prompt := fmt.Sprintf(ai.SwotFormatPrompt, feedback)
		if err := ai.GenerateFormat(ctx, p.client, "swot", "swot_analysis", "SWOT analysis of customer feedback", prompt, &result, opts...); err != nil {
			return common.NewSwotAnalysis(), err
		}
		fillSections(&result)
	} else {
		response, err := ai.Generate(ctx, p.client, "swot", fmt.Sprintf(ai.SwotPrompt, feedback), opts...)
		if err != nil {
			return common.NewSwotAnalysis(), err
		}
		result = swot.ParseFlexible(response)
	}

	if missing := swot.Missing(result); len(missing) > 0 {
		logger.Warn("[Analysis] SWOT response missing sections", "missing", missing)
	}
	return result, nil
}

// Interpret sends a free-form prompt to the generative-text service and
// returns the answer cut back to its last complete sentence. An answer
// without any terminal punctuation yields "".
func (p *Pipeline) Interpret(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	response, err := ai.Generate(ctx, p.client, "interpret", prompt,
		ai.WithSystemPrompts(ai.InterpretationSystemPrompt),
		ai.WithTemperature(ai.InterpretationTemperature),
		ai.WithMaxTokens(ai.InterpretationMaxTokens),
	)
	if err != nil {
		return "", err
	}

	return text.TrimToCompleteSentences(response), nil
}

// InterpretSummary asks for an interpretation of computed statistics.
// sentimentSummary may be nil.
func (p *Pipeline) InterpretSummary(
	ctx context.Context,
	summary common.QuickSummary,
	sentimentSummary *common.SentimentSummary,
) (string, error) {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	sentimentJSON := []byte("not available")
	if sentimentSummary != nil {
		sentimentJSON, err = json.MarshalIndent(sentimentSummary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode sentiment summary: %w", err)
		}
	}

	return p.Interpret(ctx, fmt.Sprintf(ai.SummaryInterpretationPrompt, summaryJSON, sentimentJSON))
}

// Report runs the full analysis of raw. The local stages are deterministic;
// the SWOT stage, when requested, runs concurrently with them and its
// failure fails the report.
func (p *Pipeline) Report(ctx context.Context, raw string, withSwot bool) (common.Report, error) {
	var report common.Report

	g, gctx := errgroup.WithContext(ctx)
	if withSwot {
		g.Go(func() error {
			result, err := p.Swot(gctx, raw)
			if err != nil {
				return err
			}
			report.Swot = &result
			return nil
		})
	}

	g.Go(func() error {
		report.Summary = p.Summarize(raw)
		report.Overview = p.Overview(raw)

		s, err := p.Sentiment(raw)
		switch {
		case errors.Is(err, sentiment.ErrEmptyInput):
			logger.Debug("[Analysis] No sentences for sentiment")
		case err != nil:
			return err
		default:
			report.Sentiment = &s
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return common.Report{}, err
	}
	return report, nil
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func fillSections(a *common.SwotAnalysis) {
	for _, s := range []*[]string{&a.Strengths, &a.Weaknesses, &a.Opportunities, &a.Threats} {
		if *s == nil {
			*s = []string{}
		}
	}
}
