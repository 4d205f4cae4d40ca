package analysis

import (
	"time"

	"github.com/OFFIS-RIT/feedlens/pkg/similarity"
)

const (
	DefaultSampleClusters  = 3
	DefaultTimeout         = 60 * time.Second
	DefaultMaxPromptTokens = 6000
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDuplicateThreshold sets the similarity a pair must exceed to count as
// a near duplicate.
func WithDuplicateThreshold(t float64) Option {
	return func(p *Pipeline) {
		p.duplicateThreshold = t
	}
}

// WithClusterThreshold sets the similarity to a seed a sentence must exceed
// to join its cluster.
func WithClusterThreshold(t float64) Option {
	return func(p *Pipeline) {
		p.clusterThreshold = t
	}
}

// WithSampleClusters sets how many clusters the quick summary includes.
func WithSampleClusters(n int) Option {
	return func(p *Pipeline) {
		p.sampleClusters = max(0, n)
	}
}

// WithTimeout bounds every call to the generative-text service. Zero or a
// negative value disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// WithMaxPromptTokens caps the feedback text embedded in generation prompts.
func WithMaxPromptTokens(n int) Option {
	return func(p *Pipeline) {
		p.maxPromptTokens = n
	}
}

// WithStructuredSwot requests SWOT results as schema-constrained JSON
// instead of bulleted text.
func WithStructuredSwot(enabled bool) Option {
	return func(p *Pipeline) {
		p.structuredSwot = enabled
	}
}

func defaults() Pipeline {
	return Pipeline{
		duplicateThreshold: similarity.DefaultDuplicateThreshold,
		clusterThreshold:   similarity.DefaultClusterThreshold,
		sampleClusters:     DefaultSampleClusters,
		timeout:            DefaultTimeout,
		maxPromptTokens:    DefaultMaxPromptTokens,
	}
}
