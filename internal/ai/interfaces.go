package ai

import (
	"context"

	"jobscope/internal/types"
)

// Result is the raw outcome of a successful model invocation: the
// unparsed response text, the model that produced it, any web citations
// from the grounding metadata, and token accounting.
type Result struct {
	Text     string
	Model    string
	FellBack bool // true when a non-primary model produced the answer
	Sources  []types.GroundingSource
	Usage    *TokenUsage
}

// Provider is the model invocation layer. Analyze walks the configured
// model fallback chain and returns the first successful raw result.
type Provider interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) (*Result, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
