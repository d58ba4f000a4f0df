package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"jobscope/internal/config"
	jsErrors "jobscope/internal/errors"
	"jobscope/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.AIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *jsErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(cfg *config.AIConfig, logger *jsErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, jsErrors.NewAIError(jsErrors.ErrCodeTransportFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker(cfg.CircuitBreaker, logger),
		modelBreaker:   NewModelCircuitBreaker(cfg.CircuitBreaker, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the primary model.
// The fallback models are not probed: they only matter once the primary
// fails, and probing them would burn quota on every health check.
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	primary := g.config.Models[0]
	modelInfo := &ModelInfo{
		Name:      primary,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, primary, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", primary,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", primary,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// Analyze runs a full opportunity analysis: it renders the recruiter
// prompt, attaches the CV (and optional job description) as inline file
// parts, and walks the model fallback chain until one model answers.
func (g *GeminiProvider) Analyze(ctx context.Context, req types.AnalysisRequest) (*Result, error) {
	tracer := otel.Tracer("jobscope.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.analyze_opportunity")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.primary_model", g.config.Models[0]),
		attribute.Int("ai.model_count", len(g.config.Models)),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
		attribute.Bool("input.has_job_description", req.JobDescription != nil),
	)

	prompt := BuildAnalysisPrompt(req)
	genaiConfig := buildAnalysisConfig(&g.config.Temperature)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if req.CV != nil {
		parts = append(parts, genai.NewPartFromBytes(req.CV.Data, req.CV.MimeType))
	}
	if req.JobDescription != nil {
		parts = append(parts, genai.NewPartFromBytes(req.JobDescription.Data, req.JobDescription.MimeType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var usedModel string
	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		resp, model, err := tryModels(ctx, g.config.Models, g.logger,
			func(ctx context.Context, model string) (*genai.GenerateContentResponse, error) {
				return g.executeWithRetry(ctx, model, func() (*genai.GenerateContentResponse, error) {
					return g.client.Models.GenerateContent(ctx, model, contents, genaiConfig)
				})
			})
		usedModel = model
		return resp, err
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	sources := extractGroundingSources(result)
	tokenUsage := extractTokenUsage(result)

	span.SetAttributes(
		attribute.String("ai.model", usedModel),
		attribute.Int("output.grounding_sources", len(sources)),
		attribute.Bool("success", true),
	)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	return &Result{
		Text:     result.Text(),
		Model:    usedModel,
		FellBack: usedModel != g.config.Models[0],
		Sources:  sources,
		Usage:    tokenUsage,
	}, nil
}

// executeWithRetry executes a single-model invocation with retry logic
// and exponential backoff. Fallback to the next model only happens after
// the retry budget for the current model is spent.
func (g *GeminiProvider) executeWithRetry(ctx context.Context, model string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"model", model,
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"model", model,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"model", model,
				"error", err.Error())
			break
		}
	}

	return nil, fmt.Errorf("model %q failed after %d retries: %w", model, g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements Provider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// extractGroundingSources pulls web citations out of the response's
// grounding metadata. Entries without a URI are dropped.
func extractGroundingSources(result *genai.GenerateContentResponse) []types.GroundingSource {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}

	metadata := result.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}

	var sources []types.GroundingSource
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, types.GroundingSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return sources
}
