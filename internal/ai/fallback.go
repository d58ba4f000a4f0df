package ai

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	jsErrors "jobscope/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// tryModels walks the configured model list in order and returns the
// response from the first model that succeeds. Later models are only
// tried after the previous one returned an error, so a healthy primary
// model never pays for the fallbacks.
func tryModels(
	ctx context.Context,
	models []string,
	logger *jsErrors.Logger,
	invoke func(ctx context.Context, model string) (*genai.GenerateContentResponse, error),
) (*genai.GenerateContentResponse, string, error) {
	if len(models) == 0 {
		return nil, "", jsErrors.NewConfigError(jsErrors.ErrCodeInvalidConfig,
			"No AI models configured", nil)
	}

	var lastErr error
	for i, model := range models {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}

		result, err := invoke(ctx, model)
		if err == nil {
			if i > 0 {
				logger.Info("Model fallback succeeded",
					"model", model,
					"attempted_models", i+1)
			}
			return result, model, nil
		}

		lastErr = err
		logger.Warn("Model invocation failed, trying next model",
			"model", model,
			"remaining_models", len(models)-i-1,
			"error", err.Error())
	}

	return nil, "", classifyModelError(lastErr, models)
}

// classifyModelError maps the terminal error of a fallback chain to an
// application error so callers can pick user-facing messages and HTTP
// status codes without inspecting transport details.
func classifyModelError(err error, models []string) *jsErrors.AppError {
	attempted := strings.Join(models, ", ")

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return jsErrors.NewAIError(jsErrors.ErrCodeRateLimited,
				"AI provider rate limit exceeded on all configured models", err).
				WithContext("attempted_models", attempted)
		case http.StatusNotFound:
			return jsErrors.NewAIError(jsErrors.ErrCodeModelUnavailable,
				"None of the configured models are available", err).
				WithContext("attempted_models", attempted)
		}
	}

	return jsErrors.NewAIError(jsErrors.ErrCodeTransportFailed,
		"All configured models failed", err).
		WithContext("attempted_models", attempted)
}
