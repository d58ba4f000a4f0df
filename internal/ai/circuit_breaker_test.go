package ai

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"jobscope/internal/config"
	"jobscope/internal/errors"

	"google.golang.org/genai"
)

func testBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestCircuitBreakerCreation(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	cb := NewAICircuitBreaker(testBreakerConfig(), logger)

	if cb == nil {
		t.Fatal("Circuit breaker should not be nil when enabled")
	}

	stats := cb.GetStats()

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "AI-analyze" {
		t.Errorf("Expected circuit breaker name 'AI-analyze', got '%s'", name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Circuit breaker state not found")
	}
	if state != "closed" {
		t.Errorf("Expected initial state 'closed', got '%s'", state)
	}

	enabled, ok := stats["enabled"].(bool)
	if !ok {
		t.Fatal("Circuit breaker enabled status not found")
	}
	if !enabled {
		t.Error("Circuit breaker should be enabled")
	}

	if !cb.IsHealthy() {
		t.Error("Circuit breaker should be healthy initially")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	cb := NewAICircuitBreaker(config.CircuitBreakerConfig{Enabled: false}, logger)

	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// Nil breaker must still pass calls through
	resp, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp == nil {
		t.Error("Execute() should return the function result")
	}

	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("Disabled circuit breaker stats should report enabled=false")
	}

	if !cb.IsHealthy() {
		t.Error("Disabled circuit breaker should be considered healthy")
	}

	if cb.String() != "circuit breaker disabled" {
		t.Errorf("String() = %q, want 'circuit breaker disabled'", cb.String())
	}
}

func TestCircuitBreakerOpensOnFailures(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	cfg := testBreakerConfig()
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	cb := NewAICircuitBreaker(cfg, logger)

	failing := func() (*genai.GenerateContentResponse, error) {
		return nil, fmt.Errorf("simulated upstream failure")
	}

	for range 3 {
		_, _ = cb.Execute(failing)
	}

	if cb.IsHealthy() {
		t.Error("Circuit breaker should open after repeated failures")
	}
}

func TestModelCircuitBreakerDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	mb := NewModelCircuitBreaker(config.CircuitBreakerConfig{Enabled: false}, logger)

	if mb != nil {
		t.Fatal("Model circuit breaker should be nil when disabled")
	}

	model, err := mb.ExecuteModel(func() (*genai.Model, error) {
		return &genai.Model{Name: "test-model"}, nil
	})
	if err != nil {
		t.Fatalf("ExecuteModel() error = %v", err)
	}
	if model == nil || model.Name != "test-model" {
		t.Error("ExecuteModel() should return the function result")
	}

	if !mb.IsModelHealthy() {
		t.Error("Disabled model circuit breaker should be considered healthy")
	}
}
