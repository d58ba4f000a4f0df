package server

import (
	"context"
	"time"

	"jobscope/internal/ai"
	"jobscope/internal/auth"
	"jobscope/internal/config"
	jsErrors "jobscope/internal/errors"
	"jobscope/internal/refdata"
	"jobscope/internal/types"
)

// AnalyzeRequest is the request body for the analyze endpoint. Document
// bytes travel base64-encoded, the standard encoding/json treatment of
// []byte fields.
type AnalyzeRequest struct {
	SolicitorName       string          `json:"solicitorName"`
	Company             string          `json:"company"`
	JobTitle            string          `json:"jobTitle"`
	LivingMunicipality  string          `json:"livingMunicipality"`
	WorkingMunicipality string          `json:"workingMunicipality"`
	AnnualSalary        float64         `json:"annualSalary"`
	Modality            string          `json:"modality"`
	CV                  *types.Document `json:"cv,omitempty"`
	JobDescription      *types.Document `json:"jobDescription,omitempty"`
}

// LoginRequest is the request body for the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token. ExpiresIn is seconds
// until the fixed validity window lapses.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Analyzer runs one opportunity analysis end to end. Satisfied by
// analysis.Service; narrowed so handler tests can stub the pipeline.
type Analyzer interface {
	SubmitAnalysis(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisReport, error)
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Wired services
	Analyzer   Analyzer
	AIService  *ai.Service
	Auth       *auth.Manager
	Store      *refdata.Store
	RefWatcher *refdata.Watcher

	// Logger
	Logger *jsErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// Dependencies are the wired services the HTTP layer exposes.
type Dependencies struct {
	Analyzer   Analyzer
	AIService  *ai.Service
	Auth       *auth.Manager
	Store      *refdata.Store
	RefWatcher *refdata.Watcher
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, deps Dependencies, logger *jsErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Analyzer:       deps.Analyzer,
		AIService:      deps.AIService,
		Auth:           deps.Auth,
		Store:          deps.Store,
		RefWatcher:     deps.RefWatcher,
		Logger:         logger,
	}
}
