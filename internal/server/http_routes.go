package server

import (
	"net/http"
	"strings"

	"jobscope/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	mux.HandleFunc("/login",
		rateLimitHandler(requestLimitHandler(s.createLoginHandler(om))),
	)
	mux.HandleFunc("/logout", s.authMiddleware(s.logoutHandler))
	mux.HandleFunc("/analyze",
		rateLimitHandler(
			s.authMiddleware(requestLimitHandler(s.createAnalyzeHandler(om))),
		),
	)

	return mux
}

// authMiddleware accepts either a configured API key or a live session
// token issued by the login endpoint.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if neither API keys nor sessions are configured
		if len(s.APIKeys) == 0 && s.Auth == nil {
			next(w, r)
			return
		}

		credential := credentialFromRequest(r)
		if credential == "" {
			s.Logger.Info("Authentication failed: missing credential",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing credential", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// A configured API key or a live session both pass
		if s.APIKeys[credential] {
			s.Logger.Debug("API key authentication successful",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(credential))
			next(w, r)
			return
		}
		if s.Auth != nil && s.Auth.IsAuthenticated(credential) {
			next(w, r)
			return
		}

		s.Logger.Info("Authentication failed: invalid credential",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(credential))
		writeErrorResponse(w, "Invalid credential", "Unauthorized access", http.StatusUnauthorized)
	}
}

// credentialFromRequest extracts the API key or session token from the
// X-API-Key header, falling back to an Authorization Bearer token.
func credentialFromRequest(r *http.Request) string {
	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return apiKey
	}
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return ""
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
