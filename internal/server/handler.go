package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	jsErrors "jobscope/internal/errors"
	"jobscope/internal/observability"
	"jobscope/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the analysis pipeline with observability.
// Metrics for the pipeline itself (duration, fallback, gaps, tokens) are
// recorded inside the analysis service; this layer only maps errors to
// status codes.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobscope.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.company", req.Company),
			attribute.String("request.modality", req.Modality),
			attribute.Bool("request.has_job_description", req.JobDescription != nil),
			attribute.String("operation", "analyze"),
		)

		report, err := s.Analyzer.SubmitAnalysis(ctx, toAnalysisRequest(req))
		if err != nil {
			status := statusForError(err)
			span.RecordError(err)
			span.SetAttributes(attribute.Int("http.status_code", status))
			writeAppError(w, err, status)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("fit.score", report.Recommendations.CandidateFitScore.Score),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createLoginHandler issues session tokens against the configured users.
func (s *Server) createLoginHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			writeErrorResponse(w, "Missing credentials", "username and password fields are required", http.StatusBadRequest)
			return
		}

		token, err := s.Auth.Login(req.Username, req.Password)
		om.GetMetrics().RecordLogin(r.Context(), err == nil)
		if err != nil {
			s.Logger.Info("Login failed",
				"username", req.Username,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Invalid credentials", "Username or password is incorrect", http.StatusUnauthorized)
			return
		}

		s.Logger.Info("Login succeeded",
			"username", req.Username,
			"client_ip", getClientIP(r))

		response := LoginResponse{
			Token:     token,
			ExpiresIn: int64(s.AppConfig.Auth.SessionTTL.Seconds()),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// logoutHandler invalidates the presented session token. Unknown tokens
// get the same answer as live ones.
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := credentialFromRequest(r)
	if token == "" {
		writeErrorResponse(w, "Missing session token", "Authorization Bearer token required", http.StatusUnauthorized)
		return
	}

	s.Auth.Logout(token)
	w.WriteHeader(http.StatusNoContent)
}

// toAnalysisRequest converts the wire request into the pipeline request.
func toAnalysisRequest(req AnalyzeRequest) types.AnalysisRequest {
	return types.AnalysisRequest{
		SolicitorName:       req.SolicitorName,
		Company:             req.Company,
		JobTitle:            req.JobTitle,
		LivingMunicipality:  req.LivingMunicipality,
		WorkingMunicipality: req.WorkingMunicipality,
		AnnualSalary:        req.AnnualSalary,
		Modality:            types.EmploymentModality(req.Modality),
		CV:                  req.CV,
		JobDescription:      req.JobDescription,
	}
}

// statusForError maps pipeline error codes to HTTP status codes.
func statusForError(err error) int {
	switch {
	case jsErrors.IsMissingInput(err):
		return http.StatusBadRequest
	case jsErrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case jsErrors.IsRateLimited(err):
		return http.StatusTooManyRequests
	case jsErrors.IsModelUnavailable(err):
		return http.StatusServiceUnavailable
	case jsErrors.IsMalformedResponse(err), jsErrors.IsTransportFailed(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeAppError writes a structured error using the application error's
// code and user-facing message when available.
func writeAppError(w http.ResponseWriter, err error, statusCode int) {
	var appErr *jsErrors.AppError
	if stderrors.As(err, &appErr) {
		writeErrorResponse(w, appErr.Code, appErr.Message, statusCode)
		return
	}
	writeErrorResponse(w, "Analysis failed", err.Error(), statusCode)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := originalMiddleware(next)
		return func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter so a rejection written by the rate
			// limiter itself is still observed
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			limited(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.GetMetrics().RecordRateLimitHit(r.Context(), r.URL.Path)
			}
		}
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
