package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobscope/internal/auth"
	"jobscope/internal/config"
	jsErrors "jobscope/internal/errors"
	"jobscope/internal/observability"
	"jobscope/internal/types"
)

type stubAnalyzer struct {
	report *types.AnalysisReport
	err    error
	calls  int
}

func (s *stubAnalyzer) SubmitAnalysis(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisReport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newTestServer(t *testing.T, analyzer Analyzer) (*Server, *http.ServeMux) {
	t.Helper()

	appCfg := &config.Config{}
	appCfg.Auth.SessionTTL = 8 * time.Hour

	logger := jsErrors.NewLogger(slog.LevelError)
	srv := NewServer(appCfg, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		APIKeys:        []string{"test-key-0123456789"},
		MaxRequestSize: 1 << 20,
	}, Dependencies{
		Analyzer: analyzer,
		Auth:     auth.NewManager(map[string]string{"ana": "secret"}, 8*time.Hour),
	}, logger)

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}

	return srv, srv.setupRoutes(om)
}

func analyzeBody(t *testing.T) *bytes.Buffer {
	t.Helper()

	req := AnalyzeRequest{
		SolicitorName:       "Ana Rivera",
		Company:             "Amgen",
		JobTitle:            "Validation Engineer",
		LivingMunicipality:  "Caguas",
		WorkingMunicipality: "Juncos",
		AnnualSalary:        70000,
		Modality:            "W2",
		CV:                  &types.Document{Data: []byte("cv bytes"), MimeType: "application/pdf"},
	}
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

func postJSON(mux *http.ServeMux, path string, body *bytes.Buffer, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	stub := &stubAnalyzer{report: &types.AnalysisReport{
		SolicitorName:   "Ana Rivera",
		SalaryBreakdown: types.SalaryBreakdown{Yearly: 70000, Monthly: 5833},
	}}
	_, mux := newTestServer(t, stub)

	rec := postJSON(mux, "/analyze", analyzeBody(t), map[string]string{
		"X-API-Key": "test-key-0123456789",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if stub.calls != 1 {
		t.Errorf("analyzer called %d times, want 1", stub.calls)
	}

	var report types.AnalysisReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.SalaryBreakdown.Yearly != 70000 {
		t.Errorf("yearly = %v, want 70000", report.SalaryBreakdown.Yearly)
	}
}

func TestAnalyzeHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing input",
			err:        jsErrors.NewValidationError(jsErrors.ErrCodeMissingInput, "A CV document is required", nil),
			wantStatus: http.StatusBadRequest,
			wantError:  jsErrors.ErrCodeMissingInput,
		},
		{
			name:       "rate limited",
			err:        jsErrors.NewAIError(jsErrors.ErrCodeRateLimited, "Provider quota exhausted", nil),
			wantStatus: http.StatusTooManyRequests,
			wantError:  jsErrors.ErrCodeRateLimited,
		},
		{
			name:       "model unavailable",
			err:        jsErrors.NewAIError(jsErrors.ErrCodeModelUnavailable, "No configured model is available", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  jsErrors.ErrCodeModelUnavailable,
		},
		{
			name:       "malformed response",
			err:        jsErrors.NewAIError(jsErrors.ErrCodeMalformedResponse, "Model response is not parseable JSON", nil),
			wantStatus: http.StatusBadGateway,
			wantError:  jsErrors.ErrCodeMalformedResponse,
		},
		{
			name:       "transport failed",
			err:        jsErrors.NewAIError(jsErrors.ErrCodeTransportFailed, "All models failed", nil),
			wantStatus: http.StatusBadGateway,
			wantError:  jsErrors.ErrCodeTransportFailed,
		},
		{
			name:       "unclassified error",
			err:        stderrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Analysis failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mux := newTestServer(t, &stubAnalyzer{err: tt.err})

			rec := postJSON(mux, "/analyze", analyzeBody(t), map[string]string{
				"X-API-Key": "test-key-0123456789",
			})

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}

func TestAnalyzeHandlerRejectsBadContentType(t *testing.T) {
	stub := &stubAnalyzer{}
	_, mux := newTestServer(t, stub)

	req := httptest.NewRequest(http.MethodPost, "/analyze", analyzeBody(t))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-API-Key", "test-key-0123456789")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if stub.calls != 0 {
		t.Errorf("analyzer should not be called, got %d calls", stub.calls)
	}
}

func TestAuthMiddleware(t *testing.T) {
	stub := &stubAnalyzer{report: &types.AnalysisReport{}}
	srv, mux := newTestServer(t, stub)

	// No credential at all
	rec := postJSON(mux, "/analyze", analyzeBody(t), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credential: status = %d, want 401", rec.Code)
	}

	// Wrong API key
	rec = postJSON(mux, "/analyze", analyzeBody(t), map[string]string{
		"X-API-Key": "not-a-real-key",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad key: status = %d, want 401", rec.Code)
	}

	// Session token via Authorization header
	token, err := srv.Auth.Login("ana", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	rec = postJSON(mux, "/analyze", analyzeBody(t), map[string]string{
		"Authorization": "Bearer " + token,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("session token: status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginAndLogoutFlow(t *testing.T) {
	stub := &stubAnalyzer{report: &types.AnalysisReport{}}
	srv, mux := newTestServer(t, stub)

	body, _ := json.Marshal(LoginRequest{Username: "ana", Password: "secret"})
	rec := postJSON(mux, "/login", bytes.NewBuffer(body), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a non-empty session token")
	}
	if resp.ExpiresIn != int64((8 * time.Hour).Seconds()) {
		t.Errorf("expiresIn = %d, want %d", resp.ExpiresIn, int64((8*time.Hour).Seconds()))
	}

	// The token authenticates against /analyze
	rec = postJSON(mux, "/analyze", analyzeBody(t), map[string]string{
		"Authorization": "Bearer " + resp.Token,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze with session: status = %d, want 200", rec.Code)
	}

	// Logout invalidates it
	rec = postJSON(mux, "/logout", bytes.NewBuffer(nil), map[string]string{
		"Authorization": "Bearer " + resp.Token,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, want 204", rec.Code)
	}
	if srv.Auth.IsAuthenticated(resp.Token) {
		t.Error("token should be invalid after logout")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	_, mux := newTestServer(t, &stubAnalyzer{})

	body, _ := json.Marshal(LoginRequest{Username: "ana", Password: "wrong"})
	rec := postJSON(mux, "/login", bytes.NewBuffer(body), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHealthDegradedWithoutAIService(t *testing.T) {
	_, mux := newTestServer(t, &stubAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if resp["status"] != "degraded" {
		t.Errorf("status field = %v, want degraded", resp["status"])
	}
}

func TestStatsIncludesSessions(t *testing.T) {
	srv, mux := newTestServer(t, &stubAnalyzer{})

	if _, err := srv.Auth.Login("ana", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats response: %v", err)
	}
	sessions, ok := resp["sessions"].(map[string]any)
	if !ok {
		t.Fatalf("sessions section missing: %v", resp)
	}
	if sessions["active"] != float64(1) {
		t.Errorf("active sessions = %v, want 1", sessions["active"])
	}
}
