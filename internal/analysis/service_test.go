package analysis

import (
	"context"
	"log/slog"
	"testing"

	"jobscope/internal/ai"
	"jobscope/internal/errors"
	"jobscope/internal/refdata"
	"jobscope/internal/types"
)

type stubInvoker struct {
	result *ai.Result
	err    error
	calls  int
}

func (s *stubInvoker) Analyze(ctx context.Context, req types.AnalysisRequest) (*ai.Result, error) {
	s.calls++
	return s.result, s.err
}

func newTestService(invoker *stubInvoker) *Service {
	logger := errors.NewLogger(slog.LevelError)
	return NewService(invoker, refdata.NewStore(), logger)
}

func TestSubmitAnalysis(t *testing.T) {
	invoker := &stubInvoker{
		result: &ai.Result{
			Text:  "```json\n{\"companyIntelligence\":{\"name\":\"Amgen\",\"earnings\":\"Record Q2\",},}\n```",
			Model: "gemini-2.0-flash",
			Sources: []types.GroundingSource{
				{URI: "https://example.com", Title: "Earnings report"},
			},
		},
	}
	svc := newTestService(invoker)

	report, err := svc.SubmitAnalysis(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("SubmitAnalysis() error = %v", err)
	}
	if report.CompanyIntelligence.Earnings != "Record Q2" {
		t.Errorf("Earnings = %q, want the model-supplied text", report.CompanyIntelligence.Earnings)
	}
	if len(report.CompanyIntelligence.GroundingSources) != 1 {
		t.Error("grounding sources should be attached to the report")
	}
	if report.SalaryBreakdown.Yearly != 70000 {
		t.Error("report must carry the recomputed salary breakdown")
	}
}

func TestSubmitAnalysisMissingCV(t *testing.T) {
	invoker := &stubInvoker{}
	svc := newTestService(invoker)

	req := testRequest()
	req.CV = nil
	_, err := svc.SubmitAnalysis(context.Background(), req)
	if err == nil {
		t.Fatal("expected an error without a CV")
	}
	if !errors.IsMissingInput(err) {
		t.Errorf("error %v should be classified as missing input", err)
	}
	if invoker.calls != 0 {
		t.Error("the model must never be invoked for an invalid request")
	}
}

func TestSubmitAnalysisMalformedResponse(t *testing.T) {
	invoker := &stubInvoker{
		result: &ai.Result{Text: "I'd be happy to help, but", Model: "gemini-2.0-flash"},
	}
	svc := newTestService(invoker)

	_, err := svc.SubmitAnalysis(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected an error for unparseable model output")
	}
	if !errors.IsMalformedResponse(err) {
		t.Errorf("error %v should be classified as malformed response", err)
	}
}

func TestSubmitAnalysisInvokerError(t *testing.T) {
	invoker := &stubInvoker{
		err: errors.NewAIError(errors.ErrCodeRateLimited, "quota exceeded", nil),
	}
	svc := newTestService(invoker)

	_, err := svc.SubmitAnalysis(context.Background(), testRequest())
	if !errors.IsRateLimited(err) {
		t.Errorf("invoker errors must propagate unchanged, got %v", err)
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.AnalysisRequest)
	}{
		{"missing cv", func(r *types.AnalysisRequest) { r.CV = nil }},
		{"empty cv", func(r *types.AnalysisRequest) { r.CV = &types.Document{} }},
		{"missing company", func(r *types.AnalysisRequest) { r.Company = "" }},
		{"missing job title", func(r *types.AnalysisRequest) { r.JobTitle = "" }},
		{"missing municipality", func(r *types.AnalysisRequest) { r.LivingMunicipality = "" }},
		{"zero salary", func(r *types.AnalysisRequest) { r.AnnualSalary = 0 }},
		{"negative salary", func(r *types.AnalysisRequest) { r.AnnualSalary = -1 }},
		{"bad modality", func(r *types.AnalysisRequest) { r.Modality = "K1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(&req)
			if err := ValidateRequest(req); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	if err := ValidateRequest(testRequest()); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}
