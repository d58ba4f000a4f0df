package analysis

import (
	"context"

	"jobscope/internal/ai"
	"jobscope/internal/errors"
	"jobscope/internal/observability"
	"jobscope/internal/refdata"
	"jobscope/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Invoker is the model invocation dependency. Satisfied by ai.Provider;
// narrowed so tests can stub the model call.
type Invoker interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) (*ai.Result, error)
}

// Service runs the full analysis pipeline: validate, invoke the model
// with fallback, sanitize and parse the response, and reconcile it into
// a complete report.
type Service struct {
	invoker Invoker
	engine  *Engine
	metrics *observability.Metrics
	logger  *errors.Logger
}

func NewService(invoker Invoker, store *refdata.Store, logger *errors.Logger) *Service {
	return &Service{
		invoker: invoker,
		engine:  NewEngine(store),
		logger:  logger,
	}
}

// SetMetrics attaches a metrics instance so every submission is
// instrumented. Without it the pipeline runs uninstrumented, which is
// what the CLI wants.
func (s *Service) SetMetrics(m *observability.Metrics) {
	s.metrics = m
}

// ValidateRequest checks the request before any model call is attempted.
func ValidateRequest(req types.AnalysisRequest) error {
	switch {
	case req.CV == nil || len(req.CV.Data) == 0:
		return errors.NewValidationError(errors.ErrCodeMissingInput,
			"A CV document is required", nil)
	case req.Company == "":
		return errors.NewValidationError(errors.ErrCodeMissingInput,
			"Company name is required", nil)
	case req.JobTitle == "":
		return errors.NewValidationError(errors.ErrCodeMissingInput,
			"Job title is required", nil)
	case req.LivingMunicipality == "" || req.WorkingMunicipality == "":
		return errors.NewValidationError(errors.ErrCodeMissingInput,
			"Living and working municipalities are required", nil)
	case req.AnnualSalary <= 0:
		return errors.NewValidationError(errors.ErrCodeMissingInput,
			"Annual salary must be positive", nil)
	case !types.ValidModality(req.Modality):
		return errors.NewValidationError(errors.ErrCodeMissingInput,
			"Employment modality must be one of W2, 1099, 480", nil)
	}
	return nil
}

// SubmitAnalysis executes one submission end to end.
func (s *Service) SubmitAnalysis(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisReport, error) {
	if s.metrics == nil {
		report, outcome := s.submit(ctx, req)
		return report, outcome.Error
	}

	var report *types.AnalysisReport
	err := s.metrics.TrackAnalysis(ctx, func(ctx context.Context) *observability.AnalysisOutcome {
		r, outcome := s.submit(ctx, req)
		report = r
		return outcome
	})
	return report, err
}

// submit runs the pipeline stages. The model call is the only suspension
// point; the context is observed between stages so a cancelled operation
// never yields a partially reconciled report.
func (s *Service) submit(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisReport, *observability.AnalysisOutcome) {
	tracer := otel.Tracer("jobscope.analysis")
	ctx, span := tracer.Start(ctx, "analysis.submit")
	defer span.End()

	span.SetAttributes(
		attribute.String("request.company", req.Company),
		attribute.String("request.modality", string(req.Modality)),
		attribute.Bool("request.has_job_description", req.JobDescription != nil),
	)

	outcome := &observability.AnalysisOutcome{}

	if err := ValidateRequest(req); err != nil {
		span.RecordError(err)
		outcome.Error = err
		return nil, outcome
	}

	result, err := s.invoker.Analyze(ctx, req)
	if err != nil {
		span.RecordError(err)
		outcome.Error = err
		return nil, outcome
	}

	outcome.Model = result.Model
	outcome.FellBack = result.FellBack
	outcome.TokenUsage = (*observability.TokenUsage)(result.Usage)

	if err := ctx.Err(); err != nil {
		outcome.Error = err
		return nil, outcome
	}

	raw, err := ParseReport(result.Text)
	if err != nil {
		span.RecordError(err)
		s.logger.LogError(err, "Model response failed sanitization",
			"model", result.Model,
			"response_length", len(result.Text))
		outcome.Error = err
		return nil, outcome
	}

	report, gaps := s.engine.Reconcile(req, raw, result.Sources)
	outcome.GapCount = len(gaps)

	span.SetAttributes(
		attribute.String("ai.model", result.Model),
		attribute.Int("reconciliation.gaps", len(gaps)),
	)
	for _, g := range gaps {
		s.logger.Debug("Reconciliation gap",
			"section", g.Section,
			"field", g.Field,
			"reason", g.Reason)
	}
	if len(gaps) > 0 {
		s.logger.Info("Report reconciled with defaults",
			"model", result.Model,
			"gap_count", len(gaps))
	}

	return report, outcome
}
