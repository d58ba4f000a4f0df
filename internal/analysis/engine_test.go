package analysis

import (
	"encoding/json"
	"reflect"
	"testing"

	"jobscope/internal/refdata"
	"jobscope/internal/types"
)

func testRequest() types.AnalysisRequest {
	return types.AnalysisRequest{
		SolicitorName:       "Ana Rivera",
		Company:             "Amgen",
		JobTitle:            "Validation Engineer",
		LivingMunicipality:  "Caguas",
		WorkingMunicipality: "Juncos",
		AnnualSalary:        70000,
		Modality:            types.ModalityW2,
		CV:                  &types.Document{Data: []byte("cv"), MimeType: "application/pdf"},
	}
}

func newTestEngine() *Engine {
	return NewEngine(refdata.NewStore())
}

func TestSalaryBreakdownDeterminism(t *testing.T) {
	engine := newTestEngine()
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, nil)

	want := types.SalaryBreakdown{
		Yearly:   70000,
		Monthly:  5833,
		Biweekly: 2692,
		Weekly:   1346,
		Hourly:   33.65,
	}
	if report.SalaryBreakdown != want {
		t.Errorf("SalaryBreakdown = %+v, want %+v", report.SalaryBreakdown, want)
	}
}

func TestCommuteFallback(t *testing.T) {
	engine := newTestEngine()
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, nil)

	c := report.CommuteAnalysis
	if c.DistanceMiles != 10 {
		t.Errorf("DistanceMiles = %v, want 10 (Caguas-Juncos matrix entry)", c.DistanceMiles)
	}
	if c.RoundTripDistanceMiles != 20 {
		t.Errorf("RoundTripDistanceMiles = %v, want 20", c.RoundTripDistanceMiles)
	}
	if c.MonthlyGas != 63 {
		t.Errorf("MonthlyGas = %v, want 63", c.MonthlyGas)
	}
	if c.MonthlyTolls != 0 {
		t.Errorf("MonthlyTolls = %v, want 0 below the toll threshold", c.MonthlyTolls)
	}
	if c.AnnualCost != 752 {
		t.Errorf("AnnualCost = %v, want 752", c.AnnualCost)
	}
	if c.Time != "20 min" {
		t.Errorf("Time = %q, want 20 min", c.Time)
	}
	if c.From != "Caguas" || c.To != "Juncos" {
		t.Errorf("endpoints = %q -> %q, want Caguas -> Juncos", c.From, c.To)
	}
}

func TestCommuteAllOrNothing(t *testing.T) {
	engine := newTestEngine()
	raw := &RawReport{
		CommuteAnalysis: &RawCommuteAnalysis{
			DistanceMiles: 0,
			MonthlyGas:    999,
			Time:          "3 hr",
		},
	}
	report, _ := engine.Reconcile(testRequest(), raw, nil)

	c := report.CommuteAnalysis
	if c.MonthlyGas == 999 {
		t.Error("model gas figure must not survive when distance is zero")
	}
	if c.Time == "3 hr" {
		t.Error("model time must not survive when distance is zero")
	}
	if c.DistanceMiles != 10 || c.MonthlyGas != 63 {
		t.Errorf("estimator output not applied wholesale: distance=%v gas=%v", c.DistanceMiles, c.MonthlyGas)
	}
}

func TestCommuteTrustedWhenDistancePresent(t *testing.T) {
	engine := newTestEngine()
	raw := &RawReport{
		CommuteAnalysis: &RawCommuteAnalysis{
			DistanceMiles:          28,
			RoundTripDistanceMiles: 56,
			Time:                   "45 min",
			RoundTripTime:          "1 hr 30 min",
			MonthlyGas:             180,
			MonthlyTolls:           80,
			AnnualCost:             3120,
		},
	}
	report, _ := engine.Reconcile(testRequest(), raw, nil)

	c := report.CommuteAnalysis
	if c.DistanceMiles != 28 || c.MonthlyGas != 180 || c.Time != "45 min" {
		t.Errorf("model-supplied commute data should be trusted: %+v", c)
	}
}

func TestCompanyPlaceholderEnrichment(t *testing.T) {
	engine := newTestEngine()
	store := refdata.NewStore()
	profile, ok := store.CompanyProfile("Amgen")
	if !ok {
		t.Fatal("Amgen profile missing from reference data")
	}

	raw := &RawReport{
		CompanyIntelligence: &RawCompanyIntelligence{
			Name:     "Amgen",
			Earnings: "N/A",
			Growth:   "Strong pipeline growth reported by the model",
		},
	}
	report, _ := engine.Reconcile(testRequest(), raw, nil)

	ci := report.CompanyIntelligence
	if ci.Earnings != profile.Earnings {
		t.Errorf("Earnings = %q, want the Amgen reference profile text", ci.Earnings)
	}
	if ci.Growth != "Strong pipeline growth reported by the model" {
		t.Error("model-supplied growth text must not be overwritten")
	}
}

func TestUnknownCompanyGenericProfile(t *testing.T) {
	engine := newTestEngine()
	req := testRequest()
	req.Company = "Borinquen Biologics"
	report, _ := engine.Reconcile(req, &RawReport{}, nil)

	ci := report.CompanyIntelligence
	if ci.Name != "Borinquen Biologics" {
		t.Errorf("Name = %q, want the requested company", ci.Name)
	}
	if ci.Earnings == "" || ci.Earnings == "N/A" {
		t.Error("generic profile should fill earnings")
	}
	if ci.SalaryRanges.Junior == "" {
		t.Error("generic profile should fill salary ranges")
	}
}

func TestFitScoreNeverZeroWithCV(t *testing.T) {
	engine := newTestEngine()
	raw := &RawReport{
		Recommendations: &RawRecommendations{
			CandidateFitScore: &RawCandidateFitScore{Score: 0},
		},
	}
	report, _ := engine.Reconcile(testRequest(), raw, nil)

	if report.Recommendations.CandidateFitScore.Score == 0 {
		t.Error("fit score must not be zero when a CV was supplied")
	}
	if report.Recommendations.CandidateFitScore.Summary == "" {
		t.Error("fit score summary must always be present")
	}
}

func TestQualityOfLifeScoreClamped(t *testing.T) {
	engine := newTestEngine()
	raw := &RawReport{
		Recommendations: &RawRecommendations{QualityOfLifeScore: 14},
	}
	report, _ := engine.Reconcile(testRequest(), raw, nil)

	if got := report.Recommendations.QualityOfLifeScore; got != 10 {
		t.Errorf("QualityOfLifeScore = %v, want clamped to 10", got)
	}
}

func TestSourceDedup(t *testing.T) {
	engine := newTestEngine()
	sources := []types.GroundingSource{
		{URI: "a", Title: "X"},
		{URI: "a", Title: "Y"},
		{URI: "b", Title: "Z"},
	}
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, sources)

	got := report.CompanyIntelligence.GroundingSources
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2", len(got))
	}
	if got[0].URI != "a" || got[0].Title != "X" {
		t.Errorf("first occurrence should win: got %+v", got[0])
	}
	if got[1].URI != "b" {
		t.Errorf("second source = %+v, want uri b", got[1])
	}
}

func TestCompensationDefaults(t *testing.T) {
	engine := newTestEngine()
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, nil)

	cc := report.CompensationComparison
	if cc.W2Salary != 70000 {
		t.Errorf("W2Salary = %v, want 70000", cc.W2Salary)
	}
	if cc.Equivalent1099Salary != 94500 {
		t.Errorf("Equivalent1099Salary = %v, want 94500", cc.Equivalent1099Salary)
	}
	if cc.Equivalent480Salary != 80500 {
		t.Errorf("Equivalent480Salary = %v, want 80500", cc.Equivalent480Salary)
	}
	if cc.Explanation1099.SelfEmploymentTax == "" || cc.Explanation480.TaxWithholding == "" {
		t.Error("conversion explanations must be filled when recomputed")
	}
}

func TestCostOfLivingBaseline(t *testing.T) {
	engine := newTestEngine()
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, nil)

	col := report.CostOfLiving
	sum := col.Housing + col.Utilities + col.Meals + col.Healthcare + col.Misc
	if col.TotalMonthly != sum {
		t.Errorf("TotalMonthly = %v, want sum of components %v", col.TotalMonthly, sum)
	}
	if col.TotalMonthly == 0 {
		t.Error("baseline cost of living must be non-zero")
	}
	if col.Location != "Juncos" {
		t.Errorf("Location = %q, want the working municipality", col.Location)
	}
}

func TestCostOfLivingTrustedTotal(t *testing.T) {
	engine := newTestEngine()
	raw := &RawReport{
		CostOfLiving: &RawCostOfLiving{
			Housing:      1500,
			TotalMonthly: 3000,
		},
	}
	report, _ := engine.Reconcile(testRequest(), raw, nil)

	if report.CostOfLiving.TotalMonthly != 3000 {
		t.Error("a non-zero model total must be trusted as-is")
	}
	if report.CostOfLiving.Utilities != 0 {
		t.Error("components must not be defaulted when the total is trusted")
	}
}

func TestExactlyThreeSkillGapsAndResources(t *testing.T) {
	engine := newTestEngine()

	t.Run("padded", func(t *testing.T) {
		raw := &RawReport{
			CvEvaluation: &RawCvEvaluation{
				SkillGaps: []RawSkillGap{{Skill: "CSV"}},
			},
		}
		report, _ := engine.Reconcile(testRequest(), raw, nil)
		if len(report.CvEvaluation.SkillGaps) != 3 {
			t.Errorf("got %d skill gaps, want 3", len(report.CvEvaluation.SkillGaps))
		}
		if report.CvEvaluation.SkillGaps[0].Skill != "CSV" {
			t.Error("supplied entries must be preserved in order")
		}
		if len(report.CvEvaluation.LearningResources) != 3 {
			t.Errorf("got %d learning resources, want 3", len(report.CvEvaluation.LearningResources))
		}
	})

	t.Run("truncated", func(t *testing.T) {
		raw := &RawReport{
			CvEvaluation: &RawCvEvaluation{
				SkillGaps: []RawSkillGap{
					{Skill: "a"}, {Skill: "b"}, {Skill: "c"}, {Skill: "d"}, {Skill: "e"},
				},
			},
		}
		report, _ := engine.Reconcile(testRequest(), raw, nil)
		if len(report.CvEvaluation.SkillGaps) != 3 {
			t.Errorf("got %d skill gaps, want 3", len(report.CvEvaluation.SkillGaps))
		}
		if report.CvEvaluation.SkillGaps[2].Skill != "c" {
			t.Error("truncation must keep the first three entries")
		}
	})
}

func TestSalaryBenchmarksDefault(t *testing.T) {
	engine := newTestEngine()
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, nil)

	if len(report.SalaryBenchmarks) == 0 {
		t.Error("benchmark table must default to the baseline roles")
	}
}

func TestOnboardingBaseline(t *testing.T) {
	engine := newTestEngine()
	report, _ := engine.Reconcile(testRequest(), &RawReport{}, nil)

	plan := report.OnboardingPlan
	if plan.Days30.Title == "" || len(plan.Days30.Tasks) == 0 {
		t.Error("30-day phase must be populated from the baseline")
	}
	if plan.Days90.Title == "" || len(plan.Days90.Tasks) == 0 {
		t.Error("90-day phase must be populated from the baseline")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	engine := newTestEngine()
	req := testRequest()

	sources := []types.GroundingSource{{URI: "https://example.com/q2", Title: "Q2 earnings"}}
	first, _ := engine.Reconcile(req, &RawReport{}, sources)

	// Round-trip the complete report through the permissive shape the
	// way a second submission would see it.
	data, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw RawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second, gaps := engine.Reconcile(req, &raw, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconciliation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(gaps) != 0 {
		t.Errorf("a complete report should produce no gaps, got %+v", gaps)
	}
}

func TestNilRawReport(t *testing.T) {
	engine := newTestEngine()
	report, gaps := engine.Reconcile(testRequest(), nil, nil)

	if report == nil {
		t.Fatal("a nil raw report must still reconcile to a complete report")
	}
	if len(gaps) == 0 {
		t.Error("defaulting every section should be recorded as gaps")
	}
	if report.SolicitorName != "Ana Rivera" {
		t.Errorf("SolicitorName = %q, want Ana Rivera", report.SolicitorName)
	}
	if report.InputModality != types.ModalityW2 {
		t.Errorf("InputModality = %q, want W2", report.InputModality)
	}
}
