package analysis

import (
	"fmt"
	"math"
	"strings"

	"jobscope/internal/commute"
	"jobscope/internal/refdata"
	"jobscope/internal/types"
)

// Gap records one field the engine had to default. Gaps are diagnostics,
// not errors: they are logged and counted but never surfaced to callers.
type Gap struct {
	Section string
	Field   string
	Reason  string
}

// Engine turns a partial, untrusted model response into a complete
// report. Reconcile is pure and idempotent: a fully populated report
// passes through unchanged.
type Engine struct {
	store     *refdata.Store
	estimator *commute.Estimator
}

func NewEngine(store *refdata.Store) *Engine {
	return &Engine{
		store:     store,
		estimator: commute.NewEstimator(store),
	}
}

const placeholder = "N/A"

// minFitScore replaces a forced zero from the model when a CV was
// actually supplied. Zero is defined as "no rating", not a rating.
const minFitScore = 5

// Reconcile fills every missing or invalid field of the parsed model
// output using deterministic rules, the commute estimator, and the
// reference data store. Each sub-record is completed independently; a
// missing section never fails the operation.
func (e *Engine) Reconcile(req types.AnalysisRequest, raw *RawReport, sources []types.GroundingSource) (*types.AnalysisReport, []Gap) {
	if raw == nil {
		raw = &RawReport{}
	}

	var gaps []Gap
	gap := func(section, field, reason string) {
		gaps = append(gaps, Gap{Section: section, Field: field, Reason: reason})
	}

	report := &types.AnalysisReport{
		SolicitorName: req.SolicitorName,
		InputModality: req.Modality,
	}

	report.CompanyIntelligence = e.reconcileCompany(req, raw.CompanyIntelligence, sources, gap)
	report.CommuteAnalysis = e.reconcileCommute(req, raw.CommuteAnalysis, gap)
	report.CostOfLiving = e.reconcileCostOfLiving(req, raw.CostOfLiving, gap)
	report.Recommendations = e.reconcileRecommendations(req, raw.Recommendations, gap)
	report.SalaryBreakdown = breakdownFromSalary(req.AnnualSalary)
	report.SalaryBenchmarks = e.reconcileBenchmarks(raw.SalaryBenchmarks, gap)
	report.CompensationComparison = e.reconcileCompensation(req, raw.CompensationComparison, gap)
	report.OnboardingPlan = e.reconcileOnboarding(raw.OnboardingPlan, gap)
	report.CvEvaluation = e.reconcileCvEvaluation(raw.CvEvaluation, gap)

	return report, gaps
}

func (e *Engine) reconcileCompany(req types.AnalysisRequest, raw *RawCompanyIntelligence, sources []types.GroundingSource, gap func(section, field, reason string)) types.CompanyIntelligence {
	if raw == nil {
		raw = &RawCompanyIntelligence{}
		gap("companyIntelligence", "", "section absent from model output")
	}

	out := types.CompanyIntelligence{
		Name:     string(raw.Name),
		Earnings: string(raw.Earnings),
		Growth:   string(raw.Growth),
		Rating:   string(raw.Rating),
		Benefits: string(raw.Benefits),
	}
	if raw.SalaryRanges != nil {
		out.SalaryRanges = types.SalaryRanges{
			Junior: string(raw.SalaryRanges.Junior),
			Mid:    string(raw.SalaryRanges.Mid),
			Senior: string(raw.SalaryRanges.Senior),
		}
	}
	if out.Name == "" {
		out.Name = req.Company
	}

	// Known-company fallback only fills fields the model left empty or
	// stamped with the literal placeholder; supplied data is trusted.
	if missing(out.Earnings) || missing(out.Growth) || missing(out.Rating) ||
		missing(out.Benefits) || missing(out.SalaryRanges.Junior) ||
		missing(out.SalaryRanges.Mid) || missing(out.SalaryRanges.Senior) {

		profile, found := e.store.CompanyProfile(req.Company)
		if !found {
			profile = e.store.GenericProfile(req.Company)
		}
		fillIfMissing(&out.Earnings, profile.Earnings, "companyIntelligence", "earnings", gap)
		fillIfMissing(&out.Growth, profile.Growth, "companyIntelligence", "growth", gap)
		fillIfMissing(&out.Rating, profile.Rating, "companyIntelligence", "rating", gap)
		fillIfMissing(&out.Benefits, profile.Benefits, "companyIntelligence", "benefits", gap)
		fillIfMissing(&out.SalaryRanges.Junior, profile.SalaryRanges.Junior, "companyIntelligence", "salaryRanges.junior", gap)
		fillIfMissing(&out.SalaryRanges.Mid, profile.SalaryRanges.Mid, "companyIntelligence", "salaryRanges.mid", gap)
		fillIfMissing(&out.SalaryRanges.Senior, profile.SalaryRanges.Senior, "companyIntelligence", "salaryRanges.senior", gap)
	}

	out.GroundingSources = dedupSources(raw.GroundingSources, sources)
	return out
}

// dedupSources merges citation lists keeping the first occurrence of
// each URI.
func dedupSources(lists ...[]types.GroundingSource) []types.GroundingSource {
	seen := make(map[string]bool)
	out := []types.GroundingSource{}
	for _, list := range lists {
		for _, src := range list {
			if src.URI == "" || seen[src.URI] {
				continue
			}
			seen[src.URI] = true
			out = append(out, src)
		}
	}
	return out
}

func (e *Engine) reconcileCommute(req types.AnalysisRequest, raw *RawCommuteAnalysis, gap func(section, field, reason string)) types.CommuteAnalysis {
	if raw == nil {
		raw = &RawCommuteAnalysis{}
		gap("commuteAnalysis", "", "section absent from model output")
	}

	bm := e.store.Benchmarks()
	out := types.CommuteAnalysis{
		From: string(raw.From),
		To:   string(raw.To),
	}
	if out.From == "" {
		out.From = req.LivingMunicipality
	}
	if out.To == "" {
		out.To = req.WorkingMunicipality
	}

	if raw.DistanceMiles <= 0 {
		// All-or-nothing replacement: mixing model travel time with
		// estimator distance would break the implied average speed.
		costs := e.estimator.Estimate(req.LivingMunicipality, req.WorkingMunicipality)
		out.DistanceMiles = costs.DistanceOneWay
		out.RoundTripDistanceMiles = costs.RoundTrip
		out.MonthlyGas = costs.MonthlyGas
		out.MonthlyTolls = costs.MonthlyTolls
		out.AnnualCost = costs.AnnualCost
		out.Time = e.estimator.TravelTime(costs.DistanceOneWay)
		out.RoundTripTime = e.estimator.TravelTime(costs.RoundTrip)
		gap("commuteAnalysis", "distanceMiles", "missing or zero distance, section replaced by estimator")
	} else {
		out.DistanceMiles = float64(raw.DistanceMiles)
		out.RoundTripDistanceMiles = float64(raw.RoundTripDistanceMiles)
		if out.RoundTripDistanceMiles <= 0 {
			out.RoundTripDistanceMiles = out.DistanceMiles * 2
			gap("commuteAnalysis", "roundTripDistanceMiles", "derived from one-way distance")
		}
		out.MonthlyGas = float64(raw.MonthlyGas)
		out.MonthlyTolls = float64(raw.MonthlyTolls)
		out.AnnualCost = float64(raw.AnnualCost)
		if out.AnnualCost <= 0 {
			out.AnnualCost = math.Round((out.MonthlyGas + out.MonthlyTolls) * 12)
			gap("commuteAnalysis", "annualCost", "derived from monthly figures")
		}
		out.Time = string(raw.Time)
		out.RoundTripTime = string(raw.RoundTripTime)
		if missing(out.Time) {
			out.Time = e.estimator.TravelTime(out.DistanceMiles)
			gap("commuteAnalysis", "time", "approximated from distance")
		}
		if missing(out.RoundTripTime) {
			out.RoundTripTime = e.estimator.TravelTime(out.RoundTripDistanceMiles)
			gap("commuteAnalysis", "roundTripTime", "approximated from distance")
		}
	}

	out.GasPricePerLiter = float64(raw.GasPricePerLiter)
	if out.GasPricePerLiter <= 0 {
		out.GasPricePerLiter = bm.GasPricePerLiter
	}
	out.TollRateBasis = string(raw.TollRateBasis)
	if missing(out.TollRateBasis) {
		out.TollRateBasis = fmt.Sprintf("flat $%.0f/day estimate beyond %.0f mi one-way",
			bm.TollPerDay, bm.TollDistanceMiles)
	}

	return out
}

func (e *Engine) reconcileCostOfLiving(req types.AnalysisRequest, raw *RawCostOfLiving, gap func(section, field, reason string)) types.CostOfLiving {
	if raw == nil {
		raw = &RawCostOfLiving{}
		gap("costOfLiving", "", "section absent from model output")
	}

	out := types.CostOfLiving{
		Location:     string(raw.Location),
		Housing:      float64(raw.Housing),
		Utilities:    float64(raw.Utilities),
		Meals:        float64(raw.Meals),
		Healthcare:   float64(raw.Healthcare),
		Misc:         float64(raw.Misc),
		TotalMonthly: float64(raw.TotalMonthly),
	}
	if out.Location == "" {
		out.Location = req.WorkingMunicipality
	}

	// A consistent non-zero total from the model is trusted as-is.
	if out.TotalMonthly <= 0 {
		bm := e.store.Benchmarks()
		if out.Housing <= 0 {
			out.Housing = bm.MonthlyHousing
		}
		if out.Utilities <= 0 {
			out.Utilities = bm.MonthlyUtilities
		}
		if out.Meals <= 0 {
			out.Meals = bm.MonthlyMeals
		}
		if out.Healthcare <= 0 {
			out.Healthcare = bm.MonthlyHealthcare
		}
		if out.Misc <= 0 {
			out.Misc = bm.MonthlyMisc
		}
		out.TotalMonthly = out.Housing + out.Utilities + out.Meals + out.Healthcare + out.Misc
		gap("costOfLiving", "totalMonthly", "filled from baseline constants")
	}

	return out
}

func (e *Engine) reconcileRecommendations(req types.AnalysisRequest, raw *RawRecommendations, gap func(section, field, reason string)) types.Recommendations {
	if raw == nil {
		raw = &RawRecommendations{}
		gap("recommendations", "", "section absent from model output")
	}

	out := types.Recommendations{
		MinTargetSalary:       float64(raw.MinTargetSalary),
		IdealSalary:           float64(raw.IdealSalary),
		IdealW2:               float64(raw.IdealW2),
		Ideal1099:             float64(raw.Ideal1099),
		Ideal480:              float64(raw.Ideal480),
		QualityOfLifeScore:    float64(raw.QualityOfLifeScore),
		NegotiationStrategies: ensureSlice(raw.NegotiationStrategies),
	}

	if out.MinTargetSalary <= 0 {
		out.MinTargetSalary = req.AnnualSalary
		gap("recommendations", "minTargetSalary", "defaulted to offered salary")
	}
	if out.IdealSalary <= 0 {
		out.IdealSalary = math.Round(req.AnnualSalary * 1.1)
		gap("recommendations", "idealSalary", "defaulted from offered salary")
	}
	if out.IdealW2 <= 0 {
		out.IdealW2 = out.IdealSalary
	}
	if out.Ideal1099 <= 0 {
		out.Ideal1099 = math.Round(out.IdealW2 * 1.35)
	}
	if out.Ideal480 <= 0 {
		out.Ideal480 = math.Round(out.IdealW2 * 1.15)
	}
	out.QualityOfLifeScore = clamp(out.QualityOfLifeScore, 0, 10)

	if raw.CandidateFitScore != nil {
		out.CandidateFitScore = types.CandidateFitScore{
			Score:   float64(raw.CandidateFitScore.Score),
			Summary: string(raw.CandidateFitScore.Summary),
		}
	}
	out.CandidateFitScore.Score = clamp(out.CandidateFitScore.Score, 0, 10)
	if req.CV != nil && out.CandidateFitScore.Score == 0 {
		out.CandidateFitScore.Score = minFitScore
		gap("recommendations", "candidateFitScore.score", "forced zero corrected with CV present")
	}
	if out.CandidateFitScore.Summary == "" {
		out.CandidateFitScore.Summary = "Assessment based on the submitted profile and role requirements."
	}

	return out
}

func (e *Engine) reconcileBenchmarks(raw []RawSalaryBenchmark, gap func(section, field, reason string)) []types.SalaryBenchmark {
	if len(raw) == 0 {
		gap("salaryBenchmarks", "", "table absent, using baseline role table")
		return e.store.SalaryBenchmarks()
	}

	out := make([]types.SalaryBenchmark, 0, len(raw))
	for _, row := range raw {
		out = append(out, types.SalaryBenchmark{
			Role:   string(row.Role),
			Junior: string(row.Junior),
			Mid:    string(row.Mid),
			Senior: string(row.Senior),
		})
	}
	return out
}

func (e *Engine) reconcileCompensation(req types.AnalysisRequest, raw *RawCompensationComparison, gap func(section, field, reason string)) types.CompensationComparison {
	if raw == nil {
		raw = &RawCompensationComparison{}
		gap("compensationComparison", "", "section absent from model output")
	}

	out := types.CompensationComparison{
		W2Salary:             float64(raw.W2Salary),
		Equivalent1099Salary: float64(raw.Equivalent1099Salary),
		Equivalent480Salary:  float64(raw.Equivalent480Salary),
	}
	if raw.Explanation1099 != nil {
		out.Explanation1099 = types.ConversionExplanation{
			SelfEmploymentTax: string(raw.Explanation1099.SelfEmploymentTax),
			BenefitsCost:      string(raw.Explanation1099.BenefitsCost),
			TotalDifference:   string(raw.Explanation1099.TotalDifference),
		}
	}
	if raw.Explanation480 != nil {
		out.Explanation480 = types.ConversionExplanation{
			TaxWithholding:  string(raw.Explanation480.TaxWithholding),
			BenefitsCost:    string(raw.Explanation480.BenefitsCost),
			TotalDifference: string(raw.Explanation480.TotalDifference),
		}
	}

	if out.W2Salary <= 0 {
		out.W2Salary = req.AnnualSalary
		out.Equivalent1099Salary = math.Round(req.AnnualSalary * 1.35)
		out.Equivalent480Salary = math.Round(req.AnnualSalary * 1.15)
		gap("compensationComparison", "w2Salary", "zero base salary, all figures recomputed")
	}
	if out.Equivalent1099Salary <= 0 {
		out.Equivalent1099Salary = math.Round(out.W2Salary * 1.35)
	}
	if out.Equivalent480Salary <= 0 {
		out.Equivalent480Salary = math.Round(out.W2Salary * 1.15)
	}

	if out.Explanation1099.SelfEmploymentTax == "" {
		out.Explanation1099.SelfEmploymentTax = "Covers the ~15.3% self-employment tax a W2 employer would otherwise split"
	}
	if out.Explanation1099.BenefitsCost == "" {
		out.Explanation1099.BenefitsCost = "Replaces employer health insurance, PTO, and retirement contributions"
	}
	if out.Explanation1099.TotalDifference == "" {
		out.Explanation1099.TotalDifference = fmt.Sprintf("$%.0f above the W2 base to stay whole",
			out.Equivalent1099Salary-out.W2Salary)
	}
	if out.Explanation480.TaxWithholding == "" {
		out.Explanation480.TaxWithholding = "Form 480 professional services withholding, potentially 4% under Act 60"
	}
	if out.Explanation480.BenefitsCost == "" {
		out.Explanation480.BenefitsCost = "No employer benefits; premium is lower than 1099 given the withholding treatment"
	}
	if out.Explanation480.TotalDifference == "" {
		out.Explanation480.TotalDifference = fmt.Sprintf("$%.0f above the W2 base to stay whole",
			out.Equivalent480Salary-out.W2Salary)
	}

	return out
}

func (e *Engine) reconcileOnboarding(raw *RawOnboardingPlan, gap func(section, field, reason string)) types.OnboardingPlan {
	baseline := e.store.OnboardingBaseline()
	if raw == nil {
		gap("onboardingPlan", "", "section absent, using baseline plan")
		return baseline
	}

	out := types.OnboardingPlan{
		Days30: reconcilePhase(raw.Days30, baseline.Days30),
		Days60: reconcilePhase(raw.Days60, baseline.Days60),
		Days90: reconcilePhase(raw.Days90, baseline.Days90),
	}
	return out
}

func reconcilePhase(raw *RawOnboardingPhase, baseline types.OnboardingPhase) types.OnboardingPhase {
	if raw == nil {
		return baseline
	}
	phase := types.OnboardingPhase{
		Title: string(raw.Title),
		Tasks: ensureSlice(raw.Tasks),
	}
	if phase.Title == "" {
		phase.Title = baseline.Title
	}
	if len(phase.Tasks) == 0 {
		phase.Tasks = baseline.Tasks
	}
	return phase
}

func (e *Engine) reconcileCvEvaluation(raw *RawCvEvaluation, gap func(section, field, reason string)) types.CvEvaluation {
	if raw == nil {
		raw = &RawCvEvaluation{}
		gap("cvEvaluation", "", "section absent from model output")
	}

	out := types.CvEvaluation{
		OverallMatch:    clamp(float64(raw.OverallMatch), 0, 100),
		Strengths:       ensureSlice(raw.Strengths),
		Weaknesses:      ensureSlice(raw.Weaknesses),
		ImprovementPlan: ensureSlice(raw.ImprovementPlan),
		Timeline:        string(raw.Timeline),
	}

	gapsIn := make([]types.SkillGap, 0, len(raw.SkillGaps))
	for _, g := range raw.SkillGaps {
		gapsIn = append(gapsIn, types.SkillGap{
			Skill:         string(g.Skill),
			Priority:      string(g.Priority),
			CurrentLevel:  string(g.CurrentLevel),
			RequiredLevel: string(g.RequiredLevel),
			LearningPath:  ensureSlice(g.LearningPath),
		})
	}
	out.SkillGaps = normalizeSkillGaps(gapsIn, gap)

	resources := make([]types.LearningResource, 0, len(raw.LearningResources))
	for _, r := range raw.LearningResources {
		resources = append(resources, types.LearningResource{
			Title:    string(r.Title),
			Type:     string(r.Type),
			Provider: string(r.Provider),
			Duration: string(r.Duration),
			Cost:     string(r.Cost),
			URL:      string(r.URL),
		})
	}
	out.LearningResources = normalizeLearningResources(resources, gap)

	return out
}

// normalizeSkillGaps pads or truncates to exactly three entries.
func normalizeSkillGaps(in []types.SkillGap, gap func(section, field, reason string)) []types.SkillGap {
	if len(in) > 3 {
		return in[:3]
	}
	fillers := []types.SkillGap{
		{
			Skill:         "GAMP5 computerized systems validation",
			Priority:      "High",
			CurrentLevel:  "Not evidenced in CV",
			RequiredLevel: "Working proficiency",
			LearningPath:  []string{"Complete an ISPE GAMP5 fundamentals course", "Shadow a validation protocol execution"},
		},
		{
			Skill:         "21 CFR Part 11 compliance",
			Priority:      "Medium",
			CurrentLevel:  "Not evidenced in CV",
			RequiredLevel: "Applied knowledge",
			LearningPath:  []string{"Review FDA Part 11 guidance", "Map requirements to a current system"},
		},
		{
			Skill:         "Technical writing for regulated environments",
			Priority:      "Medium",
			CurrentLevel:  "Not evidenced in CV",
			RequiredLevel: "Independent authoring",
			LearningPath:  []string{"Draft an SOP under review", "Study deviation report templates"},
		},
	}
	for len(in) < 3 {
		gap("cvEvaluation", "skillGaps", "padded to three entries")
		in = append(in, fillers[len(in)])
	}
	return in
}

// normalizeLearningResources pads or truncates to exactly three entries.
func normalizeLearningResources(in []types.LearningResource, gap func(section, field, reason string)) []types.LearningResource {
	if len(in) > 3 {
		return in[:3]
	}
	fillers := []types.LearningResource{
		{
			Title:    "GAMP5 Guide: A Risk-Based Approach to Compliant GxP Computerized Systems",
			Type:     "Publication",
			Provider: "ISPE",
			Duration: "Self-paced",
			Cost:     "Member pricing",
			URL:      "https://ispe.org/publications/guidance-documents/gamp-5",
		},
		{
			Title:    "Pharmaceutical Quality Systems",
			Type:     "Course",
			Provider: "Coursera",
			Duration: "4 weeks",
			Cost:     "Free to audit",
			URL:      "https://www.coursera.org",
		},
		{
			Title:    "FDA 21 CFR Part 11 Guidance for Industry",
			Type:     "Reference",
			Provider: "FDA",
			Duration: "Self-paced",
			Cost:     "Free",
			URL:      "https://www.fda.gov/regulatory-information",
		},
	}
	for len(in) < 3 {
		gap("cvEvaluation", "learningResources", "padded to three entries")
		in = append(in, fillers[len(in)])
	}
	return in
}

// breakdownFromSalary derives the pay-period breakdown from the offered
// annual salary. This block is never trusted from the model.
func breakdownFromSalary(annual float64) types.SalaryBreakdown {
	return types.SalaryBreakdown{
		Yearly:   annual,
		Monthly:  math.Round(annual / 12),
		Biweekly: math.Round(annual / 26),
		Weekly:   math.Round(annual / 52),
		Hourly:   math.Round(annual/2080*100) / 100,
	}
}

func missing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, placeholder)
}

func fillIfMissing(dst *string, value, section, field string, gap func(section, field, reason string)) {
	if missing(*dst) && value != "" {
		*dst = value
		gap(section, field, "filled from reference data")
	}
}

func ensureSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
