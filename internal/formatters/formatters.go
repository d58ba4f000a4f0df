package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobscope/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisReport", &ReportTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisReport", &ReportMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisReport, *types.AnalysisReport:
		return "AnalysisReport"
	default:
		return "any"
	}
}

// reportFromAny accepts both value and pointer forms of the report.
func reportFromAny(data any) (*types.AnalysisReport, bool) {
	switch r := data.(type) {
	case *types.AnalysisReport:
		return r, r != nil
	case types.AnalysisReport:
		return &r, true
	}
	return nil, false
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ReportTextFormatter handles text formatting for analysis reports
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	r, ok := reportFromAny(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPPORTUNITY ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Prepared for: %s\n", r.SolicitorName))
	output.WriteString(fmt.Sprintf("Employment structure: %s\n\n", r.InputModality))

	ci := r.CompanyIntelligence
	output.WriteString("=== COMPANY INTELLIGENCE ===\n")
	output.WriteString(fmt.Sprintf("Company: %s\n", ci.Name))
	output.WriteString(fmt.Sprintf("Earnings: %s\n", ci.Earnings))
	output.WriteString(fmt.Sprintf("Growth: %s\n", ci.Growth))
	output.WriteString(fmt.Sprintf("Rating: %s\n", ci.Rating))
	output.WriteString(fmt.Sprintf("Benefits: %s\n", ci.Benefits))
	output.WriteString(fmt.Sprintf("Salary ranges: junior %s, mid %s, senior %s\n",
		ci.SalaryRanges.Junior, ci.SalaryRanges.Mid, ci.SalaryRanges.Senior))
	if len(ci.GroundingSources) > 0 {
		output.WriteString("Sources:\n")
		for _, src := range ci.GroundingSources {
			output.WriteString(fmt.Sprintf("- %s (%s)\n", src.Title, src.URI))
		}
	}
	output.WriteString("\n")

	ca := r.CommuteAnalysis
	output.WriteString("=== COMMUTE ===\n")
	output.WriteString(fmt.Sprintf("Route: %s -> %s\n", ca.From, ca.To))
	output.WriteString(fmt.Sprintf("Distance: %.1f mi one way (%.1f mi round trip)\n",
		ca.DistanceMiles, ca.RoundTripDistanceMiles))
	output.WriteString(fmt.Sprintf("Time: %s one way, %s round trip\n", ca.Time, ca.RoundTripTime))
	output.WriteString(fmt.Sprintf("Monthly gas: $%.0f\n", ca.MonthlyGas))
	output.WriteString(fmt.Sprintf("Monthly tolls: $%.0f\n", ca.MonthlyTolls))
	output.WriteString(fmt.Sprintf("Annual commute cost: $%.0f\n\n", ca.AnnualCost))

	col := r.CostOfLiving
	output.WriteString("=== COST OF LIVING ===\n")
	output.WriteString(fmt.Sprintf("Location: %s\n", col.Location))
	output.WriteString(fmt.Sprintf("Housing: $%.0f  Utilities: $%.0f  Meals: $%.0f\n",
		col.Housing, col.Utilities, col.Meals))
	output.WriteString(fmt.Sprintf("Healthcare: $%.0f  Misc: $%.0f\n", col.Healthcare, col.Misc))
	output.WriteString(fmt.Sprintf("Total monthly: $%.0f\n\n", col.TotalMonthly))

	sb := r.SalaryBreakdown
	output.WriteString("=== SALARY BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Yearly: $%.0f  Monthly: $%.0f  Biweekly: $%.0f  Weekly: $%.0f  Hourly: $%.2f\n\n",
		sb.Yearly, sb.Monthly, sb.Biweekly, sb.Weekly, sb.Hourly))

	cc := r.CompensationComparison
	output.WriteString("=== COMPENSATION STRUCTURES ===\n")
	output.WriteString(fmt.Sprintf("W2 base: $%.0f\n", cc.W2Salary))
	output.WriteString(fmt.Sprintf("1099 equivalent: $%.0f\n", cc.Equivalent1099Salary))
	output.WriteString(fmt.Sprintf("Form 480 equivalent: $%.0f\n\n", cc.Equivalent480Salary))

	if len(r.SalaryBenchmarks) > 0 {
		output.WriteString("=== SALARY BENCHMARKS ===\n")
		for _, row := range r.SalaryBenchmarks {
			output.WriteString(fmt.Sprintf("%s: junior %s, mid %s, senior %s\n",
				row.Role, row.Junior, row.Mid, row.Senior))
		}
		output.WriteString("\n")
	}

	rec := r.Recommendations
	output.WriteString("=== RECOMMENDATIONS ===\n")
	output.WriteString(fmt.Sprintf("Minimum target salary: $%.0f\n", rec.MinTargetSalary))
	output.WriteString(fmt.Sprintf("Ideal salary: $%.0f (W2 $%.0f / 1099 $%.0f / 480 $%.0f)\n",
		rec.IdealSalary, rec.IdealW2, rec.Ideal1099, rec.Ideal480))
	output.WriteString(fmt.Sprintf("Quality of life score: %.1f/10\n", rec.QualityOfLifeScore))
	output.WriteString(fmt.Sprintf("Candidate fit: %.1f/10 - %s\n", rec.CandidateFitScore.Score,
		rec.CandidateFitScore.Summary))
	if len(rec.NegotiationStrategies) > 0 {
		output.WriteString("Negotiation strategies:\n")
		for _, strat := range rec.NegotiationStrategies {
			output.WriteString(fmt.Sprintf("- %s\n", strat))
		}
	}
	output.WriteString("\n")

	op := r.OnboardingPlan
	output.WriteString("=== ONBOARDING PLAN ===\n")
	writePhaseText(&output, "Days 1-30", op.Days30)
	writePhaseText(&output, "Days 31-60", op.Days60)
	writePhaseText(&output, "Days 61-90", op.Days90)

	cv := r.CvEvaluation
	output.WriteString("=== CV EVALUATION ===\n")
	output.WriteString(fmt.Sprintf("Overall match: %.0f/100\n", cv.OverallMatch))
	writeListText(&output, "Strengths", cv.Strengths)
	writeListText(&output, "Weaknesses", cv.Weaknesses)
	if len(cv.SkillGaps) > 0 {
		output.WriteString("Skill gaps:\n")
		for i, gap := range cv.SkillGaps {
			output.WriteString(fmt.Sprintf("%d. %s (%s priority): %s -> %s\n",
				i+1, gap.Skill, gap.Priority, gap.CurrentLevel, gap.RequiredLevel))
			for _, step := range gap.LearningPath {
				output.WriteString(fmt.Sprintf("   - %s\n", step))
			}
		}
	}
	if len(cv.LearningResources) > 0 {
		output.WriteString("Learning resources:\n")
		for _, res := range cv.LearningResources {
			output.WriteString(fmt.Sprintf("- %s (%s, %s, %s, %s)\n",
				res.Title, res.Type, res.Provider, res.Duration, res.Cost))
		}
	}
	writeListText(&output, "Improvement plan", cv.ImprovementPlan)
	if cv.Timeline != "" {
		output.WriteString(fmt.Sprintf("Timeline: %s\n", cv.Timeline))
	}

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "AnalysisReport"
}

func writePhaseText(output *strings.Builder, label string, phase types.OnboardingPhase) {
	output.WriteString(fmt.Sprintf("%s: %s\n", label, phase.Title))
	for _, task := range phase.Tasks {
		output.WriteString(fmt.Sprintf("- %s\n", task))
	}
	output.WriteString("\n")
}

func writeListText(output *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(label + ":\n")
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
}

// ReportMarkdownFormatter handles markdown formatting for analysis reports
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	r, ok := reportFromAny(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Opportunity Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Prepared for:** %s  \n", r.SolicitorName))
	output.WriteString(fmt.Sprintf("**Employment structure:** %s\n\n", r.InputModality))

	ci := r.CompanyIntelligence
	output.WriteString("## Company Intelligence\n\n")
	output.WriteString(fmt.Sprintf("**Company:** %s\n\n", ci.Name))
	output.WriteString(fmt.Sprintf("- **Earnings:** %s\n", ci.Earnings))
	output.WriteString(fmt.Sprintf("- **Growth:** %s\n", ci.Growth))
	output.WriteString(fmt.Sprintf("- **Rating:** %s\n", ci.Rating))
	output.WriteString(fmt.Sprintf("- **Benefits:** %s\n\n", ci.Benefits))
	output.WriteString("| Level | Range |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Junior | %s |\n", ci.SalaryRanges.Junior))
	output.WriteString(fmt.Sprintf("| Mid | %s |\n", ci.SalaryRanges.Mid))
	output.WriteString(fmt.Sprintf("| Senior | %s |\n\n", ci.SalaryRanges.Senior))
	if len(ci.GroundingSources) > 0 {
		output.WriteString("### Sources\n\n")
		for _, src := range ci.GroundingSources {
			output.WriteString(fmt.Sprintf("- [%s](%s)\n", src.Title, src.URI))
		}
		output.WriteString("\n")
	}

	ca := r.CommuteAnalysis
	output.WriteString("## Commute\n\n")
	output.WriteString(fmt.Sprintf("**Route:** %s → %s\n\n", ca.From, ca.To))
	output.WriteString(fmt.Sprintf("- **Distance:** %.1f mi one way (%.1f mi round trip)\n",
		ca.DistanceMiles, ca.RoundTripDistanceMiles))
	output.WriteString(fmt.Sprintf("- **Time:** %s one way, %s round trip\n", ca.Time, ca.RoundTripTime))
	output.WriteString(fmt.Sprintf("- **Monthly gas:** $%.0f\n", ca.MonthlyGas))
	output.WriteString(fmt.Sprintf("- **Monthly tolls:** $%.0f\n", ca.MonthlyTolls))
	output.WriteString(fmt.Sprintf("- **Annual cost:** $%.0f\n\n", ca.AnnualCost))

	col := r.CostOfLiving
	output.WriteString("## Cost of Living\n\n")
	output.WriteString(fmt.Sprintf("Estimated monthly expenses near %s:\n\n", col.Location))
	output.WriteString("| Category | Monthly |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Housing | $%.0f |\n", col.Housing))
	output.WriteString(fmt.Sprintf("| Utilities | $%.0f |\n", col.Utilities))
	output.WriteString(fmt.Sprintf("| Meals | $%.0f |\n", col.Meals))
	output.WriteString(fmt.Sprintf("| Healthcare | $%.0f |\n", col.Healthcare))
	output.WriteString(fmt.Sprintf("| Misc | $%.0f |\n", col.Misc))
	output.WriteString(fmt.Sprintf("| **Total** | **$%.0f** |\n\n", col.TotalMonthly))

	sb := r.SalaryBreakdown
	output.WriteString("## Salary Breakdown\n\n")
	output.WriteString("| Yearly | Monthly | Biweekly | Weekly | Hourly |\n|---|---|---|---|---|\n")
	output.WriteString(fmt.Sprintf("| $%.0f | $%.0f | $%.0f | $%.0f | $%.2f |\n\n",
		sb.Yearly, sb.Monthly, sb.Biweekly, sb.Weekly, sb.Hourly))

	cc := r.CompensationComparison
	output.WriteString("## Compensation Structures\n\n")
	output.WriteString(fmt.Sprintf("- **W2 base:** $%.0f\n", cc.W2Salary))
	output.WriteString(fmt.Sprintf("- **1099 equivalent:** $%.0f\n", cc.Equivalent1099Salary))
	output.WriteString(fmt.Sprintf("- **Form 480 equivalent:** $%.0f\n\n", cc.Equivalent480Salary))
	output.WriteString(fmt.Sprintf("**1099 rationale:** %s %s %s\n\n",
		cc.Explanation1099.SelfEmploymentTax, cc.Explanation1099.BenefitsCost, cc.Explanation1099.TotalDifference))
	output.WriteString(fmt.Sprintf("**Form 480 rationale:** %s %s %s\n\n",
		cc.Explanation480.TaxWithholding, cc.Explanation480.BenefitsCost, cc.Explanation480.TotalDifference))

	if len(r.SalaryBenchmarks) > 0 {
		output.WriteString("## Salary Benchmarks\n\n")
		output.WriteString("| Role | Junior | Mid | Senior |\n|---|---|---|---|\n")
		for _, row := range r.SalaryBenchmarks {
			output.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				row.Role, row.Junior, row.Mid, row.Senior))
		}
		output.WriteString("\n")
	}

	rec := r.Recommendations
	output.WriteString("## Recommendations\n\n")
	output.WriteString(fmt.Sprintf("- **Minimum target salary:** $%.0f\n", rec.MinTargetSalary))
	output.WriteString(fmt.Sprintf("- **Ideal salary:** $%.0f (W2 $%.0f / 1099 $%.0f / 480 $%.0f)\n",
		rec.IdealSalary, rec.IdealW2, rec.Ideal1099, rec.Ideal480))
	output.WriteString(fmt.Sprintf("- **Quality of life score:** %.1f/10\n", rec.QualityOfLifeScore))
	output.WriteString(fmt.Sprintf("- **Candidate fit:** %.1f/10\n\n", rec.CandidateFitScore.Score))
	output.WriteString(rec.CandidateFitScore.Summary)
	output.WriteString("\n\n")
	if len(rec.NegotiationStrategies) > 0 {
		output.WriteString("### Negotiation Strategies\n\n")
		for _, strat := range rec.NegotiationStrategies {
			output.WriteString(fmt.Sprintf("- %s\n", strat))
		}
		output.WriteString("\n")
	}

	op := r.OnboardingPlan
	output.WriteString("## Onboarding Plan\n\n")
	writePhaseMarkdown(&output, "Days 1-30", op.Days30)
	writePhaseMarkdown(&output, "Days 31-60", op.Days60)
	writePhaseMarkdown(&output, "Days 61-90", op.Days90)

	cv := r.CvEvaluation
	output.WriteString("## CV Evaluation\n\n")
	output.WriteString(fmt.Sprintf("**Overall match:** %.0f/100\n\n", cv.OverallMatch))
	writeListMarkdown(&output, "Strengths", cv.Strengths)
	writeListMarkdown(&output, "Weaknesses", cv.Weaknesses)
	if len(cv.SkillGaps) > 0 {
		output.WriteString("### Skill Gaps\n\n")
		for i, gap := range cv.SkillGaps {
			output.WriteString(fmt.Sprintf("%d. **%s** (%s priority): %s → %s\n",
				i+1, gap.Skill, gap.Priority, gap.CurrentLevel, gap.RequiredLevel))
			for _, step := range gap.LearningPath {
				output.WriteString(fmt.Sprintf("   - %s\n", step))
			}
		}
		output.WriteString("\n")
	}
	if len(cv.LearningResources) > 0 {
		output.WriteString("### Learning Resources\n\n")
		output.WriteString("| Title | Type | Provider | Duration | Cost |\n|---|---|---|---|---|\n")
		for _, res := range cv.LearningResources {
			output.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				res.Title, res.Type, res.Provider, res.Duration, res.Cost))
		}
		output.WriteString("\n")
	}
	writeListMarkdown(&output, "Improvement Plan", cv.ImprovementPlan)
	if cv.Timeline != "" {
		output.WriteString(fmt.Sprintf("**Timeline:** %s\n", cv.Timeline))
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "AnalysisReport"
}

func writePhaseMarkdown(output *strings.Builder, label string, phase types.OnboardingPhase) {
	output.WriteString(fmt.Sprintf("### %s: %s\n\n", label, phase.Title))
	for _, task := range phase.Tasks {
		output.WriteString(fmt.Sprintf("- %s\n", task))
	}
	output.WriteString("\n")
}

func writeListMarkdown(output *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("### %s\n\n", label))
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
