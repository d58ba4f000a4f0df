package formatters

import (
	"strings"
	"testing"

	"jobscope/internal/types"
)

func sampleReport() types.AnalysisReport {
	return types.AnalysisReport{
		SolicitorName: "Ana Rivera",
		InputModality: types.ModalityW2,
		CompanyIntelligence: types.CompanyIntelligence{
			Name:     "Amgen",
			Earnings: "Fortune 500 biotech",
			SalaryRanges: types.SalaryRanges{
				Junior: "$50k - $65k", Mid: "$65k - $90k", Senior: "$90k - $120k",
			},
		},
		CommuteAnalysis: types.CommuteAnalysis{
			From: "Caguas", To: "Juncos", DistanceMiles: 10, RoundTripDistanceMiles: 20,
			Time: "20 min", RoundTripTime: "40 min",
			MonthlyGas: 63, AnnualCost: 752,
		},
		SalaryBreakdown: types.SalaryBreakdown{
			Yearly: 70000, Monthly: 5833, Biweekly: 2692, Weekly: 1346, Hourly: 33.65,
		},
		Recommendations: types.Recommendations{
			MinTargetSalary: 70000,
			CandidateFitScore: types.CandidateFitScore{
				Score: 7, Summary: "Solid match for the role.",
			},
		},
	}
}

func TestRegistryFormatsJSONForAnyType(t *testing.T) {
	out, err := GlobalRegistry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out, `"key": "value"`) {
		t.Errorf("json output missing key: %s", out)
	}
}

func TestReportTextFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleReport(), "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	for _, want := range []string{
		"Prepared for: Ana Rivera",
		"Route: Caguas -> Juncos",
		"Annual commute cost: $752",
		"Yearly: $70000",
		"Hourly: $33.65",
		"Candidate fit: 7.0/10",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestReportMarkdownFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleReport(), "markdown")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	for _, want := range []string{
		"# Opportunity Analysis",
		"## Company Intelligence",
		"| Junior | $50k - $65k |",
		"| $70000 | $5833 | $2692 | $1346 | $33.65 |",
		"Solid match for the role.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestPointerReportAccepted(t *testing.T) {
	report := sampleReport()
	out, err := GlobalRegistry.Format(&report, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out, "Prepared for: Ana Rivera") {
		t.Error("pointer report should format like a value report")
	}
}

func TestUnknownFormatRejected(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleReport(), "xml"); err == nil {
		t.Error("expected an error for an unregistered format")
	}
}
