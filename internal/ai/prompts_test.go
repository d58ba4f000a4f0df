package ai

import (
	"strings"
	"testing"

	"jobscope/internal/types"
)

func baseRequest() types.AnalysisRequest {
	return types.AnalysisRequest{
		SolicitorName:       "Ana Rivera",
		Company:             "Amgen",
		JobTitle:            "Validation Engineer",
		LivingMunicipality:  "Caguas",
		WorkingMunicipality: "Juncos",
		AnnualSalary:        85000,
		Modality:            types.ModalityW2,
		CV:                  &types.Document{Data: []byte("cv"), MimeType: "application/pdf"},
	}
}

func TestBuildAnalysisPromptWithoutJD(t *testing.T) {
	prompt := BuildAnalysisPrompt(baseRequest())

	for _, want := range []string{
		"Amgen",
		"Validation Engineer",
		"Caguas",
		"Juncos",
		"$85000",
		"W2",
		"Job Title and Industry Standards",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "Target Job Description") {
		t.Error("prompt should not mention a job description when none was provided")
	}
}

func TestBuildAnalysisPromptWithJD(t *testing.T) {
	req := baseRequest()
	req.JobDescription = &types.Document{Data: []byte("jd"), MimeType: "text/plain"}
	prompt := BuildAnalysisPrompt(req)

	for _, want := range []string{
		"Target Job Description",
		"Uploaded Job Description",
		"score against the requirements in the uploaded Job Description",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
