package ai

import (
	"fmt"
	"strings"

	"jobscope/internal/types"
)

// BuildAnalysisPrompt renders the recruiter prompt for one analysis
// request. The CV (and optional job description) travel as inline file
// parts, so the prompt only references them.
func BuildAnalysisPrompt(req types.AnalysisRequest) string {
	var b strings.Builder

	b.WriteString(`You are an Expert Pharma Recruiter specializing in the Puerto Rico industrial sector.
Analyze the following job opportunity in Puerto Rico's pharmaceutical sector based on the provided CV and Job Description (if provided).
Provide a comprehensive, data-driven analysis using your industry-specific Knowledge Base (KB).

**Expert Recruiter Constraints (Hardcoded PR Data):**
- **Current Gasoline Price**: $0.91/L (Regular)
- **LUMA Energy Rate**: $0.33/kWh (Residential Average)
- **Company Tiering**: Tier 1 (Amgen, AbbVie, Pfizer, Lilly), Tier 2 (Medtronic, Baxter, Stryker).
- **Compliance Assessment**: For Validation or Engineering roles, MUST check for GAMP5, 21 CFR Part 11, and CSA/CSV expertise.

**Candidate CV:**
(CV content is provided as a file part)
`)

	if req.JobDescription != nil {
		b.WriteString(`
**Target Job Description:**
(Job Description content is provided as a file part)
`)
	}

	fmt.Fprintf(&b, `
**Job Opportunity Details:**
- Company: %s
- Job Title: %s
- Candidate will be living in: %s
- Candidate will be working in: %s
- Offered Annual Salary: $%.0f
- Contract Type (Modality): %s
`, req.Company, req.JobTitle, req.LivingMunicipality, req.WorkingMunicipality,
		req.AnnualSalary, req.Modality)

	fmt.Fprintf(&b, `
**Analysis Request (Expert Recruitment Perspective):**
1.  **Company Intelligence**: Provide a "Tier" classification. Use a real-time web search to find the latest quarterly earnings. Include the specific manufacturing presence in %[1]s.
2.  **Commute & TCOL Analysis**: Estimated distance and time from %[2]s to %[1]s.
    - **Distance**: Provide in MILES (One Way and Round Trip). Convert from KM if necessary (1km = 0.621mi).
    - **Costs**: Calculate monthly fuel costs based on the **Round Trip** distance (20 days/month) using $0.91/L ($3.44/gal approx) and estimated PR-22/PR-52 tolls.
3.  **Cost of Living (The "LUMA Delta")**: Estimated monthly costs for housing and utilities in %[1]s. Specifically calculate the energy cost impact using the $0.33/kWh benchmark.
4.  **Recruiter Recommendations**:
    - Calculate a "Quality of Life Score" (out of 10).
    - Suggest "Expert Benchmark" salaries (Min, Ideal).
    - **Crucial**: Provide the "Ideal Target" breakdown for three structures:
        *   **Ideal W2**: The target full-time salary.
        *   **Ideal 1099**: The target equivalent for a contractor.
        *   **Ideal 480**: The target for professional services (Accounting for PR 480 specific withholdings).
    - Provide 4 high-impact negotiation strategies (e.g., relocation bonuses, sign-on for GAMP5 expertise).
    - **Candidate Fit Score (0-10)**: Rigorous assessment of CV vs. Pharma Tier expectations. Deduct if missing GAMP5 for Senior roles.%[3]s
5.  **Compensation Structure**: W2 Breakdown + Equivalent 1099 and Form 480 (PR Services) salaries. Explain the 4%% tax benefit under Act 60 if applicable for professional services.
6.  **Salary Benchmarks**: Provide an industry salary table (junior/mid/senior ranges) for roles adjacent to %[4]s in Puerto Rico.
7.  **Onboarding Plan**: A technical 30-60-90 day plan focused on GMP training, site-specific safety, and validation compliance.
8.  **CV Evaluation (Expert Critique)**: Compare the provided CV against the %[5]s. Identify 3-5 key Strengths, 3-5 Critical Weaknesses/Gaps, exactly 3 prioritized Skill Gaps with learning paths, exactly 3 Learning Resources, and a concrete Improvement Plan with a timeline.%[6]s

Return all information as a single JSON object matching the provided schema.
`,
		req.WorkingMunicipality,
		req.LivingMunicipality,
		jdScoringHint(req),
		req.JobTitle,
		jdComparisonTarget(req),
		jdReinforcementHint(req),
	)

	return b.String()
}

func jdScoringHint(req types.AnalysisRequest) string {
	if req.JobDescription != nil {
		return " Specifically score against the requirements in the uploaded Job Description."
	}
	return ""
}

func jdComparisonTarget(req types.AnalysisRequest) string {
	if req.JobDescription != nil {
		return "Uploaded Job Description"
	}
	return "Job Title and Industry Standards"
}

func jdReinforcementHint(req types.AnalysisRequest) string {
	if req.JobDescription != nil {
		return " Recommend specific information to reinforce or skills to learn based on the JD gaps."
	}
	return ""
}
