package types

// EmploymentModality identifies the compensation structure of an offer.
type EmploymentModality string

const (
	ModalityW2   EmploymentModality = "W2"
	Modality1099 EmploymentModality = "1099"
	Modality480  EmploymentModality = "480"
)

// ValidModality reports whether m is one of the three supported structures.
func ValidModality(m EmploymentModality) bool {
	switch m {
	case ModalityW2, Modality1099, Modality480:
		return true
	}
	return false
}

// Document is an uploaded file (CV or job description) passed to the model
// as an inline part.
type Document struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mimeType"`
}

// AnalysisRequest carries everything the user submitted for one analysis.
// A CV document is mandatory; the job description is optional.
type AnalysisRequest struct {
	SolicitorName       string             `json:"solicitorName"`
	Company             string             `json:"company"`
	JobTitle            string             `json:"jobTitle"`
	LivingMunicipality  string             `json:"livingMunicipality"`
	WorkingMunicipality string             `json:"workingMunicipality"`
	AnnualSalary        float64            `json:"annualSalary"`
	Modality            EmploymentModality `json:"modality"`
	CV                  *Document          `json:"cv,omitempty"`
	JobDescription      *Document          `json:"jobDescription,omitempty"`
}

// GroundingSource is a web citation the model attached to support a claim.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SalaryRanges holds compensation bands per seniority level.
type SalaryRanges struct {
	Junior string `json:"junior"`
	Mid    string `json:"mid"`
	Senior string `json:"senior"`
}

// CompanyIntelligence describes the hiring company.
type CompanyIntelligence struct {
	Name             string            `json:"name"`
	Earnings         string            `json:"earnings"`
	Growth           string            `json:"growth"`
	Rating           string            `json:"rating"`
	Benefits         string            `json:"benefits"`
	SalaryRanges     SalaryRanges      `json:"salaryRanges"`
	GroundingSources []GroundingSource `json:"groundingSources"`
}

// CommuteAnalysis holds the commute cost breakdown between the living and
// working municipalities. Money fields are whole dollars per month except
// AnnualCost (per year).
type CommuteAnalysis struct {
	From                   string  `json:"from"`
	To                     string  `json:"to"`
	DistanceMiles          float64 `json:"distanceMiles"`
	RoundTripDistanceMiles float64 `json:"roundTripDistanceMiles"`
	Time                   string  `json:"time"`
	RoundTripTime          string  `json:"roundTripTime"`
	MonthlyGas             float64 `json:"monthlyGas"`
	MonthlyTolls           float64 `json:"monthlyTolls"`
	AnnualCost             float64 `json:"annualCost"`
	GasPricePerLiter       float64 `json:"gasPricePerLiter"`
	TollRateBasis          string  `json:"tollRateBasis"`
}

// CostOfLiving holds estimated monthly expenses near the work site.
type CostOfLiving struct {
	Location     string  `json:"location"`
	Housing      float64 `json:"housing"`
	Utilities    float64 `json:"utilities"`
	Meals        float64 `json:"meals"`
	Healthcare   float64 `json:"healthcare"`
	Misc         float64 `json:"misc"`
	TotalMonthly float64 `json:"totalMonthly"`
}

// CandidateFitScore is the 0-10 CV-versus-role assessment.
type CandidateFitScore struct {
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// Recommendations holds target salaries and negotiation guidance.
type Recommendations struct {
	MinTargetSalary       float64           `json:"minTargetSalary"`
	IdealSalary           float64           `json:"idealSalary"`
	IdealW2               float64           `json:"idealW2"`
	Ideal1099             float64           `json:"ideal1099"`
	Ideal480              float64           `json:"ideal480"`
	QualityOfLifeScore    float64           `json:"qualityOfLifeScore"`
	NegotiationStrategies []string          `json:"negotiationStrategies"`
	CandidateFitScore     CandidateFitScore `json:"candidateFitScore"`
}

// SalaryBreakdown is derived from the requested annual salary, never taken
// from the model.
type SalaryBreakdown struct {
	Yearly   float64 `json:"yearly"`
	Monthly  float64 `json:"monthly"`
	Biweekly float64 `json:"biweekly"`
	Weekly   float64 `json:"weekly"`
	Hourly   float64 `json:"hourly"`
}

// SalaryBenchmark is one row of the role compensation table.
type SalaryBenchmark struct {
	Role   string `json:"role"`
	Junior string `json:"junior"`
	Mid    string `json:"mid"`
	Senior string `json:"senior"`
}

// ConversionExplanation is the rationale for a compensation structure
// conversion. SelfEmploymentTax applies to 1099, TaxWithholding to 480.
type ConversionExplanation struct {
	SelfEmploymentTax string `json:"selfEmploymentTax,omitempty"`
	TaxWithholding    string `json:"taxWithholding,omitempty"`
	BenefitsCost      string `json:"benefitsCost"`
	TotalDifference   string `json:"totalDifference"`
}

// CompensationComparison relates the W2 salary to its 1099 and Form 480
// contractor equivalents.
type CompensationComparison struct {
	W2Salary             float64               `json:"w2Salary"`
	Equivalent1099Salary float64               `json:"equivalent1099Salary"`
	Equivalent480Salary  float64               `json:"equivalent480Salary"`
	Explanation1099      ConversionExplanation `json:"explanation1099"`
	Explanation480       ConversionExplanation `json:"explanation480"`
}

// OnboardingPhase is one block of the 30-60-90 day plan.
type OnboardingPhase struct {
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

// OnboardingPlan is the three-phase onboarding plan.
type OnboardingPlan struct {
	Days30 OnboardingPhase `json:"days30"`
	Days60 OnboardingPhase `json:"days60"`
	Days90 OnboardingPhase `json:"days90"`
}

// SkillGap is one prioritized gap between the CV and the role. Reports
// always carry exactly three.
type SkillGap struct {
	Skill         string   `json:"skill"`
	Priority      string   `json:"priority"`
	CurrentLevel  string   `json:"currentLevel"`
	RequiredLevel string   `json:"requiredLevel"`
	LearningPath  []string `json:"learningPath"`
}

// LearningResource is one recommended training resource. Reports always
// carry exactly three.
type LearningResource struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Duration string `json:"duration"`
	Cost     string `json:"cost"`
	URL      string `json:"url"`
}

// CvEvaluation is the expert critique of the submitted CV.
type CvEvaluation struct {
	OverallMatch      float64            `json:"overallMatch"`
	Strengths         []string           `json:"strengths"`
	Weaknesses        []string           `json:"weaknesses"`
	SkillGaps         []SkillGap         `json:"skillGaps"`
	LearningResources []LearningResource `json:"learningResources"`
	ImprovementPlan   []string           `json:"improvementPlan"`
	Timeline          string             `json:"timeline"`
}

// AnalysisReport is the fully reconciled analysis. Every section is
// guaranteed populated; consumers never observe a missing sub-record.
type AnalysisReport struct {
	SolicitorName          string                 `json:"solicitorName"`
	InputModality          EmploymentModality     `json:"inputModality"`
	CompanyIntelligence    CompanyIntelligence    `json:"companyIntelligence"`
	CommuteAnalysis        CommuteAnalysis        `json:"commuteAnalysis"`
	CostOfLiving           CostOfLiving           `json:"costOfLiving"`
	Recommendations        Recommendations        `json:"recommendations"`
	SalaryBreakdown        SalaryBreakdown        `json:"salaryBreakdown"`
	SalaryBenchmarks       []SalaryBenchmark      `json:"salaryBenchmarks"`
	CompensationComparison CompensationComparison `json:"compensationComparison"`
	OnboardingPlan         OnboardingPlan         `json:"onboardingPlan"`
	CvEvaluation           CvEvaluation           `json:"cvEvaluation"`
}
