package analysis

import (
	"encoding/json"
	"strconv"
	"strings"

	"jobscope/internal/types"
)

// FlexFloat is a float64 that tolerates the ways models mangle numbers:
// quoted values, currency formatting ("$70,000"), "N/A" placeholders,
// and nulls all decode to their numeric value or zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	if s[0] == '"' {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			*f = 0
			return nil
		}
		quoted = strings.NewReplacer("$", "", ",", "", "%", "").Replace(strings.TrimSpace(quoted))
		if quoted == "" || strings.EqualFold(quoted, "n/a") {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(quoted, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexString is a string that also accepts bare numbers and nulls.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	d := strings.TrimSpace(string(data))
	if d == "" || d == "null" {
		*s = ""
		return nil
	}
	if d[0] == '"' {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			*s = ""
			return nil
		}
		*s = FlexString(quoted)
		return nil
	}
	*s = FlexString(d)
	return nil
}

// RawReport is the permissive shape the sanitized model output is parsed
// into. Every sub-record is a pointer so the reconciliation engine can
// tell "absent" from "zero valued". This shape never leaves the package.
type RawReport struct {
	CompanyIntelligence    *RawCompanyIntelligence    `json:"companyIntelligence"`
	CommuteAnalysis        *RawCommuteAnalysis        `json:"commuteAnalysis"`
	CostOfLiving           *RawCostOfLiving           `json:"costOfLiving"`
	Recommendations        *RawRecommendations        `json:"recommendations"`
	SalaryBenchmarks       []RawSalaryBenchmark       `json:"salaryBenchmarks"`
	CompensationComparison *RawCompensationComparison `json:"compensationComparison"`
	OnboardingPlan         *RawOnboardingPlan         `json:"onboardingPlan"`
	CvEvaluation           *RawCvEvaluation           `json:"cvEvaluation"`
}

type RawSalaryRanges struct {
	Junior FlexString `json:"junior"`
	Mid    FlexString `json:"mid"`
	Senior FlexString `json:"senior"`
}

type RawCompanyIntelligence struct {
	Name             FlexString              `json:"name"`
	Earnings         FlexString              `json:"earnings"`
	Growth           FlexString              `json:"growth"`
	Rating           FlexString              `json:"rating"`
	Benefits         FlexString              `json:"benefits"`
	SalaryRanges     *RawSalaryRanges        `json:"salaryRanges"`
	GroundingSources []types.GroundingSource `json:"groundingSources"`
}

type RawCommuteAnalysis struct {
	From                   FlexString `json:"from"`
	To                     FlexString `json:"to"`
	DistanceMiles          FlexFloat  `json:"distanceMiles"`
	RoundTripDistanceMiles FlexFloat  `json:"roundTripDistanceMiles"`
	Time                   FlexString `json:"time"`
	RoundTripTime          FlexString `json:"roundTripTime"`
	MonthlyGas             FlexFloat  `json:"monthlyGas"`
	MonthlyTolls           FlexFloat  `json:"monthlyTolls"`
	AnnualCost             FlexFloat  `json:"annualCost"`
	GasPricePerLiter       FlexFloat  `json:"gasPricePerLiter"`
	TollRateBasis          FlexString `json:"tollRateBasis"`
}

type RawCostOfLiving struct {
	Location     FlexString `json:"location"`
	Housing      FlexFloat  `json:"housing"`
	Utilities    FlexFloat  `json:"utilities"`
	Meals        FlexFloat  `json:"meals"`
	Healthcare   FlexFloat  `json:"healthcare"`
	Misc         FlexFloat  `json:"misc"`
	TotalMonthly FlexFloat  `json:"totalMonthly"`
}

type RawCandidateFitScore struct {
	Score   FlexFloat  `json:"score"`
	Summary FlexString `json:"summary"`
}

type RawRecommendations struct {
	MinTargetSalary       FlexFloat             `json:"minTargetSalary"`
	IdealSalary           FlexFloat             `json:"idealSalary"`
	IdealW2               FlexFloat             `json:"idealW2"`
	Ideal1099             FlexFloat             `json:"ideal1099"`
	Ideal480              FlexFloat             `json:"ideal480"`
	QualityOfLifeScore    FlexFloat             `json:"qualityOfLifeScore"`
	NegotiationStrategies []string              `json:"negotiationStrategies"`
	CandidateFitScore     *RawCandidateFitScore `json:"candidateFitScore"`
}

type RawSalaryBenchmark struct {
	Role   FlexString `json:"role"`
	Junior FlexString `json:"junior"`
	Mid    FlexString `json:"mid"`
	Senior FlexString `json:"senior"`
}

type RawConversionExplanation struct {
	SelfEmploymentTax FlexString `json:"selfEmploymentTax"`
	TaxWithholding    FlexString `json:"taxWithholding"`
	BenefitsCost      FlexString `json:"benefitsCost"`
	TotalDifference   FlexString `json:"totalDifference"`
}

type RawCompensationComparison struct {
	W2Salary             FlexFloat                 `json:"w2Salary"`
	Equivalent1099Salary FlexFloat                 `json:"equivalent1099Salary"`
	Equivalent480Salary  FlexFloat                 `json:"equivalent480Salary"`
	Explanation1099      *RawConversionExplanation `json:"explanation1099"`
	Explanation480       *RawConversionExplanation `json:"explanation480"`
}

type RawOnboardingPhase struct {
	Title FlexString `json:"title"`
	Tasks []string   `json:"tasks"`
}

type RawOnboardingPlan struct {
	Days30 *RawOnboardingPhase `json:"days30"`
	Days60 *RawOnboardingPhase `json:"days60"`
	Days90 *RawOnboardingPhase `json:"days90"`
}

type RawSkillGap struct {
	Skill         FlexString `json:"skill"`
	Priority      FlexString `json:"priority"`
	CurrentLevel  FlexString `json:"currentLevel"`
	RequiredLevel FlexString `json:"requiredLevel"`
	LearningPath  []string   `json:"learningPath"`
}

type RawLearningResource struct {
	Title    FlexString `json:"title"`
	Type     FlexString `json:"type"`
	Provider FlexString `json:"provider"`
	Duration FlexString `json:"duration"`
	Cost     FlexString `json:"cost"`
	URL      FlexString `json:"url"`
}

type RawCvEvaluation struct {
	OverallMatch      FlexFloat             `json:"overallMatch"`
	Strengths         []string              `json:"strengths"`
	Weaknesses        []string              `json:"weaknesses"`
	SkillGaps         []RawSkillGap         `json:"skillGaps"`
	LearningResources []RawLearningResource `json:"learningResources"`
	ImprovementPlan   []string              `json:"improvementPlan"`
	Timeline          FlexString            `json:"timeline"`
}
