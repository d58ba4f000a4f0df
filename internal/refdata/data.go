package refdata

import "jobscope/internal/types"

// Municipalities covered by the built-in commute data.
var Municipalities = []string{
	"San Juan", "Juncos", "Barceloneta", "Canóvanas", "Carolina",
	"Ponce", "Mayagüez", "Arecibo", "Manatí", "Humacao",
	"Fajardo", "Guaynabo", "Bayamón", "Caguas", "Gurabo",
	"Las Piedras", "Dorado", "Vega Baja", "Aguadilla",
}

// defaultDistanceMatrix holds approximate one-way road miles between
// municipality pairs. The matrix is sparse and asymmetric in storage;
// lookups consult both directions.
func defaultDistanceMatrix() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"San Juan": {
			"Juncos":      28,
			"Barceloneta": 35,
			"Canóvanas":   15,
			"Manatí":      32,
			"Humacao":     35,
			"Caguas":      18,
			"Ponce":       72,
			"Gurabo":      22,
			"Las Piedras": 32,
		},
		"Guaynabo": {
			"Juncos":      25,
			"Barceloneta": 32,
			"Manatí":      29,
			"Caguas":      12,
		},
		"Bayamón": {
			"Barceloneta": 28,
			"Manatí":      25,
			"Juncos":      35,
		},
		"Caguas": {
			"Juncos":      10,
			"Humacao":     18,
			"Las Piedras": 12,
			"San Juan":    18,
			"Ponce":       55,
		},
		"Carolina": {
			"Canóvanas": 8,
			"Juncos":    20,
			"Fajardo":   30,
		},
	}
}

// Benchmarks holds the tunable cost constants used by the commute and
// cost-of-living fallbacks. All values can be overridden from the YAML
// override file.
type Benchmarks struct {
	GasPricePerLiter    float64 `yaml:"gas_price_per_liter"`
	LumaRatePerKwh      float64 `yaml:"luma_rate_per_kwh"`
	AvgMpg              float64 `yaml:"avg_mpg"`
	WorkingDaysPerMonth float64 `yaml:"working_days_per_month"`
	LitersPerGallon     float64 `yaml:"liters_per_gallon"`
	TollPerDay          float64 `yaml:"toll_per_day"`
	TollDistanceMiles   float64 `yaml:"toll_distance_miles"`
	LocalCommuteMiles   float64 `yaml:"local_commute_miles"`
	DefaultCommuteMiles float64 `yaml:"default_commute_miles"`
	MinutesPerMile      float64 `yaml:"minutes_per_mile"`

	// Monthly cost-of-living baselines used when the model returns an
	// empty cost section.
	MonthlyHousing    float64 `yaml:"monthly_housing"`
	MonthlyUtilities  float64 `yaml:"monthly_utilities"`
	MonthlyMeals      float64 `yaml:"monthly_meals"`
	MonthlyHealthcare float64 `yaml:"monthly_healthcare"`
	MonthlyMisc       float64 `yaml:"monthly_misc"`
}

func defaultBenchmarks() Benchmarks {
	return Benchmarks{
		GasPricePerLiter:    0.91,
		LumaRatePerKwh:      0.33,
		AvgMpg:              22,
		WorkingDaysPerMonth: 20,
		LitersPerGallon:     3.78541,
		TollPerDay:          4,
		TollDistanceMiles:   15,
		LocalCommuteMiles:   5,
		DefaultCommuteMiles: 25,
		MinutesPerMile:      2,
		MonthlyHousing:      1100,
		MonthlyUtilities:    250,
		MonthlyMeals:        450,
		MonthlyHealthcare:   200,
		MonthlyMisc:         200,
	}
}

// CompanyProfile is a pre-authored intelligence record for a known
// employer, used when the model returns an empty company section.
type CompanyProfile struct {
	Name         string             `yaml:"name"`
	Tier         int                `yaml:"tier"`
	Earnings     string             `yaml:"earnings"`
	Growth       string             `yaml:"growth"`
	Rating       string             `yaml:"rating"`
	Benefits     string             `yaml:"benefits"`
	SalaryRanges types.SalaryRanges `yaml:"salary_ranges"`
}

func defaultCompanyProfiles() []CompanyProfile {
	tier1Benefits := "Comprehensive medical/dental, 401k match, annual bonus target, relocation support, GAMP5 training budget"
	tier2Benefits := "Medical/dental coverage, 401k match, shift differentials, tuition reimbursement"
	return []CompanyProfile{
		{
			Name:     "Amgen",
			Tier:     1,
			Earnings: "Strong multi-billion dollar quarterly revenue with stable biologics demand",
			Growth:   "Expanding biologics manufacturing capacity in Juncos",
			Rating:   "4.1/5 employee rating",
			Benefits: tier1Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$65k - $78k",
				Mid:    "$85k - $110k",
				Senior: "$115k - $150k",
			},
		},
		{
			Name:     "AbbVie",
			Tier:     1,
			Earnings: "Consistent double-digit operating margins across immunology portfolio",
			Growth:   "Sustained investment in Barceloneta operations",
			Rating:   "4.0/5 employee rating",
			Benefits: tier1Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$63k - $76k",
				Mid:    "$82k - $105k",
				Senior: "$110k - $145k",
			},
		},
		{
			Name:     "Pfizer",
			Tier:     1,
			Earnings: "Large diversified revenue base with strong sterile injectables demand",
			Growth:   "Modernizing Vega Baja and Guayama production lines",
			Rating:   "4.0/5 employee rating",
			Benefits: tier1Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$62k - $75k",
				Mid:    "$80k - $104k",
				Senior: "$108k - $142k",
			},
		},
		{
			Name:     "Lilly",
			Tier:     1,
			Earnings: "Record quarterly revenue driven by metabolic products",
			Growth:   "Capacity expansion at Carolina site",
			Rating:   "4.2/5 employee rating",
			Benefits: tier1Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$64k - $77k",
				Mid:    "$84k - $108k",
				Senior: "$112k - $148k",
			},
		},
		{
			Name:     "Medtronic",
			Tier:     2,
			Earnings: "Steady medical device revenue with resilient cardiac portfolio",
			Growth:   "Stable headcount at Juncos and Villalba plants",
			Rating:   "3.9/5 employee rating",
			Benefits: tier2Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$58k - $70k",
				Mid:    "$75k - $95k",
				Senior: "$98k - $125k",
			},
		},
		{
			Name:     "Baxter",
			Tier:     2,
			Earnings: "Solid renal and hospital products revenue",
			Growth:   "Ongoing automation investment in Aibonito and Jayuya",
			Rating:   "3.8/5 employee rating",
			Benefits: tier2Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$56k - $68k",
				Mid:    "$72k - $92k",
				Senior: "$95k - $120k",
			},
		},
		{
			Name:     "Stryker",
			Tier:     2,
			Earnings: "Growing orthopedics revenue with strong device margins",
			Growth:   "Expanding Arroyo manufacturing operations",
			Rating:   "3.9/5 employee rating",
			Benefits: tier2Benefits,
			SalaryRanges: types.SalaryRanges{
				Junior: "$57k - $69k",
				Mid:    "$74k - $94k",
				Senior: "$96k - $122k",
			},
		},
	}
}

func defaultSalaryBenchmarks() []types.SalaryBenchmark {
	return []types.SalaryBenchmark{
		{Role: "Validation Engineer", Junior: "$62k - $75k", Mid: "$85k - $105k", Senior: "$115k - $145k"},
		{Role: "CSV / GAMP5 Specialist", Junior: "$65k - $78k", Mid: "$88k - $110k", Senior: "$118k - $150k"},
		{Role: "QA Compliance Manager", Junior: "$68k - $80k", Mid: "$90k - $112k", Senior: "$120k - $155k"},
		{Role: "Process Engineer", Junior: "$60k - $72k", Mid: "$82k - $102k", Senior: "$110k - $140k"},
		{Role: "Automation Specialist", Junior: "$63k - $76k", Mid: "$86k - $106k", Senior: "$116k - $146k"},
	}
}

// defaultOnboardingPlan is the compliance-focused 30-60-90 baseline used
// when the model omits the onboarding section.
func defaultOnboardingPlan() types.OnboardingPlan {
	return types.OnboardingPlan{
		Days30: types.OnboardingPhase{
			Title: "Compliance & Integration",
			Tasks: []string{
				"Site-specific GMP & Safety Training (OSHA)",
				"LOTO (Lockout/Tagout) and cleanroom gowning certification",
				"FDA 21 CFR Part 11 and Data Integrity core training",
				"Introduction to site Validation Master Plan (VMP)",
				"Establishing relationships with Quality and EHS departments",
			},
		},
		Days60: types.OnboardingPhase{
			Title: "Technical Specialization",
			Tasks: []string{
				"Deep dive into specific line equipment/process (GAMP5)",
				"Assisting in protocol execution (IQ/OQ/PQ)",
				"SOP review and recursive training",
				"Change control and deviation management system access",
				"Initial project assignment with local supervisor",
			},
		},
		Days90: types.OnboardingPhase{
			Title: "Independent Execution",
			Tasks: []string{
				"Full ownership of assigned validation packages",
				"Lead small-scale change control boards",
				"Interaction with external vendors and contractors",
				"Audit readiness participation (internal site audits)",
				"Final 90-day performance and compliance review",
			},
		},
	}
}
