package refdata

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"jobscope/internal/errors"
	"jobscope/internal/types"
)

// Store holds the reference data consulted by the reconciliation engine:
// the municipality distance matrix, cost benchmarks, known-company
// profiles, and the salary benchmark table. Reads are concurrent-safe;
// the data can be replaced at runtime from a YAML override file.
type Store struct {
	mu sync.RWMutex

	distances  map[string]map[string]float64
	benchmarks Benchmarks
	companies  []CompanyProfile
	salaries   []types.SalaryBenchmark
	onboarding types.OnboardingPlan
}

// NewStore returns a Store populated with the built-in defaults.
func NewStore() *Store {
	return &Store{
		distances:  defaultDistanceMatrix(),
		benchmarks: defaultBenchmarks(),
		companies:  defaultCompanyProfiles(),
		salaries:   defaultSalaryBenchmarks(),
		onboarding: defaultOnboardingPlan(),
	}
}

// Distance returns the one-way road miles between two municipalities.
// The matrix is consulted in both directions; on a miss the local or
// generic fallback distance applies.
func (s *Store) Distance(from, to string) float64 {
	f := strings.TrimSpace(from)
	t := strings.TrimSpace(to)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.distances[f][t]; ok && d > 0 {
		return d
	}
	if d, ok := s.distances[t][f]; ok && d > 0 {
		return d
	}
	if strings.EqualFold(f, t) {
		return s.benchmarks.LocalCommuteMiles
	}
	return s.benchmarks.DefaultCommuteMiles
}

// Benchmarks returns a copy of the current cost constants.
func (s *Store) Benchmarks() Benchmarks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.benchmarks
}

// CompanyProfile looks up a known employer by case-insensitive substring
// match against the profile names. The second return is false when the
// company is not in the knowledge base.
func (s *Store) CompanyProfile(company string) (CompanyProfile, bool) {
	name := strings.ToLower(strings.TrimSpace(company))
	if name == "" {
		return CompanyProfile{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.companies {
		if strings.Contains(name, strings.ToLower(p.Name)) {
			return p, true
		}
	}
	return CompanyProfile{}, false
}

// GenericProfile synthesizes an intelligence record for a company absent
// from the knowledge base.
func (s *Store) GenericProfile(company string) CompanyProfile {
	name := strings.TrimSpace(company)
	if name == "" {
		name = "Unknown employer"
	}
	return CompanyProfile{
		Name:     name,
		Earnings: "Earnings data not publicly available for this employer",
		Growth:   "Regional player in the Puerto Rico industrial sector",
		Rating:   "No aggregate employee rating available",
		Benefits: "Standard local benefits package expected (medical coverage, statutory leave)",
		SalaryRanges: types.SalaryRanges{
			Junior: "$45k - $60k",
			Mid:    "$60k - $85k",
			Senior: "$85k - $110k",
		},
	}
}

// SalaryBenchmarks returns a copy of the role compensation table.
func (s *Store) SalaryBenchmarks() []types.SalaryBenchmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.SalaryBenchmark, len(s.salaries))
	copy(out, s.salaries)
	return out
}

// OnboardingBaseline returns the default 30-60-90 plan.
func (s *Store) OnboardingBaseline() types.OnboardingPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarding
}

// overrideFile mirrors the YAML override document. Absent sections keep
// their current values.
type overrideFile struct {
	Benchmarks *Benchmarks                   `yaml:"benchmarks"`
	Distances  map[string]map[string]float64 `yaml:"distances"`
	Companies  []CompanyProfile              `yaml:"companies"`
	Salaries   []salaryOverride              `yaml:"salary_benchmarks"`
}

type salaryOverride struct {
	Role   string `yaml:"role"`
	Junior string `yaml:"junior"`
	Mid    string `yaml:"mid"`
	Senior string `yaml:"senior"`
}

// LoadOverrides merges an override YAML file into the store. Distance
// entries are merged pair-by-pair; benchmark, company, and salary
// sections replace wholesale when present.
func (s *Store) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("failed to read reference data overrides: %s", path), err)
	}

	var ov overrideFile
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid reference data override file: %s", path), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ov.Benchmarks != nil {
		s.benchmarks = *ov.Benchmarks
	}
	for from, row := range ov.Distances {
		if s.distances[from] == nil {
			s.distances[from] = make(map[string]float64)
		}
		for to, miles := range row {
			s.distances[from][to] = miles
		}
	}
	if len(ov.Companies) > 0 {
		s.companies = ov.Companies
	}
	if len(ov.Salaries) > 0 {
		salaries := make([]types.SalaryBenchmark, 0, len(ov.Salaries))
		for _, row := range ov.Salaries {
			salaries = append(salaries, types.SalaryBenchmark{
				Role:   row.Role,
				Junior: row.Junior,
				Mid:    row.Mid,
				Senior: row.Senior,
			})
		}
		s.salaries = salaries
	}

	return nil
}
