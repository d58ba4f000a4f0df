package refdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDistance(t *testing.T) {
	store := NewStore()

	tests := []struct {
		name string
		from string
		to   string
		want float64
	}{
		{
			name: "direct matrix entry",
			from: "Caguas",
			to:   "Juncos",
			want: 10,
		},
		{
			name: "reverse direction lookup",
			from: "Juncos",
			to:   "Caguas",
			want: 10,
		},
		{
			name: "metro to industrial hub",
			from: "San Juan",
			to:   "Juncos",
			want: 28,
		},
		{
			name: "same municipality uses local fallback",
			from: "Ponce",
			to:   "Ponce",
			want: 5,
		},
		{
			name: "unknown pair uses generic fallback",
			from: "Mayagüez",
			to:   "Fajardo",
			want: 25,
		},
		{
			name: "whitespace trimmed before lookup",
			from: "  Caguas ",
			to:   " Juncos  ",
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Distance(tt.from, tt.to)
			if got != tt.want {
				t.Errorf("Distance(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCompanyProfile(t *testing.T) {
	store := NewStore()

	tests := []struct {
		name      string
		company   string
		wantFound bool
		wantName  string
		wantTier  int
	}{
		{
			name:      "exact tier 1 match",
			company:   "Amgen",
			wantFound: true,
			wantName:  "Amgen",
			wantTier:  1,
		},
		{
			name:      "substring match with site suffix",
			company:   "Amgen Manufacturing Juncos",
			wantFound: true,
			wantName:  "Amgen",
			wantTier:  1,
		},
		{
			name:      "case insensitive tier 2 match",
			company:   "MEDTRONIC PR",
			wantFound: true,
			wantName:  "Medtronic",
			wantTier:  2,
		},
		{
			name:      "unknown company",
			company:   "Acme Logistics",
			wantFound: false,
		},
		{
			name:      "empty company",
			company:   "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, found := store.CompanyProfile(tt.company)
			if found != tt.wantFound {
				t.Fatalf("CompanyProfile(%q) found = %v, want %v", tt.company, found, tt.wantFound)
			}
			if !found {
				return
			}
			if profile.Name != tt.wantName {
				t.Errorf("profile name = %q, want %q", profile.Name, tt.wantName)
			}
			if profile.Tier != tt.wantTier {
				t.Errorf("profile tier = %d, want %d", profile.Tier, tt.wantTier)
			}
			if profile.Earnings == "" || profile.Benefits == "" {
				t.Error("expected populated earnings and benefits")
			}
		})
	}
}

func TestGenericProfile(t *testing.T) {
	store := NewStore()

	profile := store.GenericProfile("Acme Logistics")
	if profile.Name != "Acme Logistics" {
		t.Errorf("generic profile name = %q, want input company", profile.Name)
	}
	if profile.Growth == "" || profile.SalaryRanges.Mid == "" {
		t.Error("generic profile should have populated narrative fields")
	}

	empty := store.GenericProfile("  ")
	if empty.Name == "" {
		t.Error("generic profile for blank company should still carry a name")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refdata.yaml")

	content := `
benchmarks:
  gas_price_per_liter: 1.05
  luma_rate_per_kwh: 0.35
  avg_mpg: 25
  working_days_per_month: 21
  liters_per_gallon: 3.78541
  toll_per_day: 5
  toll_distance_miles: 12
  local_commute_miles: 4
  default_commute_miles: 30
  minutes_per_mile: 2
  monthly_housing: 1200
  monthly_utilities: 300
  monthly_meals: 500
  monthly_healthcare: 250
  monthly_misc: 250
distances:
  Dorado:
    "San Juan": 17
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write override file: %v", err)
	}

	store := NewStore()
	if err := store.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}

	bm := store.Benchmarks()
	if bm.GasPricePerLiter != 1.05 {
		t.Errorf("gas price = %v, want 1.05", bm.GasPricePerLiter)
	}
	if bm.DefaultCommuteMiles != 30 {
		t.Errorf("default commute = %v, want 30", bm.DefaultCommuteMiles)
	}

	if got := store.Distance("San Juan", "Dorado"); got != 17 {
		t.Errorf("merged distance = %v, want 17", got)
	}
	// Existing entries survive a partial override.
	if got := store.Distance("Caguas", "Juncos"); got != 10 {
		t.Errorf("existing distance = %v, want 10", got)
	}
}

func TestLoadOverridesErrors(t *testing.T) {
	store := NewStore()

	if err := store.LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("benchmarks: ["), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := store.LoadOverrides(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
