package analysis

import (
	"encoding/json"
	"testing"

	"jobscope/internal/errors"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced json with trailing comma",
			in:   "```json\n{\"a\":1,}\n```",
			want: `{"a":1}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "trailing comma in array",
			in:   `{"a":[1,2,],}`,
			want: `{"a":[1,2]}`,
		},
		{
			name: "newlines collapsed",
			in:   "{\"a\":\n1}",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			in:   "   {\"a\":1}  \n ",
			want: `{"a":1}`,
		},
		{
			name: "no artifacts",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
			var v map[string]any
			if err := json.Unmarshal([]byte(got), &v); err != nil {
				t.Errorf("sanitized output is not valid JSON: %v", err)
			}
		})
	}
}

func TestParseReportSalvage(t *testing.T) {
	raw := `{"companyIntelligence":{"name":"Amgen"}} I hope this analysis helps!`
	report, err := ParseReport(raw)
	if err != nil {
		t.Fatalf("ParseReport() error = %v", err)
	}
	if report.CompanyIntelligence == nil || report.CompanyIntelligence.Name != "Amgen" {
		t.Error("salvage pass should recover the JSON before the trailing prose")
	}
}

func TestParseReportMalformed(t *testing.T) {
	_, err := ParseReport("the model declined to answer")
	if err == nil {
		t.Fatal("expected an error for unparseable output")
	}
	if !errors.IsMalformedResponse(err) {
		t.Errorf("error %v should be classified as malformed response", err)
	}
}

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`42`, 42},
		{`42.5`, 42.5},
		{`"42"`, 42},
		{`"$70,000"`, 70000},
		{`"N/A"`, 0},
		{`"n/a"`, 0},
		{`""`, 0},
		{`null`, 0},
		{`"about right"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexFloat
			if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
				t.Fatalf("unmarshal %q: %v", tt.in, err)
			}
			if float64(f) != tt.want {
				t.Errorf("FlexFloat(%s) = %v, want %v", tt.in, float64(f), tt.want)
			}
		})
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{`42`, "42"},
		{`null`, ""},
	}

	for _, tt := range tests {
		var s FlexString
		if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
			t.Fatalf("unmarshal %q: %v", tt.in, err)
		}
		if string(s) != tt.want {
			t.Errorf("FlexString(%s) = %q, want %q", tt.in, string(s), tt.want)
		}
	}
}
