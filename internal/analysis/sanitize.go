package analysis

import (
	"encoding/json"
	"regexp"
	"strings"

	"jobscope/internal/errors"
)

var (
	openFenceRe     = regexp.MustCompile("^\\s*```[a-zA-Z]*\\s*")
	closeFenceRe    = regexp.MustCompile("\\s*```\\s*$")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	newlineRe       = regexp.MustCompile(`\r?\n`)
)

// Sanitize repairs the formatting artifacts models commonly wrap around
// JSON output: code fences, trailing commas, and raw newlines inside
// string fields. The transforms are textual and applied once, in order.
func Sanitize(raw string) string {
	s := openFenceRe.ReplaceAllString(raw, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = newlineRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseReport sanitizes and parses raw model output into the permissive
// report shape. If strict parsing fails it attempts one salvage pass,
// truncating at the last closing brace (models sometimes append prose
// after the JSON), before giving up with a malformed-response error.
func ParseReport(raw string) (*RawReport, error) {
	text := Sanitize(raw)

	var report RawReport
	firstErr := json.Unmarshal([]byte(text), &report)
	if firstErr == nil {
		return &report, nil
	}

	if idx := strings.LastIndex(text, "}"); idx >= 0 {
		report = RawReport{}
		if err := json.Unmarshal([]byte(text[:idx+1]), &report); err == nil {
			return &report, nil
		}
	}

	return nil, errors.NewAIError(errors.ErrCodeMalformedResponse,
		"Model response is not parseable JSON, try simplifying the request", firstErr)
}
