package analysis

import (
	"encoding/json"
	"math"
	"strings"

	perr "criticode/internal/platform/errors"
	pstr "criticode/internal/platform/strings"
)

// StripFences removes a single markdown code fence wrapping the payload,
// with or without a language tag. Unfenced input is returned trimmed;
// the operation is idempotent
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		tag := strings.TrimSpace(s[:nl])
		if tag == "" || isFenceTag(tag) {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Parse normalizes raw model output into a Result. Fences are stripped first.
// A payload that does not parse as JSON at all yields a Parse error carrying a
// bounded excerpt. A payload that parses but deviates from the expected shape
// is repaired: missing or malformed collections become empty, non-numeric or
// negative line values become 0, and unknown severities become Medium
func Parse(raw string) (Result, error) {
	body := StripFences(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		var arr []json.RawMessage
		if json.Unmarshal([]byte(body), &arr) == nil {
			// parses, just not an object; repair to empty
			return Empty(), nil
		}
		var scalar any
		if json.Unmarshal([]byte(body), &scalar) == nil {
			return Empty(), nil
		}
		e := perr.Parsef("model response is not valid JSON: %v", err)
		return Result{}, perr.WithDetail(e, "excerpt", pstr.Truncate(body, 256))
	}

	out := Empty()
	for _, item := range items(top["security"]) {
		out.Security = append(out.Security, SecurityIssue{
			Severity:    NormalizeSeverity(str(item, "severity")),
			Issue:       str(item, "issue"),
			Line:        line(item),
			Description: str(item, "description"),
			Fix:         str(item, "fix"),
			CodeExample: str(item, "codeExample"),
		})
	}
	for _, item := range items(top["performance"]) {
		out.Performance = append(out.Performance, PerformanceIssue{
			Issue:       str(item, "issue"),
			Line:        line(item),
			Description: str(item, "description"),
			Suggestion:  str(item, "suggestion"),
			CodeExample: str(item, "codeExample"),
		})
	}
	for _, item := range items(top["bestPractices"]) {
		out.BestPractices = append(out.BestPractices, BestPracticeIssue{
			Issue:       str(item, "issue"),
			Line:        line(item),
			Description: str(item, "description"),
			Suggestion:  str(item, "suggestion"),
			CodeExample: str(item, "codeExample"),
		})
	}
	for _, item := range items(top["refactoring"]) {
		out.Refactoring = append(out.Refactoring, RefactoringOpportunity{
			Opportunity: str(item, "opportunity"),
			Line:        line(item),
			Description: str(item, "description"),
			Benefit:     str(item, "benefit"),
			CodeExample: str(item, "codeExample"),
		})
	}
	return out, nil
}

// items decodes a raw collection into per-item maps, tolerating malformed
// collections and skipping non-object entries
func items(raw json.RawMessage) []map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		var m map[string]any
		if json.Unmarshal(entry, &m) == nil {
			out = append(out, m)
		}
	}
	return out
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func line(m map[string]any) int {
	switch v := m["line"].(type) {
	case float64:
		// out-of-range numbers would overflow the int conversion
		if v < 0 || v > math.MaxInt32 {
			return 0
		}
		return int(v)
	case string:
		n := 0
		for _, r := range v {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + int(r-'0')
			if n > math.MaxInt32 {
				return 0
			}
		}
		return n
	default:
		return 0
	}
}
