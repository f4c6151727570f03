// Package analysis defines the canonical code analysis result shape and the
// normalization rules for turning raw model output into that shape
package analysis

import "strings"

// MaxCodeChars is the ceiling on submitted code length, in characters
const MaxCodeChars = 100_000

// Severity classifies a security finding
type Severity string

// The four allowed severities; anything else normalizes to Medium
const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Valid reports whether s is one of the four enumerated severities
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// NormalizeSeverity maps free-form model output onto the enum,
// case-insensitively, defaulting to Medium
func NormalizeSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// SecurityIssue is a single security finding
type SecurityIssue struct {
	Severity    Severity `json:"severity"`
	Issue       string   `json:"issue"`
	Line        int      `json:"line"`
	Description string   `json:"description"`
	Fix         string   `json:"fix"`
	CodeExample string   `json:"codeExample"`
}

// PerformanceIssue is a single performance finding
type PerformanceIssue struct {
	Issue       string `json:"issue"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	CodeExample string `json:"codeExample"`
}

// BestPracticeIssue is a single idiom or convention finding
type BestPracticeIssue struct {
	Issue       string `json:"issue"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	CodeExample string `json:"codeExample"`
}

// RefactoringOpportunity is a single structural improvement suggestion
type RefactoringOpportunity struct {
	Opportunity string `json:"opportunity"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Benefit     string `json:"benefit"`
	CodeExample string `json:"codeExample"`
}

// Result is the canonical analysis shape: all four collections are always
// present, possibly empty. An all-empty Result is a valid "no issues" outcome
type Result struct {
	Security      []SecurityIssue          `json:"security"`
	Performance   []PerformanceIssue       `json:"performance"`
	BestPractices []BestPracticeIssue      `json:"bestPractices"`
	Refactoring   []RefactoringOpportunity `json:"refactoring"`
}

// Empty returns a Result with all four collections present and empty
func Empty() Result {
	return Result{
		Security:      []SecurityIssue{},
		Performance:   []PerformanceIssue{},
		BestPractices: []BestPracticeIssue{},
		Refactoring:   []RefactoringOpportunity{},
	}
}

// IssueCount returns the number of findings across all four collections
func (r Result) IssueCount() int {
	return len(r.Security) + len(r.Performance) + len(r.BestPractices) + len(r.Refactoring)
}
