package analysis

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the model as a reviewer and pins the output contract
const SystemPrompt = `You are an expert code reviewer. You examine source code and report ` +
	`security vulnerabilities, performance problems, deviations from language best practices, ` +
	`and refactoring opportunities. You respond with JSON only.`

// BuildPrompt renders the user prompt for a review request. The output is
// deterministic for a given code and language pair
func BuildPrompt(code, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following %s code.\n\n", language)
	b.WriteString("Respond with a single JSON object with exactly these four keys, each an array:\n\n")
	b.WriteString(`  "security":      [{"severity": "Critical|High|Medium|Low", "issue": "...", "line": 1, "description": "...", "fix": "...", "codeExample": "..."}]` + "\n")
	b.WriteString(`  "performance":   [{"issue": "...", "line": 1, "description": "...", "suggestion": "...", "codeExample": "..."}]` + "\n")
	b.WriteString(`  "bestPractices": [{"issue": "...", "line": 1, "description": "...", "suggestion": "...", "codeExample": "..."}]` + "\n")
	b.WriteString(`  "refactoring":   [{"opportunity": "...", "line": 1, "description": "...", "benefit": "...", "codeExample": "..."}]` + "\n\n")
	b.WriteString("Line numbers are 1-based and refer to the code below. ")
	b.WriteString("An array may be empty when there is nothing to report. ")
	b.WriteString("Output the JSON object only, with no prose and no markdown fences.\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n", language, code)
	return b.String()
}
