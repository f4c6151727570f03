// Package langdetect maps uploaded file names onto review languages
package langdetect

import (
	"path/filepath"
	"sort"
	"strings"
)

// MaxUploadBytes caps the size of an uploaded source file
const MaxUploadBytes = 2 << 20

// byExt maps lowercase file extensions to the language name used in prompts
// and stored on reviews
var byExt = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".swift": "swift",
	".scala": "scala",
	".sh":    "shell",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
}

// Detect returns the review language for a file name and whether the
// extension is on the allow list
func Detect(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := byExt[ext]
	return lang, ok
}

// Allowed reports whether the file's extension is accepted for upload
func Allowed(filename string) bool {
	_, ok := Detect(filename)
	return ok
}

// Extensions returns the sorted-stable allow list for error messages
func Extensions() []string {
	out := make([]string, 0, len(byExt))
	for ext := range byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
