// Package textclean prepares submitted source text for prompting and storage
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC normalization
// 3 Remove format chars ZWJ ZWNJ FEFF etc, invisible in editors but able to
//   smuggle instructions into prompts
// 4 Normalize line endings to \n
package textclean

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars
		)
	},
}

// Code returns the cleaned form of s following the pipeline described above.
// Printable content is preserved byte for byte; only invalid sequences,
// format characters and CRLF line endings are touched
func Code(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	ns = strings.ReplaceAll(ns, "\r\n", "\n")
	return strings.ReplaceAll(ns, "\r", "\n")
}
