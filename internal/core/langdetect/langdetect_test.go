package langdetect

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		file string
		lang string
		ok   bool
	}{
		{"main.go", "go", true},
		{"script.PY", "python", true},
		{"app.tsx", "typescript", true},
		{"Makefile", "", false},
		{"archive.tar.gz", "", false},
		{"noext", "", false},
		{"styles.css", "css", true},
	}
	for _, tc := range cases {
		lang, ok := Detect(tc.file)
		if lang != tc.lang || ok != tc.ok {
			t.Errorf("Detect(%q) = (%q, %v), want (%q, %v)", tc.file, lang, ok, tc.lang, tc.ok)
		}
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := Extensions()
	if len(exts) == 0 {
		t.Fatal("allow list must not be empty")
	}
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Fatalf("extensions not sorted at %d: %q >= %q", i, exts[i-1], exts[i])
		}
	}
}
