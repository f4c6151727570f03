package textclean

import "testing"

func TestCode(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain", "func main() {}", "func main() {}"},
		{"bom stripped", "\uFEFFfunc main() {}", "func main() {}"},
		{"zero width stripped", "fu​nc ma‍in()", "func main()"},
		{"crlf folded", "a\r\nb\rc", "a\nb\nc"},
		{"invalid utf8 dropped", "ok\xffok", "okok"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Code(tc.in); got != tc.want {
				t.Fatalf("Code(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
