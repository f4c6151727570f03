package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	// non-empty slice should be returned as-is
	in := []int{1, 2, 3}
	def := []int{9}
	got := IfEmpty(in, def)
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	// empty slice should fall back to default
	var empty []string
	def2 := []string{"x"}
	got2 := IfEmpty(empty, def2)
	if len(got2) != 1 || got2[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"reviews", "/reviews"},
		{"/reviews", "/reviews"},
		{"/reviews/", "/reviews"},
		{"  analyze  ", "/analyze"},
		{"//meta//", "/meta"},
	}

	for _, c := range cases {
		if got := MustPrefix(c.in); got != c.want {
			t.Errorf("MustPrefix(%q)=%q want %q", c.in, got, c.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty prefix")
		}
	}()
	MustPrefix("  /  ")
}

func TestSQLNull(t *testing.T) {
	t.Parallel()

	if got := SQLNull("main.go"); got != "main.go" {
		t.Fatalf("SQLNull passed through wrong value: %#v", got)
	}
	if got := SQLNull(""); got != nil {
		t.Fatalf("SQLNull should map blank to nil, got %#v", got)
	}
	if got := SQLNull("   "); got != nil {
		t.Fatalf("SQLNull should map whitespace to nil, got %#v", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},        // under the cap
		{"exactly", 7, "exactly"},     // at the cap
		{"truncated", 5, "trunc..."},  // over the cap
		{"anything", 0, "anything"},   // non-positive cap disables
		{"anything", -1, "anything"},  // non-positive cap disables
		{"", 3, ""},                   // empty input
	}

	for _, c := range cases {
		if got := Truncate(c.s, c.n); got != c.want {
			t.Errorf("Truncate(%q,%d)=%q want %q", c.s, c.n, got, c.want)
		}
	}
}

func TestPtrDeref(t *testing.T) {
	t.Parallel()

	if Ptr("") != nil {
		t.Fatal("Ptr should return nil for empty string")
	}
	p := Ptr("x")
	if p == nil || *p != "x" {
		t.Fatalf("Ptr returned wrong pointer: %#v", p)
	}
	if got := Deref(p); got != "x" {
		t.Fatalf("Deref(p)=%q want x", got)
	}
	if got := Deref(nil); got != "" {
		t.Fatalf("Deref(nil)=%q want empty", got)
	}
}
