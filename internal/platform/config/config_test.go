package config

import (
	"testing"
	"time"
)

func TestPrefixChaining(t *testing.T) {
	t.Setenv("APP_HTTP_PORT", "8080")

	c := New().Prefix("APP_").Prefix("HTTP_")
	if got := c.MustPort("PORT"); got != ":8080" {
		t.Fatalf("MustPort=%q want :8080", got)
	}
}

func TestMustString(t *testing.T) {
	t.Setenv("CFG_DBURL", "postgres://localhost/criticode")

	c := New().Prefix("CFG_")
	if got := c.MustString("DBURL"); got != "postgres://localhost/criticode" {
		t.Fatalf("MustString=%q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on missing required key")
		}
	}()
	c.MustString("MISSING")
}

func TestMayDefaults(t *testing.T) {
	t.Setenv("CFG_SET_INT", "42")
	t.Setenv("CFG_BAD_INT", "nope")
	t.Setenv("CFG_SET_BOOL", "true")
	t.Setenv("CFG_SET_DUR", "250ms")

	c := New().Prefix("CFG_")

	if got := c.MayInt("SET_INT", 7); got != 42 {
		t.Errorf("MayInt set=%d want 42", got)
	}
	if got := c.MayInt("BAD_INT", 7); got != 7 {
		t.Errorf("MayInt bad=%d want default 7", got)
	}
	if got := c.MayInt("UNSET_INT", 7); got != 7 {
		t.Errorf("MayInt unset=%d want default 7", got)
	}
	if got := c.MayBool("SET_BOOL", false); !got {
		t.Error("MayBool set should be true")
	}
	if got := c.MayBool("UNSET_BOOL", true); !got {
		t.Error("MayBool unset should fall back to default")
	}
	if got := c.MayDuration("SET_DUR", time.Second); got != 250*time.Millisecond {
		t.Errorf("MayDuration set=%v want 250ms", got)
	}
	if got := c.MayDuration("UNSET_DUR", time.Second); got != time.Second {
		t.Errorf("MayDuration unset=%v want default 1s", got)
	}
	if got := c.MayString("UNSET_STR", "fallback"); got != "fallback" {
		t.Errorf("MayString unset=%q want fallback", got)
	}
}
