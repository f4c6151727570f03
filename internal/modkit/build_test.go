package modkit

import (
	"testing"

	"criticode/internal/modkit/httpkit"
)

func TestBuildDefaultsHooks(t *testing.T) {
	b := Build(WithName("x"), WithPrefix("/x"))

	// hooks are always callable so modules need no nil guards
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("Build must default the router hooks")
	}
	b.Register(nil)
	if got := b.Subrouter(nil); got != nil {
		t.Fatalf("default subrouter must be identity, got %v", got)
	}
}

func TestBuildAppliesRegister(t *testing.T) {
	var called bool
	b := Build(WithRegister(func(httpkit.Router) { called = true }))
	b.Register(nil)
	if !called {
		t.Fatal("WithRegister hook was not invoked")
	}
}
