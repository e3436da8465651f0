package cmdregistry

import (
	"context"
	"testing"

	"dblab/cli/dbctl/internal/config"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := New()
	hit := false
	r.Register(Up, HandlerFunc(func(_ context.Context, c *Context) error {
		hit = true
		if c.Engine.Name != "postgres" {
			t.Fatalf("unexpected engine %q", c.Engine.Name)
		}
		return nil
	}))
	c := &Context{Engine: config.Engine{Name: "postgres"}, Action: Up}
	h, ok := r.Lookup(Up)
	if !ok {
		t.Fatalf("handler not found")
	}
	if err := h.Run(context.Background(), c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !hit {
		t.Fatalf("handler was not invoked")
	}
	if _, ok := r.Lookup(Seed); ok {
		t.Fatalf("unexpected handler for seed")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	noop := HandlerFunc(func(context.Context, *Context) error { return nil })
	r.Register(Down, noop)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on duplicate register")
		}
	}()
	r.Register(Down, noop)
}

func TestRegistryUnknownActionPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on unknown action")
		}
	}()
	New().Register(Action("drop"), HandlerFunc(func(context.Context, *Context) error { return nil }))
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, ok := ParseAction(string(a))
		if !ok || got != a {
			t.Fatalf("ParseAction(%q)=%q,%v", a, got, ok)
		}
	}
	if _, ok := ParseAction("migrate"); ok {
		t.Fatalf("migrate should not parse")
	}
}

func TestLifecycle(t *testing.T) {
	lifecycle := map[Action]bool{Up: true, Down: true, Logs: true, PS: true, Restart: true}
	for _, a := range Actions {
		if a.Lifecycle() != lifecycle[a] {
			t.Fatalf("%s.Lifecycle()=%v", a, a.Lifecycle())
		}
	}
}

func TestAliasesIdentityAndLastWins(t *testing.T) {
	a := NewAliases()
	a.RegisterAlias("pg", "postgres")
	a.RegisterAlias("my", "mysql")
	a.RegisterAlias("pg", "postgresql")

	if got := a.ResolveAlias("pg"); got != "postgresql" {
		t.Fatalf("pg -> %q", got)
	}
	if got := a.ResolveAlias("my"); got != "mysql" {
		t.Fatalf("my -> %q", got)
	}
	for _, name := range []string{"postgres", "oracle", ""} {
		if got := a.ResolveAlias(name); got != name {
			t.Fatalf("identity failed for %q: %q", name, got)
		}
	}
	if a.Len() != 2 {
		t.Fatalf("len=%d", a.Len())
	}
}
