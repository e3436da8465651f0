package cmdregistry

import (
	"context"
	"fmt"
	"io"

	"dblab/cli/dbctl/internal/config"
	"dblab/cli/dbctl/internal/envfile"
	"dblab/cli/dbctl/internal/paths"
	"dblab/cli/dbctl/internal/runner"
)

// Context carries the resolved data and handles that command handlers need.
type Context struct {
	DryRun bool
	// Engine is the manifest entry for the canonical engine name.
	Engine config.Engine
	Action Action
	// Args are the trailing CLI arguments after the action.
	Args   []string
	Env    envfile.Env
	Paths  paths.Paths
	Runner *runner.Runner
	Stdout io.Writer
	Stderr io.Writer
}

// Handler executes one action for the engine in the context.
type Handler interface {
	Run(ctx context.Context, c *Context) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, c *Context) error

func (f HandlerFunc) Run(ctx context.Context, c *Context) error { return f(ctx, c) }

// Registry maps actions to handlers.
type Registry struct {
	handlers map[Action]Handler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[Action]Handler)}
}

// Register sets the handler for a. It panics if a is unknown or already
// registered.
func (r *Registry) Register(a Action, h Handler) {
	if _, ok := ParseAction(string(a)); !ok {
		panic(fmt.Sprintf("unknown action %q", a))
	}
	if _, exists := r.handlers[a]; exists {
		panic(fmt.Sprintf("action %s already registered", a))
	}
	r.handlers[a] = h
}

// Lookup returns the handler and whether it exists.
func (r *Registry) Lookup(a Action) (Handler, bool) {
	h, ok := r.handlers[a]
	return h, ok
}
