package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"dblab/cli/dbctl/internal/cmdregistry"
	composecmd "dblab/cli/dbctl/internal/commands/composecmd"
	handlercmd "dblab/cli/dbctl/internal/commands/handlercmd"
	"dblab/cli/dbctl/internal/config"
	"dblab/cli/dbctl/internal/envfile"
	"dblab/cli/dbctl/internal/exitcode"
	"dblab/cli/dbctl/internal/logging"
	"dblab/cli/dbctl/internal/network"
	pth "dblab/cli/dbctl/internal/paths"
	"dblab/cli/dbctl/internal/runner"
)

// newEnsurer is swapped in tests so no container runtime is needed.
var newEnsurer = network.New

func usage(w io.Writer) {
	fmt.Fprintf(w, `dbctl: local database containers over docker/podman compose
Usage: dbctl [--dry-run] [-e <file|dir>]... <engine> <action> [args...]

Actions:
  up, down, logs, ps, restart   compose lifecycle for the engine
  cli, seed, health, conninfo   run engines/<engine>/cmd/<action>
                                (fallback: engines/common/cmd/<action>)

Flags:
  -e, --env PATH   extra env file, or directory of *.env files (repeatable)
  --dry-run        print commands instead of running them

Environment:
  DBLAB_ROOT         directory holding engines/ (default: next to the binary)
  DBLAB_RUNTIME      docker or podman (default: whichever is on PATH)
  DBLAB_NETWORK      shared container network (default: %s)
  DBLAB_CONFIG_HOME  user override env files (default: $XDG_CONFIG_HOME/dblab)
  DBLAB_ENV_FILES    extra env sources, path-list separated
  DBLAB_DEBUG=1      print executed commands
`, network.DefaultName)
}

type options struct {
	dryRun bool
	extras []string
	engine string
	action string
	args   []string
}

func isHelp(s string) bool { return s == "-h" || s == "--help" || s == "help" }

// parseArgs reads global flags up to the engine, then engine and action.
// Everything after the action is passed to the handler verbatim.
func parseArgs(argv []string) (options, error) {
	var o options
	helpErr := &exitcode.Error{Code: exitcode.Usage, ShowUsage: true}
	var pos []string
	i := 0
flags:
	for ; i < len(argv); i++ {
		a := argv[i]
		switch {
		case a == "--":
			i++
			break flags
		case isHelp(a):
			return o, helpErr
		case a == "--dry-run":
			o.dryRun = true
		case a == "-e" || a == "--env":
			if i+1 >= len(argv) {
				return o, exitcode.UsageError("%s requires a value", a)
			}
			o.extras = append(o.extras, argv[i+1])
			i++
		case strings.HasPrefix(a, "--env="):
			o.extras = append(o.extras, strings.TrimPrefix(a, "--env="))
		case strings.HasPrefix(a, "-") && a != "-":
			return o, exitcode.UsageError("unknown flag %s", a)
		default:
			break flags
		}
	}
	for ; i < len(argv) && len(pos) < 2; i++ {
		pos = append(pos, argv[i])
	}
	o.args = append([]string{}, argv[i:]...)

	switch len(pos) {
	case 0:
		return o, helpErr
	case 1:
		o.engine = pos[0]
	default:
		o.engine, o.action = pos[0], pos[1]
	}
	if isHelp(o.action) {
		return o, helpErr
	}
	if _, isAction := cmdregistry.ParseAction(o.engine); isAction && o.action == "" {
		return o, exitcode.MissingArg("engine is required: dbctl <engine> %s", o.engine)
	}
	if strings.TrimSpace(o.engine) == "" {
		return o, exitcode.MissingArg("engine is required")
	}
	if strings.ContainsAny(o.engine, `/\`) || strings.Contains(o.engine, "..") {
		return o, exitcode.UsageError("invalid engine name %q", o.engine)
	}
	if o.action == "" {
		return o, helpErr
	}
	if _, ok := cmdregistry.ParseAction(o.action); !ok {
		if _, swapped := cmdregistry.ParseAction(o.engine); swapped {
			return o, exitcode.UsageError("unknown action %q (arguments are <engine> <action>; try: dbctl %s %s)", o.action, o.action, o.engine)
		}
		return o, exitcode.UsageError("unknown action %q", o.action)
	}
	return o, nil
}

func networkName() string {
	if v := strings.TrimSpace(os.Getenv("DBLAB_NETWORK")); v != "" {
		return v
	}
	return network.DefaultName
}

func dispatch(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(argv)
	if err != nil {
		return err
	}
	action, _ := cmdregistry.ParseAction(opts.action)

	exe, _ := os.Executable()
	paths := pth.Detect(exe)
	manifest, err := config.ReadManifest(paths)
	if err != nil {
		return &exitcode.Error{Code: exitcode.Usage, Message: fmt.Sprintf("manifest: %v", err)}
	}
	aliases := cmdregistry.NewAliases()
	manifest.RegisterAliases(aliases)
	name := aliases.ResolveAlias(opts.engine)
	if name != opts.engine {
		log.Debugf("alias %s -> %s", opts.engine, name)
	}
	if !manifest.Known(name) {
		log.Debugf("engine %s not in manifest; using conventional layout", name)
	}

	rt, err := runner.DetectRuntime()
	if err != nil {
		return err
	}
	netName := networkName()
	if opts.dryRun {
		dry := &runner.Runner{Runtime: rt, DryRun: true, Stderr: stderr}
		if err := dry.Host(ctx, "network", "create", netName); err != nil {
			return err
		}
	} else if err := newEnsurer(ctx, rt).Ensure(ctx, netName); err != nil {
		return err
	}

	extras, err := pth.ExpandSources(append(opts.extras, pth.SplitSources(os.Getenv("DBLAB_ENV_FILES"))...))
	if err != nil {
		return err
	}
	env, err := envfile.Load(envfile.Layers(paths, name, extras))
	if err != nil {
		return err
	}
	env = env.With("DBLAB_ENGINE", name).
		With("DBLAB_ROOT", paths.Root).
		With("DBLAB_ENGINE_DIR", paths.EngineDir(name)).
		With("DBLAB_NETWORK", netName).
		With("DBLAB_RUNTIME", rt)

	registry := cmdregistry.New()
	composecmd.Register(registry)
	handlercmd.Register(registry)
	h, ok := registry.Lookup(action)
	if !ok {
		return exitcode.Unresolved("no handler registered for %s", action)
	}
	c := &cmdregistry.Context{
		DryRun: opts.dryRun,
		Engine: manifest.Engine(name),
		Action: action,
		Args:   opts.args,
		Env:    env,
		Paths:  paths,
		Runner: &runner.Runner{
			Runtime: rt,
			DryRun:  opts.dryRun,
			Env:     env.Environ(os.Environ()),
			Stdout:  stdout,
			Stderr:  stderr,
		},
		Stdout: stdout,
		Stderr: stderr,
	}
	return h.Run(ctx, c)
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	err := dispatch(ctx, argv, stdout, stderr)
	if err == nil {
		return exitcode.OK
	}
	var e *exitcode.Error
	if errors.As(err, &e) {
		if e.Message != "" {
			fmt.Fprintln(stderr, "dbctl: "+e.Message)
		}
		if e.ShowUsage {
			usage(stderr)
		}
		return e.Code
	}
	fmt.Fprintln(stderr, "dbctl: "+err.Error())
	return exitcode.Of(err)
}

func main() {
	logging.Setup(os.Stderr)
	// Ctrl-C belongs to the foreground child (logs -f, cli); dbctl waits for
	// it and exits with its status.
	signal.Notify(make(chan os.Signal, 1), os.Interrupt, syscall.SIGTERM)
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
