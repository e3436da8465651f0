package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"dblab/cli/dbctl/internal/execx"
	"dblab/cli/dbctl/internal/exitcode"
)

const (
	Docker = "docker"
	Podman = "podman"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DetectRuntime returns DBLAB_RUNTIME when set, otherwise the first of
// docker or podman found on PATH, defaulting to docker.
func DetectRuntime() (string, error) {
	if v := strings.TrimSpace(os.Getenv("DBLAB_RUNTIME")); v != "" {
		switch v {
		case Docker, Podman:
			return v, nil
		default:
			return "", exitcode.UsageError("DBLAB_RUNTIME must be %s or %s, got %q", Docker, Podman, v)
		}
	}
	for _, rt := range []string{Docker, Podman} {
		if _, err := lookPath(rt); err == nil {
			return rt, nil
		}
	}
	return Docker, nil
}

// Runner runs child processes with a fixed environment and output streams.
type Runner struct {
	Runtime string
	DryRun  bool
	// Env is the complete child environment (KEY=VALUE).
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Compose runs `<runtime> compose -p <project> -f <file> <args...>`.
func (r *Runner) Compose(ctx context.Context, project, file string, args ...string) error {
	all := []string{"compose"}
	if strings.TrimSpace(project) != "" {
		all = append(all, "-p", project)
	}
	all = append(all, "-f", file)
	all = append(all, args...)
	return r.run(ctx, r.Runtime, all...)
}

// Exec runs a handler executable with args.
func (r *Runner) Exec(ctx context.Context, path string, args ...string) error {
	return r.run(ctx, path, args...)
}

// Host runs the runtime binary itself, e.g. `docker network create`.
func (r *Runner) Host(ctx context.Context, args ...string) error {
	return r.run(ctx, r.Runtime, args...)
}

func (r *Runner) run(ctx context.Context, name string, args ...string) error {
	c := execx.Cmd{Name: name, Args: args, Env: r.Env, Stdin: r.Stdin, Stdout: r.Stdout, Stderr: r.Stderr}
	if r.DryRun {
		fmt.Fprintln(r.stderr(), "+ "+c.String())
		return nil
	}
	res := execx.Run(ctx, c)
	if res.Code == 0 {
		return nil
	}
	var ee *exec.ExitError
	if res.Err != nil && !errors.As(res.Err, &ee) {
		return &exitcode.Error{Code: res.Code, Message: fmt.Sprintf("%s: %v", name, res.Err)}
	}
	return exitcode.Delegated(res.Code)
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}
