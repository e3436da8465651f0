package composecmd

import (
	"context"
	"os"

	"dblab/cli/dbctl/internal/cmdregistry"
	"dblab/cli/dbctl/internal/exitcode"
)

// Register adds compose lifecycle actions to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Up, verb("up", "-d"))
	r.Register(cmdregistry.Down, verb("down"))
	r.Register(cmdregistry.Logs, verb("logs"))
	r.Register(cmdregistry.PS, verb("ps"))
	r.Register(cmdregistry.Restart, verb("restart"))
}

// verb returns a handler running `compose <args> <trailing CLI args>`.
func verb(args ...string) cmdregistry.Handler {
	return cmdregistry.HandlerFunc(func(ctx context.Context, c *cmdregistry.Context) error {
		file, err := composeFile(c)
		if err != nil {
			return err
		}
		all := append(append([]string{}, args...), c.Args...)
		return c.Runner.Compose(ctx, c.Engine.ProjectName(), file, all...)
	})
}

func composeFile(c *cmdregistry.Context) (string, error) {
	file := c.Engine.ComposeFile(c.Paths)
	st, err := os.Stat(file)
	if err != nil || st.IsDir() {
		return "", exitcode.Unresolved("no compose file for engine %s: %s", c.Engine.Name, file)
	}
	return file, nil
}
