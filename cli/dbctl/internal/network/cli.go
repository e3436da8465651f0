package network

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"dblab/cli/dbctl/internal/execx"
)

// CLIEnsurer shells out to `<runtime> network inspect|create`; podman and
// docker accept the same arguments.
type CLIEnsurer struct {
	Runtime string
}

func (c *CLIEnsurer) Ensure(ctx context.Context, name string) error {
	if _, res := execx.Capture(ctx, execx.Cmd{Name: c.Runtime, Args: []string{"network", "inspect", name}}); res.Code == 0 {
		log.Debugf("network %s present", name)
		return nil
	}
	out, res := execx.Capture(ctx, execx.Cmd{
		Name: c.Runtime,
		Args: []string{"network", "create", "--label", ManagedByLabel + "=dbctl", name},
	})
	if res.Code == 0 {
		log.Infof("created network %s", name)
		return nil
	}
	if strings.Contains(strings.ToLower(out), "already exists") {
		log.Debugf("network %s created concurrently", name)
		return nil
	}
	return fmt.Errorf("create network %s: %s", name, firstLine(out, res))
}

func firstLine(out string, res execx.Result) string {
	if line, _, _ := strings.Cut(strings.TrimSpace(out), "\n"); line != "" {
		return line
	}
	if res.Err != nil {
		return res.Err.Error()
	}
	return fmt.Sprintf("exit status %d", res.Code)
}
