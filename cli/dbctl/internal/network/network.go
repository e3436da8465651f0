// Package network ensures the shared container network exists before any
// compose project that joins it is started.
//
// Creation is check-then-create. Two concurrent invocations may both try to
// create; the loser's duplicate-name error is treated as success.
package network

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/docker/docker/client"
	log "github.com/sirupsen/logrus"

	"dblab/cli/dbctl/internal/execx"
	"dblab/cli/dbctl/internal/runner"
)

const (
	// DefaultName is used when DBLAB_NETWORK is unset.
	DefaultName = "dblab"
	// ManagedByLabel marks networks created by dbctl.
	ManagedByLabel = "dblab.managed-by"

	pingTimeout = 2 * time.Second
)

// Ensurer creates a network by name unless it already exists.
type Ensurer interface {
	Ensure(ctx context.Context, name string) error
}

// New picks the docker SDK for docker and the runtime CLI otherwise. The SDK
// is only used when the daemon answers a ping at the endpoint the docker CLI
// would use; anything else falls back to the CLI.
func New(ctx context.Context, runtime string) Ensurer {
	if runtime == runner.Docker {
		if cli := dockerClient(ctx, runtime); cli != nil {
			return &DockerEnsurer{api: cli}
		}
	}
	return &CLIEnsurer{Runtime: runtime}
}

func dockerClient(ctx context.Context, bin string) *client.Client {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if strings.TrimSpace(os.Getenv("DOCKER_HOST")) == "" {
		if host := contextHost(ctx, bin); host != "" {
			opts = append(opts, client.WithHost(host))
		}
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		log.Debugf("docker client unavailable (%v); using CLI", err)
		return nil
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if _, err := cli.Ping(pctx); err != nil {
		cli.Close()
		log.Debugf("docker daemon not reachable at %s (%v); using CLI", cli.DaemonHost(), err)
		return nil
	}
	return cli
}

// contextHost returns the endpoint of the active docker CLI context, or ""
// when it cannot be determined.
func contextHost(ctx context.Context, bin string) string {
	out, res := execx.Capture(ctx, execx.Cmd{
		Name: bin,
		Args: []string{"context", "inspect", "--format", "{{.Endpoints.docker.Host}}"},
	})
	if res.Code != 0 {
		return ""
	}
	return strings.TrimSpace(out)
}
