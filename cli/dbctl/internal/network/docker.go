package network

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"
	log "github.com/sirupsen/logrus"
)

type networkAPI interface {
	NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error)
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	Close() error
}

// DockerEnsurer talks to the docker daemon API directly.
type DockerEnsurer struct {
	api networkAPI
}

func (d *DockerEnsurer) Ensure(ctx context.Context, name string) error {
	defer d.api.Close()

	// The name filter matches substrings, so confirm the exact name.
	existing, err := d.api.NetworkList(ctx, network.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return fmt.Errorf("inspect network %s: %w", name, err)
	}
	for _, n := range existing {
		if n.Name == name {
			log.Debugf("network %s present (%s)", name, n.ID)
			return nil
		}
	}

	resp, err := d.api.NetworkCreate(ctx, name, network.CreateOptions{
		Driver: "bridge",
		Labels: map[string]string{ManagedByLabel: "dbctl"},
	})
	if err != nil {
		if cerrdefs.IsConflict(err) {
			log.Debugf("network %s created concurrently", name)
			return nil
		}
		return fmt.Errorf("create network %s: %w", name, err)
	}
	log.Infof("created network %s (%s)", name, resp.ID)
	return nil
}
