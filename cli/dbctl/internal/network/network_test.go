package network

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/network"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	networks  []network.Summary
	listErr   error
	createErr error
	created   []string
	labels    map[string]string
	closed    bool
}

func (f *fakeAPI) NetworkList(ctx context.Context, opts network.ListOptions) ([]network.Summary, error) {
	return f.networks, f.listErr
}

func (f *fakeAPI) NetworkCreate(ctx context.Context, name string, opts network.CreateOptions) (network.CreateResponse, error) {
	if f.createErr != nil {
		return network.CreateResponse{}, f.createErr
	}
	f.created = append(f.created, name)
	f.labels = opts.Labels
	return network.CreateResponse{ID: "abc123"}, nil
}

func (f *fakeAPI) Close() error {
	f.closed = true
	return nil
}

func TestDockerEnsurerCreatesWhenAbsent(t *testing.T) {
	api := &fakeAPI{networks: []network.Summary{{Name: "dblab-other", ID: "1"}}}
	require.NoError(t, (&DockerEnsurer{api: api}).Ensure(context.Background(), "dblab"))
	require.Equal(t, []string{"dblab"}, api.created)
	require.Equal(t, "dbctl", api.labels[ManagedByLabel])
	require.True(t, api.closed)
}

func TestDockerEnsurerSkipsExisting(t *testing.T) {
	api := &fakeAPI{networks: []network.Summary{{Name: "dblab", ID: "1"}}}
	require.NoError(t, (&DockerEnsurer{api: api}).Ensure(context.Background(), "dblab"))
	require.Empty(t, api.created)
}

func TestDockerEnsurerConflictIsSuccess(t *testing.T) {
	api := &fakeAPI{createErr: fmt.Errorf("network with name dblab already exists: %w", cerrdefs.ErrConflict)}
	require.NoError(t, (&DockerEnsurer{api: api}).Ensure(context.Background(), "dblab"))
}

func TestDockerEnsurerFailsFast(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("daemon unreachable")}
	err := (&DockerEnsurer{api: api}).Ensure(context.Background(), "dblab")
	require.ErrorContains(t, err, "daemon unreachable")

	api = &fakeAPI{createErr: errors.New("permission denied")}
	err = (&DockerEnsurer{api: api}).Ensure(context.Background(), "dblab")
	require.ErrorContains(t, err, "permission denied")
}

// fakeRuntime writes a shell script that mimics `<runtime> network ...`.
// inspect succeeds once the marker file exists; create writes it.
func fakeRuntime(t *testing.T, create func(marker string) string) (bin, marker string) {
	t.Helper()
	dir := t.TempDir()
	marker = filepath.Join(dir, "created")
	bin = filepath.Join(dir, "runtime")
	script := "#!/bin/sh\n" +
		"case \"$2\" in\n" +
		"  inspect) [ -f '" + marker + "' ] && exit 0; echo 'no such network' >&2; exit 1;;\n" +
		"  create) " + create(marker) + ";;\n" +
		"esac\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, marker
}

func TestCLIEnsurerCreatesOnce(t *testing.T) {
	bin, marker := fakeRuntime(t, func(m string) string { return "touch '" + m + "'" })
	e := &CLIEnsurer{Runtime: bin}
	require.NoError(t, e.Ensure(context.Background(), "dblab"))
	_, err := os.Stat(marker)
	require.NoError(t, err)
	require.NoError(t, e.Ensure(context.Background(), "dblab"))
}

func TestCLIEnsurerAlreadyExistsIsSuccess(t *testing.T) {
	bin, _ := fakeRuntime(t, func(string) string {
		return "echo 'Error: network with name dblab already exists' >&2; exit 125"
	})
	require.NoError(t, (&CLIEnsurer{Runtime: bin}).Ensure(context.Background(), "dblab"))
}

func TestCLIEnsurerReportsFailure(t *testing.T) {
	bin, _ := fakeRuntime(t, func(string) string { return "echo 'permission denied' >&2; exit 1" })
	err := (&CLIEnsurer{Runtime: bin}).Ensure(context.Background(), "dblab")
	require.ErrorContains(t, err, "permission denied")
}

func TestNewPicksCLIForPodman(t *testing.T) {
	e := New(context.Background(), "podman")
	cli, ok := e.(*CLIEnsurer)
	require.True(t, ok)
	require.Equal(t, "podman", cli.Runtime)
}

func TestNewFallsBackToCLIWhenDaemonUnreachable(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix://"+filepath.Join(t.TempDir(), "docker.sock"))
	e := New(context.Background(), "docker")
	cli, ok := e.(*CLIEnsurer)
	require.True(t, ok, "got %T", e)
	require.Equal(t, "docker", cli.Runtime)
}

func TestContextHost(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "docker")
	script := "#!/bin/sh\n" +
		"[ \"$1 $2\" = 'context inspect' ] || exit 1\n" +
		"echo 'unix:///home/dev/.colima/docker.sock'\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	require.Equal(t, "unix:///home/dev/.colima/docker.sock", contextHost(context.Background(), bin))

	require.Empty(t, contextHost(context.Background(), filepath.Join(t.TempDir(), "absent")))
}
