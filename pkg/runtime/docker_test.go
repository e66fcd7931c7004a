package runtime

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocker struct {
	containers map[string]container.InspectResponse
	networks   map[string]bool
	images     map[string]bool
	logs       string

	created  []*container.Config
	hostCfgs []*container.HostConfig
	netCfgs  []*network.NetworkingConfig
	pulled   []string
	startErr error
	removed  []string
}

func newFakeDocker() *fakeDocker {
	return &fakeDocker{
		containers: map[string]container.InspectResponse{},
		networks:   map[string]bool{},
		images:     map[string]bool{},
	}
}

func notFound(what string) error {
	return errdefs.NotFound(errors.New("No such " + what))
}

func (f *fakeDocker) ContainerCreate(_ context.Context, cfg *container.Config, hostCfg *container.HostConfig, netCfg *network.NetworkingConfig, _ *ocispec.Platform, name string) (container.CreateResponse, error) {
	if !f.images[cfg.Image] {
		return container.CreateResponse{}, notFound("image: " + cfg.Image)
	}
	f.created = append(f.created, cfg)
	f.hostCfgs = append(f.hostCfgs, hostCfg)
	f.netCfgs = append(f.netCfgs, netCfg)
	f.containers[name] = container.InspectResponse{
		ContainerJSONBase: &container.ContainerJSONBase{
			ID:         "id-" + name,
			Name:       "/" + name,
			State:      &container.State{Status: "created"},
			HostConfig: hostCfg,
		},
		Config: cfg,
	}
	return container.CreateResponse{ID: "id-" + name}, nil
}

func (f *fakeDocker) ContainerStart(_ context.Context, id string, _ container.StartOptions) error {
	return f.startErr
}

func (f *fakeDocker) ContainerStop(_ context.Context, name string, _ container.StopOptions) error {
	if _, ok := f.containers[name]; !ok {
		return notFound("container: " + name)
	}
	return nil
}

func (f *fakeDocker) ContainerRemove(_ context.Context, name string, _ container.RemoveOptions) error {
	f.removed = append(f.removed, name)
	if _, ok := f.containers[name]; !ok {
		return notFound("container: " + name)
	}
	delete(f.containers, name)
	return nil
}

func (f *fakeDocker) ContainerInspect(_ context.Context, name string) (container.InspectResponse, error) {
	resp, ok := f.containers[name]
	if !ok {
		return container.InspectResponse{}, notFound("container: " + name)
	}
	return resp, nil
}

func (f *fakeDocker) ContainerLogs(_ context.Context, name string, opts container.LogsOptions) (io.ReadCloser, error) {
	if _, ok := f.containers[name]; !ok {
		return nil, notFound("container: " + name)
	}
	var buf bytes.Buffer
	_, _ = stdcopy.NewStdWriter(&buf, stdcopy.Stdout).Write([]byte(f.logs))
	_, _ = stdcopy.NewStdWriter(&buf, stdcopy.Stderr).Write([]byte("tail=" + opts.Tail + "\n"))
	return io.NopCloser(&buf), nil
}

func (f *fakeDocker) ImagePull(_ context.Context, ref string, _ image.PullOptions) (io.ReadCloser, error) {
	f.pulled = append(f.pulled, ref)
	f.images[ref] = true
	return io.NopCloser(bytes.NewReader([]byte(`{"status":"done"}`))), nil
}

func (f *fakeDocker) NetworkInspect(_ context.Context, name string, _ network.InspectOptions) (network.Inspect, error) {
	if !f.networks[name] {
		return network.Inspect{}, notFound("network: " + name)
	}
	return network.Inspect{Name: name}, nil
}

func (f *fakeDocker) NetworkCreate(_ context.Context, name string, _ network.CreateOptions) (network.CreateResponse, error) {
	f.networks[name] = true
	return network.CreateResponse{ID: "net-" + name}, nil
}

func (f *fakeDocker) Close() error { return nil }

func TestDocker_RunPullsMissingImage(t *testing.T) {
	fake := newFakeDocker()
	d := newDocker(fake, nil)

	id, err := d.Run(context.Background(), RunSpec{
		Name:     "mock-billing",
		HostPort: 9090,
		Mounts:   []Mount{{Source: "/srv/billing", Target: ContainerConfigDir}},
		Network:  "mocknet",
		Labels:   map[string]string{LabelProject: "billing"},
	})
	require.NoError(t, err)
	assert.Equal(t, "id-mock-billing", id)
	assert.Equal(t, []string{DefaultImage}, fake.pulled)

	require.Len(t, fake.created, 1)
	port := nat.Port("8080/tcp")
	assert.Contains(t, fake.created[0].ExposedPorts, port)
	assert.Equal(t, "billing", fake.created[0].Labels[LabelProject])
	assert.Equal(t, "9090", fake.hostCfgs[0].PortBindings[port][0].HostPort)
	assert.Equal(t, []string{"/srv/billing:/opt/imposter/config"}, fake.hostCfgs[0].Binds)
	assert.Contains(t, fake.netCfgs[0].EndpointsConfig, "mocknet")
}

func TestDocker_RunStartFailureRemovesContainer(t *testing.T) {
	fake := newFakeDocker()
	fake.images[DefaultImage] = true
	fake.startErr = errors.New("port is already allocated")
	d := newDocker(fake, nil)

	_, err := d.Run(context.Background(), RunSpec{Name: "mock-a", HostPort: 8080})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is already allocated")
	assert.Equal(t, []string{"id-mock-a"}, fake.removed)
}

func TestDocker_NotFoundMapping(t *testing.T) {
	d := newDocker(newFakeDocker(), nil)
	ctx := context.Background()

	_, err := d.Inspect(ctx, "mock-a")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, d.Stop(ctx, "mock-a"), ErrNotFound)
	require.ErrorIs(t, d.Remove(ctx, "mock-a"), ErrNotFound)
	_, err = d.Logs(ctx, "mock-a", 10)
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := d.NetworkExists(ctx, "mocknet")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.CreateNetwork(ctx, "mocknet"))
	ok, err = d.NetworkExists(ctx, "mocknet")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDocker_InspectAndLogs(t *testing.T) {
	fake := newFakeDocker()
	fake.images[DefaultImage] = true
	fake.networks["mocknet"] = true
	fake.logs = "imposter started\n"
	d := newDocker(fake, nil)
	ctx := context.Background()

	_, err := d.Run(ctx, RunSpec{Name: "mock-a", HostPort: 8081, Labels: map[string]string{LabelRun: "r1"}})
	require.NoError(t, err)

	st, err := d.Inspect(ctx, "mock-a")
	require.NoError(t, err)
	assert.Equal(t, "mock-a", st.Name)
	assert.Equal(t, StatusCreated, st.Status)
	assert.Equal(t, 8081, st.HostPort)
	assert.Equal(t, "r1", st.RunID)

	logs, err := d.Logs(ctx, "mock-a", 0)
	require.NoError(t, err)
	assert.Equal(t, "imposter started\ntail=50\n", logs)

	ok, err := d.NetworkExists(ctx, "mocknet")
	require.NoError(t, err)
	assert.True(t, ok)
}
