package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/getmockd/soapmock/pkg/logging"
)

// dockerAPI is the subset of *client.Client the Docker runtime uses.
type dockerAPI interface {
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error)
	NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Inspect, error)
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	Close() error
}

var _ dockerAPI = (*client.Client)(nil)

// Docker talks to the Engine API through the Docker SDK.
type Docker struct {
	api    dockerAPI
	logger *slog.Logger
}

// NewDocker connects using the standard DOCKER_* environment variables and
// negotiates the API version with the daemon.
func NewDocker(logger *slog.Logger) (*Docker, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("%w: creating docker client: %v", ErrUnavailable, err)
	}
	return newDocker(cli, logger), nil
}

func newDocker(api dockerAPI, logger *slog.Logger) *Docker {
	return &Docker{api: api, logger: logging.OrNop(logger)}
}

// Name implements Runtime.
func (d *Docker) Name() string { return "docker" }

// Close releases the client connection.
func (d *Docker) Close() error {
	return d.api.Close()
}

// Run implements Runtime. The image is pulled when the daemon does not have
// it yet.
func (d *Docker) Run(ctx context.Context, spec RunSpec) (string, error) {
	cfg, hostCfg, netCfg := createConfig(spec)

	resp, err := d.api.ContainerCreate(ctx, cfg, hostCfg, netCfg, nil, spec.Name)
	if client.IsErrNotFound(err) {
		d.logger.Info("pulling image", "image", cfg.Image)
		if err := d.pull(ctx, cfg.Image); err != nil {
			return "", err
		}
		resp, err = d.api.ContainerCreate(ctx, cfg, hostCfg, netCfg, nil, spec.Name)
	}
	if err != nil {
		return "", d.mapErr(fmt.Sprintf("creating container %s", spec.Name), err)
	}
	for _, w := range resp.Warnings {
		d.logger.Warn("container create warning", "container", spec.Name, "warning", w)
	}

	if err := d.api.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		if rmErr := d.api.ContainerRemove(context.WithoutCancel(ctx), resp.ID, container.RemoveOptions{Force: true}); rmErr != nil {
			d.logger.Debug("removing container after failed start", "container", spec.Name, "error", rmErr)
		}
		return "", d.mapErr(fmt.Sprintf("starting container %s", spec.Name), err)
	}
	return resp.ID, nil
}

func createConfig(spec RunSpec) (*container.Config, *container.HostConfig, *network.NetworkingConfig) {
	port := nat.Port(strconv.Itoa(spec.containerPort()) + "/tcp")

	cfg := &container.Config{
		Image:  spec.image(),
		Labels: spec.Labels,
		ExposedPorts: nat.PortSet{
			port: struct{}{},
		},
	}

	hostCfg := &container.HostConfig{}
	if spec.HostPort > 0 {
		hostCfg.PortBindings = nat.PortMap{
			port: []nat.PortBinding{{HostPort: strconv.Itoa(spec.HostPort)}},
		}
	}
	for _, m := range spec.Mounts {
		hostCfg.Binds = append(hostCfg.Binds, m.Source+":"+m.Target)
	}

	var netCfg *network.NetworkingConfig
	if spec.Network != "" {
		hostCfg.NetworkMode = container.NetworkMode(spec.Network)
		netCfg = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				spec.Network: {},
			},
		}
	}
	return cfg, hostCfg, netCfg
}

func (d *Docker) pull(ctx context.Context, ref string) error {
	rc, err := d.api.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return d.mapErr(fmt.Sprintf("pulling image %s", ref), err)
	}
	defer rc.Close()
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("pulling image %s: %w", ref, err)
	}
	return nil
}

// Stop implements Runtime.
func (d *Docker) Stop(ctx context.Context, name string) error {
	if err := d.api.ContainerStop(ctx, name, container.StopOptions{}); err != nil {
		return d.mapErr(fmt.Sprintf("stopping container %s", name), err)
	}
	return nil
}

// Remove implements Runtime.
func (d *Docker) Remove(ctx context.Context, name string) error {
	if err := d.api.ContainerRemove(ctx, name, container.RemoveOptions{}); err != nil {
		return d.mapErr(fmt.Sprintf("removing container %s", name), err)
	}
	return nil
}

// Inspect implements Runtime.
func (d *Docker) Inspect(ctx context.Context, name string) (*ContainerState, error) {
	resp, err := d.api.ContainerInspect(ctx, name)
	if err != nil {
		return nil, d.mapErr(fmt.Sprintf("inspecting container %s", name), err)
	}
	return stateFromInspect(name, resp), nil
}

// Logs implements Runtime.
func (d *Docker) Logs(ctx context.Context, name string, tail int) (string, error) {
	if tail <= 0 {
		tail = DefaultLogTail
	}
	rc, err := d.api.ContainerLogs(ctx, name, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(tail),
	})
	if err != nil {
		return "", d.mapErr(fmt.Sprintf("reading logs of %s", name), err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, rc); err != nil {
		return buf.String(), fmt.Errorf("reading logs of %s: %w", name, err)
	}
	return buf.String(), nil
}

// NetworkExists implements Runtime.
func (d *Docker) NetworkExists(ctx context.Context, name string) (bool, error) {
	_, err := d.api.NetworkInspect(ctx, name, network.InspectOptions{})
	if err == nil {
		return true, nil
	}
	if client.IsErrNotFound(err) {
		return false, nil
	}
	return false, d.mapErr(fmt.Sprintf("inspecting network %s", name), err)
}

// CreateNetwork implements Runtime.
func (d *Docker) CreateNetwork(ctx context.Context, name string) error {
	resp, err := d.api.NetworkCreate(ctx, name, network.CreateOptions{Driver: "bridge"})
	if err != nil {
		return d.mapErr(fmt.Sprintf("creating network %s", name), err)
	}
	if resp.Warning != "" {
		d.logger.Warn("network create warning", "network", name, "warning", resp.Warning)
	}
	return nil
}

// mapErr wraps err with the runtime sentinel it corresponds to.
func (d *Docker) mapErr(op string, err error) error {
	switch {
	case client.IsErrNotFound(err):
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	case client.IsErrConnectionFailed(err):
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
