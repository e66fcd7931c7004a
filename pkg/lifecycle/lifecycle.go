// Package lifecycle starts, stops, and reports on the Imposter container of
// a project. Start is gated by descriptor validation; Stop is best effort.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/soapmock/pkg/logging"
	"github.com/getmockd/soapmock/pkg/progress"
	"github.com/getmockd/soapmock/pkg/project"
	"github.com/getmockd/soapmock/pkg/runtime"
	"github.com/getmockd/soapmock/pkg/validate"
)

// Defaults for Start.
const (
	DefaultPort           = runtime.ContainerPort
	DefaultSettleInterval = 10 * time.Second
	ContainerPrefix       = "mock-"
)

// ContainerName returns the container name of a project.
func ContainerName(projectName string) string {
	return ContainerPrefix + projectName
}

// Manager controls project containers through a runtime.Runtime.
type Manager struct {
	layout   project.Layout
	rt       runtime.Runtime
	image    string
	network  string
	settle   time.Duration
	strict   bool
	logger   *slog.Logger
	reporter progress.Reporter

	sleep    func(ctx context.Context, d time.Duration) error
	newRunID func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = logging.OrNop(l) }
}

// WithReporter sets the progress reporter.
func WithReporter(r progress.Reporter) Option {
	return func(m *Manager) { m.reporter = progress.OrNop(r) }
}

// WithImage overrides the Imposter image.
func WithImage(image string) Option {
	return func(m *Manager) {
		if image != "" {
			m.image = image
		}
	}
}

// WithDefaultNetwork sets the network used when StartOptions.Network is empty.
func WithDefaultNetwork(name string) Option {
	return func(m *Manager) { m.network = name }
}

// WithSettleInterval sets how long Start waits before checking the container.
func WithSettleInterval(d time.Duration) Option {
	return func(m *Manager) { m.settle = d }
}

// WithStrictValidation makes the start gate also apply the JSON Schema.
func WithStrictValidation(strict bool) Option {
	return func(m *Manager) { m.strict = strict }
}

// NewManager creates a Manager.
func NewManager(layout project.Layout, rt runtime.Runtime, opts ...Option) *Manager {
	m := &Manager{
		layout:   layout,
		rt:       rt,
		image:    runtime.DefaultImage,
		settle:   DefaultSettleInterval,
		logger:   logging.Nop(),
		reporter: progress.Nop(),
		sleep:    sleepContext,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartOptions are the per-start parameters.
type StartOptions struct {
	// Port is the host port published to the container's 8080. Zero means
	// DefaultPort.
	Port int

	// Network to attach to. Empty falls back to the manager's default.
	Network string

	// CreateNetwork creates the network when it does not exist instead of
	// starting without it.
	CreateNetwork bool
}

// StartResult describes a running container.
type StartResult struct {
	Project     string                  `json:"project"`
	Container   string                  `json:"container"`
	ContainerID string                  `json:"containerId,omitempty"`
	Port        int                     `json:"port"`
	HostPath    string                  `json:"hostPath"`
	Network     string                  `json:"network,omitempty"`
	RunID       string                  `json:"runId"`
	State       *runtime.ContainerState `json:"state,omitempty"`
}

// Start validates the project, replaces any existing container, and starts
// a fresh one. It returns once the container is confirmed running after the
// settle interval.
func (m *Manager) Start(ctx context.Context, name string, opts StartOptions) (*StartResult, error) {
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	paths, err := m.layout.Paths(name)
	if err != nil {
		return nil, err
	}

	v := validate.New(validate.WithStrictSchema(m.strict), validate.WithLogger(m.logger))
	if err := v.Validate(paths.Internal); err != nil {
		m.logger.Warn("start blocked by validation", "project", name, "error", err)
		return nil, &ValidationFailedError{Project: name, Cause: err}
	}
	m.reporter.Infof("Configuration of %s is valid.", name)

	container := ContainerName(name)
	m.preClean(ctx, container)

	network, err := m.resolveNetwork(ctx, opts)
	if err != nil {
		return nil, err
	}

	runID := m.newRunID()
	spec := runtime.RunSpec{
		Name:          container,
		Image:         m.image,
		HostPort:      port,
		ContainerPort: runtime.ContainerPort,
		Mounts:        []runtime.Mount{{Source: paths.Host, Target: runtime.ContainerConfigDir}},
		Network:       network,
		Labels: map[string]string{
			runtime.LabelProject: name,
			runtime.LabelRun:     runID,
		},
	}
	m.logger.Info("starting container", "container", container, "image", spec.Image, "port", port, "mount", paths.Host, "network", network)

	id, err := m.rt.Run(ctx, spec)
	if err != nil {
		return nil, &RunError{Container: container, Cause: err}
	}
	m.reporter.Infof("Container %s created, waiting %s for it to settle ...", container, m.settle)

	if err := m.sleep(ctx, m.settle); err != nil {
		return nil, err
	}

	state, err := m.rt.Inspect(ctx, container)
	if err == nil && state.Running {
		m.reporter.Infof("Mock %s is running on port %d.", name, port)
		return &StartResult{
			Project:     name,
			Container:   container,
			ContainerID: id,
			Port:        port,
			HostPath:    paths.Host,
			Network:     network,
			RunID:       runID,
			State:       state,
		}, nil
	}
	if err != nil {
		m.logger.Debug("inspect after start failed", "container", container, "error", err)
		state = runtime.Absent(container)
	}

	logs, logErr := m.rt.Logs(ctx, container, runtime.DefaultLogTail)
	if logErr != nil {
		m.logger.Debug("reading container logs failed", "container", container, "error", logErr)
		logs = fmt.Sprintf("unable to read logs: %v", logErr)
	}
	m.logger.Error("container exited early", "container", container, "status", state.Status, "exitCode", state.ExitCode)
	return nil, &ContainerExitedError{Container: container, State: state, Logs: logs}
}

// preClean removes a previous container of the same name. Absence is the
// expected case and errors are only logged.
func (m *Manager) preClean(ctx context.Context, container string) {
	if err := m.rt.Stop(ctx, container); err != nil {
		m.logger.Debug("pre-clean stop", "container", container, "error", err)
	}
	if err := m.rt.Remove(ctx, container); err != nil {
		m.logger.Debug("pre-clean remove", "container", container, "error", err)
	}
}

// resolveNetwork returns the network to attach, or "" to start without one.
func (m *Manager) resolveNetwork(ctx context.Context, opts StartOptions) (string, error) {
	network := opts.Network
	if network == "" {
		network = m.network
	}
	if network == "" {
		return "", nil
	}

	exists, err := m.rt.NetworkExists(ctx, network)
	if err != nil {
		m.logger.Warn("network lookup failed, treating as absent", "network", network, "error", err)
		exists = false
	}
	if exists {
		m.reporter.Infof("Attaching to network %s.", network)
		return network, nil
	}

	if opts.CreateNetwork {
		if err := m.rt.CreateNetwork(ctx, network); err != nil {
			return "", fmt.Errorf("creating network %s: %w", network, err)
		}
		m.reporter.Infof("Network %s created.", network)
		return network, nil
	}

	m.reporter.Warnf("Network %s not found, starting without it.", network)
	return "", nil
}

// Stop stops and removes the project's container. Both steps are best
// effort: a missing container or an unreachable runtime is logged and nil
// is returned.
func (m *Manager) Stop(ctx context.Context, name string) error {
	if err := project.ValidateName(name); err != nil {
		return err
	}
	container := ContainerName(name)

	stopErr := m.rt.Stop(ctx, container)
	m.logCleanup("stop", container, stopErr)
	removeErr := m.rt.Remove(ctx, container)
	m.logCleanup("remove", container, removeErr)

	switch {
	case stopErr == nil || removeErr == nil:
		m.reporter.Infof("Container %s stopped and removed.", container)
	case errors.Is(stopErr, runtime.ErrNotFound):
		m.reporter.Infof("No container %s to stop.", container)
	default:
		m.reporter.Warnf("Could not stop %s: %v", container, stopErr)
	}
	return nil
}

func (m *Manager) logCleanup(op, container string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, runtime.ErrNotFound):
		m.logger.Debug("container already gone", "op", op, "container", container)
	default:
		m.logger.Warn("container cleanup failed", "op", op, "container", container, "error", err)
	}
}

// Restart is Stop followed by Start.
func (m *Manager) Restart(ctx context.Context, name string, opts StartOptions) (*StartResult, error) {
	if err := m.Stop(ctx, name); err != nil {
		return nil, err
	}
	return m.Start(ctx, name, opts)
}

// Status reports the container state of a project. A project without a
// container reports runtime.StatusAbsent.
func (m *Manager) Status(ctx context.Context, name string) (*runtime.ContainerState, error) {
	if err := project.ValidateName(name); err != nil {
		return nil, err
	}
	container := ContainerName(name)
	state, err := m.rt.Inspect(ctx, container)
	if errors.Is(err, runtime.ErrNotFound) {
		return runtime.Absent(container), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
