// Package runtime abstracts the container engine that hosts Imposter
// containers. Two implementations exist: CLI drives the docker binary and
// Docker talks to the Engine API through the official SDK.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
)

// Container contract of the Imposter image.
const (
	DefaultImage       = "outofcoffee/imposter"
	ContainerConfigDir = "/opt/imposter/config"
	ContainerPort      = 8080
	DefaultLogTail     = 50
)

// Labels attached to every container started by soapmock.
const (
	LabelProject = "soapmock.project"
	LabelRun     = "soapmock.run"
)

var (
	// ErrUnavailable is returned when the container engine cannot be reached.
	ErrUnavailable = errors.New("container runtime unavailable")

	// ErrNotFound is returned when a container or network does not exist.
	ErrNotFound = errors.New("not found")
)

// Status is the lifecycle state of a container.
type Status string

// Container statuses. StatusAbsent means no container with the name exists.
const (
	StatusAbsent     Status = "absent"
	StatusCreated    Status = "created"
	StatusRunning    Status = "running"
	StatusRestarting Status = "restarting"
	StatusPaused     Status = "paused"
	StatusExited     Status = "exited"
	StatusDead       Status = "dead"
)

// Mount binds a host path into the container.
type Mount struct {
	Source string
	Target string
}

// RunSpec describes a detached container to start.
type RunSpec struct {
	Name          string
	Image         string
	HostPort      int
	ContainerPort int
	Mounts        []Mount
	Network       string
	Labels        map[string]string
}

func (s RunSpec) containerPort() int {
	if s.ContainerPort == 0 {
		return ContainerPort
	}
	return s.ContainerPort
}

func (s RunSpec) image() string {
	if s.Image == "" {
		return DefaultImage
	}
	return s.Image
}

// sortedLabels returns the labels as key=value pairs in key order.
func (s RunSpec) sortedLabels() []string {
	keys := make([]string, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+s.Labels[k])
	}
	return out
}

// ContainerState is a runtime-neutral view of a container.
type ContainerState struct {
	Name      string `json:"name"`
	ID        string `json:"id,omitempty"`
	Image     string `json:"image,omitempty"`
	Status    Status `json:"status"`
	Running   bool   `json:"running"`
	ExitCode  int    `json:"exitCode,omitempty"`
	Error     string `json:"error,omitempty"`
	StartedAt string `json:"startedAt,omitempty"`
	HostPort  int    `json:"hostPort,omitempty"`
	Project   string `json:"project,omitempty"`
	RunID     string `json:"runId,omitempty"`
}

// StatusText renders the state for humans, e.g. "running on port 9090".
func (s *ContainerState) StatusText() string {
	switch {
	case s == nil || s.Status == StatusAbsent:
		return "no container"
	case s.Running && s.HostPort > 0:
		return fmt.Sprintf("running on port %d", s.HostPort)
	case s.Status == StatusExited:
		return fmt.Sprintf("exited (%d)", s.ExitCode)
	default:
		return string(s.Status)
	}
}

// Absent returns the state of a container that does not exist.
func Absent(name string) *ContainerState {
	return &ContainerState{Name: name, Status: StatusAbsent}
}

// Runtime is the set of container operations the lifecycle manager needs.
// Methods addressing a missing container return an error wrapping
// ErrNotFound; an unreachable engine yields ErrUnavailable.
type Runtime interface {
	// Name identifies the implementation ("cli" or "docker").
	Name() string
	// Run creates and starts a detached container and returns its ID.
	Run(ctx context.Context, spec RunSpec) (string, error)
	Stop(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	Inspect(ctx context.Context, name string) (*ContainerState, error)
	// Logs returns the last tail lines of combined stdout and stderr.
	Logs(ctx context.Context, name string, tail int) (string, error)
	NetworkExists(ctx context.Context, name string) (bool, error)
	// CreateNetwork creates a bridge network.
	CreateNetwork(ctx context.Context, name string) error
}

// stateFromInspect converts an Engine API inspect document. Both runtimes
// use it: the SDK returns the struct directly and the CLI decodes the same
// JSON from `docker inspect`.
func stateFromInspect(name string, resp container.InspectResponse) *ContainerState {
	st := &ContainerState{Name: name, Status: StatusAbsent}
	if resp.ContainerJSONBase == nil {
		return st
	}
	st.ID = resp.ID
	if resp.Name != "" {
		st.Name = strings.TrimPrefix(resp.Name, "/")
	}
	if resp.State != nil {
		st.Status = Status(strings.ToLower(string(resp.State.Status)))
		st.Running = resp.State.Running
		st.ExitCode = resp.State.ExitCode
		st.Error = resp.State.Error
		st.StartedAt = resp.State.StartedAt
	}
	if resp.Config != nil {
		st.Image = resp.Config.Image
		st.Project = resp.Config.Labels[LabelProject]
		st.RunID = resp.Config.Labels[LabelRun]
	}

	port := nat.Port(strconv.Itoa(ContainerPort) + "/tcp")
	if resp.NetworkSettings != nil {
		st.HostPort = firstHostPort(resp.NetworkSettings.Ports[port])
	}
	if st.HostPort == 0 && resp.HostConfig != nil {
		st.HostPort = firstHostPort(resp.HostConfig.PortBindings[port])
	}
	return st
}

func firstHostPort(bindings []nat.PortBinding) int {
	for _, b := range bindings {
		if p, err := strconv.Atoi(b.HostPort); err == nil && p > 0 {
			return p
		}
	}
	return 0
}
