package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/getmockd/soapmock/pkg/logging"
)

// DefaultCommandTimeout bounds every docker invocation of the CLI runtime.
const DefaultCommandTimeout = 120 * time.Second

// CLI drives the docker command-line client.
type CLI struct {
	bin      string
	timeout  time.Duration
	executor CommandExecutor
	logger   *slog.Logger
}

// CLIOption configures a CLI runtime.
type CLIOption func(*CLI)

// WithBinary sets the docker binary (default "docker").
func WithBinary(bin string) CLIOption {
	return func(c *CLI) {
		if bin != "" {
			c.bin = bin
		}
	}
}

// WithCommandTimeout sets the per-command timeout. Zero disables it.
func WithCommandTimeout(d time.Duration) CLIOption {
	return func(c *CLI) { c.timeout = d }
}

// WithExecutor replaces the process executor.
func WithExecutor(e CommandExecutor) CLIOption {
	return func(c *CLI) { c.executor = e }
}

// WithCLILogger sets the logger.
func WithCLILogger(l *slog.Logger) CLIOption {
	return func(c *CLI) { c.logger = logging.OrNop(l) }
}

// NewCLI creates a CLI runtime.
func NewCLI(opts ...CLIOption) *CLI {
	c := &CLI{
		bin:      "docker",
		timeout:  DefaultCommandTimeout,
		executor: ExecExecutor{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Runtime.
func (c *CLI) Name() string { return "cli" }

// RunArgs returns the docker arguments that start spec.
func RunArgs(spec RunSpec) []string {
	args := []string{"run", "-d", "--name", spec.Name}
	if spec.HostPort > 0 {
		args = append(args, "-p", fmt.Sprintf("%d:%d", spec.HostPort, spec.containerPort()))
	}
	for _, m := range spec.Mounts {
		args = append(args, "-v", m.Source+":"+m.Target)
	}
	if spec.Network != "" {
		args = append(args, "--network", spec.Network)
	}
	for _, label := range spec.sortedLabels() {
		args = append(args, "--label", label)
	}
	return append(args, spec.image())
}

// Run implements Runtime.
func (c *CLI) Run(ctx context.Context, spec RunSpec) (string, error) {
	res, err := c.docker(ctx, RunArgs(spec)...)
	if err != nil {
		return "", err
	}
	return firstLine(res.Stdout), nil
}

// Stop implements Runtime.
func (c *CLI) Stop(ctx context.Context, name string) error {
	_, err := c.docker(ctx, "stop", name)
	return err
}

// Remove implements Runtime.
func (c *CLI) Remove(ctx context.Context, name string) error {
	_, err := c.docker(ctx, "rm", name)
	return err
}

// Inspect implements Runtime. It decodes the Engine API document printed by
// `docker inspect`.
func (c *CLI) Inspect(ctx context.Context, name string) (*ContainerState, error) {
	res, err := c.docker(ctx, "inspect", "--type", "container", name)
	if err != nil {
		return nil, err
	}
	var docs []container.InspectResponse
	if err := json.Unmarshal([]byte(res.Stdout), &docs); err != nil {
		return nil, fmt.Errorf("decoding docker inspect output: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("container %s: %w", name, ErrNotFound)
	}
	return stateFromInspect(name, docs[0]), nil
}

// Logs implements Runtime.
func (c *CLI) Logs(ctx context.Context, name string, tail int) (string, error) {
	if tail <= 0 {
		tail = DefaultLogTail
	}
	res, err := c.docker(ctx, "logs", "--tail", strconv.Itoa(tail), name)
	if err != nil {
		return "", err
	}
	return res.Stdout + res.Stderr, nil
}

// NetworkExists implements Runtime.
func (c *CLI) NetworkExists(ctx context.Context, name string) (bool, error) {
	_, err := c.docker(ctx, "network", "inspect", name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// CreateNetwork implements Runtime.
func (c *CLI) CreateNetwork(ctx context.Context, name string) error {
	_, err := c.docker(ctx, "network", "create", name)
	return err
}

// docker runs one docker command under the configured timeout. Non-zero
// exits become *CommandError.
func (c *CLI) docker(ctx context.Context, args ...string) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := c.executor.Execute(ctx, c.bin, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, c.bin)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s %s timed out after %s: %w", c.bin, args[0], c.timeout, err)
		}
		return nil, fmt.Errorf("running %s %s: %w", c.bin, args[0], err)
	}

	c.logger.Debug("docker command", "args", args, "exit", res.ExitCode, "duration", time.Since(start))
	if res.ExitCode != 0 {
		return res, &CommandError{
			Args:     append([]string{c.bin}, args...),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			kind:     classifyStderr(res.Stderr),
		}
	}
	return res, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
