package runtime

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// Result is the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandExecutor spawns a process and waits for it. A non-zero exit is
// reported through Result.ExitCode, not as an error; the error is reserved
// for commands that could not run at all.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

// Execute implements CommandExecutor.
func (ExecExecutor) Execute(ctx context.Context, name string, args ...string) (*Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return nil, err
}

// CommandError is a command that exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	kind     error
}

func (e *CommandError) Error() string {
	msg := strings.Join(e.Args, " ")
	if len(e.Args) > 3 {
		msg = strings.Join(e.Args[:3], " ") + " ..."
	}
	msg += " failed"
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else {
		msg += " with exit code " + strconv.Itoa(e.ExitCode)
	}
	return msg
}

// Unwrap returns ErrNotFound or ErrUnavailable when stderr identifies one.
func (e *CommandError) Unwrap() error {
	return e.kind
}

// classifyStderr maps well-known docker CLI messages to sentinel errors.
func classifyStderr(stderr string) error {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "no such container"),
		strings.Contains(s, "no such object"),
		strings.Contains(s, "no such network"),
		strings.Contains(s, "network") && strings.Contains(s, "not found"):
		return ErrNotFound
	case strings.Contains(s, "cannot connect to the docker daemon"),
		strings.Contains(s, "error during connect"),
		strings.Contains(s, "is the docker daemon running"):
		return ErrUnavailable
	default:
		return nil
	}
}
