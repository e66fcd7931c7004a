package lifecycle

import (
	"errors"
	"fmt"

	"github.com/getmockd/soapmock/pkg/runtime"
)

var (
	// ErrValidationFailed is matched by errors from Start when the project
	// descriptor does not validate.
	ErrValidationFailed = errors.New("validation failed")

	// ErrContainerExitedEarly is matched by errors from Start when the
	// container was created but is not running after the settle interval.
	ErrContainerExitedEarly = errors.New("container exited early")

	// ErrInvalidPort is returned for ports outside 1-65535.
	ErrInvalidPort = errors.New("invalid port")
)

// ValidationFailedError blocks a start. Cause is the *validate.Error.
type ValidationFailedError struct {
	Project string
	Cause   error
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("project %s failed validation: %v", e.Project, e.Cause)
}

// Unwrap exposes both ErrValidationFailed and the validation error.
func (e *ValidationFailedError) Unwrap() []error {
	return []error{ErrValidationFailed, e.Cause}
}

// RunError is returned when the runtime rejects the run request.
type RunError struct {
	Container string
	Cause     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("starting container %s: %v", e.Container, e.Cause)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// ContainerExitedError carries the tail of the container's log so callers
// can show why it stopped.
type ContainerExitedError struct {
	Container string
	State     *runtime.ContainerState
	Logs      string
}

func (e *ContainerExitedError) Error() string {
	return fmt.Sprintf("container %s is not running after start (%s)", e.Container, e.State.StatusText())
}

func (e *ContainerExitedError) Unwrap() error {
	return ErrContainerExitedEarly
}
