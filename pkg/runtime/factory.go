package runtime

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Runtime kinds selectable from configuration.
const (
	KindCLI    = "cli"
	KindDocker = "docker"
)

// Options selects and configures a Runtime.
type Options struct {
	Kind           string
	DockerBin      string
	CommandTimeout time.Duration
	Logger         *slog.Logger
}

// New returns the runtime named by opts.Kind. An empty kind selects the CLI
// runtime.
func New(opts Options) (Runtime, error) {
	switch strings.ToLower(opts.Kind) {
	case "", KindCLI:
		return NewCLI(
			WithBinary(opts.DockerBin),
			WithCommandTimeout(opts.CommandTimeout),
			WithCLILogger(opts.Logger),
		), nil
	case KindDocker:
		return NewDocker(opts.Logger)
	default:
		return nil, fmt.Errorf("unknown runtime %q (expected %s or %s)", opts.Kind, KindCLI, KindDocker)
	}
}
