package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/cli/internal/output"
	"github.com/getmockd/soapmock/pkg/cli/internal/ports"
	"github.com/getmockd/soapmock/pkg/lifecycle"
	"github.com/getmockd/soapmock/pkg/runtime"
)

var (
	startPort          int
	startNetwork       string
	startCreateNetwork bool
	startStrict        bool
)

var startCmd = &cobra.Command{
	Use:   "start <project>",
	Short: "Validate a project and run it in an Imposter container",
	Long: `Validate the project, remove any previous mock-<project> container, and
start a new one with the project mounted at /opt/imposter/config.

The container is checked after a settle interval (SOAPMOCK_SETTLE, default
10s). If it is not running its last log lines are printed.`,
	Example: `  soapmock start billing --port 9090 --network mocknet`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd, args[0], false)
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart <project>",
	Short: "Stop and start a project's container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd, args[0], true)
	},
}

func runStart(cmd *cobra.Command, name string, restart bool) error {
	lm, closeFn, err := newLifecycle(cmd, lifecycle.WithStrictValidation(startStrict))
	if err != nil {
		return err
	}
	defer closeFn()

	port := startPort
	if port == 0 {
		port = lifecycle.DefaultPort
	}
	warnIfPortBusy(cmd, lm, name, port)

	opts := lifecycle.StartOptions{Port: port, Network: startNetwork, CreateNetwork: startCreateNetwork}
	var res *lifecycle.StartResult
	if restart {
		res, err = lm.Restart(cmd.Context(), name, opts)
	} else {
		res, err = lm.Start(cmd.Context(), name, opts)
	}
	if err != nil {
		return err
	}

	return printResult(cmd, res, func(w io.Writer) {
		fmt.Fprintf(w, "%s listening on http://localhost:%d\n", res.Container, res.Port)
	})
}

// warnIfPortBusy warns when port is taken by something other than the
// project's own container, which start replaces anyway.
func warnIfPortBusy(cmd *cobra.Command, lm *lifecycle.Manager, name string, port int) {
	if ports.IsAvailable(port) {
		return
	}
	st, err := lm.Status(cmd.Context(), name)
	if err == nil && st.Status != runtime.StatusAbsent && st.HostPort == port {
		return
	}
	output.Warn(cmd.ErrOrStderr(), "port %d appears to be in use; the container may fail to start", port)
}

func init() {
	for _, c := range []*cobra.Command{startCmd, restartCmd} {
		rootCmd.AddCommand(c)
		c.Flags().IntVar(&startPort, "port", lifecycle.DefaultPort, "Host port published to the container's 8080")
		c.Flags().StringVar(&startNetwork, "network", "", "Docker network to attach (default from SOAPMOCK_NETWORK)")
		c.Flags().BoolVar(&startCreateNetwork, "create-network", false, "Create the network when it does not exist")
		c.Flags().BoolVar(&startStrict, "strict", false, "Validate against the descriptor JSON Schema before starting")
	}
}
