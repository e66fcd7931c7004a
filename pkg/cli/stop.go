package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/lifecycle"
)

var stopCmd = &cobra.Command{
	Use:   "stop <project>",
	Short: "Stop and remove a project's container",
	Long: `Stop and remove mock-<project>. Stopping a project that has no container
is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lm, closeFn, err := newLifecycle(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		name := args[0]
		if err := lm.Stop(cmd.Context(), name); err != nil {
			return err
		}
		// The reporter already told the user what happened.
		return printResult(cmd, map[string]string{
			"project":   name,
			"container": lifecycle.ContainerName(name),
		}, func(io.Writer) {})
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
