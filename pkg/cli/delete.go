package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/getmockd/soapmock/pkg/project"
)

var (
	deleteYes       bool
	deleteContainer bool
)

var errDeleteNeedsConfirm = errors.New("refusing to delete without confirmation; pass --yes")

var deleteCmd = &cobra.Command{
	Use:     "delete <project>",
	Aliases: []string{"rm"},
	Short:   "Delete a project directory",
	Long: `Delete a project directory and everything in it. The project's container
is stopped and removed first unless --stop=false is given.

Without --yes the command asks for confirmation, and fails when stdin is not
a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := project.ValidateName(name); err != nil {
			return err
		}
		pm := newProjectManager(cmd)
		info, err := pm.Describe(name)
		if err != nil {
			return err
		}

		if !deleteYes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errDeleteNeedsConfirm
			}
			confirmed := false
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete project %s?", name)).
						Description(info.Dir).
						Affirmative("Delete").
						Negative("Cancel").
						Value(&confirmed),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if deleteContainer {
			stopBeforeDelete(cmd, name)
		}
		if err := pm.Delete(name); err != nil {
			return err
		}
		return printResult(cmd, info, func(io.Writer) {})
	},
}

// stopBeforeDelete removes the project's container when a runtime is
// reachable. Failures only log.
func stopBeforeDelete(cmd *cobra.Command, name string) {
	lm, closeFn, err := newLifecycle(cmd)
	if err != nil {
		logger.Warn("skipping container cleanup", "project", name, "error", err)
		return
	}
	defer closeFn()
	_ = lm.Stop(cmd.Context(), name)
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	deleteCmd.Flags().BoolVar(&deleteContainer, "stop", true, "Stop and remove the project's container first")
}
