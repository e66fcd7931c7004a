package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/soapmock/pkg/runtime"
)

var titleCase = cases.Title(language.English)

var statusCmd = &cobra.Command{
	Use:   "status <project>",
	Short: "Show the container state of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lm, closeFn, err := newLifecycle(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		st, err := lm.Status(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, st, func(w io.Writer) {
			printState(w, st)
		})
	},
}

func printState(w io.Writer, st *runtime.ContainerState) {
	fmt.Fprintf(w, "%s: %s\n", st.Name, titleCase.String(st.StatusText()))
	if st.Status == runtime.StatusAbsent {
		return
	}
	if st.Image != "" {
		fmt.Fprintf(w, "  Image:   %s\n", st.Image)
	}
	if st.StartedAt != "" {
		fmt.Fprintf(w, "  Started: %s\n", st.StartedAt)
	}
	if st.Error != "" {
		fmt.Fprintf(w, "  Error:   %s\n", st.Error)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
