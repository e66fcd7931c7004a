package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/cli/internal/output"
	"github.com/getmockd/soapmock/pkg/project"
)

var listWithStatus bool

// ListEntry is one row of the list command.
type ListEntry struct {
	project.Info
	Status string `json:"status,omitempty"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the projects in the base directory",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := newProjectManager(cmd).List()
		if err != nil {
			return err
		}

		entries := make([]ListEntry, len(infos))
		for i, info := range infos {
			entries[i] = ListEntry{Info: info}
		}
		if listWithStatus {
			fillStatus(cmd, entries)
		}

		return printResult(cmd, entries, func(w io.Writer) {
			printList(w, entries)
		})
	},
}

// fillStatus looks up each project's container. Projects whose state cannot
// be read show "unknown".
func fillStatus(cmd *cobra.Command, entries []ListEntry) {
	lm, closeFn, err := newLifecycle(cmd)
	if err != nil {
		logger.Warn("container runtime unavailable", "error", err)
		for i := range entries {
			entries[i].Status = "unknown"
		}
		return
	}
	defer closeFn()

	for i := range entries {
		st, err := lm.Status(cmd.Context(), entries[i].Name)
		if err != nil {
			logger.Debug("status lookup failed", "project", entries[i].Name, "error", err)
			entries[i].Status = "unknown"
			continue
		}
		entries[i].Status = st.StatusText()
	}
}

func printList(w io.Writer, entries []ListEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}

	tw := output.Table(w)
	header := "NAME\tWSDL\tDESCRIPTOR\tXSD"
	if listWithStatus {
		header += "\tCONTAINER"
	}
	fmt.Fprintln(tw, header)
	for _, e := range entries {
		descriptor := "no"
		if e.HasDescriptor {
			descriptor = "yes"
		}
		row := fmt.Sprintf("%s\t%s\t%s\t%s", e.Name, orDash(e.WSDLFile), descriptor, strconv.Itoa(e.XSDCount))
		if listWithStatus {
			row += "\t" + e.Status
		}
		fmt.Fprintln(tw, row)
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listWithStatus, "status", false, "Also show each project's container state")
}
