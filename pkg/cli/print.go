package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/cli/internal/output"
	"github.com/getmockd/soapmock/pkg/progress"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose (progress messages, hints) goes to stderr.
// textFn is called only in text mode.
func printResult(cmd *cobra.Command, data any, textFn func(w io.Writer)) error {
	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), data)
	}
	textFn(cmd.OutOrStdout())
	return nil
}

// reporter returns the progress reporter for cmd, honouring the --json
// contract above.
func reporter(cmd *cobra.Command) progress.Reporter {
	if jsonOutput {
		return progress.NewWriter(cmd.ErrOrStderr())
	}
	return progress.NewWriter(cmd.OutOrStdout())
}

func indent(s string) string {
	return output.Indent(s, "  ")
}
