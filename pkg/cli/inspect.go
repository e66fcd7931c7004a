package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/cli/internal/output"
	"github.com/getmockd/soapmock/pkg/wsdl"
)

// InspectOutput is the JSON result of the inspect command.
type InspectOutput struct {
	File        string        `json:"file"`
	ServicePath string        `json:"servicePath,omitempty"`
	Summary     *wsdl.Summary `json:"summary"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <wsdl-file>",
	Short: "Show the services, ports and operations of a WSDL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading WSDL file: %w", err)
		}

		summary, err := wsdl.Inspect(data)
		if err != nil {
			return err
		}
		out := InspectOutput{File: file, Summary: summary}

		servicePath, err := wsdl.ExtractServicePathFromBytes(data)
		switch {
		case err == nil:
			out.ServicePath = servicePath
		case errors.Is(err, wsdl.ErrMissingElement), errors.Is(err, wsdl.ErrMissingAttribute):
			output.Warn(cmd.ErrOrStderr(), "%v; generate will fail for this file", err)
		default:
			return err
		}

		return printResult(cmd, out, func(w io.Writer) {
			printSummary(w, out)
		})
	},
}

func printSummary(w io.Writer, out InspectOutput) {
	s := out.Summary
	fmt.Fprintf(w, "Definitions: %s\n", orDash(s.Name))
	fmt.Fprintf(w, "Namespace:   %s\n", orDash(s.TargetNamespace))
	fmt.Fprintf(w, "Mock path:   %s\n\n", orDash(out.ServicePath))

	tw := output.Table(w)
	fmt.Fprintln(tw, "SERVICE\tPORT\tSOAP\tLOCATION")
	for _, svc := range s.Services {
		for _, p := range svc.Ports {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", svc.Name, p.Name, orDash(p.SOAPVersion), orDash(p.Location))
		}
	}
	_ = tw.Flush()

	if len(s.Operations) > 0 {
		fmt.Fprintf(w, "\nOperations: %s\n", strings.Join(s.Operations, ", "))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
