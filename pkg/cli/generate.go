package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/project"
)

var (
	genProject string
	genWSDL    string
	genXSD     string
	genOutput  string
	genScript  string
)

var generateCmd = &cobra.Command{
	Use:   "generate [project]",
	Short: "Generate imposter-config.yaml for a project",
	Long: `Generate the Imposter descriptor of a project from its WSDL.

A project that does not exist yet, or has no WSDL, is initialized from
--wsdl first. The descriptor is always rewritten; an existing
response.groovy is kept.`,
	Example: `  # Create and generate in one go
  soapmock generate billing --wsdl ./Billing.wsdl

  # Regenerate after editing the WSDL in place
  soapmock generate billing

  # Write the project somewhere else
  soapmock generate --wsdl ./Billing.wsdl --output /tmp/billing`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := projectArg(args, genProject)
		if err != nil && genOutput == "" {
			return err
		}

		res, err := newProjectManager(cmd).Generate(project.GenerateOptions{
			Project:    name,
			OutputDir:  genOutput,
			WSDLSource: genWSDL,
			XSDSource:  genXSD,
			ScriptFile: genScript,
		})
		if err != nil {
			if project.IsSourceError(err) && genWSDL == "" {
				return fmt.Errorf("%w\n\nProvide the WSDL with --wsdl <file>", err)
			}
			return err
		}

		return printResult(cmd, res, func(w io.Writer) {
			fmt.Fprintf(w, "Descriptor ready: %s -> %s\n", res.WSDLFile, res.ServicePath)
		})
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genProject, "project", "p", "", "Project name")
	generateCmd.Flags().StringVar(&genWSDL, "wsdl", "", "WSDL file used to initialize the project")
	generateCmd.Flags().StringVar(&genXSD, "xsd", "", "Optional XSD file copied into xsd/")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Project directory, overriding the base directory")
	generateCmd.Flags().StringVar(&genScript, "script", "", "Response script referenced by the descriptor (default response.groovy)")
}
