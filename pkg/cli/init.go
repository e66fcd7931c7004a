package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	initProject string
	initWSDL    string
	initXSD     string
)

var initCmd = &cobra.Command{
	Use:   "init [project]",
	Short: "Create a project from a WSDL file without generating its descriptor",
	Long: `Create a project directory, copy the WSDL (and optional XSD) into it, and
write the default response.groovy script. Use 'generate' to also write
imposter-config.yaml.`,
	Example: `  soapmock init billing --wsdl ./Billing.wsdl --xsd ./Billing.xsd`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := projectArg(args, initProject)
		if err != nil {
			return err
		}
		if initWSDL == "" {
			return fmt.Errorf("--wsdl is required")
		}

		pm := newProjectManager(cmd)
		dir, err := pm.Layout().Dir(name)
		if err != nil {
			return err
		}
		if err := pm.Init(dir, initWSDL, initXSD); err != nil {
			return err
		}
		info, err := pm.Describe(name)
		if err != nil {
			return err
		}
		return printResult(cmd, info, func(w io.Writer) {
			fmt.Fprintf(w, "Project %s ready in %s\n", name, dir)
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initProject, "project", "p", "", "Project name")
	initCmd.Flags().StringVar(&initWSDL, "wsdl", "", "WSDL file to copy into the project (required)")
	initCmd.Flags().StringVar(&initXSD, "xsd", "", "Optional XSD file copied into xsd/")
}
