package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/cli/internal/output"
	"github.com/getmockd/soapmock/pkg/validate"
)

var (
	validateProject string
	validateStrict  bool
)

// ValidateOutput is the JSON result of the validate command.
type ValidateOutput struct {
	Project string          `json:"project"`
	Dir     string          `json:"dir"`
	Valid   bool            `json:"valid"`
	Error   *validate.Error `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [project]",
	Short: "Check a project's imposter-config.yaml",
	Long: `Check that imposter-config.yaml exists, has plugin, wsdlFile and resources,
and that the WSDL and every referenced scriptFile exist in the project.
--strict also checks the descriptor against its JSON Schema.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := projectArg(args, validateProject)
		if err != nil {
			return err
		}
		dir, err := cfg.Layout().Dir(name)
		if err != nil {
			return err
		}

		v := validate.New(
			validate.WithReporter(reporter(cmd)),
			validate.WithLogger(logger),
			validate.WithStrictSchema(validateStrict),
		)
		verr := v.Validate(dir)

		out := ValidateOutput{Project: name, Dir: dir, Valid: verr == nil}
		if verr != nil {
			out.Message = verr.Error()
			var typed *validate.Error
			if errors.As(verr, &typed) {
				out.Error = typed
			}
		}
		if jsonOutput {
			if err := output.JSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		}
		return verr
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateProject, "project", "p", "", "Project name")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Also validate against the descriptor JSON Schema")
}
