package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmath/pkg/runner"
)

func newCheckCommand() *cobra.Command {
	flags := &mathFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report math problems in Markdown files",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd, args, runner.ModeCheck, flags)
		},
	}

	addMathFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when warnings are found")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")

	return cmd
}

const checkLongDescription = `Check Markdown files for math problems.

Reports unclosed $$ blocks, empty math and expressions the configured
renderer rejects. The exit status is 1 when errors are found, and 2 when
only warnings are found and --strict is set.

Examples:
  mdmath check                       # Check the current directory
  mdmath check --strict docs/        # Fail on warnings too
  mdmath check --renderer mathjax    # Validate against MathJax output
  mdmath check --format table        # Tabular report`
