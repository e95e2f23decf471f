package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmath/pkg/runner"
)

func newScanCommand() *cobra.Command {
	flags := &mathFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List the math tokens found in Markdown files",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd, args, runner.ModeScan, flags)
		},
	}

	addMathFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Scan Markdown files for dollar-delimited math.

Every $...$, $$...$$ and $$ block is listed with its position, kind,
content and label. By default all Markdown files under the current
directory are scanned; vendored directories are skipped.

Examples:
  mdmath scan                        # Scan the current directory
  mdmath scan docs/ README.md        # Scan specific paths
  mdmath scan --allow-digits=false   # Reject $ next to digits
  mdmath scan --format json          # Machine-readable output`
