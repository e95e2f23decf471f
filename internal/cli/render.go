package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmath/pkg/runner"
)

func newRenderCommand() *cobra.Command {
	flags := &mathFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files with math to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd, args, runner.ModeRender, flags)
		},
	}

	addMathFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory for rendered HTML (default: next to each source)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print rendered HTML instead of writing files")

	return cmd
}

const renderLongDescription = `Render Markdown files with math to HTML.

Each input is written to <name>.html next to the source, or under
--out-dir keeping its path relative to the working directory. Files are
replaced atomically and only when their content changes.

Examples:
  mdmath render README.md            # Writes README.html
  mdmath render docs/ --out-dir site # Mirror docs/ into site/docs/
  mdmath render page.md --stdout     # Print HTML to stdout`
