package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmath/internal/configloader"
	"github.com/yaklabco/mdmath/internal/logging"
	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/reporter"
	"github.com/yaklabco/mdmath/pkg/runner"
)

// mathFlags holds the flags shared by scan, render and check, plus the few
// that only one of them registers.
type mathFlags struct {
	allowSpace      bool
	allowDigits     bool
	doubleInline    bool
	allowLabels     bool
	allowBlankLines bool
	labelNormalizer string
	renderer        string
	flavor          string
	format          string
	jobs            int
	ignore          []string
	compact         bool

	noContext bool
	strict    bool
	outDir    string
	stdout    bool
}

func addMathFlags(cmd *cobra.Command, flags *mathFlags) {
	cmd.Flags().BoolVar(&flags.allowSpace, "allow-space", true,
		"allow whitespace just inside inline $ delimiters")
	cmd.Flags().BoolVar(&flags.allowDigits, "allow-digits", true,
		"allow digits immediately outside inline $ delimiters")
	cmd.Flags().BoolVar(&flags.doubleInline, "double-inline", true, "parse $$...$$ inside paragraphs")
	cmd.Flags().BoolVar(&flags.allowLabels, "allow-labels", true, "allow a (label) after a closing $$")
	cmd.Flags().BoolVar(&flags.allowBlankLines, "allow-blank-lines", true, "allow blank lines inside $$ blocks")
	cmd.Flags().StringVar(&flags.labelNormalizer, "label-normalizer", "hyphen",
		"label normalizer: hyphen, slug, none")
	cmd.Flags().StringVar(&flags.renderer, "renderer", "placeholder", "math renderer: placeholder, mathjax")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

// cliConfig builds the highest-precedence config layer. Only flags the user
// actually set are copied, so file and env values survive flag defaults.
func (f *mathFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("allow-space") {
		cfg.Math.AllowSpace = config.Bool(f.allowSpace)
	}
	if changed("allow-digits") {
		cfg.Math.AllowDigits = config.Bool(f.allowDigits)
	}
	if changed("double-inline") {
		cfg.Math.DoubleInline = config.Bool(f.doubleInline)
	}
	if changed("allow-labels") {
		cfg.Math.AllowLabels = config.Bool(f.allowLabels)
	}
	if changed("allow-blank-lines") {
		cfg.Math.AllowBlankLines = config.Bool(f.allowBlankLines)
	}
	if changed("label-normalizer") {
		cfg.Math.LabelNormalizer = f.labelNormalizer
	}
	if changed("renderer") {
		cfg.Render.Renderer = f.renderer
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("out-dir") {
		cfg.Render.OutDir = f.outDir
	}
	cfg.Strict = f.strict
	cfg.Stdout = f.stdout

	return cfg
}

// loadConfig resolves the final configuration for a command.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cli *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldRenderer, cfg.Render.Renderer,
		logging.FieldNormalizer, cfg.Math.LabelNormalizer,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// runMode is the common body of scan, render and check.
func runMode(cmd *cobra.Command, args []string, mode runner.Mode, flags *mathFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	mathRunner, err := runner.NewFromConfig(cfg, mode)
	if err != nil {
		return fmt.Errorf("configure %s: %w", mode, err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := mathRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(fmt.Errorf("%s run failed", mode), err)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldTokens, result.Stats.TokensTotal,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if mode == runner.ModeRender && cfg.Stdout {
		if err := writeHTML(cmd, logger, result); err != nil {
			return err
		}
		return issuesError(result, cfg.Strict)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Mode:        mode,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return issuesError(result, cfg.Strict)
}

// writeHTML prints rendered documents in path order. Files that failed are
// logged and skipped; renderer faults are logged so the exit status has a
// visible cause.
func writeHTML(cmd *cobra.Command, logger *log.Logger, result *runner.Result) error {
	out := cmd.OutOrStdout()
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("render failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		for _, diag := range outcome.Diagnostics {
			logger.Error(diag.Message,
				logging.FieldPath, outcome.Path,
				logging.FieldLine, diag.StartLine,
				logging.FieldRule, diag.Rule,
			)
		}
		if _, err := out.Write(outcome.HTML); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	return nil
}
