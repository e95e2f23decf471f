package runner

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/mdmath/internal/logging"
	"github.com/yaklabco/mdmath/pkg/check"
	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/fsutil"
	"github.com/yaklabco/mdmath/pkg/parser/goldmark"
)

// Mode selects what the runner does with each parsed document.
type Mode int

const (
	// ModeScan parses documents and collects math tokens.
	ModeScan Mode = iota

	// ModeCheck additionally runs the document checks.
	ModeCheck

	// ModeRender renders HTML. Only renderer faults are reported; grammar
	// findings are left to ModeCheck.
	ModeRender
)

// String returns the command name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeRender:
		return "render"
	default:
		return "scan"
	}
}

// Runner processes Markdown files with a shared parser.
type Runner struct {
	// Parser parses each document. It is shared by all workers.
	Parser *goldmark.Parser

	// Bridge is used by the checks to detect renderer faults.
	Bridge dollarmath.Bridge

	// Mode selects the work done per document.
	Mode Mode

	// Severity applies to diagnostics without a fixed level.
	Severity config.Severity
}

// New creates a Runner with the given parser.
func New(parser *goldmark.Parser, mode Mode) *Runner {
	return &Runner{Parser: parser, Mode: mode}
}

// NewFromConfig resolves scanner options and the renderer once and builds
// a Runner. Misconfiguration fails here, before any file is read.
func NewFromConfig(cfg *config.Config, mode Mode) (*Runner, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	scanOpts, err := cfg.Math.ScanOptions()
	if err != nil {
		return nil, err
	}
	renderer, err := cfg.Render.MathRenderer()
	if err != nil {
		return nil, err
	}

	markup := cfg.Render
	parser := goldmark.New(string(cfg.Flavor),
		goldmark.WithScanOptions(scanOpts),
		goldmark.WithMathRenderer(renderer),
		goldmark.WithMarkup(markup.InlineTag, markup.BlockTag, markup.Class),
	)

	return &Runner{
		Parser: parser,
		Bridge: dollarmath.Bridge{
			Math:      renderer,
			InlineTag: markup.InlineTag,
			BlockTag:  markup.BlockTag,
			Class:     markup.Class,
		},
		Mode:     mode,
		Severity: config.Severity(cfg.SeverityDefault),
	}, nil
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in path order regardless of completion order.
// A failure in one file is recorded on its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, workDir, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	workDir string,
	opts Options,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fileCtx := logging.WithFields(ctx, logging.FieldPath, path)
		outcome := r.ProcessFile(fileCtx, path, workDir, opts)
		if outcome.Error != nil {
			logging.FromContext(fileCtx).Debug("file failed", logging.FieldError, outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads, parses and, depending on the mode, checks and renders
// a single file.
func (r *Runner) ProcessFile(ctx context.Context, path, workDir string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	doc, err := r.Parser.Parse(ctx, path, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Document = doc

	switch r.Mode {
	case ModeCheck:
		outcome.Diagnostics = check.Document(doc, check.Options{
			Bridge:          r.Bridge,
			DefaultSeverity: r.Severity,
		})
	case ModeRender:
		outcome.Diagnostics = check.RenderFaults(doc, r.Bridge)
		if err := r.render(ctx, &outcome, info, workDir, opts); err != nil {
			outcome.Error = err
		}
	case ModeScan:
	}

	return outcome
}

// render renders the outcome's document and stores or writes the HTML.
// Output is not written when the source changed after it was read.
func (r *Runner) render(
	ctx context.Context,
	outcome *FileOutcome,
	info *fsutil.FileInfo,
	workDir string,
	opts Options,
) error {
	var buf bytes.Buffer
	if err := r.Parser.Render(&buf, outcome.Document); err != nil {
		return err
	}

	if opts.Stdout {
		outcome.HTML = buf.Bytes()
		return nil
	}

	outcome.OutputPath = OutputPath(outcome.Path, workDir, opts.OutDir)

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return err
	}
	if modified {
		return fmt.Errorf("%w: %s", fsutil.ErrModified, outcome.Path)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", outcome.OutputPath, err)
	}
	outcome.Written = written
	if written {
		logging.FromContext(ctx).Debug("wrote html", logging.FieldOutput, outcome.OutputPath)
	}
	return nil
}

// OutputPath returns where the HTML for a Markdown file is written.
// Without outDir the file sits next to its source. With outDir the path
// relative to workDir is kept; files outside workDir keep only their name.
func OutputPath(path, workDir, outDir string) string {
	name := strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	if outDir == "" {
		return name
	}

	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rel, err := filepath.Rel(workDir, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}
