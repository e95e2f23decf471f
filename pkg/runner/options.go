// Package runner provides multi-file math processing.
package runner

import "github.com/yaklabco/mdmath/pkg/config"

// Options controls multi-file processing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Empty means any extension go-enry maps to Markdown.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include every Markdown file".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// IncludeVendored disables skipping of vendored directories such as
	// node_modules when walking.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// OutDir is where rendered HTML goes in ModeRender.
	// Empty writes next to each source file.
	OutDir string

	// Stdout keeps rendered HTML in the outcome instead of writing files.
	Stdout bool
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		return Options{Paths: paths}
	}
	return Options{
		Paths:        paths,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutDir:       cfg.Render.OutDir,
		Stdout:       cfg.Stdout,
	}
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
