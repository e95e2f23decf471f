package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/mdmath/pkg/fsutil"
)

// markdownLanguage is the go-enry language name for Markdown.
const markdownLanguage = "Markdown"

// Discover finds the Markdown files named by opts.Paths, walking
// directories. It returns sorted, de-duplicated absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w, err := newWalker(ctx, workDir, opts)
	if err != nil {
		return nil, err
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			// Explicit files only need to pass the filters, not the hidden
			// or vendored directory rules.
			if w.accepts(path) {
				w.add(path)
			}
			continue
		}
		if err := w.walk(path); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker collects files for one Discover call.
type walker struct {
	ctx     context.Context //nolint:containedctx // Lives for one Discover call.
	workDir string
	opts    Options
	exclude *fsutil.GlobSet
	include *fsutil.GlobSet
	seen    map[string]struct{}
	files   []string
}

func newWalker(ctx context.Context, workDir string, opts Options) (*walker, error) {
	exclude, err := fsutil.CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	include, err := fsutil.CompileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	return &walker{
		ctx:     ctx,
		workDir: workDir,
		opts:    opts,
		exclude: exclude,
		include: include,
		seen:    make(map[string]struct{}),
	}, nil
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory for glob matching.
func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walk adds every accepted file under root. Directory symlinks are walked
// through their target, and only when FollowSymlinks is set.
func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && w.skipDir(root, path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, isDir := resolveSymlink(path)
			if target == "" {
				return nil
			}
			if isDir {
				if !w.opts.FollowSymlinks {
					return nil
				}
				return w.walk(target)
			}
		}

		if w.accepts(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// skipDir reports whether a directory below the walk root is pruned:
// hidden, excluded, or vendored per go-enry.
func (w *walker) skipDir(root, path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if w.exclude.MatchDir(w.rel(path)) {
		return true
	}
	return !w.opts.IncludeVendored && isVendored(root, path)
}

// accepts applies the extension and glob filters to a file.
func (w *walker) accepts(path string) bool {
	if !hasMatchingExtension(path, w.opts.Extensions) {
		return false
	}
	rel := w.rel(path)
	if w.exclude.Match(rel) {
		return false
	}
	return w.include.Len() == 0 || w.include.Match(rel)
}

// resolveSymlink returns the symlink target and whether it is a directory.
// Broken or unreadable links yield an empty target.
func resolveSymlink(path string) (string, bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", false
	}
	return target, info.IsDir()
}

// hasMatchingExtension checks the file extension. With no extensions
// configured, any extension go-enry maps to Markdown matches.
func hasMatchingExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return slices.Contains(enry.GetLanguagesByExtension(path, nil, nil), markdownLanguage)
	}

	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// isVendored reports whether a directory below root holds vendored
// dependencies according to go-enry.
func isVendored(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return enry.IsVendor(filepath.ToSlash(rel) + "/")
}
