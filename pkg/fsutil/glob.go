package fsutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// GlobSet matches slash-separated relative paths against ignore or include
// patterns. `*` stays inside one path segment and `**` crosses segments.
// A pattern without a slash also matches the base name, so "CHANGELOG.md"
// matches at any depth.
type GlobSet struct {
	globs []compiledGlob
}

type compiledGlob struct {
	pattern  string
	matcher  glob.Glob
	baseOnly bool
}

// CompileGlobs compiles every pattern. An empty set matches nothing.
func CompileGlobs(patterns []string) (*GlobSet, error) {
	set := &GlobSet{}
	for _, pattern := range patterns {
		if err := set.add(pattern); err != nil {
			return nil, err
		}
		// "**/x" should also match x at the top level.
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			if err := set.add(rest); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// ValidateGlob reports whether pattern compiles.
func ValidateGlob(pattern string) error {
	_, err := CompileGlobs([]string{pattern})
	return err
}

func (s *GlobSet) add(pattern string) error {
	normalized := filepath.ToSlash(pattern)
	matcher, err := glob.Compile(normalized, '/')
	if err != nil {
		return fmt.Errorf("compile glob %q: %w", pattern, err)
	}
	s.globs = append(s.globs, compiledGlob{
		pattern:  pattern,
		matcher:  matcher,
		baseOnly: !strings.Contains(normalized, "/"),
	})
	return nil
}

// Len returns the number of compiled patterns.
func (s *GlobSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.globs)
}

// Match reports whether the file at relPath matches any pattern.
func (s *GlobSet) Match(relPath string) bool {
	if s == nil {
		return false
	}
	path := filepath.ToSlash(relPath)
	base := path[strings.LastIndexByte(path, '/')+1:]
	for _, g := range s.globs {
		if g.matcher.Match(path) || (g.baseOnly && g.matcher.Match(base)) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the directory at relPath matches, either itself
// or as a prefix pattern such as "vendor/**".
func (s *GlobSet) MatchDir(relPath string) bool {
	if s == nil {
		return false
	}
	if s.Match(relPath) {
		return true
	}
	dir := filepath.ToSlash(relPath) + "/"
	for _, g := range s.globs {
		if g.matcher.Match(dir) {
			return true
		}
	}
	return false
}
