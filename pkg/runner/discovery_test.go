package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/runner"
)

// writeTree creates files under dir, each with the given content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func abs(dir string, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.Join(dir, filepath.FromSlash(n)))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"readme.md": "# Test"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"readme.md"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "readme.md"), files)
}

func TestDiscover_MarkdownByLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":         "",
		"docs/guide.md":     "",
		"docs/api.markdown": "",
		"docs/notes.mkd":    "",
		"src/main.go":       "",
		"notes.txt":         "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "docs/api.markdown", "docs/guide.md", "docs/notes.mkd", "readme.md"), files)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "", "b.txt": "", "c.markdown": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "b.txt"), files)
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":         "",
		"drafts/a.md":       "",
		"docs/guide.md":     "",
		"docs/CHANGELOG.md": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"drafts/**", "CHANGELOG.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "docs/guide.md", "readme.md"), files)

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"docs/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "docs/CHANGELOG.md", "docs/guide.md"), files)
}

func TestDiscover_SkipsHiddenAndVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":                  "",
		".github/issue.md":           "",
		".hidden.md":                 "",
		"node_modules/pkg/readme.md": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "readme.md"), files)

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:      dir,
		IncludeVendored: true,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "node_modules/pkg/readme.md", "readme.md"), files)
}

func TestDiscover_VendoredRootIsWalked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"node_modules/pkg/readme.md": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"node_modules"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "node_modules/pkg/readme.md"), files)
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "", "docs/b.md": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.md", "docs", "docs/b.md"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.md", "docs/b.md"), files)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.md")
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": ""})
	writeTree(t, target, map[string]string{"linked.md": ""})
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.md"), files)

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
