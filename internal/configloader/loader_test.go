package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

// projectDir returns a temp directory that is its own VCS root, so upward
// discovery never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Empty(t, result.LoadedFrom)

	opts, err := result.Config.Math.ScanOptions()
	require.NoError(t, err)
	assert.True(t, opts.AllowSpace)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	path := filepath.Join(dir, ".mdmath.yml")
	writeFile(t, path, `
flavor: gfm
math:
  allow_digits: false
  label_normalizer: slug
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.False(t, *result.Config.Math.AllowDigits)
	assert.True(t, *result.Config.Math.AllowSpace, "defaults survive a partial math section")
	assert.Equal(t, "slug", result.Config.Math.LabelNormalizer)
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".mdmath.yaml"), "render:\n  renderer: mathjax\n")
	sub := filepath.Join(dir, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, "mathjax", result.Config.Render.Renderer)
}

func TestLoad_ProjectJSONConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".mdmath.json"), `{"flavor": "gfm", "math": {"allow_space": false}}`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.False(t, *result.Config.Math.AllowSpace)
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, "mdmath.yml"), "flavor: gfm\n")
	writeFile(t, filepath.Join(dir, ".mdmath.json"), "{}")

	found, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".mdmath.json"), found)

	// A directory named like a config file is not a config file.
	other := projectDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(other, ".mdmath.yml"), 0o755))
	found, err = FindProjectConfig(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".mdmath.yml"), "flavor: gfm\nmath:\n  allow_labels: false\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "flavor: commonmark\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.False(t, *result.Config.Math.AllowLabels)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".mdmath.yml"), "math:\n  allow_space: false\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Math:   config.MathConfig{AllowSpace: config.Bool(true)},
		Jobs:   4,
		Strict: true,
	}
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, *result.Config.Math.AllowSpace)
	assert.Equal(t, 4, result.Config.Jobs)
	assert.True(t, result.Config.Strict)
}

func TestLoad_InvalidFileValue(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	path := filepath.Join(dir, ".mdmath.yml")
	writeFile(t, path, "math:\n  label_normalizer: camel\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, path, verr.FilePath)
	assert.Equal(t, "math.label_normalizer", verr.Field)
	assert.ErrorIs(t, err, dollarmath.ErrUnknownNormalizer)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".mdmath.yml"), "math: [\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(projectDir(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Env(t *testing.T) {
	// Not parallel because it sets environment variables.
	t.Setenv("MDMATH_FLAVOR", "gfm")
	t.Setenv("MDMATH_ALLOW_BLANK_LINES", "false")
	t.Setenv("MDMATH_IGNORE", "vendor/**, drafts/*")

	opts := isolated(projectDir(t))
	opts.IgnoreEnv = false
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.False(t, *result.Config.Math.AllowBlankLines)
	assert.Equal(t, []string{"vendor/**", "drafts/*"}, result.Config.Ignore)
}

func TestLoad_EnvInvalidBool(t *testing.T) {
	t.Setenv("MDMATH_ALLOW_SPACE", "maybe")

	opts := isolated(projectDir(t))
	opts.IgnoreEnv = false
	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MDMATH_ALLOW_SPACE")
}
