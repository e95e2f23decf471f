package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       *config.Config
		wantField string
	}{
		{"defaults are valid", config.NewConfig(), ""},
		{"nil is valid", nil, ""},
		{"bad flavor", &config.Config{Flavor: "mdx"}, "flavor"},
		{"bad severity", &config.Config{SeverityDefault: "fatal"}, "severity_default"},
		{"bad format", &config.Config{Format: "sarif"}, "format"},
		{"negative jobs", &config.Config{Jobs: -1}, "jobs"},
		{"bad normalizer", &config.Config{Math: config.MathConfig{LabelNormalizer: "x"}}, "math.label_normalizer"},
		{"bad renderer", &config.Config{Render: config.RenderConfig{Renderer: "x"}}, "render.renderer"},
		{"bad glob", &config.Config{Ignore: []string{"[a"}}, "ignore[0]"},
		{"bad inline tag", &config.Config{Render: config.RenderConfig{InlineTag: `span onclick="x"`}}, "render.inline_tag"},
		{"bad block tag", &config.Config{Render: config.RenderConfig{BlockTag: "1div"}}, "render.block_tag"},
		{"custom markup", &config.Config{Render: config.RenderConfig{InlineTag: "code", BlockTag: "math-block", Class: "tex"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			if tt.wantField == "" {
				assert.True(t, result.Valid(), result.AllMessages())
				return
			}
			require.False(t, result.Valid())
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidate_SentinelErrors(t *testing.T) {
	t.Parallel()

	result := Validate(&config.Config{Render: config.RenderConfig{Renderer: "katex"}})
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, &result.Errors[0], dollarmath.ErrUnknownRenderer)
}

func TestValidate_AllFeaturesOffWarns(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Math: config.MathConfig{
		AllowBlankLines: config.Bool(false),
		AllowLabels:     config.Bool(false),
		DoubleInline:    config.Bool(false),
	}}, "cfg.yml")

	assert.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	assert.Equal(t, "cfg.yml", result.Warnings[0].FilePath)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	override := &config.Config{
		Flavor: config.FlavorGFM,
		Math:   config.MathConfig{AllowSpace: config.Bool(false)},
		Render: config.RenderConfig{OutDir: "site", Class: "tex"},
		Ignore: []string{"a/**"},
	}

	merged := MergeAll(base, override, nil)
	assert.Equal(t, config.FlavorGFM, merged.Flavor)
	assert.False(t, *merged.Math.AllowSpace)
	assert.True(t, *merged.Math.AllowDigits)
	assert.Equal(t, "placeholder", merged.Render.Renderer)
	assert.Equal(t, "site", merged.Render.OutDir)
	assert.Equal(t, "tex", merged.Render.Class)
	assert.Empty(t, merged.Render.InlineTag)
	assert.Equal(t, []string{"a/**"}, merged.Ignore)
	assert.True(t, *base.Math.AllowSpace, "merge must not mutate its inputs")

	assert.Nil(t, MergeAll())
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	assert.Equal(t, "MDMATH_ALLOW_SPACE", GetEnvVarName("math.allow_space"))
	assert.Empty(t, GetEnvVarName("nope"))
}
