package check_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/check"
	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/parser/goldmark"
)

func parse(t *testing.T, content string) *goldmark.Document {
	t.Helper()

	doc, err := goldmark.New(goldmark.FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)
	return doc
}

func TestDocument_Clean(t *testing.T) {
	t.Parallel()

	doc := parse(t, "a $x$ b\n\n$$\ny\n$$ (eq)\n")
	assert.Empty(t, check.Document(doc, check.Options{}))
}

func TestDocument_UnclosedBlock(t *testing.T) {
	t.Parallel()

	doc := parse(t, "intro\n\n$$\nx = 1\n")
	diags := check.Document(doc, check.Options{})

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, check.RuleUnclosedBlock, d.Rule)
	assert.Equal(t, config.SeverityError, d.Severity)
	assert.Equal(t, "doc.md", d.FilePath)
	assert.Equal(t, 3, d.StartLine)
	assert.Equal(t, 1, d.StartColumn)
	assert.NotEmpty(t, d.Suggestion)
}

func TestDocument_EmptyBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "four dollars", content: "$$$$\n"},
		{name: "spaced delimiters", content: "$$ $$\n"},
		{name: "label only", content: "$$ (eq1)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := check.Document(parse(t, tt.content), check.Options{})
			require.Len(t, diags, 1)
			assert.Equal(t, check.RuleEmptyMath, diags[0].Rule)
			assert.Equal(t, config.SeverityWarning, diags[0].Severity)
			assert.Equal(t, 1, diags[0].StartLine)

			errs, warnings := check.Count(diags)
			assert.Zero(t, errs)
			assert.Equal(t, 1, warnings)
		})
	}
}

func TestDocument_DoubleInlineIsNotUnclosed(t *testing.T) {
	t.Parallel()

	doc := parse(t, "$$a$$ and more\n")
	require.Len(t, doc.Math, 1)
	assert.Empty(t, check.Document(doc, check.Options{}))
}

func TestDocument_EmptyMath(t *testing.T) {
	t.Parallel()

	doc := parse(t, "a $ $ b\n")
	diags := check.Document(doc, check.Options{DefaultSeverity: config.SeverityInfo})

	require.Len(t, diags, 1)
	assert.Equal(t, check.RuleEmptyMath, diags[0].Rule)
	assert.Equal(t, config.SeverityInfo, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "math_inline")
}

func TestDocument_RenderError(t *testing.T) {
	t.Parallel()

	bridge := dollarmath.Bridge{
		Math: func(content string, _ bool) (string, error) {
			if content == `\bad` {
				return "", errors.New("undefined control sequence")
			}
			return content, nil
		},
	}

	doc := parse(t, "ok $x$\n\nnot ok $\\bad$\n")
	diags := check.Document(doc, check.Options{Bridge: bridge})

	require.Len(t, diags, 1)
	assert.Equal(t, check.RuleRenderError, diags[0].Rule)
	assert.Equal(t, 3, diags[0].StartLine)
	assert.Equal(t, 8, diags[0].StartColumn)
	assert.Contains(t, diags[0].Message, "undefined control sequence")
}

func TestCount(t *testing.T) {
	t.Parallel()

	errs, warns := check.Count([]check.Diagnostic{
		{Severity: config.SeverityError},
		{Severity: config.SeverityWarning},
		{Severity: config.SeverityWarning},
		{Severity: config.SeverityInfo},
	})
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warns)
}
