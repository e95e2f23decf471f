package dollarmath_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/source"
)

func scanBlock(src string, win dollarmath.Window, opts dollarmath.Options) (dollarmath.BlockMatch, bool) {
	content := []byte(src)
	lines := source.BuildLines(content)
	if win.EndLine == 0 {
		win.EndLine = lines.Len()
	}
	return dollarmath.ScanBlock(content, lines, win, opts)
}

func TestScanBlock(t *testing.T) {
	t.Parallel()

	noLabels := dollarmath.DefaultOptions()
	noLabels.AllowLabels = false

	noBlank := dollarmath.DefaultOptions()
	noBlank.AllowBlankLines = false

	tests := []struct {
		name   string
		src    string
		win    dollarmath.Window
		opts   dollarmath.Options
		want   dollarmath.Token
		wantOK bool
		next   int
	}{
		{
			name: "labeled multi-line",
			src:  "$$\na\n$$ (label)",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlockLabeled, Content: "\na\n", Label: "label", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 15},
				Lines: dollarmath.LineRange{Start: 0, End: 3},
			},
			wantOK: true,
			next:   3,
		},
		{
			name: "single line",
			src:  "$$a=1$$",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlock, Content: "a=1", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 7},
				Lines: dollarmath.LineRange{Start: 0, End: 1},
			},
			wantOK: true,
			next:   1,
		},
		{
			name: "single line with label",
			src:  "$$a$$ (eq 1)\nnext",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlockLabeled, Content: "a", Label: "eq-1", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 12},
				Lines: dollarmath.LineRange{Start: 0, End: 1},
			},
			wantOK: true,
			next:   1,
		},
		{
			name: "trailing whitespace excluded",
			src:  "$$ a $$  ",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlock, Content: " a ", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 9},
				Lines: dollarmath.LineRange{Start: 0, End: 1},
			},
			wantOK: true,
			next:   1,
		},
		{
			name: "closer after content on last line",
			src:  "$$\na\nb $$\ntail",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlock, Content: "\na\nb ", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 9},
				Lines: dollarmath.LineRange{Start: 0, End: 3},
			},
			wantOK: true,
			next:   3,
		},
		{
			name: "escaped closer skipped",
			src:  "$$\n\\$$\n$$",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlock, Content: "\n\\$$\n", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 9},
				Lines: dollarmath.LineRange{Start: 0, End: 3},
			},
			wantOK: true,
			next:   3,
		},
		{
			name: "blank lines allowed",
			src:  "$$\na\n\nb\n$$",
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlock, Content: "\na\n\nb\n", Markup: "$$",
				Span:  source.Range{StartOffset: 0, EndOffset: 10},
				Lines: dollarmath.LineRange{Start: 0, End: 5},
			},
			wantOK: true,
			next:   5,
		},
		{
			name: "indented within container",
			src:  "    $$a$$",
			win:  dollarmath.Window{BlockIndent: 4},
			opts: dollarmath.DefaultOptions(),
			want: dollarmath.Token{
				Kind: dollarmath.KindBlock, Content: "a", Markup: "$$",
				Span:  source.Range{StartOffset: 4, EndOffset: 9},
				Lines: dollarmath.LineRange{Start: 0, End: 1},
			},
			wantOK: true,
			next:   1,
		},
		{name: "unclosed", src: "$$\na\n", opts: dollarmath.DefaultOptions()},
		{name: "label not at line end", src: "$$a$$ (lbl) trailing text", opts: dollarmath.DefaultOptions()},
		{name: "code indentation", src: "    $$a$$", opts: dollarmath.DefaultOptions()},
		{name: "empty content", src: "$$$$", opts: dollarmath.DefaultOptions()},
		{name: "label only on opening line", src: "$$ (eq1)", opts: dollarmath.DefaultOptions()},
		{name: "not an opener", src: "a$$\n$$", opts: dollarmath.DefaultOptions()},
		{name: "single dollar", src: "$a$", opts: dollarmath.DefaultOptions()},
		{name: "labels disabled", src: "$$\na\n$$ (label)", opts: noLabels},
		{name: "blank line aborts", src: "$$\na\n\nb\n$$", opts: noBlank},
		{name: "closer outside window", src: "$$\na\n$$", win: dollarmath.Window{EndLine: 2}, opts: dollarmath.DefaultOptions()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, ok := scanBlock(tt.src, tt.win, tt.opts)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			if diff := cmp.Diff(tt.want, match.Token); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.next, match.NextLine)
		})
	}
}

func TestScanBlock_UnclosedIsIdempotent(t *testing.T) {
	t.Parallel()

	src := "$$\nx + y\n\nmore text\n"
	for range 3 {
		_, ok := scanBlock(src, dollarmath.Window{}, dollarmath.DefaultOptions())
		assert.False(t, ok)
	}
}

func TestExamineBlock_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want dollarmath.BlockOutcome
	}{
		{src: "$$x$$", want: dollarmath.BlockMatched},
		{src: "$$\nx\n$$ (eq1)", want: dollarmath.BlockMatched},
		{src: "plain text", want: dollarmath.BlockNoOpener},
		{src: "$x$", want: dollarmath.BlockNoOpener},
		{src: "    $$x$$", want: dollarmath.BlockNoOpener},
		{src: "$$\nx + y", want: dollarmath.BlockUnclosed},
		{src: "$$", want: dollarmath.BlockUnclosed},
		{src: "$$$$", want: dollarmath.BlockEmpty},
		{src: "$$ (eq1)", want: dollarmath.BlockEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			content := []byte(tt.src)
			lines := source.BuildLines(content)
			win := dollarmath.Window{EndLine: lines.Len()}
			match, outcome := dollarmath.ExamineBlock(content, lines, win, dollarmath.DefaultOptions())
			assert.Equal(t, tt.want, outcome, outcome.String())

			_, ok := dollarmath.ScanBlock(content, lines, win, dollarmath.DefaultOptions())
			assert.Equal(t, outcome == dollarmath.BlockMatched, ok)
			if outcome != dollarmath.BlockMatched {
				assert.Equal(t, dollarmath.BlockMatch{}, match)
			}
		})
	}
}

func TestScanBlock_StartsMidDocument(t *testing.T) {
	t.Parallel()

	src := "para\n\n$$\nx\n$$\nafter"
	match, ok := scanBlock(src, dollarmath.Window{StartLine: 2}, dollarmath.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, "\nx\n", match.Token.Content)
	assert.Equal(t, dollarmath.LineRange{Start: 2, End: 5}, match.Token.Lines)
	assert.Equal(t, 5, match.NextLine)
	assert.Equal(t, "$$\nx\n$$", src[match.Token.Span.StartOffset:match.Token.Span.EndOffset])
}

func TestScanBlock_NormalizerApplied(t *testing.T) {
	t.Parallel()

	opts := dollarmath.DefaultOptions()
	opts.LabelNormalizer = strings.ToUpper
	match, ok := scanBlock("$$x$$ (my label)", dollarmath.Window{}, opts)
	require.True(t, ok)
	assert.Equal(t, "MY LABEL", match.Token.Label)
	assert.True(t, match.Token.HasLabel())

	opts.LabelNormalizer = func(string) string { return "" }
	match, ok = scanBlock("$$x$$ (my label)", dollarmath.Window{}, opts)
	require.True(t, ok)
	assert.Equal(t, dollarmath.KindBlock, match.Token.Kind)
	assert.Empty(t, match.Token.Label)
}

func TestScanBlock_OutOfRangeWindow(t *testing.T) {
	t.Parallel()

	_, ok := scanBlock("$$a$$", dollarmath.Window{StartLine: 3, EndLine: 5}, dollarmath.DefaultOptions())
	assert.False(t, ok)
	_, ok = scanBlock("", dollarmath.Window{EndLine: 1}, dollarmath.DefaultOptions())
	assert.False(t, ok)
}
