package dollarmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

func strictOptions() dollarmath.Options {
	opts := dollarmath.DefaultOptions()
	opts.AllowSpace = false
	opts.AllowDigits = false
	return opts
}

func TestScanInline(t *testing.T) {
	t.Parallel()

	noDouble := dollarmath.DefaultOptions()
	noDouble.DoubleInline = false

	tests := []struct {
		name        string
		src         string
		pos         int
		opts        dollarmath.Options
		wantOK      bool
		wantContent string
		wantKind    dollarmath.Kind
		wantNext    int
	}{
		{"single", "$x$", 0, dollarmath.DefaultOptions(), true, "x", dollarmath.KindInline, 3},
		{"double", "$$x$$", 0, dollarmath.DefaultOptions(), true, "x", dollarmath.KindInlineDisplay, 5},
		{"empty double", "$$$$", 0, dollarmath.DefaultOptions(), false, "", 0, 0},
		{"empty single without double", "$$", 0, noDouble, false, "", 0, 0},
		{"unterminated", "$a", 0, dollarmath.DefaultOptions(), false, "", 0, 0},
		{"not a dollar", "a$b$", 0, dollarmath.DefaultOptions(), false, "", 0, 0},
		{"escaped opener", `\$a$`, 1, dollarmath.DefaultOptions(), false, "", 0, 0},
		{"double backslash opener", `\\$a$`, 2, dollarmath.DefaultOptions(), true, "a", dollarmath.KindInline, 5},
		{"escaped closer skipped", `$a\$b$`, 0, dollarmath.DefaultOptions(), true, `a\$b`, dollarmath.KindInline, 6},
		{"double with inner single", "$$a$b$$", 0, dollarmath.DefaultOptions(), true, "a$b", dollarmath.KindInlineDisplay, 7},
		{"double disabled closes early", "$$x$$", 0, noDouble, false, "", 0, 0},
		{"leftmost closer", "$a$ $b$", 0, dollarmath.DefaultOptions(), true, "a", dollarmath.KindInline, 3},
		{"second span", "$a$ $b$", 4, dollarmath.DefaultOptions(), true, "b", dollarmath.KindInline, 7},
		{"spans lines", "$a\nb$", 0, dollarmath.DefaultOptions(), true, "a\nb", dollarmath.KindInline, 5},
		{"space allowed", "$ a$", 0, dollarmath.DefaultOptions(), true, " a", dollarmath.KindInline, 4},
		{"space after opener rejected", "$ a$", 0, strictOptions(), false, "", 0, 0},
		{"space before closer rejected", "$a $", 0, strictOptions(), false, "", 0, 0},
		{"digit allowed", "1$x$", 1, dollarmath.DefaultOptions(), true, "x", dollarmath.KindInline, 4},
		{"digit before opener rejected", "1$x$", 1, strictOptions(), false, "", 0, 0},
		{"digit after closer rejected", "$x$2", 0, strictOptions(), false, "", 0, 0},
		{"digit inside is fine", "$1+2$", 0, strictOptions(), true, "1+2", dollarmath.KindInline, 5},
		{"first closer decides", "$a$1 $b$", 0, strictOptions(), false, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, ok := dollarmath.ScanInline([]byte(tt.src), tt.pos, tt.opts)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, dollarmath.InlineMatch{}, match)
				return
			}
			assert.Equal(t, tt.wantContent, match.Token.Content)
			assert.Equal(t, tt.wantKind, match.Token.Kind)
			assert.Equal(t, tt.wantNext, match.Next)
			assert.Equal(t, tt.pos, match.Token.Span.StartOffset)
			assert.Equal(t, tt.wantNext, match.Token.Span.EndOffset)
		})
	}
}

func TestScanInline_AdvancesByContentPlusDelimiters(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"x", "a+b", `\alpha`, "e^{i\\pi}+1=0", "a b c", "1"} {
		src := []byte("$" + content + "$")
		match, ok := dollarmath.ScanInline(src, 0, dollarmath.DefaultOptions())
		require.True(t, ok, content)
		assert.Equal(t, content, match.Token.Content)
		assert.Equal(t, len(content)+2, match.Next)
		assert.False(t, match.Token.Display())
		assert.Equal(t, dollarmath.MarkupSingle, match.Token.Markup)

		double := []byte("$$" + content + "$$")
		match, ok = dollarmath.ScanInline(double, 0, dollarmath.DefaultOptions())
		require.True(t, ok, content)
		assert.Equal(t, content, match.Token.Content)
		assert.True(t, match.Token.Display())
		assert.Equal(t, dollarmath.MarkupDouble, match.Token.Markup)
	}
}

func TestScanInline_OutOfRange(t *testing.T) {
	t.Parallel()

	_, ok := dollarmath.ScanInline([]byte("$a$"), -1, dollarmath.DefaultOptions())
	assert.False(t, ok)
	_, ok = dollarmath.ScanInline([]byte("$a$"), 3, dollarmath.DefaultOptions())
	assert.False(t, ok)
	_, ok = dollarmath.ScanInline(nil, 0, dollarmath.DefaultOptions())
	assert.False(t, ok)
}
