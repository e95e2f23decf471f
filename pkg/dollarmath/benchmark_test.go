package dollarmath_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/source"
)

func BenchmarkScanInline(b *testing.B) {
	src := []byte(`$\sum_{i=0}^{n} i = \frac{n(n+1)}{2}$ and more text`)
	opts := dollarmath.DefaultOptions()
	b.ResetTimer()
	for range b.N {
		dollarmath.ScanInline(src, 0, opts)
	}
}

func BenchmarkScanInlineEscapedRun(b *testing.B) {
	src := []byte("$" + strings.Repeat(`a\$`, 200) + "$")
	opts := dollarmath.DefaultOptions()
	b.ResetTimer()
	for range b.N {
		dollarmath.ScanInline(src, 0, opts)
	}
}

func BenchmarkScanBlock(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("$$\n")
	for range 50 {
		buf.WriteString(`x_{i} + y^{2} = z \\` + "\n")
	}
	buf.WriteString("$$ (big equation)\n")
	src := buf.Bytes()
	lines := source.BuildLines(src)
	win := dollarmath.Window{EndLine: lines.Len()}
	opts := dollarmath.DefaultOptions()
	b.ResetTimer()
	for range b.N {
		dollarmath.ScanBlock(src, lines, win, opts)
	}
}

func BenchmarkScanBlockUnclosed(b *testing.B) {
	src := []byte("$$\n" + strings.Repeat("x + y\n", 500))
	lines := source.BuildLines(src)
	win := dollarmath.Window{EndLine: lines.Len()}
	opts := dollarmath.DefaultOptions()
	b.ResetTimer()
	for range b.N {
		dollarmath.ScanBlock(src, lines, win, opts)
	}
}
