package goldmark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdmath/pkg/source"
)

func TestNewContainerLines_End(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		opener  int
		col     int
		wantEnd int
		nested  bool
	}{
		{
			name:    "top level spans the document",
			src:     strings.Repeat("$$a\n\n", 50),
			wantEnd: 100,
		},
		{
			name:    "blockquote ends at the first unquoted line",
			src:     "> $$\n> x\nplain\n> $$\n",
			col:     2,
			wantEnd: 2,
			nested:  true,
		},
		{
			name:    "list item ends at a dedented line",
			src:     "- $$\n  x\nout\n",
			col:     2,
			wantEnd: 2,
			nested:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.src)
			lines := source.BuildLines(src)
			start := lines.At(tt.opener).StartOffset + tt.col

			c := newContainerLines(src, lines, tt.opener, start)
			assert.Equal(t, tt.nested, c.nested())
			assert.Equal(t, tt.wantEnd, c.end)
		})
	}
}
