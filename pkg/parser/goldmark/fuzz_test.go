package goldmark

import (
	"bytes"
	"context"
	"testing"
)

// FuzzParse fuzzes the full parser with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"$x$",
		"$$x$$",
		"$$\nx\n$$",
		"$$\nx\n$$ (eq 1)",
		"$$ a $$ (label)\ntext",
		"a $b\nc$ d",
		"\\$x$ and \\\\$y$",
		"> $$\n> x\n> $$",
		"- $$\n  x\n  $$",
		"```\n$$\n```",
		"`$x$`",
		"$$\n\n$$",
		"$$$$",
		"1$2$3",
		"$\t$",
		"line1\r\n$$\r\nx\r\n$$\r\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorGFM)

		// Parse should never panic.
		doc, err := p.Parse(ctx, "fuzz.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if !bytes.Equal(doc.Snapshot.Content, data) {
			t.Error("content mismatch")
		}

		// Tokens are ordered, non-overlapping and inside the content.
		prevEnd := 0
		for i, tok := range doc.Math {
			if tok.Span.StartOffset < prevEnd {
				t.Errorf("token %d overlaps its predecessor: %+v", i, tok.Span)
			}
			if tok.Span.EndOffset > len(data) || tok.Span.IsEmpty() {
				t.Errorf("token %d has an invalid span: %+v", i, tok.Span)
			}
			if tok.Content == "" {
				t.Errorf("token %d has empty content", i)
			}
			prevEnd = tok.Span.EndOffset
		}

		var out bytes.Buffer
		if err := p.Render(&out, doc); err != nil {
			t.Errorf("Render() error = %v", err)
		}
	})
}

// FuzzParseDeterministic verifies that parsing is deterministic.
func FuzzParseDeterministic(f *testing.F) {
	seeds := []string{
		"$x$ and $$y$$",
		"$$\na\n$$ (b)",
		"> $a\n> b$",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorCommonMark)

		d1, err1 := p.Parse(ctx, "test.md", data)
		d2, err2 := p.Parse(ctx, "test.md", data)
		if err1 != nil || err2 != nil {
			t.Fatalf("Parse() errors = %v, %v", err1, err2)
		}

		if len(d1.Math) != len(d2.Math) {
			t.Fatalf("token count mismatch: %d vs %d", len(d1.Math), len(d2.Math))
		}
		for i := range d1.Math {
			if d1.Math[i] != d2.Math[i] {
				t.Errorf("token %d differs: %+v vs %+v", i, d1.Math[i], d2.Math[i])
			}
		}
	})
}
