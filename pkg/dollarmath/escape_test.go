package dollarmath_test

import (
	"testing"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

func TestIsEscaped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		pos  int
		want bool
	}{
		{"no backslash", "a$", 1, false},
		{"start of buffer", "$", 0, false},
		{"one backslash", `\$`, 1, true},
		{"two backslashes", `\\$`, 2, false},
		{"three backslashes", `\\\$`, 3, true},
		{"backslash not adjacent", `\a$`, 2, false},
		{"position past end", `a\`, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := dollarmath.IsEscaped([]byte(tt.src), tt.pos); got != tt.want {
				t.Errorf("IsEscaped(%q, %d) = %v, want %v", tt.src, tt.pos, got, tt.want)
			}
		})
	}
}
