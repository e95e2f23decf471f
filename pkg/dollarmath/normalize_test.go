package dollarmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

func TestHyphenateLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"eq1", "eq1"},
		{"eq 1", "eq-1"},
		{"eq  \t 1 b", "eq-1-b"},
		{" a ", "-a-"},
		{"Ünïcode label", "Ünïcode-label"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dollarmath.HyphenateLabel(tt.in), tt.in)
	}
}

func TestSlugifyLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Équation Un!", "equation-un"},
		{"  Energy  (E=mc^2) ", "energy-emc2"},
		{"eq:maxwell_1.2", "eq:maxwell_1.2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dollarmath.SlugifyLabel(tt.in), tt.in)
	}
}

func TestLookupNormalizer(t *testing.T) {
	t.Parallel()

	fn, err := dollarmath.LookupNormalizer("")
	require.NoError(t, err)
	assert.Equal(t, "a-b", fn("a b"))

	fn, err = dollarmath.LookupNormalizer("NONE")
	require.NoError(t, err)
	assert.Equal(t, "a b", fn("a b"))

	_, err = dollarmath.LookupNormalizer("snake")
	require.ErrorIs(t, err, dollarmath.ErrUnknownNormalizer)
	assert.Contains(t, err.Error(), "hyphen, none, slug")
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, dollarmath.DefaultOptions().Validate())

	opts := dollarmath.DefaultOptions()
	opts.LabelNormalizer = nil
	assert.ErrorIs(t, opts.Validate(), dollarmath.ErrNilNormalizer)
}
