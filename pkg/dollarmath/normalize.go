package dollarmath

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownNormalizer is returned for a normalizer name that is not registered.
var ErrUnknownNormalizer = errors.New("unknown label normalizer")

// Normalizer names accepted by LookupNormalizer.
const (
	NormalizerHyphen = "hyphen"
	NormalizerSlug   = "slug"
	NormalizerNone   = "none"
)

//nolint:gochecknoglobals // Read-only lookup table.
var normalizers = map[string]func(string) string{
	NormalizerHyphen: HyphenateLabel,
	NormalizerSlug:   SlugifyLabel,
	NormalizerNone:   IdentityLabel,
}

// LookupNormalizer returns the label normalizer registered under name.
// An empty name selects the default (hyphen).
func LookupNormalizer(name string) (func(string) string, error) {
	if name == "" {
		return HyphenateLabel, nil
	}
	fn, ok := normalizers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownNormalizer, name,
			strings.Join(NormalizerNames(), ", "))
	}
	return fn, nil
}

// NormalizerNames returns the registered normalizer names in sorted order.
func NormalizerNames() []string {
	names := make([]string, 0, len(normalizers))
	for name := range normalizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HyphenateLabel collapses every run of whitespace into a single hyphen.
// It is the default normalizer.
func HyphenateLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	inSpace := false
	for _, r := range label {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// IdentityLabel returns the label unchanged.
func IdentityLabel(label string) string {
	return label
}

// SlugifyLabel produces an anchor-friendly label: diacritics stripped,
// lowercased, whitespace hyphenated, and anything other than letters, digits,
// '-', '_', '.' and ':' dropped.
func SlugifyLabel(label string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}
	folded = cases.Lower(language.Und).String(folded)

	hyphenated := HyphenateLabel(strings.TrimSpace(folded))
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '-', r == '_', r == '.', r == ':':
			return r
		default:
			return -1
		}
	}, hyphenated)
}
