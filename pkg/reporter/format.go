package reporter

import (
	"fmt"

	"github.com/yaklabco/mdmath/pkg/config"
)

// Format is the output format of a report. It shares its values with the
// configuration so a resolved config selects a reporter directly.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText  = config.FormatText
	FormatTable = config.FormatTable
	FormatJSON  = config.FormatJSON
)

// ParseFormat parses a format name. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, table, json", name)
}
