package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdmath/pkg/config"
)

// envVarPrefix is the prefix for all mdmath environment variables.
const envVarPrefix = "MDMATH_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":            {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"SEVERITY_DEFAULT":  {"severity_default", envTypeString, "Default severity: error, warning, or info"},
	"FORMAT":            {"format", envTypeString, "Output format: text, table, or json"},
	"JOBS":              {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"STRICT":            {"strict", envTypeBool, "Fail check on warnings: true or false"},
	"IGNORE":            {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"ALLOW_SPACE":       {"math.allow_space", envTypeBool, "Allow whitespace inside inline delimiters"},
	"ALLOW_DIGITS":      {"math.allow_digits", envTypeBool, "Allow digits outside inline delimiters"},
	"DOUBLE_INLINE":     {"math.double_inline", envTypeBool, "Parse $$...$$ inside paragraphs"},
	"ALLOW_LABELS":      {"math.allow_labels", envTypeBool, "Allow (label) after a closing $$"},
	"ALLOW_BLANK_LINES": {"math.allow_blank_lines", envTypeBool, "Allow blank lines inside $$ blocks"},
	"LABEL_NORMALIZER":  {"math.label_normalizer", envTypeString, "Label normalizer: hyphen, slug, or none"},
	"RENDERER":          {"render.renderer", envTypeString, "Math renderer: placeholder or mathjax"},
	"OUT_DIR":           {"render.out_dir", envTypeString, "Directory for rendered HTML"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDMATH_ (e.g., MDMATH_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "severity_default":
		cfg.SeverityDefault = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "math.label_normalizer":
		cfg.Math.LabelNormalizer = value
	case "render.renderer":
		cfg.Render.Renderer = value
	case "render.out_dir":
		cfg.Render.OutDir = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "math.allow_space":
		cfg.Math.AllowSpace = config.Bool(value)
	case "math.allow_digits":
		cfg.Math.AllowDigits = config.Bool(value)
	case "math.double_inline":
		cfg.Math.DoubleInline = config.Bool(value)
	case "math.allow_labels":
		cfg.Math.AllowLabels = config.Bool(value)
	case "math.allow_blank_lines":
		cfg.Math.AllowBlankLines = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
