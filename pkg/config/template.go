package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var data []byte
	if opts.Full {
		full, err := NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
		if err != nil {
			return nil, err
		}
		data = full
	} else {
		data = []byte(minimalTemplate)
	}

	if opts.Format == "json" {
		return templateToJSON(data)
	}
	return data, nil
}

const minimalTemplate = `# mdmath configuration
# See: https://github.com/yaklabco/mdmath

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Severity for diagnostics without a fixed level: error, warning, or info
# severity_default: warning

math:
  # Allow whitespace right inside inline delimiters: $ a $
  # allow_space: true
  # Allow digits right outside inline delimiters: 1$a$
  # allow_digits: true
  # Parse $$...$$ inside paragraphs as display math
  # double_inline: true
  # Allow a (label) after the closing $$ of a block
  # allow_labels: true
  # Allow blank lines inside $$ blocks
  # allow_blank_lines: true
  # Label normalizer: hyphen, slug, or none
  label_normalizer: hyphen

render:
  # Math renderer: placeholder or mathjax
  renderer: placeholder
  # Directory for rendered HTML (default: next to each source file)
  # out_dir: site
  # Wrapper elements and class for rendered math
  # inline_tag: span
  # block_tag: div
  # class: math

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`

// templateToJSON converts a YAML template into indented JSON.
// Comments are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var cfg map[string]any
	if err := yaml.Unmarshal(yamlContent, &cfg); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdmath configuration
# See: https://github.com/yaklabco/mdmath`
}
