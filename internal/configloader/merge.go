package configloader

import "github.com/yaklabco/mdmath/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can win
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Strict and Stdout only come from the CLI, where false means unset.
	if override.Strict {
		result.Strict = true
	}
	if override.Stdout {
		result.Stdout = true
	}

	result.Math = mergeMath(base.Math, override.Math)

	if override.Render.Renderer != "" {
		result.Render.Renderer = override.Render.Renderer
	}
	if override.Render.OutDir != "" {
		result.Render.OutDir = override.Render.OutDir
	}
	if override.Render.InlineTag != "" {
		result.Render.InlineTag = override.Render.InlineTag
	}
	if override.Render.BlockTag != "" {
		result.Render.BlockTag = override.Render.BlockTag
	}
	if override.Render.Class != "" {
		result.Render.Class = override.Render.Class
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeMath merges the math sections field by field.
func mergeMath(base, override config.MathConfig) config.MathConfig {
	result := base
	pick := func(dst **bool, src *bool) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	pick(&result.AllowSpace, override.AllowSpace)
	pick(&result.AllowDigits, override.AllowDigits)
	pick(&result.DoubleInline, override.DoubleInline)
	pick(&result.AllowLabels, override.AllowLabels)
	pick(&result.AllowBlankLines, override.AllowBlankLines)
	if override.LabelNormalizer != "" {
		result.LabelNormalizer = override.LabelNormalizer
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
