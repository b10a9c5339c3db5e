// Package transform provides implementations for transform modules.
// This file implements the "replace" transform module for regexp-based
// substitution.
package transform

import (
	"fmt"
	"regexp"
)

// ReplaceConfig represents the configuration for a replace transform module.
type ReplaceConfig struct {
	// Pattern is the regular expression to match (required)
	Pattern string `json:"pattern"`
	// Replacement is the replacement text; $1-style group references are
	// expanded
	Replacement string `json:"replacement"`
}

// ReplaceModule implements the replace transform. The pattern is compiled
// once at build time so invalid expressions fail before any line is read.
type ReplaceModule struct {
	re          *regexp.Regexp
	replacement string
}

// NewReplaceFromConfig creates a new replace transform module from configuration.
func NewReplaceFromConfig(config ReplaceConfig) (*ReplaceModule, error) {
	if config.Pattern == "" {
		return nil, fmt.Errorf("replace transform: 'pattern' is required")
	}
	re, err := regexp.Compile(config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("replace transform: invalid pattern %q: %w", config.Pattern, err)
	}
	return &ReplaceModule{re: re, replacement: config.Replacement}, nil
}

// ParseReplaceConfig parses a raw configuration map into ReplaceConfig.
func ParseReplaceConfig(cfg map[string]interface{}) (ReplaceConfig, error) {
	config := ReplaceConfig{}

	pattern, ok := cfg["pattern"].(string)
	if !ok || pattern == "" {
		return config, fmt.Errorf("replace transform: 'pattern' is required and must be a string")
	}
	config.Pattern = pattern

	if replacement, ok := cfg["replacement"]; ok {
		s, ok := replacement.(string)
		if !ok {
			return config, fmt.Errorf("replace transform: 'replacement' must be a string, got %T", replacement)
		}
		config.Replacement = s
	}

	return config, nil
}

// Apply implements the transform.Module interface.
func (m *ReplaceModule) Apply(line string) (string, error) {
	return m.re.ReplaceAllString(line, m.replacement), nil
}

// Verify ReplaceModule implements Module
var _ Module = (*ReplaceModule)(nil)
