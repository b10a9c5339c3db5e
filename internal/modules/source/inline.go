// Package source provides implementations for source modules.
// This file implements the "inline" source module for lines supplied
// directly in the pipeline configuration.
package source

import (
	"context"
	"fmt"

	"github.com/lineflow/runtime/pkg/stream"
)

// InlineConfig represents the configuration for an inline source module.
type InlineConfig struct {
	// Lines are the lines to stream, in order
	Lines []string `json:"lines"`
}

// InlineModule implements a source that streams lines from configuration.
type InlineModule struct {
	config InlineConfig
}

// NewInlineFromConfig creates a new inline source module from configuration.
func NewInlineFromConfig(config InlineConfig) (*InlineModule, error) {
	return &InlineModule{config: config}, nil
}

// ParseInlineConfig parses a raw configuration map into InlineConfig.
// The "lines" field is required and must be an array of strings.
func ParseInlineConfig(cfg map[string]interface{}) (InlineConfig, error) {
	config := InlineConfig{}

	raw, ok := cfg["lines"]
	if !ok {
		return config, fmt.Errorf("inline source: 'lines' is required")
	}
	items, ok := raw.([]interface{})
	if !ok {
		return config, fmt.Errorf("inline source: 'lines' must be an array, got %T", raw)
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return config, fmt.Errorf("inline source: line %d must be a string, got %T", i, item)
		}
		lines = append(lines, s)
	}
	config.Lines = lines

	return config, nil
}

// Open returns a line source over the configured lines.
func (m *InlineModule) Open(ctx context.Context) (stream.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return stream.NewSliceSource(m.config.Lines), nil
}

// Close releases resources (no-op for inline).
func (m *InlineModule) Close() error {
	return nil
}

// Verify InlineModule implements Module
var _ Module = (*InlineModule)(nil)
