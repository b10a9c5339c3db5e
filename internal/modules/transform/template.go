// Package transform provides implementations for transform modules.
// This file implements the "template" transform module for rebuilding each
// line from a template string.
package transform

import (
	"fmt"

	"github.com/lineflow/runtime/internal/template"
)

// Template variables available to the template transform.
const (
	VarLine         = "line"
	VarPipelineID   = "pipeline.id"
	VarPipelineName = "pipeline.name"
)

// TemplateConfig represents the configuration for a template transform module.
type TemplateConfig struct {
	// Template is the output line template; {{line}} expands to the
	// current line, {{pipeline.id}} and {{pipeline.name}} to pipeline
	// metadata (required)
	Template string `json:"template"`
}

// TemplateModule implements the template transform.
type TemplateModule struct {
	tmpl      string
	evaluator *template.Evaluator
	static    map[string]string
}

// NewTemplateFromConfig creates a new template transform module.
// The template is validated at build time against the allowed variables.
// Static pipeline metadata is bound once; only {{line}} varies per line.
func NewTemplateFromConfig(config TemplateConfig, pipelineID, pipelineName string) (*TemplateModule, error) {
	if config.Template == "" {
		return nil, fmt.Errorf("template transform: 'template' is required")
	}

	evaluator := template.NewEvaluator()
	allowed := map[string]bool{
		VarLine:         true,
		VarPipelineID:   true,
		VarPipelineName: true,
	}
	if err := evaluator.Validate(config.Template, allowed); err != nil {
		return nil, fmt.Errorf("template transform: %w", err)
	}

	return &TemplateModule{
		tmpl:      config.Template,
		evaluator: evaluator,
		static: map[string]string{
			VarPipelineID:   pipelineID,
			VarPipelineName: pipelineName,
		},
	}, nil
}

// ParseTemplateConfig parses a raw configuration map into TemplateConfig.
func ParseTemplateConfig(cfg map[string]interface{}) (TemplateConfig, error) {
	tmpl, ok := cfg["template"].(string)
	if !ok || tmpl == "" {
		return TemplateConfig{}, fmt.Errorf("template transform: 'template' is required and must be a string")
	}
	return TemplateConfig{Template: tmpl}, nil
}

// Apply implements the transform.Module interface.
func (m *TemplateModule) Apply(line string) (string, error) {
	vars := map[string]string{VarLine: line}
	for k, v := range m.static {
		vars[k] = v
	}
	return m.evaluator.Evaluate(m.tmpl, vars)
}

// Verify TemplateModule implements Module
var _ Module = (*TemplateModule)(nil)
