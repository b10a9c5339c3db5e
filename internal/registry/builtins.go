// Package registry provides module registries for the Lineflow runtime.
// This file registers all built-in modules during initialization.
package registry

import (
	"fmt"

	"github.com/lineflow/runtime/internal/modules/sink"
	"github.com/lineflow/runtime/internal/modules/source"
	"github.com/lineflow/runtime/internal/modules/transform"
	"github.com/lineflow/runtime/pkg/stream"
)

func init() {
	registerBuiltinSourceModules()
	registerBuiltinTransformModules()
	registerBuiltinSinkModules()
}

// registerBuiltinSourceModules registers all built-in source module types.
func registerBuiltinSourceModules() {
	// file - local file source, zstd-aware
	RegisterSource("file", func(cfg *stream.ModuleConfig) (source.Module, error) {
		config, err := source.ParseFileConfig(cfg.Config)
		if err != nil {
			return nil, err
		}
		return source.NewFileFromConfig(config)
	})

	// inline - lines supplied in the pipeline configuration
	RegisterSource("inline", func(cfg *stream.ModuleConfig) (source.Module, error) {
		config, err := source.ParseInlineConfig(cfg.Config)
		if err != nil {
			return nil, err
		}
		return source.NewInlineFromConfig(config)
	})
}

// registerBuiltinTransformModules registers all built-in transform module types.
func registerBuiltinTransformModules() {
	// case - letter-case mapping
	RegisterTransform("case", func(cfg stream.ModuleConfig, index int, _ *stream.Pipeline) (transform.Module, error) {
		config, err := transform.ParseCaseConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid case config at index %d: %w", index, err)
		}
		return transform.NewCaseFromConfig(config)
	})

	// replace - regexp substitution
	RegisterTransform("replace", func(cfg stream.ModuleConfig, index int, _ *stream.Pipeline) (transform.Module, error) {
		config, err := transform.ParseReplaceConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid replace config at index %d: %w", index, err)
		}
		return transform.NewReplaceFromConfig(config)
	})

	// template - rebuild each line from a template
	RegisterTransform("template", func(cfg stream.ModuleConfig, index int, pipeline *stream.Pipeline) (transform.Module, error) {
		config, err := transform.ParseTemplateConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid template config at index %d: %w", index, err)
		}
		var id, name string
		if pipeline != nil {
			id, name = pipeline.ID, pipeline.Name
		}
		return transform.NewTemplateFromConfig(config, id, name)
	})

	// script - JavaScript transform(line) via goja
	RegisterTransform("script", func(cfg stream.ModuleConfig, index int, _ *stream.Pipeline) (transform.Module, error) {
		config, err := transform.ParseScriptConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid script config at index %d: %w", index, err)
		}
		module, err := transform.NewScriptFromConfig(config)
		if err != nil {
			return nil, fmt.Errorf("invalid script config at index %d: %w", index, err)
		}
		return module, nil
	})

	// expr - expr-lang expression over the current line
	RegisterTransform("expr", func(cfg stream.ModuleConfig, index int, _ *stream.Pipeline) (transform.Module, error) {
		config, err := transform.ParseExprConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid expr config at index %d: %w", index, err)
		}
		module, err := transform.NewExprFromConfig(config)
		if err != nil {
			return nil, fmt.Errorf("invalid expr config at index %d: %w", index, err)
		}
		return module, nil
	})
}

// registerBuiltinSinkModules registers all built-in sink module types.
func registerBuiltinSinkModules() {
	// file - local file sink
	RegisterSink("file", func(cfg *stream.ModuleConfig) (sink.Module, error) {
		config, err := sink.ParseFileConfig(cfg.Config)
		if err != nil {
			return nil, err
		}
		return sink.NewFileFromConfig(config)
	})

	// capture - in-memory sink
	RegisterSink("capture", func(_ *stream.ModuleConfig) (sink.Module, error) {
		return sink.NewCapture(), nil
	})

	// discard - drop all lines
	RegisterSink("discard", func(_ *stream.ModuleConfig) (sink.Module, error) {
		return sink.NewDiscard(), nil
	})
}
