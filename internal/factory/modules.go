// Package factory provides module creation functions for the pipeline
// runtime. It centralizes the logic for instantiating source, transform,
// and sink modules from their configuration using the module registry.
//
// # Module Creation
//
// The factory looks up module constructors by type via the registry
// package. Built-in modules are registered automatically at startup.
// Unknown source types resolve to a stub source and unknown sink types to
// a capture sink; unknown transform types are errors.
//
// # Adding New Module Types
//
// To add a new module type, see the documentation in internal/registry.
// The factory does not need changes; just register your constructor.
package factory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lineflow/runtime/internal/modules/sink"
	"github.com/lineflow/runtime/internal/modules/source"
	"github.com/lineflow/runtime/internal/modules/transform"
	"github.com/lineflow/runtime/internal/registry"
	"github.com/lineflow/runtime/pkg/stream"
)

// CreateSourceModule creates a source module instance from configuration.
// Unknown types fall back to a stub source.
func CreateSourceModule(cfg *stream.ModuleConfig) (source.Module, error) {
	if cfg == nil {
		return nil, nil
	}

	if constructor := registry.GetSourceConstructor(cfg.Type); constructor != nil {
		return constructor(cfg)
	}
	return source.NewStub(cfg.Type), nil
}

// CreateTransformModules creates transform module instances from the
// pipeline's transform configuration, in order.
func CreateTransformModules(pipeline *stream.Pipeline) ([]transform.Module, error) {
	if pipeline == nil || len(pipeline.Transforms) == 0 {
		return nil, nil
	}

	modules := make([]transform.Module, 0, len(pipeline.Transforms))
	for i, cfg := range pipeline.Transforms {
		constructor := registry.GetTransformConstructor(cfg.Type)
		if constructor == nil {
			return nil, fmt.Errorf("unknown transform type %q at index %d (known types: %s)",
				cfg.Type, i, knownTransformTypes())
		}
		module, err := constructor(cfg, i, pipeline)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	return modules, nil
}

// CreateSinkModule creates a sink module instance from configuration.
// Unknown types fall back to a capture sink.
func CreateSinkModule(cfg *stream.ModuleConfig) (sink.Module, error) {
	if cfg == nil {
		return nil, nil
	}

	if constructor := registry.GetSinkConstructor(cfg.Type); constructor != nil {
		return constructor(cfg)
	}
	return sink.NewCapture(), nil
}

// knownTransformTypes lists the registered transform types for error messages.
func knownTransformTypes() string {
	types := registry.RegisteredTransformTypes()
	sort.Strings(types)
	return strings.Join(types, ", ")
}
