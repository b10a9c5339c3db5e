// Package registry provides module registries for source, transform, and
// sink modules.
//
// # Overview
//
// The registry enables extensible module registration for the Lineflow
// runtime. Instead of hard-coded switch statements, modules register their
// constructors by type string, so new module types can be added without
// modifying factory code.
//
// # Adding a New Module
//
// To add a new module type (e.g., an "s3" source module):
//
//  1. Implement the appropriate interface (source.Module, transform.Module,
//     or sink.Module)
//  2. Create a constructor function matching the registry signature
//  3. Register the constructor in an init() function
//
// Example for a new transform module:
//
//	func init() {
//	    registry.RegisterTransform("rot13", func(cfg stream.ModuleConfig, index int) (transform.Module, error) {
//	        return NewRot13Module(cfg.Config)
//	    })
//	}
//
// # Built-in Modules
//
// Built-in modules (file, inline, stub sources; case, replace, template,
// script, expr transforms; file, capture, discard sinks) are registered at
// startup via init() in builtins.go.
//
// # Stub Fallback
//
// Unknown source and sink types resolve to stub/capture implementations so
// pipelines can run during development. Unknown transform types are
// configuration errors: a transform that silently does nothing would
// corrupt the output.
package registry

import (
	"sync"

	"github.com/lineflow/runtime/internal/modules/sink"
	"github.com/lineflow/runtime/internal/modules/source"
	"github.com/lineflow/runtime/internal/modules/transform"
	"github.com/lineflow/runtime/pkg/stream"
)

// SourceConstructor creates a source module from configuration.
type SourceConstructor func(cfg *stream.ModuleConfig) (source.Module, error)

// TransformConstructor creates a transform module from configuration.
// The constructor receives the module's index in the transform chain and
// the pipeline the module belongs to, for transforms that expose pipeline
// metadata.
type TransformConstructor func(cfg stream.ModuleConfig, index int, pipeline *stream.Pipeline) (transform.Module, error)

// SinkConstructor creates a sink module from configuration.
type SinkConstructor func(cfg *stream.ModuleConfig) (sink.Module, error)

var (
	sourceMu       sync.RWMutex
	sourceRegistry = make(map[string]SourceConstructor)

	transformMu       sync.RWMutex
	transformRegistry = make(map[string]TransformConstructor)

	sinkMu       sync.RWMutex
	sinkRegistry = make(map[string]SinkConstructor)
)

// RegisterSource registers a source module constructor by type string.
// Registering an already registered type overwrites the previous
// constructor. Safe for concurrent use; typically called from init().
func RegisterSource(moduleType string, constructor SourceConstructor) {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	sourceRegistry[moduleType] = constructor
}

// RegisterTransform registers a transform module constructor by type string.
// Registering an already registered type overwrites the previous
// constructor. Safe for concurrent use; typically called from init().
func RegisterTransform(moduleType string, constructor TransformConstructor) {
	transformMu.Lock()
	defer transformMu.Unlock()
	transformRegistry[moduleType] = constructor
}

// RegisterSink registers a sink module constructor by type string.
// Registering an already registered type overwrites the previous
// constructor. Safe for concurrent use; typically called from init().
func RegisterSink(moduleType string, constructor SinkConstructor) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	sinkRegistry[moduleType] = constructor
}

// GetSourceConstructor returns the constructor registered for the given
// type, or nil if none is registered.
func GetSourceConstructor(moduleType string) SourceConstructor {
	sourceMu.RLock()
	defer sourceMu.RUnlock()
	return sourceRegistry[moduleType]
}

// GetTransformConstructor returns the constructor registered for the given
// type, or nil if none is registered.
func GetTransformConstructor(moduleType string) TransformConstructor {
	transformMu.RLock()
	defer transformMu.RUnlock()
	return transformRegistry[moduleType]
}

// GetSinkConstructor returns the constructor registered for the given
// type, or nil if none is registered.
func GetSinkConstructor(moduleType string) SinkConstructor {
	sinkMu.RLock()
	defer sinkMu.RUnlock()
	return sinkRegistry[moduleType]
}

// RegisteredTransformTypes returns the sorted set of registered transform
// type strings, for error messages listing the valid types.
func RegisteredTransformTypes() []string {
	transformMu.RLock()
	defer transformMu.RUnlock()
	types := make([]string, 0, len(transformRegistry))
	for t := range transformRegistry {
		types = append(types, t)
	}
	return types
}
