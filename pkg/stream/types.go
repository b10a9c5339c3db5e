// Package stream provides the public contracts for line-stream pipelines.
// This package is intended to be importable by external projects that need
// to feed lines into the Lineflow runtime or consume its results.
package stream

import "time"

// Source produces text lines one at a time, in order.
// Next returns io.EOF when the source is exhausted. Sources support
// sequential, single-pass iteration only; they are not rewindable.
type Source interface {
	// Next returns the next line, or io.EOF when no lines remain.
	Next() (string, error)
}

// Transform maps one text line to one text line. It may fail for some
// inputs, in which case the whole pass fails at that line.
type Transform func(line string) (string, error)

// Sink is an append-only destination for transformed lines.
// Flush guarantees that all previously written lines are delivered to the
// underlying destination before it returns.
type Sink interface {
	// Write appends a single line to the destination.
	Write(line string) error

	// Flush delivers all buffered lines to the underlying destination.
	Flush() error
}

// Pipeline represents a complete line pipeline configuration.
// It contains the Source, Transforms, and Sink modules required to run a
// pass over a line stream.
type Pipeline struct {
	// ID is the unique identifier for this pipeline
	ID string `json:"id"`

	// Name is the human-readable name of the pipeline
	Name string `json:"name"`

	// Description provides additional context about the pipeline
	Description string `json:"description,omitempty"`

	// Version is the pipeline configuration version
	Version string `json:"version"`

	// Source defines the line source module
	Source *ModuleConfig `json:"source"`

	// Transforms is an ordered list of line transformation modules
	Transforms []ModuleConfig `json:"transforms,omitempty"`

	// Sink defines the line destination module
	Sink *ModuleConfig `json:"sink"`

	// Enabled indicates whether the pipeline is active
	Enabled bool `json:"enabled"`
}

// ModuleConfig represents the configuration for a pipeline module.
// Modules can be Source, Transform, or Sink types.
type ModuleConfig struct {
	// Type identifies the module type (e.g., "file", "case", "writer")
	Type string `json:"type"`

	// Config contains the module-specific configuration
	Config map[string]interface{} `json:"config,omitempty"`
}

// Run status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RunResult represents the result of a pipeline run.
type RunResult struct {
	// PipelineID is the ID of the executed pipeline
	PipelineID string `json:"pipelineId"`

	// Status is the run status ("success", "error")
	Status string `json:"status"`

	// StartedAt is when the run started
	StartedAt time.Time `json:"startedAt"`

	// CompletedAt is when the run completed
	CompletedAt time.Time `json:"completedAt"`

	// LinesProcessed is the number of lines transformed and written
	LinesProcessed int `json:"linesProcessed"`

	// FailedLine is the 1-indexed line where the run failed (0 on success
	// or when the failure carried no positional context)
	FailedLine int `json:"failedLine,omitempty"`

	// Error contains error details if the run failed
	Error *RunError `json:"error,omitempty"`
}

// RunError contains details about a run failure.
type RunError struct {
	// Code is the error code
	Code string `json:"code"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// Module is the module where the error occurred (source, transform, sink)
	Module string `json:"module,omitempty"`
}
