// Package sink provides implementations for sink modules.
// Sink modules are responsible for the destination a pipeline writes
// transformed lines to.
package sink

import (
	"context"

	"github.com/lineflow/runtime/pkg/stream"
)

// Module represents a sink module that provides a line destination.
type Module interface {
	// Open acquires the underlying resource and returns the line sink.
	// The context can be used to abort acquisition.
	Open(ctx context.Context) (stream.Sink, error)

	// Close releases any resources held by the module.
	Close() error
}
