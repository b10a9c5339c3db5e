// Package source provides implementations for source modules.
// Source modules are responsible for producing the line stream a pipeline
// reads from.
package source

import (
	"context"
	"errors"

	"github.com/lineflow/runtime/pkg/stream"
)

// ErrNotOpened is returned when a module is closed without being opened.
var ErrNotOpened = errors.New("source module not opened")

// Module represents a source module that produces a line stream.
type Module interface {
	// Open acquires the underlying resource and returns the line source.
	// The context can be used to abort acquisition.
	Open(ctx context.Context) (stream.Source, error)

	// Close releases any resources held by the module.
	Close() error
}
