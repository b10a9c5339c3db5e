// Package sink provides implementations for sink modules.
package sink

import (
	"context"

	"github.com/lineflow/runtime/pkg/stream"
)

// DiscardModule is a sink module that accepts and drops every line.
// Dry-run mode swaps the configured sink for this module so the pass runs
// end to end without touching the real destination.
type DiscardModule struct{}

// discardSink drops lines and accepts flushes.
type discardSink struct{}

func (discardSink) Write(string) error { return nil }
func (discardSink) Flush() error       { return nil }

// NewDiscard creates a new discard sink module.
func NewDiscard() *DiscardModule {
	return &DiscardModule{}
}

// Open returns the discarding sink.
func (m *DiscardModule) Open(_ context.Context) (stream.Sink, error) {
	return discardSink{}, nil
}

// Close releases resources (no-op for discard).
func (m *DiscardModule) Close() error {
	return nil
}

// Verify DiscardModule implements Module
var _ Module = (*DiscardModule)(nil)
