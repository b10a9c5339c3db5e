// Package sink provides implementations for sink modules.
package sink

import (
	"context"

	"github.com/lineflow/runtime/pkg/stream"
)

// CaptureModule is an in-memory sink module that records every write and
// flush. It serves as the fallback for unknown sink types and as a test
// double for asserting pipeline side effects.
type CaptureModule struct {
	sink *CaptureSink
}

// CaptureSink records written lines and counts flushes.
type CaptureSink struct {
	// Lines are the written lines in write order
	Lines []string
	// Flushes is the number of Flush calls observed
	Flushes int
}

// Write records one line.
func (s *CaptureSink) Write(line string) error {
	s.Lines = append(s.Lines, line)
	return nil
}

// Flush records one flush.
func (s *CaptureSink) Flush() error {
	s.Flushes++
	return nil
}

// NewCapture creates a new capture sink module.
func NewCapture() *CaptureModule {
	return &CaptureModule{sink: &CaptureSink{}}
}

// Open returns the capturing sink.
func (m *CaptureModule) Open(_ context.Context) (stream.Sink, error) {
	return m.sink, nil
}

// Close releases resources (no-op for capture).
func (m *CaptureModule) Close() error {
	return nil
}

// Captured returns the sink for inspection after a run.
func (m *CaptureModule) Captured() *CaptureSink {
	return m.sink
}

// Verify interfaces
var (
	_ Module      = (*CaptureModule)(nil)
	_ stream.Sink = (*CaptureSink)(nil)
)
