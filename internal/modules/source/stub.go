// Package source provides implementations for source modules.
package source

import (
	"context"
	"log/slog"

	"github.com/lineflow/runtime/internal/logger"
	"github.com/lineflow/runtime/pkg/stream"
)

// StubModule is a placeholder source module for testing the pipeline flow.
// It yields sample lines without touching any external system.
type StubModule struct {
	ModuleType string
}

// NewStub creates a new stub source module.
func NewStub(moduleType string) *StubModule {
	return &StubModule{ModuleType: moduleType}
}

// Open returns sample lines to demonstrate pipeline flow.
func (m *StubModule) Open(_ context.Context) (stream.Source, error) {
	logger.Info("source module opening stream",
		slog.String("type", m.ModuleType))

	return stream.NewSliceSource([]string{
		"sample line 1",
		"sample line 2",
	}), nil
}

// Close releases resources (no-op for stub).
func (m *StubModule) Close() error {
	return nil
}

// Verify StubModule implements Module
var _ Module = (*StubModule)(nil)
