// Package sink provides implementations for sink modules.
// This file implements the "file" sink module for writing lines to a
// local file.
package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lineflow/runtime/internal/logger"
	"github.com/lineflow/runtime/pkg/stream"
)

// FileConfig represents the configuration for a file sink module.
type FileConfig struct {
	// Path is the file to write lines to (required)
	Path string `json:"path"`
	// Append opens the file in append mode instead of truncating
	Append bool `json:"append,omitempty"`
}

// FileModule implements a sink writing newline-terminated lines to a file.
// The file is created on Open and closed by Close after the run.
type FileModule struct {
	config FileConfig
	file   *os.File
}

// NewFileFromConfig creates a new file sink module from configuration.
func NewFileFromConfig(config FileConfig) (*FileModule, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("file sink: 'path' is required")
	}
	return &FileModule{config: config}, nil
}

// ParseFileConfig parses a raw configuration map into FileConfig.
func ParseFileConfig(cfg map[string]interface{}) (FileConfig, error) {
	config := FileConfig{}

	path, ok := cfg["path"].(string)
	if !ok || path == "" {
		return config, fmt.Errorf("file sink: 'path' is required and must be a string")
	}
	config.Path = path

	if appendMode, ok := cfg["append"]; ok {
		b, ok := appendMode.(bool)
		if !ok {
			return config, fmt.Errorf("file sink: 'append' must be a boolean, got %T", appendMode)
		}
		config.Append = b
	}

	return config, nil
}

// Open creates (or opens for append) the destination file and returns a
// buffered line sink over it.
func (m *FileModule) Open(ctx context.Context) (stream.Sink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if m.config.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(m.config.Path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening sink file %q: %w", m.config.Path, err)
	}
	m.file = file

	logger.Debug("file sink opened",
		slog.String("path", m.config.Path),
		slog.Bool("append", m.config.Append),
	)

	return stream.NewWriterSink(file), nil
}

// Close releases the file handle.
func (m *FileModule) Close() error {
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

// Verify FileModule implements Module
var _ Module = (*FileModule)(nil)
