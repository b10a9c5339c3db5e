// Package source provides implementations for source modules.
// This file implements the "file" source module for reading lines from
// local files, including zstd-compressed files.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/DataDog/zstd"

	"github.com/lineflow/runtime/internal/logger"
	"github.com/lineflow/runtime/pkg/stream"
)

// Compression modes for the file source module.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionAuto = "auto"
)

// FileConfig represents the configuration for a file source module.
type FileConfig struct {
	// Path is the file to read lines from (required)
	Path string `json:"path"`
	// Compression selects decompression: "none", "zstd", or "auto"
	// (default). Auto enables zstd for paths ending in ".zst".
	Compression string `json:"compression,omitempty"`
}

// FileModule implements a source that streams lines from a local file.
// Zstd-compressed files are decompressed transparently.
type FileModule struct {
	config FileConfig
	file   *os.File
	zr     io.ReadCloser
}

// NewFileFromConfig creates a new file source module from configuration.
func NewFileFromConfig(config FileConfig) (*FileModule, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("file source: 'path' is required")
	}
	switch config.Compression {
	case "", CompressionAuto, CompressionNone, CompressionZstd:
	default:
		return nil, fmt.Errorf("file source: unsupported compression %q", config.Compression)
	}
	return &FileModule{config: config}, nil
}

// ParseFileConfig parses a raw configuration map into FileConfig.
func ParseFileConfig(cfg map[string]interface{}) (FileConfig, error) {
	config := FileConfig{}

	path, ok := cfg["path"].(string)
	if !ok || path == "" {
		return config, fmt.Errorf("file source: 'path' is required and must be a string")
	}
	config.Path = path

	if compression, ok := cfg["compression"].(string); ok {
		config.Compression = compression
	}

	return config, nil
}

// compressed reports whether the module should decompress the file.
func (m *FileModule) compressed() bool {
	switch m.config.Compression {
	case CompressionZstd:
		return true
	case CompressionNone:
		return false
	default:
		return strings.HasSuffix(m.config.Path, ".zst")
	}
}

// Open opens the file and returns a line source over its contents.
func (m *FileModule) Open(ctx context.Context) (stream.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(m.config.Path)
	if err != nil {
		return nil, fmt.Errorf("opening source file %q: %w", m.config.Path, err)
	}
	m.file = file

	var reader io.Reader = file
	if m.compressed() {
		m.zr = zstd.NewReader(file)
		reader = m.zr
	}

	logger.Debug("file source opened",
		slog.String("path", m.config.Path),
		slog.Bool("zstd", m.compressed()),
	)

	return stream.NewScannerSource(reader), nil
}

// Close releases the file handle and any decompression state.
func (m *FileModule) Close() error {
	var firstErr error
	if m.zr != nil {
		if err := m.zr.Close(); err != nil {
			firstErr = err
		}
		m.zr = nil
	}
	if m.file != nil {
		if err := m.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.file = nil
	}
	return firstErr
}

// Verify FileModule implements Module
var _ Module = (*FileModule)(nil)
