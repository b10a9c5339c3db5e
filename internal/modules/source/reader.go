package source

import (
	"context"
	"io"

	"github.com/lineflow/runtime/pkg/stream"
)

// ReaderModule wraps an injected io.Reader as a source module.
// The CLI uses it to stream lines from stdin; the reader's lifecycle
// stays with whoever supplied it.
type ReaderModule struct {
	reader io.Reader
}

// NewReader creates a source module streaming lines from r.
func NewReader(r io.Reader) *ReaderModule {
	return &ReaderModule{reader: r}
}

// Open returns a line source over the wrapped reader.
func (m *ReaderModule) Open(ctx context.Context) (stream.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return stream.NewScannerSource(m.reader), nil
}

// Close releases resources. The wrapped reader is owned by the caller and
// is not closed here.
func (m *ReaderModule) Close() error {
	return nil
}

// Verify ReaderModule implements Module
var _ Module = (*ReaderModule)(nil)
