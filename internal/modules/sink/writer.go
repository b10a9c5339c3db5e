package sink

import (
	"context"
	"io"

	"github.com/lineflow/runtime/pkg/stream"
)

// WriterModule wraps an injected io.Writer as a sink module.
// The CLI uses it to write lines to stdout; the writer's lifecycle stays
// with whoever supplied it.
type WriterModule struct {
	writer io.Writer
}

// NewWriter creates a sink module writing lines to w.
func NewWriter(w io.Writer) *WriterModule {
	return &WriterModule{writer: w}
}

// Open returns a buffered line sink over the wrapped writer.
func (m *WriterModule) Open(ctx context.Context) (stream.Sink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return stream.NewWriterSink(m.writer), nil
}

// Close releases resources. The wrapped writer is owned by the caller and
// is not closed here.
func (m *WriterModule) Close() error {
	return nil
}

// Verify WriterModule implements Module
var _ Module = (*WriterModule)(nil)
