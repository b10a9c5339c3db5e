package stream

import (
	"bufio"
	"io"
)

// ScannerSource reads lines from an io.Reader using a bufio.Scanner.
// Line terminators are stripped; the final line is yielded even without a
// trailing newline.
type ScannerSource struct {
	scanner *bufio.Scanner
}

// NewScannerSource creates a Source reading lines from r.
func NewScannerSource(r io.Reader) *ScannerSource {
	return &ScannerSource{scanner: bufio.NewScanner(r)}
}

// Next returns the next line, or io.EOF when the reader is exhausted.
func (s *ScannerSource) Next() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SliceSource yields a fixed slice of lines in order.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource creates a Source yielding the given lines.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Next returns the next line, or io.EOF when all lines have been yielded.
func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// WriterSink writes lines to an io.Writer through a buffer, appending a
// newline to each line. Flush drains the buffer to the underlying writer.
type WriterSink struct {
	buf *bufio.Writer
}

// NewWriterSink creates a Sink writing newline-terminated lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{buf: bufio.NewWriter(w)}
}

// Write appends one line plus a newline to the buffer.
func (s *WriterSink) Write(line string) error {
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return s.buf.WriteByte('\n')
}

// Flush delivers all buffered lines to the underlying writer.
func (s *WriterSink) Flush() error {
	return s.buf.Flush()
}

// Interface checks.
var (
	_ Source = (*ScannerSource)(nil)
	_ Source = (*SliceSource)(nil)
	_ Sink   = (*WriterSink)(nil)
)
