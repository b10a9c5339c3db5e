package stream

import (
	"errors"
	"io"
)

// Process streams lines from source through transform into sink and
// returns the number of lines processed.
//
// The pass is a single synchronous loop on the caller's goroutine: each
// line is transformed and written immediately, in order, with no batching.
// The count is incremented once per line, after its transformed value has
// been written. When the source is exhausted the sink is flushed exactly
// once and the final count is returned.
//
// Failure policy (no retries, no partial recovery):
//   - A nil transform fails with ErrNilTransform before any line is
//     consumed; the sink sees zero writes.
//   - A transform or write failure on line i aborts the pass with a
//     *LineError carrying the 1-indexed line number and wrapping the
//     cause. Lines after i are not read, and the sink is NOT flushed;
//     lines 1..i-1 may remain buffered in the sink.
//   - Source read failures propagate unwrapped.
//
// The returned count is the number of lines fully processed before any
// failure. Process neither opens nor closes source or sink; their
// lifecycle belongs to the caller.
func Process(source Source, transform Transform, sink Sink) (int, error) {
	if transform == nil {
		return 0, ErrNilTransform
	}
	if source == nil {
		return 0, ErrNilSource
	}
	if sink == nil {
		return 0, ErrNilSink
	}

	count := 0
	for {
		line, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		out, err := transform(line)
		if err != nil {
			return count, &LineError{Line: count + 1, Err: err}
		}
		if err := sink.Write(out); err != nil {
			return count, &LineError{Line: count + 1, Err: err}
		}
		count++
	}

	if err := sink.Flush(); err != nil {
		return count, err
	}
	return count, nil
}
