package stream

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// testSink records writes and flushes for assertions.
type testSink struct {
	lines      []string
	flushes    int
	writeErr   error
	flushErr   error
	flushAfter []string // snapshot of lines at first flush
}

func (s *testSink) Write(line string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.lines = append(s.lines, line)
	return nil
}

func (s *testSink) Flush() error {
	if s.flushErr != nil {
		return s.flushErr
	}
	if s.flushes == 0 {
		s.flushAfter = append([]string(nil), s.lines...)
	}
	s.flushes++
	return nil
}

func identity(line string) (string, error) {
	return line, nil
}

func TestProcess_IdentityPreservesCountAndOrder(t *testing.T) {
	lines := []string{"alpha", "beta", "gamma", "delta"}
	sink := &testSink{}

	count, err := Process(NewSliceSource(lines), identity, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != len(lines) {
		t.Errorf("expected count %d, got %d", len(lines), count)
	}
	if len(sink.lines) != len(lines) {
		t.Fatalf("expected %d writes, got %d", len(lines), len(sink.lines))
	}
	for i, want := range lines {
		if sink.lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, sink.lines[i])
		}
	}
}

func TestProcess_EmptySource(t *testing.T) {
	sink := &testSink{}

	count, err := Process(NewSliceSource(nil), identity, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if len(sink.lines) != 0 {
		t.Errorf("expected no writes, got %d", len(sink.lines))
	}
	if sink.flushes != 1 {
		t.Errorf("expected exactly one flush, got %d", sink.flushes)
	}
}

func TestProcess_NilArguments(t *testing.T) {
	tests := []struct {
		name      string
		source    Source
		transform Transform
		sink      Sink
		wantErr   error
	}{
		{
			name:      "nil transform",
			source:    NewSliceSource([]string{"a"}),
			transform: nil,
			sink:      &testSink{},
			wantErr:   ErrNilTransform,
		},
		{
			name:      "nil source",
			source:    nil,
			transform: identity,
			sink:      &testSink{},
			wantErr:   ErrNilSource,
		},
		{
			name:      "nil sink",
			source:    NewSliceSource([]string{"a"}),
			transform: identity,
			sink:      nil,
			wantErr:   ErrNilSink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := Process(tt.source, tt.transform, tt.sink)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if count != 0 {
				t.Errorf("expected count 0, got %d", count)
			}
			if sink, ok := tt.sink.(*testSink); ok {
				if len(sink.lines) != 0 {
					t.Errorf("expected zero writes, got %d", len(sink.lines))
				}
				if sink.flushes != 0 {
					t.Errorf("expected zero flushes, got %d", sink.flushes)
				}
			}
		})
	}
}

func TestProcess_MidStreamFailure(t *testing.T) {
	boom := errors.New("boom")
	transform := func(line string) (string, error) {
		if line == "FAIL" {
			return "", boom
		}
		return line, nil
	}
	sink := &testSink{}

	count, err := Process(NewSliceSource([]string{"a", "b", "FAIL", "d"}), transform, sink)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected *LineError, got %T", err)
	}
	if lineErr.Line != 3 {
		t.Errorf("expected failure on line 3, got line %d", lineErr.Line)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause %v, got %v", boom, err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if len(sink.lines) != 2 {
		t.Errorf("expected exactly 2 writes before failure, got %d", len(sink.lines))
	}
	if sink.flushes != 0 {
		t.Errorf("expected no flush on failure, got %d", sink.flushes)
	}
}

func TestProcess_OrderPreservation(t *testing.T) {
	upper := func(line string) (string, error) {
		return strings.ToUpper(line), nil
	}
	sink := &testSink{}

	count, err := Process(NewSliceSource([]string{"x", "y", "z"}), upper, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
	want := []string{"X", "Y", "Z"}
	for i := range want {
		if sink.lines[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], sink.lines[i])
		}
	}
}

func TestProcess_FlushOnceAfterLastWrite(t *testing.T) {
	lines := []string{"one", "two", "three"}
	sink := &testSink{}

	if _, err := Process(NewSliceSource(lines), identity, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.flushes != 1 {
		t.Fatalf("expected exactly one flush, got %d", sink.flushes)
	}
	// The single flush must come after every line was written.
	if len(sink.flushAfter) != len(lines) {
		t.Errorf("flush occurred after %d writes, expected %d", len(sink.flushAfter), len(lines))
	}
}

func TestProcess_WriteFailureCarriesLineNumber(t *testing.T) {
	sink := &testSink{writeErr: errors.New("disk full")}

	count, err := Process(NewSliceSource([]string{"a"}), identity, sink)
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected *LineError, got %T", err)
	}
	if lineErr.Line != 1 {
		t.Errorf("expected line 1, got %d", lineErr.Line)
	}
	if count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}

func TestProcess_SourceErrorPropagatesUnwrapped(t *testing.T) {
	readErr := errors.New("read failure")
	source := &failingSource{lines: []string{"a", "b"}, failAt: 2, err: readErr}
	sink := &testSink{}

	count, err := Process(source, identity, sink)
	if !errors.Is(err, readErr) {
		t.Fatalf("expected %v, got %v", readErr, err)
	}
	var lineErr *LineError
	if errors.As(err, &lineErr) {
		t.Error("source errors must not be wrapped in LineError")
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if sink.flushes != 0 {
		t.Errorf("expected no flush on failure, got %d", sink.flushes)
	}
}

// failingSource yields its lines then fails instead of returning io.EOF.
type failingSource struct {
	lines  []string
	failAt int
	err    error
	pos    int
}

func (s *failingSource) Next() (string, error) {
	if s.pos >= s.failAt {
		return "", s.err
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

func TestLineError_Message(t *testing.T) {
	err := &LineError{Line: 7, Err: errors.New("bad input")}
	want := "processing failed on line 7: bad input"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestProcess_LargeSequentialCount(t *testing.T) {
	lines := make([]string, 1000)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	sink := &testSink{}

	count, err := Process(NewSliceSource(lines), identity, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1000 {
		t.Errorf("expected count 1000, got %d", count)
	}
}
