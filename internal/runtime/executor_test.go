package runtime

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lineflow/runtime/internal/modules/sink"
	"github.com/lineflow/runtime/internal/modules/source"
	"github.com/lineflow/runtime/internal/modules/transform"
	"github.com/lineflow/runtime/pkg/stream"
)

func inlineSource(t *testing.T, lines ...string) source.Module {
	t.Helper()
	m, err := source.NewInlineFromConfig(source.InlineConfig{Lines: lines})
	if err != nil {
		t.Fatalf("failed to build inline source: %v", err)
	}
	return m
}

func upperTransform(t *testing.T) transform.Module {
	t.Helper()
	m, err := transform.NewCaseFromConfig(transform.CaseConfig{Mode: "upper"})
	if err != nil {
		t.Fatalf("failed to build case transform: %v", err)
	}
	return m
}

// failingTransform fails on a specific input line.
type failingTransform struct {
	failOn string
}

func (f *failingTransform) Apply(line string) (string, error) {
	if line == f.failOn {
		return "", errors.New("transform rejected line")
	}
	return line, nil
}

// failingSinkModule opens a sink whose writes fail after a threshold.
type failingSinkModule struct {
	sink failingSink
}

type failingSink struct {
	writesBeforeFail int
	writes           int
	flushes          int
	flushErr         error
}

func (s *failingSink) Write(string) error {
	if s.writes >= s.writesBeforeFail {
		return errors.New("disk full")
	}
	s.writes++
	return nil
}

func (s *failingSink) Flush() error {
	s.flushes++
	return s.flushErr
}

func (m *failingSinkModule) Open(context.Context) (stream.Sink, error) {
	return &m.sink, nil
}

func (m *failingSinkModule) Close() error { return nil }

func enabledPipeline() *stream.Pipeline {
	return &stream.Pipeline{
		ID:      "p1",
		Name:    "demo",
		Version: "1.0.0",
		Source:  &stream.ModuleConfig{Type: "inline"},
		Sink:    &stream.ModuleConfig{Type: "capture"},
		Enabled: true,
	}
}

func TestExecuteSuccess(t *testing.T) {
	capture := sink.NewCapture()
	executor := NewExecutorWithModules(
		inlineSource(t, "hello", "world"),
		[]transform.Module{upperTransform(t)},
		capture,
		false,
	)

	result, err := executor.Execute(enabledPipeline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != stream.StatusSuccess {
		t.Errorf("status = %q, want %q", result.Status, stream.StatusSuccess)
	}
	if result.LinesProcessed != 2 {
		t.Errorf("lines processed = %d, want 2", result.LinesProcessed)
	}
	if result.PipelineID != "p1" {
		t.Errorf("pipeline id = %q, want p1", result.PipelineID)
	}
	if result.CompletedAt.Before(result.StartedAt) {
		t.Error("completed before started")
	}

	captured := capture.Captured()
	if len(captured.Lines) != 2 || captured.Lines[0] != "HELLO" || captured.Lines[1] != "WORLD" {
		t.Errorf("captured lines = %v, want [HELLO WORLD]", captured.Lines)
	}
	if captured.Flushes != 1 {
		t.Errorf("flushes = %d, want 1", captured.Flushes)
	}
}

func TestExecuteEmptySource(t *testing.T) {
	capture := sink.NewCapture()
	executor := NewExecutorWithModules(inlineSource(t), nil, capture, false)

	result, err := executor.Execute(enabledPipeline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LinesProcessed != 0 {
		t.Errorf("lines processed = %d, want 0", result.LinesProcessed)
	}
	if capture.Captured().Flushes != 1 {
		t.Errorf("flushes = %d, want 1 even for empty source", capture.Captured().Flushes)
	}
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name     string
		executor *Executor
		pipeline *stream.Pipeline
		wantErr  error
	}{
		{
			name:     "nil pipeline",
			executor: NewExecutorWithModules(inlineSource(t), nil, sink.NewCapture(), false),
			pipeline: nil,
			wantErr:  ErrNilPipeline,
		},
		{
			name:     "disabled pipeline",
			executor: NewExecutorWithModules(inlineSource(t), nil, sink.NewCapture(), false),
			pipeline: func() *stream.Pipeline { p := enabledPipeline(); p.Enabled = false; return p }(),
			wantErr:  ErrPipelineDisabled,
		},
		{
			name:     "nil source module",
			executor: NewExecutorWithModules(nil, nil, sink.NewCapture(), false),
			pipeline: enabledPipeline(),
			wantErr:  ErrNilSourceModule,
		},
		{
			name:     "nil sink module",
			executor: NewExecutorWithModules(inlineSource(t), nil, nil, false),
			pipeline: enabledPipeline(),
			wantErr:  ErrNilSinkModule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.executor.Execute(tt.pipeline)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if result.Status != stream.StatusError {
				t.Errorf("status = %q, want %q", result.Status, stream.StatusError)
			}
			if result.Error == nil || result.Error.Code != ErrCodeInvalidPipeline {
				t.Errorf("result error = %+v, want code %s", result.Error, ErrCodeInvalidPipeline)
			}
		})
	}
}

func TestExecuteTransformFailure(t *testing.T) {
	capture := sink.NewCapture()
	executor := NewExecutorWithModules(
		inlineSource(t, "a", "b", "poison", "d"),
		[]transform.Module{&failingTransform{failOn: "poison"}},
		capture,
		false,
	)

	result, err := executor.Execute(enabledPipeline())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lineErr *stream.LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("error = %T, want *stream.LineError", err)
	}
	if lineErr.Line != 3 {
		t.Errorf("failed line = %d, want 3", lineErr.Line)
	}
	if result.FailedLine != 3 {
		t.Errorf("result failed line = %d, want 3", result.FailedLine)
	}
	if result.LinesProcessed != 2 {
		t.Errorf("lines processed = %d, want 2", result.LinesProcessed)
	}
	if result.Error == nil || result.Error.Code != ErrCodeProcessFailed {
		t.Fatalf("result error = %+v, want code %s", result.Error, ErrCodeProcessFailed)
	}
	if result.Error.Module != "transform" {
		t.Errorf("error module = %q, want transform", result.Error.Module)
	}

	captured := capture.Captured()
	if len(captured.Lines) != 2 {
		t.Errorf("captured %d lines before failure, want 2", len(captured.Lines))
	}
	if captured.Flushes != 0 {
		t.Errorf("flushes = %d, want 0 after failed run", captured.Flushes)
	}
}

func TestExecuteSinkWriteFailure(t *testing.T) {
	sinkModule := &failingSinkModule{sink: failingSink{writesBeforeFail: 1}}
	executor := NewExecutorWithModules(inlineSource(t, "a", "b", "c"), nil, sinkModule, false)

	result, err := executor.Execute(enabledPipeline())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if result.FailedLine != 2 {
		t.Errorf("failed line = %d, want 2", result.FailedLine)
	}
	if result.Error == nil || result.Error.Module != "sink" {
		t.Errorf("result error = %+v, want sink module attribution", result.Error)
	}
	if sinkModule.sink.flushes != 0 {
		t.Errorf("flushes = %d, want 0 after write failure", sinkModule.sink.flushes)
	}
}

func TestExecuteFlushFailure(t *testing.T) {
	sinkModule := &failingSinkModule{sink: failingSink{
		writesBeforeFail: 100,
		flushErr:         errors.New("flush refused"),
	}}
	executor := NewExecutorWithModules(inlineSource(t, "a"), nil, sinkModule, false)

	result, err := executor.Execute(enabledPipeline())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "flush refused") {
		t.Errorf("error = %q, want flush cause", err.Error())
	}
	if result.Error == nil || result.Error.Code != ErrCodeSinkFailed {
		t.Errorf("result error = %+v, want code %s", result.Error, ErrCodeSinkFailed)
	}
	// Lines were all written before the flush failed.
	if result.LinesProcessed != 1 {
		t.Errorf("lines processed = %d, want 1", result.LinesProcessed)
	}
	if result.FailedLine != 0 {
		t.Errorf("failed line = %d, want 0 for flush failure", result.FailedLine)
	}
}

func TestExecuteDryRun(t *testing.T) {
	capture := sink.NewCapture()
	executor := NewExecutorWithModules(
		inlineSource(t, "a", "b"),
		[]transform.Module{upperTransform(t)},
		capture,
		true,
	)

	result, err := executor.Execute(enabledPipeline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != stream.StatusSuccess {
		t.Errorf("status = %q, want %q", result.Status, stream.StatusSuccess)
	}
	if result.LinesProcessed != 2 {
		t.Errorf("lines processed = %d, want 2", result.LinesProcessed)
	}
	// The configured sink must stay untouched in dry-run mode.
	if len(capture.Captured().Lines) != 0 || capture.Captured().Flushes != 0 {
		t.Errorf("configured sink was touched in dry-run: %+v", capture.Captured())
	}
}

func TestExecuteDryRunWithoutSink(t *testing.T) {
	executor := NewExecutorWithModules(inlineSource(t, "a"), nil, nil, true)
	result, err := executor.Execute(enabledPipeline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LinesProcessed != 1 {
		t.Errorf("lines processed = %d, want 1", result.LinesProcessed)
	}
}

func TestExecuteWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := NewExecutorWithModules(inlineSource(t, "a"), nil, sink.NewCapture(), false)
	result, err := executor.ExecuteWithContext(ctx, enabledPipeline())
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if result.Error == nil || result.Error.Code != ErrCodeSourceFailed {
		t.Errorf("result error = %+v, want code %s", result.Error, ErrCodeSourceFailed)
	}
}
