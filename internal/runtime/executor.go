// Package runtime provides the pipeline execution engine.
// It orchestrates a single sequential pass over the line stream:
// Source → Transforms → Sink.
package runtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lineflow/runtime/internal/logger"
	"github.com/lineflow/runtime/internal/modules/sink"
	"github.com/lineflow/runtime/internal/modules/source"
	"github.com/lineflow/runtime/internal/modules/transform"
	"github.com/lineflow/runtime/pkg/stream"
)

// Executor runs pipeline configurations.
//
// The Executor only interacts with modules through their public interfaces,
// enforcing module boundaries at compile time: the fields are declared as
// interface types, so the runtime cannot reach into concrete module
// internals. Modules can be developed independently of the runtime.
type Executor struct {
	sourceModule     source.Module
	transformModules []transform.Module
	sinkModule       sink.Module
	dryRun           bool
}

// NewExecutor creates a new pipeline executor with only the dry-run flag.
// Modules must be set separately via NewExecutorWithModules.
func NewExecutor(dryRun bool) *Executor {
	return &Executor{
		dryRun: dryRun,
	}
}

// NewExecutorWithModules creates a new pipeline executor with all modules
// configured. This is the primary constructor for dependency injection.
//
// Parameters:
//   - sourceModule: produces the line stream the run reads from
//   - transformModules: optional ordered transforms (can be nil)
//   - sinkModule: the destination lines are written to
//   - dryRun: if true, the configured sink is replaced by a discarding one
func NewExecutorWithModules(
	sourceModule source.Module,
	transformModules []transform.Module,
	sinkModule sink.Module,
	dryRun bool,
) *Executor {
	return &Executor{
		sourceModule:     sourceModule,
		transformModules: transformModules,
		sinkModule:       sinkModule,
		dryRun:           dryRun,
	}
}

// trackingSink wraps a stream.Sink and remembers whether a write or flush
// failed, so run errors can be attributed to the sink stage afterwards.
type trackingSink struct {
	inner       stream.Sink
	writeFailed bool
	flushFailed bool
}

func (s *trackingSink) Write(line string) error {
	if err := s.inner.Write(line); err != nil {
		s.writeFailed = true
		return err
	}
	return nil
}

func (s *trackingSink) Flush() error {
	if err := s.inner.Flush(); err != nil {
		s.flushFailed = true
		return err
	}
	return nil
}

// Execute runs a pipeline configuration with a background context.
// For cancellation support, use ExecuteWithContext instead.
func (e *Executor) Execute(pipeline *stream.Pipeline) (*stream.RunResult, error) {
	return e.ExecuteWithContext(context.Background(), pipeline)
}

// ExecuteWithContext runs a pipeline configuration with the given context.
//
// Execution flow:
//  1. Validate the pipeline configuration and modules
//  2. Open the source and sink modules
//  3. Stream lines source → transforms → sink in one sequential pass
//  4. Return a RunResult with status, line count, and failure position
//
// Lines are written as they are produced; a transform or write failure
// aborts the pass at that line, leaving earlier writes in place and the
// sink unflushed. The sink is flushed exactly once after a full pass.
//
// Resource management: the source and sink modules are closed via defer
// when the run ends, whatever the outcome. In dry-run mode the configured
// sink module is never opened; a discarding sink stands in for it.
func (e *Executor) ExecuteWithContext(ctx context.Context, pipeline *stream.Pipeline) (*stream.RunResult, error) {
	startedAt := time.Now()
	result := &stream.RunResult{
		StartedAt: startedAt,
		Status:    stream.StatusError,
	}

	if err := e.validateRun(pipeline, result); err != nil {
		result.CompletedAt = time.Now()
		return result, err
	}

	runCtx := logger.RunContext{
		PipelineID:   pipeline.ID,
		PipelineName: pipeline.Name,
		DryRun:       e.dryRun,
	}
	logger.LogRunStart(runCtx)

	finish := func(status string, count int) {
		result.CompletedAt = time.Now()
		logger.LogRunEnd(runCtx, status, count, time.Since(startedAt))
	}

	// Open source
	sourceCtx := runCtx
	sourceCtx.Stage = "source"
	if pipeline.Source != nil {
		sourceCtx.ModuleType = pipeline.Source.Type
	}
	logger.LogStageStart(sourceCtx)
	sourceStart := time.Now()
	src, err := e.sourceModule.Open(ctx)
	logger.LogStageEnd(sourceCtx, 0, time.Since(sourceStart), err)
	if err != nil {
		result.Error = &stream.RunError{Code: ErrCodeSourceFailed, Message: err.Error(), Module: "source"}
		finish(stream.StatusError, 0)
		return result, err
	}
	defer e.closeModule(pipeline.ID, "source", e.sourceModule)

	// Open sink; dry-run swaps in a discarding one
	sinkModule := e.sinkModule
	if e.dryRun {
		logger.Debug("dry-run mode: lines will be discarded",
			slog.String("pipeline_id", pipeline.ID),
		)
		sinkModule = sink.NewDiscard()
	}
	sinkCtx := runCtx
	sinkCtx.Stage = "sink"
	if pipeline.Sink != nil {
		sinkCtx.ModuleType = pipeline.Sink.Type
	}
	logger.LogStageStart(sinkCtx)
	sinkStart := time.Now()
	dest, err := sinkModule.Open(ctx)
	logger.LogStageEnd(sinkCtx, 0, time.Since(sinkStart), err)
	if err != nil {
		result.Error = &stream.RunError{Code: ErrCodeSinkFailed, Message: err.Error(), Module: "sink"}
		finish(stream.StatusError, 0)
		return result, err
	}
	defer e.closeModule(pipeline.ID, "sink", sinkModule)

	// Run the pass
	tracked := &trackingSink{inner: dest}
	processCtx := runCtx
	processCtx.Stage = "process"
	logger.LogStageStart(processCtx)
	processStart := time.Now()
	count, err := stream.Process(src, transform.Chain(e.transformModules), tracked)
	logger.LogStageEnd(processCtx, count, time.Since(processStart), err)

	result.LinesProcessed = count
	if err != nil {
		result.Error = buildRunError(err, tracked)
		var lineErr *stream.LineError
		if errors.As(err, &lineErr) {
			result.FailedLine = lineErr.Line
		}
		finish(stream.StatusError, count)
		return result, err
	}

	result.Status = stream.StatusSuccess
	finish(stream.StatusSuccess, count)
	return result, nil
}

// validateRun checks the pipeline and modules before any stage runs.
// Validation failures populate the result error with INVALID_PIPELINE.
func (e *Executor) validateRun(pipeline *stream.Pipeline, result *stream.RunResult) error {
	fail := func(err error) error {
		result.Error = &stream.RunError{Code: ErrCodeInvalidPipeline, Message: err.Error()}
		return err
	}

	if pipeline == nil {
		return fail(ErrNilPipeline)
	}
	result.PipelineID = pipeline.ID
	if !pipeline.Enabled {
		return fail(ErrPipelineDisabled)
	}
	if e.sourceModule == nil {
		return fail(ErrNilSourceModule)
	}
	if e.sinkModule == nil && !e.dryRun {
		return fail(ErrNilSinkModule)
	}
	return nil
}

// buildRunError attributes a pass failure to a module.
// Flush failures and write failures belong to the sink; line-positioned
// failures without a sink write failure belong to the transforms; anything
// else came from the source read path.
func buildRunError(err error, tracked *trackingSink) *stream.RunError {
	var lineErr *stream.LineError
	switch {
	case tracked.flushFailed:
		return &stream.RunError{Code: ErrCodeSinkFailed, Message: err.Error(), Module: "sink"}
	case errors.As(err, &lineErr):
		module := "transform"
		if tracked.writeFailed {
			module = "sink"
		}
		return &stream.RunError{Code: ErrCodeProcessFailed, Message: err.Error(), Module: module}
	default:
		return &stream.RunError{Code: ErrCodeSourceFailed, Message: err.Error(), Module: "source"}
	}
}

// closeModule closes a module and logs close failures without failing the run.
func (e *Executor) closeModule(pipelineID, stage string, m interface{ Close() error }) {
	if err := m.Close(); err != nil {
		logger.Warn("failed to close module",
			slog.String("pipeline_id", pipelineID),
			slog.String("stage", stage),
			slog.String("error", err.Error()),
		)
	}
}
