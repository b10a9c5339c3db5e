// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the runtime.
//
// This package provides run context helpers for consistent pipeline logging,
// including helpers for run start/end and stage start/end. All helpers use
// structured logging with consistent field names (snake_case).
package logger

import (
	"log/slog"
	"os"
	"time"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	// Initialize with JSON handler for structured logging
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithPipeline returns a logger with pipeline context.
func WithPipeline(pipelineID string) *slog.Logger {
	return Logger.With("pipeline_id", pipelineID)
}

// RunContext contains context information for pipeline run logging.
// Use this struct with the run logging helpers below.
type RunContext struct {
	// PipelineID is the unique identifier for the pipeline (required)
	PipelineID string
	// PipelineName is the human-readable name of the pipeline
	PipelineName string
	// Stage is the current run stage (source, transform, sink)
	Stage string
	// ModuleType is the type of module being executed (file, case, etc.)
	ModuleType string
	// DryRun indicates if this is a dry-run execution
	DryRun bool
}

// buildContextAttrs converts a RunContext into slog attributes,
// omitting empty optional fields.
func buildContextAttrs(ctx RunContext) []any {
	attrs := make([]any, 0, 10)
	attrs = append(attrs, slog.String("pipeline_id", ctx.PipelineID))
	if ctx.PipelineName != "" {
		attrs = append(attrs, slog.String("pipeline_name", ctx.PipelineName))
	}
	if ctx.Stage != "" {
		attrs = append(attrs, slog.String("stage", ctx.Stage))
	}
	if ctx.ModuleType != "" {
		attrs = append(attrs, slog.String("module_type", ctx.ModuleType))
	}
	if ctx.DryRun {
		attrs = append(attrs, slog.Bool("dry_run", true))
	}
	return attrs
}

// LogRunStart logs the start of a pipeline run.
func LogRunStart(ctx RunContext) {
	Logger.Info("run started", buildContextAttrs(ctx)...)
}

// LogRunEnd logs the completion of a pipeline run with the final status.
func LogRunEnd(ctx RunContext, status string, linesProcessed int, duration time.Duration) {
	attrs := buildContextAttrs(ctx)
	attrs = append(attrs,
		slog.String("status", status),
		slog.Int("lines_processed", linesProcessed),
		slog.Duration("duration", duration),
	)
	Logger.Info("run completed", attrs...)
}

// LogStageStart logs the start of a run stage (source, transform, sink).
func LogStageStart(ctx RunContext) {
	Logger.Debug("stage started", buildContextAttrs(ctx)...)
}

// LogStageEnd logs the completion of a run stage.
func LogStageEnd(ctx RunContext, lines int, duration time.Duration, err error) {
	attrs := buildContextAttrs(ctx)
	attrs = append(attrs,
		slog.Int("lines", lines),
		slog.Duration("duration", duration),
	)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		Logger.Error("stage failed", attrs...)
		return
	}
	Logger.Debug("stage completed", attrs...)
}
