package runtime

import "errors"

// Error codes for pipeline run errors.
const (
	ErrCodeSourceFailed    = "SOURCE_FAILED"
	ErrCodeSinkFailed      = "SINK_FAILED"
	ErrCodeProcessFailed   = "PROCESS_FAILED"
	ErrCodeInvalidPipeline = "INVALID_PIPELINE"
)

// Common errors
var (
	// ErrNilPipeline is returned when pipeline configuration is nil
	ErrNilPipeline = errors.New("pipeline configuration is nil")

	// ErrNilSourceModule is returned when the source module is nil
	ErrNilSourceModule = errors.New("source module is nil")

	// ErrNilSinkModule is returned when the sink module is nil
	ErrNilSinkModule = errors.New("sink module is nil")

	// ErrPipelineDisabled is returned when the pipeline is disabled
	ErrPipelineDisabled = errors.New("pipeline is disabled")
)
