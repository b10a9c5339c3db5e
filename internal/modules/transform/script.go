// Package transform provides implementations for transform modules.
// This file implements the "script" transform module, which executes a
// JavaScript transform(line) function using the Goja engine.
package transform

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dop251/goja"

	"github.com/lineflow/runtime/internal/logger"
	"github.com/lineflow/runtime/internal/pathutil"
)

// Error codes for the script module.
const (
	ErrCodeScriptEmpty       = "SCRIPT_EMPTY"
	ErrCodeScriptTooLong     = "SCRIPT_TOO_LONG"
	ErrCodeCompilationFailed = "COMPILATION_FAILED"
	ErrCodeMissingTransform  = "MISSING_TRANSFORM"
	ErrCodeNotFunction       = "NOT_FUNCTION"
	ErrCodeExecutionFailed   = "EXECUTION_FAILED"
	ErrCodeInvalidScriptFile = "INVALID_SCRIPT_FILE"
)

// MaxScriptLength is the maximum allowed script length in bytes (100KB).
const MaxScriptLength = 100 * 1024

// ScriptConfig represents the configuration for a script transform module.
// Either Script or ScriptFile must be provided (but not both).
type ScriptConfig struct {
	// Script is the inline JavaScript source containing a transform(line) function
	Script string `json:"script,omitempty"`
	// ScriptFile is the path to a JavaScript file containing the transform(line) function
	ScriptFile string `json:"scriptFile,omitempty"`
}

// ScriptError carries structured context for script failures.
type ScriptError struct {
	Code    string
	Message string
	Err     error
}

func (e *ScriptError) Error() string { return e.Message }

// Unwrap returns the underlying error, if any.
func (e *ScriptError) Unwrap() error { return e.Err }

func newScriptError(code, message string, err error) *ScriptError {
	return &ScriptError{Code: code, Message: message, Err: err}
}

// ScriptModule executes a user-supplied JavaScript transform(line) function.
//
// The script is compiled once at build time, and the existence and
// invocability of transform are asserted then as well. This is the runtime
// counterpart of a static function type: the transform is supplied
// dynamically through configuration, so the "is this callable" check
// cannot move to compile time.
//
// Goja runtimes are not goroutine-safe; each module instance owns its
// runtime and Apply must not be called concurrently. The pipeline pass is
// single-threaded, so this holds by construction.
type ScriptModule struct {
	runtime     *goja.Runtime
	transformFn goja.Callable
}

// NewScriptFromConfig creates a new script transform module from configuration.
// It loads and validates the script, compiles it, and verifies that
// transform exists and is a function.
func NewScriptFromConfig(config ScriptConfig) (*ScriptModule, error) {
	source, err := resolveScriptSource(config)
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	if _, err := vm.RunString(source); err != nil {
		return nil, newScriptError(ErrCodeCompilationFailed, fmt.Sprintf("script compilation failed: %v", err), err)
	}

	transformVal := vm.Get("transform")
	if transformVal == nil || goja.IsUndefined(transformVal) {
		return nil, newScriptError(ErrCodeMissingTransform, "transform function not found in script", nil)
	}
	transformFn, ok := goja.AssertFunction(transformVal)
	if !ok {
		return nil, newScriptError(ErrCodeNotFunction, "transform is not a function", nil)
	}

	logger.Debug("script module initialized",
		slog.Int("script_length", len(source)),
		slog.Bool("from_file", config.ScriptFile != ""),
	)

	return &ScriptModule{runtime: vm, transformFn: transformFn}, nil
}

// ParseScriptConfig parses a raw configuration map into ScriptConfig.
func ParseScriptConfig(cfg map[string]interface{}) (ScriptConfig, error) {
	config := ScriptConfig{}

	script, hasScript := cfg["script"].(string)
	scriptFile, hasScriptFile := cfg["scriptFile"].(string)

	if hasScript && hasScriptFile {
		return config, fmt.Errorf("script transform: cannot specify both 'script' and 'scriptFile'")
	}
	if !hasScript && !hasScriptFile {
		if cfg["script"] != nil {
			return config, fmt.Errorf("script transform: 'script' must be a string")
		}
		if cfg["scriptFile"] != nil {
			return config, fmt.Errorf("script transform: 'scriptFile' must be a string")
		}
		return config, fmt.Errorf("script transform: either 'script' or 'scriptFile' is required")
	}

	config.Script = script
	config.ScriptFile = scriptFile
	return config, nil
}

// resolveScriptSource returns the script source, inline or from file.
func resolveScriptSource(config ScriptConfig) (string, error) {
	if config.Script != "" && config.ScriptFile != "" {
		return "", newScriptError(ErrCodeInvalidScriptFile, "cannot specify both 'script' and 'scriptFile'", nil)
	}

	if config.Script != "" {
		return validateScriptSource(config.Script)
	}

	if config.ScriptFile == "" {
		return "", newScriptError(ErrCodeScriptEmpty, "either 'script' or 'scriptFile' must be provided", nil)
	}

	if err := pathutil.ValidateLocalPath(config.ScriptFile); err != nil {
		return "", newScriptError(ErrCodeInvalidScriptFile, err.Error(), err)
	}
	if err := pathutil.RequireExtension(config.ScriptFile, ".js"); err != nil {
		return "", newScriptError(ErrCodeInvalidScriptFile, err.Error(), err)
	}

	file, err := os.Open(config.ScriptFile)
	if err != nil {
		return "", newScriptError(ErrCodeInvalidScriptFile, fmt.Sprintf("failed to open script file %q: %v", config.ScriptFile, err), err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("failed to close script file",
				slog.String("file", config.ScriptFile),
				slog.String("error", closeErr.Error()),
			)
		}
	}()

	// Cap the read so an oversized file fails instead of exhausting memory.
	content, err := io.ReadAll(io.LimitReader(file, MaxScriptLength+1))
	if err != nil {
		return "", newScriptError(ErrCodeInvalidScriptFile, fmt.Sprintf("failed to read script file %q: %v", config.ScriptFile, err), err)
	}
	if len(content) > MaxScriptLength {
		return "", newScriptError(ErrCodeScriptTooLong, fmt.Sprintf("script file %q exceeds maximum length of %d bytes", config.ScriptFile, MaxScriptLength), nil)
	}

	return validateScriptSource(string(content))
}

// validateScriptSource checks the script is non-empty and within limits.
func validateScriptSource(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", newScriptError(ErrCodeScriptEmpty, "script cannot be empty", nil)
	}
	if len(source) > MaxScriptLength {
		return "", newScriptError(ErrCodeScriptTooLong, fmt.Sprintf("script exceeds maximum length of %d bytes", MaxScriptLength), nil)
	}
	return source, nil
}

// Apply implements the transform.Module interface.
// It calls the JavaScript transform(line) function and requires a string
// result; null, undefined, and non-string values are rejected.
func (m *ScriptModule) Apply(line string) (string, error) {
	result, err := m.transformFn(goja.Undefined(), m.runtime.ToValue(line))
	if err != nil {
		if jsErr, ok := err.(*goja.Exception); ok {
			return "", newScriptError(ErrCodeExecutionFailed, fmt.Sprintf("script execution failed: %v", jsErr.Value()), err)
		}
		return "", newScriptError(ErrCodeExecutionFailed, fmt.Sprintf("script execution failed: %v", err), err)
	}

	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return "", newScriptError(ErrCodeExecutionFailed, "transform returned null or undefined - it must return a string", nil)
	}

	exported := result.Export()
	s, ok := exported.(string)
	if !ok {
		return "", newScriptError(ErrCodeExecutionFailed, fmt.Sprintf("transform returned %T - it must return a string", exported), nil)
	}
	return s, nil
}

// Verify ScriptModule implements Module
var _ Module = (*ScriptModule)(nil)
