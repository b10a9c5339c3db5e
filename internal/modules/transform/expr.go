// Package transform provides implementations for transform modules.
// This file implements the "expr" transform module, which evaluates an
// expr-lang expression against each line.
package transform

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprConfig represents the configuration for an expr transform module.
type ExprConfig struct {
	// Expression is the expr-lang expression to evaluate; the current
	// line is available as `line` and the result must be a string
	// (required). Example: `upper(trim(line))`.
	Expression string `json:"expression"`
}

// exprEnv is the evaluation environment; `line` is the current line.
type exprEnv struct {
	Line string `expr:"line"`
}

// ExprModule implements the expr transform. The expression is compiled
// once at build time with a typed environment, so syntax and type errors
// surface before any line is consumed.
type ExprModule struct {
	expression string
	program    *vm.Program
}

// NewExprFromConfig creates a new expr transform module from configuration.
func NewExprFromConfig(config ExprConfig) (*ExprModule, error) {
	if config.Expression == "" {
		return nil, fmt.Errorf("expr transform: 'expression' is required")
	}

	program, err := expr.Compile(config.Expression,
		expr.Env(exprEnv{}),
		expr.AsKind(reflect.String),
	)
	if err != nil {
		return nil, fmt.Errorf("expr transform: invalid expression %q: %w", config.Expression, err)
	}

	return &ExprModule{expression: config.Expression, program: program}, nil
}

// ParseExprConfig parses a raw configuration map into ExprConfig.
func ParseExprConfig(cfg map[string]interface{}) (ExprConfig, error) {
	expression, ok := cfg["expression"].(string)
	if !ok || expression == "" {
		return ExprConfig{}, fmt.Errorf("expr transform: 'expression' is required and must be a string")
	}
	return ExprConfig{Expression: expression}, nil
}

// Apply implements the transform.Module interface.
func (m *ExprModule) Apply(line string) (string, error) {
	out, err := expr.Run(m.program, exprEnv{Line: line})
	if err != nil {
		return "", fmt.Errorf("evaluating expression %q: %w", m.expression, err)
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("expression %q returned %T, expected string", m.expression, out)
	}
	return s, nil
}

// Verify ExprModule implements Module
var _ Module = (*ExprModule)(nil)
