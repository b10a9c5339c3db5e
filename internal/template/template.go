// Package template provides template evaluation for dynamic line construction.
// It supports variable substitution using {{name}} syntax with optional
// default values, e.g. "{{line}}" or "{{pipeline.name | default: \"anon\"}}".
package template

import (
	"fmt"
	"strings"
)

// Template syntax constants
const (
	// Prefix is the opening delimiter for template variables
	Prefix = "{{"
	// Suffix is the closing delimiter for template variables
	Suffix = "}}"
)

// Variable represents a parsed template variable.
type Variable struct {
	FullMatch    string // The full matched string including {{ }}
	Name         string // The variable name (e.g., "line", "pipeline.name")
	DefaultValue string // Default value if specified (empty string if not)
	HasDefault   bool   // Whether a default value was specified
}

// Evaluator evaluates template strings against a variable map.
//
// Parsed variables are cached per template string, so repeated evaluation
// of the same template (once per line in a pipeline run) does not re-parse.
// The cache is unbounded and not goroutine-safe; each run owns its own
// Evaluator.
type Evaluator struct {
	cache map[string][]Variable
}

// NewEvaluator creates a new template evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{cache: make(map[string][]Variable)}
}

// Evaluate substitutes every {{name}} variable in tmpl using vars.
// A missing variable falls back to its default value when one is declared,
// otherwise evaluation fails.
func (e *Evaluator) Evaluate(tmpl string, vars map[string]string) (string, error) {
	parsed, err := e.parse(tmpl)
	if err != nil {
		return "", err
	}

	out := tmpl
	for _, v := range parsed {
		value, ok := vars[v.Name]
		if !ok {
			if !v.HasDefault {
				return "", fmt.Errorf("unknown template variable %q", v.Name)
			}
			value = v.DefaultValue
		}
		out = strings.ReplaceAll(out, v.FullMatch, value)
	}
	return out, nil
}

// Validate parses tmpl and checks every variable against the allowed set.
// It is used at module build time so template errors surface before any
// line is consumed.
func (e *Evaluator) Validate(tmpl string, allowed map[string]bool) error {
	parsed, err := e.parse(tmpl)
	if err != nil {
		return err
	}
	for _, v := range parsed {
		if !allowed[v.Name] {
			return fmt.Errorf("unknown template variable %q", v.Name)
		}
	}
	return nil
}

// parse returns the variables of tmpl, using the cache when possible.
func (e *Evaluator) parse(tmpl string) ([]Variable, error) {
	if cached, ok := e.cache[tmpl]; ok {
		return cached, nil
	}

	var parsed []Variable
	rest := tmpl
	for {
		start := strings.Index(rest, Prefix)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], Suffix)
		if end < 0 {
			return nil, fmt.Errorf("invalid template syntax: missing closing %s", Suffix)
		}
		full := rest[start : start+end+len(Suffix)]
		v, err := parseVariable(full)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, v)
		rest = rest[start+end+len(Suffix):]
	}

	e.cache[tmpl] = parsed
	return parsed, nil
}

// parseVariable parses one "{{ name | default: \"value\" }}" expression.
func parseVariable(full string) (Variable, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(full, Prefix), Suffix)

	name := inner
	defaultValue := ""
	hasDefault := false

	if idx := strings.Index(inner, "|"); idx >= 0 {
		name = inner[:idx]
		clause := strings.TrimSpace(inner[idx+1:])
		value, ok := strings.CutPrefix(clause, "default:")
		if !ok {
			return Variable{}, fmt.Errorf("invalid template clause %q: expected 'default:'", clause)
		}
		value = strings.TrimSpace(value)
		if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
			return Variable{}, fmt.Errorf("invalid default value %q: expected a quoted string", value)
		}
		defaultValue = value[1 : len(value)-1]
		hasDefault = true
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Variable{}, fmt.Errorf("invalid template syntax: empty variable name")
	}

	return Variable{
		FullMatch:    full,
		Name:         name,
		DefaultValue: defaultValue,
		HasDefault:   hasDefault,
	}, nil
}
