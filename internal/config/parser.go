// Package config provides functionality for parsing and validating
// pipeline configuration files (JSON/YAML).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DetectFormat detects the configuration format from a file extension.
// Returns "json", "yaml", or "" when the extension is not recognized.
func DetectFormat(filepath string) string {
	switch strings.ToLower(path.Ext(filepath)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// IsJSON reports whether content parses as JSON.
func IsJSON(content string) bool {
	var v interface{}
	return json.Unmarshal([]byte(content), &v) == nil
}

// IsYAML reports whether content parses as YAML.
func IsYAML(content string) bool {
	var v interface{}
	return yaml.Unmarshal([]byte(content), &v) == nil
}

// ParseJSONString parses JSON content from a string.
func ParseJSONString(content string) *ParseResult {
	result := &ParseResult{Format: "json"}

	content = strings.TrimSpace(content)
	if content == "" {
		result.Errors = append(result.Errors, ParseError{
			Message: "empty content: expected JSON object",
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	var data interface{}
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		result.Errors = append(result.Errors, parseJSONError(err, content))
		return result
	}

	if data == nil {
		result.Errors = append(result.Errors, ParseError{
			Message: "invalid configuration: expected JSON object, got null",
			Type:    ErrorTypeFormat,
		})
		return result
	}

	dataMap, ok := data.(map[string]interface{})
	if !ok {
		result.Errors = append(result.Errors, ParseError{
			Message: fmt.Sprintf("invalid configuration: expected JSON object, got %T", data),
			Type:    ErrorTypeFormat,
		})
		return result
	}

	result.Data = dataMap
	return result
}

// parseJSONError extracts line/column information from a JSON unmarshal error.
func parseJSONError(err error, content string) ParseError {
	parseErr := ParseError{
		Message: err.Error(),
		Type:    ErrorTypeSyntax,
	}

	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		parseErr.Line, parseErr.Column = offsetToLineColumn(content, syntaxErr.Offset)
		parseErr.Message = fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())
	}
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		parseErr.Line, parseErr.Column = offsetToLineColumn(content, typeErr.Offset)
		parseErr.Message = fmt.Sprintf("type error at field '%s': expected %s, got %s",
			typeErr.Field, typeErr.Type.String(), typeErr.Value)
	}

	return parseErr
}

// offsetToLineColumn converts a byte offset to line and column numbers (1-based).
func offsetToLineColumn(content string, offset int64) (line, column int) {
	if offset <= 0 {
		return 1, 1
	}

	line = 1
	column = 1
	for i := int64(0); i < offset && i < int64(len(content)); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// ParseYAMLString parses YAML content from a string.
func ParseYAMLString(content string) *ParseResult {
	result := &ParseResult{Format: "yaml"}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, ParseError{
			Message: "empty content: expected YAML mapping",
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		result.Errors = append(result.Errors, parseYAMLError(err))
		return result
	}
	if data == nil {
		result.Errors = append(result.Errors, ParseError{
			Message: "invalid configuration: expected YAML mapping",
			Type:    ErrorTypeFormat,
		})
		return result
	}

	result.Data = normalizeYAMLMap(data)
	return result
}

// parseYAMLError extracts location information from a yaml.v3 error.
// yaml.TypeError carries per-field messages; plain errors often embed
// "line N:" which is surfaced as-is.
func parseYAMLError(err error) ParseError {
	parseErr := ParseError{
		Message: err.Error(),
		Type:    ErrorTypeSyntax,
	}
	if typeErr, ok := err.(*yaml.TypeError); ok && len(typeErr.Errors) > 0 {
		parseErr.Message = strings.Join(typeErr.Errors, "; ")
	}
	return parseErr
}

// normalizeYAMLMap converts nested map[interface{}]interface{} values
// (produced by YAML for some key shapes) into map[string]interface{} so
// the schema validator and converter see uniform JSON-style maps.
func normalizeYAMLMap(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = normalizeYAMLValue(v)
	}
	return out
}

func normalizeYAMLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return normalizeYAMLMap(val)
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAMLValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeYAMLValue(item)
		}
		return out
	default:
		return v
	}
}

// ParseFile parses a configuration file, detecting JSON/YAML by extension
// and falling back to content sniffing.
func ParseFile(filepath string) *ParseResult {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return &ParseResult{
			FilePath: filepath,
			Errors: []ParseError{{
				Path:    filepath,
				Message: fmt.Sprintf("failed to read file: %v", err),
				Type:    ErrorTypeIO,
			}},
		}
	}

	result := parseString(string(content), DetectFormat(filepath))
	result.FilePath = filepath
	for i := range result.Errors {
		if result.Errors[i].Path == "" {
			result.Errors[i].Path = filepath
		}
	}
	return result
}

// parseString parses content in the given format, sniffing when empty.
func parseString(content, format string) *ParseResult {
	if format == "" {
		switch {
		case IsJSON(content):
			format = "json"
		case IsYAML(content):
			format = "yaml"
		default:
			return &ParseResult{Errors: []ParseError{{
				Message: "unable to detect configuration format: not valid JSON or YAML",
				Type:    ErrorTypeFormat,
			}}}
		}
	}

	switch format {
	case "json":
		return ParseJSONString(content)
	case "yaml":
		return ParseYAMLString(content)
	default:
		return &ParseResult{Errors: []ParseError{{
			Message: fmt.Sprintf("unsupported format: %s", format),
			Type:    ErrorTypeFormat,
		}}}
	}
}

// Load parses and validates a configuration file.
// Returns a Result with parsed data, parse errors, and validation errors.
func Load(filepath string) *Result {
	parseResult := ParseFile(filepath)

	result := &Result{
		Data:        parseResult.Data,
		ParseErrors: parseResult.Errors,
		FilePath:    filepath,
		Format:      parseResult.Format,
	}

	// Skip validation when parsing already failed.
	if !parseResult.IsValid() {
		return result
	}

	result.ValidationErrors = ValidateConfig(parseResult.Data).Errors
	return result
}

// LoadString parses and validates configuration content from a string.
// If format is empty, it is auto-detected from the content.
func LoadString(content, format string) *Result {
	parseResult := parseString(content, format)

	result := &Result{
		Data:        parseResult.Data,
		ParseErrors: parseResult.Errors,
		Format:      parseResult.Format,
	}
	if !parseResult.IsValid() {
		return result
	}

	result.ValidationErrors = ValidateConfig(parseResult.Data).Errors
	return result
}
