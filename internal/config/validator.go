// Package config provides functionality for parsing and validating
// pipeline configuration files (JSON/YAML).
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/pipeline-schema.json
var embeddedSchema []byte

// schemaOnce ensures thread-safe initialization of the compiled schema.
var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaInitErr  error
)

// GetEmbeddedSchema returns the embedded pipeline schema.
func GetEmbeddedSchema() []byte {
	return embeddedSchema
}

// getCompiledSchema returns the compiled JSON schema, compiling it on
// first use.
func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var schemaDoc interface{}
		if err := json.Unmarshal(embeddedSchema, &schemaDoc); err != nil {
			schemaInitErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		schemaURL := "https://lineflow.io/schemas/pipeline/v1.0.0/pipeline-schema.json"
		if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
			schemaInitErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaInitErr = compiler.Compile(schemaURL)
	})

	if schemaInitErr != nil {
		return nil, schemaInitErr
	}
	return compiledSchema, nil
}

// ValidateConfig validates a parsed configuration against the pipeline schema.
func ValidateConfig(data map[string]interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(data) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Path:    "/",
			Type:    "required",
			Message: "configuration data is empty",
		})
		return result
	}

	schema, err := getCompiledSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Path:    "/",
			Type:    "schema",
			Message: fmt.Sprintf("failed to load schema: %v", err),
		})
		return result
	}

	if err := schema.Validate(normalizeForSchema(data)); err != nil {
		result.Valid = false
		if detailed, ok := err.(*jsonschema.ValidationError); ok {
			result.Errors = flattenValidationErrors(detailed)
		} else {
			result.Errors = append(result.Errors, ValidationError{
				Path:    "/",
				Type:    "validation",
				Message: err.Error(),
			})
		}
	}

	return result
}

// normalizeForSchema round-trips data through JSON so YAML-decoded values
// (ints, nested types) take the JSON-native shapes the validator expects.
func normalizeForSchema(data map[string]interface{}) interface{} {
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return data
	}
	return normalized
}

// flattenValidationErrors converts the nested jsonschema error tree into a
// flat list of leaf errors with JSON-pointer paths.
func flattenValidationErrors(err *jsonschema.ValidationError) []ValidationError {
	if len(err.Causes) == 0 {
		path := "/"
		for _, seg := range err.InstanceLocation {
			path += seg + "/"
		}
		if len(err.InstanceLocation) > 0 {
			path = path[:len(path)-1]
		}
		return []ValidationError{{
			Path:    path,
			Type:    "validation",
			Message: err.Error(),
		}}
	}

	var out []ValidationError
	for _, cause := range err.Causes {
		out = append(out, flattenValidationErrors(cause)...)
	}
	return out
}
