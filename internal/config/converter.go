// Package config provides functionality for parsing and validating
// pipeline configuration files (JSON/YAML).
package config

import (
	"fmt"

	"github.com/lineflow/runtime/pkg/stream"
)

// ConvertToPipeline converts parsed configuration data to a Pipeline struct.
// The input data should have been validated against the schema before calling
// this function.
//
// The configuration is expected to have this structure:
//
//	{
//	  "schemaVersion": "1.0.0",
//	  "pipeline": {
//	    "name": "...",
//	    "version": "...",
//	    "source": {...},
//	    "transforms": [...],
//	    "sink": {...}
//	  }
//	}
func ConvertToPipeline(data map[string]interface{}) (*stream.Pipeline, error) {
	if data == nil {
		return nil, fmt.Errorf("configuration data is nil")
	}

	pipelineData, ok := data["pipeline"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'pipeline' section")
	}

	pipeline := &stream.Pipeline{
		Enabled: true,
	}

	var name string
	if name, ok = pipelineData["name"].(string); !ok {
		return nil, fmt.Errorf("missing required field 'pipeline.name'")
	}
	pipeline.Name = name
	// Use name as ID if not specified
	pipeline.ID = name

	var version string
	if version, ok = pipelineData["version"].(string); !ok {
		return nil, fmt.Errorf("missing required field 'pipeline.version'")
	}
	pipeline.Version = version

	if id, okID := pipelineData["id"].(string); okID {
		pipeline.ID = id
	}
	if description, okDesc := pipelineData["description"].(string); okDesc {
		pipeline.Description = description
	}
	if enabled, okEnabled := pipelineData["enabled"].(bool); okEnabled {
		pipeline.Enabled = enabled
	}

	sourceData, ok := pipelineData["source"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'pipeline.source' section")
	}
	sourceConfig, err := convertModuleConfig(sourceData)
	if err != nil {
		return nil, fmt.Errorf("invalid source config: %w", err)
	}
	pipeline.Source = sourceConfig

	if transformsData, okTransforms := pipelineData["transforms"].([]interface{}); okTransforms {
		for i, transformData := range transformsData {
			transformMap, isMap := transformData.(map[string]interface{})
			if !isMap {
				return nil, fmt.Errorf("invalid transform at index %d", i)
			}
			transformConfig, convertErr := convertModuleConfig(transformMap)
			if convertErr != nil {
				return nil, fmt.Errorf("invalid transform at index %d: %w", i, convertErr)
			}
			pipeline.Transforms = append(pipeline.Transforms, *transformConfig)
		}
	}

	sinkData, okSink := pipelineData["sink"].(map[string]interface{})
	if !okSink {
		return nil, fmt.Errorf("missing or invalid 'pipeline.sink' section")
	}
	sinkConfig, err := convertModuleConfig(sinkData)
	if err != nil {
		return nil, fmt.Errorf("invalid sink config: %w", err)
	}
	pipeline.Sink = sinkConfig

	return pipeline, nil
}

// convertModuleConfig converts a raw module configuration map to ModuleConfig.
func convertModuleConfig(data map[string]interface{}) (*stream.ModuleConfig, error) {
	moduleConfig := &stream.ModuleConfig{
		Config: make(map[string]interface{}),
	}

	moduleType, ok := data["type"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required field 'type'")
	}
	moduleConfig.Type = moduleType

	if configData, okConfig := data["config"].(map[string]interface{}); okConfig {
		for key, value := range configData {
			moduleConfig.Config[key] = value
		}
	}

	return moduleConfig, nil
}
