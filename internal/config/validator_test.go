package config

import (
	"encoding/json"
	"testing"
)

func validConfig() map[string]interface{} {
	return map[string]interface{}{
		"schemaVersion": "1.0.0",
		"pipeline": map[string]interface{}{
			"name":    "demo",
			"version": "1.0.0",
			"source": map[string]interface{}{
				"type": "inline",
				"config": map[string]interface{}{
					"lines": []interface{}{"a", "b"},
				},
			},
			"transforms": []interface{}{
				map[string]interface{}{
					"type":   "case",
					"config": map[string]interface{}{"mode": "upper"},
				},
			},
			"sink": map[string]interface{}{
				"type": "capture",
			},
		},
	}
}

func TestValidateConfigValid(t *testing.T) {
	result := ValidateConfig(validConfig())
	if !result.Valid {
		t.Fatalf("expected valid config, got errors: %v", result.Errors)
	}
}

func TestValidateConfigInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg map[string]interface{})
	}{
		{
			name: "missing schemaVersion",
			mutate: func(cfg map[string]interface{}) {
				delete(cfg, "schemaVersion")
			},
		},
		{
			name: "bad schemaVersion pattern",
			mutate: func(cfg map[string]interface{}) {
				cfg["schemaVersion"] = "v1"
			},
		},
		{
			name: "missing pipeline name",
			mutate: func(cfg map[string]interface{}) {
				delete(cfg["pipeline"].(map[string]interface{}), "name")
			},
		},
		{
			name: "missing source",
			mutate: func(cfg map[string]interface{}) {
				delete(cfg["pipeline"].(map[string]interface{}), "source")
			},
		},
		{
			name: "missing sink",
			mutate: func(cfg map[string]interface{}) {
				delete(cfg["pipeline"].(map[string]interface{}), "sink")
			},
		},
		{
			name: "module without type",
			mutate: func(cfg map[string]interface{}) {
				cfg["pipeline"].(map[string]interface{})["source"] = map[string]interface{}{
					"config": map[string]interface{}{},
				}
			},
		},
		{
			name: "unknown top-level field",
			mutate: func(cfg map[string]interface{}) {
				cfg["extra"] = true
			},
		},
		{
			name: "transforms not an array",
			mutate: func(cfg map[string]interface{}) {
				cfg["pipeline"].(map[string]interface{})["transforms"] = "case"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			result := ValidateConfig(cfg)
			if result.Valid {
				t.Fatal("expected validation to fail")
			}
			if len(result.Errors) == 0 {
				t.Fatal("expected at least one validation error")
			}
		})
	}
}

func TestValidateConfigEmpty(t *testing.T) {
	result := ValidateConfig(nil)
	if result.Valid {
		t.Fatal("expected invalid result for nil data")
	}
	if result.Errors[0].Type != "required" {
		t.Errorf("error type = %q, want required", result.Errors[0].Type)
	}
}

func TestValidateConfigErrorsCarryPaths(t *testing.T) {
	cfg := validConfig()
	delete(cfg["pipeline"].(map[string]interface{}), "version")

	result := ValidateConfig(cfg)
	if result.Valid {
		t.Fatal("expected validation to fail")
	}
	for _, e := range result.Errors {
		if e.Path == "" {
			t.Errorf("validation error has empty path: %+v", e)
		}
	}
}

func TestGetEmbeddedSchema(t *testing.T) {
	raw := GetEmbeddedSchema()
	if len(raw) == 0 {
		t.Fatal("embedded schema is empty")
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("embedded schema is not valid JSON: %v", err)
	}
	if doc["$schema"] == nil {
		t.Error("embedded schema missing $schema")
	}
}
