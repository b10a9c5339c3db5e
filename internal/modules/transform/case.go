// Package transform provides implementations for transform modules.
// This file implements the "case" transform module for letter-case mapping.
package transform

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case modes supported by the case transform module.
const (
	CaseUpper = "upper"
	CaseLower = "lower"
	CaseTitle = "title"
)

// CaseConfig represents the configuration for a case transform module.
type CaseConfig struct {
	// Mode selects the mapping: "upper", "lower", or "title"
	Mode string `json:"mode"`
}

// CaseModule implements the case transform.
type CaseModule struct {
	mode  string
	title cases.Caser
}

// NewCaseFromConfig creates a new case transform module from configuration.
func NewCaseFromConfig(config CaseConfig) (*CaseModule, error) {
	switch config.Mode {
	case CaseUpper, CaseLower:
		return &CaseModule{mode: config.Mode}, nil
	case CaseTitle:
		return &CaseModule{mode: config.Mode, title: cases.Title(language.Und)}, nil
	default:
		return nil, fmt.Errorf("case transform: unsupported mode %q (expected upper, lower, or title)", config.Mode)
	}
}

// ParseCaseConfig parses a raw configuration map into CaseConfig.
func ParseCaseConfig(cfg map[string]interface{}) (CaseConfig, error) {
	mode, ok := cfg["mode"].(string)
	if !ok || mode == "" {
		return CaseConfig{}, fmt.Errorf("case transform: 'mode' is required and must be a string")
	}
	return CaseConfig{Mode: mode}, nil
}

// Apply implements the transform.Module interface.
func (m *CaseModule) Apply(line string) (string, error) {
	switch m.mode {
	case CaseUpper:
		return strings.ToUpper(line), nil
	case CaseLower:
		return strings.ToLower(line), nil
	default:
		return m.title.String(line), nil
	}
}

// Verify CaseModule implements Module
var _ Module = (*CaseModule)(nil)
