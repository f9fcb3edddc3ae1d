// Package config holds the server settings: overlap severity policy and
// analysis heuristics. Values layer as defaults, then an optional YAML
// file, then LSP initializationOptions; only fields present in a source
// overwrite.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wiedymi/ass-lsp/internal/analysis"
	"github.com/wiedymi/ass-lsp/internal/document"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Severity names: "error", "warning", "information", "hint" or "none".
	SameLayerOverlap  string `json:"same_layer_overlap"  yaml:"same_layer_overlap"`
	CrossLayerOverlap string `json:"cross_layer_overlap" yaml:"cross_layer_overlap"`

	MaxActiveEvents   int `json:"max_active_events"   yaml:"max_active_events"`
	MaxTransformDepth int `json:"max_transform_depth" yaml:"max_transform_depth"`
	MaxLineLength     int `json:"max_line_length"     yaml:"max_line_length"`
}

var defaultConfig = Config{
	SameLayerOverlap:  "warning",
	CrossLayerOverlap: "information",
	MaxActiveEvents:   10,
	MaxTransformDepth: 2,
	MaxLineLength:     500,
}

// Default returns a copy of the built-in settings.
func Default() Config {
	return defaultConfig
}

// Load merges initializationOptions (or any JSON-shaped value) over cfg.
func Load(cfg Config, v any) (Config, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return cfg, fmt.Errorf("failed to marshal source: %w", err)
	}
	// only fields present in src will overwrite.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}
	return cfg, nil
}

// LoadFile merges a YAML config file over cfg.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Policy translates the settings into the analyzer's terms.
func (c Config) Policy() analysis.Policy {
	policy := analysis.DefaultPolicy()
	policy.SameLayerOverlap = parseSeverity(c.SameLayerOverlap, policy.SameLayerOverlap)
	policy.CrossLayerOverlap = parseSeverity(c.CrossLayerOverlap, policy.CrossLayerOverlap)
	policy.MaxActiveEvents = c.MaxActiveEvents
	policy.MaxTransformDepth = c.MaxTransformDepth
	policy.MaxLineLength = c.MaxLineLength
	return policy
}

func parseSeverity(name string, fallback document.Severity) document.Severity {
	switch name {
	case "error":
		return document.SeverityError
	case "warning":
		return document.SeverityWarning
	case "information", "info":
		return document.SeverityInformation
	case "hint":
		return document.SeverityHint
	case "none", "off":
		return 0
	default:
		return fallback
	}
}
