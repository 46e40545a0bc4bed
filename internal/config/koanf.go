// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/pollgraph/internal/models"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"pollgraph.yaml",
	"config.yaml",
	"config.yml",
	"/etc/pollgraph/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Survey: SurveyConfig{
			GroupingQuestions: []models.GroupingQuestion{},
			ResponseQuestions: []models.ResponseQuestion{},
		},
		Layout: LayoutConfig{
			BaseSegmentWidth:       10,
			ResponseGap:            2,
			MinGroupAvailableWidth: 60,
			MinGroupHeight:         40,
			GroupGapX:              12,
			GroupGapY:              12,
			GroupWidth:             200,
			GroupHeight:            120,
			Columns:                0,
		},
		Sampling: SamplingConfig{
			SyntheticSampleSize: 0,
		},
		Packing: PackingConfig{
			RepackWidthThreshold: 0.10,
			Margin:               1,
			Candidates:           12,
			Seed:                 42,
		},
		Stats: StatsConfig{
			Workers:         0,
			CheckInvariants: false,
		},
		Input: InputConfig{
			BatchSize: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
//
// The survey itself can only come from the file; environment variables
// cover the scalar settings.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// LOG_LEVEL -> logging.level, REPACK_WIDTH_THRESHOLD -> packing.repack_width_threshold
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Survey
	"survey_name": "survey.name",

	// Layout
	"base_segment_width":        "layout.base_segment_width",
	"response_gap":              "layout.response_gap",
	"min_group_available_width": "layout.min_group_available_width",
	"min_group_height":          "layout.min_group_height",
	"group_gap_x":               "layout.group_gap_x",
	"group_gap_y":               "layout.group_gap_y",
	"group_width":               "layout.group_width",
	"group_height":              "layout.group_height",
	"grid_columns":              "layout.columns",

	// Sampling
	"synthetic_sample_size": "sampling.synthetic_sample_size",

	// Packing
	"repack_width_threshold": "packing.repack_width_threshold",
	"packing_margin":         "packing.margin",
	"packing_candidates":     "packing.candidates",
	"packing_seed":           "packing.seed",

	// Statistics
	"stats_workers":          "stats.workers",
	"stats_check_invariants": "stats.check_invariants",

	// Input / output
	"respondents_path": "input.respondents_path",
	"batch_size":       "input.batch_size",
	"output_path":      "input.output_path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics
	"metrics_textfile": "metrics.textfile_path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LOG_LEVEL -> logging.level
//   - SYNTHETIC_SAMPLE_SIZE -> sampling.synthetic_sample_size
//   - STATS_WORKERS -> stats.workers
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
