// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package config

import (
	"github.com/tomtom215/pollgraph/internal/geometry"
	"github.com/tomtom215/pollgraph/internal/logging"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/packing"
	"github.com/tomtom215/pollgraph/internal/sampling"
	"github.com/tomtom215/pollgraph/internal/stats"
)

// Config holds all application configuration.
type Config struct {
	Survey   SurveyConfig   `koanf:"survey"`
	Layout   LayoutConfig   `koanf:"layout"`
	Sampling SamplingConfig `koanf:"sampling"`
	Packing  PackingConfig  `koanf:"packing"`
	Stats    StatsConfig    `koanf:"stats"`
	Input    InputConfig    `koanf:"input"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// SurveyConfig describes the questions of the dataset.
type SurveyConfig struct {
	Name              string                    `koanf:"name" validate:"required"`
	GroupingQuestions []models.GroupingQuestion `koanf:"grouping_questions" validate:"required,min=1,dive"`
	ResponseQuestions []models.ResponseQuestion `koanf:"response_questions" validate:"required,min=1,dive"`

	// WeightQuestion is optional. Leave it empty to weigh every respondent 1.
	WeightQuestion models.Question `koanf:"weight_question" validate:"-"`
}

// LayoutConfig holds segment and grid layout constants.
type LayoutConfig struct {
	BaseSegmentWidth       float64 `koanf:"base_segment_width" validate:"finite,gte=0"`
	ResponseGap            float64 `koanf:"response_gap" validate:"finite,gte=0"`
	MinGroupAvailableWidth float64 `koanf:"min_group_available_width" validate:"finite,gte=0"`
	MinGroupHeight         float64 `koanf:"min_group_height" validate:"finite,gte=0"`
	GroupGapX              float64 `koanf:"group_gap_x" validate:"finite,gte=0"`
	GroupGapY              float64 `koanf:"group_gap_y" validate:"finite,gte=0"`

	// GroupWidth and GroupHeight size each grid cell; they are raised to the
	// layout minimums when smaller.
	GroupWidth  float64 `koanf:"group_width" validate:"finite,gte=0"`
	GroupHeight float64 `koanf:"group_height" validate:"finite,gte=0"`
	Columns     int     `koanf:"columns" validate:"gte=0"` // 0 = place by grouping question axis
}

// SamplingConfig selects actual or synthetic point counts.
type SamplingConfig struct {
	SyntheticSampleSize int `koanf:"synthetic_sample_size" validate:"gte=0"` // 0 = actual counts
}

// PackingConfig tunes point placement.
type PackingConfig struct {
	RepackWidthThreshold float64 `koanf:"repack_width_threshold" validate:"finite,gte=0"`
	Margin               float64 `koanf:"margin" validate:"finite,gt=0"`
	Candidates           int     `koanf:"candidates" validate:"gte=1,lte=256"`
	Seed                 int64   `koanf:"seed"`
}

// StatsConfig holds statistics engine settings.
type StatsConfig struct {
	Workers         int  `koanf:"workers" validate:"gte=0"` // 0 = runtime.NumCPU()
	CheckInvariants bool `koanf:"check_invariants"`
}

// InputConfig locates the respondent data and the output document.
type InputConfig struct {
	RespondentsPath string `koanf:"respondents_path" validate:"omitempty,file"` // empty = stdin
	BatchSize       int    `koanf:"batch_size" validate:"gte=0"`                // 0 = one full load
	OutputPath      string `koanf:"output_path"`                                // empty = stdout
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives the Prometheus text exposition of every
	// metric after a run.
	TextfilePath string `koanf:"textfile_path"`
}

// SurveyModel converts the survey section into the domain model.
func (c *Config) SurveyModel() models.Survey {
	weight := models.UnitWeight()
	if c.Survey.WeightQuestion != (models.Question{}) {
		weight = models.WeightFrom(c.Survey.WeightQuestion)
	}

	grouping := make([]models.GroupingQuestion, len(c.Survey.GroupingQuestions))
	for i, q := range c.Survey.GroupingQuestions {
		grouping[i] = q.Clone()
	}
	response := make([]models.ResponseQuestion, len(c.Survey.ResponseQuestions))
	for i, q := range c.Survey.ResponseQuestions {
		response[i] = q.Clone()
	}

	return models.Survey{
		Name:              c.Survey.Name,
		GroupingQuestions: grouping,
		ResponseQuestions: response,
		Weight:            weight,
	}
}

// SegmentLayout returns the segment layout constants.
func (c *Config) SegmentLayout() geometry.Layout {
	return geometry.Layout{
		BaseSegmentWidth:       c.Layout.BaseSegmentWidth,
		ResponseGap:            c.Layout.ResponseGap,
		MinGroupAvailableWidth: c.Layout.MinGroupAvailableWidth,
		MinGroupHeight:         c.Layout.MinGroupHeight,
		GroupGapX:              c.Layout.GroupGapX,
		GroupGapY:              c.Layout.GroupGapY,
	}
}

// Grid returns the segment group grid settings.
func (c *Config) Grid() geometry.Grid {
	return geometry.Grid{
		GroupWidth:  c.Layout.GroupWidth,
		GroupHeight: c.Layout.GroupHeight,
		Columns:     c.Layout.Columns,
	}
}

// SamplingMode returns the configured sampling mode.
func (c *Config) SamplingMode() (sampling.Mode, error) {
	return sampling.Synthetic(c.Sampling.SyntheticSampleSize)
}

// PackingSettings returns the packer configuration.
func (c *Config) PackingSettings() packing.Config {
	return packing.Config{
		RepackWidthThreshold: c.Packing.RepackWidthThreshold,
		Margin:               c.Packing.Margin,
		Candidates:           c.Packing.Candidates,
		Seed:                 c.Packing.Seed,
	}
}

// StatsSettings returns the statistics engine configuration.
func (c *Config) StatsSettings() stats.Config {
	return stats.Config{Workers: c.Stats.Workers}
}

// LoggingSettings returns the logger configuration.
func (c *Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
