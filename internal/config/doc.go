// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

/*
Package config loads the pollgraph run configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, then pollgraph.yaml, config.yaml,
    config.yml and /etc/pollgraph/config.yaml
  - Environment variables for scalar settings (LOG_LEVEL, BATCH_SIZE,
    SYNTHETIC_SAMPLE_SIZE, REPACK_WIDTH_THRESHOLD, ...)

The survey (grouping questions, response questions and the optional weight
question) can only be described in the YAML file.

# Example File

	survey:
	  name: party-age
	  grouping_questions:
	    - battery_name: demographics
	      var_name: pid2
	      axis: x
	      response_groups:
	        - {label: Democrat, values: [1]}
	        - {label: Republican, values: [2]}
	  response_questions:
	    - battery_name: approval
	      var_name: app4
	      expanded:
	        - {label: Approve, values: [1]}
	        - {label: Disapprove, values: [2]}
	      collapsed:
	        - {label: Any, values: [1, 2]}
	  weight_question:
	    var_name: wt
	sampling:
	  synthetic_sample_size: 0
	logging:
	  level: info
	  format: json

# Validation

Load validates struct tags with go-playground/validator and then the survey's
question invariants (mutually exclusive response groups, collapsed groups
built from whole expanded groups, no question used twice). Every failure
wraps ErrInvalidConfig.

# Conversion

Config exposes the settings in the types the engine packages take:
SurveyModel, SegmentLayout, Grid, SamplingMode, PackingSettings,
StatsSettings and LoggingSettings.
*/
package config
