// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator caches struct metadata across calls and
// is shared by the configuration loader and the survey model. Failing fields
// are reported by their koanf (or json) key with their full path from the
// validated root, so a message reads like the setting that needs fixing:
//
//	survey.grouping_questions[0].response_groups[1].label: label is required
//
// Custom validators:
//   - finite: rejects NaN and ±Inf on float fields
//
// Example usage:
//
//	type PackingConfig struct {
//	    RepackWidthThreshold float64 `koanf:"repack_width_threshold" validate:"finite,gte=0,lte=1"`
//	    Candidates           int     `koanf:"candidates" validate:"gte=1,lte=64"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid configuration: %w", verr)
//	}
//
// ValidateStruct returns a typed *RequestValidationError; compare it to nil
// before converting it to the error interface.
package validation
