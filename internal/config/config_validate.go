// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/pollgraph/internal/validation"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks struct-level rules first, then the survey's question
// invariants.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, verr)
	}

	if err := c.SurveyModel().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return c.validateGrid()
}

// validateGrid rejects a fixed column count larger than the split count.
func (c *Config) validateGrid() error {
	if c.Layout.Columns == 0 {
		return nil
	}
	splits := 1
	for _, q := range c.Survey.GroupingQuestions {
		splits *= len(q.ResponseGroups) + 1
	}
	if c.Layout.Columns > splits {
		return fmt.Errorf("%w: layout.columns %d exceeds the %d splits of the survey",
			ErrInvalidConfig, c.Layout.Columns, splits)
	}
	return nil
}
