// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

import "errors"

// ErrInvalidQuestion is returned when a question definition violates the
// mutual-exclusion or union rules for its response groups.
var ErrInvalidQuestion = errors.New("invalid question definition")

// ErrInvalidSurvey is returned when the survey configuration as a whole is malformed.
var ErrInvalidSurvey = errors.New("invalid survey configuration")

// ErrInvalidPointKey is returned when a composite point key cannot be parsed.
var ErrInvalidPointKey = errors.New("invalid point key")
