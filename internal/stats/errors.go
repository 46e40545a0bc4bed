// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import "errors"

// ErrSplitMismatch is returned when the splits passed in were not generated
// from the engine's survey.
var ErrSplitMismatch = errors.New("splits do not match the survey")

// ErrRecordMismatch is returned when a record was not ingested for the engine's survey.
var ErrRecordMismatch = errors.New("respondent record does not match the survey")

// ErrInvariant is returned by ValidateInvariants.
var ErrInvariant = errors.New("statistics invariant violated")
