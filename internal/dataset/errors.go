// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package dataset

import "errors"

var (
	// ErrSplitNotFound is returned for a split index outside the split array.
	ErrSplitNotFound = errors.New("split not found")

	// ErrQuestionNotFound is returned for an unknown response question key.
	ErrQuestionNotFound = errors.New("response question not found")

	// ErrViewNotFound is returned for a view other than expanded or collapsed.
	ErrViewNotFound = errors.New("view not found")

	// ErrInvalidName is returned by New for an empty dataset name.
	ErrInvalidName = errors.New("dataset name is required")
)
