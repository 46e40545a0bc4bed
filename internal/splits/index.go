// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package splits

import (
	"fmt"

	"github.com/tomtom215/pollgraph/internal/models"
)

// Index converts between split indices and per-question option vectors.
//
// Option vectors hold a response group index per grouping question, or
// models.WildcardIndex for the wildcard.
type Index struct {
	// radices[i] is the option count of question i (response groups + wildcard).
	radices []int
	size    int
}

// NewIndex builds the index space for the given grouping questions.
func NewIndex(questions []models.GroupingQuestion) Index {
	radices := make([]int, len(questions))
	size := 1
	for i, q := range questions {
		radices[i] = len(q.ResponseGroups) + 1
		size *= radices[i]
	}
	return Index{radices: radices, size: size}
}

// Len returns the total number of splits.
func (ix Index) Len() int {
	return ix.size
}

// Of returns the split index addressed by options.
func (ix Index) Of(options []int) (int, error) {
	if len(options) != len(ix.radices) {
		return 0, fmt.Errorf("%w: got %d options for %d grouping questions", ErrInvalidOptions, len(options), len(ix.radices))
	}
	idx := 0
	for i, opt := range options {
		digit := opt
		if opt == models.WildcardIndex {
			digit = ix.radices[i] - 1
		} else if opt < 0 || opt >= ix.groupCount(i) {
			return 0, fmt.Errorf("%w: option %d for grouping question %d (has %d groups)", ErrInvalidOptions, opt, i, ix.groupCount(i))
		}
		idx = idx*ix.radices[i] + digit
	}
	return idx, nil
}

// Options returns the option vector of split i.
func (ix Index) Options(i int) ([]int, error) {
	if i < 0 || i >= ix.size {
		return nil, fmt.Errorf("%w: split index %d outside [0, %d)", ErrInvalidOptions, i, ix.size)
	}
	out := make([]int, len(ix.radices))
	for pos := len(ix.radices) - 1; pos >= 0; pos-- {
		digit := i % ix.radices[pos]
		i /= ix.radices[pos]
		if digit == ix.radices[pos]-1 {
			out[pos] = models.WildcardIndex
		} else {
			out[pos] = digit
		}
	}
	return out, nil
}

// BasisIndexFor returns the basis split a respondent with the given grouping
// answers belongs to. Wildcards are rejected.
func (ix Index) BasisIndexFor(groupIndices []int) (int, error) {
	for i, g := range groupIndices {
		if g == models.WildcardIndex {
			return 0, fmt.Errorf("%w: wildcard at grouping question %d is not a basis split", ErrInvalidOptions, i)
		}
	}
	return ix.Of(groupIndices)
}

func (ix Index) groupCount(pos int) int {
	return ix.radices[pos] - 1
}
