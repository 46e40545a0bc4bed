// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package splits

import (
	"errors"
	"fmt"

	"github.com/tomtom215/pollgraph/internal/models"
)

// ErrNoGroupingQuestions is returned when there is nothing to split by.
var ErrNoGroupingQuestions = errors.New("at least one grouping question is required")

// ErrInvalidOptions is returned when an option vector does not address a split.
var ErrInvalidOptions = errors.New("invalid split options")

// Generate builds every split of the cross-tabulation in the documented
// index order, with BasisSplitIndices populated and Statistics left nil.
func Generate(questions []models.GroupingQuestion) ([]models.Split, error) {
	if len(questions) == 0 {
		return nil, ErrNoGroupingQuestions
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}

	ix := NewIndex(questions)
	out := make([]models.Split, ix.Len())
	for i := range out {
		options := ix.mustOptions(i)

		groups := make([]models.Group, len(questions))
		for qi, opt := range options {
			if opt == models.WildcardIndex {
				groups[qi] = models.Wildcard(questions[qi])
			} else {
				groups[qi] = models.Specific(questions[qi], opt)
			}
		}

		out[i] = models.Split{
			Index:             i,
			Groups:            groups,
			BasisSplitIndices: ix.basisFor(options),
		}
	}
	return out, nil
}

// Count returns the number of splits Generate would produce: Π(kᵢ + 1).
func Count(questions []models.GroupingQuestion) int {
	if len(questions) == 0 {
		return 0
	}
	return NewIndex(questions).Len()
}

// BasisIndices returns the indices of all basis splits, ascending.
func BasisIndices(splits []models.Split) []int {
	var out []int
	for _, s := range splits {
		if s.IsBasis() {
			out = append(out, s.Index)
		}
	}
	return out
}

// AggregatedIndices returns the indices of all aggregated splits, ascending.
func AggregatedIndices(splits []models.Split) []int {
	var out []int
	for _, s := range splits {
		if !s.IsBasis() {
			out = append(out, s.Index)
		}
	}
	return out
}

// Dependents maps every basis split index to the aggregated splits whose
// basis set contains it. Used to find which aggregated splits an update
// to a basis split invalidates.
func Dependents(splits []models.Split) map[int][]int {
	out := make(map[int][]int)
	for _, s := range splits {
		if s.IsBasis() {
			continue
		}
		for _, b := range s.BasisSplitIndices {
			out[b] = append(out[b], s.Index)
		}
	}
	return out
}

// basisFor expands every wildcard in options across all response groups of
// its question and returns the resulting basis split indices in ascending order.
func (ix Index) basisFor(options []int) []int {
	current := make([]int, len(options))
	var out []int

	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(options) {
			idx, _ := ix.Of(current)
			out = append(out, idx)
			return
		}
		if options[pos] != models.WildcardIndex {
			current[pos] = options[pos]
			walk(pos + 1)
			return
		}
		for g := 0; g < ix.groupCount(pos); g++ {
			current[pos] = g
			walk(pos + 1)
		}
	}
	walk(0)
	return out
}

func (ix Index) mustOptions(i int) []int {
	options, err := ix.Options(i)
	if err != nil {
		panic(fmt.Sprintf("splits: index %d out of range: %v", i, err))
	}
	return options
}
