// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/pollgraph/internal/models"
)

// DefaultTolerance is the absolute tolerance used when comparing float sums.
const DefaultTolerance = 1e-9

// ValidateInvariants checks measured splits against the statistical
// invariants:
//
//   - expanded and collapsed weights each sum to totalWeight
//   - expanded and collapsed counts each sum to totalCount
//   - proportions sum to 1 when totalWeight > 0, otherwise all are 0
//   - an aggregated split's totals and group weights equal the sums over its basis splits
//
// Tolerances are relative to the magnitude of the compared totals. All
// violations are joined into one error wrapping ErrInvariant.
func ValidateInvariants(all []models.Split, tolerance float64) error {
	var errs []error
	fail := func(split int, q models.Question, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: split %d, %s: %s", ErrInvariant, split, q.Key(), fmt.Sprintf(format, args...)))
	}

	for _, s := range all {
		for qi, st := range s.Statistics {
			checkQuestion(s.Index, st, tolerance, fail)

			if s.IsBasis() {
				continue
			}
			var count int
			var weight float64
			groupWeights := make([]float64, len(st.Expanded))
			for _, b := range s.BasisSplitIndices {
				if b < 0 || b >= len(all) || all[b].Statistics == nil {
					continue
				}
				bs := all[b].Statistics[qi]
				count += bs.TotalCount
				weight += bs.TotalWeight
				for g := range groupWeights {
					if g < len(bs.Expanded) {
						groupWeights[g] += bs.Expanded[g].Weight
					}
				}
			}
			if count != st.TotalCount {
				fail(s.Index, st.Question, "totalCount %d != Σ basis totalCount %d", st.TotalCount, count)
			}
			if !approxEqual(weight, st.TotalWeight, tolerance) {
				fail(s.Index, st.Question, "totalWeight %g != Σ basis totalWeight %g", st.TotalWeight, weight)
			}
			for g, w := range groupWeights {
				if !approxEqual(w, st.Expanded[g].Weight, tolerance) {
					fail(s.Index, st.Question, "expanded group %q weight %g != Σ basis weight %g", st.Expanded[g].Label, st.Expanded[g].Weight, w)
				}
			}
		}
	}
	return errors.Join(errs...)
}

func checkQuestion(split int, st models.QuestionStats, tolerance float64, fail func(int, models.Question, string, ...any)) {
	for _, view := range []models.View{models.ViewExpanded, models.ViewCollapsed} {
		groups := st.Groups(view)

		var count int
		var weight, prop float64
		for _, g := range groups {
			count += g.Count
			weight += g.Weight
			prop += g.Proportion
			if st.TotalWeight <= 0 && g.Proportion != 0 {
				fail(split, st.Question, "%s group %q has proportion %g with zero total weight", view, g.Label, g.Proportion)
			}
		}
		if count != st.TotalCount {
			fail(split, st.Question, "Σ %s count %d != totalCount %d", view, count, st.TotalCount)
		}
		if !approxEqual(weight, st.TotalWeight, tolerance) {
			fail(split, st.Question, "Σ %s weight %g != totalWeight %g", view, weight, st.TotalWeight)
		}
		if st.TotalWeight > 0 && !approxEqual(prop, 1, tolerance) {
			fail(split, st.Question, "Σ %s proportion %g != 1", view, prop)
		}
	}
}

func approxEqual(a, b, tolerance float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tolerance*scale
}
