// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package sampling

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/pollgraph/internal/models"
)

// ErrInvalidSampleSize is returned for a negative synthetic sample size.
var ErrInvalidSampleSize = errors.New("synthetic sample size must be >= 0")

// floorEpsilon absorbs float error in ideal counts such as 0.29·100 = 28.999999999999996.
const floorEpsilon = 1e-9

// Mode selects how point counts are derived from statistics.
type Mode struct {
	size int
}

// Actual uses measured respondent counts.
func Actual() Mode {
	return Mode{}
}

// Synthetic rescales proportions onto size points. A size of 0 means Actual.
func Synthetic(size int) (Mode, error) {
	if size < 0 {
		return Mode{}, fmt.Errorf("%w: got %d", ErrInvalidSampleSize, size)
	}
	if size == 0 {
		return Actual(), nil
	}
	return Mode{size: size}, nil
}

// IsSynthetic reports whether the mode rescales onto a fixed sample size.
func (m Mode) IsSynthetic() bool {
	return m.size > 0
}

// Size returns the synthetic sample size, or 0 in Actual mode.
func (m Mode) Size() int {
	return m.size
}

func (m Mode) String() string {
	if m.IsSynthetic() {
		return fmt.Sprintf("synthetic(%d)", m.size)
	}
	return "actual"
}

// Counts returns the expanded-group point counts of st under mode.
func Counts(st models.QuestionStats, mode Mode) []int {
	if !mode.IsSynthetic() {
		return st.Counts(models.ViewExpanded)
	}
	return LargestRemainder(st.Proportions(models.ViewExpanded), mode.size)
}

// LargestRemainder distributes size units across proportions. Proportions
// are normalised by their sum first; negative and non-finite values count
// as zero. Ties in remainder go to the later group.
func LargestRemainder(proportions []float64, size int) []int {
	counts := make([]int, len(proportions))
	if size <= 0 || len(proportions) == 0 {
		return counts
	}

	clean := make([]float64, len(proportions))
	var sum float64
	for i, p := range proportions {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			continue
		}
		clean[i] = p
		sum += p
	}
	if sum <= 0 {
		return counts
	}

	type remainder struct {
		index int
		value float64
	}
	remainders := make([]remainder, len(clean))
	assigned := 0
	for i, p := range clean {
		ideal := p / sum * float64(size)
		floor := math.Floor(ideal + floorEpsilon)
		counts[i] = int(floor)
		assigned += counts[i]
		remainders[i] = remainder{index: i, value: math.Max(0, ideal-floor)}
	}

	// Largest remainder first; among equal remainders the later group first.
	sort.SliceStable(remainders, func(a, b int) bool {
		ra, rb := remainders[a], remainders[b]
		if math.Abs(ra.value-rb.value) > floorEpsilon {
			return ra.value > rb.value
		}
		return ra.index > rb.index
	})

	for shortfall := size - assigned; shortfall > 0; {
		for _, r := range remainders {
			if shortfall == 0 {
				break
			}
			if clean[r.index] == 0 {
				continue
			}
			counts[r.index]++
			shortfall--
		}
	}
	return counts
}
