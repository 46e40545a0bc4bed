// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package packing

import "github.com/tomtom215/pollgraph/internal/models"

// Allocate returns count points with local IDs 0..count-1.
func Allocate(split, group, count int) []models.Point {
	if count < 0 {
		count = 0
	}
	out := make([]models.Point, count)
	for i := range out {
		out[i] = models.Point{SplitIndex: split, ResponseGroupIndex: group, LocalID: i}
	}
	return out
}

// Union returns the points an aggregated split shows for one response group:
// every basis split's allocated points, basis by basis. counts[i] is the
// group's point count in basis[i].
func Union(group int, basis, counts []int) []models.Point {
	total := 0
	for i := range basis {
		if i < len(counts) && counts[i] > 0 {
			total += counts[i]
		}
	}

	out := make([]models.Point, 0, total)
	for i, b := range basis {
		if i >= len(counts) {
			break
		}
		out = append(out, Allocate(b, group, counts[i])...)
	}
	return out
}
