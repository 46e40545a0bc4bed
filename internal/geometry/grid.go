// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package geometry

import (
	"math"

	"github.com/tomtom215/pollgraph/internal/models"
)

// Grid sizes the uniform segment group grid.
type Grid struct {
	// GroupWidth and GroupHeight are the requested cell size. They are raised
	// to the layout minimums when smaller.
	GroupWidth  float64
	GroupHeight float64

	// Columns forces a row-major grid with this many columns. Zero places
	// splits by their grouping question axes instead.
	Columns int
}

// CellSize returns the group width and height used for segmentCount segments.
func (g Grid) CellSize(layout Layout, segmentCount int) (float64, float64) {
	return math.Max(g.GroupWidth, layout.MinGroupWidth(segmentCount)),
		math.Max(g.GroupHeight, layout.MinGroupHeight)
}

// Position returns the grid column and row of a split.
//
// With axes, x-axis grouping questions select the column and all others
// select the row, each as a mixed-radix number over the questions' options
// (response groups, then the wildcard) in question order. With a fixed
// column count the split index is laid out row-major.
func (g Grid) Position(split models.Split, questions []models.GroupingQuestion) (col, row int) {
	if g.Columns > 0 {
		return split.Index % g.Columns, split.Index / g.Columns
	}
	for qi, q := range questions {
		radix := len(q.ResponseGroups) + 1
		digit := split.Groups[qi].ResponseGroupIndex
		if digit == models.WildcardIndex {
			digit = radix - 1
		}
		if q.Axis == models.AxisX {
			col = col*radix + digit
		} else {
			row = row*radix + digit
		}
	}
	return col, row
}

// Bounds assigns segment group bounds to every split, indexed by split index.
// segmentCount is the largest number of segments any group will hold.
func (g Grid) Bounds(all []models.Split, questions []models.GroupingQuestion, layout Layout, segmentCount int) []models.Rect {
	width, height := g.CellSize(layout, segmentCount)
	out := make([]models.Rect, len(all))
	for _, s := range all {
		col, row := g.Position(s, questions)
		out[s.Index] = models.Rect{
			X:      float64(col) * (width + layout.GroupGapX),
			Y:      float64(row) * (height + layout.GroupGapY),
			Width:  width,
			Height: height,
		}
	}
	return out
}
