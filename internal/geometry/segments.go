// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/pollgraph/internal/metrics"
	"github.com/tomtom215/pollgraph/internal/models"
)

var (
	// ErrInsufficientWidth is returned when the base widths and gaps alone exceed the group width.
	ErrInsufficientWidth = errors.New("segment group too narrow")

	// ErrSegmentCount is returned when there is nothing to lay out.
	ErrSegmentCount = errors.New("at least one segment is required")

	// ErrInvalidProportion is returned for negative or non-finite proportions.
	ErrInvalidProportion = errors.New("invalid proportion")

	// ErrInvalidView is returned for a view other than expanded or collapsed.
	ErrInvalidView = errors.New("invalid view")

	// ErrQuestionNotMeasured is returned when a measured split has no
	// statistics for the requested question.
	ErrQuestionNotMeasured = errors.New("question not measured for split")
)

// Layout holds the layout constants shared by every segment group.
type Layout struct {
	BaseSegmentWidth       float64
	ResponseGap            float64
	MinGroupAvailableWidth float64
	MinGroupHeight         float64
	GroupGapX              float64
	GroupGapY              float64
}

// DefaultLayout returns the default layout constants.
func DefaultLayout() Layout {
	return Layout{
		BaseSegmentWidth:       10,
		ResponseGap:            2,
		MinGroupAvailableWidth: 60,
		MinGroupHeight:         40,
		GroupGapX:              12,
		GroupGapY:              12,
	}
}

// AvailableWidth returns the width left for proportional distribution once
// every segment has its base width and the gaps are placed.
func (l Layout) AvailableWidth(groupWidth float64, segmentCount int) float64 {
	n := float64(segmentCount)
	return groupWidth - l.BaseSegmentWidth*n - l.ResponseGap*(n-1)
}

// MinGroupWidth is the narrowest group width that still leaves
// MinGroupAvailableWidth for proportional distribution.
func (l Layout) MinGroupWidth(segmentCount int) float64 {
	if segmentCount < 1 {
		return l.MinGroupAvailableWidth
	}
	n := float64(segmentCount)
	return l.BaseSegmentWidth*n + l.ResponseGap*(n-1) + l.MinGroupAvailableWidth
}

// LayoutSegments places one segment per proportion inside bounds, left to
// right in order. Segment rectangles are relative to the bounds' origin and
// carry no labels.
func LayoutSegments(proportions []float64, bounds models.Rect, layout Layout) ([]models.Segment, error) {
	if len(proportions) == 0 {
		return nil, ErrSegmentCount
	}
	for i, p := range proportions {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return nil, fmt.Errorf("%w: segment %d has proportion %v", ErrInvalidProportion, i, p)
		}
	}

	available := layout.AvailableWidth(bounds.Width, len(proportions))
	if available < 0 {
		return nil, fmt.Errorf("%w: width %.2f leaves %.2f for %d segments (need at least %.2f)",
			ErrInsufficientWidth, bounds.Width, available, len(proportions), bounds.Width-available)
	}

	segments := make([]models.Segment, len(proportions))
	x := 0.0
	for i, p := range proportions {
		width := layout.BaseSegmentWidth + p*available
		segments[i] = models.Segment{
			ResponseGroupIndex: i,
			Rect: models.Rect{
				X:      x,
				Y:      0,
				Width:  width,
				Height: bounds.Height,
			},
		}
		x += width + layout.ResponseGap
	}
	return segments, nil
}

// SegmentGroup lays out the segments of one split for one response question
// and view. Unpopulated splits yield Populated=false and nil segments.
func SegmentGroup(split models.Split, question models.Question, view models.View, bounds models.Rect, layout Layout) (models.SegmentGroupDisplay, error) {
	display := models.SegmentGroupDisplay{
		SplitIndex: split.Index,
		Question:   question,
		View:       view,
		Bounds:     bounds,
	}
	if !view.Valid() {
		return display, fmt.Errorf("%w: %q", ErrInvalidView, view)
	}

	if split.Statistics == nil {
		metrics.RecordUnpopulatedSegmentGroup()
		return display, nil
	}
	st, ok := split.StatsFor(question)
	if !ok {
		return display, fmt.Errorf("%w: %s in split %d", ErrQuestionNotMeasured, question.Key(), split.Index)
	}
	if !st.Populated() {
		metrics.RecordUnpopulatedSegmentGroup()
		return display, nil
	}

	segments, err := LayoutSegments(st.Proportions(view), bounds, layout)
	if err != nil {
		return display, fmt.Errorf("split %d: %w", split.Index, err)
	}
	for i, g := range st.Groups(view) {
		segments[i].Label = g.Label
	}

	display.Populated = true
	display.Segments = segments
	return display, nil
}
