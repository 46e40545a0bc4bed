// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether the rectangle has no area and no origin.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// ContainsStrict reports whether (x, y), relative to the rectangle's origin,
// lies strictly inside it.
func (r Rect) ContainsStrict(x, y float64) bool {
	return x > 0 && y > 0 && x < r.Width && y < r.Height
}

// Segment is one response group's rectangle inside a segment group,
// positioned relative to the segment group's origin.
type Segment struct {
	ResponseGroupIndex int    `json:"response_group_index"`
	Label              string `json:"label"`
	Rect
}

// SegmentGroupDisplay is the geometry of one split's visualization area.
// When Populated is false the split has never been measured and Segments is nil.
type SegmentGroupDisplay struct {
	SplitIndex int       `json:"split_index"`
	Question   Question  `json:"question"`
	View       View      `json:"view"`
	Bounds     Rect      `json:"bounds"`
	Populated  bool      `json:"populated"`
	Segments   []Segment `json:"segments"`
}

// Clone returns a deep copy of the display.
func (d SegmentGroupDisplay) Clone() SegmentGroupDisplay {
	out := d
	out.Segments = slices.Clone(d.Segments)
	return out
}

// Point is the stable identity of one pictogram marker.
type Point struct {
	SplitIndex         int `json:"split_index"`
	ResponseGroupIndex int `json:"response_group_index"`
	LocalID            int `json:"local_id"`
}

// Key serializes the identity as "split:group:local".
func (p Point) Key() string {
	return strconv.Itoa(p.SplitIndex) + ":" + strconv.Itoa(p.ResponseGroupIndex) + ":" + strconv.Itoa(p.LocalID)
}

// ParsePointKey is the inverse of Point.Key.
func ParsePointKey(key string) (Point, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return Point{}, fmt.Errorf("%w: %q", ErrInvalidPointKey, key)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Point{}, fmt.Errorf("%w: %q: %v", ErrInvalidPointKey, key, err)
		}
		nums[i] = n
	}
	return Point{SplitIndex: nums[0], ResponseGroupIndex: nums[1], LocalID: nums[2]}, nil
}

// PointPosition is a point placed relative to its segment's origin.
type PointPosition struct {
	Point
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SegmentPoints is the packed state of one (split, response group) segment.
type SegmentPoints struct {
	SplitIndex         int             `json:"split_index"`
	ResponseGroupIndex int             `json:"response_group_index"`
	Bounds             Rect            `json:"bounds"`
	Positions          []PointPosition `json:"positions"`
}

// Clone returns a deep copy of the segment state.
func (s SegmentPoints) Clone() SegmentPoints {
	out := s
	out.Positions = slices.Clone(s.Positions)
	return out
}

// Keys returns the composite keys of every positioned point, in order.
func (s SegmentPoints) Keys() []string {
	out := make([]string, len(s.Positions))
	for i, p := range s.Positions {
		out[i] = p.Key()
	}
	return out
}

// PointDiff reports how a segment's identity set changed in one update.
type PointDiff struct {
	SplitIndex         int      `json:"split_index"`
	ResponseGroupIndex int      `json:"response_group_index"`
	CurrentIDs         []string `json:"current_ids"`
	AddedIDs           []string `json:"added_ids"`
	RemovedIDs         []string `json:"removed_ids"`
	Repacked           bool     `json:"repacked"`
}

// Changed reports whether any point appeared or disappeared.
func (d PointDiff) Changed() bool {
	return len(d.AddedIDs) > 0 || len(d.RemovedIDs) > 0
}

// SplitPoints is the packed state of every expanded segment of one split.
type SplitPoints struct {
	SplitIndex int             `json:"split_index"`
	Question   Question        `json:"question"`
	Segments   []SegmentPoints `json:"segments"`
}

// Clone returns a deep copy of the split state.
func (s SplitPoints) Clone() SplitPoints {
	out := s
	out.Segments = make([]SegmentPoints, len(s.Segments))
	for i, seg := range s.Segments {
		out.Segments[i] = seg.Clone()
	}
	return out
}
