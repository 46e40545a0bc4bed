// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package geometry lays out response segments inside a segment group.
//
// For n segments in a group of width W:
//
//	available = W − base·n − gap·(n−1)
//	width_i   = base + p_i·available
//	x_0 = 0, x_i = x_{i−1} + width_{i−1} + gap
//
// Every segment spans the full group height at y = 0. Coordinates are
// relative to the segment group's origin. The base width keeps segments with
// proportion 0 visible; when proportions sum to 1 the widths and gaps fill W.
//
// A split that has never been measured is unpopulated: SegmentGroup returns
// a display with Populated=false and no segments instead of zero-width
// rectangles. A measured split whose proportions are all zero is laid out
// normally.
//
// The package also carries a uniform grid helper that assigns segment group
// bounds to splits from the grouping questions' axes, standing in for a
// renderer's own grid layout.
package geometry
