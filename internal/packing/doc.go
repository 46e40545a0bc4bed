// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

/*
Package packing assigns stable identities to pictogram points and positions
them inside their segment rectangles.

# Identities

A point is identified by (split, response group, local ID). Basis splits own
their points: Allocate numbers them 0..n-1, so shrinking a segment always
drops the highest local IDs first. Aggregated splits in Actual mode show the
union of their basis splits' points (Union) and never sample their own.

# Placement

Points are placed with Mitchell's best-candidate algorithm: for every new
point a fixed number of uniform candidates is drawn and the one farthest from
its nearest existing point wins. Nearest-neighbour distances come from a
planar spatial hash (internal/spatial). Every point lies strictly inside its
segment, at least Margin away from each edge. The random source is seeded
from the configured seed, the segment and the first new identity, so the same
inputs always produce the same layout.

# Update Policy

Reconcile compares a segment's new bounds to its previous bounds:

  - no previous bounds: initial packing of every target point
  - relative width change above RepackWidthThreshold: full repack
  - otherwise: incremental. Surviving points keep their positions (clamped
    into the new bounds if the segment shrank) and only new points are placed.

The threshold trades visual churn against packing quality. A low value
repacks often and keeps spacing even; a high value keeps points still while
a segment slowly stretches. 0.10 is the default.

# Metrics

Every reconcile records pollgraph_packing_operations_total{mode} and
pollgraph_points_changed_total{change}.
*/
package packing
