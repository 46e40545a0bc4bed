// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package packing

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/spatial"
)

// interval is the closed range a coordinate may take inside a segment.
type interval struct {
	lo, hi float64
}

func newInterval(length, margin float64) interval {
	if length <= 2*margin {
		return interval{lo: length / 2, hi: length / 2}
	}
	return interval{lo: margin, hi: length - margin}
}

func (iv interval) sample(rng *rand.Rand) float64 {
	return iv.lo + rng.Float64()*(iv.hi-iv.lo)
}

func (iv interval) clamp(v float64) float64 {
	return math.Min(math.Max(v, iv.lo), iv.hi)
}

// placer positions points inside one segment.
type placer struct {
	xs, ys     interval
	grid       *spatial.HashGrid
	limit      float64
	candidates int
}

func newPlacer(bounds models.Rect, margin float64, candidates, expected int) *placer {
	area := bounds.Width * bounds.Height
	cell := math.Sqrt(area / float64(max(expected, 1)))
	return &placer{
		xs:         newInterval(bounds.Width, margin),
		ys:         newInterval(bounds.Height, margin),
		grid:       spatial.NewHashGrid(cell),
		limit:      math.Hypot(bounds.Width, bounds.Height),
		candidates: candidates,
	}
}

// keep registers an existing point, clamped into the segment.
func (p *placer) keep(pos models.PointPosition) models.PointPosition {
	pos.X = p.xs.clamp(pos.X)
	pos.Y = p.ys.clamp(pos.Y)
	p.grid.Insert(pos.Key(), pos.X, pos.Y)
	return pos
}

// place positions pt at the best of p.candidates random candidates.
func (p *placer) place(rng *rand.Rand, pt models.Point) models.PointPosition {
	bestX, bestY := p.xs.sample(rng), p.ys.sample(rng)
	bestScore := p.score(bestX, bestY)

	for i := 1; i < p.candidates; i++ {
		x, y := p.xs.sample(rng), p.ys.sample(rng)
		if s := p.score(x, y); s > bestScore {
			bestX, bestY, bestScore = x, y, s
		}
	}

	pos := models.PointPosition{Point: pt, X: bestX, Y: bestY}
	p.grid.Insert(pt.Key(), bestX, bestY)
	return pos
}

// score is the distance to the nearest placed point.
func (p *placer) score(x, y float64) float64 {
	d, ok := p.grid.Nearest(x, y, p.limit)
	if !ok {
		return p.limit
	}
	return d
}

// newRand seeds a source from the configured seed, the segment and the
// first identity being placed.
func newRand(seed int64, split, group int, first models.Point) *rand.Rand {
	key := strconv.FormatInt(seed, 10) + "|" + strconv.Itoa(split) + "|" + strconv.Itoa(group) + "|" + first.Key()
	return rand.New(rand.NewSource(int64(xxhash.Sum64String(key)))) //nolint:gosec // layout jitter, not security
}
