// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package packing

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pollgraph/internal/metrics"
	"github.com/tomtom215/pollgraph/internal/models"
)

// Packing modes, as reported in metrics and logs.
const (
	ModeInitial     = "initial"
	ModeRepack      = "repack"
	ModeIncremental = "incremental"
)

// ErrTargetMismatch is returned when segments and targets do not line up.
var ErrTargetMismatch = errors.New("segment and target counts differ")

// Target is the wanted state of one segment.
type Target struct {
	SplitIndex         int
	ResponseGroupIndex int
	Bounds             models.Rect
	Points             []models.Point
}

// Packer reconciles segment point sets. It holds no per-segment state;
// callers pass the previous SegmentPoints back in.
type Packer struct {
	cfg    Config
	logger zerolog.Logger
}

// NewPacker validates cfg and returns a packer.
func NewPacker(cfg Config, logger zerolog.Logger) (*Packer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Packer{
		cfg:    cfg,
		logger: logger.With().Str("component", "packing").Logger(),
	}, nil
}

// Config returns the packer's configuration.
func (p *Packer) Config() Config {
	return p.cfg
}

// Mode reports how a segment moving from prev to next bounds is packed.
func (p *Packer) Mode(prev, next models.Rect) string {
	if prev.IsZero() {
		return ModeInitial
	}
	if widthChange(prev.Width, next.Width) > p.cfg.RepackWidthThreshold {
		return ModeRepack
	}
	return ModeIncremental
}

func widthChange(before, after float64) float64 {
	if before == 0 {
		if after == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(after-before) / before
}

// Reconcile moves a segment from prev to target. Identities present in both
// keep their local IDs; in incremental mode they also keep their positions.
// prev is not modified.
func (p *Packer) Reconcile(prev models.SegmentPoints, target Target) (models.SegmentPoints, models.PointDiff) {
	mode := p.Mode(prev.Bounds, target.Bounds)

	previous := make(map[string]models.PointPosition, len(prev.Positions))
	for _, pos := range prev.Positions {
		previous[pos.Key()] = pos
	}

	diff := models.PointDiff{
		SplitIndex:         target.SplitIndex,
		ResponseGroupIndex: target.ResponseGroupIndex,
		CurrentIDs:         make([]string, len(target.Points)),
		AddedIDs:           []string{},
		RemovedIDs:         []string{},
		Repacked:           mode != ModeIncremental,
	}

	wanted := make(map[string]struct{}, len(target.Points))
	for i, pt := range target.Points {
		key := pt.Key()
		diff.CurrentIDs[i] = key
		wanted[key] = struct{}{}
		if _, ok := previous[key]; !ok {
			diff.AddedIDs = append(diff.AddedIDs, key)
		}
	}
	// Highest local IDs go first.
	for i := len(prev.Positions) - 1; i >= 0; i-- {
		key := prev.Positions[i].Key()
		if _, ok := wanted[key]; !ok {
			diff.RemovedIDs = append(diff.RemovedIDs, key)
		}
	}

	out := models.SegmentPoints{
		SplitIndex:         target.SplitIndex,
		ResponseGroupIndex: target.ResponseGroupIndex,
		Bounds:             target.Bounds,
		Positions:          make([]models.PointPosition, len(target.Points)),
	}

	pl := newPlacer(target.Bounds, p.cfg.Margin, p.cfg.Candidates, len(target.Points))
	var pending []int
	for i, pt := range target.Points {
		old, ok := previous[pt.Key()]
		if ok && mode == ModeIncremental {
			out.Positions[i] = pl.keep(old)
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		first := target.Points[pending[0]]
		rng := newRand(p.cfg.Seed, target.SplitIndex, target.ResponseGroupIndex, first)
		for _, i := range pending {
			out.Positions[i] = pl.place(rng, target.Points[i])
		}
	}

	metrics.RecordPacking(mode, len(diff.AddedIDs), len(diff.RemovedIDs))
	if mode == ModeRepack {
		p.logger.Debug().
			Int("split_index", target.SplitIndex).
			Int("response_group", target.ResponseGroupIndex).
			Float64("width_before", prev.Bounds.Width).
			Float64("width_after", target.Bounds.Width).
			Int("points", len(target.Points)).
			Msg("Segment width changed beyond threshold, repacking")
	}

	return out, diff
}

// PackSplit reconciles every expanded segment of one split. segments come
// from geometry.SegmentGroup and targets[i] holds the identities wanted in
// segments[i]. Previous segments with no counterpart report all their points
// as removed.
func (p *Packer) PackSplit(prev models.SplitPoints, split int, question models.Question, segments []models.Segment, targets [][]models.Point) (models.SplitPoints, []models.PointDiff, error) {
	if len(segments) != len(targets) {
		return models.SplitPoints{}, nil, fmt.Errorf("%w: split %d has %d segments and %d targets",
			ErrTargetMismatch, split, len(segments), len(targets))
	}

	previous := make(map[int]models.SegmentPoints, len(prev.Segments))
	for _, seg := range prev.Segments {
		previous[seg.ResponseGroupIndex] = seg
	}

	out := models.SplitPoints{
		SplitIndex: split,
		Question:   question,
		Segments:   make([]models.SegmentPoints, len(segments)),
	}
	diffs := make([]models.PointDiff, 0, len(segments))

	seen := make(map[int]struct{}, len(segments))
	for i, seg := range segments {
		seen[seg.ResponseGroupIndex] = struct{}{}
		packed, diff := p.Reconcile(previous[seg.ResponseGroupIndex], Target{
			SplitIndex:         split,
			ResponseGroupIndex: seg.ResponseGroupIndex,
			Bounds:             seg.Rect,
			Points:             targets[i],
		})
		out.Segments[i] = packed
		diffs = append(diffs, diff)
	}

	for _, old := range prev.Segments {
		if _, ok := seen[old.ResponseGroupIndex]; ok {
			continue
		}
		removed := old.Keys()
		slices.Reverse(removed)
		diffs = append(diffs, models.PointDiff{
			SplitIndex:         split,
			ResponseGroupIndex: old.ResponseGroupIndex,
			CurrentIDs:         []string{},
			AddedIDs:           []string{},
			RemovedIDs:         removed,
		})
		metrics.RecordPacking(ModeIncremental, 0, len(removed))
	}

	return out, diffs, nil
}
