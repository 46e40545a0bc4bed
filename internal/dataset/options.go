// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package dataset

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/pollgraph/internal/geometry"
	"github.com/tomtom215/pollgraph/internal/packing"
	"github.com/tomtom215/pollgraph/internal/sampling"
	"github.com/tomtom215/pollgraph/internal/stats"
)

// Option configures a Dataset.
type Option func(*options)

type options struct {
	logger          zerolog.Logger
	stats           stats.Config
	layout          geometry.Layout
	packing         packing.Config
	mode            sampling.Mode
	checkInvariants bool
}

func defaultOptions() options {
	return options{
		logger:  zerolog.Nop(),
		stats:   stats.DefaultConfig(),
		layout:  geometry.DefaultLayout(),
		packing: packing.DefaultConfig(),
		mode:    sampling.Actual(),
	}
}

// WithLogger sets the dataset logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStatsConfig sets the statistics engine configuration.
func WithStatsConfig(cfg stats.Config) Option {
	return func(o *options) {
		o.stats = cfg
	}
}

// WithLayout sets the segment layout constants.
func WithLayout(layout geometry.Layout) Option {
	return func(o *options) {
		o.layout = layout
	}
}

// WithPacking sets the point packing configuration.
func WithPacking(cfg packing.Config) Option {
	return func(o *options) {
		o.packing = cfg
	}
}

// WithSampling selects Actual or Synthetic point counts.
func WithSampling(mode sampling.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithInvariantChecks re-validates weight conservation and proportion sums
// after every batch and rejects a batch that breaks them.
func WithInvariantChecks(enabled bool) Option {
	return func(o *options) {
		o.checkInvariants = enabled
	}
}
