// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package packing

import (
	"errors"
	"fmt"

	"github.com/tomtom215/pollgraph/internal/validation"
)

// ErrInvalidConfig is returned by NewPacker for an unusable configuration.
var ErrInvalidConfig = errors.New("invalid packing configuration")

// Config tunes point placement and the repack policy.
type Config struct {
	// RepackWidthThreshold is the relative width change above which a
	// segment is fully repacked instead of updated incrementally.
	RepackWidthThreshold float64 `json:"repack_width_threshold" validate:"finite,gte=0"`

	// Margin keeps points this far inside every segment edge.
	Margin float64 `json:"margin" validate:"finite,gt=0"`

	// Candidates is the number of best-candidate samples drawn per point.
	Candidates int `json:"candidates" validate:"gte=1,lte=256"`

	Seed int64 `json:"seed"`
}

// DefaultConfig returns the default packing configuration.
func DefaultConfig() Config {
	return Config{
		RepackWidthThreshold: 0.10,
		Margin:               1,
		Candidates:           12,
		Seed:                 42,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if verr := validation.ValidateStruct(&c); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, verr)
	}
	return nil
}
