// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package sampling turns a split's statistics into integer point counts.
//
// In Synthetic mode a split's expanded proportions are rescaled onto a fixed
// sample size with the largest remainder method: every group gets the floor
// of its ideal count, then the shortfall is handed out one unit at a time to
// the largest fractional remainders. Among equal remainders the group that
// comes last in response-group order wins, so [1/3, 1/3, 1/3, 0] into 100
// yields [33, 33, 34, 0]. Counts always sum to the sample size exactly,
// except when every proportion is zero, which yields all zeros.
//
// In Actual mode the counts are the split's measured respondent counts.
package sampling
