// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package stats computes weighted per-split statistics from respondent records.
//
// Basis splits are measured: each respondent lands in exactly one basis split,
// found from its grouping answers, and adds one to the count and its weight to
// the weight of its expanded group for every response question. Collapsed
// groups are always derived from the expanded groups they contain, never
// accumulated separately, so their weights sum to the same total.
//
// Aggregated splits are never measured. Their counts and weights are sums over
// their basis splits and each proportion is Σweight / ΣtotalWeight, not a mean
// of basis proportions.
//
// # Full and Incremental Computation
//
// Compute rebuilds every split from a complete record set. Apply adds one
// ingested batch to existing statistics: it recomputes only the basis splits
// that received records and the aggregated splits that depend on them, and
// returns a before/after delta for each. Splits absent from the delta list
// are statistically unchanged; a batch with no valid records yields an empty
// delta list.
//
// Both operations copy their input splits and never mutate them, so callers
// holding earlier results keep stable snapshots.
//
// # Concurrency
//
// Basis splits are independent and are computed by a chunked worker fan-out.
// Aggregated splits are computed after every basis split has finished.
// An Engine holds only immutable configuration and is safe for concurrent use.
package stats
