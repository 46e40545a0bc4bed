// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import (
	"slices"
	"time"

	"github.com/tomtom215/pollgraph/internal/ingest"
	"github.com/tomtom215/pollgraph/internal/metrics"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/splits"
)

// Apply adds an ingested batch to the statistics of in and returns the
// updated copy together with per-split deltas.
//
// Only basis splits that received at least one record are recomputed, plus
// every aggregated split whose basis set contains one of them. Deltas are
// ordered by split index. The result carries the batch's ingestion counts.
func (e *Engine) Apply(in []models.Split, batch ingest.Result) ([]models.Split, models.StatisticsUpdateResult, error) {
	start := time.Now()

	result := models.StatisticsUpdateResult{
		TotalProcessed: batch.TotalProcessed,
		ValidCount:     batch.ValidCount,
		InvalidCount:   batch.InvalidCount,
		Deltas:         []models.SplitDelta{},
	}

	if err := e.checkSplits(in); err != nil {
		return nil, result, err
	}
	buckets, err := e.bucket(batch.Records)
	if err != nil {
		return nil, result, err
	}

	out := models.CloneSplits(in)
	if len(buckets) == 0 {
		e.logger.Debug().
			Int("total_processed", batch.TotalProcessed).
			Int("invalid", batch.InvalidCount).
			Msg("Batch had no valid respondents, statistics unchanged")
		return out, result, nil
	}

	changedBasis := make([]int, 0, len(buckets))
	for idx := range buckets {
		changedBasis = append(changedBasis, idx)
	}
	slices.Sort(changedBasis)

	e.parallel(changedBasis, func(idx int) {
		acc := accumulatorsFrom(e.survey, in[idx].Statistics)
		out[idx].Statistics = e.basisStats(acc, buckets[idx])
	})

	affected := affectedAggregates(in, changedBasis)
	for _, idx := range affected {
		out[idx].Statistics = e.aggregateStats(out, out[idx].BasisSplitIndices)
	}

	changed := append(slices.Clone(changedBasis), affected...)
	slices.Sort(changed)
	for _, idx := range changed {
		result.Deltas = append(result.Deltas, e.splitDelta(in[idx], out[idx]))
	}

	elapsed := time.Since(start)
	metrics.RecordStatistics(metrics.OperationUpdate, elapsed, len(changedBasis), len(affected))
	metrics.RecordDeltas(len(result.Deltas))
	e.logger.Debug().
		Int("valid", batch.ValidCount).
		Int("invalid", batch.InvalidCount).
		Int("basis_splits", len(changedBasis)).
		Int("aggregated_splits", len(affected)).
		Dur("duration", elapsed).
		Msg("Applied respondent batch")

	return out, result, nil
}

// affectedAggregates returns, ascending, every aggregated split whose basis
// set intersects changed.
func affectedAggregates(all []models.Split, changed []int) []int {
	deps := splits.Dependents(all)
	seen := make(map[int]bool)
	var out []int
	for _, b := range changed {
		for _, agg := range deps[b] {
			if !seen[agg] {
				seen[agg] = true
				out = append(out, agg)
			}
		}
	}
	slices.Sort(out)
	return out
}
