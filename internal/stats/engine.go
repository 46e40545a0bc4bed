// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pollgraph/internal/metrics"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/splits"
)

// Config holds statistics engine settings.
type Config struct {
	// Workers is the number of goroutines computing basis splits.
	// Zero uses runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{Workers: 0}
}

// Engine computes split statistics for one survey.
// It is safe for concurrent use.
type Engine struct {
	survey   models.Survey
	index    splits.Index
	mappings [][]int // expanded → collapsed group, per response question
	workers  int
	logger   zerolog.Logger
}

// NewEngine validates survey and builds an engine for it.
func NewEngine(survey models.Survey, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := survey.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("stats: workers must be >= 0, got %d", cfg.Workers)
	}

	mappings := make([][]int, len(survey.ResponseQuestions))
	for i, q := range survey.ResponseQuestions {
		m, err := q.CollapsedMapping()
		if err != nil {
			return nil, err
		}
		mappings[i] = m
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return &Engine{
		survey:   survey.Clone(),
		index:    splits.NewIndex(survey.GroupingQuestions),
		mappings: mappings,
		workers:  workers,
		logger:   logger.With().Str("component", "stats").Logger(),
	}, nil
}

// Compute returns a copy of in with every split's statistics rebuilt from records.
// Splits without matching respondents get all-zero statistics.
func (e *Engine) Compute(in []models.Split, records []models.RespondentRecord) ([]models.Split, error) {
	start := time.Now()

	if err := e.checkSplits(in); err != nil {
		return nil, err
	}
	buckets, err := e.bucket(records)
	if err != nil {
		return nil, err
	}

	out := models.CloneSplits(in)
	basis := splits.BasisIndices(out)
	e.parallel(basis, func(idx int) {
		out[idx].Statistics = e.basisStats(emptyAccumulators(e.survey), buckets[idx])
	})

	aggregated := splits.AggregatedIndices(out)
	for _, idx := range aggregated {
		out[idx].Statistics = e.aggregateStats(out, out[idx].BasisSplitIndices)
	}

	elapsed := time.Since(start)
	metrics.RecordStatistics(metrics.OperationCompute, elapsed, len(basis), len(aggregated))
	e.logger.Debug().
		Int("records", len(records)).
		Int("basis_splits", len(basis)).
		Int("aggregated_splits", len(aggregated)).
		Dur("duration", elapsed).
		Msg("Computed split statistics")

	return out, nil
}

// checkSplits verifies that in was generated from the engine's survey.
func (e *Engine) checkSplits(in []models.Split) error {
	if len(in) != e.index.Len() {
		return fmt.Errorf("%w: got %d splits, survey %q has %d", ErrSplitMismatch, len(in), e.survey.Name, e.index.Len())
	}
	for i, s := range in {
		if s.Index != i || len(s.Groups) != len(e.survey.GroupingQuestions) {
			return fmt.Errorf("%w: split at position %d has index %d and %d groups", ErrSplitMismatch, i, s.Index, len(s.Groups))
		}
		if s.Statistics != nil && len(s.Statistics) != len(e.survey.ResponseQuestions) {
			return fmt.Errorf("%w: split %d has statistics for %d response questions, want %d",
				ErrSplitMismatch, i, len(s.Statistics), len(e.survey.ResponseQuestions))
		}
	}
	return nil
}

// bucket groups records by the basis split they belong to.
func (e *Engine) bucket(records []models.RespondentRecord) (map[int][]models.RespondentRecord, error) {
	buckets := make(map[int][]models.RespondentRecord)
	for _, rec := range records {
		if len(rec.ExpandedIndices) != len(e.survey.ResponseQuestions) {
			return nil, fmt.Errorf("%w: respondent %q has %d response answers, want %d",
				ErrRecordMismatch, rec.ID, len(rec.ExpandedIndices), len(e.survey.ResponseQuestions))
		}
		for qi, g := range rec.ExpandedIndices {
			if g < 0 || g >= len(e.survey.ResponseQuestions[qi].Expanded) {
				return nil, fmt.Errorf("%w: respondent %q has expanded group %d for %s",
					ErrRecordMismatch, rec.ID, g, e.survey.ResponseQuestions[qi].Key())
			}
		}
		idx, err := e.index.BasisIndexFor(rec.GroupIndices)
		if err != nil {
			return nil, fmt.Errorf("%w: respondent %q: %w", ErrRecordMismatch, rec.ID, err)
		}
		buckets[idx] = append(buckets[idx], rec)
	}
	return buckets, nil
}

// parallel runs fn for every index using the engine's worker count.
// Each index is handled by exactly one goroutine.
func (e *Engine) parallel(indices []int, fn func(idx int)) {
	n := len(indices)
	if n == 0 {
		return
	}
	workers := min(e.workers, n)
	if workers <= 1 {
		for _, idx := range indices {
			fn(idx)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(chunk []int) {
			defer wg.Done()

			for _, idx := range chunk {
				fn(idx)
			}
		}(indices[start:end])
	}

	wg.Wait()
}
