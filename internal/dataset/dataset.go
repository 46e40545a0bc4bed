// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pollgraph/internal/geometry"
	"github.com/tomtom215/pollgraph/internal/ingest"
	"github.com/tomtom215/pollgraph/internal/logging"
	"github.com/tomtom215/pollgraph/internal/metrics"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/packing"
	"github.com/tomtom215/pollgraph/internal/sampling"
	"github.com/tomtom215/pollgraph/internal/splits"
	"github.com/tomtom215/pollgraph/internal/stats"
)

// pointsKey identifies the packed state of one split for one response question.
type pointsKey struct {
	split    int
	question string
}

// Dataset holds the statistics and layout state of one survey.
type Dataset struct {
	mu sync.RWMutex

	name     string
	survey   models.Survey
	splits   []models.Split
	ingester *ingest.Ingester
	engine   *stats.Engine
	packer   *packing.Packer
	opts     options
	logger   zerolog.Logger

	respondents int
	points      map[pointsKey]models.SplitPoints
}

// New validates survey, generates its splits and returns an empty dataset.
// Every split starts unmeasured.
func New(name string, survey models.Survey, opts ...Option) (*Dataset, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ing, err := ingest.NewIngester(survey)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	generated, err := splits.Generate(survey.GroupingQuestions)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}

	base := o.logger.With().Str("dataset", name).Logger()
	engine, err := stats.NewEngine(survey, o.stats, base)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	packer, err := packing.NewPacker(o.packing, base)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}

	logger := base.With().Str("component", "dataset").Logger()
	logger.Info().
		Int("grouping_questions", len(survey.GroupingQuestions)).
		Int("response_questions", len(survey.ResponseQuestions)).
		Int("splits", len(generated)).
		Int("basis_splits", len(splits.BasisIndices(generated))).
		Str("sampling", o.mode.String()).
		Msg("Dataset created")

	return &Dataset{
		name:     name,
		survey:   survey.Clone(),
		splits:   generated,
		ingester: ing,
		engine:   engine,
		packer:   packer,
		opts:     o,
		logger:   logger,
		points:   make(map[pointsKey]models.SplitPoints),
	}, nil
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return d.name
}

// Survey returns a copy of the dataset's survey.
func (d *Dataset) Survey() models.Survey {
	return d.survey.Clone()
}

// Layout returns the segment layout constants in use.
func (d *Dataset) Layout() geometry.Layout {
	return d.opts.layout
}

// Respondents returns the number of valid respondents aggregated so far.
func (d *Dataset) Respondents() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.respondents
}

// AddRespondents ingests one batch and updates the statistics of every split
// it touches. Invalid respondents are counted, not returned as errors.
func (d *Dataset) AddRespondents(ctx context.Context, raw []models.RawRespondent) (models.StatisticsUpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return models.StatisticsUpdateResult{}, err
	}

	batchID := uuid.NewString()
	logger := d.batchLogger(ctx, batchID)

	batch := d.ingest(logger, raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	out, result, err := d.engine.Apply(d.splits, batch)
	if err != nil {
		return result, fmt.Errorf("dataset %q: batch %s: %w", d.name, batchID, err)
	}
	if err := d.checkInvariants(out); err != nil {
		return result, fmt.Errorf("dataset %q: batch %s: %w", d.name, batchID, err)
	}

	d.splits = out
	d.respondents += batch.ValidCount
	metrics.SetDatasetRespondents(d.name, d.respondents)

	result.BatchID = batchID
	logger.Info().
		Int("total_processed", result.TotalProcessed).
		Int("valid", result.ValidCount).
		Int("invalid", result.InvalidCount).
		Int("deltas", len(result.Deltas)).
		Int("respondents", d.respondents).
		Msg("Respondent batch applied")

	return result, nil
}

// Load replaces all statistics with a full computation over raw. Packed
// point state is kept, so the next PackPoints call reports the difference.
func (d *Dataset) Load(ctx context.Context, raw []models.RawRespondent) (ingest.Result, error) {
	if err := ctx.Err(); err != nil {
		return ingest.Result{}, err
	}

	logger := d.batchLogger(ctx, uuid.NewString())
	batch := d.ingest(logger, raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.engine.Compute(d.splits, batch.Records)
	if err != nil {
		return batch, fmt.Errorf("dataset %q: %w", d.name, err)
	}
	if err := d.checkInvariants(out); err != nil {
		return batch, fmt.Errorf("dataset %q: %w", d.name, err)
	}

	d.splits = out
	d.respondents = batch.ValidCount
	metrics.SetDatasetRespondents(d.name, d.respondents)

	logger.Info().
		Int("total_processed", batch.TotalProcessed).
		Int("valid", batch.ValidCount).
		Int("invalid", batch.InvalidCount).
		Msg("Dataset statistics rebuilt")

	return batch, nil
}

func (d *Dataset) batchLogger(ctx context.Context, batchID string) zerolog.Logger {
	logCtx := d.logger.With().Str("batch_id", batchID)
	if cid := logging.CorrelationIDFromContext(ctx); cid != "" {
		logCtx = logCtx.Str("correlation_id", cid)
	}
	return logCtx.Logger()
}

// ingest validates a batch and records ingestion metrics. The ingester is
// immutable, so this runs outside the lock.
func (d *Dataset) ingest(logger zerolog.Logger, raw []models.RawRespondent) ingest.Result {
	batch := d.ingester.Ingest(raw)

	exclusions := make(map[string]int, len(batch.Exclusions))
	for reason, n := range batch.Exclusions {
		exclusions[string(reason)] = n
	}
	metrics.RecordIngestion(batch.ValidCount, batch.InvalidCount, exclusions)

	if batch.InvalidCount > 0 {
		ev := logger.Debug().Int("invalid", batch.InvalidCount)
		for _, reason := range batch.SortedExclusions() {
			ev = ev.Int(string(reason), batch.Exclusions[reason])
		}
		ev.Msg("Respondents excluded")
	}
	return batch
}

func (d *Dataset) checkInvariants(all []models.Split) error {
	if !d.opts.checkInvariants {
		return nil
	}
	return stats.ValidateInvariants(all, stats.DefaultTolerance)
}

// Splits returns a deep copy of every split.
func (d *Dataset) Splits() []models.Split {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return models.CloneSplits(d.splits)
}

// Split returns a deep copy of split i.
func (d *Dataset) Split(i int) (models.Split, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, err := d.split(i)
	if err != nil {
		return models.Split{}, err
	}
	return s.Clone(), nil
}

func (d *Dataset) split(i int) (models.Split, error) {
	if i < 0 || i >= len(d.splits) {
		return models.Split{}, fmt.Errorf("%w: index %d in dataset %q (has %d splits)",
			ErrSplitNotFound, i, d.name, len(d.splits))
	}
	return d.splits[i], nil
}

// ResponseQuestion returns the response question with the given key.
func (d *Dataset) ResponseQuestion(key string) (models.ResponseQuestion, error) {
	idx := d.survey.ResponseQuestionIndex(key)
	if idx < 0 {
		return models.ResponseQuestion{}, fmt.Errorf("%w: %q in dataset %q", ErrQuestionNotFound, key, d.name)
	}
	return d.survey.ResponseQuestions[idx].Clone(), nil
}

// SegmentGroup lays out split i for one response question and view inside
// bounds. Unpopulated splits return Populated=false and no segments.
func (d *Dataset) SegmentGroup(i int, questionKey string, view models.View, bounds models.Rect) (models.SegmentGroupDisplay, error) {
	if !view.Valid() {
		return models.SegmentGroupDisplay{}, fmt.Errorf("%w: %q in dataset %q", ErrViewNotFound, view, d.name)
	}
	q, err := d.ResponseQuestion(questionKey)
	if err != nil {
		return models.SegmentGroupDisplay{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	s, err := d.split(i)
	if err != nil {
		return models.SegmentGroupDisplay{}, err
	}
	display, err := geometry.SegmentGroup(s, q.Question, view, bounds, d.opts.layout)
	if err != nil {
		return display, fmt.Errorf("dataset %q: %w", d.name, err)
	}
	return display, nil
}

// PackPoints lays out the points of split i for one response question, one
// segment per expanded response group, and reports what changed since the
// previous call for the same split and question.
func (d *Dataset) PackPoints(i int, questionKey string, bounds models.Rect) (models.SplitPoints, []models.PointDiff, error) {
	q, err := d.ResponseQuestion(questionKey)
	if err != nil {
		return models.SplitPoints{}, nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.split(i)
	if err != nil {
		return models.SplitPoints{}, nil, err
	}
	display, err := geometry.SegmentGroup(s, q.Question, models.ViewExpanded, bounds, d.opts.layout)
	if err != nil {
		return models.SplitPoints{}, nil, fmt.Errorf("dataset %q: %w", d.name, err)
	}

	var targets [][]models.Point
	if display.Populated {
		st, _ := s.StatsFor(q.Question)
		targets = d.targets(s, q.Question, st)
	}

	key := pointsKey{split: i, question: questionKey}
	packed, diffs, err := d.packer.PackSplit(d.points[key], i, q.Question, display.Segments, targets)
	if err != nil {
		return models.SplitPoints{}, nil, fmt.Errorf("dataset %q: %w", d.name, err)
	}
	d.points[key] = packed

	return packed.Clone(), diffs, nil
}

// Points returns the last packed state of split i for a response question.
// ok is false if PackPoints has not been called for it.
func (d *Dataset) Points(i int, questionKey string) (models.SplitPoints, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sp, ok := d.points[pointsKey{split: i, question: questionKey}]
	if !ok {
		return models.SplitPoints{}, false
	}
	return sp.Clone(), true
}

// targets returns the identities wanted in each expanded group of s.
// Basis splits and synthetic samples own their points. In Actual mode an
// aggregated split shows the union of its basis splits' points.
func (d *Dataset) targets(s models.Split, q models.Question, st models.QuestionStats) [][]models.Point {
	out := make([][]models.Point, len(st.Expanded))

	if s.IsBasis() || d.opts.mode.IsSynthetic() {
		counts := sampling.Counts(st, d.opts.mode)
		for g := range out {
			out[g] = packing.Allocate(s.Index, g, counts[g])
		}
		return out
	}

	basisCounts := make([][]int, len(s.BasisSplitIndices))
	for i, b := range s.BasisSplitIndices {
		if bst, ok := d.splits[b].StatsFor(q); ok {
			basisCounts[i] = bst.Counts(models.ViewExpanded)
		}
	}
	for g := range out {
		counts := make([]int, len(s.BasisSplitIndices))
		for i, bc := range basisCounts {
			if g < len(bc) {
				counts[i] = bc[g]
			}
		}
		out[g] = packing.Union(g, s.BasisSplitIndices, counts)
	}
	return out
}
