// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion Metrics
	RespondentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollgraph_respondents_processed_total",
			Help: "Total number of respondents processed, by validation result",
		},
		[]string{"result"}, // "valid", "invalid"
	)

	RespondentsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollgraph_respondents_excluded_total",
			Help: "Total number of excluded respondents by first failing check",
		},
		[]string{"reason"}, // "grouping_null", "response_invalid", "weight_missing", ...
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pollgraph_batch_size",
			Help:    "Number of respondents per applied batch",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	// Statistics Metrics
	SplitsRecomputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollgraph_splits_recomputed_total",
			Help: "Total number of split statistics recomputations",
		},
		[]string{"kind"}, // "basis", "aggregated"
	)

	StatisticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pollgraph_statistics_duration_seconds",
			Help:    "Duration of statistics computation in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"operation"}, // "compute", "update"
	)

	SplitDeltas = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollgraph_split_deltas_total",
			Help: "Total number of split deltas reported by incremental updates",
		},
	)

	// Layout Metrics
	PackingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollgraph_packing_operations_total",
			Help: "Total number of segment packing operations by mode",
		},
		[]string{"mode"}, // "initial", "repack", "incremental"
	)

	PointsChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollgraph_points_changed_total",
			Help: "Total number of points added or removed by packing",
		},
		[]string{"change"}, // "added", "removed"
	)

	UnpopulatedSegmentGroups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollgraph_unpopulated_segment_groups_total",
			Help: "Total number of segment group layouts requested for unpopulated splits",
		},
	)

	// Dataset Metrics
	DatasetRespondents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pollgraph_dataset_respondents",
			Help: "Number of valid respondents currently aggregated per dataset",
		},
		[]string{"dataset"},
	)
)

// Label values shared with callers.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"

	KindBasis      = "basis"
	KindAggregated = "aggregated"

	OperationCompute = "compute"
	OperationUpdate  = "update"

	ChangeAdded   = "added"
	ChangeRemoved = "removed"
)

// RecordIngestion records one ingested batch. exclusions maps each reason
// to its excluded respondent count.
func RecordIngestion(valid, invalid int, exclusions map[string]int) {
	RespondentsProcessed.WithLabelValues(ResultValid).Add(float64(valid))
	RespondentsProcessed.WithLabelValues(ResultInvalid).Add(float64(invalid))
	for reason, n := range exclusions {
		RespondentsExcluded.WithLabelValues(reason).Add(float64(n))
	}
	BatchSize.Observe(float64(valid + invalid))
}

// RecordStatistics records a statistics computation and how many splits it touched.
func RecordStatistics(operation string, duration time.Duration, basis, aggregated int) {
	StatisticsDuration.WithLabelValues(operation).Observe(duration.Seconds())
	SplitsRecomputed.WithLabelValues(KindBasis).Add(float64(basis))
	SplitsRecomputed.WithLabelValues(KindAggregated).Add(float64(aggregated))
}

// RecordDeltas records the number of split deltas an update produced.
func RecordDeltas(n int) {
	SplitDeltas.Add(float64(n))
}

// RecordPacking records one segment packing operation.
func RecordPacking(mode string, added, removed int) {
	PackingOperations.WithLabelValues(mode).Inc()
	PointsChanged.WithLabelValues(ChangeAdded).Add(float64(added))
	PointsChanged.WithLabelValues(ChangeRemoved).Add(float64(removed))
}

// RecordUnpopulatedSegmentGroup records a layout request for an unpopulated split.
func RecordUnpopulatedSegmentGroup() {
	UnpopulatedSegmentGroups.Inc()
}

// SetDatasetRespondents sets the aggregated respondent count of a dataset.
func SetDatasetRespondents(dataset string, n int) {
	DatasetRespondents.WithLabelValues(dataset).Set(float64(n))
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
