// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

// GroupDelta is the before/after state of one response group.
type GroupDelta struct {
	Label            string  `json:"label"`
	CountBefore      int     `json:"count_before"`
	CountAfter       int     `json:"count_after"`
	WeightBefore     float64 `json:"weight_before"`
	WeightAfter      float64 `json:"weight_after"`
	ProportionBefore float64 `json:"proportion_before"`
	ProportionAfter  float64 `json:"proportion_after"`
}

// QuestionDelta is the before/after state of one split's statistics for one
// response question.
type QuestionDelta struct {
	Question          Question     `json:"question"`
	TotalCountBefore  int          `json:"total_count_before"`
	TotalCountAfter   int          `json:"total_count_after"`
	TotalWeightBefore float64      `json:"total_weight_before"`
	TotalWeightAfter  float64      `json:"total_weight_after"`
	Expanded          []GroupDelta `json:"expanded"`
	Collapsed         []GroupDelta `json:"collapsed"`
}

// SplitDelta lists every statistic of a split touched by an update batch.
type SplitDelta struct {
	SplitIndex int             `json:"split_index"`
	Basis      bool            `json:"basis"`
	Questions  []QuestionDelta `json:"questions"`
}

// StatisticsUpdateResult summarizes one update batch.
//
// Splits absent from Deltas are statistically unchanged.
type StatisticsUpdateResult struct {
	BatchID        string       `json:"batch_id,omitempty"`
	TotalProcessed int          `json:"total_processed"`
	ValidCount     int          `json:"valid_count"`
	InvalidCount   int          `json:"invalid_count"`
	Deltas         []SplitDelta `json:"deltas"`
}
