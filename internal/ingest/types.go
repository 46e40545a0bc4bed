// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package ingest

import (
	"maps"
	"slices"

	"github.com/tomtom215/pollgraph/internal/models"
)

// Reason identifies why a respondent was excluded.
type Reason string

// Exclusion reasons, checked in this order: grouping questions in survey
// order, then response questions, then the weight. Only the first failing
// check is counted for a respondent.
const (
	ReasonGroupingNull    Reason = "grouping_null"
	ReasonGroupingMissing Reason = "grouping_missing"
	ReasonGroupingInvalid Reason = "grouping_invalid"
	ReasonResponseNull    Reason = "response_null"
	ReasonResponseMissing Reason = "response_missing"
	ReasonResponseInvalid Reason = "response_invalid"
	ReasonWeightNull      Reason = "weight_null"
	ReasonWeightMissing   Reason = "weight_missing"
	ReasonWeightInvalid   Reason = "weight_invalid"
)

// Reasons lists every exclusion reason in check order.
func Reasons() []Reason {
	return []Reason{
		ReasonGroupingNull, ReasonGroupingMissing, ReasonGroupingInvalid,
		ReasonResponseNull, ReasonResponseMissing, ReasonResponseInvalid,
		ReasonWeightNull, ReasonWeightMissing, ReasonWeightInvalid,
	}
}

// Result is the outcome of ingesting one batch.
type Result struct {
	// Records holds the valid respondents in input order.
	Records []models.RespondentRecord `json:"records"`

	TotalProcessed int `json:"total_processed"`
	ValidCount     int `json:"valid_count"`
	InvalidCount   int `json:"invalid_count"`

	// Exclusions counts excluded respondents by their first failing check.
	// Reasons with no exclusions are absent.
	Exclusions map[Reason]int `json:"exclusions,omitempty"`
}

// TotalWeight sums the weight of all valid records.
func (r Result) TotalWeight() float64 {
	var total float64
	for _, rec := range r.Records {
		total += rec.Weight
	}
	return total
}

// Merge appends other to r and returns the combined result.
// Neither input is modified.
func (r Result) Merge(other Result) Result {
	out := Result{
		Records:        make([]models.RespondentRecord, 0, len(r.Records)+len(other.Records)),
		TotalProcessed: r.TotalProcessed + other.TotalProcessed,
		ValidCount:     r.ValidCount + other.ValidCount,
		InvalidCount:   r.InvalidCount + other.InvalidCount,
	}
	for _, rec := range r.Records {
		out.Records = append(out.Records, rec.Clone())
	}
	for _, rec := range other.Records {
		out.Records = append(out.Records, rec.Clone())
	}
	if len(r.Exclusions)+len(other.Exclusions) > 0 {
		out.Exclusions = maps.Clone(r.Exclusions)
		if out.Exclusions == nil {
			out.Exclusions = make(map[Reason]int, len(other.Exclusions))
		}
		for reason, n := range other.Exclusions {
			out.Exclusions[reason] += n
		}
	}
	return out
}

// SortedExclusions returns the reasons with at least one exclusion, in check order.
func (r Result) SortedExclusions() []Reason {
	out := make([]Reason, 0, len(r.Exclusions))
	for _, reason := range Reasons() {
		if r.Exclusions[reason] > 0 {
			out = append(out, reason)
		}
	}
	return slices.Clip(out)
}
