// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

import (
	"maps"
	"slices"
)

// RawRespondent is one respondent as delivered by a data source.
//
// Responses is keyed by Question.Key(). A key mapped to nil is an explicit
// null; a key that is absent is a missing response.
type RawRespondent struct {
	ID        string              `json:"id"`
	Responses map[string]*float64 `json:"responses"`
}

// RespondentRecord is a validated respondent with typed responses.
// It is built once per ingested batch and never modified afterwards.
type RespondentRecord struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`

	// GroupIndices holds the response group index for each grouping
	// question, in survey order.
	GroupIndices []int `json:"group_indices"`

	// ExpandedIndices holds the expanded group index for each response
	// question, in survey order.
	ExpandedIndices []int `json:"expanded_indices"`

	// Codes holds the raw integer code per question key.
	Codes map[string]int `json:"codes"`
}

// Clone returns a deep copy of the record.
func (r RespondentRecord) Clone() RespondentRecord {
	return RespondentRecord{
		ID:              r.ID,
		Weight:          r.Weight,
		GroupIndices:    slices.Clone(r.GroupIndices),
		ExpandedIndices: slices.Clone(r.ExpandedIndices),
		Codes:           maps.Clone(r.Codes),
	}
}
