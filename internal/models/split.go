// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

import (
	"slices"
	"strings"
)

// WildcardIndex is the ResponseGroupIndex carried by wildcard groups.
const WildcardIndex = -1

// View selects the expanded or collapsed response group list of a question.
type View string

const (
	// ViewExpanded selects the fine-grained response groups.
	ViewExpanded View = "expanded"

	// ViewCollapsed selects the coarse-grained response groups.
	ViewCollapsed View = "collapsed"
)

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	return v == ViewExpanded || v == ViewCollapsed
}

// Group pairs a grouping question with one of its response groups, or with
// nothing at all (a wildcard meaning "all response groups combined").
type Group struct {
	Question           Question       `json:"question"`
	ResponseGroup      *ResponseGroup `json:"response_group"`
	ResponseGroupIndex int            `json:"response_group_index"`
}

// Specific returns a group selecting response group idx of q.
func Specific(q GroupingQuestion, idx int) Group {
	rg := q.ResponseGroups[idx].Clone()
	return Group{Question: q.Question, ResponseGroup: &rg, ResponseGroupIndex: idx}
}

// Wildcard returns the "any response" group for q.
func Wildcard(q GroupingQuestion) Group {
	return Group{Question: q.Question, ResponseGroupIndex: WildcardIndex}
}

// IsWildcard reports whether the group matches every response group.
func (g Group) IsWildcard() bool {
	return g.ResponseGroup == nil
}

// Label returns the response group label, or "All" for a wildcard.
func (g Group) Label() string {
	if g.ResponseGroup == nil {
		return "All"
	}
	return g.ResponseGroup.Label
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := g
	if g.ResponseGroup != nil {
		rg := g.ResponseGroup.Clone()
		out.ResponseGroup = &rg
	}
	return out
}

// ResponseGroupStats holds the weighted tally for one response group.
type ResponseGroupStats struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Weight     float64 `json:"weight"`
	Proportion float64 `json:"proportion"`
}

// QuestionStats holds one split's statistics for one response question.
// Proportions are always Weight / TotalWeight, or 0 when TotalWeight is 0.
type QuestionStats struct {
	Question    Question             `json:"question"`
	TotalCount  int                  `json:"total_count"`
	TotalWeight float64              `json:"total_weight"`
	Expanded    []ResponseGroupStats `json:"expanded"`
	Collapsed   []ResponseGroupStats `json:"collapsed"`
}

// Groups returns the statistics for the given view.
func (s QuestionStats) Groups(view View) []ResponseGroupStats {
	if view == ViewCollapsed {
		return s.Collapsed
	}
	return s.Expanded
}

// Proportions returns the proportions for the given view, in group order.
func (s QuestionStats) Proportions(view View) []float64 {
	groups := s.Groups(view)
	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i] = g.Proportion
	}
	return out
}

// Counts returns the raw respondent counts for the given view, in group order.
func (s QuestionStats) Counts(view View) []int {
	groups := s.Groups(view)
	out := make([]int, len(groups))
	for i, g := range groups {
		out[i] = g.Count
	}
	return out
}

// Populated reports whether any respondent has been measured. A split whose
// respondents all weigh zero is populated with all-zero proportions.
func (s QuestionStats) Populated() bool {
	return s.TotalCount > 0
}

// Clone returns a deep copy of the statistics.
func (s QuestionStats) Clone() QuestionStats {
	out := s
	out.Expanded = slices.Clone(s.Expanded)
	out.Collapsed = slices.Clone(s.Collapsed)
	return out
}

// Split is one demographic slice of the cross-tabulation: one Group per
// grouping question, in question order.
//
// Index is the split's position in the global split array and never changes
// after generation. Statistics is nil until the split has been measured.
type Split struct {
	Index             int             `json:"index"`
	Groups            []Group         `json:"groups"`
	BasisSplitIndices []int           `json:"basis_split_indices"`
	Statistics        []QuestionStats `json:"statistics,omitempty"`
}

// IsBasis reports whether the split has no wildcard groups.
func (s Split) IsBasis() bool {
	for _, g := range s.Groups {
		if g.IsWildcard() {
			return false
		}
	}
	return true
}

// Options returns the response group index chosen for every grouping
// question, with WildcardIndex for wildcards.
func (s Split) Options() []int {
	out := make([]int, len(s.Groups))
	for i, g := range s.Groups {
		out[i] = g.ResponseGroupIndex
	}
	return out
}

// Label renders the split as "Democrat × 18-54", using "All" for wildcards.
func (s Split) Label() string {
	parts := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		parts[i] = g.Label()
	}
	return strings.Join(parts, " × ")
}

// StatsFor returns the statistics for question q.
func (s Split) StatsFor(q Question) (QuestionStats, bool) {
	for _, st := range s.Statistics {
		if st.Question == q {
			return st, true
		}
	}
	return QuestionStats{}, false
}

// Clone returns a deep copy of the split.
func (s Split) Clone() Split {
	out := Split{
		Index:             s.Index,
		BasisSplitIndices: slices.Clone(s.BasisSplitIndices),
	}
	out.Groups = make([]Group, len(s.Groups))
	for i, g := range s.Groups {
		out.Groups[i] = g.Clone()
	}
	if s.Statistics != nil {
		out.Statistics = make([]QuestionStats, len(s.Statistics))
		for i, st := range s.Statistics {
			out.Statistics[i] = st.Clone()
		}
	}
	return out
}

// CloneSplits deep-copies a split array.
func CloneSplits(splits []Split) []Split {
	out := make([]Split, len(splits))
	for i, s := range splits {
		out[i] = s.Clone()
	}
	return out
}
