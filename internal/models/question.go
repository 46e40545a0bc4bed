// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Question identifies a survey variable by its battery, sub-battery and variable name.
type Question struct {
	BatteryName string `json:"battery_name" koanf:"battery_name"`
	SubBattery  string `json:"sub_battery" koanf:"sub_battery"`
	VarName     string `json:"var_name" koanf:"var_name" validate:"required"`
}

// Key returns the composite identity used to address responses in raw
// respondent maps, e.g. "demographics:party:pid3".
func (q Question) Key() string {
	return q.BatteryName + ":" + q.SubBattery + ":" + q.VarName
}

// String implements fmt.Stringer.
func (q Question) String() string {
	return q.Key()
}

// ResponseGroup is a labeled bucket of raw numeric response codes.
// Values has set semantics; order is irrelevant and duplicates are ignored.
type ResponseGroup struct {
	Label  string `json:"label" koanf:"label" validate:"required"`
	Values []int  `json:"values" koanf:"values" validate:"required,min=1"`
}

// Contains reports whether code belongs to the group.
func (g ResponseGroup) Contains(code int) bool {
	return slices.Contains(g.Values, code)
}

// IsSubsetOf reports whether every value of g is also a value of other.
func (g ResponseGroup) IsSubsetOf(other ResponseGroup) bool {
	for _, v := range g.Values {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the group.
func (g ResponseGroup) Clone() ResponseGroup {
	return ResponseGroup{Label: g.Label, Values: slices.Clone(g.Values)}
}

// Axis names the layout axis a grouping question is assigned to.
// It has no effect on statistics.
type Axis string

const (
	// AxisX lays the question's options out horizontally.
	AxisX Axis = "x"

	// AxisY lays the question's options out vertically.
	AxisY Axis = "y"
)

// GroupingQuestion partitions respondents along one demographic axis.
type GroupingQuestion struct {
	Question       `koanf:",squash"`
	Axis           Axis            `json:"axis,omitempty" koanf:"axis" validate:"omitempty,oneof=x y"`
	ResponseGroups []ResponseGroup `json:"response_groups" koanf:"response_groups" validate:"required,min=1,dive"`
}

// GroupIndexFor returns the index of the response group containing code, or -1.
func (q GroupingQuestion) GroupIndexFor(code int) int {
	return groupIndexFor(q.ResponseGroups, code)
}

// Clone returns a deep copy of the question.
func (q GroupingQuestion) Clone() GroupingQuestion {
	return GroupingQuestion{
		Question:       q.Question,
		Axis:           q.Axis,
		ResponseGroups: cloneGroups(q.ResponseGroups),
	}
}

// Validate checks that the question's response groups are mutually exclusive.
func (q GroupingQuestion) Validate() error {
	if len(q.ResponseGroups) == 0 {
		return fmt.Errorf("%w: grouping question %s has no response groups", ErrInvalidQuestion, q.Key())
	}
	if err := checkExclusive(q.ResponseGroups); err != nil {
		return fmt.Errorf("%w: grouping question %s: %v", ErrInvalidQuestion, q.Key(), err)
	}
	return nil
}

// ResponseQuestion is a measured question with fine-grained (expanded) and
// coarse-grained (collapsed) response group lists.
type ResponseQuestion struct {
	Question  `koanf:",squash"`
	Expanded  []ResponseGroup `json:"expanded" koanf:"expanded" validate:"required,min=1,dive"`
	Collapsed []ResponseGroup `json:"collapsed" koanf:"collapsed" validate:"required,min=1,dive"`
}

// ExpandedIndexFor returns the index of the expanded group containing code, or -1.
func (q ResponseQuestion) ExpandedIndexFor(code int) int {
	return groupIndexFor(q.Expanded, code)
}

// Groups returns the response groups for the given view.
func (q ResponseQuestion) Groups(view View) []ResponseGroup {
	if view == ViewCollapsed {
		return q.Collapsed
	}
	return q.Expanded
}

// CollapsedMapping returns, for each expanded group, the index of the single
// collapsed group whose values contain it.
func (q ResponseQuestion) CollapsedMapping() ([]int, error) {
	mapping := make([]int, len(q.Expanded))
	for i, expanded := range q.Expanded {
		mapping[i] = -1
		for j, collapsed := range q.Collapsed {
			if !expanded.IsSubsetOf(collapsed) {
				continue
			}
			if mapping[i] != -1 {
				return nil, fmt.Errorf("%w: response question %s: expanded group %q is contained in collapsed groups %q and %q",
					ErrInvalidQuestion, q.Key(), expanded.Label, q.Collapsed[mapping[i]].Label, collapsed.Label)
			}
			mapping[i] = j
		}
		if mapping[i] == -1 {
			return nil, fmt.Errorf("%w: response question %s: expanded group %q is not contained in any collapsed group",
				ErrInvalidQuestion, q.Key(), expanded.Label)
		}
	}
	return mapping, nil
}

// Clone returns a deep copy of the question.
func (q ResponseQuestion) Clone() ResponseQuestion {
	return ResponseQuestion{
		Question:  q.Question,
		Expanded:  cloneGroups(q.Expanded),
		Collapsed: cloneGroups(q.Collapsed),
	}
}

// Validate checks the expanded/collapsed invariants: each list is mutually
// exclusive, both lists cover the same codes, and every expanded group falls
// inside exactly one collapsed group.
func (q ResponseQuestion) Validate() error {
	if len(q.Expanded) == 0 || len(q.Collapsed) == 0 {
		return fmt.Errorf("%w: response question %s needs expanded and collapsed groups", ErrInvalidQuestion, q.Key())
	}
	if err := checkExclusive(q.Expanded); err != nil {
		return fmt.Errorf("%w: response question %s expanded groups: %v", ErrInvalidQuestion, q.Key(), err)
	}
	if err := checkExclusive(q.Collapsed); err != nil {
		return fmt.Errorf("%w: response question %s collapsed groups: %v", ErrInvalidQuestion, q.Key(), err)
	}

	expanded := valueUnion(q.Expanded)
	collapsed := valueUnion(q.Collapsed)
	if !slices.Equal(expanded, collapsed) {
		return fmt.Errorf("%w: response question %s: expanded codes %v differ from collapsed codes %v",
			ErrInvalidQuestion, q.Key(), expanded, collapsed)
	}

	_, err := q.CollapsedMapping()
	return err
}

func groupIndexFor(groups []ResponseGroup, code int) int {
	for i, g := range groups {
		if g.Contains(code) {
			return i
		}
	}
	return -1
}

func cloneGroups(groups []ResponseGroup) []ResponseGroup {
	if groups == nil {
		return nil
	}
	out := make([]ResponseGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}

// checkExclusive returns an error naming every code claimed by two groups.
func checkExclusive(groups []ResponseGroup) error {
	owner := make(map[int]int)
	var problems []string
	for i, g := range groups {
		if len(g.Values) == 0 {
			problems = append(problems, fmt.Sprintf("group %q has no values", g.Label))
			continue
		}
		for _, v := range g.Values {
			if prev, ok := owner[v]; ok && prev != i {
				problems = append(problems, fmt.Sprintf("code %d is in both %q and %q", v, groups[prev].Label, g.Label))
				continue
			}
			owner[v] = i
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// valueUnion returns the sorted, de-duplicated union of all group values.
func valueUnion(groups []ResponseGroup) []int {
	var all []int
	for _, g := range groups {
		all = append(all, g.Values...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
