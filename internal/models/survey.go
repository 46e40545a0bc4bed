// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package models

import (
	"fmt"

	"github.com/tomtom215/pollgraph/internal/validation"
)

// WeightSource selects how respondent weights are obtained: either read from
// a configured weight question, or fixed at 1.0 for every respondent.
type WeightSource struct {
	question *Question
}

// UnitWeight returns the weight source that assigns 1.0 to every respondent.
func UnitWeight() WeightSource {
	return WeightSource{}
}

// WeightFrom returns a weight source reading weights from question q.
func WeightFrom(q Question) WeightSource {
	return WeightSource{question: &q}
}

// Question returns the configured weight question, if any.
func (w WeightSource) Question() (Question, bool) {
	if w.question == nil {
		return Question{}, false
	}
	return *w.question, true
}

// IsUnit reports whether every respondent receives weight 1.0.
func (w WeightSource) IsUnit() bool {
	return w.question == nil
}

// Survey is the complete question configuration for one dataset.
//
// Grouping questions define the cross-tabulation axes (in order); response
// questions are measured within every split.
type Survey struct {
	Name              string             `json:"name" validate:"required"`
	GroupingQuestions []GroupingQuestion `json:"grouping_questions" validate:"required,min=1,dive"`
	ResponseQuestions []ResponseQuestion `json:"response_questions" validate:"required,min=1,dive"`
	Weight            WeightSource       `json:"-"`
}

// Validate enforces struct-level rules and every question invariant.
// A failure here is a configuration error and must abort construction.
func (s Survey) Validate() error {
	if verr := validation.ValidateStruct(&s); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSurvey, verr.Error())
	}

	seen := make(map[string]string)
	claim := func(q Question, role string) error {
		if prev, ok := seen[q.Key()]; ok {
			return fmt.Errorf("%w: question %s is configured as both %s and %s", ErrInvalidSurvey, q.Key(), prev, role)
		}
		seen[q.Key()] = role
		return nil
	}

	for _, q := range s.GroupingQuestions {
		if err := claim(q.Question, "grouping question"); err != nil {
			return err
		}
		if err := q.Validate(); err != nil {
			return err
		}
	}
	for _, q := range s.ResponseQuestions {
		if err := claim(q.Question, "response question"); err != nil {
			return err
		}
		if err := q.Validate(); err != nil {
			return err
		}
	}
	if wq, ok := s.Weight.Question(); ok {
		if wq.VarName == "" {
			return fmt.Errorf("%w: weight question needs a var_name", ErrInvalidSurvey)
		}
		if err := claim(wq, "weight question"); err != nil {
			return err
		}
	}
	return nil
}

// ResponseQuestionIndex returns the position of the response question with
// the given key, or -1.
func (s Survey) ResponseQuestionIndex(key string) int {
	for i, q := range s.ResponseQuestions {
		if q.Key() == key {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the survey.
func (s Survey) Clone() Survey {
	out := Survey{Name: s.Name, Weight: s.Weight}
	out.GroupingQuestions = make([]GroupingQuestion, len(s.GroupingQuestions))
	for i, q := range s.GroupingQuestions {
		out.GroupingQuestions[i] = q.Clone()
	}
	out.ResponseQuestions = make([]ResponseQuestion, len(s.ResponseQuestions))
	for i, q := range s.ResponseQuestions {
		out.ResponseQuestions[i] = q.Clone()
	}
	if q, ok := s.Weight.Question(); ok {
		out.Weight = WeightFrom(q)
	}
	return out
}
