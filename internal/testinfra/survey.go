// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package testinfra

import (
	"fmt"
	"math/rand"

	"github.com/tomtom215/pollgraph/internal/models"
)

// Questions used by PartyAgeSurvey.
var (
	PartyQuestion    = models.Question{BatteryName: "demographics", SubBattery: "party", VarName: "pid2"}
	AgeQuestion      = models.Question{BatteryName: "demographics", SubBattery: "age", VarName: "age4"}
	ApprovalQuestion = models.Question{BatteryName: "approval", SubBattery: "president", VarName: "app4"}
	WeightQuestion   = models.Question{BatteryName: "weights", SubBattery: "", VarName: "wt"}
)

// Split indices of PartyAgeSurvey (party outermost, age innermost).
const (
	SplitDemYoung = 0
	SplitDemOld   = 1
	SplitDemAll   = 2
	SplitRepYoung = 3
	SplitRepOld   = 4
	SplitRepAll   = 5
	SplitAllYoung = 6
	SplitAllOld   = 7
	SplitAllAll   = 8
)

// Code returns a pointer to v for building raw respondent maps.
func Code(v float64) *float64 {
	return &v
}

// PartyAgeSurvey returns the party × age survey with a weight question.
func PartyAgeSurvey() models.Survey {
	return models.Survey{
		Name: "party-age",
		GroupingQuestions: []models.GroupingQuestion{
			{
				Question: PartyQuestion,
				Axis:     models.AxisX,
				ResponseGroups: []models.ResponseGroup{
					{Label: "Democrat", Values: []int{1}},
					{Label: "Republican", Values: []int{2}},
				},
			},
			{
				Question: AgeQuestion,
				Axis:     models.AxisY,
				ResponseGroups: []models.ResponseGroup{
					{Label: "18-34 or 35-54", Values: []int{1, 2}},
					{Label: "55+", Values: []int{3, 4}},
				},
			},
		},
		ResponseQuestions: []models.ResponseQuestion{
			{
				Question: ApprovalQuestion,
				Expanded: []models.ResponseGroup{
					{Label: "Strongly approve", Values: []int{1}},
					{Label: "Somewhat approve", Values: []int{2}},
					{Label: "Somewhat disapprove", Values: []int{3}},
					{Label: "Strongly disapprove", Values: []int{4}},
				},
				Collapsed: []models.ResponseGroup{
					{Label: "Approve", Values: []int{1, 2}},
					{Label: "Disapprove", Values: []int{3, 4}},
				},
			},
		},
		Weight: models.WeightFrom(WeightQuestion),
	}
}

// PartyAgeRespondents returns five valid weighted respondents for PartyAgeSurvey.
//
// Democrat × "18-34 or 35-54" holds r1 (weight 1.5, strongly approve) and
// r2 (weight 0.8, somewhat approve).
func PartyAgeRespondents() []models.RawRespondent {
	return []models.RawRespondent{
		Respondent("r1", 1, 1, 1, 1.5),
		Respondent("r2", 1, 2, 2, 0.8),
		Respondent("r3", 2, 1, 3, 1.0),
		Respondent("r4", 2, 3, 4, 2.0),
		Respondent("r5", 1, 4, 3, 1.2),
	}
}

// Respondent builds a PartyAgeSurvey raw respondent.
func Respondent(id string, party, age, approval, weight float64) models.RawRespondent {
	return models.RawRespondent{
		ID: id,
		Responses: map[string]*float64{
			PartyQuestion.Key():    Code(party),
			AgeQuestion.Key():      Code(age),
			ApprovalQuestion.Key(): Code(approval),
			WeightQuestion.Key():   Code(weight),
		},
	}
}

// GenerateOption configures RandomRespondents.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	seed        int64
	invalidRate float64
	minWeight   float64
	maxWeight   float64
	idPrefix    string
}

// WithSeed fixes the pseudo-random sequence.
func WithSeed(seed int64) GenerateOption {
	return func(c *generateConfig) { c.seed = seed }
}

// WithInvalidRate sets the fraction of respondents that get one broken response.
func WithInvalidRate(rate float64) GenerateOption {
	return func(c *generateConfig) { c.invalidRate = rate }
}

// WithWeightRange sets the uniform weight range.
func WithWeightRange(minWeight, maxWeight float64) GenerateOption {
	return func(c *generateConfig) {
		c.minWeight = minWeight
		c.maxWeight = maxWeight
	}
}

// WithIDPrefix sets the respondent ID prefix so batches do not collide.
func WithIDPrefix(prefix string) GenerateOption {
	return func(c *generateConfig) { c.idPrefix = prefix }
}

// RandomRespondents generates n respondents answering every question of survey.
// With an invalid rate above zero, some respondents get a null, missing or
// out-of-range response and will be excluded by ingestion.
func RandomRespondents(survey models.Survey, n int, opts ...GenerateOption) []models.RawRespondent {
	cfg := &generateConfig{seed: 1, minWeight: 0.5, maxWeight: 2.0, idPrefix: "gen"}
	for _, opt := range opts {
		opt(cfg)
	}
	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // fixtures only

	var questions []models.Question
	var pools [][]models.ResponseGroup
	for _, q := range survey.GroupingQuestions {
		questions = append(questions, q.Question)
		pools = append(pools, q.ResponseGroups)
	}
	for _, q := range survey.ResponseQuestions {
		questions = append(questions, q.Question)
		pools = append(pools, q.Expanded)
	}

	out := make([]models.RawRespondent, n)
	for i := range out {
		responses := make(map[string]*float64, len(questions)+1)
		for qi, q := range questions {
			groups := pools[qi]
			g := groups[rng.Intn(len(groups))]
			responses[q.Key()] = Code(float64(g.Values[rng.Intn(len(g.Values))]))
		}
		if wq, ok := survey.Weight.Question(); ok {
			responses[wq.Key()] = Code(cfg.minWeight + rng.Float64()*(cfg.maxWeight-cfg.minWeight))
		}

		if cfg.invalidRate > 0 && rng.Float64() < cfg.invalidRate {
			key := questions[rng.Intn(len(questions))].Key()
			switch rng.Intn(3) {
			case 0:
				responses[key] = nil
			case 1:
				delete(responses, key)
			default:
				responses[key] = Code(9999)
			}
		}

		out[i] = models.RawRespondent{ID: fmt.Sprintf("%s-%d", cfg.idPrefix, i), Responses: responses}
	}
	return out
}
