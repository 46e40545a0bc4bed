// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import "github.com/tomtom215/pollgraph/internal/models"

// accumulator holds raw expanded-group sums for one response question.
type accumulator struct {
	counts  []int
	weights []float64
}

func emptyAccumulators(survey models.Survey) []accumulator {
	out := make([]accumulator, len(survey.ResponseQuestions))
	for i, q := range survey.ResponseQuestions {
		out[i] = accumulator{
			counts:  make([]int, len(q.Expanded)),
			weights: make([]float64, len(q.Expanded)),
		}
	}
	return out
}

// accumulatorsFrom seeds accumulators with existing statistics. Splits that
// were never measured start at zero.
func accumulatorsFrom(survey models.Survey, existing []models.QuestionStats) []accumulator {
	acc := emptyAccumulators(survey)
	if existing == nil {
		return acc
	}
	for qi := range acc {
		acc[qi].add(existing[qi])
	}
	return acc
}

func (a accumulator) add(st models.QuestionStats) {
	for g := range a.counts {
		if g >= len(st.Expanded) {
			break
		}
		a.counts[g] += st.Expanded[g].Count
		a.weights[g] += st.Expanded[g].Weight
	}
}

// basisStats adds records to acc and returns the resulting statistics.
func (e *Engine) basisStats(acc []accumulator, records []models.RespondentRecord) []models.QuestionStats {
	for _, rec := range records {
		for qi, g := range rec.ExpandedIndices {
			acc[qi].counts[g]++
			acc[qi].weights[g] += rec.Weight
		}
	}
	return e.finish(acc)
}

// aggregateStats sums the statistics of the given basis splits.
func (e *Engine) aggregateStats(all []models.Split, basis []int) []models.QuestionStats {
	acc := emptyAccumulators(e.survey)
	for _, b := range basis {
		if all[b].Statistics == nil {
			continue
		}
		for qi := range acc {
			acc[qi].add(all[b].Statistics[qi])
		}
	}
	return e.finish(acc)
}

// finish turns expanded sums into full question statistics. Totals are the
// sums of the expanded groups and collapsed groups are derived from them.
func (e *Engine) finish(acc []accumulator) []models.QuestionStats {
	out := make([]models.QuestionStats, len(acc))
	for qi, a := range acc {
		q := e.survey.ResponseQuestions[qi]

		var totalCount int
		var totalWeight float64
		for g := range a.counts {
			totalCount += a.counts[g]
			totalWeight += a.weights[g]
		}

		collapsedCounts := make([]int, len(q.Collapsed))
		collapsedWeights := make([]float64, len(q.Collapsed))
		for g, c := range e.mappings[qi] {
			collapsedCounts[c] += a.counts[g]
			collapsedWeights[c] += a.weights[g]
		}

		out[qi] = models.QuestionStats{
			Question:    q.Question,
			TotalCount:  totalCount,
			TotalWeight: totalWeight,
			Expanded:    groupStats(q.Expanded, a.counts, a.weights, totalWeight),
			Collapsed:   groupStats(q.Collapsed, collapsedCounts, collapsedWeights, totalWeight),
		}
	}
	return out
}

func groupStats(groups []models.ResponseGroup, counts []int, weights []float64, totalWeight float64) []models.ResponseGroupStats {
	out := make([]models.ResponseGroupStats, len(groups))
	for g, rg := range groups {
		out[g] = models.ResponseGroupStats{
			Label:      rg.Label,
			Count:      counts[g],
			Weight:     weights[g],
			Proportion: proportion(weights[g], totalWeight),
		}
	}
	return out
}

func proportion(weight, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return weight / total
}
