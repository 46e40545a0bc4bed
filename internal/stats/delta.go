// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import "github.com/tomtom215/pollgraph/internal/models"

// splitDelta reports every response question of a split before and after an
// update. A split that was never measured reports zero "before" values.
func (e *Engine) splitDelta(before, after models.Split) models.SplitDelta {
	delta := models.SplitDelta{
		SplitIndex: after.Index,
		Basis:      after.IsBasis(),
		Questions:  make([]models.QuestionDelta, len(after.Statistics)),
	}
	for qi, a := range after.Statistics {
		var b models.QuestionStats
		if before.Statistics != nil {
			b = before.Statistics[qi]
		}
		delta.Questions[qi] = models.QuestionDelta{
			Question:          a.Question,
			TotalCountBefore:  b.TotalCount,
			TotalCountAfter:   a.TotalCount,
			TotalWeightBefore: b.TotalWeight,
			TotalWeightAfter:  a.TotalWeight,
			Expanded:          groupDeltas(b.Expanded, a.Expanded),
			Collapsed:         groupDeltas(b.Collapsed, a.Collapsed),
		}
	}
	return delta
}

// groupDeltas pairs groups by position; after defines the group list.
func groupDeltas(before, after []models.ResponseGroupStats) []models.GroupDelta {
	out := make([]models.GroupDelta, len(after))
	for g, a := range after {
		var b models.ResponseGroupStats
		if g < len(before) {
			b = before[g]
		}
		out[g] = models.GroupDelta{
			Label:            a.Label,
			CountBefore:      b.Count,
			CountAfter:       a.Count,
			WeightBefore:     b.Weight,
			WeightAfter:      a.Weight,
			ProportionBefore: b.Proportion,
			ProportionAfter:  a.Proportion,
		}
	}
	return out
}
