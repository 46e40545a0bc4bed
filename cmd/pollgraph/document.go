// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package main

import (
	"github.com/tomtom215/pollgraph/internal/dataset"
	"github.com/tomtom215/pollgraph/internal/geometry"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/sampling"
)

// document is the JSON layout written by one run.
type document struct {
	Dataset       string                       `json:"dataset"`
	Sampling      string                       `json:"sampling"`
	Respondents   int                          `json:"respondents"`
	Splits        []models.Split               `json:"splits"`
	SegmentGroups []models.SegmentGroupDisplay `json:"segment_groups"`
	Points        []models.SplitPoints         `json:"points"`
}

var views = []models.View{models.ViewExpanded, models.ViewCollapsed}

// buildDocument lays out every split on grid and packs its points, for every
// response question.
func buildDocument(ds *dataset.Dataset, grid geometry.Grid, mode sampling.Mode) (*document, error) {
	survey := ds.Survey()
	all := ds.Splits()

	segmentCount := 1
	for _, q := range survey.ResponseQuestions {
		segmentCount = max(segmentCount, len(q.Expanded), len(q.Collapsed))
	}
	bounds := grid.Bounds(all, survey.GroupingQuestions, ds.Layout(), segmentCount)

	doc := &document{
		Dataset:       ds.Name(),
		Sampling:      mode.String(),
		Respondents:   ds.Respondents(),
		Splits:        all,
		SegmentGroups: make([]models.SegmentGroupDisplay, 0, len(all)*len(survey.ResponseQuestions)*len(views)),
		Points:        make([]models.SplitPoints, 0, len(all)*len(survey.ResponseQuestions)),
	}

	for _, s := range all {
		for _, q := range survey.ResponseQuestions {
			for _, view := range views {
				display, err := ds.SegmentGroup(s.Index, q.Key(), view, bounds[s.Index])
				if err != nil {
					return nil, err
				}
				doc.SegmentGroups = append(doc.SegmentGroups, display)
			}

			points, _, err := ds.PackPoints(s.Index, q.Key(), bounds[s.Index])
			if err != nil {
				return nil, err
			}
			doc.Points = append(doc.Points, points)
		}
	}
	return doc, nil
}
