// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

/*
Package dataset is the stateful front door to one survey dataset.

A Dataset owns the generated split array, the respondent ingester, the
statistics engine and the packed point state of every split it has laid out.
Callers feed respondent batches in and read splits, segment geometry and point
layouts out:

	ds, err := dataset.New("party-age", survey,
	    dataset.WithLogger(logging.WithComponent("dataset")),
	    dataset.WithSampling(mode),
	)
	if err != nil {
	    return err
	}

	result, err := ds.AddRespondents(ctx, batch)
	display, err := ds.SegmentGroup(8, approval.Key(), models.ViewCollapsed, bounds)
	points, diffs, err := ds.PackPoints(8, approval.Key(), bounds)

# Concurrency

A Dataset is a single writer: batches are applied one at a time under a
mutex and readers get deep copies, so a snapshot taken before an update stays
valid after it.

# Errors

Lookups of unknown splits, questions or views return ErrSplitNotFound,
ErrQuestionNotFound or ErrViewNotFound wrapped with the missing key and the
dataset name. Invalid respondents never fail a batch; they are counted in the
returned StatisticsUpdateResult.
*/
package dataset
