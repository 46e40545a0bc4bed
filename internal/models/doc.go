// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

/*
Package models defines the value types shared by every Pollgraph engine.

The package is the single source of truth for data structure definitions:
survey questions and their response groups, demographic splits and their
statistics, respondent records, segment geometry, and pictogram points.
Nothing here performs aggregation or layout; those live in the splits,
ingest, stats, geometry, sampling, and packing packages.

Key Components:

  - Question: identity triple (battery, sub-battery, variable name)
  - ResponseGroup: a labeled bucket of raw numeric response codes
  - GroupingQuestion / ResponseQuestion: partitions used for splitting and measuring
  - Survey: the full question configuration plus the weight source
  - Group / Split: one demographic slice of the cross-tabulation
  - QuestionStats / ResponseGroupStats: weighted counts and proportions
  - RespondentRecord: a validated, typed respondent
  - Rect / Segment / SegmentGroupDisplay: segment geometry
  - Point / PointPosition / PointDiff: stable pictogram point identities
  - SplitDelta / StatisticsUpdateResult: incremental update output

Model Categories:

1. Configuration Models (immutable after construction):
  - Question, ResponseGroup, GroupingQuestion, ResponseQuestion, Survey, WeightSource

2. Computation Models (returned by value, never aliased):
  - Split, QuestionStats, ResponseGroupStats, RespondentRecord

3. Layout Models:
  - Rect, Segment, SegmentGroupDisplay, Point, PointPosition, SegmentPoints, SplitPoints

Wildcards:

A Group whose ResponseGroup is nil is a wildcard ("all response groups
combined"). Splits containing at least one wildcard are aggregated splits;
their statistics are always derived from their basis splits.

Thread Safety:

All types are plain values. Functions that hand values to callers return
deep copies (see the Clone methods), so callers holding earlier results keep
stable snapshots.
*/
package models
