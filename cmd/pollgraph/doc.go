// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package main is the entry point for the pollgraph command.
//
// pollgraph reads a survey configuration and a JSON array of respondents,
// cross-tabulates the respondents into every split of the grouping
// questions, lays the splits out on a uniform grid and packs one point per
// respondent (or per synthetic sample unit) into each response segment. The
// result is written as one JSON document:
//
//	{
//	  "dataset": "party-age",
//	  "sampling": "actual",
//	  "respondents": 5,
//	  "splits": [...],          // statistics per split
//	  "segment_groups": [...],  // expanded and collapsed segments per split and question
//	  "points": [...]           // packed point positions per split and question
//	}
//
// Segment and point coordinates are relative to their segment group's
// bounds; the bounds themselves are absolute grid positions.
//
// # Startup Sequence
//
//  1. Configuration: defaults, YAML file, environment (koanf)
//  2. Logging: zerolog, one correlation ID per run
//  3. Respondents: input.respondents_path, or stdin when unset
//  4. Statistics: one full load when input.batch_size is 0, otherwise
//     incremental batches with per-split deltas logged
//  5. Layout: grid bounds, segment groups and point packing
//  6. Output: input.output_path, or stdout when unset
//  7. Metrics: optional Prometheus textfile (metrics.textfile_path)
//
// # Example Usage
//
//	CONFIG_PATH=survey.yaml pollgraph < respondents.json > layout.json
//
//	export SYNTHETIC_SAMPLE_SIZE=100
//	export BATCH_SIZE=250
//	export LOG_FORMAT=console
//	pollgraph
//
// Any configuration or I/O error exits with status 1.
package main
