// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

/*
Package metrics provides Prometheus instrumentation for the statistics and
layout pipeline.

Collectors are registered with the default registry through promauto, and
each concern has a Record* helper so callers never touch label values
directly.

# Available Metrics

Ingestion Metrics:
  - pollgraph_respondents_processed_total: Respondents seen (counter)
    Labels: result ("valid", "invalid")
  - pollgraph_respondents_excluded_total: Exclusions (counter)
    Labels: reason (first failing check, e.g. "grouping_null")
  - pollgraph_batch_size: Respondents per applied batch (histogram)

Statistics Metrics:
  - pollgraph_splits_recomputed_total: Split recomputations (counter)
    Labels: kind ("basis", "aggregated")
  - pollgraph_statistics_duration_seconds: Computation time (histogram)
    Labels: operation ("compute", "update")
  - pollgraph_split_deltas_total: Deltas reported by updates (counter)

Layout Metrics:
  - pollgraph_packing_operations_total: Segment packings (counter)
    Labels: mode ("initial", "repack", "incremental")
  - pollgraph_points_changed_total: Points added or removed (counter)
    Labels: change ("added", "removed")
  - pollgraph_unpopulated_segment_groups_total: Layouts of unpopulated splits (counter)

Dataset Metrics:
  - pollgraph_dataset_respondents: Aggregated valid respondents (gauge)
    Labels: dataset

# Exporting

Pollgraph is a batch tool, so there is no /metrics endpoint. The CLI writes
the registry to a file in the text exposition format when metrics_path is
configured, ready for node_exporter's textfile collector:

	metrics.WriteTextfile("/var/lib/node_exporter/pollgraph.prom")
*/
package metrics
