// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package logging provides the zerolog-based global logger used by the
// pollgraph command.
//
// Engine packages never reach for the global logger themselves: they take a
// zerolog.Logger at construction (dataset.WithLogger, stats.NewEngine,
// packing.NewPacker) and add a component field. The command builds that
// logger here and threads a correlation ID through the context so every
// batch of one run can be found together.
//
// # Quick Start
//
//	logging.Init(cfg.LoggingSettings())
//	ctx := logging.ContextWithNewCorrelationID(context.Background())
//	logging.Ctx(ctx).Info().Str("dataset", name).Msg("Loading respondents")
//
// # Configuration
//
// Environment variables, read by the config package:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// Logs go to stderr. Stdout is reserved for the layout document.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Int("splits", n).Msg("Computed")  // Correct
//	logging.Info().Int("splits", n)                  // WRONG - log not emitted
package logging
