// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pollgraph/internal/config"
	"github.com/tomtom215/pollgraph/internal/dataset"
	"github.com/tomtom215/pollgraph/internal/ingest"
	"github.com/tomtom215/pollgraph/internal/logging"
	"github.com/tomtom215/pollgraph/internal/metrics"
	"github.com/tomtom215/pollgraph/internal/models"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingSettings())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logging.ContextWithNewCorrelationID(ctx)

	logging.Ctx(ctx).Info().
		Str("dataset", cfg.Survey.Name).
		Int("grouping_questions", len(cfg.Survey.GroupingQuestions)).
		Int("response_questions", len(cfg.Survey.ResponseQuestions)).
		Msg("Configuration loaded")

	err = run(ctx, cfg, os.Stdin, os.Stdout)
	stop()
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

// run executes one load, layout and output cycle.
func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	mode, err := cfg.SamplingMode()
	if err != nil {
		return err
	}

	ds, err := dataset.New(cfg.Survey.Name, cfg.SurveyModel(),
		dataset.WithLogger(logging.LoggerFromContext(ctx)),
		dataset.WithStatsConfig(cfg.StatsSettings()),
		dataset.WithLayout(cfg.SegmentLayout()),
		dataset.WithPacking(cfg.PackingSettings()),
		dataset.WithSampling(mode),
		dataset.WithInvariantChecks(cfg.Stats.CheckInvariants),
	)
	if err != nil {
		return err
	}

	raw, err := readRespondents(cfg.Input.RespondentsPath, stdin)
	if err != nil {
		return err
	}
	if err := applyRespondents(ctx, ds, raw, cfg.Input.BatchSize); err != nil {
		return err
	}

	doc, err := buildDocument(ds, cfg.Grid(), mode)
	if err != nil {
		return err
	}
	if err := writeDocument(cfg.Input.OutputPath, stdout, doc); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Int("respondents", doc.Respondents).
		Int("splits", len(doc.Splits)).
		Int("segment_groups", len(doc.SegmentGroups)).
		Str("sampling", doc.Sampling).
		Msg("Layout written")

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return err
		}
		logging.Ctx(ctx).Debug().Str("path", path).Msg("Metrics textfile written")
	}
	return nil
}

// readRespondents decodes the respondents file, or stdin when path is empty.
func readRespondents(path string, stdin io.Reader) ([]models.RawRespondent, error) {
	if path == "" {
		raw, err := ingest.DecodeBatch(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return raw, nil
	}
	return ingest.DecodeFile(path)
}

// applyRespondents loads raw in one pass when batchSize is 0, and otherwise
// feeds it to the dataset batch by batch.
func applyRespondents(ctx context.Context, ds *dataset.Dataset, raw []models.RawRespondent, batchSize int) error {
	logger := logging.Ctx(ctx)

	if batchSize == 0 {
		res, err := ds.Load(ctx, raw)
		if err != nil {
			return err
		}
		logger.Info().
			Int("total_processed", res.TotalProcessed).
			Int("valid", res.ValidCount).
			Int("invalid", res.InvalidCount).
			Msg("Respondents loaded")
		return nil
	}

	for i, batch := range ingest.Chunk(raw, batchSize) {
		res, err := ds.AddRespondents(ctx, batch)
		if err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
		for _, delta := range res.Deltas {
			logger.Debug().
				Str("batch_id", res.BatchID).
				Int("split_index", delta.SplitIndex).
				Bool("basis", delta.Basis).
				Int("questions", len(delta.Questions)).
				Msg("Split changed")
		}
		logger.Info().
			Str("batch_id", res.BatchID).
			Int("batch", i).
			Int("valid", res.ValidCount).
			Int("invalid", res.InvalidCount).
			Int("changed_splits", len(res.Deltas)).
			Msg("Batch applied")
	}
	return nil
}

// writeDocument writes doc as indented JSON to path, or to stdout when path
// is empty.
func writeDocument(path string, stdout io.Writer, doc *document) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path) //nolint:gosec // path comes from operator configuration
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write layout document: %w", err)
	}
	return nil
}
