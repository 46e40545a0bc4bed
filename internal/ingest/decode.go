// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pollgraph/internal/models"
)

// ErrDecode is returned when a respondent batch is not a JSON array of respondents.
var ErrDecode = errors.New("failed to decode respondent batch")

// DecodeBatch reads a JSON array of raw respondents:
//
//	[{"id": "r1", "responses": {"demographics:party:pid2": 1, "weights::wt": null}}]
func DecodeBatch(r io.Reader) ([]models.RawRespondent, error) {
	var batch []models.RawRespondent
	dec := json.NewDecoder(r)
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if batch == nil {
		batch = []models.RawRespondent{}
	}
	return batch, nil
}

// DecodeFile opens path and decodes it with DecodeBatch.
func DecodeFile(path string) ([]models.RawRespondent, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open respondents file: %w", err)
	}
	defer f.Close()

	batch, err := DecodeBatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return batch, nil
}

// Chunk splits raw into consecutive batches of at most size respondents.
// A size below one yields a single batch.
func Chunk(raw []models.RawRespondent, size int) [][]models.RawRespondent {
	if len(raw) == 0 {
		return nil
	}
	if size < 1 || size >= len(raw) {
		return [][]models.RawRespondent{raw}
	}
	out := make([][]models.RawRespondent, 0, (len(raw)+size-1)/size)
	for start := 0; start < len(raw); start += size {
		end := min(start+size, len(raw))
		out = append(out, raw[start:end:end])
	}
	return out
}
