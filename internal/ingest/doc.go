// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package ingest validates raw respondent batches against a survey and
// turns them into typed RespondentRecords.
//
// A raw respondent maps question keys ("battery:sub:var") to numeric codes.
// A key mapped to JSON null is a null response; a key that is absent is a
// missing response. A respondent is excluded, never rejected with an error,
// when any of the following holds:
//
//   - a grouping question is null, missing, or its code is in no response group
//   - a response question is null, missing, or its code is in no expanded group
//   - a configured weight question is null, missing, negative or not finite
//
// Codes must be integral; 2.5 is treated like any other unknown code.
// Without a weight question every respondent weighs 1.0.
//
// Exclusions are reported per Reason in Result so callers can surface them
// as counters. Records are built once and never mutated afterwards.
//
// Example:
//
//	ing, err := ingest.NewIngester(survey)
//	if err != nil {
//	    return err // invalid survey configuration
//	}
//	raw, err := ingest.DecodeBatch(file)
//	if err != nil {
//	    return err
//	}
//	result := ing.Ingest(raw)
//	fmt.Println(result.ValidCount, result.InvalidCount)
package ingest
