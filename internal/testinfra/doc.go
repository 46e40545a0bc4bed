// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

// Package testinfra provides shared survey fixtures for tests.
//
// # Party × Age Survey
//
// PartyAgeSurvey is the canonical two-axis configuration used across the
// engine tests: two grouping questions with two response groups each (nine
// splits) and one response question with four expanded and two collapsed
// groups. PartyAgeRespondents returns the five weighted respondents that go
// with it:
//
//	func TestSomething(t *testing.T) {
//	    survey := testinfra.PartyAgeSurvey()
//	    raw := testinfra.PartyAgeRespondents()
//	    // ...
//	}
//
// # Generated Respondents
//
// RandomRespondents produces deterministic pseudo-random batches for
// property-style tests:
//
//	raw := testinfra.RandomRespondents(survey, 500,
//	    testinfra.WithSeed(7),
//	    testinfra.WithInvalidRate(0.1),
//	)
//
// Generated batches mix valid respondents with nulls, missing keys and
// out-of-range codes so that ingestion filtering is exercised as well.
package testinfra
