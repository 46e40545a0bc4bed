// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/tomtom215/pollgraph/internal/ingest"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/testinfra"
)

func TestApply_MatchesFullCompute(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	raw := testinfra.PartyAgeRespondents()
	initial := f.compute(t, raw[:3])

	updated, result, err := f.engine.Apply(initial, f.ingester.Ingest(raw[3:]))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	full := f.compute(t, raw)

	for i := range full {
		want, got := full[i].Statistics[0], updated[i].Statistics[0]
		if want.TotalCount != got.TotalCount || math.Abs(want.TotalWeight-got.TotalWeight) > eps {
			t.Errorf("split %d: incremental %d/%v, full %d/%v", i, got.TotalCount, got.TotalWeight, want.TotalCount, want.TotalWeight)
		}
		assertFloats(t, full[i].Label(), got.Proportions(models.ViewCollapsed), want.Proportions(models.ViewCollapsed))
	}

	if result.TotalProcessed != 2 || result.ValidCount != 2 || result.InvalidCount != 0 {
		t.Errorf("result counts = %d/%d/%d", result.TotalProcessed, result.ValidCount, result.InvalidCount)
	}

	var indices []int
	for _, d := range result.Deltas {
		indices = append(indices, d.SplitIndex)
	}
	want := []int{
		testinfra.SplitDemOld, testinfra.SplitDemAll,
		testinfra.SplitRepOld, testinfra.SplitRepAll,
		testinfra.SplitAllOld, testinfra.SplitAllAll,
	}
	if !slices.Equal(indices, want) {
		t.Errorf("delta splits = %v, want %v", indices, want)
	}
}

func TestApply_DeltaValues(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	raw := testinfra.PartyAgeRespondents()
	initial := f.compute(t, raw[:1]) // r1 only: Dem × 18-54, strongly approve, 1.5

	_, result, err := f.engine.Apply(initial, f.ingester.Ingest(raw[1:2])) // r2: same split, somewhat approve, 0.8
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	var demYoung *models.SplitDelta
	for i := range result.Deltas {
		if result.Deltas[i].SplitIndex == testinfra.SplitDemYoung {
			demYoung = &result.Deltas[i]
		}
	}
	if demYoung == nil {
		t.Fatal("no delta for Dem × 18-54")
	}
	if !demYoung.Basis {
		t.Error("Dem × 18-54 delta should be marked basis")
	}

	q := demYoung.Questions[0]
	if q.TotalCountBefore != 1 || q.TotalCountAfter != 2 {
		t.Errorf("total count %d → %d, want 1 → 2", q.TotalCountBefore, q.TotalCountAfter)
	}
	if math.Abs(q.TotalWeightAfter-2.3) > eps {
		t.Errorf("total weight after = %v, want 2.3", q.TotalWeightAfter)
	}

	strong := q.Expanded[0]
	if strong.ProportionBefore != 1 || math.Abs(strong.ProportionAfter-1.5/2.3) > eps {
		t.Errorf("strongly approve proportion %v → %v", strong.ProportionBefore, strong.ProportionAfter)
	}
	somewhat := q.Expanded[1]
	if somewhat.CountBefore != 0 || somewhat.CountAfter != 1 || somewhat.WeightAfter != 0.8 {
		t.Errorf("somewhat approve delta = %+v", somewhat)
	}

	approve := q.Collapsed[0]
	if approve.ProportionBefore != 1 || approve.ProportionAfter != 1 || math.Abs(approve.WeightAfter-2.3) > eps {
		t.Errorf("collapsed approve delta = %+v", approve)
	}

	// Dem × 18-54 feeds Dem × All, All × 18-54 and All × All.
	if len(result.Deltas) != 4 {
		t.Errorf("len(Deltas) = %d, want 4", len(result.Deltas))
	}
}

func TestApply_NoValidRespondentsYieldsEmptyDeltas(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	initial := f.compute(t, testinfra.PartyAgeRespondents())

	tests := []struct {
		name  string
		batch []models.RawRespondent
	}{
		{"empty batch", nil},
		{"only invalid", []models.RawRespondent{testinfra.Respondent("bad", 9, 1, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			updated, result, err := f.engine.Apply(initial, f.ingester.Ingest(tt.batch))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if result.Deltas == nil || len(result.Deltas) != 0 {
				t.Errorf("Deltas = %#v, want empty non-nil slice", result.Deltas)
			}
			if result.InvalidCount != len(tt.batch) {
				t.Errorf("InvalidCount = %d, want %d", result.InvalidCount, len(tt.batch))
			}
			for i := range initial {
				if updated[i].Statistics[0].TotalWeight != initial[i].Statistics[0].TotalWeight {
					t.Errorf("split %d changed", i)
				}
			}
		})
	}
}

func TestApply_FromUnmeasuredSplits(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	updated, result, err := f.engine.Apply(f.splits, f.ingester.Ingest(testinfra.PartyAgeRespondents()))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Every basis split of the fixture has at least one respondent.
	if len(result.Deltas) != len(updated) {
		t.Errorf("len(Deltas) = %d, want %d", len(result.Deltas), len(updated))
	}
	for _, d := range result.Deltas {
		if d.Questions[0].TotalCountBefore != 0 {
			t.Errorf("split %d: before count %d, want 0", d.SplitIndex, d.Questions[0].TotalCountBefore)
		}
	}
	if f.splits[0].Statistics != nil {
		t.Error("Apply() mutated its input")
	}
}

func TestApply_ManyBatchesPreserveInvariants(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4)
	survey := testinfra.PartyAgeSurvey()
	raw := testinfra.RandomRespondents(survey, 900, testinfra.WithSeed(3), testinfra.WithInvalidRate(0.2))

	current, err := f.engine.Compute(f.splits, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	var valid int
	for _, chunk := range ingest.Chunk(raw, 100) {
		batch := f.ingester.Ingest(chunk)
		valid += batch.ValidCount

		var result models.StatisticsUpdateResult
		current, result, err = f.engine.Apply(current, batch)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if !slices.IsSortedFunc(result.Deltas, func(a, b models.SplitDelta) int { return a.SplitIndex - b.SplitIndex }) {
			t.Error("deltas are not ordered by split index")
		}
		if err := ValidateInvariants(current, DefaultTolerance); err != nil {
			t.Fatalf("ValidateInvariants() after batch error = %v", err)
		}
	}

	if got := current[testinfra.SplitAllAll].Statistics[0].TotalCount; got != valid {
		t.Errorf("All × All count = %d, want %d", got, valid)
	}
	full := f.compute(t, raw)
	for i := range full {
		if full[i].Statistics[0].TotalCount != current[i].Statistics[0].TotalCount {
			t.Errorf("split %d: incremental count %d, full %d", i, current[i].Statistics[0].TotalCount, full[i].Statistics[0].TotalCount)
		}
	}
}

func TestApply_RecordMismatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	batch := ingest.Result{
		TotalProcessed: 1,
		ValidCount:     1,
		Records:        []models.RespondentRecord{{ID: "x", GroupIndices: []int{0}, ExpandedIndices: []int{0}}},
	}
	if _, _, err := f.engine.Apply(f.splits, batch); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("Apply() error = %v, want ErrRecordMismatch", err)
	}
}
