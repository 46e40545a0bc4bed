// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pollgraph/internal/ingest"
	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/splits"
	"github.com/tomtom215/pollgraph/internal/testinfra"
)

const eps = 1e-9

type fixture struct {
	engine   *Engine
	ingester *ingest.Ingester
	splits   []models.Split
}

func newFixture(t *testing.T, workers int) fixture {
	t.Helper()

	survey := testinfra.PartyAgeSurvey()
	engine, err := NewEngine(survey, Config{Workers: workers}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	ing, err := ingest.NewIngester(survey)
	if err != nil {
		t.Fatalf("NewIngester() error = %v", err)
	}
	generated, err := splits.Generate(survey.GroupingQuestions)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return fixture{engine: engine, ingester: ing, splits: generated}
}

func (f fixture) compute(t *testing.T, raw []models.RawRespondent) []models.Split {
	t.Helper()
	out, err := f.engine.Compute(f.splits, f.ingester.Ingest(raw).Records)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return out
}

func assertFloats(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestCompute_PartyAgeScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	out := f.compute(t, testinfra.PartyAgeRespondents())

	demYoung := out[testinfra.SplitDemYoung].Statistics[0]
	if demYoung.TotalCount != 2 || math.Abs(demYoung.TotalWeight-2.3) > eps {
		t.Errorf("Dem × 18-54 totals = %d / %v, want 2 / 2.3", demYoung.TotalCount, demYoung.TotalWeight)
	}
	assertFloats(t, "Dem × 18-54 expanded", demYoung.Proportions(models.ViewExpanded), []float64{1.5 / 2.3, 0.8 / 2.3, 0, 0})
	assertFloats(t, "Dem × 18-54 collapsed", demYoung.Proportions(models.ViewCollapsed), []float64{1, 0})

	tests := []struct {
		split    int
		count    int
		weight   float64
		expanded []float64
	}{
		{testinfra.SplitDemOld, 1, 1.2, []float64{0, 0, 1, 0}},
		{testinfra.SplitDemAll, 3, 3.5, []float64{1.5 / 3.5, 0.8 / 3.5, 1.2 / 3.5, 0}},
		{testinfra.SplitRepYoung, 1, 1.0, []float64{0, 0, 1, 0}},
		{testinfra.SplitRepOld, 1, 2.0, []float64{0, 0, 0, 1}},
		{testinfra.SplitRepAll, 2, 3.0, []float64{0, 0, 1.0 / 3, 2.0 / 3}},
		{testinfra.SplitAllYoung, 3, 3.3, []float64{1.5 / 3.3, 0.8 / 3.3, 1.0 / 3.3, 0}},
		{testinfra.SplitAllOld, 2, 3.2, []float64{0, 0, 1.2 / 3.2, 2.0 / 3.2}},
		{testinfra.SplitAllAll, 5, 6.5, []float64{1.5 / 6.5, 0.8 / 6.5, 2.2 / 6.5, 2.0 / 6.5}},
	}
	for _, tt := range tests {
		st := out[tt.split].Statistics[0]
		if st.TotalCount != tt.count || math.Abs(st.TotalWeight-tt.weight) > eps {
			t.Errorf("split %d totals = %d / %v, want %d / %v", tt.split, st.TotalCount, st.TotalWeight, tt.count, tt.weight)
		}
		assertFloats(t, out[tt.split].Label(), st.Proportions(models.ViewExpanded), tt.expanded)
	}

	if err := ValidateInvariants(out, DefaultTolerance); err != nil {
		t.Errorf("ValidateInvariants() error = %v", err)
	}
}

func TestCompute_AggregatedProportionIsWeightFraction(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	out := f.compute(t, testinfra.PartyAgeRespondents())

	// The mean of the basis proportions would give (1.5/2.3 + 0)/2 for the
	// first group of Dem × All; the weight fraction is 1.5/3.5.
	got := out[testinfra.SplitDemAll].Statistics[0].Expanded[0].Proportion
	if math.Abs(got-1.5/3.5) > eps {
		t.Errorf("Dem × All strongly approve = %v, want %v", got, 1.5/3.5)
	}
}

func TestCompute_EmptyRecordsYieldZeroStatistics(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 2)
	out, err := f.engine.Compute(f.splits, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	for _, s := range out {
		if len(s.Statistics) != 1 {
			t.Fatalf("split %d has %d question stats, want 1", s.Index, len(s.Statistics))
		}
		st := s.Statistics[0]
		if st.Populated() || st.TotalWeight != 0 {
			t.Errorf("split %d should be unpopulated, got %+v", s.Index, st)
		}
		for _, p := range st.Proportions(models.ViewExpanded) {
			if p != 0 {
				t.Errorf("split %d has proportion %v, want 0", s.Index, p)
			}
		}
	}
}

func TestCompute_ZeroWeightRespondents(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	out := f.compute(t, []models.RawRespondent{testinfra.Respondent("z", 1, 1, 1, 0)})

	st := out[testinfra.SplitDemYoung].Statistics[0]
	if !st.Populated() || st.TotalCount != 1 || st.TotalWeight != 0 {
		t.Errorf("zero-weight split = %+v", st)
	}
	for _, p := range st.Proportions(models.ViewExpanded) {
		if p != 0 {
			t.Errorf("proportion = %v, want 0 with zero total weight", p)
		}
	}
	if err := ValidateInvariants(out, DefaultTolerance); err != nil {
		t.Errorf("ValidateInvariants() error = %v", err)
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	_ = f.compute(t, testinfra.PartyAgeRespondents())

	for _, s := range f.splits {
		if s.Statistics != nil {
			t.Fatalf("Compute() mutated input split %d", s.Index)
		}
	}
}

func TestCompute_WorkerCountDoesNotChangeResults(t *testing.T) {
	t.Parallel()

	survey := testinfra.PartyAgeSurvey()
	raw := testinfra.RandomRespondents(survey, 2000, testinfra.WithSeed(11), testinfra.WithInvalidRate(0.1))

	serial := newFixture(t, 1).compute(t, raw)
	parallel := newFixture(t, 8).compute(t, raw)

	for i := range serial {
		a, b := serial[i].Statistics[0], parallel[i].Statistics[0]
		if a.TotalCount != b.TotalCount || a.TotalWeight != b.TotalWeight {
			t.Errorf("split %d differs: serial %d/%v, parallel %d/%v", i, a.TotalCount, a.TotalWeight, b.TotalCount, b.TotalWeight)
		}
	}
	if err := ValidateInvariants(parallel, DefaultTolerance); err != nil {
		t.Errorf("ValidateInvariants() error = %v", err)
	}
}

func TestCompute_ThreeGroupingQuestions(t *testing.T) {
	t.Parallel()

	survey := testinfra.PartyAgeSurvey()
	survey.GroupingQuestions = append(survey.GroupingQuestions, models.GroupingQuestion{
		Question: models.Question{BatteryName: "demographics", SubBattery: "region", VarName: "reg3"},
		ResponseGroups: []models.ResponseGroup{
			{Label: "North", Values: []int{1}},
			{Label: "South", Values: []int{2}},
			{Label: "West", Values: []int{3}},
		},
	})

	engine, err := NewEngine(survey, Config{Workers: 3}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	ing, err := ingest.NewIngester(survey)
	if err != nil {
		t.Fatalf("NewIngester() error = %v", err)
	}
	generated, err := splits.Generate(survey.GroupingQuestions)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	raw := testinfra.RandomRespondents(survey, 1500, testinfra.WithSeed(5))
	batch := ing.Ingest(raw)
	out, err := engine.Compute(generated, batch.Records)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(out) != 3*3*4 {
		t.Fatalf("len(out) = %d, want 36", len(out))
	}
	all := out[len(out)-1].Statistics[0]
	if all.TotalCount != batch.ValidCount {
		t.Errorf("All × All × All count = %d, want %d", all.TotalCount, batch.ValidCount)
	}
	if err := ValidateInvariants(out, DefaultTolerance); err != nil {
		t.Errorf("ValidateInvariants() error = %v", err)
	}
}

func TestNewEngine_Errors(t *testing.T) {
	t.Parallel()

	survey := testinfra.PartyAgeSurvey()
	survey.ResponseQuestions[0].Expanded[0].Values = []int{1, 2}
	if _, err := NewEngine(survey, Config{}, zerolog.Nop()); !errors.Is(err, models.ErrInvalidQuestion) {
		t.Errorf("NewEngine(overlap) error = %v, want ErrInvalidQuestion", err)
	}

	if _, err := NewEngine(testinfra.PartyAgeSurvey(), Config{Workers: -1}, zerolog.Nop()); err == nil {
		t.Error("NewEngine(workers=-1) should fail")
	}
}

func TestCompute_Mismatches(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)

	if _, err := f.engine.Compute(f.splits[:4], nil); !errors.Is(err, ErrSplitMismatch) {
		t.Errorf("Compute(short splits) error = %v, want ErrSplitMismatch", err)
	}

	bad := []models.RespondentRecord{{ID: "x", Weight: 1, GroupIndices: []int{0, 5}, ExpandedIndices: []int{0}}}
	if _, err := f.engine.Compute(f.splits, bad); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("Compute(bad group index) error = %v, want ErrRecordMismatch", err)
	}

	bad[0].GroupIndices = []int{0, 0}
	bad[0].ExpandedIndices = []int{4}
	if _, err := f.engine.Compute(f.splits, bad); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("Compute(bad expanded index) error = %v, want ErrRecordMismatch", err)
	}
}
