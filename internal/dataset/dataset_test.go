// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package dataset

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/pollgraph/internal/models"
	"github.com/tomtom215/pollgraph/internal/packing"
	"github.com/tomtom215/pollgraph/internal/sampling"
	"github.com/tomtom215/pollgraph/internal/testinfra"
)

var (
	approvalKey = testinfra.ApprovalQuestion.Key()
	groupBounds = models.Rect{X: 0, Y: 0, Width: 200, Height: 120}
)

func newTestDataset(t *testing.T, opts ...Option) *Dataset {
	t.Helper()
	opts = append([]Option{WithInvariantChecks(true)}, opts...)
	ds, err := New("party-age", testinfra.PartyAgeSurvey(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ds
}

func addRespondents(t *testing.T, ds *Dataset, raw []models.RawRespondent) models.StatisticsUpdateResult {
	t.Helper()
	result, err := ds.AddRespondents(context.Background(), raw)
	if err != nil {
		t.Fatalf("AddRespondents() error = %v", err)
	}
	return result
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New("", testinfra.PartyAgeSurvey()); !errors.Is(err, ErrInvalidName) {
		t.Errorf("New(\"\") error = %v, want ErrInvalidName", err)
	}

	bad := testinfra.PartyAgeSurvey()
	bad.ResponseQuestions = nil
	if _, err := New("bad", bad); !errors.Is(err, models.ErrInvalidSurvey) {
		t.Errorf("New(no response questions) error = %v, want ErrInvalidSurvey", err)
	}

	cfg := packing.DefaultConfig()
	cfg.Candidates = 0
	if _, err := New("bad", testinfra.PartyAgeSurvey(), WithPacking(cfg)); !errors.Is(err, packing.ErrInvalidConfig) {
		t.Errorf("New(bad packing) error = %v, want packing.ErrInvalidConfig", err)
	}
}

func TestNew_StartsUnmeasured(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	all := ds.Splits()
	if len(all) != 9 {
		t.Fatalf("len(Splits()) = %d, want 9", len(all))
	}
	for _, s := range all {
		if s.Statistics != nil {
			t.Errorf("split %d has statistics before any respondents", s.Index)
		}
	}
	if ds.Name() != "party-age" || ds.Respondents() != 0 {
		t.Errorf("Name() = %q, Respondents() = %d", ds.Name(), ds.Respondents())
	}
}

func TestAddRespondents_PartyAgeScenario(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	raw := append(testinfra.PartyAgeRespondents(), models.RawRespondent{ID: "bad"})
	result := addRespondents(t, ds, raw)

	if result.TotalProcessed != 6 || result.ValidCount != 5 || result.InvalidCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 6/5/1", result.TotalProcessed, result.ValidCount, result.InvalidCount)
	}
	if _, err := uuid.Parse(result.BatchID); err != nil {
		t.Errorf("BatchID %q is not a UUID: %v", result.BatchID, err)
	}
	if len(result.Deltas) != 9 {
		t.Errorf("len(Deltas) = %d, want 9 (every split changed)", len(result.Deltas))
	}
	if !slices.IsSortedFunc(result.Deltas, func(a, b models.SplitDelta) int { return a.SplitIndex - b.SplitIndex }) {
		t.Error("deltas should be ordered by split index")
	}

	s, err := ds.Split(testinfra.SplitDemYoung)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	got := s.Statistics[0].Proportions(models.ViewExpanded)
	want := []float64{1.5 / 2.3, 0.8 / 2.3, 0, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("expanded[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if c := s.Statistics[0].Proportions(models.ViewCollapsed); math.Abs(c[0]-1) > 1e-9 || c[1] != 0 {
		t.Errorf("collapsed = %v, want [1 0]", c)
	}
	if ds.Respondents() != 5 {
		t.Errorf("Respondents() = %d, want 5", ds.Respondents())
	}
}

func TestAddRespondents_SnapshotsStayValid(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	addRespondents(t, ds, testinfra.PartyAgeRespondents())
	before := ds.Splits()

	addRespondents(t, ds, []models.RawRespondent{testinfra.Respondent("r6", 1, 1, 4, 3)})

	if before[testinfra.SplitDemYoung].Statistics[0].TotalCount != 2 {
		t.Error("an earlier snapshot changed after a later batch")
	}
	after, _ := ds.Split(testinfra.SplitDemYoung)
	if after.Statistics[0].TotalCount != 3 {
		t.Errorf("TotalCount after second batch = %d, want 3", after.Statistics[0].TotalCount)
	}

	before[0].Statistics[0].TotalCount = 99
	again, _ := ds.Split(0)
	if again.Statistics[0].TotalCount == 99 {
		t.Error("Splits() returned shared state")
	}
}

func TestAddRespondents_EmptyBatch(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	result := addRespondents(t, ds, []models.RawRespondent{{ID: "x"}})
	if result.Deltas == nil || len(result.Deltas) != 0 {
		t.Errorf("Deltas = %v, want empty non-nil slice", result.Deltas)
	}
	if result.InvalidCount != 1 {
		t.Errorf("InvalidCount = %d, want 1", result.InvalidCount)
	}
}

func TestAddRespondents_CanceledContext(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ds.AddRespondents(ctx, testinfra.PartyAgeRespondents()); !errors.Is(err, context.Canceled) {
		t.Errorf("AddRespondents() error = %v, want context.Canceled", err)
	}
	if ds.Respondents() != 0 {
		t.Error("a canceled batch should not be applied")
	}
}

func TestLoad_ReplacesStatistics(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	addRespondents(t, ds, testinfra.PartyAgeRespondents())

	batch, err := ds.Load(context.Background(), testinfra.PartyAgeRespondents()[:2])
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if batch.ValidCount != 2 || ds.Respondents() != 2 {
		t.Errorf("ValidCount = %d, Respondents() = %d, want 2 and 2", batch.ValidCount, ds.Respondents())
	}
	all, _ := ds.Split(testinfra.SplitAllAll)
	if all.Statistics[0].TotalCount != 2 {
		t.Errorf("All × All TotalCount = %d, want 2", all.Statistics[0].TotalCount)
	}
}

func TestLookups(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)

	tests := []struct {
		name    string
		call    func() error
		wantErr error
		wantMsg string
	}{
		{
			name:    "split out of range",
			call:    func() error { _, err := ds.Split(9); return err },
			wantErr: ErrSplitNotFound,
			wantMsg: `index 9 in dataset "party-age"`,
		},
		{
			name:    "negative split",
			call:    func() error { _, err := ds.Split(-1); return err },
			wantErr: ErrSplitNotFound,
			wantMsg: "index -1",
		},
		{
			name:    "unknown question",
			call:    func() error { _, err := ds.ResponseQuestion("nope::x"); return err },
			wantErr: ErrQuestionNotFound,
			wantMsg: `"nope::x" in dataset "party-age"`,
		},
		{
			name: "unknown view",
			call: func() error {
				_, err := ds.SegmentGroup(0, approvalKey, models.View("compact"), groupBounds)
				return err
			},
			wantErr: ErrViewNotFound,
			wantMsg: `"compact"`,
		},
		{
			name: "pack unknown split",
			call: func() error {
				_, _, err := ds.PackPoints(42, approvalKey, groupBounds)
				return err
			},
			wantErr: ErrSplitNotFound,
			wantMsg: "index 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.call()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}

	q, err := ds.ResponseQuestion(approvalKey)
	if err != nil || q.Question != testinfra.ApprovalQuestion {
		t.Errorf("ResponseQuestion() = %v, %v", q.Question, err)
	}
}

func TestSegmentGroup(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	display, err := ds.SegmentGroup(testinfra.SplitDemYoung, approvalKey, models.ViewCollapsed, groupBounds)
	if err != nil {
		t.Fatalf("SegmentGroup() error = %v", err)
	}
	if display.Populated || display.Segments != nil {
		t.Errorf("unmeasured split should be unpopulated, got %+v", display)
	}

	addRespondents(t, ds, testinfra.PartyAgeRespondents())
	display, err = ds.SegmentGroup(testinfra.SplitDemYoung, approvalKey, models.ViewCollapsed, groupBounds)
	if err != nil {
		t.Fatalf("SegmentGroup() error = %v", err)
	}
	if !display.Populated || len(display.Segments) != 2 {
		t.Fatalf("display = %+v, want 2 populated segments", display)
	}
	// Collapsed [1, 0]: available = 200 - 2·10 - 2 = 178, all of it to "Approve".
	if seg := display.Segments[0]; math.Abs(seg.Width-188) > 1e-9 || seg.Label != "Approve" {
		t.Errorf("segment 0 = %+v, want width 188 labelled Approve", seg)
	}
	if seg := display.Segments[1]; math.Abs(seg.X-190) > 1e-9 || seg.Width != 10 {
		t.Errorf("segment 1 = %+v, want x 190 width 10", seg)
	}
}

func TestPackPoints_ActualMode(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	addRespondents(t, ds, testinfra.PartyAgeRespondents())

	basis, diffs, err := ds.PackPoints(testinfra.SplitDemYoung, approvalKey, groupBounds)
	if err != nil {
		t.Fatalf("PackPoints() error = %v", err)
	}
	if len(basis.Segments) != 4 || len(diffs) != 4 {
		t.Fatalf("got %d segments and %d diffs, want 4 and 4", len(basis.Segments), len(diffs))
	}
	if got := diffs[0].CurrentIDs; !slices.Equal(got, []string{"0:0:0"}) {
		t.Errorf("Dem × young strongly approve ids = %v", got)
	}
	if got := diffs[1].CurrentIDs; !slices.Equal(got, []string{"0:1:0"}) {
		t.Errorf("Dem × young somewhat approve ids = %v", got)
	}

	all, diffs, err := ds.PackPoints(testinfra.SplitAllAll, approvalKey, groupBounds)
	if err != nil {
		t.Fatalf("PackPoints(All × All) error = %v", err)
	}
	if got := diffs[2].CurrentIDs; !slices.Equal(got, []string{"1:2:0", "3:2:0"}) {
		t.Errorf("All × All somewhat disapprove ids = %v, want the basis union", got)
	}
	if got := diffs[3].CurrentIDs; !slices.Equal(got, []string{"4:3:0"}) {
		t.Errorf("All × All strongly disapprove ids = %v", got)
	}
	for _, seg := range all.Segments {
		for _, pos := range seg.Positions {
			if !seg.Bounds.ContainsStrict(pos.X, pos.Y) {
				t.Errorf("point %s outside its segment", pos.Key())
			}
		}
	}

	// A new Democrat aged 18-34 who strongly approves joins split 0 as 0:0:1.
	addRespondents(t, ds, []models.RawRespondent{testinfra.Respondent("r6", 1, 1, 1, 1)})
	again, diffs, err := ds.PackPoints(testinfra.SplitAllAll, approvalKey, groupBounds)
	if err != nil {
		t.Fatalf("PackPoints(second) error = %v", err)
	}
	if !slices.Equal(diffs[0].AddedIDs, []string{"0:0:1"}) || len(diffs[0].RemovedIDs) != 0 {
		t.Errorf("group 0 diff = %+v, want one added point", diffs[0])
	}
	for g := 1; g < 4; g++ {
		if diffs[g].Changed() {
			t.Errorf("group %d changed unexpectedly: %+v", g, diffs[g])
		}
	}
	// Strongly approve widens from 1.5/6.5 to 2.5/7.5 of the available width,
	// well past the 10% threshold.
	if !diffs[0].Repacked {
		t.Error("group 0 width grew by more than 10% and should repack")
	}

	stored, ok := ds.Points(testinfra.SplitAllAll, approvalKey)
	if !ok || !slices.Equal(stored.Segments[0].Keys(), again.Segments[0].Keys()) {
		t.Error("Points() should return the last packed state")
	}
}

func TestPackPoints_SyntheticMode(t *testing.T) {
	t.Parallel()

	mode, err := sampling.Synthetic(10)
	if err != nil {
		t.Fatalf("Synthetic() error = %v", err)
	}
	ds := newTestDataset(t, WithSampling(mode))
	addRespondents(t, ds, testinfra.PartyAgeRespondents())

	_, diffs, err := ds.PackPoints(testinfra.SplitDemYoung, approvalKey, groupBounds)
	if err != nil {
		t.Fatalf("PackPoints() error = %v", err)
	}
	// Proportions [0.652, 0.348, 0, 0] over 10 units → [7, 3, 0, 0].
	wantCounts := []int{7, 3, 0, 0}
	for g, want := range wantCounts {
		if len(diffs[g].CurrentIDs) != want {
			t.Errorf("group %d has %d points, want %d", g, len(diffs[g].CurrentIDs), want)
		}
	}

	_, diffs, err = ds.PackPoints(testinfra.SplitAllAll, approvalKey, groupBounds)
	if err != nil {
		t.Fatalf("PackPoints(All × All) error = %v", err)
	}
	total := 0
	for _, d := range diffs {
		total += len(d.CurrentIDs)
		for _, id := range d.CurrentIDs {
			if !strings.HasPrefix(id, "8:") {
				t.Errorf("synthetic aggregated point %s should belong to split 8", id)
			}
		}
	}
	if total != 10 {
		t.Errorf("All × All has %d synthetic points, want 10", total)
	}
}

func TestPackPoints_Unpopulated(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(t)
	packed, diffs, err := ds.PackPoints(testinfra.SplitRepOld, approvalKey, groupBounds)
	if err != nil {
		t.Fatalf("PackPoints() error = %v", err)
	}
	if len(packed.Segments) != 0 || len(diffs) != 0 {
		t.Errorf("unpopulated split packed %d segments and %d diffs", len(packed.Segments), len(diffs))
	}
}
