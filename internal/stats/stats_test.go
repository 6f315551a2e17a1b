package stats

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

func TestEfficiencyUndefinedWithoutAttempts(t *testing.T) {
	t.Parallel()

	for _, success := range []int{0, 1, 7} {
		e := NewEfficiency(success, 0)
		if e.Defined() {
			t.Fatalf("efficiency(%d, 0) reported defined", success)
		}
		if r, ok := e.Rat(); ok || r != nil {
			t.Fatalf("efficiency(%d, 0).Rat() = %v, %v; want nil, false", success, r, ok)
		}
		if _, ok := e.Float(); ok {
			t.Fatalf("efficiency(%d, 0).Float() ok = true", success)
		}
		if got := e.Percent(); got != "-" {
			t.Fatalf("efficiency(%d, 0).Percent() = %q, want -", success, got)
		}
		b, err := json.Marshal(e)
		if err != nil || string(b) != "null" {
			t.Fatalf("efficiency(%d, 0) json = %s, %v; want null", success, b, err)
		}
	}
}

func TestEfficiencyZeroSuccess(t *testing.T) {
	t.Parallel()

	for _, attempts := range []int{1, 5, 100} {
		e := NewEfficiency(0, attempts)
		r, ok := e.Rat()
		if !ok || r.Sign() != 0 {
			t.Fatalf("efficiency(0, %d) = %v, %v; want 0, true", attempts, r, ok)
		}
		if v, ok := e.Float(); !ok || v != 0 {
			t.Fatalf("efficiency(0, %d).Float() = %v, %v", attempts, v, ok)
		}
	}
}

func TestEfficiencyRatio(t *testing.T) {
	t.Parallel()

	e := NewEfficiency(3, 8)
	r, ok := e.Rat()
	if !ok || r.Cmp(big.NewRat(3, 8)) != 0 {
		t.Fatalf("rat = %v, %v; want 3/8", r, ok)
	}
	if got := e.Percent(); got != "37.5%" {
		t.Fatalf("percent = %q, want 37.5%%", got)
	}
}

func TestScoreBreakdownPlayerThenCategoryOrder(t *testing.T) {
	t.Parallel()

	records := []match.StatRecord{
		{Name: "A", ServeSuccess: 3, SpikeSuccess: 2, BlockSuccess: 1},
		{Name: "B", ServeSuccess: 5, SpikeSuccess: 0, BlockSuccess: 1},
	}
	got := ScoreBreakdown(records)
	want := []BreakdownEntry{
		{Player: "A", Category: CategoryServeSuccess, Count: 3},
		{Player: "A", Category: CategorySpikeSuccess, Count: 2},
		{Player: "A", Category: CategoryBlockSuccess, Count: 1},
		{Player: "B", Category: CategoryServeSuccess, Count: 5},
		{Player: "B", Category: CategorySpikeSuccess, Count: 0},
		{Player: "B", Category: CategoryBlockSuccess, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Player != want[i].Player || got[i].Category != want[i].Category || got[i].Count != want[i].Count {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestErrorBreakdownUsesErrorCategories(t *testing.T) {
	t.Parallel()

	got := ErrorBreakdown([]match.StatRecord{{Name: "A", ServeMiss: 2, SpikeMiss: 4, ReceiveMiss: 1}})
	counts := map[CategoryID]int{}
	for _, e := range got {
		counts[e.Category] = e.Count
	}
	if counts[CategoryServeMiss] != 2 || counts[CategorySpikeMiss] != 4 || counts[CategoryReceiveMiss] != 1 {
		t.Fatalf("error breakdown = %+v", got)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestBreakdownEmpty(t *testing.T) {
	t.Parallel()

	if got := ScoreBreakdown(nil); len(got) != 0 {
		t.Fatalf("breakdown of nil = %+v, want empty", got)
	}
}

func TestGroupByPlayerMergesDuplicateNames(t *testing.T) {
	t.Parallel()

	entries := ScoreBreakdown([]match.StatRecord{{Name: "A"}, {Name: "B"}, {Name: "A"}})
	players, byPlayer := GroupByPlayer(entries)
	if len(players) != 2 || players[0] != "A" || players[1] != "B" {
		t.Fatalf("players = %v, want [A B]", players)
	}
	if len(byPlayer["A"]) != 6 {
		t.Fatalf("entries for A = %d, want 6", len(byPlayer["A"]))
	}
}

func TestSummarizeRecord(t *testing.T) {
	t.Parallel()

	s := SummarizeRecord(match.StatRecord{
		Name: "A", ServeAttempts: 10, ServeSuccess: 2, ServeEffective: 3, ServeMiss: 1,
		ReceiveA: 4, ReceiveB: 2, ReceiveC: 1, ReceiveMiss: 1,
		SpikeBlocked: 0, BlockSuccess: 2,
	})
	if got := s.ServeEffectRate.Percent(); got != "50.0%" {
		t.Fatalf("serve effect rate = %s, want 50.0%%", got)
	}
	if got := s.ReceiveQuality.Percent(); got != "75.0%" {
		t.Fatalf("receive quality = %s, want 75.0%%", got)
	}
	if s.SpikeEfficiency.Defined() {
		t.Fatal("spike efficiency should be undefined without attempts")
	}
	if s.Points != 4 || s.Errors != 2 {
		t.Fatalf("points/errors = %d/%d, want 4/2", s.Points, s.Errors)
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	total := Totals([]match.StatRecord{
		{Name: "A", ServeAttempts: 3, BlockSuccess: 1},
		{Name: "B", ServeAttempts: 4, SpikeMiss: 2},
	})
	if total.Name != TotalsName || total.ServeAttempts != 7 || total.BlockSuccess != 1 || total.SpikeMiss != 2 {
		t.Fatalf("totals = %+v", total)
	}
}

func TestMetricRegistryExtractors(t *testing.T) {
	t.Parallel()

	s := SummarizeRecord(match.StatRecord{SpikeAttempts: 4, SpikeSuccess: 1, SpikeBlocked: 2})
	d, ok := LookupMetric(MetricSpikeBlocked)
	if !ok {
		t.Fatal("spike blocked metric not registered")
	}
	if got := d.Value(s).Percent(); got != "50.0%" {
		t.Fatalf("spike blocked = %s, want 50.0%%", got)
	}
	for _, m := range Metrics() {
		if m.Label == "" || m.value == nil {
			t.Fatalf("metric %s is incomplete", m.ID)
		}
	}
}

func TestStackedBarsMergesDuplicateNames(t *testing.T) {
	t.Parallel()

	records := []match.StatRecord{
		{Name: "田中", ServeSuccess: 1, SpikeSuccess: 2},
		{Name: "佐藤", BlockSuccess: 4},
		{Name: "田中", SpikeSuccess: 3},
	}
	bars, maxTotal := StackedBars(ScoreBreakdown(records))
	if len(bars) != 2 {
		t.Fatalf("bars = %d, want 2", len(bars))
	}
	if bars[0].Player != "田中" || bars[0].Total != 6 || len(bars[0].Segments) != 3 {
		t.Fatalf("first bar = %+v", bars[0])
	}
	if bars[0].Segments[1].Category != CategorySpikeSuccess || bars[0].Segments[1].Count != 5 {
		t.Fatalf("spike segment = %+v, want 5", bars[0].Segments[1])
	}
	if maxTotal != 6 {
		t.Fatalf("maxTotal = %d, want 6", maxTotal)
	}
}

func TestShareBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		part, whole int
		want        float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		if got := Share(tt.part, tt.whole); got != tt.want {
			t.Fatalf("Share(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}
