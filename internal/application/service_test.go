package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/persistence"
)

func raw(name string, counters map[match.CounterID]string) match.RawStat {
	return match.RawStat{Name: name, Counters: counters}
}

func sampleInfo() match.MatchInfo {
	return match.MatchInfo{
		Date:       match.NewDate(2024, time.May, 1),
		Location:   "東体育館",
		Opponent:   "A高校",
		FinalScore: "2-1",
	}
}

func TestSubmitRowsReplacesRecordsAndDropsUnnamed(t *testing.T) {
	t.Parallel()

	svc := NewService(persistence.NewMemoryStore())
	n, err := svc.SubmitRows([]match.RawStat{
		raw("田中", map[match.CounterID]string{match.CounterServeAttempts: "10"}),
		raw("  ", map[match.CounterID]string{match.CounterServeAttempts: "4"}),
		raw("佐藤", nil),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if n != 2 {
		t.Fatalf("kept = %d, want 2", n)
	}

	if _, err := svc.SubmitRows([]match.RawStat{raw("鈴木", nil)}); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	snap := svc.Current()
	if len(snap.Record.Records) != 1 || snap.Record.Records[0].Name != "鈴木" {
		t.Fatalf("records = %+v, want only 鈴木", snap.Record.Records)
	}
	if snap.Phase != PhaseDraft {
		t.Fatalf("phase = %v, want draft", snap.Phase)
	}
}

func TestSubmitRowsInvalidLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	svc := NewService(persistence.NewMemoryStore())
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", map[match.CounterID]string{match.CounterSpikeSuccess: "3"})}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := svc.Current()

	_, err := svc.SubmitRows([]match.RawStat{
		raw("佐藤", map[match.CounterID]string{match.CounterSpikeSuccess: "2"}),
		raw("鈴木", map[match.CounterID]string{match.CounterSpikeMiss: "abc"}),
	})
	var verr *match.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *match.ValidationError", err)
	}
	if verr.Player != "鈴木" || verr.Field != match.CounterSpikeMiss {
		t.Fatalf("validation error = %+v", verr)
	}
	if !svc.Current().Record.Equal(before.Record) {
		t.Fatalf("record changed after invalid submit")
	}
}

func TestSaveAndLoadLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := persistence.NewFileStore(filepath.Join(t.TempDir(), "match_data"))
	svc := NewService(store)
	svc.SetInfo(sampleInfo())
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", map[match.CounterID]string{match.CounterBlockSuccess: "2"})}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	key, err := svc.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if key != "20240501_東体育館_A高校" {
		t.Fatalf("key = %q", key)
	}
	if snap := svc.Current(); snap.Phase != PhaseSaved || snap.Key != key {
		t.Fatalf("after save phase = %v key = %q", snap.Phase, snap.Key)
	}

	svc.SetInfo(sampleInfo())
	if svc.Current().Phase != PhaseSaved {
		t.Fatalf("unchanged info should keep saved phase")
	}
	info := sampleInfo()
	info.FinalScore = "2-0"
	svc.SetInfo(info)
	if snap := svc.Current(); snap.Phase != PhaseDraft || snap.Key != "" {
		t.Fatalf("after edit phase = %v key = %q", snap.Phase, snap.Key)
	}

	svc.NewDraft()
	if err := svc.Load(ctx, key); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := svc.Current()
	if snap.Phase != PhaseLoaded || snap.Key != key {
		t.Fatalf("after load phase = %v key = %q", snap.Phase, snap.Key)
	}
	if snap.Record.Info != sampleInfo() || len(snap.Record.Records) != 1 || snap.Record.Records[0].BlockSuccess != 2 {
		t.Fatalf("loaded record = %+v", snap.Record)
	}
}

func TestLoadMissingKeepsCurrentRecord(t *testing.T) {
	t.Parallel()

	svc := NewService(persistence.NewMemoryStore())
	svc.SetInfo(sampleInfo())
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", nil)}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := svc.Current()

	err := svc.Load(context.Background(), "nonexistent")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	after := svc.Current()
	if !after.Record.Equal(before.Record) || after.Phase != before.Phase {
		t.Fatalf("state changed after failed load: %+v", after)
	}
}

func TestLoadCorruptKeepsCurrentRecord(t *testing.T) {
	t.Parallel()

	store := persistence.NewMemoryStore()
	store.Put("broken", []byte("{"))
	svc := NewService(store)
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", nil)}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Load(context.Background(), "broken"); !errors.Is(err, persistence.ErrCorruptData) {
		t.Fatalf("err = %v, want ErrCorruptData", err)
	}
	if got := svc.Current().Record.Records; len(got) != 1 || got[0].Name != "田中" {
		t.Fatalf("records = %+v", got)
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	svc := NewService(persistence.NewFileStore(filepath.Join(blocker, "match_data")))
	svc.SetInfo(sampleInfo())

	_, err := svc.Save(context.Background())
	var ioErr *persistence.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *persistence.IOError", err)
	}
	if svc.Current().Phase != PhaseDraft {
		t.Fatalf("phase = %v, want draft", svc.Current().Phase)
	}
}

// gatedStore blocks Save until release is closed.
type gatedStore struct {
	*persistence.MemoryStore
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: persistence.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *gatedStore) Save(ctx context.Context, rec match.MatchRecord) (match.Key, error) {
	close(g.entered)
	<-g.release
	return g.MemoryStore.Save(ctx, rec)
}

func TestSaveDoesNotBlockReaders(t *testing.T) {
	t.Parallel()

	store := newGatedStore()
	svc := NewService(store)
	svc.SetInfo(sampleInfo())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Save(context.Background())
		done <- err
	}()
	<-store.entered

	read := make(chan Snapshot, 1)
	go func() { read <- svc.Current() }()
	select {
	case snap := <-read:
		if snap.Phase != PhaseDraft {
			t.Fatalf("phase during save = %v, want draft", snap.Phase)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Current blocked while the store was writing")
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := svc.Current(); got.Phase != PhaseSaved || got.Key != match.KeyOf(sampleInfo()) {
		t.Fatalf("after save = %v %q", got.Phase, got.Key)
	}
}

func TestEditDuringSaveStaysDraft(t *testing.T) {
	t.Parallel()

	store := newGatedStore()
	svc := NewService(store)
	svc.SetInfo(sampleInfo())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Save(context.Background())
		done <- err
	}()
	<-store.entered
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", nil)}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("save: %v", err)
	}

	got := svc.Current()
	if got.Phase != PhaseDraft || got.Key != "" {
		t.Fatalf("after save = %v %q, want draft with no key", got.Phase, got.Key)
	}
	stored, err := store.Load(context.Background(), match.KeyOf(sampleInfo()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored.Records) != 0 {
		t.Fatalf("stored records = %+v, want the pre-edit snapshot", stored.Records)
	}
}

func TestLoadUsesKeyDerivedFromMetadata(t *testing.T) {
	t.Parallel()

	store := persistence.NewMemoryStore()
	store.Put("old-name", []byte(`{"version":1,"matchInfo":{"date":"2024-05-01","location":"東体育館","opponent":"A高校","score":"2-1"},"statRecords":[]}`))
	svc := NewService(store)

	if err := svc.Load(context.Background(), "old-name"); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := svc.Current()
	want := match.KeyOf(sampleInfo())
	if got.Key != want {
		t.Fatalf("key = %q, want %q", got.Key, want)
	}
	if got.Phase != PhaseLoaded {
		t.Fatalf("phase = %v, want loaded", got.Phase)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	t.Parallel()

	svc := NewService(persistence.NewMemoryStore())
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", nil)}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := svc.Current()
	snap.Record.Records[0].Name = "changed"
	if got := svc.Current().Record.Records[0].Name; got != "田中" {
		t.Fatalf("name = %q, want 田中", got)
	}
}

func TestScoreBreakdownScenario(t *testing.T) {
	t.Parallel()

	svc := NewService(persistence.NewMemoryStore())
	if _, err := svc.SubmitRows([]match.RawStat{
		raw("A", map[match.CounterID]string{match.CounterServeSuccess: "2", match.CounterSpikeSuccess: "3", match.CounterBlockSuccess: "1"}),
		raw("B", map[match.CounterID]string{match.CounterSpikeSuccess: "5"}),
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got := svc.ScoreBreakdown()
	want := []int{2, 3, 1, 0, 5, 0}
	if len(got) != len(want) {
		t.Fatalf("entries = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Count != want[i] {
			t.Fatalf("entry %d = %+v, want count %d", i, e, want[i])
		}
	}

	players, team := svc.Summaries()
	if len(players) != 2 || team.Points != 11 {
		t.Fatalf("summaries = %+v team = %+v", players, team)
	}
	if len(svc.ErrorBreakdown()) != 6 {
		t.Fatalf("error breakdown entries = %d, want 6", len(svc.ErrorBreakdown()))
	}
}

func TestListStoredNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := persistence.NewMemoryStore()
	for _, info := range []match.MatchInfo{
		{Date: match.NewDate(2024, time.April, 10), Location: "東", Opponent: "B"},
		{Location: "西", Opponent: "C"},
		{Date: match.NewDate(2024, time.June, 1), Location: "東", Opponent: "A"},
	} {
		if _, err := store.Save(ctx, match.MatchRecord{Info: info}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	keys, err := NewService(store).ListStored(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []match.Key{"20240601_東_A", "20240410_東_B", "未設定_西_C"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestImportExcelAppends(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	rows := [][]any{
		{"名前", "スパイク打数", "スパイク決定数"},
		{"山田", 9, 4},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	svc := NewService(persistence.NewMemoryStore())
	if _, err := svc.SubmitRows([]match.RawStat{raw("田中", nil)}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	n, err := svc.ImportExcel(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported = %d, want 1", n)
	}
	recs := svc.Current().Record.Records
	if len(recs) != 2 || recs[1].Name != "山田" || recs[1].SpikeSuccess != 4 {
		t.Fatalf("records = %+v", recs)
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	svc := NewService(persistence.NewMemoryStore())
	svc.SetInfo(sampleInfo())
	path := filepath.Join(t.TempDir(), "report.html")
	if err := svc.WriteReport(context.Background(), path); err != nil {
		t.Fatalf("write report: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "東体育館") {
		t.Fatalf("report missing location")
	}
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	for p, want := range map[Phase]string{PhaseDraft: "draft", PhaseSaved: "saved", PhaseLoaded: "loaded", Phase(9): "unknown"} {
		if got := p.String(); got != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
