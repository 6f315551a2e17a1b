package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

func sampleMatch() match.MatchRecord {
	return match.MatchRecord{
		Info: match.MatchInfo{
			Date:       match.NewDate(2024, time.May, 1),
			Location:   "東体育館",
			Opponent:   "A高校<script>",
			FinalScore: "2-1",
		},
		Records: []match.StatRecord{
			{Name: "A", ServeAttempts: 4, ServeSuccess: 2, SpikeSuccess: 3, BlockSuccess: 1, ServeMiss: 1},
			{Name: "B", SpikeSuccess: 5, SpikeMiss: 2},
		},
	}
}

func renderDoc(t *testing.T, rec match.MatchRecord) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(context.Background(), &buf, rec); err != nil {
		t.Fatalf("write report: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}
	return doc
}

func TestReportRecordsTable(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, sampleMatch())
	rows := doc.Find("table#records tbody tr")
	if rows.Length() != 3 {
		t.Fatalf("record rows = %d, want 3", rows.Length())
	}
	if got := rows.First().Find("td").First().Text(); got != "A" {
		t.Fatalf("first player = %q, want A", got)
	}
	headers := doc.Find("table#records thead th")
	if headers.Length() != len(match.Counters)+1 {
		t.Fatalf("headers = %d, want %d", headers.Length(), len(match.Counters)+1)
	}
	totals := doc.Find("table#records tr.totals td")
	if got := totals.First().Text(); got != "チーム合計" {
		t.Fatalf("totals label = %q", got)
	}
	// spike success is counter 9, after the name column.
	if got := totals.Eq(10).Text(); got != "8" {
		t.Fatalf("team spike success = %q, want 8", got)
	}
}

func TestReportEscapesText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(context.Background(), &buf, sampleMatch()); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if strings.Contains(buf.String(), "A高校<script>") {
		t.Fatalf("opponent rendered unescaped")
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if got := doc.Find("title").Text(); !strings.Contains(got, "A高校<script>") {
		t.Fatalf("title = %q", got)
	}
}

func TestReportScoreChart(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, sampleMatch())
	chart := doc.Find("#chart-score")
	if chart.Length() != 1 {
		t.Fatalf("score chart missing")
	}
	if got := chart.Find("h2").Text(); got != "選手別得点構成" {
		t.Fatalf("chart title = %q", got)
	}
	barA := chart.Find(`.bar-row[data-player="A"]`)
	if v, _ := barA.Attr("data-total"); v != "6" {
		t.Fatalf("A total = %q, want 6", v)
	}
	segs := barA.Find(".segment")
	if segs.Length() != 3 {
		t.Fatalf("A segments = %d, want 3", segs.Length())
	}
	barB := chart.Find(`.bar-row[data-player="B"]`)
	if barB.Find(".segment").Length() != 1 {
		t.Fatalf("B zero-count segments should be omitted")
	}
	if style, _ := barA.Find(`.segment[data-category="spike_success"]`).Attr("style"); !strings.Contains(style, "width:50.00%") {
		t.Fatalf("A spike segment style = %q, want width 50%%", style)
	}
}

func TestReportSummaryUndefinedRates(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, sampleMatch())
	rowB := doc.Find("table#summary tbody tr").Eq(1)
	if got := rowB.Find("td").Eq(1).Text(); got != "-" {
		t.Fatalf("B serve efficiency = %q, want -", got)
	}
	if !rowB.Find("td").Eq(1).HasClass("undefined") {
		t.Fatalf("undefined rate not marked")
	}
	rowA := doc.Find("table#summary tbody tr").First()
	if got := rowA.Find("td").Eq(1).Text(); got != "50.0%" {
		t.Fatalf("A serve efficiency = %q, want 50.0%%", got)
	}
}

func TestReportEmbeddedData(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, sampleMatch())
	raw := doc.Find("script#match-data").Text()
	var payload struct {
		Key            string `json:"key"`
		ScoreBreakdown []struct {
			Player string `json:"player"`
			Count  int    `json:"count"`
		} `json:"scoreBreakdown"`
		Summaries []struct {
			ServeEfficiency *float64 `json:"serveEfficiency"`
		} `json:"summaries"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode embedded data: %v\n%s", err, raw)
	}
	if payload.Key != "20240501_東体育館_A高校<script>" {
		t.Fatalf("key = %q", payload.Key)
	}
	if len(payload.ScoreBreakdown) != 6 {
		t.Fatalf("score entries = %d, want 6", len(payload.ScoreBreakdown))
	}
	if payload.Summaries[1].ServeEfficiency != nil {
		t.Fatalf("undefined efficiency encoded as %v, want null", *payload.Summaries[1].ServeEfficiency)
	}
}

func TestReportEmptyMatch(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, match.MatchRecord{})
	if doc.Find("table#records tbody tr").Length() != 1 {
		t.Fatalf("empty match should render only the totals row")
	}
	if doc.Find("#chart-score p.empty").Length() != 1 {
		t.Fatalf("empty chart placeholder missing")
	}
	if got := doc.Find("#match-info dd").First().Text(); got != "未設定" {
		t.Fatalf("date = %q, want 未設定", got)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteFile(context.Background(), path, sampleMatch()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("<!DOCTYPE html>")) {
		t.Fatalf("report does not start with doctype")
	}
}

func TestReportStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := Write(ctx, &buf, sampleMatch())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes after cancel", buf.Len())
	}
}

func TestRecordRowClasses(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, sampleMatch())
	if n := doc.Find("table#records tbody tr.totals").Length(); n != 1 {
		t.Fatalf("totals rows = %d, want 1", n)
	}
	if n := doc.Find("table#summary tbody tr.totals").Length(); n != 1 {
		t.Fatalf("summary totals rows = %d, want 1", n)
	}
}
