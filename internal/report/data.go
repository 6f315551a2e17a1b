// Package report renders a match as a standalone HTML page.
package report

import (
	"time"

	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/stats"
)

// PageData is everything the report page shows.
type PageData struct {
	Title       string
	Info        match.MatchInfo
	Key         match.Key
	Records     []match.StatRecord
	Totals      match.StatRecord
	Summaries   []stats.PlayerSummary
	TeamSummary stats.PlayerSummary
	Metrics     []stats.MetricDefinition
	Charts      []ChartData
	GeneratedAt time.Time
}

// ChartData is one stacked breakdown chart.
type ChartData struct {
	ID       string
	Title    string
	Bars     []stats.StackedBar
	MaxTotal int
	Legend   []stats.Category
}

// jsonPayload is embedded in the page for downstream tooling.
type jsonPayload struct {
	Key            match.Key              `json:"key"`
	MatchInfo      match.MatchInfo        `json:"matchInfo"`
	StatRecords    []match.StatRecord     `json:"statRecords"`
	Summaries      []stats.PlayerSummary  `json:"summaries"`
	ScoreBreakdown []stats.BreakdownEntry `json:"scoreBreakdown"`
	ErrorBreakdown []stats.BreakdownEntry `json:"errorBreakdown"`
}

// NewPageData derives every table and chart from rec.
func NewPageData(rec match.MatchRecord, now time.Time) PageData {
	records := rec.Records
	if records == nil {
		records = []match.StatRecord{}
	}
	totals := stats.Totals(records)
	data := PageData{
		Title:       title(rec.Info),
		Info:        rec.Info,
		Key:         rec.Key(),
		Records:     records,
		Totals:      totals,
		Summaries:   stats.Summarize(records),
		TeamSummary: stats.SummarizeRecord(totals),
		Metrics:     stats.Metrics(),
		GeneratedAt: now,
	}
	for _, set := range []stats.CategorySet{stats.ScoreCategories, stats.ErrorCategories} {
		bars, maxTotal := stats.StackedBars(stats.Breakdown(records, set))
		data.Charts = append(data.Charts, ChartData{
			ID:       set.ID,
			Title:    set.Label,
			Bars:     bars,
			MaxTotal: maxTotal,
			Legend:   set.Categories,
		})
	}
	return data
}

func (d PageData) payload() jsonPayload {
	return jsonPayload{
		Key:            d.Key,
		MatchInfo:      d.Info,
		StatRecords:    d.Records,
		Summaries:      d.Summaries,
		ScoreBreakdown: stats.ScoreBreakdown(d.Records),
		ErrorBreakdown: stats.ErrorBreakdown(d.Records),
	}
}

func title(info match.MatchInfo) string {
	t := "試合レポート"
	if info.Opponent != "" {
		t += " vs " + info.Opponent
	}
	if !info.Date.IsZero() {
		t += " (" + info.Date.String() + ")"
	}
	return t
}
