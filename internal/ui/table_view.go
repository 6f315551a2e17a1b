package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"

	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/stats"
)

// recordTableCells renders the raw counters with a header row and a team totals row.
func recordTableCells(records []match.StatRecord, totals match.StatRecord) [][]string {
	header := make([]string, 0, len(match.Counters)+1)
	header = append(header, match.NameLabel)
	for _, c := range match.Counters {
		header = append(header, c.Label)
	}
	cells := [][]string{header}
	row := func(r match.StatRecord) []string {
		out := make([]string, 0, len(header))
		out = append(out, r.Name)
		for _, c := range match.Counters {
			out = append(out, strconv.Itoa(r.Counter(c.ID)))
		}
		return out
	}
	for _, r := range records {
		cells = append(cells, row(r))
	}
	return append(cells, row(totals))
}

// summaryTableCells renders each metric per player; undefined rates show as "-".
func summaryTableCells(metrics []stats.MetricDefinition, players []stats.PlayerSummary, team stats.PlayerSummary, pointsLabel, errorsLabel string) [][]string {
	header := make([]string, 0, len(metrics)+3)
	header = append(header, match.NameLabel)
	for _, m := range metrics {
		header = append(header, m.Label)
	}
	header = append(header, pointsLabel, errorsLabel)
	cells := [][]string{header}
	row := func(s stats.PlayerSummary) []string {
		out := make([]string, 0, len(header))
		out = append(out, s.Name)
		for _, m := range metrics {
			out = append(out, m.Value(s).Percent())
		}
		return append(out, strconv.Itoa(s.Points), strconv.Itoa(s.Errors))
	}
	for _, s := range players {
		cells = append(cells, row(s))
	}
	return append(cells, row(team))
}

type tableTabView struct {
	tabRoot
	records *cellGrid
	summary *cellGrid
	empty   fyne.CanvasObject
	body    fyne.CanvasObject
}

func newTableTabView() *tableTabView {
	v := &tableTabView{
		tabRoot: newTabRoot(),
		records: newCellGrid(true),
		summary: newCellGrid(true),
		empty:   newCenteredEmptyState(lang.X("table.empty", "No player data yet. Enter rows on the Entry tab.")),
	}
	split := container.NewVSplit(
		newSectionCard(container.NewBorder(newSectionTitle(lang.X("table.records", "Records")), nil, nil, nil, v.records.table)),
		newSectionCard(container.NewBorder(newSectionTitle(lang.X("table.summary", "Rates")), nil, nil, nil, v.summary.table)),
	)
	split.Offset = 0.55
	v.body = container.NewPadded(split)
	v.root.Objects = []fyne.CanvasObject{v.empty}
	return v
}

func (v *tableTabView) Update(rec match.MatchRecord, players []stats.PlayerSummary, team stats.PlayerSummary) {
	if len(rec.Records) == 0 {
		v.root.Objects = []fyne.CanvasObject{v.empty}
		v.root.Refresh()
		return
	}
	v.records.SetCells(recordTableCells(rec.Records, stats.Totals(rec.Records)))
	v.summary.SetCells(summaryTableCells(stats.Metrics(), players, team,
		lang.X("table.points", "Points"), lang.X("table.errors", "Errors")))
	v.root.Objects = []fyne.CanvasObject{v.body}
	v.root.Refresh()
}
