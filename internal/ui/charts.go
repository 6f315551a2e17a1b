package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/volley-stats/internal/stats"
)

// span is a horizontal extent as a fraction of the bar track.
type span struct {
	Start, Width float64
}

// segmentSpans places segments left to right, each scaled against maxTotal.
// Non-positive counts get a zero-width span so indexes line up with the input.
func segmentSpans(counts []int, maxTotal int) []span {
	out := make([]span, len(counts))
	pos := 0.0
	for i, c := range counts {
		w := stats.Share(c, maxTotal)
		if pos+w > 1 {
			w = 1 - pos
		}
		out[i] = span{Start: pos, Width: w}
		pos += w
	}
	return out
}

// spanLayout positions each object over its span of the container width.
type spanLayout struct {
	spans []span
}

func (l *spanLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for i, o := range objects {
		if i == 0 {
			// track
			o.Move(fyne.NewPos(0, 0))
			o.Resize(size)
			continue
		}
		if i-1 >= len(l.spans) {
			o.Hide()
			continue
		}
		s := l.spans[i-1]
		o.Move(fyne.NewPos(float32(s.Start)*size.Width, 0))
		o.Resize(fyne.NewSize(float32(s.Width)*size.Width, size.Height))
	}
}

func (l *spanLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(160, 18)
}

func newSpanBar(spans []span, colors []color.Color) fyne.CanvasObject {
	track := canvas.NewRectangle(uiTrackColor)
	track.CornerRadius = 3
	objs := []fyne.CanvasObject{track}
	for i := range spans {
		r := canvas.NewRectangle(colors[i])
		objs = append(objs, r)
	}
	return container.New(&spanLayout{spans: spans}, objs...)
}

type chartsTabView struct {
	tabRoot
	metricSelect *widget.Select
	metricID     stats.MetricID
	players      []stats.PlayerSummary
	efficiency   *fyne.Container
	hint         *widget.Label
	breakdowns   *fyne.Container
	empty        fyne.CanvasObject
	body         fyne.CanvasObject
}

func newChartsTabView() *chartsTabView {
	v := &chartsTabView{
		tabRoot:    newTabRoot(),
		metricID:   stats.MetricSpikeEfficiency,
		efficiency: container.NewVBox(),
		hint:       widget.NewLabel(""),
		breakdowns: container.NewGridWithColumns(2),
		empty:      newCenteredEmptyState(lang.X("charts.empty", "Charts appear once player rows are applied.")),
	}

	metrics := stats.Metrics()
	labels := make([]string, 0, len(metrics))
	for _, m := range metrics {
		labels = append(labels, m.Label)
	}
	v.metricSelect = widget.NewSelect(labels, func(label string) {
		for _, m := range metrics {
			if m.Label == label {
				v.metricID = m.ID
			}
		}
		v.renderEfficiency()
	})
	if def, ok := stats.LookupMetric(v.metricID); ok {
		v.metricSelect.Selected = def.Label
	}

	effHeader := container.NewBorder(nil, nil, newSectionTitle(lang.X("charts.efficiency", "Efficiency by player")), v.metricSelect)
	v.body = container.NewVScroll(container.NewPadded(container.NewVBox(
		v.breakdowns,
		newSectionCard(container.NewVBox(effHeader, v.efficiency, newFadedDivider(), newLowSampleLegend(v.hint))),
	)))
	v.root.Objects = []fyne.CanvasObject{v.empty}
	return v
}

func (v *chartsTabView) Update(score, errs []stats.BreakdownEntry, players []stats.PlayerSummary) {
	v.players = players
	if len(players) == 0 {
		v.root.Objects = []fyne.CanvasObject{v.empty}
		v.root.Refresh()
		return
	}
	v.breakdowns.Objects = []fyne.CanvasObject{
		newBreakdownChart(stats.ScoreCategories, score),
		newBreakdownChart(stats.ErrorCategories, errs),
	}
	v.breakdowns.Refresh()
	v.renderEfficiency()
	v.root.Objects = []fyne.CanvasObject{v.body}
	v.root.Refresh()
}

func (v *chartsTabView) renderEfficiency() {
	def, ok := stats.LookupMetric(v.metricID)
	if !ok {
		return
	}
	rows := make([]fyne.CanvasObject, 0, len(v.players)+1)
	help := newSubtleText(def.Help)
	rows = append(rows, help)
	for _, p := range v.players {
		e := def.Value(p)
		name := widget.NewLabel(p.Name)
		value := widget.NewLabel(e.Percent())
		var bar fyne.CanvasObject
		if f, ok := e.Float(); ok {
			accent := color.Color(uiSuccessAccent)
			if def.LowerIsBetter {
				accent = uiDangerAccent
			}
			bar = newSpanBar([]span{{Start: 0, Width: clampUnit(f)}}, []color.Color{accent})
		} else {
			// undefined: leave the track empty
			bar = newSpanBar(nil, nil)
		}
		var right fyne.CanvasObject = fixedWidth(value, 72)
		if isLowSample(e) {
			msg := lang.X("charts.low_sample_detail", "{{.Player}}: {{.Success}} of {{.Attempts}} attempts", map[string]any{
				"Player": p.Name, "Success": e.Success, "Attempts": e.Attempts,
			})
			icon := newSampleHintIcon(func(on bool) {
				if on {
					v.hint.SetText(msg)
				} else {
					v.hint.SetText("")
				}
			})
			right = container.NewHBox(icon, right)
		}
		rows = append(rows, container.NewBorder(nil, nil, fixedWidth(name, 120), right, bar))
	}
	v.efficiency.Objects = rows
	v.efficiency.Refresh()
}

func newBreakdownChart(set stats.CategorySet, entries []stats.BreakdownEntry) fyne.CanvasObject {
	bars, maxTotal := stats.StackedBars(entries)

	legendItems := make([]fyne.CanvasObject, 0, len(set.Categories)*2)
	for _, c := range set.Categories {
		legendItems = append(legendItems, newSwatch(categoryColor(c.ID)), newSubtleText(c.Label))
	}

	rows := []fyne.CanvasObject{newSectionTitle(set.Label), container.NewHBox(legendItems...), newFadedDivider()}
	for _, bar := range bars {
		counts := make([]int, len(bar.Segments))
		colors := make([]color.Color, len(bar.Segments))
		for i, seg := range bar.Segments {
			counts[i] = seg.Count
			colors[i] = categoryColor(seg.Category)
		}
		name := widget.NewLabel(bar.Player)
		total := widget.NewLabel(strconv.Itoa(bar.Total))
		rows = append(rows, container.NewBorder(nil, nil, fixedWidth(name, 120), fixedWidth(total, 48), newSpanBar(segmentSpans(counts, maxTotal), colors)))
	}
	return newSectionCard(container.NewVBox(rows...))
}

func fixedWidth(obj fyne.CanvasObject, w float32) fyne.CanvasObject {
	lock := canvas.NewRectangle(color.Transparent)
	lock.SetMinSize(fyne.NewSize(w, 0))
	return container.NewStack(lock, obj)
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
