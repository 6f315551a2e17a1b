package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/volley-stats/internal/application"
	"github.com/AkatukiSora/volley-stats/internal/match"
)

// reportFileName suggests an export name for the active record.
func reportFileName(key match.Key) string {
	if key == "" {
		return "report.html"
	}
	return string(key) + ".html"
}

// filterKeys keeps keys containing query, case-insensitively. An empty query keeps all.
func filterKeys(keys []match.Key, query string) []match.Key {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return keys
	}
	out := make([]match.Key, 0, len(keys))
	for _, k := range keys {
		if strings.Contains(strings.ToLower(string(k)), query) {
			out = append(out, k)
		}
	}
	return out
}

type matchesTabView struct {
	tabRoot
	app      *App
	all      []match.Key
	visible  []match.Key
	selected int

	search     *widget.Entry
	list       *widget.List
	loadBtn    *widget.Button
	current    *widget.Label
	currentKey match.Key
}

func newMatchesTabView(a *App) *matchesTabView {
	v := &matchesTabView{tabRoot: newTabRoot(), app: a, selected: -1}

	v.search = widget.NewEntry()
	v.search.SetPlaceHolder(lang.X("matches.search", "Filter by date, venue or opponent"))
	v.search.OnChanged = func(string) { v.applyFilter() }

	v.list = widget.NewList(
		func() int { return len(v.visible) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(v.visible) {
				obj.(*widget.Label).SetText(v.visible[id].String())
			}
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) {
		v.selected = id
		v.loadBtn.Enable()
	}
	v.list.OnUnselected = func(widget.ListItemID) {
		v.selected = -1
		v.loadBtn.Disable()
	}

	v.loadBtn = widget.NewButtonWithIcon(lang.X("matches.load", "Load"), theme.DownloadIcon(), v.loadSelected)
	v.loadBtn.Importance = widget.HighImportance
	v.loadBtn.Disable()
	refreshBtn := widget.NewButtonWithIcon(lang.X("matches.refresh", "Refresh"), theme.ViewRefreshIcon(), func() {
		go a.refreshStoredMatches()
	})
	exportBtn := widget.NewButtonWithIcon(lang.X("matches.export", "Export HTML report"), theme.DocumentSaveIcon(), v.export)

	v.current = widget.NewLabel("")
	v.current.Wrapping = fyne.TextWrapWord

	currentCard := newSectionCard(container.NewVBox(
		newSectionTitle(lang.X("matches.current", "Active match")),
		v.current,
		container.NewHBox(exportBtn),
	))
	listCard := newSectionCard(container.NewBorder(
		container.NewVBox(newSectionTitle(lang.X("matches.saved", "Saved matches")), v.search),
		container.NewHBox(v.loadBtn, refreshBtn),
		nil, nil,
		v.list,
	))
	v.root.Objects = []fyne.CanvasObject{container.NewPadded(container.NewBorder(currentCard, nil, nil, nil, listCard))}
	return v
}

// SetKeys replaces the stored key list, keeping the filter.
func (v *matchesTabView) SetKeys(keys []match.Key) {
	v.all = keys
	v.applyFilter()
}

func (v *matchesTabView) applyFilter() {
	v.visible = filterKeys(v.all, v.search.Text)
	v.selected = -1
	v.list.UnselectAll()
	v.loadBtn.Disable()
	v.list.Refresh()
}

func (v *matchesTabView) UpdateCurrent(snap application.Snapshot) {
	v.currentKey = snap.Key
	info := snap.Record.Info
	date := info.Date.String()
	if info.Date.IsZero() {
		date = match.UnsetDateLabel
	}
	v.current.SetText(lang.X("matches.current_detail", "{{.Date}} {{.Location}} vs {{.Opponent}} ({{.Players}} players, {{.Phase}})", map[string]any{
		"Date":     date,
		"Location": info.Location,
		"Opponent": info.Opponent,
		"Players":  len(snap.Record.Records),
		"Phase":    phaseLabel(snap.Phase),
	}))
}

func (v *matchesTabView) loadSelected() {
	if v.selected < 0 || v.selected >= len(v.visible) {
		return
	}
	key := v.visible[v.selected]
	v.app.loadMatch(key)
}

func (v *matchesTabView) export() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			showError(err, v.app.win)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		v.app.exportReport(path)
	}, v.app.win)
	d.SetFileName(reportFileName(v.currentKey))
	d.SetFilter(storage.NewExtensionFileFilter([]string{".html"}))
	d.Show()
}

func phaseLabel(p application.Phase) string {
	switch p {
	case application.PhaseSaved:
		return lang.X("matches.phase.saved", "saved")
	case application.PhaseLoaded:
		return lang.X("matches.phase.loaded", "loaded")
	default:
		return lang.X("matches.phase.draft", "draft")
	}
}
