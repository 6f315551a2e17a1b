package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/volley-stats/internal/application"
	"github.com/AkatukiSora/volley-stats/internal/match"
)

// dateInputError reports an unparsable date in the match info form.
type dateInputError struct {
	Value string
}

func (e *dateInputError) Error() string {
	return fmt.Sprintf("invalid match date %q", e.Value)
}

// infoFormValues is the text content of the match info form.
type infoFormValues struct {
	Date, Location, Opponent, Score string
}

func (v infoFormValues) parse() (match.MatchInfo, error) {
	date, err := match.ParseDate(v.Date)
	if err != nil {
		return match.MatchInfo{}, &dateInputError{Value: strings.TrimSpace(v.Date)}
	}
	return match.MatchInfo{
		Date:       date,
		Location:   strings.TrimSpace(v.Location),
		Opponent:   strings.TrimSpace(v.Opponent),
		FinalScore: strings.TrimSpace(v.Score),
	}, nil
}

func infoFormValuesOf(info match.MatchInfo) infoFormValues {
	return infoFormValues{
		Date:     info.Date.String(),
		Location: info.Location,
		Opponent: info.Opponent,
		Score:    info.FinalScore,
	}
}

// counterGroupColumns lays out the counter inputs the way paper score sheets do.
var counterGroupColumns = [][]match.CounterGroup{
	{match.GroupServe},
	{match.GroupReceive},
	{match.GroupSpike, match.GroupBlock},
}

type playerRowForm struct {
	name     *widget.Entry
	counters map[match.CounterID]*widget.Entry
	title    *widget.Label
	root     fyne.CanvasObject
}

func newPlayerRowForm(onRemove func(*playerRowForm)) *playerRowForm {
	row := &playerRowForm{
		name:     widget.NewEntry(),
		counters: make(map[match.CounterID]*widget.Entry, len(match.Counters)),
		title:    newSectionTitle(""),
	}
	row.name.SetPlaceHolder(lang.X("entry.player_name", "Player name"))

	columns := make([]fyne.CanvasObject, 0, len(counterGroupColumns))
	for _, groups := range counterGroupColumns {
		items := make([]*widget.FormItem, 0, 5)
		for _, c := range match.Counters {
			if !containsGroup(groups, c.Group) {
				continue
			}
			e := widget.NewEntry()
			e.SetPlaceHolder("0") //i18n:ignore numeric placeholder
			e.Validator = countValidator
			row.counters[c.ID] = e
			items = append(items, widget.NewFormItem(c.Label, e))
		}
		columns = append(columns, widget.NewForm(items...))
	}

	removeBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if onRemove != nil {
			onRemove(row)
		}
	})
	removeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, row.title, removeBtn, row.name)
	row.root = newSectionCard(container.NewVBox(header, container.NewGridWithColumns(len(columns), columns...)))
	return row
}

func (r *playerRowForm) raw() match.RawStat {
	raw := match.RawStat{Name: r.name.Text, Counters: make(map[match.CounterID]string, len(r.counters))}
	for id, e := range r.counters {
		raw.Counters[id] = e.Text
	}
	return raw
}

func (r *playerRowForm) fill(raw match.RawStat) {
	r.name.SetText(raw.Name)
	for id, e := range r.counters {
		e.SetText(raw.Counters[id])
	}
}

func containsGroup(groups []match.CounterGroup, g match.CounterGroup) bool {
	for _, x := range groups {
		if x == g {
			return true
		}
	}
	return false
}

// countValidator flags text that match.Normalize would reject. Blank is fine.
func countValidator(s string) error {
	_, err := match.Normalize(match.RawStat{Counters: map[match.CounterID]string{match.CounterServeAttempts: s}})
	if err != nil {
		return fmt.Errorf("not a count: %q", s)
	}
	return nil
}

type entryTabView struct {
	tabRoot
	app *App

	date     *widget.Entry
	location *widget.Entry
	opponent *widget.Entry
	score    *widget.Entry

	rows       []*playerRowForm
	rowsBox    *fyne.Container
	phaseLabel *widget.Label
}

func newEntryTabView(a *App) *entryTabView {
	v := &entryTabView{
		tabRoot:    newTabRoot(),
		app:        a,
		date:       widget.NewEntry(),
		location:   widget.NewEntry(),
		opponent:   widget.NewEntry(),
		score:      widget.NewEntry(),
		rowsBox:    container.NewVBox(),
		phaseLabel: widget.NewLabel(""),
	}
	v.date.SetPlaceHolder(lang.X("entry.date_placeholder", "YYYY-MM-DD"))
	v.date.Validator = func(s string) error {
		_, err := infoFormValues{Date: s}.parse()
		return err
	}
	v.score.SetPlaceHolder(lang.X("entry.score_placeholder", "e.g. 2-1"))

	infoForm := widget.NewForm(
		widget.NewFormItem(lang.X("entry.date", "Date"), v.date),
		widget.NewFormItem(lang.X("entry.location", "Location"), v.location),
		widget.NewFormItem(lang.X("entry.opponent", "Opponent"), v.opponent),
		widget.NewFormItem(lang.X("entry.score", "Final score"), v.score),
	)

	addBtn := widget.NewButtonWithIcon(lang.X("entry.add_row", "Add player"), theme.ContentAddIcon(), func() {
		v.addRow(nil)
	})
	submitBtn := widget.NewButtonWithIcon(lang.X("entry.submit", "Apply"), theme.ConfirmIcon(), func() {
		v.submit()
	})
	saveBtn := widget.NewButtonWithIcon(lang.X("entry.save", "Save match"), theme.DocumentSaveIcon(), func() {
		if v.submit() {
			v.app.saveCurrent()
		}
	})
	saveBtn.Importance = widget.HighImportance
	importBtn := widget.NewButtonWithIcon(lang.X("entry.import", "Import Excel..."), theme.UploadIcon(), v.importExcel)
	newBtn := widget.NewButtonWithIcon(lang.X("entry.new", "New match"), theme.FileIcon(), v.newMatch)

	toolbar := container.NewHBox(addBtn, importBtn, newBtn, layout.NewSpacer(), submitBtn, saveBtn)

	content := container.NewVBox(
		newSectionCard(container.NewVBox(newSectionTitle(lang.X("entry.match_info", "Match")), infoForm, v.phaseLabel)),
		v.rowsBox,
	)
	v.root.Objects = []fyne.CanvasObject{container.NewBorder(nil, container.NewPadded(toolbar), nil, nil, container.NewVScroll(container.NewPadded(content)))}
	v.addRow(nil)
	return v
}

func (v *entryTabView) addRow(raw *match.RawStat) {
	row := newPlayerRowForm(v.removeRow)
	if raw != nil {
		row.fill(*raw)
	}
	v.rows = append(v.rows, row)
	v.relayoutRows()
}

func (v *entryTabView) removeRow(row *playerRowForm) {
	for i, r := range v.rows {
		if r == row {
			v.rows = append(v.rows[:i], v.rows[i+1:]...)
			break
		}
	}
	if len(v.rows) == 0 {
		v.rows = append(v.rows, newPlayerRowForm(v.removeRow))
	}
	v.relayoutRows()
}

func (v *entryTabView) relayoutRows() {
	objs := make([]fyne.CanvasObject, 0, len(v.rows))
	for i, r := range v.rows {
		r.title.SetText(lang.X("entry.player_n", "Player {{.N}}", map[string]any{"N": i + 1}))
		objs = append(objs, r.root)
	}
	v.rowsBox.Objects = objs
	v.rowsBox.Refresh()
}

// submit pushes the form into the service. It reports whether the form was accepted.
func (v *entryTabView) submit() bool {
	info, err := infoFormValues{Date: v.date.Text, Location: v.location.Text, Opponent: v.opponent.Text, Score: v.score.Text}.parse()
	if err != nil {
		showError(err, v.app.win)
		return false
	}
	rows := make([]match.RawStat, 0, len(v.rows))
	for _, r := range v.rows {
		rows = append(rows, r.raw())
	}
	n, err := v.app.service.SubmitRows(rows)
	if err != nil {
		showError(err, v.app.win)
		return false
	}
	v.app.service.SetInfo(info)
	v.app.doSetStatus(lang.X("entry.status.applied", "{{.N}} players recorded", map[string]any{"N": strconv.Itoa(n)}))
	v.app.doRefreshAll()
	return true
}

func (v *entryTabView) importExcel() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			showError(err, v.app.win)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()

		n, err := v.app.service.ImportExcel(path)
		if err != nil {
			showError(err, v.app.win)
			return
		}
		v.LoadSnapshot(v.app.service.Current())
		v.app.doRefreshAll()
		v.app.doSetStatus(lang.X("entry.status.imported", "Imported {{.N}} players from {{.Path}}", map[string]any{"N": n, "Path": shortPath(path)}))
	}, v.app.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	d.Show()
}

func (v *entryTabView) newMatch() {
	dialog.ShowConfirm(lang.X("entry.new_confirm_title", "New match"), lang.X("entry.new_confirm", "Discard the current match and start a new one?"), func(ok bool) {
		if !ok {
			return
		}
		v.app.service.NewDraft()
		v.LoadSnapshot(v.app.service.Current())
		v.app.doRefreshAll()
	}, v.app.win)
}

// LoadSnapshot replaces the form content with the given record.
func (v *entryTabView) LoadSnapshot(snap application.Snapshot) {
	vals := infoFormValuesOf(snap.Record.Info)
	v.date.SetText(vals.Date)
	v.location.SetText(vals.Location)
	v.opponent.SetText(vals.Opponent)
	v.score.SetText(vals.Score)

	v.rows = v.rows[:0]
	for _, rec := range snap.Record.Records {
		raw := match.RawOf(rec)
		row := newPlayerRowForm(v.removeRow)
		row.fill(raw)
		v.rows = append(v.rows, row)
	}
	if len(v.rows) == 0 {
		v.rows = append(v.rows, newPlayerRowForm(v.removeRow))
	}
	v.relayoutRows()
	v.UpdateStatus(snap)
}

// UpdateStatus shows the lifecycle phase of the active record.
func (v *entryTabView) UpdateStatus(snap application.Snapshot) {
	switch snap.Phase {
	case application.PhaseSaved:
		v.phaseLabel.SetText(lang.X("entry.phase.saved", "Saved as {{.Key}}", map[string]any{"Key": snap.Key.String()}))
	case application.PhaseLoaded:
		v.phaseLabel.SetText(lang.X("entry.phase.loaded", "Loaded from {{.Key}}", map[string]any{"Key": snap.Key.String()}))
	default:
		v.phaseLabel.SetText(lang.X("entry.phase.draft", "Unsaved draft ({{.N}} players)", map[string]any{"N": len(snap.Record.Records)}))
	}
}
