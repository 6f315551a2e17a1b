package ui

import (
	"context"
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/volley-stats/internal/application"
	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/persistence"
	"github.com/AkatukiSora/volley-stats/internal/stats"
	"github.com/AkatukiSora/volley-stats/internal/watcher"
)

type appService interface {
	Current() application.Snapshot
	NewDraft()
	SetInfo(info match.MatchInfo)
	SubmitRows(rows []match.RawStat) (int, error)
	ImportExcel(path string) (int, error)
	Save(ctx context.Context) (match.Key, error)
	Load(ctx context.Context, key match.Key) error
	ListStored(ctx context.Context) ([]match.Key, error)
	ScoreBreakdown() []stats.BreakdownEntry
	ErrorBreakdown() []stats.BreakdownEntry
	Summaries() ([]stats.PlayerSummary, stats.PlayerSummary)
	WriteReport(ctx context.Context, path string) error
	Close() error
}

type authenticator interface {
	Enabled() bool
	Check(username, password string) error
}

// Options configures Run.
type Options struct {
	Auth authenticator
	// WatchDir is the JSON storage directory to watch. Empty disables the watcher.
	WatchDir string
}

type appTab int

const (
	tabEntry appTab = iota
	tabTable
	tabCharts
	tabMatches
)

// App is the main application controller
type App struct {
	ctx       context.Context
	cancel    context.CancelFunc
	fyneApp   fyne.App
	win       fyne.Window
	service   appService
	auth      authenticator
	watchDir  string
	watcher   *watcher.DirWatcher
	closeOnce sync.Once

	mu             sync.Mutex
	isShuttingDown bool
	currentTab     appTab

	tabs        *container.AppTabs
	entryView   *entryTabView
	tableView   *tableTabView
	chartsView  *chartsTabView
	matchesView *matchesTabView
	statusText  *widget.Label
}

// Run starts the application and blocks until the window closes.
func Run(service appService, opts Options) {
	if service == nil {
		return
	}

	a := app.NewWithID("io.github.akatukisora.volley-stats")
	a.Settings().SetTheme(newCourtTheme())

	win := a.NewWindow(lang.X("app.window.title", "Volleyball Match Stats"))
	win.Resize(fyne.NewSize(1180, 820))
	win.SetMaster()

	ctx, cancel := context.WithCancel(context.Background())
	appCtrl := &App{
		ctx:      ctx,
		cancel:   cancel,
		fyneApp:  a,
		win:      win,
		service:  service,
		auth:     opts.Auth,
		watchDir: opts.WatchDir,
	}
	win.SetCloseIntercept(func() {
		appCtrl.shutdown()
		win.SetCloseIntercept(nil)
		win.Close()
	})

	if appCtrl.auth != nil && appCtrl.auth.Enabled() {
		win.SetContent(newLoginView(appCtrl.auth, appCtrl.enterMain))
	} else {
		appCtrl.enterMain()
	}
	win.ShowAndRun()
}

// enterMain swaps in the main UI. MUST run on the Fyne main thread.
func (a *App) enterMain() {
	a.win.SetContent(a.buildUI())
	a.startWatcher()
	go a.refreshStoredMatches()
}

func (a *App) buildUI() fyne.CanvasObject {
	a.statusText = widget.NewLabel(lang.X("app.status.ready", "Ready"))
	a.statusText.Wrapping = fyne.TextWrapOff
	statusRow := container.NewHBox(widget.NewIcon(theme.InfoIcon()), a.statusText)

	a.entryView = newEntryTabView(a)
	a.tableView = newTableTabView()
	a.chartsView = newChartsTabView()
	a.matchesView = newMatchesTabView(a)

	a.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(lang.X("app.tab.entry", "Entry"), theme.DocumentCreateIcon(), a.entryView.CanvasObject()),
		container.NewTabItemWithIcon(lang.X("app.tab.table", "Table"), theme.GridIcon(), a.tableView.CanvasObject()),
		container.NewTabItemWithIcon(lang.X("app.tab.charts", "Charts"), theme.ColorChromaticIcon(), a.chartsView.CanvasObject()),
		container.NewTabItemWithIcon(lang.X("app.tab.matches", "Matches"), theme.FolderOpenIcon(), a.matchesView.CanvasObject()),
	)
	a.tabs.SetTabLocation(container.TabLocationLeading)
	a.tabs.OnSelected = func(*container.TabItem) {
		a.mu.Lock()
		a.currentTab = appTab(a.tabs.SelectedIndex())
		a.mu.Unlock()
		a.doRefreshCurrentTab()
	}
	a.doRefreshAll()

	return container.NewBorder(nil, container.NewPadded(newSectionCard(statusRow)), nil, nil, a.tabs)
}

func (a *App) startWatcher() {
	if a.watchDir == "" {
		return
	}
	w, err := watcher.NewDirWatcher(a.watchDir, watcher.WatcherConfig{
		OnChange: func() {
			if a.shuttingDown() {
				return
			}
			a.refreshStoredMatches()
		},
		OnError: func(err error) {
			a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
		},
	})
	if err != nil {
		a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
		return
	}
	if err := w.Start(); err != nil {
		a.doSetStatus(lang.X("app.error.watcher_start", "Failed to start watcher: {{.Error}}", map[string]any{"Error": err}))
		w.Stop()
		return
	}
	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()
}

func (a *App) shuttingDown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isShuttingDown
}

func (a *App) shutdown() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.isShuttingDown = true
		if a.cancel != nil {
			a.cancel()
		}
		w := a.watcher
		a.watcher = nil
		a.mu.Unlock()

		if w != nil {
			w.Stop()
		}
		if a.service != nil {
			_ = a.service.Close()
		}
	})
}

// refreshStoredMatches reloads the stored key list off the main thread.
func (a *App) refreshStoredMatches() {
	keys, err := a.service.ListStored(a.ctx)
	if err != nil {
		a.doSetStatus(lang.X("app.error.list", "Could not list saved matches: {{.Error}}", map[string]any{"Error": err}))
		return
	}
	fyne.Do(func() {
		if a.matchesView != nil {
			a.matchesView.SetKeys(keys)
		}
	})
}

// saveCurrent persists the active record in the background and reports the result.
func (a *App) saveCurrent() {
	go func() {
		key, err := a.service.Save(a.ctx)
		if err != nil {
			a.doShowError(err)
			a.doSetStatus(lang.X("app.error.save", "Save failed: {{.Error}}", map[string]any{"Error": err}))
			return
		}
		a.doSetStatus(lang.X("app.status.saved", "Saved as {{.Key}}", map[string]any{"Key": key.String()}))
		fyne.Do(a.doRefreshAll)
		a.refreshStoredMatches()
	}()
}

// loadMatch replaces the active record with a stored match in the background.
func (a *App) loadMatch(key match.Key) {
	go func() {
		if err := a.service.Load(a.ctx, key); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				a.doSetStatus(lang.X("app.error.not_found", "No saved match named {{.Key}}", map[string]any{"Key": key.String()}))
			} else {
				a.doSetStatus(lang.X("app.error.load", "Load failed: {{.Error}}", map[string]any{"Error": err}))
			}
			a.doShowError(err)
			return
		}
		a.doSetStatus(lang.X("app.status.loaded", "Loaded {{.Key}}", map[string]any{"Key": key.String()}))
		fyne.Do(func() {
			a.entryView.LoadSnapshot(a.service.Current())
			a.doRefreshAll()
		})
	}()
}

// exportReport writes the active record as HTML in the background.
func (a *App) exportReport(path string) {
	go func() {
		if err := a.service.WriteReport(a.ctx, path); err != nil {
			a.doShowError(err)
			return
		}
		a.doSetStatus(lang.X("app.status.report", "Report written to {{.Path}}", map[string]any{"Path": shortPath(path)}))
	}()
}

// doRefreshAll re-renders every data view. MUST be called from the Fyne main thread.
func (a *App) doRefreshAll() {
	snap := a.service.Current()
	if a.entryView != nil {
		a.entryView.UpdateStatus(snap)
	}
	if a.tableView != nil {
		players, team := a.service.Summaries()
		a.tableView.Update(snap.Record, players, team)
	}
	if a.chartsView != nil {
		players, _ := a.service.Summaries()
		a.chartsView.Update(a.service.ScoreBreakdown(), a.service.ErrorBreakdown(), players)
	}
	if a.matchesView != nil {
		a.matchesView.UpdateCurrent(snap)
	}
}

// doRefreshCurrentTab re-renders only the selected tab.
// MUST be called from the Fyne main thread (or wrapped in fyne.Do).
func (a *App) doRefreshCurrentTab() {
	a.mu.Lock()
	current := a.currentTab
	a.mu.Unlock()

	switch current {
	case tabTable:
		players, team := a.service.Summaries()
		a.tableView.Update(a.service.Current().Record, players, team)
	case tabCharts:
		players, _ := a.service.Summaries()
		a.chartsView.Update(a.service.ScoreBreakdown(), a.service.ErrorBreakdown(), players)
	case tabMatches:
		a.matchesView.UpdateCurrent(a.service.Current())
	default:
		a.entryView.UpdateStatus(a.service.Current())
	}
}

// doSetStatus safely updates the status bar label from any goroutine.
func (a *App) doSetStatus(msg string) {
	fyne.Do(func() {
		if a.statusText != nil {
			a.statusText.SetText(msg)
		}
	})
}

func (a *App) doShowError(err error) {
	fyne.Do(func() {
		showError(err, a.win)
	})
}

func shortPath(path string) string {
	if len(path) > 60 {
		return "..." + path[len(path)-57:]
	}
	return path
}
