package ui

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/cards"
	"github.com/ytget/cloud-drives/internal/config"
	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/model"
	"github.com/ytget/cloud-drives/internal/refresh"
)

// ConfigStore persists the TOML config document
type ConfigStore interface {
	Load() (config.Config, error)
	Save(cfg config.Config) error
	SetDriveOrder(order []string) error
	Path() string
}

// RemoteService is the rclone access the window needs
type RemoteService interface {
	refresh.Fetcher
	RemoteValidator
	ListRemotes(ctx context.Context) ([]string, error)
	Available(ctx context.Context) error
	SetBinary(binary string)
}

// StartupToggle registers the app to run at login
type StartupToggle interface {
	IsEnabled() bool
	Set(ctx context.Context, enable bool) error
}

// Deps are the services the window is built on. Startup may be nil when the
// platform does not support login items. Refresher defaults to a
// refresh.Service querying Rclone.
type Deps struct {
	Store     ConfigStore
	Rclone    RemoteService
	Startup   StartupToggle
	Refresher refresh.Refresher

	// RcloneBinary overrides the rclone preference for this run
	RcloneBinary string
	// LogLevel is the level used while debug logging is off
	LogLevel string
}

// RootUI is the main window: a header over the list of drive cards
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	store        ConfigStore
	rclone       RemoteService
	startup      StartupToggle
	rcloneFlag   string
	logLevel     string
	settings     *config.Settings
	localization *Localization

	controller *cards.Controller
	refresher  refresh.Refresher
	scheduler  *refresh.Scheduler

	// UI components
	cardViews    map[string]*DriveCard
	list         *fyne.Container
	emptyLabel   *widget.Label
	listPage     fyne.CanvasObject
	settingsPage *SettingsPage
	pages        *fyne.Container
	titleLabel   *widget.Label
	addBtn       *widget.Button
	refreshBtn   *widget.Button
	settingsBtn  *widget.Button

	// Tray
	trayMenu      *fyne.Menu
	stayOnTopItem *fyne.MenuItem
	stayOnTop     bool

	// Drag hover target, hit-tested from pointer positions
	hoverTarget string
	hitTest     func(pos fyne.Position) string

	stopTicker chan struct{}
	closeOnce  sync.Once
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, deps Deps) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	refresher := deps.Refresher
	if refresher == nil {
		refresher = refresh.NewService(deps.Rclone)
	}

	ui := &RootUI{
		app:          app,
		window:       window,
		store:        deps.Store,
		rclone:       deps.Rclone,
		startup:      deps.Startup,
		rcloneFlag:   deps.RcloneBinary,
		logLevel:     deps.LogLevel,
		settings:     settings,
		localization: localization,
		controller:   cards.New(deps.Store),
		refresher:    refresher,
		cardViews:    make(map[string]*DriveCard),
		stopTicker:   make(chan struct{}),
	}
	ui.hitTest = ui.cardAt
	ui.applyLogLevel()
	ui.rclone.SetBinary(ui.rcloneBinary())
	ui.scheduler = refresh.NewScheduler(func() { fyne.Do(ui.RefreshAll) })

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.controller.SetCallbacks(ui.renderCards, ui.rebuildList)
	ui.refresher.SetUpdateCallback(ui.onStatus)

	ui.setupUI()
	ui.loadConfig()
	ui.setupTray()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.titleLabel = widget.NewLabelWithStyle(l.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.addBtn = widget.NewButton(IconAdd, ui.ShowSetup)
	ui.refreshBtn = widget.NewButton(IconRefresh, ui.RefreshAll)
	ui.settingsBtn = widget.NewButton(IconSettings, ui.ShowSettings)
	for _, btn := range []*widget.Button{ui.addBtn, ui.refreshBtn, ui.settingsBtn} {
		btn.Importance = widget.LowImportance
	}
	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.addBtn, ui.refreshBtn, ui.settingsBtn),
		ui.titleLabel,
	)

	ui.list = container.NewVBox()
	ui.emptyLabel = widget.NewLabel(l.GetText(KeyNoDrives))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter
	ui.emptyLabel.Wrapping = fyne.TextWrapWord

	ui.listPage = container.NewBorder(header, nil, nil, nil,
		container.NewVScroll(container.NewVBox(ui.list, ui.emptyLabel, layout.NewSpacer())),
	)

	ui.settingsPage = NewSettingsPage(ui.settings, l, ui.store.Path())
	ui.settingsPage.SetCallbacks(ui.applySettings, ui.ShowList)

	ui.pages = container.NewStack(ui.listPage, ui.settingsPage.Content())
	ui.settingsPage.Content().Hide()

	ui.window.SetContent(ui.pages)
}

// loadConfig reads the config file into the card list
func (ui *RootUI) loadConfig() config.Config {
	cfg, err := ui.store.Load()
	if err != nil {
		logging.Warn("config could not be read, using defaults", zap.Error(err))
	}

	ui.controller.Load(cfg.Drives, cfg.DriveOrder)
	ui.stayOnTop = cfg.StayOnTop
	if cfg.WindowGeometry != nil {
		ui.window.Resize(fyne.NewSize(float32(cfg.WindowGeometry.Width), float32(cfg.WindowGeometry.Height)))
	}
	logging.Info("config loaded", zap.String("path", ui.store.Path()), zap.Int("drives", ui.controller.Len()))
	return cfg
}

// Start runs first-time setup or the first refresh and starts the timers
func (ui *RootUI) Start() {
	cfg, _ := ui.store.Load()

	if ui.controller.Len() == 0 && len(cfg.Drives) == 0 {
		ui.ShowSetup()
	} else {
		time.AfterFunc(InitialRefreshDelay, func() { fyne.Do(ui.RefreshAll) })
	}

	ui.scheduler.Start(time.Duration(cfg.AutoRefreshInterval) * time.Second)
	go ui.tickRelativeTimes()
}

// tickRelativeTimes re-renders "Last updated" texts once a minute
func (ui *RootUI) tickRelativeTimes() {
	ticker := time.NewTicker(RelativeTimeTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fyne.Do(func() { ui.renderCards(ui.controller.Order()...) })
		case <-ui.stopTicker:
			return
		}
	}
}

// Shutdown stops timers and in-flight refreshes
func (ui *RootUI) Shutdown() {
	ui.closeOnce.Do(func() {
		close(ui.stopTicker)
		ui.scheduler.Stop()
		ui.refresher.Close()
		logging.Info("shutdown complete")
	})
}

// RefreshAll starts a refresh of every card
func (ui *RootUI) RefreshAll() {
	for _, id := range ui.controller.Order() {
		ui.refreshCard(id)
	}
}

func (ui *RootUI) refreshCard(id string) {
	if ui.controller.MarkUpdating(id) {
		ui.refresher.Refresh(id)
	}
}

// onStatus receives refresh results from worker goroutines
func (ui *RootUI) onStatus(snapshot model.StatusSnapshot) {
	fyne.Do(func() {
		if !ui.controller.SetStatus(snapshot) {
			logging.Debug("dropping status of removed card", zap.String("remote", snapshot.RemoteName))
			ui.refresher.Forget(snapshot.RemoteName)
		}
	})
}

// rebuildList syncs card widgets with the controller order
func (ui *RootUI) rebuildList(order []string) {
	keep := make(map[string]bool, len(order))
	objects := make([]fyne.CanvasObject, 0, len(order))
	for _, id := range order {
		keep[id] = true
		card, exists := ui.cardViews[id]
		if !exists {
			card = ui.newCard(id)
			ui.cardViews[id] = card
		}
		objects = append(objects, card)
	}
	for id := range ui.cardViews {
		if !keep[id] {
			delete(ui.cardViews, id)
		}
	}

	ui.list.Objects = objects
	ui.list.Refresh()
	if len(order) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.renderCards(order...)
}

func (ui *RootUI) newCard(id string) *DriveCard {
	card := NewDriveCard(id, ui.localization)
	card.SetDragHandler(ui)
	card.SetCallbacks(ui.onEdit, ui.onSaveName, ui.controller.ExitEdit, ui.onRemove)
	return card
}

// renderCards pushes controller state into the card widgets
func (ui *RootUI) renderCards(ids ...string) {
	for _, id := range ids {
		view, exists := ui.cardViews[id]
		if !exists {
			continue
		}
		card, ok := ui.controller.Card(id)
		if !ok {
			continue
		}
		content, dropZone := ui.controller.Display(id)
		view.Update(content, dropZone, ui.controller.View(id), card.Fetch.IsActive())
	}
}

// CardDragStarted implements DragHandler
func (ui *RootUI) CardDragStarted(id string) bool {
	ui.hoverTarget = ""
	started := ui.controller.BeginDrag(id)
	logging.Debug("drag start", zap.String("remote", id), zap.Bool("started", started))
	return started
}

// CardDragMoved implements DragHandler
func (ui *RootUI) CardDragMoved(_ string, pos fyne.Position) {
	target := ui.hitTest(pos)
	if target == ui.hoverTarget {
		return
	}
	if target == "" {
		ui.controller.Leave(ui.hoverTarget)
	} else {
		ui.controller.Enter(target)
	}
	ui.hoverTarget = target
}

// CardDragEnded implements DragHandler
func (ui *RootUI) CardDragEnded(id string) {
	target := ui.hoverTarget
	ui.hoverTarget = ""

	moved, err := ui.controller.Drop(target)
	if err != nil {
		logging.Error("failed to save drive order", zap.Error(err))
		ui.showError(ui.localization.GetText(KeyErrorSavingConfig), err)
	}
	if moved {
		logging.Info("drive moved", zap.String("remote", id), zap.String("target", target))
	}
}

// cardAt returns the id of the card under an absolute position
func (ui *RootUI) cardAt(pos fyne.Position) string {
	driver := ui.app.Driver()
	for id, card := range ui.cardViews {
		if !card.Visible() {
			continue
		}
		origin := driver.AbsolutePositionForObject(card)
		size := card.Size()
		if pos.X >= origin.X && pos.X < origin.X+size.Width &&
			pos.Y >= origin.Y && pos.Y < origin.Y+size.Height {
			return id
		}
	}
	return ""
}

func (ui *RootUI) onEdit(id string) {
	if err := ui.controller.EnterEdit(id); err != nil {
		logging.Debug("edit refused", zap.String("remote", id), zap.Error(err))
	}
}

func (ui *RootUI) onSaveName(id, displayName string) {
	card, ok := ui.controller.Card(id)
	if !ok {
		return
	}
	entry := card.Entry
	entry.DisplayName = displayName
	ui.controller.UpdateEntry(entry)
	ui.controller.ExitEdit(id)
	ui.saveDrives()
}

func (ui *RootUI) onRemove(id string) {
	ui.controller.ExitEdit(id)
	if !ui.controller.Remove(id) {
		return
	}
	ui.refresher.Forget(id)
	logging.Info("drive removed", zap.String("remote", id))
	ui.saveDrives()
}

// saveDrives writes the shown entries and their order in one save
func (ui *RootUI) saveDrives() {
	cfg, _ := ui.store.Load()
	cfg.Drives = mergeEntries(cfg.Drives, ui.controller.Entries())
	cfg.DriveOrder = ui.controller.Order()
	if err := ui.store.Save(cfg); err != nil {
		logging.Error("failed to save drives", zap.Error(err))
		ui.showError(ui.localization.GetText(KeyErrorSavingConfig), err)
	}
}

// ReloadConfig re-reads the config after an external edit, keeping the
// statuses of cards that are still configured
func (ui *RootUI) ReloadConfig() {
	previous := make(map[string]*cards.Card)
	for _, card := range ui.controller.Cards() {
		previous[card.ID()] = card
	}

	cfg := ui.loadConfig()

	for _, id := range ui.controller.Order() {
		old, known := previous[id]
		switch {
		case !known:
			ui.refreshCard(id)
		case old.Fetch.IsActive():
			ui.controller.MarkUpdating(id)
		case old.Fetch.IsFinished():
			ui.controller.SetStatus(old.Status)
		}
	}
	for id := range previous {
		if _, still := ui.controller.Card(id); !still {
			ui.refresher.Forget(id)
		}
	}

	ui.scheduler.SetInterval(time.Duration(cfg.AutoRefreshInterval) * time.Second)
	ui.setStayOnTopChecked(cfg.StayOnTop)
}

// ShowSetup lists rclone remotes and opens the setup dialog
func (ui *RootUI) ShowSetup() {
	go func() {
		ctx := context.Background()
		if err := ui.rclone.Available(ctx); err != nil {
			logging.Warn("rclone unavailable", zap.Error(err))
			fyne.Do(func() {
				dialog.ShowInformation(ui.localization.GetText(KeyRcloneNotFound),
					ui.localization.GetText(KeyRcloneNotFoundMessage), ui.window)
			})
			return
		}

		remotes, err := ui.rclone.ListRemotes(ctx)
		if err != nil {
			logging.Warn("failed to list remotes", zap.Error(err))
		}
		fyne.Do(func() { ui.openSetup(remotes) })
	}()
}

func (ui *RootUI) openSetup(remotes []string) {
	cfg, _ := ui.store.Load()
	if len(remotes) == 0 && len(cfg.Drives) == 0 {
		dialog.ShowInformation(ui.localization.GetText(KeyNoRemotesFound),
			ui.localization.GetText(KeyNoRemotesFoundMessage), ui.window)
		return
	}
	NewSetupDialog(ui.window, ui.localization, ui.rclone, remotes, cfg.Drives, cfg.DriveOrder, ui.applySetup).Show()
}

// applySetup adds the newly selected drives and removes the unchecked ones
func (ui *RootUI) applySetup(selected []model.RemoteEntry, removed []string) {
	for _, id := range removed {
		if ui.controller.Remove(id) {
			ui.refresher.Forget(id)
		}
	}

	var added []string
	for _, entry := range selected {
		entry.Enabled = true
		if ui.controller.Add(entry) {
			added = append(added, entry.RemoteName)
		}
	}

	cfg, _ := ui.store.Load()
	stored := make([]model.RemoteEntry, 0, len(cfg.Drives))
	for _, e := range cfg.Drives {
		if !slices.Contains(removed, e.RemoteName) {
			stored = append(stored, e)
		}
	}
	cfg.Drives = mergeEntries(stored, ui.controller.Entries())
	cfg.DriveOrder = ui.controller.Order()
	if err := ui.store.Save(cfg); err != nil {
		logging.Error("failed to save setup", zap.Error(err))
		ui.showError(ui.localization.GetText(KeyErrorSavingConfig), err)
	}

	for _, id := range added {
		ui.refreshCard(id)
	}
}

// ShowSettings swaps the settings page in place of the list
func (ui *RootUI) ShowSettings() {
	cfg, _ := ui.store.Load()
	runAtStartup := cfg.RunAtStartup
	if ui.startup != nil {
		runAtStartup = ui.startup.IsEnabled()
	}
	ui.settingsPage.Load(cfg, runAtStartup)
	ui.listPage.Hide()
	ui.settingsPage.Content().Show()
}

// ShowList returns from the settings page to the list
func (ui *RootUI) ShowList() {
	ui.settingsPage.Content().Hide()
	ui.listPage.Show()
}

// applySettings persists the settings page and applies it
func (ui *RootUI) applySettings(values SettingsValues) {
	cfg, _ := ui.store.Load()
	cfg.AutoRefreshInterval = values.AutoRefreshInterval
	cfg.StayOnTop = values.StayOnTop

	if ui.startup != nil && ui.startup.IsEnabled() != values.RunAtStartup {
		if err := ui.startup.Set(context.Background(), values.RunAtStartup); err != nil {
			logging.Error("failed to change startup registration", zap.Error(err))
			ui.showError(ui.localization.GetText(KeyErrorStartup), err)
			values.RunAtStartup = ui.startup.IsEnabled()
		}
	}
	cfg.RunAtStartup = values.RunAtStartup

	if err := ui.store.Save(cfg); err != nil {
		logging.Error("failed to save settings", zap.Error(err))
		ui.showError(ui.localization.GetText(KeyErrorSavingConfig), err)
		return
	}

	ui.scheduler.SetInterval(time.Duration(cfg.AutoRefreshInterval) * time.Second)
	ui.setStayOnTopChecked(cfg.StayOnTop)

	ui.settings.SetRcloneBinary(values.RcloneBinary)
	ui.rclone.SetBinary(ui.rcloneBinary())

	ui.settings.SetDebugLogging(values.DebugLogging)
	ui.applyLogLevel()

	if values.Language != ui.settings.GetLanguage() {
		ui.settings.SetLanguage(values.Language)
		ui.localization.SetLanguage(values.Language)
		ui.refreshUITexts()
	}

	logging.Info("settings saved",
		zap.Int("auto_refresh_interval", cfg.AutoRefreshInterval),
		zap.Bool("stay_on_top", cfg.StayOnTop),
		zap.Bool("run_at_startup", cfg.RunAtStartup),
		zap.String("log_level", logging.Level()),
	)
	ui.ShowList()
}

// refreshUITexts rebuilds everything that shows localized text
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.titleLabel.SetText(l.GetText(KeyAppTitle))
	ui.emptyLabel.SetText(l.GetText(KeyNoDrives))

	// Cards and the settings page bake texts in at creation
	ui.cardViews = make(map[string]*DriveCard)
	ui.rebuildList(ui.controller.Order())

	ui.settingsPage = NewSettingsPage(ui.settings, l, ui.store.Path())
	ui.settingsPage.SetCallbacks(ui.applySettings, ui.ShowList)
	ui.settingsPage.Content().Hide()
	ui.pages.Objects = []fyne.CanvasObject{ui.listPage, ui.settingsPage.Content()}
	ui.pages.Refresh()

	ui.buildTrayMenu()
}

// onCloseRequested saves the window size and hides to the tray when there is one
func (ui *RootUI) onCloseRequested() {
	ui.saveGeometry()
	if ui.trayMenu != nil {
		logging.Debug("main window close intercepted: hiding to tray")
		ui.window.Hide()
		return
	}
	ui.Quit()
}

// saveGeometry stores the window size. Fyne does not expose the window
// position, so the stored coordinates are kept.
func (ui *RootUI) saveGeometry() {
	cfg, _ := ui.store.Load()
	size := ui.window.Canvas().Size()
	geometry := config.Geometry{X: config.DefaultWindowX, Y: config.DefaultWindowY}
	if cfg.WindowGeometry != nil {
		geometry = *cfg.WindowGeometry
	}
	geometry.Width = int(size.Width)
	geometry.Height = int(size.Height)
	cfg.WindowGeometry = &geometry
	if err := ui.store.Save(cfg); err != nil {
		logging.Warn("failed to save window geometry", zap.Error(err))
	}
}

// Quit saves state and exits the application
func (ui *RootUI) Quit() {
	ui.saveGeometry()
	ui.Shutdown()
	ui.app.Quit()
}

// applyLogLevel switches to debug logging when the preference is on
func (ui *RootUI) applyLogLevel() {
	level := ui.logLevel
	if ui.settings.GetDebugLogging() {
		level = "debug"
	}
	logging.SetLevel(level)
}

// rcloneBinary returns the executable to run: the command line flag wins
// over the saved preference
func (ui *RootUI) rcloneBinary() string {
	if ui.rcloneFlag != "" {
		return ui.rcloneFlag
	}
	return ui.settings.GetRcloneBinary()
}

// showError shows a titled error dialog
func (ui *RootUI) showError(title string, err error) {
	dialog.ShowInformation(title, fmt.Sprint(err), ui.window)
}

var _ DragHandler = (*RootUI)(nil)
