package ui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/config"
	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/platform"
)

// errInvalidInterval is returned for refresh minutes outside the allowed range
var errInvalidInterval = errors.New("invalid refresh interval")

// SettingsValues is what the settings page submits
type SettingsValues struct {
	AutoRefreshInterval int // seconds, 0 disables
	StayOnTop           bool
	RunAtStartup        bool
	Language            string
	RcloneBinary        string
	DebugLogging        bool
}

// SettingsPage is shown in place of the drive list
type SettingsPage struct {
	settings     *config.Settings
	localization *Localization
	configPath   string

	// UI components
	autoRefreshCheck  *widget.Check
	intervalEntry     *widget.Entry
	stayOnTopCheck    *widget.Check
	runAtStartupCheck *widget.Check
	languageSelect    *widget.Select
	rcloneEntry       *widget.Entry
	debugLoggingCheck *widget.Check
	errorLabel        *widget.Label
	content           fyne.CanvasObject

	languageCodes map[string]string // display name -> code

	onSave   func(values SettingsValues)
	onCancel func()
}

// NewSettingsPage creates the settings page
func NewSettingsPage(settings *config.Settings, localization *Localization, configPath string) *SettingsPage {
	sp := &SettingsPage{
		settings:     settings,
		localization: localization,
		configPath:   configPath,
	}
	sp.createUI()
	return sp
}

// SetCallbacks sets the save and cancel callbacks
func (sp *SettingsPage) SetCallbacks(onSave func(values SettingsValues), onCancel func()) {
	sp.onSave = onSave
	sp.onCancel = onCancel
}

// Content returns the page's canvas object
func (sp *SettingsPage) Content() fyne.CanvasObject {
	return sp.content
}

// createUI creates the settings page UI
func (sp *SettingsPage) createUI() {
	l := sp.localization

	sp.autoRefreshCheck = widget.NewCheck(l.GetText(KeyEnableAutoRefresh), func(on bool) {
		if on {
			sp.intervalEntry.Enable()
		} else {
			sp.intervalEntry.Disable()
		}
	})
	sp.intervalEntry = widget.NewEntry()
	sp.intervalEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", MinRefreshMinutes, MaxRefreshMinutes))

	sp.stayOnTopCheck = widget.NewCheck(l.GetText(KeyStayOnTop), nil)
	sp.runAtStartupCheck = widget.NewCheck(l.GetText(KeyRunAtStartup), nil)

	// Language selection shows display names, sorted
	sp.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sp.settings.GetLanguageOptions() {
		sp.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sp.languageSelect = widget.NewSelect(languageNames, nil)

	sp.rcloneEntry = widget.NewEntry()
	sp.rcloneEntry.SetPlaceHolder(config.DefaultRcloneBinary)

	sp.debugLoggingCheck = widget.NewCheck(l.GetText(KeyDebugLogging), nil)

	configLabel := widget.NewLabel(sp.configPath)
	configLabel.Truncation = fyne.TextTruncateEllipsis
	openBtn := widget.NewButton(l.GetText(KeyOpenConfigFolder), func() {
		if err := platform.OpenFileInManager(sp.configPath); err != nil {
			logging.Warn("failed to open config folder", zap.Error(err))
		}
	})

	sp.errorLabel = widget.NewLabel("")
	sp.errorLabel.Importance = widget.DangerImportance
	sp.errorLabel.Hide()

	form := container.NewVBox(
		widget.NewLabelWithStyle(l.GetText(KeyAutoRefresh), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		sp.autoRefreshCheck,
		widget.NewLabel(l.GetText(KeyRefreshInterval)),
		sp.intervalEntry,

		widget.NewLabelWithStyle(l.GetText(KeyWindow), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		sp.stayOnTopCheck,
		sp.runAtStartupCheck,
		widget.NewLabel(l.GetText(KeyLanguage)),
		sp.languageSelect,

		widget.NewLabelWithStyle(l.GetText(KeyRclonePath), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		sp.rcloneEntry,
		widget.NewLabel(l.GetText(KeyConfigFile)),
		container.NewBorder(nil, nil, nil, openBtn, configLabel),
		sp.debugLoggingCheck,

		sp.errorLabel,
	)

	saveBtn := widget.NewButton(l.GetText(KeySave), sp.save)
	saveBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton(l.GetText(KeyCancel), func() {
		if sp.onCancel != nil {
			sp.onCancel()
		}
	})

	title := widget.NewLabelWithStyle(l.GetText(KeyAppSettings), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	buttons := container.NewHBox(layout.NewSpacer(), cancelBtn, saveBtn)
	sp.content = container.NewBorder(title, buttons, nil, nil, container.NewVScroll(form))
}

// Load fills the page from the persisted config and preferences
func (sp *SettingsPage) Load(cfg config.Config, runAtStartup bool) {
	enabled := cfg.AutoRefreshInterval > 0
	minutes := DefaultRefreshMinutes
	if enabled {
		minutes = cfg.AutoRefreshInterval / 60
		if minutes < MinRefreshMinutes {
			minutes = MinRefreshMinutes
		}
	}

	sp.intervalEntry.SetText(strconv.Itoa(minutes))
	sp.autoRefreshCheck.SetChecked(enabled)
	if enabled {
		sp.intervalEntry.Enable()
	} else {
		sp.intervalEntry.Disable()
	}
	sp.stayOnTopCheck.SetChecked(cfg.StayOnTop)
	sp.runAtStartupCheck.SetChecked(runAtStartup)
	sp.rcloneEntry.SetText(sp.settings.GetRcloneBinary())
	sp.debugLoggingCheck.SetChecked(sp.settings.GetDebugLogging())

	current := sp.settings.GetLanguage()
	for name, code := range sp.languageCodes {
		if code == current {
			sp.languageSelect.SetSelected(name)
		}
	}

	sp.errorLabel.Hide()
}

// Values reads the form. The interval is only validated when auto-refresh is on.
func (sp *SettingsPage) Values() (SettingsValues, error) {
	values := SettingsValues{
		StayOnTop:    sp.stayOnTopCheck.Checked,
		RunAtStartup: sp.runAtStartupCheck.Checked,
		Language:     sp.languageCodes[sp.languageSelect.Selected],
		RcloneBinary: strings.TrimSpace(sp.rcloneEntry.Text),
		DebugLogging: sp.debugLoggingCheck.Checked,
	}
	if values.Language == "" {
		values.Language = config.DefaultLanguage
	}

	if sp.autoRefreshCheck.Checked {
		seconds, err := parseRefreshMinutes(sp.intervalEntry.Text)
		if err != nil {
			return values, err
		}
		values.AutoRefreshInterval = seconds
	}
	return values, nil
}

// save validates the form and reports it
func (sp *SettingsPage) save() {
	values, err := sp.Values()
	if err != nil {
		sp.errorLabel.SetText(sp.localization.Format(KeyInvalidInterval, MinRefreshMinutes, MaxRefreshMinutes))
		sp.errorLabel.Show()
		return
	}
	sp.errorLabel.Hide()

	if sp.onSave != nil {
		sp.onSave(values)
	}
}

// parseRefreshMinutes converts the minutes field into an interval in seconds
func parseRefreshMinutes(text string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidInterval, text)
	}
	if minutes < MinRefreshMinutes || minutes > MaxRefreshMinutes {
		return 0, fmt.Errorf("%w: %d", errInvalidInterval, minutes)
	}
	return minutes * 60, nil
}
