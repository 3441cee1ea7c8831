package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/logging"
)

// setupTray installs the system tray icon and menu and the close-to-tray
// behaviour. Without a tray the close button quits.
func (ui *RootUI) setupTray() {
	ui.window.SetCloseIntercept(ui.onCloseRequested)

	if _, ok := ui.app.(desktop.App); !ok {
		logging.Info("system tray not available, close quits")
		return
	}
	ui.buildTrayMenu()
}

// buildTrayMenu (re)creates the tray menu with the current language
func (ui *RootUI) buildTrayMenu() {
	desk, ok := ui.app.(desktop.App)
	if !ok {
		return
	}
	l := ui.localization

	ui.stayOnTopItem = fyne.NewMenuItem(l.GetText(KeyStayOnTop), ui.toggleStayOnTop)
	ui.stayOnTopItem.Checked = ui.stayOnTop

	quitItem := fyne.NewMenuItem(l.GetText(KeyQuit), ui.Quit)
	quitItem.IsQuit = true

	ui.trayMenu = fyne.NewMenu(l.GetText(KeyAppTitle),
		fyne.NewMenuItem(l.GetText(KeyShow), ui.showWindow),
		fyne.NewMenuItem(l.GetText(KeyHide), ui.window.Hide),
		fyne.NewMenuItemSeparator(),
		ui.stayOnTopItem,
		fyne.NewMenuItem(l.GetText(KeyRefresh), ui.RefreshAll),
		fyne.NewMenuItemSeparator(),
		quitItem,
	)
	desk.SetSystemTrayMenu(ui.trayMenu)
	desk.SetSystemTrayIcon(AppIconResource())
}

func (ui *RootUI) showWindow() {
	ui.window.Show()
	ui.window.RequestFocus()
}

// toggleStayOnTop flips and persists the stay-on-top preference. Fyne has no
// always-on-top window hint, so the value is stored and reflected in the menu.
func (ui *RootUI) toggleStayOnTop() {
	value := !ui.stayOnTop
	cfg, _ := ui.store.Load()
	cfg.StayOnTop = value
	if err := ui.store.Save(cfg); err != nil {
		logging.Error("failed to save stay on top", zap.Error(err))
		ui.showError(ui.localization.GetText(KeyErrorSavingConfig), err)
		return
	}
	ui.setStayOnTopChecked(value)
}

// setStayOnTopChecked updates the tray check mark
func (ui *RootUI) setStayOnTopChecked(value bool) {
	ui.stayOnTop = value
	if ui.stayOnTopItem == nil || ui.trayMenu == nil {
		return
	}
	ui.stayOnTopItem.Checked = value
	ui.trayMenu.Refresh()
}
