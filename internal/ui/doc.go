// Package ui contains the Fyne desktop interface: the card list with
// drag-to-reorder, the settings page, the remote setup dialog and the tray
// menu. Card state lives in cards.Controller; this package only renders it
// and forwards pointer gestures. All UI strings are localized via Localization.
package ui
