package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/cards"
	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/model"
)

// DragHandler receives the drag gestures of every card
type DragHandler interface {
	// CardDragStarted is called on the first drag event; returning false ignores the gesture
	CardDragStarted(id string) bool
	CardDragMoved(id string, pos fyne.Position)
	CardDragEnded(id string)
}

// DriveCard shows one remote: icon, name, usage and refresh status
type DriveCard struct {
	widget.BaseWidget

	id           string
	content      model.CardContent
	view         model.CardViewState
	dropZone     bool
	updating     bool
	dragging     bool
	localization *Localization

	// UI components
	icon        *fyne.Container
	titleLabel  *widget.Label
	remoteLabel *widget.Label
	statusLabel *widget.Label
	infoLabel   *widget.Label
	spinner     *widget.Activity
	gearBtn     *widget.Button
	normalBody  *fyne.Container
	dropBody    *fyne.Container

	// Edit mode
	nameEntry *widget.Entry
	saveBtn   *widget.Button
	cancelBtn *widget.Button
	removeBtn *widget.Button
	editBody  *fyne.Container

	// Callbacks
	drag     DragHandler
	onEdit   func(id string)
	onSave   func(id, displayName string)
	onCancel func(id string)
	onRemove func(id string)
}

// NewDriveCard creates a card for the remote id
func NewDriveCard(id string, localization *Localization) *DriveCard {
	dc := &DriveCard{
		id:           id,
		content:      model.CardContent{RemoteName: id, Title: id},
		view:         model.CardViewState{State: model.CardStateIdle},
		localization: localization,
	}
	dc.ExtendBaseWidget(dc)
	dc.createUI()
	dc.updateFromState()
	return dc
}

// ID returns the remote name of the card
func (dc *DriveCard) ID() string {
	return dc.id
}

// SetDragHandler sets the receiver of drag gestures
func (dc *DriveCard) SetDragHandler(h DragHandler) {
	dc.drag = h
}

// SetCallbacks sets the edit mode callbacks
func (dc *DriveCard) SetCallbacks(
	onEdit func(id string),
	onSave func(id, displayName string),
	onCancel func(id string),
	onRemove func(id string),
) {
	dc.onEdit = onEdit
	dc.onSave = onSave
	dc.onCancel = onCancel
	dc.onRemove = onRemove
}

// Update renders new content and transient state
func (dc *DriveCard) Update(content model.CardContent, dropZone bool, view model.CardViewState, updating bool) {
	wasEditing := dc.view.Editing

	dc.content = content
	dc.dropZone = dropZone
	dc.view = view
	dc.updating = updating

	if view.Editing && !wasEditing {
		dc.nameEntry.SetText(content.Title)
	}
	dc.updateFromState()
	dc.Refresh()
}

// Content returns what the card currently renders
func (dc *DriveCard) Content() model.CardContent {
	return dc.content
}

// IsEditing reports whether the inline editor is shown
func (dc *DriveCard) IsEditing() bool {
	return dc.view.Editing
}

// IsDropZone reports whether the card renders as the hovered drop target
func (dc *DriveCard) IsDropZone() bool {
	return dc.dropZone
}

// createUI creates the UI components
func (dc *DriveCard) createUI() {
	dc.icon = newDriveIcon(model.DriveTypeUnknown)

	dc.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	dc.titleLabel.Truncation = fyne.TextTruncateEllipsis

	dc.remoteLabel = widget.NewLabel("")
	dc.remoteLabel.Importance = widget.LowImportance
	dc.remoteLabel.Truncation = fyne.TextTruncateEllipsis

	dc.statusLabel = widget.NewLabel("")
	dc.statusLabel.Truncation = fyne.TextTruncateEllipsis

	dc.infoLabel = widget.NewLabel("")
	dc.infoLabel.TextStyle = fyne.TextStyle{Monospace: true}

	dc.spinner = widget.NewActivity()
	dc.spinner.Hide()

	dc.gearBtn = widget.NewButton(IconSettings, func() {
		if dc.onEdit != nil {
			dc.onEdit(dc.id)
		}
	})
	dc.gearBtn.Importance = widget.LowImportance

	handle := widget.NewLabel(IconDrag)
	handle.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(dc.spinner, dc.gearBtn, handle),
		container.NewVBox(dc.titleLabel, dc.remoteLabel),
	)
	dc.normalBody = container.NewBorder(nil, nil,
		container.NewCenter(dc.icon), nil,
		container.NewVBox(header, dc.statusLabel, dc.infoLabel),
	)

	dropLabel := widget.NewLabelWithStyle(dc.localization.GetText(KeyDropHere), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	dropLabel.Importance = widget.LowImportance
	dc.dropBody = container.NewCenter(dropLabel)
	dc.dropBody.Hide()

	dc.nameEntry = widget.NewEntry()
	dc.nameEntry.SetPlaceHolder(dc.localization.GetText(KeyDisplayName))
	dc.nameEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", dc.localization.GetText(KeyDisplayNameEmpty))
		}
		return nil
	}
	dc.nameEntry.OnSubmitted = func(string) { dc.saveEdit() }

	dc.saveBtn = widget.NewButton(dc.localization.GetText(KeySave), dc.saveEdit)
	dc.saveBtn.Importance = widget.HighImportance
	dc.cancelBtn = widget.NewButton(dc.localization.GetText(KeyCancel), func() {
		if dc.onCancel != nil {
			dc.onCancel(dc.id)
		}
	})
	dc.removeBtn = widget.NewButton(dc.localization.GetText(KeyRemove), func() {
		if dc.onRemove != nil {
			dc.onRemove(dc.id)
		}
	})
	dc.removeBtn.Importance = widget.DangerImportance

	dc.editBody = container.NewVBox(
		dc.nameEntry,
		container.NewBorder(nil, nil, dc.removeBtn, container.NewHBox(dc.cancelBtn, dc.saveBtn)),
	)
	dc.editBody.Hide()
}

// saveEdit reports a non-blank display name; blank input keeps the editor open
func (dc *DriveCard) saveEdit() {
	name := strings.TrimSpace(dc.nameEntry.Text)
	if name == "" {
		logging.Debug("ignoring blank display name", zap.String("remote", dc.id))
		return
	}
	if dc.onSave != nil {
		dc.onSave(dc.id, name)
	}
}

// updateFromState updates UI components based on content and state
func (dc *DriveCard) updateFromState() {
	c := dc.content

	updateDriveIcon(dc.icon, c.DriveType)
	dc.titleLabel.SetText(sanitizeLine(c.Title))
	dc.remoteLabel.SetText(fmt.Sprintf(RemoteLabelFormat, c.RemoteName))
	dc.statusLabel.SetText(sanitizeLine(c.Status))
	dc.infoLabel.SetText(c.Info)

	switch {
	case dc.updating:
		dc.statusLabel.Importance = widget.WarningImportance
	case strings.HasPrefix(c.Status, cards.StatusErrorPrefix):
		dc.statusLabel.Importance = widget.DangerImportance
	default:
		dc.statusLabel.Importance = widget.MediumImportance
	}
	dc.statusLabel.Refresh()

	if dc.updating {
		dc.spinner.Show()
		dc.spinner.Start()
	} else {
		dc.spinner.Stop()
		dc.spinner.Hide()
	}

	switch {
	case dc.view.Editing:
		dc.normalBody.Hide()
		dc.dropBody.Hide()
		dc.editBody.Show()
	case dc.dropZone:
		dc.normalBody.Hide()
		dc.editBody.Hide()
		dc.dropBody.Show()
	default:
		dc.editBody.Hide()
		dc.dropBody.Hide()
		dc.normalBody.Show()
	}

	if dc.view.State.IsDragging() {
		dc.gearBtn.Disable()
	} else {
		dc.gearBtn.Enable()
	}
}

// Dragged implements fyne.Draggable
func (dc *DriveCard) Dragged(e *fyne.DragEvent) {
	if dc.drag == nil || dc.view.Editing {
		return
	}
	if !dc.dragging {
		if !dc.drag.CardDragStarted(dc.id) {
			return
		}
		dc.dragging = true
	}
	dc.drag.CardDragMoved(dc.id, e.AbsolutePosition)
}

// DragEnd implements fyne.Draggable
func (dc *DriveCard) DragEnd() {
	if !dc.dragging {
		return
	}
	dc.dragging = false
	if dc.drag != nil {
		dc.drag.CardDragEnded(dc.id)
	}
}

// CreateRenderer creates the widget renderer
func (dc *DriveCard) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(ColorNameCardBackground))
	bg.CornerRadius = CardCorner
	bg.StrokeWidth = CardBorder
	bg.StrokeColor = theme.Color(ColorNameCardBorder)

	body := container.NewPadded(container.NewStack(dc.normalBody, dc.dropBody, dc.editBody))
	return &driveCardRenderer{card: dc, background: bg, body: body}
}

// driveCardRenderer draws the rounded card background behind the body
type driveCardRenderer struct {
	card       *DriveCard
	background *canvas.Rectangle
	body       *fyne.Container
}

// Layout arranges the components
func (r *driveCardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.body.Resize(size)
}

// MinSize returns the minimum size
func (r *driveCardRenderer) MinSize() fyne.Size {
	return r.body.MinSize().Max(fyne.NewSize(CardMinWidth, CardMinHeight))
}

// Refresh refreshes the renderer
func (r *driveCardRenderer) Refresh() {
	switch {
	case r.card.dropZone:
		r.background.FillColor = theme.Color(ColorNameDropZone)
		r.background.StrokeColor = theme.Color(theme.ColorNamePrimary)
	case r.card.view.State == model.CardStateDragSource:
		r.background.FillColor = theme.Color(ColorNameCardBackground)
		r.background.StrokeColor = theme.Color(theme.ColorNamePrimary)
	default:
		r.background.FillColor = theme.Color(ColorNameCardBackground)
		r.background.StrokeColor = theme.Color(ColorNameCardBorder)
	}
	r.background.Refresh()
	r.body.Refresh()
}

// Objects returns the container objects
func (r *driveCardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.body}
}

// Destroy cleans up the renderer
func (r *driveCardRenderer) Destroy() {
	r.card.spinner.Stop()
}
