package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/model"
	"github.com/ytget/cloud-drives/internal/platform"
)

// RemoteValidator checks that a manually entered remote exists in rclone
type RemoteValidator interface {
	Validate(ctx context.Context, remoteName string) error
}

// SetupDialog lets the user choose which rclone remotes are shown
type SetupDialog struct {
	window       fyne.Window
	localization *Localization
	validator    RemoteValidator
	list         *setupList

	// UI components
	remoteList  *widget.List
	manualEntry *widget.Entry
	addBtn      *widget.Button
	spinner     *widget.Activity
	statusLabel *widget.Label
	dialog      *dialog.ConfirmDialog

	onDone func(selected []model.RemoteEntry, removed []string)
}

// NewSetupDialog creates the dialog. available is the output of listremotes;
// existing and order come from the config file.
func NewSetupDialog(
	window fyne.Window,
	localization *Localization,
	validator RemoteValidator,
	available []string,
	existing []model.RemoteEntry,
	order []string,
	onDone func(selected []model.RemoteEntry, removed []string),
) *SetupDialog {
	sd := &SetupDialog{
		window:       window,
		localization: localization,
		validator:    validator,
		list:         newSetupList(available, existing, order),
		onDone:       onDone,
	}
	sd.createUI()
	return sd
}

// Show displays the dialog
func (sd *SetupDialog) Show() {
	sd.dialog.Show()
}

// createUI creates the dialog UI
func (sd *SetupDialog) createUI() {
	l := sd.localization

	instructions := widget.NewLabel(l.GetText(KeySetupInstructions))
	instructions.Wrapping = fyne.TextWrapWord

	sd.remoteList = widget.NewList(
		sd.list.Len,
		func() fyne.CanvasObject {
			return widget.NewCheck("", nil)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			item := sd.list.Item(id)
			check := obj.(*widget.Check)
			check.OnChanged = nil
			check.SetText(item.Remote)
			check.SetChecked(item.Checked)
			check.OnChanged = func(on bool) {
				sd.list.SetChecked(id, on)
			}
		},
	)
	listScroll := container.NewVScroll(sd.remoteList)
	listScroll.SetMinSize(fyne.NewSize(SetupDialogWidth-40, SetupListHeight))

	sd.manualEntry = widget.NewEntry()
	sd.manualEntry.SetPlaceHolder(l.GetText(KeyManualRemote))
	sd.manualEntry.OnSubmitted = func(string) { sd.addManual() }

	sd.addBtn = widget.NewButton(l.GetText(KeyAdd), sd.addManual)
	sd.spinner = widget.NewActivity()
	sd.spinner.Hide()
	sd.statusLabel = widget.NewLabel(l.GetText(KeyValidating))
	sd.statusLabel.Importance = widget.LowImportance
	sd.statusLabel.Hide()

	content := container.NewBorder(
		container.NewVBox(instructions, widget.NewLabel(l.GetText(KeyAvailableRemotes))),
		container.NewVBox(
			container.NewBorder(nil, nil, nil, container.NewHBox(sd.spinner, sd.addBtn), sd.manualEntry),
			sd.statusLabel,
		),
		nil, nil,
		listScroll,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySetupTitle),
		l.GetText(KeyOK),
		l.GetText(KeyCancel),
		content,
		sd.onConfirm,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SetupDialogWidth, SetupDialogHeight))
}

// addManual checks an entered remote, validating it with rclone when it is not listed yet
func (sd *SetupDialog) addManual() {
	name := model.NormalizeRemoteName(sd.manualEntry.Text)
	if name == "" {
		return
	}
	if sd.list.CheckIfListed(name) {
		sd.manualEntry.SetText("")
		sd.remoteList.Refresh()
		return
	}

	sd.setValidating(true)
	go func() {
		err := sd.validator.Validate(context.Background(), name)
		fyne.Do(func() {
			sd.setValidating(false)
			sd.onValidated(name, err)
		})
	}()
}

// onValidated adds a valid remote or explains why it was rejected
func (sd *SetupDialog) onValidated(name string, err error) {
	if err == nil {
		sd.list.AddChecked(name)
		sd.manualEntry.SetText("")
		sd.remoteList.Refresh()
		logging.Info("remote added manually", zap.String("remote", name))
		return
	}

	logging.Warn("remote validation failed", zap.String("remote", name), zap.Error(err))
	title, message := validationErrorText(sd.localization, name, err)
	dialog.ShowInformation(title, message, sd.window)
}

// validationErrorText maps a validation failure to a dialog title and message
func validationErrorText(l *Localization, name string, err error) (string, string) {
	switch {
	case errors.Is(err, platform.ErrRemoteNotFound):
		return l.GetText(KeyRemoteNotFound), l.Format(KeyRemoteNotFoundMessage, name)
	case errors.Is(err, platform.ErrCommandTimeout):
		return l.GetText(KeyValidationTimeout), l.Format(KeyValidationTimeoutMsg, name)
	case errors.Is(err, platform.ErrRcloneNotFound):
		return l.GetText(KeyRcloneNotFound), l.GetText(KeyRcloneNotFoundMessage)
	default:
		return l.GetText(KeyValidationError), err.Error()
	}
}

func (sd *SetupDialog) setValidating(on bool) {
	if on {
		sd.addBtn.Disable()
		sd.manualEntry.Disable()
		sd.spinner.Show()
		sd.spinner.Start()
		sd.statusLabel.Show()
		return
	}
	sd.spinner.Stop()
	sd.spinner.Hide()
	sd.statusLabel.Hide()
	sd.manualEntry.Enable()
	sd.addBtn.Enable()
}

// onConfirm reports the selection when the dialog is accepted
func (sd *SetupDialog) onConfirm(accepted bool) {
	if !accepted {
		return
	}
	selected, removed := sd.list.Result()
	logging.Info("setup accepted", zap.Int("selected", len(selected)), zap.Int("removed", len(removed)))
	if sd.onDone != nil {
		sd.onDone(selected, removed)
	}
}
