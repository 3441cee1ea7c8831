package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/ytget/cloud-drives/internal/model"
)

const (
	AppIcon     = "cloud-drives.png"
	AppIconSize = 64
)

// Drive icon colors by drive type
var driveIconColors = map[string]color.RGBA{
	model.DriveTypeGoogleDrive: {R: 66, G: 133, B: 244, A: 255},
	model.DriveTypeOneDrive:    {R: 0, G: 120, B: 212, A: 255},
	model.DriveTypeDropbox:     {R: 0, G: 126, B: 229, A: 255},
	model.DriveTypeProtonDrive: {R: 255, G: 255, B: 255, A: 255},
}

var (
	fallbackIconColor = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	iconLetterLight   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	iconLetterDark    = color.RGBA{R: 109, G: 74, B: 255, A: 255} // proton purple on white
)

// DriveIconColor returns the circle color for a drive type
func DriveIconColor(driveType string) color.Color {
	if c, ok := driveIconColors[driveType]; ok {
		return c
	}
	return fallbackIconColor
}

// DriveIconLetter returns the letter drawn inside the icon
func DriveIconLetter(driveType string) string {
	if driveType == "" || driveType == model.DriveTypeUnknown {
		return IconUnknown
	}
	r, _ := utf8.DecodeRuneInString(driveType)
	return string(unicode.ToUpper(r))
}

func driveIconLetterColor(driveType string) color.Color {
	if driveType == model.DriveTypeProtonDrive {
		return iconLetterDark
	}
	return iconLetterLight
}

// newDriveIcon builds the colored circle with a letter used on cards
func newDriveIcon(driveType string) *fyne.Container {
	circle := canvas.NewCircle(DriveIconColor(driveType))
	if driveType == model.DriveTypeProtonDrive {
		circle.StrokeColor = iconLetterDark
		circle.StrokeWidth = 1
	}

	letter := canvas.NewText(DriveIconLetter(driveType), driveIconLetterColor(driveType))
	letter.TextStyle = fyne.TextStyle{Bold: true}
	letter.TextSize = CardIconText
	letter.Alignment = fyne.TextAlignCenter

	size := canvas.NewRectangle(color.Transparent)
	size.SetMinSize(fyne.NewSize(CardIconSize, CardIconSize))

	return container.NewStack(size, circle, container.NewCenter(letter))
}

// updateDriveIcon recolors an icon built by newDriveIcon
func updateDriveIcon(icon *fyne.Container, driveType string) {
	if len(icon.Objects) < 3 {
		return
	}
	if circle, ok := icon.Objects[1].(*canvas.Circle); ok {
		circle.FillColor = DriveIconColor(driveType)
		circle.StrokeWidth = 0
		if driveType == model.DriveTypeProtonDrive {
			circle.StrokeColor = iconLetterDark
			circle.StrokeWidth = 1
		}
		circle.Refresh()
	}
	if center, ok := icon.Objects[2].(*fyne.Container); ok && len(center.Objects) > 0 {
		if letter, ok := center.Objects[0].(*canvas.Text); ok {
			letter.Text = DriveIconLetter(driveType)
			letter.Color = driveIconLetterColor(driveType)
			letter.Refresh()
		}
	}
}

var (
	appIconOnce sync.Once
	appIcon     fyne.Resource
)

// AppIconResource returns the window and tray icon, a blue cloud-colored disc
// rendered once at startup
func AppIconResource() fyne.Resource {
	appIconOnce.Do(func() {
		appIcon = fyne.NewStaticResource(AppIcon, renderDisc(AppIconSize, driveIconColors[model.DriveTypeGoogleDrive]))
	})
	return appIcon
}

// renderDisc draws a filled circle on a transparent square and encodes it as PNG
func renderDisc(size int, fill color.RGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size)/2 - 1
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// sanitizeLine keeps single-line labels on one line
func sanitizeLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}
