package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconAdd      = "+"
	IconUnknown  = "?"
	IconDrag     = "☰"
)

// Text fragments
const (
	RemoteLabelFormat = "Remote: %s"
	WindowTitleFormat = "%s v%s"
)

// Layout sizing (DriveCard / lists)
const (
	CardMinWidth  float32 = 320
	CardMinHeight float32 = 120
	CardIconSize  float32 = 44
	CardIconText  float32 = 20
	CardCorner    float32 = 10
	CardBorder    float32 = 2

	SetupDialogWidth  float32 = 420
	SetupDialogHeight float32 = 520
	SetupListHeight   float32 = 300
)

// Settings page limits
const (
	MinRefreshMinutes     = 1
	MaxRefreshMinutes     = 1440
	DefaultRefreshMinutes = 5
)

// Timings
const (
	// RelativeTimeTick is how often "Last updated: x ago" texts are recomputed
	RelativeTimeTick = time.Minute

	// InitialRefreshDelay postpones the first refresh until the window is shown
	InitialRefreshDelay = time.Second
)
