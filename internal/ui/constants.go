package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconFolder   = "📁"
	IconReport   = "📋"
	IconClose    = "×"
	IconSnooze   = "💤"
	IconSkip     = "⏭"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	CountdownFormat    = "%d:%02d"
)

// Break overlay sizing
const (
	BreakWindowWidth  float32 = 720
	BreakWindowHeight float32 = 480
	HeadlineTextSize  float32 = 34
	ActivityTextSize  float32 = 22
	CountdownTextSize float32 = 56
)

// Toast sizing and behavior
const (
	ToastWidth  float32 = 320
	ToastHeight float32 = 120
	// ToastMinVisible keeps a full pre-warning on screen even when the break
	// is only a moment away
	ToastMinVisible = 2 * time.Second
)

// Report window sizing
const (
	ReportWindowWidth  float32 = 520
	ReportWindowHeight float32 = 560
)

// Tray quick actions
const (
	QuickSnoozeMinutes = 5
	QuickPauseShort    = 30
	QuickPauseLong     = 60
)

// Delays
const (
	CountdownTick = time.Second
)
