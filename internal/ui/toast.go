package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PreWarningToast announces an upcoming break
type PreWarningToast struct {
	window fyne.Window
	flash  bool
}

// PreWarningText is the toast message for a break secondsRemaining away
func PreWarningText(secondsRemaining int) string {
	if secondsRemaining == 1 {
		return "Break in 1 second"
	}
	return fmt.Sprintf("Break in %d seconds", secondsRemaining)
}

// NewPreWarningToast builds the toast. In flash mode it only shows the
// message; otherwise it offers to start the break now or snooze it.
func NewPreWarningToast(app fyne.App, palette Palette, secondsRemaining int, flash bool, onBreakNow, onSnooze func()) *PreWarningToast {
	t := &PreWarningToast{
		window: app.NewWindow("Break coming up"),
		flash:  flash,
	}

	msg := canvas.NewText(PreWarningText(secondsRemaining), palette.TextPrimary)
	msg.TextStyle = fyne.TextStyle{Bold: true}
	msg.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(msg)
	if !flash {
		breakNow := widget.NewButton(IconPlay+" Break now", func() {
			t.Close()
			if onBreakNow != nil {
				onBreakNow()
			}
		})
		breakNow.Importance = widget.HighImportance

		snooze := widget.NewButton(fmt.Sprintf("%s Snooze %d min", IconSnooze, QuickSnoozeMinutes), func() {
			t.Close()
			if onSnooze != nil {
				onSnooze()
			}
		})
		content.Add(container.NewHBox(breakNow, snooze))
	}

	t.window.SetContent(container.NewStack(canvas.NewRectangle(palette.Background), container.NewPadded(container.NewCenter(content))))
	t.window.Resize(fyne.NewSize(ToastWidth, ToastHeight))
	t.window.SetFixedSize(true)
	return t
}

// Show displays the toast and closes it after visible
func (t *PreWarningToast) Show(visible time.Duration) {
	t.window.Show()
	time.AfterFunc(visible, func() {
		fyne.Do(t.Close)
	})
}

// Close hides the toast. Closing twice is harmless.
func (t *PreWarningToast) Close() {
	t.window.Close()
}

// ToastDuration returns how long a pre-warning stays on screen
func ToastDuration(secondsRemaining int, flash bool, flashSeconds int) time.Duration {
	if flash {
		return time.Duration(max(flashSeconds, 1)) * time.Second
	}
	return max(time.Duration(secondsRemaining)*time.Second, ToastMinVisible)
}
