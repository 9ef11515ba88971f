package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/movebreak/internal/app"
	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/platform"
	"github.com/ytget/movebreak/internal/session"
)

// TrayRefreshInterval keeps the tray status text current between events
const TrayRefreshInterval = 30 * time.Second

// RootUI is the desktop shell. It implements app.Display.
type RootUI struct {
	fyneApp fyne.App
	window  fyne.Window
	core    *app.App

	settingsDialog *SettingsDialog

	mu          sync.Mutex
	breakWindow *BreakWindow
	toast       *PreWarningToast
	theme       string
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewRootUI creates the shell around a hidden host window used for dialogs
func NewRootUI(fyneApp fyne.App, window fyne.Window) *RootUI {
	ui := &RootUI{
		fyneApp: fyneApp,
		window:  window,
		stop:    make(chan struct{}),
	}
	window.SetCloseIntercept(window.Hide)
	return ui
}

// Attach connects the shell to the core and builds the tray menu
func (ui *RootUI) Attach(core *app.App) {
	ui.core = core
	ui.settingsDialog = NewSettingsDialog(core, ui.window)
	ui.applyTheme(core.Settings())

	core.SetUpdateCallback(ui.onCoreUpdate)
	ui.refreshTray()

	go func() {
		ticker := time.NewTicker(TrayRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ui.stop:
				return
			case <-ticker.C:
				fyne.Do(ui.refreshTray)
			}
		}
	}()

	log.Printf("[ui] Shell attached")
}

// Close stops background refreshes
func (ui *RootUI) Close() {
	ui.stopOnce.Do(func() { close(ui.stop) })
}

func (ui *RootUI) onCoreUpdate() {
	fyne.Do(func() {
		ui.applyTheme(ui.core.Settings())
		ui.refreshTray()
	})
}

func (ui *RootUI) applyTheme(s config.Settings) {
	ui.mu.Lock()
	changed := ui.theme != s.Theme
	ui.theme = s.Theme
	ui.mu.Unlock()

	if changed {
		ui.fyneApp.Settings().SetTheme(NewCompactTheme(s.Theme))
	}
}

func (ui *RootUI) palette() Palette {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return PaletteFor(ui.theme)
}

// ShowBreak opens the overlay for s
func (ui *RootUI) ShowBreak(s *session.Session) {
	fyne.Do(func() {
		ui.closeToast()

		bw := NewBreakWindow(ui.fyneApp, s, ui.palette(), ui.onBreakComplete, ui.onBreakEscape)
		ui.mu.Lock()
		prev := ui.breakWindow
		ui.breakWindow = bw
		ui.mu.Unlock()

		if prev != nil {
			prev.Escape()
		}
		bw.Show()
	})
}

func (ui *RootUI) onBreakComplete(id string) {
	if err := ui.core.CompleteBreak(id); err != nil {
		log.Printf("[ui] Failed to complete break: %v", err)
	}
}

func (ui *RootUI) onBreakEscape(id string) {
	if err := ui.core.EscapeBreak(id); err != nil {
		log.Printf("[ui] Failed to escape break: %v", err)
	}
}

// ShowPreWarning shows the toast announcing the next break
func (ui *RootUI) ShowPreWarning(secondsRemaining int, s config.Settings) {
	fyne.Do(func() {
		ui.closeToast()

		toast := NewPreWarningToast(ui.fyneApp, PaletteFor(s.Theme), secondsRemaining, s.PreWarningFlash,
			ui.core.TriggerNow,
			func() { ui.core.Snooze(QuickSnoozeMinutes) },
		)
		ui.mu.Lock()
		ui.toast = toast
		ui.mu.Unlock()

		toast.Show(ToastDuration(secondsRemaining, s.PreWarningFlash, s.PreWarningFlashSeconds))
	})
}

func (ui *RootUI) closeToast() {
	ui.mu.Lock()
	toast := ui.toast
	ui.toast = nil
	ui.mu.Unlock()

	if toast != nil {
		toast.Close()
	}
}

// ShowSettings opens the settings dialog
func (ui *RootUI) ShowSettings() {
	fyne.Do(func() {
		ui.window.Show()
		ui.settingsDialog.Show()
	})
}

// Quit exits the application
func (ui *RootUI) Quit() {
	fyne.Do(ui.fyneApp.Quit)
}

// ShowReport opens today's report
func (ui *RootUI) ShowReport() {
	text := widget.NewLabel(ui.core.Summary())
	text.TextStyle = fyne.TextStyle{Monospace: true}

	w := ui.fyneApp.NewWindow("Today's progress")
	w.SetContent(container.NewVScroll(text))
	w.Resize(fyne.NewSize(ReportWindowWidth, ReportWindowHeight))
	w.Show()
}

func (ui *RootUI) refreshTray() {
	desk, ok := ui.fyneApp.(desktop.App)
	if !ok {
		return
	}
	desk.SetSystemTrayMenu(ui.buildTrayMenu(ui.core.Status()))
}

// buildTrayMenu renders the tray menu for a status snapshot
func (ui *RootUI) buildTrayMenu(st app.Status) *fyne.Menu {
	info := func(label string) *fyne.MenuItem {
		item := fyne.NewMenuItem(label, nil)
		item.Disabled = true
		return item
	}

	next := st.NextBreak
	if next == "" {
		next = DashPlaceholder
	}

	pauseItem := fyne.NewMenuItem(IconPause+" Pause", ui.togglePause)
	if st.Paused {
		pauseItem = fyne.NewMenuItem(IconPlay+" Resume", ui.togglePause)
	}

	skipItem := fyne.NewMenuItem(IconSkip+" Skip next break", ui.core.SkipNext)
	skipItem.Checked = st.Scheduler.SkipNext

	return fyne.NewMenu("MoveBreak",
		info(next),
		info(st.StatusLine),
		info(st.CoverageLine),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Take a break now", ui.core.TriggerNow),
		fyne.NewMenuItem(fmt.Sprintf("%s Snooze %d min", IconSnooze, QuickSnoozeMinutes), func() { ui.core.Snooze(QuickSnoozeMinutes) }),
		skipItem,
		pauseItem,
		fyne.NewMenuItem(fmt.Sprintf("Pause for %d min", QuickPauseShort), func() { ui.pauseFor(QuickPauseShort) }),
		fyne.NewMenuItem(fmt.Sprintf("Pause for %d min", QuickPauseLong), func() { ui.pauseFor(QuickPauseLong) }),
		fyne.NewMenuItem("Reset schedule", ui.resetSchedule),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(IconReport+" Today's progress", ui.ShowReport),
		fyne.NewMenuItem("Reset today's progress", ui.confirmResetDailyData),
		fyne.NewMenuItem(IconSettings+" Settings", ui.ShowSettings),
		fyne.NewMenuItem(IconFolder+" Open data folder", ui.openDataFolder),
	)
}

func (ui *RootUI) togglePause() {
	if err := ui.core.TogglePause(); err != nil {
		ui.showError(err)
	}
}

func (ui *RootUI) pauseFor(minutes int) {
	if err := ui.core.PauseFor(minutes); err != nil {
		ui.showError(err)
	}
}

func (ui *RootUI) resetSchedule() {
	if err := ui.core.ResetSchedule(); err != nil {
		ui.showError(err)
	}
}

func (ui *RootUI) confirmResetDailyData() {
	ui.window.Show()
	dialog.ShowConfirm("Reset progress", "Clear today's break and muscle counts?", func(ok bool) {
		if ok {
			ui.core.ResetDailyData()
		}
	}, ui.window)
}

func (ui *RootUI) openDataFolder() {
	if err := platform.OpenFolder(ui.core.DataDir()); err != nil {
		ui.showError(err)
	}
}

func (ui *RootUI) showError(err error) {
	log.Printf("[ui] %v", err)
	ui.window.Show()
	dialog.ShowError(err, ui.window)
}
