package ui

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/session"
)

// BreakWindow is the overlay shown for one break session
type BreakWindow struct {
	window     fyne.Window
	session    *session.Session
	palette    Palette
	onComplete func(id string)
	onEscape   func(id string)

	countdown *canvas.Text
	progress  *widget.ProgressBar

	mu        sync.Mutex
	remaining int
	once      sync.Once
	stop      chan struct{}
}

// NewBreakWindow builds the overlay. onComplete runs when the countdown
// reaches zero and onEscape when the user dismisses the break; exactly one
// of them is called.
func NewBreakWindow(app fyne.App, s *session.Session, palette Palette, onComplete, onEscape func(string)) *BreakWindow {
	bw := &BreakWindow{
		window:     app.NewWindow(s.Headline()),
		session:    s,
		palette:    palette,
		onComplete: onComplete,
		onEscape:   onEscape,
		remaining:  s.BreakSeconds,
		stop:       make(chan struct{}),
	}
	bw.createUI()
	return bw
}

func (bw *BreakWindow) createUI() {
	p := bw.palette

	headline := canvas.NewText(bw.session.Headline(), p.TextPrimary)
	headline.TextSize = HeadlineTextSize
	headline.TextStyle = fyne.TextStyle{Bold: true}
	headline.Alignment = fyne.TextAlignCenter

	lines := container.NewVBox(headline)
	for _, a := range bw.session.Activities {
		lines.Add(bw.activityText(a))
	}
	if bw.session.Benefit != "" {
		lines.Add(bw.secondaryText(bw.session.Benefit))
	}
	if bw.session.Motivation != "" {
		lines.Add(bw.secondaryText(bw.session.Motivation))
	}

	bw.countdown = canvas.NewText(FormatCountdown(bw.remaining), p.Accent)
	bw.countdown.TextSize = CountdownTextSize
	bw.countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	bw.countdown.Alignment = fyne.TextAlignCenter

	bw.progress = widget.NewProgressBar()
	bw.progress.Max = float64(max(bw.session.BreakSeconds, 1))
	bw.progress.TextFormatter = func() string { return "" }

	dismiss := widget.NewButton("I'll do it later", bw.Escape)
	dismiss.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewCenter(lines),
		bw.countdown,
		bw.progress,
		container.NewCenter(dismiss),
	)

	background := canvas.NewRectangle(p.Background)
	bw.window.SetContent(container.NewStack(background, container.NewPadded(container.NewCenter(content))))
	bw.window.Resize(fyne.NewSize(BreakWindowWidth, BreakWindowHeight))
	bw.window.CenterOnScreen()
	bw.window.SetCloseIntercept(bw.Escape)
}

func (bw *BreakWindow) activityText(a session.Activity) *canvas.Text {
	var c color.Color = bw.palette.Accent
	if a.Kind() == model.KindExercise {
		c = bw.palette.AccentSecondary
	}
	t := canvas.NewText(a.Text(), c)
	t.TextSize = ActivityTextSize
	t.Alignment = fyne.TextAlignCenter
	return t
}

func (bw *BreakWindow) secondaryText(s string) *canvas.Text {
	t := canvas.NewText(s, bw.palette.TextSecondary)
	t.Alignment = fyne.TextAlignCenter
	return t
}

// Show displays the overlay and starts the countdown
func (bw *BreakWindow) Show() {
	bw.window.Show()
	bw.window.RequestFocus()
	go bw.run()
}

func (bw *BreakWindow) run() {
	ticker := time.NewTicker(CountdownTick)
	defer ticker.Stop()

	for {
		select {
		case <-bw.stop:
			return
		case <-ticker.C:
			if bw.Tick() {
				bw.Complete()
				return
			}
		}
	}
}

// Tick advances the countdown by one second and reports whether it ran out
func (bw *BreakWindow) Tick() bool {
	bw.mu.Lock()
	if bw.remaining > 0 {
		bw.remaining--
	}
	remaining := bw.remaining
	bw.mu.Unlock()

	elapsed := float64(bw.session.BreakSeconds - remaining)
	fyne.Do(func() {
		bw.countdown.Text = FormatCountdown(remaining)
		bw.countdown.Refresh()
		bw.progress.SetValue(elapsed)
	})
	return remaining == 0
}

// Remaining returns the seconds left on the countdown
func (bw *BreakWindow) Remaining() int {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	return bw.remaining
}

// Complete closes the overlay as finished
func (bw *BreakWindow) Complete() {
	bw.finish(bw.onComplete)
}

// Escape closes the overlay as dismissed
func (bw *BreakWindow) Escape() {
	bw.finish(bw.onEscape)
}

func (bw *BreakWindow) finish(callback func(string)) {
	bw.once.Do(func() {
		close(bw.stop)
		if callback != nil {
			callback(bw.session.ID)
		}
		fyne.Do(bw.window.Close)
		log.Printf("[ui] Break window %s closed", bw.session.ID)
	})
}

// FormatCountdown renders seconds as m:ss
func FormatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf(CountdownFormat, seconds/60, seconds%60)
}
