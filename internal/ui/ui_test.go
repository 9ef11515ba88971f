package ui

import (
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/movebreak/internal/app"
	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/session"
)

func TestPaletteFor(t *testing.T) {
	for _, name := range config.ThemeOptions {
		if _, ok := Palettes[name]; !ok {
			t.Errorf("theme %q has no palette", name)
		}
	}

	if got := PaletteFor("nope").Name; got != "Fresh Green" {
		t.Errorf("PaletteFor(unknown) = %q, want Fresh Green", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#047857", color.RGBA{R: 0x04, G: 0x78, B: 0x57, A: 255}},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#fff", color.Black},
		{"#zzzzzz", color.Black},
	}
	for _, tt := range tests {
		if got := parseHexColor(tt.in); got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := map[int]string{0: "0:00", 5: "0:05", 60: "1:00", 135: "2:15", -3: "0:00"}
	for in, want := range tests {
		if got := FormatCountdown(in); got != want {
			t.Errorf("FormatCountdown(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestToastDuration(t *testing.T) {
	if got := ToastDuration(30, true, 3); got != 3*time.Second {
		t.Errorf("flash duration = %v, want 3s", got)
	}
	if got := ToastDuration(30, false, 3); got != 30*time.Second {
		t.Errorf("full duration = %v, want 30s", got)
	}
	if got := ToastDuration(0, false, 3); got != ToastMinVisible {
		t.Errorf("short full duration = %v, want %v", got, ToastMinVisible)
	}
	if got := PreWarningText(1); got != "Break in 1 second" {
		t.Errorf("PreWarningText(1) = %q", got)
	}
}

func TestPreviewText(t *testing.T) {
	s := config.Default()
	now := time.Date(2025, 3, 4, 15, 10, 0, 0, time.Local)

	want := "Breaks every hour at :00. Next: 16:00 · Wed 09:00 · Wed 10:00 · Wed 11:00"
	if got := PreviewText(now, s); got != want {
		t.Errorf("PreviewText() = %q, want %q", got, want)
	}
}

func testSession(seconds int) *session.Session {
	return &session.Session{
		ID:           "break_test",
		BreakSeconds: seconds,
		Activities: []session.Activity{{
			Item: model.ContentItem{
				Kind:        model.KindStretch,
				Description: "Neck tilt",
				Muscles:     []model.MuscleGroup{model.MuscleNeck},
				Position:    model.PositionSitting,
			},
			Dose:            model.Dose{Seconds: 10},
			AllottedSeconds: seconds,
		}},
	}
}

func TestBreakWindow_FirstOutcomeWins(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	var completed, escaped int
	bw := NewBreakWindow(a, testSession(30), PaletteFor("dark"),
		func(string) { completed++ },
		func(string) { escaped++ },
	)

	bw.Escape()
	bw.Complete()
	bw.Escape()

	if escaped != 1 || completed != 0 {
		t.Errorf("escaped=%d completed=%d, want 1 and 0", escaped, completed)
	}
}

func TestBreakWindow_Tick(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	bw := NewBreakWindow(a, testSession(2), PaletteFor("green"), nil, nil)
	if bw.Tick() {
		t.Fatal("countdown ended after one tick")
	}
	if !bw.Tick() {
		t.Fatal("countdown should end after two ticks")
	}
	if bw.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", bw.Remaining())
	}
	if bw.countdown.Text != "0:00" {
		t.Errorf("countdown text = %q, want 0:00", bw.countdown.Text)
	}
}

type stubSettings struct {
	current config.Settings
	saved   []config.Settings
}

func (s *stubSettings) Settings() config.Settings { return s.current }

func (s *stubSettings) UpdateSettings(cfg config.Settings) error {
	s.saved = append(s.saved, cfg)
	s.current = cfg
	return nil
}

func TestSettingsDialog_Collect(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	svc := &stubSettings{current: config.Default()}
	sd := NewSettingsDialog(svc, a.NewWindow("test"))
	sd.loadCurrentSettings()

	sd.intervalEntry.SetText("30")
	sd.offsetSelect.SetSelected(":15")
	sd.positionSelect.SetSelected(positionLabels[model.PreferStandingOnly])
	sd.lockEntry.SetText("90")

	s, err := sd.collect()
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	if s.IntervalMinutes != 30 || s.TriggerOffsetMinute != 15 || s.LockSeconds != 90 {
		t.Errorf("collect() = interval %d offset %d lock %d", s.IntervalMinutes, s.TriggerOffsetMinute, s.LockSeconds)
	}
	if s.PositionPreference != model.PreferStandingOnly {
		t.Errorf("position = %s", s.PositionPreference)
	}
	if len(sd.offsetSelect.Options) != 30 {
		t.Errorf("offset options = %d, want 30", len(sd.offsetSelect.Options))
	}

	sd.onSave(true)
	if len(svc.saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(svc.saved))
	}

	sd.activeFromEntry.SetText("25:00")
	if _, err := sd.collect(); err == nil {
		t.Error("collect() should reject an invalid clock")
	}
}

func TestBuildTrayMenu(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	ui := NewRootUI(a, a.NewWindow("MoveBreak"))
	core, err := app.New(app.Options{DataDir: t.TempDir(), Seed: 1}, ui)
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	ui.Attach(core)
	defer ui.Close()

	menu := ui.buildTrayMenu(core.Status())
	labels := map[string]bool{}
	for _, item := range menu.Items {
		labels[item.Label] = true
	}
	for _, want := range []string{"Take a break now", IconPause + " Pause", IconSettings + " Settings"} {
		if !labels[want] {
			t.Errorf("tray menu is missing %q", want)
		}
	}

	if err := core.TogglePause(); err != nil {
		t.Fatalf("TogglePause() error = %v", err)
	}
	menu = ui.buildTrayMenu(core.Status())
	found := false
	for _, item := range menu.Items {
		if item.Label == IconPlay+" Resume" {
			found = true
		}
	}
	if !found {
		t.Error("paused menu should offer Resume")
	}
}
