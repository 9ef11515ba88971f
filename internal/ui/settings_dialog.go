package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/scheduler"
)

// previewCount is how many upcoming breaks the dialog lists
const previewCount = 4

// SettingsService reads and stores settings
type SettingsService interface {
	Settings() config.Settings
	UpdateSettings(s config.Settings) error
}

var activityTypeLabels = map[model.ActivityType]string{
	model.ActivityBoth:         "Stretches and exercises",
	model.ActivityStretchOnly:  "Stretches only",
	model.ActivityExerciseOnly: "Exercises only",
}

var positionLabels = map[model.PositionPreference]string{
	model.PreferAll:             "Any position",
	model.PreferSittingStanding: "Sitting or standing",
	model.PreferSittingOnly:     "Sitting only",
	model.PreferStandingOnly:    "Standing only",
	model.PreferLyingOnly:       "Lying only",
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	service SettingsService
	window  fyne.Window
	dialog  *dialog.ConfirmDialog
	now     func() time.Time

	// UI components
	activeFromEntry *widget.Entry
	activeToEntry   *widget.Entry
	intervalEntry   *widget.Entry
	offsetSelect    *widget.Select
	lockEntry       *widget.Entry
	activitySelect  *widget.Select
	positionSelect  *widget.Select
	preWarnCheck    *widget.Check
	preWarnEntry    *widget.Entry
	flashCheck      *widget.Check
	flashEntry      *widget.Entry
	themeSelect     *widget.Select
	format24Check   *widget.Check
	previewLabel    *widget.Label
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(service SettingsService, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		service: service,
		window:  window,
		now:     time.Now,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.activeFromEntry = widget.NewEntry()
	sd.activeFromEntry.SetPlaceHolder("HH:MM")
	sd.activeFromEntry.Validator = validateClock
	sd.activeToEntry = widget.NewEntry()
	sd.activeToEntry.SetPlaceHolder("HH:MM")
	sd.activeToEntry.Validator = validateClock

	sd.intervalEntry = widget.NewEntry()
	sd.intervalEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinIntervalMinutes, config.MaxIntervalMinutes))
	sd.offsetSelect = widget.NewSelect(nil, func(string) { sd.updatePreview() })

	sd.activeFromEntry.OnChanged = func(string) { sd.updatePreview() }
	sd.activeToEntry.OnChanged = func(string) { sd.updatePreview() }
	sd.intervalEntry.OnChanged = func(string) {
		sd.refreshOffsets()
		sd.updatePreview()
	}

	sd.lockEntry = widget.NewEntry()
	sd.lockEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinLockSeconds, config.MaxLockSeconds))

	activityOptions := []string{}
	for _, a := range config.GetActivityTypeOptions() {
		activityOptions = append(activityOptions, activityTypeLabels[a])
	}
	sd.activitySelect = widget.NewSelect(activityOptions, nil)

	positionOptions := []string{}
	for _, p := range config.GetPositionPreferenceOptions() {
		positionOptions = append(positionOptions, positionLabels[p])
	}
	sd.positionSelect = widget.NewSelect(positionOptions, nil)

	sd.preWarnEntry = widget.NewEntry()
	sd.preWarnCheck = widget.NewCheck("Warn before each break", nil)
	sd.flashEntry = widget.NewEntry()
	sd.flashCheck = widget.NewCheck("Flash the warning only", nil)

	sd.themeSelect = widget.NewSelect(config.ThemeOptions, nil)
	sd.format24Check = widget.NewCheck("24-hour clock", nil)

	sd.previewLabel = widget.NewLabel("")
	sd.previewLabel.Wrapping = fyne.TextWrapWord

	form := container.NewVBox(
		widget.NewLabel("Schedule"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Active from", sd.activeFromEntry),
			widget.NewFormItem("Active to", sd.activeToEntry),
			widget.NewFormItem("Every (minutes)", sd.intervalEntry),
			widget.NewFormItem("At minute", sd.offsetSelect),
		),
		sd.previewLabel,

		widget.NewSeparator(),
		widget.NewLabel("Breaks"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Length (seconds)", sd.lockEntry),
			widget.NewFormItem("Activities", sd.activitySelect),
			widget.NewFormItem("Position", sd.positionSelect),
		),

		widget.NewSeparator(),
		widget.NewLabel("Warning"),
		widget.NewSeparator(),
		sd.preWarnCheck,
		widget.NewForm(widget.NewFormItem("Seconds ahead", sd.preWarnEntry)),
		sd.flashCheck,
		widget.NewForm(widget.NewFormItem("Flash seconds", sd.flashEntry)),

		widget.NewSeparator(),
		widget.NewLabel("Appearance"),
		widget.NewSeparator(),
		widget.NewForm(widget.NewFormItem("Theme", sd.themeSelect)),
		sd.format24Check,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(520, 620))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	s := sd.service.Settings()

	sd.activeFromEntry.SetText(s.ActiveFrom.String())
	sd.activeToEntry.SetText(s.ActiveTo.String())
	sd.intervalEntry.SetText(strconv.Itoa(s.IntervalMinutes))
	sd.refreshOffsets()
	sd.offsetSelect.SetSelected(offsetLabel(s.TriggerOffsetMinute))
	sd.lockEntry.SetText(strconv.Itoa(s.LockSeconds))
	sd.activitySelect.SetSelected(activityTypeLabels[s.ActivityType])
	sd.positionSelect.SetSelected(positionLabels[s.PositionPreference])
	sd.preWarnCheck.SetChecked(s.PreWarningEnabled)
	sd.preWarnEntry.SetText(strconv.Itoa(s.PreWarningSeconds))
	sd.flashCheck.SetChecked(s.PreWarningFlash)
	sd.flashEntry.SetText(strconv.Itoa(s.PreWarningFlashSeconds))
	sd.themeSelect.SetSelected(s.Theme)
	sd.format24Check.SetChecked(s.TimeFormat24h)
	sd.updatePreview()
}

// refreshOffsets rebuilds the trigger minute options for the typed interval
func (sd *SettingsDialog) refreshOffsets() {
	interval, err := strconv.Atoi(strings.TrimSpace(sd.intervalEntry.Text))
	if err != nil || interval <= 0 {
		interval = config.DefaultIntervalMinutes
	}

	minutes := scheduler.ValidTriggerMinutes(interval)
	options := make([]string, 0, len(minutes))
	for _, m := range minutes {
		options = append(options, offsetLabel(m))
	}
	selected := sd.offsetSelect.Selected
	sd.offsetSelect.Options = options
	if m, ok := parseOffsetLabel(selected); !ok || m >= len(minutes) {
		sd.offsetSelect.ClearSelected()
	}
	sd.offsetSelect.Refresh()
}

func (sd *SettingsDialog) updatePreview() {
	if sd.previewLabel == nil {
		return
	}
	s, err := sd.collect()
	if err != nil {
		sd.previewLabel.SetText(DashPlaceholder)
		return
	}
	sd.previewLabel.SetText(PreviewText(sd.now(), s))
}

// collect reads the form into a copy of the current settings
func (sd *SettingsDialog) collect() (config.Settings, error) {
	s := sd.service.Settings()

	from, err := config.ParseClock(sd.activeFromEntry.Text)
	if err != nil {
		return s, fmt.Errorf("active from: %w", err)
	}
	to, err := config.ParseClock(sd.activeToEntry.Text)
	if err != nil {
		return s, fmt.Errorf("active to: %w", err)
	}
	s.ActiveFrom, s.ActiveTo = from, to

	ints := []struct {
		name  string
		entry *widget.Entry
		dst   *int
	}{
		{"interval", sd.intervalEntry, &s.IntervalMinutes},
		{"break length", sd.lockEntry, &s.LockSeconds},
		{"warning seconds", sd.preWarnEntry, &s.PreWarningSeconds},
		{"flash seconds", sd.flashEntry, &s.PreWarningFlashSeconds},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(f.entry.Text))
		if err != nil {
			return s, fmt.Errorf("%s must be a number", f.name)
		}
		*f.dst = v
	}

	if m, ok := parseOffsetLabel(sd.offsetSelect.Selected); ok {
		s.TriggerOffsetMinute = m
	}
	for a, label := range activityTypeLabels {
		if label == sd.activitySelect.Selected {
			s.ActivityType = a
		}
	}
	for p, label := range positionLabels {
		if label == sd.positionSelect.Selected {
			s.PositionPreference = p
		}
	}
	s.PreWarningEnabled = sd.preWarnCheck.Checked
	s.PreWarningFlash = sd.flashCheck.Checked
	if sd.themeSelect.Selected != "" {
		s.Theme = sd.themeSelect.Selected
	}
	s.TimeFormat24h = sd.format24Check.Checked

	return s.Normalize(), nil
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	s, err := sd.collect()
	if err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	if err := sd.service.UpdateSettings(s); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}

	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}

// PreviewText describes the trigger pattern and lists the next breaks
func PreviewText(now time.Time, s config.Settings) string {
	times := scheduler.PreviewTimes(now, s, previewCount)
	parts := make([]string, 0, len(times))
	for _, t := range times {
		label := s.FormatTime(t)
		if t.YearDay() != now.YearDay() || t.Year() != now.Year() {
			label = t.Format("Mon") + " " + label
		}
		parts = append(parts, label)
	}
	return fmt.Sprintf("Breaks %s. Next: %s", scheduler.Describe(s), strings.Join(parts, MiddleDotSeparator))
}

func validateClock(s string) error {
	_, err := config.ParseClock(s)
	return err
}

func offsetLabel(minute int) string {
	return fmt.Sprintf(":%02d", minute)
}

func parseOffsetLabel(s string) (int, bool) {
	m, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
	if err != nil || m < 0 {
		return 0, false
	}
	return m, true
}
