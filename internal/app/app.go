package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron"

	"github.com/ytget/movebreak/internal/catalog"
	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/control"
	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/platform"
	"github.com/ytget/movebreak/internal/report"
	"github.com/ytget/movebreak/internal/scheduler"
	"github.com/ytget/movebreak/internal/selector"
	"github.com/ytget/movebreak/internal/session"
	"github.com/ytget/movebreak/internal/tracker"
)

// Background jobs
const (
	AutosaveSpec = "@every 5m"
	DayCloseSpec = "@midnight"
)

const (
	// ReportsDirName holds the exported day workbooks
	ReportsDirName = "reports"

	// DefaultSnoozeMinutes is used when a snooze request names no length
	DefaultSnoozeMinutes = 5

	// abandonGrace is added to a break's length before a still pending
	// session is treated as abandoned by the host
	abandonGrace = time.Minute
)

// Display renders what the core composes. Calls arrive on background
// goroutines.
type Display interface {
	ShowBreak(s *session.Session)
	ShowPreWarning(secondsRemaining int, settings config.Settings)
	ShowSettings()
	Quit()
}

// Options configures an App
type Options struct {
	DataDir        string
	ControlEnabled bool
	ExportReports  bool

	// Optional overrides, mostly for tests
	Catalog      *catalog.Catalog
	Clock        func() time.Time
	Seed         uint64
	PollInterval time.Duration
}

// App is the composition root of the break engine
type App struct {
	opts    Options
	now     func() time.Time
	display Display

	store     *config.Store
	tracker   *tracker.Tracker
	selector  *selector.Selector
	composer  *session.Composer
	scheduler *scheduler.Scheduler
	watcher   *control.Watcher
	cron      *cron.Cron

	mu       sync.RWMutex
	settings config.Settings
	dirty    bool
	onUpdate func()

	runMu   sync.Mutex
	running bool
}

// New loads persisted state from opts.DataDir and wires the components
func New(opts Options, display Display) (*App, error) {
	if opts.DataDir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := platform.CreateDirectoryIfNotExists(opts.DataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{
		opts:    opts,
		now:     opts.Clock,
		display: display,
	}
	if a.now == nil {
		a.now = time.Now
	}

	a.store = config.NewStore(filepath.Join(opts.DataDir, config.FileName))
	settings, err := a.store.Load()
	if err != nil {
		log.Printf("[app] Warning: %v, using defaults", err)
	}
	a.settings = settings

	cat := opts.Catalog
	if cat == nil {
		if cat, err = catalog.Load(); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	a.tracker = tracker.New(filepath.Join(opts.DataDir, tracker.FileName), tracker.WithClock(a.now))
	if opts.ExportReports {
		a.tracker.SetRolloverCallback(a.exportDay)
	}

	a.selector = selector.New(cat, a.tracker, settings.PositionPreference,
		selector.WithRand(rand.New(rand.NewPCG(seed, 1))))

	a.composer = session.NewComposer(a.selector, a.tracker,
		session.WithFlavor(cat),
		session.WithClock(a.now),
		session.WithRand(rand.New(rand.NewPCG(seed, 2))))
	a.composer.SetUpdateCallback(a.sessionFinished)

	schedOpts := []scheduler.Option{scheduler.WithClock(a.now)}
	if opts.PollInterval > 0 {
		schedOpts = append(schedOpts, scheduler.WithPollInterval(opts.PollInterval))
	}
	a.scheduler = scheduler.New(a.Settings, a.onTrigger, a.onPreWarning, schedOpts...)

	a.cron = cron.New()
	if err := a.cron.AddFunc(AutosaveSpec, a.autosave); err != nil {
		return nil, fmt.Errorf("failed to schedule autosave: %w", err)
	}
	if err := a.cron.AddFunc(DayCloseSpec, a.closeDay); err != nil {
		return nil, fmt.Errorf("failed to schedule day close: %w", err)
	}

	if opts.ControlEnabled {
		a.watcher, err = control.NewWatcher(filepath.Join(opts.DataDir, control.DirName), a.store.Path(), a)
		if err != nil {
			log.Printf("[app] Control channel disabled: %v", err)
			a.watcher = nil
		}
	}

	return a, nil
}

// Start begins scheduling, background jobs and the control channel
func (a *App) Start(ctx context.Context) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.running {
		return
	}
	a.running = true

	a.scheduler.Start(ctx)
	a.cron.Start()
	if a.watcher != nil {
		a.watcher.Start(ctx)
	}
	log.Printf("[app] Started with data in %s", a.opts.DataDir)
}

// Stop halts background work and flushes unsaved settings
func (a *App) Stop() {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if !a.running {
		return
	}
	a.running = false

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[app] Failed to close control watcher: %v", err)
		}
	}
	a.cron.Stop()
	a.scheduler.Stop()
	a.autosave()
	log.Printf("[app] Stopped")
}

// SetUpdateCallback sets the function called after any state change the
// host may want to redraw
func (a *App) SetUpdateCallback(callback func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = callback
}

func (a *App) notify() {
	a.mu.RLock()
	callback := a.onUpdate
	a.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// Settings returns the current settings
func (a *App) Settings() config.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// DataDir returns the data directory
func (a *App) DataDir() string {
	return a.opts.DataDir
}

// ControlDir returns the control directory, or "" when the channel is off
func (a *App) ControlDir() string {
	if a.watcher == nil {
		return ""
	}
	return a.watcher.Dir()
}

// UpdateSettings normalizes, applies and persists s. The new settings stay
// in effect when saving fails.
func (a *App) UpdateSettings(s config.Settings) error {
	a.apply(s)

	if err := a.store.Save(a.Settings()); err != nil {
		a.mu.Lock()
		a.dirty = true
		a.mu.Unlock()
		return fmt.Errorf("failed to save settings: %w", err)
	}
	a.mu.Lock()
	a.dirty = false
	a.mu.Unlock()
	return nil
}

// apply swaps in s and propagates the parts other components cache
func (a *App) apply(s config.Settings) {
	s = s.Normalize()

	a.mu.Lock()
	old := a.settings
	a.settings = s
	a.mu.Unlock()

	if old.PositionPreference != s.PositionPreference {
		a.selector.SetPositionPreference(s.PositionPreference)
	}
	if old.ScheduleChanged(s) {
		a.scheduler.RecalculateNextFire()
	}
	if !old.Equal(s) {
		log.Printf("[app] Settings updated")
		a.notify()
	}
}

// TogglePause flips the permanent pause and drops any pause deadline
func (a *App) TogglePause() error {
	s := a.Settings()
	s.Paused = !s.Paused
	s.PausedUntil = nil
	log.Printf("[app] Paused: %v", s.Paused)
	return a.UpdateSettings(s)
}

// PauseFor pauses reminders for minutes
func (a *App) PauseFor(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("invalid pause length %d", minutes)
	}
	until := a.now().Add(time.Duration(minutes) * time.Minute)
	s := a.Settings()
	s.Paused = true
	s.PausedUntil = &until
	log.Printf("[app] Paused until %s", until.Format(time.DateTime))
	return a.UpdateSettings(s)
}

// Resume lifts any pause
func (a *App) Resume() error {
	s := a.Settings()
	if !s.Paused {
		return nil
	}
	s.Paused = false
	s.PausedUntil = nil
	log.Printf("[app] Resumed")
	return a.UpdateSettings(s)
}

// ResetSchedule clears the skip flag and every pause, then recalculates
func (a *App) ResetSchedule() error {
	a.scheduler.ClearSkip()
	s := a.Settings()
	s.Paused = false
	s.PausedUntil = nil
	err := a.UpdateSettings(s)
	a.scheduler.RecalculateNextFire()
	a.notify()
	return err
}

// SkipNext suppresses the next scheduled break once
func (a *App) SkipNext() {
	a.scheduler.SkipNext()
	a.notify()
}

// Snooze postpones the upcoming break
func (a *App) Snooze(minutes int) {
	if minutes <= 0 {
		minutes = DefaultSnoozeMinutes
	}
	a.scheduler.Snooze(minutes)
	a.notify()
}

// TriggerNow shows a break right away. While the scheduler is idle (paused
// or outside active hours) the break is shown directly.
func (a *App) TriggerNow() {
	if a.scheduler.Status().State == model.SchedulerIdle {
		a.showBreak()
		return
	}
	a.scheduler.TriggerNow()
}

// ResetDailyData clears today's counters
func (a *App) ResetDailyData() {
	a.tracker.Reset()
	a.notify()
}

// CompleteBreak records that the countdown of session id finished
func (a *App) CompleteBreak(id string) error {
	ok, err := a.composer.Complete(id)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("[app] Session %s already finished", id)
	}
	return nil
}

// EscapeBreak records that session id was dismissed early
func (a *App) EscapeBreak(id string) error {
	ok, err := a.composer.Escape(id)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("[app] Session %s already finished", id)
	}
	return nil
}

// CurrentBreak returns the pending session, if any
func (a *App) CurrentBreak() (*session.Session, error) {
	return a.composer.Active()
}

// Summary renders today's report
func (a *App) Summary() string {
	record := a.tracker.Record()
	return report.DailyReport(record, tracker.StatsOf(record))
}

// MuscleCounts returns today's per-group counts
func (a *App) MuscleCounts() map[model.MuscleGroup]int {
	return a.tracker.MuscleCounts()
}

func (a *App) onTrigger() {
	if s, err := a.composer.Active(); err == nil {
		deadline := s.CreatedAt.Add(time.Duration(s.BreakSeconds)*time.Second + abandonGrace)
		if a.now().Before(deadline) {
			log.Printf("[app] Break %s still on screen, skipping trigger", s.ID)
			return
		}
	}
	a.showBreak()
}

func (a *App) showBreak() {
	cfg := a.Settings()
	s := a.composer.Compose(cfg.LockSeconds, cfg.ActivityType)
	if a.display != nil {
		a.display.ShowBreak(s)
	}
	a.notify()
}

func (a *App) onPreWarning(secondsRemaining int) {
	if a.display != nil {
		a.display.ShowPreWarning(secondsRemaining, a.Settings())
	}
}

func (a *App) sessionFinished(s *session.Session) {
	log.Printf("[app] Break %s %s", s.ID, s.Outcome())
	a.notify()
}

// autosave clears an expired pause, runs the rollover check and retries a
// failed settings save
func (a *App) autosave() {
	if a.Settings().PauseExpired(a.now()) {
		if err := a.Resume(); err != nil {
			log.Printf("[app] Autosave: %v", err)
		}
	}
	a.tracker.Refresh()

	a.mu.RLock()
	dirty := a.dirty
	a.mu.RUnlock()
	if !dirty {
		return
	}
	if err := a.UpdateSettings(a.Settings()); err != nil {
		log.Printf("[app] Autosave: %v", err)
	}
}

// closeDay runs at midnight. The rollover callback does the export.
func (a *App) closeDay() {
	if _, rolled := a.tracker.Refresh(); rolled {
		a.notify()
	}
}

func (a *App) exportDay(prev model.DailyRecord) {
	if prev.BreaksShown == 0 {
		return
	}
	path := filepath.Join(a.opts.DataDir, ReportsDirName, report.ExportFileName(prev.Date))
	if err := report.ExportXLSX(prev, path); err != nil {
		log.Printf("[app] Failed to export %s: %v", prev.Date, err)
	}
}
