package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/model"
)

type harness struct {
	mu       sync.Mutex
	cfg      config.Settings
	clock    time.Time
	fired    int
	warnings []int
	sched    *Scheduler
}

func newHarness(t *testing.T, cfg config.Settings, start time.Time, opts ...Option) *harness {
	t.Helper()
	h := &harness{cfg: cfg, clock: start}
	opts = append([]Option{WithClock(h.now)}, opts...)
	h.sched = New(h.settings, h.trigger, h.preWarn, opts...)
	return h
}

func (h *harness) settings() config.Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

func (h *harness) setSettings(cfg config.Settings) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
}

func (h *harness) now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clock
}

func (h *harness) trigger() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fired++
}

func (h *harness) preWarn(seconds int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.warnings = append(h.warnings, seconds)
}

func (h *harness) fireCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fired
}

// tick moves the fake clock to t and runs one poll
func (h *harness) tick(t time.Time) {
	h.mu.Lock()
	h.clock = t
	h.mu.Unlock()
	h.sched.Tick(t)
}

func TestScheduler_FiresWithPreWarning(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))

	h.tick(at(4, 9, 10, 0))
	st := h.sched.Status()
	assert.Equal(t, model.SchedulerArmed, st.State)
	assert.True(t, st.NextFire.Equal(at(4, 9, 30, 0)))

	h.tick(at(4, 9, 29, 25))
	assert.Empty(t, h.warnings, "35s before fire is outside the 30s warning")

	h.tick(at(4, 9, 29, 31))
	assert.Equal(t, []int{29}, h.warnings)
	assert.Equal(t, model.SchedulerPreWarned, h.sched.Status().State)

	h.tick(at(4, 9, 29, 45))
	assert.Len(t, h.warnings, 1, "warning is shown once")

	h.tick(at(4, 9, 30, 0))
	assert.Equal(t, 1, h.fireCount())
	st = h.sched.Status()
	assert.Equal(t, model.SchedulerFired, st.State)
	assert.True(t, st.NextFire.Equal(at(4, 10, 0, 0)))
	assert.False(t, st.PreWarningShown)

	h.tick(at(4, 9, 30, 1))
	assert.Equal(t, model.SchedulerArmed, h.sched.Status().State)
	assert.Equal(t, 1, h.fireCount())
}

func TestScheduler_PreWarningDisabled(t *testing.T) {
	cfg := settings("09:00", "17:00", 30, 0)
	cfg.PreWarningEnabled = false
	h := newHarness(t, cfg, at(4, 9, 10, 0))

	h.tick(at(4, 9, 10, 0))
	h.tick(at(4, 9, 29, 50))
	h.tick(at(4, 9, 30, 0))

	assert.Empty(t, h.warnings)
	assert.Equal(t, 1, h.fireCount())
}

func TestScheduler_IdleWhilePaused(t *testing.T) {
	cfg := settings("09:00", "17:00", 30, 0)
	cfg.Paused = true
	h := newHarness(t, cfg, at(4, 9, 10, 0))

	h.tick(at(4, 9, 10, 0))
	h.tick(at(4, 9, 30, 0))
	assert.Equal(t, model.SchedulerIdle, h.sched.Status().State)
	assert.Zero(t, h.fireCount())

	cfg.Paused = false
	h.setSettings(cfg)
	h.tick(at(4, 9, 40, 0))

	st := h.sched.Status()
	assert.Equal(t, model.SchedulerArmed, st.State)
	assert.True(t, st.NextFire.Equal(at(4, 10, 0, 0)), "recomputed from the resume time")
	assert.Zero(t, h.fireCount())
}

func TestScheduler_TemporaryPauseExpires(t *testing.T) {
	cfg := settings("09:00", "17:00", 30, 0)
	until := at(4, 9, 45, 0)
	cfg.Paused = true
	cfg.PausedUntil = &until
	h := newHarness(t, cfg, at(4, 9, 10, 0))

	h.tick(at(4, 9, 30, 0))
	assert.Equal(t, model.SchedulerIdle, h.sched.Status().State)

	h.tick(at(4, 9, 45, 0))
	assert.Equal(t, model.SchedulerArmed, h.sched.Status().State)
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 10, 0, 0)))
}

func TestScheduler_IdleOutsideActiveHours(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 60, 0), at(4, 17, 30, 0))

	h.tick(at(4, 17, 30, 0))
	h.tick(at(4, 18, 0, 0))
	assert.Equal(t, model.SchedulerIdle, h.sched.Status().State)
	assert.Zero(t, h.fireCount())

	h.tick(at(5, 9, 0, 0))
	assert.Equal(t, model.SchedulerArmed, h.sched.Status().State)
	assert.True(t, h.sched.Status().NextFire.Equal(at(5, 10, 0, 0)))
}

func TestScheduler_FiresAtWindowStart(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 60, 0), at(4, 16, 30, 0))

	h.tick(at(4, 16, 30, 0))
	require.True(t, h.sched.Status().NextFire.Equal(at(5, 9, 0, 0)))

	h.tick(at(4, 17, 0, 0))
	assert.Equal(t, model.SchedulerIdle, h.sched.Status().State)

	h.tick(at(5, 9, 0, 0))
	assert.Equal(t, 1, h.fireCount())
	assert.True(t, h.sched.Status().NextFire.Equal(at(5, 10, 0, 0)))
}

func TestScheduler_ResumeAfterLongPauseReschedules(t *testing.T) {
	cfg := settings("09:00", "17:00", 30, 0)
	h := newHarness(t, cfg, at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))

	cfg.Paused = true
	h.setSettings(cfg)
	h.tick(at(4, 9, 20, 0))

	cfg.Paused = false
	h.setSettings(cfg)
	h.tick(at(4, 11, 5, 0))

	assert.Zero(t, h.fireCount())
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 11, 30, 0)))
}

func TestScheduler_Snooze(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))
	h.tick(at(4, 9, 29, 40))
	require.Len(t, h.warnings, 1)

	h.sched.Snooze(5)
	st := h.sched.Status()
	assert.Equal(t, model.SchedulerSnoozed, st.State)
	assert.True(t, st.SnoozeUntil.Equal(at(4, 9, 34, 40)))
	assert.False(t, st.PreWarningShown)

	h.tick(at(4, 9, 30, 0))
	h.tick(at(4, 9, 34, 0))
	assert.Zero(t, h.fireCount(), "fire checks are suspended while snoozed")

	h.tick(at(4, 9, 34, 40))
	st = h.sched.Status()
	assert.True(t, st.SnoozeUntil.IsZero())
	assert.True(t, st.NextFire.Equal(at(4, 9, 34, 45)), "quick re-trigger after snooze")

	h.tick(at(4, 9, 34, 45))
	assert.Equal(t, 1, h.fireCount())
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 10, 0, 0)))
}

func TestScheduler_SkipNext(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))

	h.sched.SkipNext()
	assert.True(t, h.sched.Status().SkipNext)

	h.tick(at(4, 9, 30, 0))
	assert.Zero(t, h.fireCount())
	st := h.sched.Status()
	assert.False(t, st.SkipNext, "skip is one-shot")
	assert.True(t, st.NextFire.Equal(at(4, 10, 0, 0)))

	h.tick(at(4, 10, 0, 0))
	assert.Equal(t, 1, h.fireCount())
}

func TestScheduler_SnoozeClearsSkip(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))

	h.sched.SkipNext()
	h.sched.Snooze(1)
	assert.False(t, h.sched.Status().SkipNext)
}

func TestScheduler_TriggerNow(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))

	h.sched.TriggerNow()
	h.tick(at(4, 9, 10, 1))

	assert.Equal(t, 1, h.fireCount())
	assert.Empty(t, h.warnings, "trigger now bypasses the pre-warning")
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 9, 30, 0)))
}

func TestScheduler_ResumeJustAfterPendingFireDoesNotFire(t *testing.T) {
	cfg := settings("09:00", "17:00", 30, 0)
	h := newHarness(t, cfg, at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))
	require.True(t, h.sched.Status().NextFire.Equal(at(4, 9, 30, 0)))

	h.tick(at(4, 9, 29, 25))
	cfg.Paused = true
	h.setSettings(cfg)
	h.tick(at(4, 9, 29, 30))
	assert.Equal(t, model.SchedulerIdle, h.sched.Status().State)

	cfg.Paused = false
	h.setSettings(cfg)
	h.tick(at(4, 9, 30, 40))

	st := h.sched.Status()
	assert.Zero(t, h.fireCount(), "resume never fires a pre-pause time")
	assert.Equal(t, model.SchedulerArmed, st.State)
	assert.True(t, st.NextFire.Equal(at(4, 10, 0, 0)))
	assert.False(t, st.PreWarningShown)
}

func TestScheduler_PauseOutsideWindowStillReschedules(t *testing.T) {
	cfg := settings("09:00", "17:00", 60, 0)
	h := newHarness(t, cfg, at(4, 16, 30, 0))
	h.tick(at(4, 16, 30, 0))
	h.tick(at(4, 17, 0, 0))

	cfg.Paused = true
	h.setSettings(cfg)
	h.tick(at(4, 20, 0, 0))

	cfg.Paused = false
	h.setSettings(cfg)
	h.tick(at(5, 9, 0, 30))

	assert.Zero(t, h.fireCount())
	assert.True(t, h.sched.Status().NextFire.Equal(at(5, 10, 0, 0)))
}

func TestScheduler_TriggerNowKeepsPendingSkip(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))

	h.sched.SkipNext()
	h.sched.TriggerNow()
	h.tick(at(4, 9, 10, 1))

	assert.Equal(t, 1, h.fireCount(), "an explicit trigger always shows a break")
	st := h.sched.Status()
	assert.True(t, st.SkipNext)
	assert.True(t, st.NextFire.Equal(at(4, 9, 30, 0)))

	h.tick(at(4, 9, 30, 0))
	assert.Equal(t, 1, h.fireCount(), "the regular break is still skipped")
	assert.False(t, h.sched.Status().SkipNext)
}

func TestScheduler_Recalculate(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))
	h.tick(at(4, 9, 29, 45))
	require.True(t, h.sched.Status().PreWarningShown)

	h.setSettings(settings("09:00", "17:00", 60, 15))
	h.sched.RecalculateNextFire()

	st := h.sched.Status()
	assert.True(t, st.NextFire.Equal(at(4, 10, 15, 0)))
	assert.False(t, st.PreWarningShown)
}

func TestScheduler_MissedFireIsRescheduled(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(4, 9, 10, 0))
	h.tick(at(4, 9, 10, 0))

	h.tick(at(4, 11, 5, 0))
	assert.Zero(t, h.fireCount())
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 11, 30, 0)))
}

func TestScheduler_ClockMovedBack(t *testing.T) {
	h := newHarness(t, settings("09:00", "17:00", 30, 0), at(6, 9, 10, 0))
	h.tick(at(6, 9, 10, 0))

	h.tick(at(4, 9, 12, 0))
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 9, 30, 0)))
}

func TestScheduler_StartStop(t *testing.T) {
	cfg := settings("00:00", "23:59", 30, 0)
	h := newHarness(t, cfg, at(4, 12, 5, 0), WithPollInterval(5*time.Millisecond))

	h.sched.Start(context.Background())
	assert.True(t, h.sched.Status().NextFire.Equal(at(4, 12, 30, 0)))

	h.sched.TriggerNow()
	require.Eventually(t, func() bool { return h.fireCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	h.sched.Stop()
	h.sched.Stop()

	h.sched.TriggerNow()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, h.fireCount(), "no polling after Stop")
}

func TestScheduler_StopsWithContext(t *testing.T) {
	h := newHarness(t, settings("00:00", "23:59", 30, 0), at(4, 12, 5, 0), WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	h.sched.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		h.sched.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after context cancel")
	}
}
