package scheduler

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/model"
)

// Timing constants
const (
	DefaultPollInterval  = time.Second
	SnoozeRetriggerDelay = 5 * time.Second
	// MissedFireTolerance is how late a fire may be noticed and still run.
	// Later than that (sleep, clock jump) the break is dropped and rescheduled.
	MissedFireTolerance = time.Minute
)

// Status is a snapshot of the scheduler state
type Status struct {
	State           model.SchedulerState
	NextFire        time.Time
	SnoozeUntil     time.Time
	SkipNext        bool
	PreWarningShown bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithPollInterval overrides the poll period
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.poll = d
		}
	}
}

// Scheduler fires break callbacks according to the current settings
type Scheduler struct {
	settings     func() config.Settings
	onTrigger    func()
	onPreWarning func(secondsRemaining int)
	now          func() time.Time
	poll         time.Duration

	mu              sync.Mutex
	state           model.SchedulerState
	idle            bool
	idleFromPause   bool
	nextFire        time.Time
	forced          bool
	preWarningShown bool
	snoozeUntil     time.Time
	skipNext        bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a scheduler. settings is read on every tick; onTrigger and
// onPreWarning are called from the scheduler goroutine without locks held.
func New(settings func() config.Settings, onTrigger func(), onPreWarning func(int), opts ...Option) *Scheduler {
	s := &Scheduler{
		settings:     settings,
		onTrigger:    onTrigger,
		onPreWarning: onPreWarning,
		now:          time.Now,
		poll:         DefaultPollInterval,
		state:        model.SchedulerIdle,
		idle:         true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start computes the first fire time and begins polling until ctx is done
// or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel != nil {
		return
	}

	now := s.now()
	cfg := s.settings()
	s.mu.Lock()
	s.recalculate(now, cfg)
	s.idle = cfg.IsPaused(now) || !WithinActiveHours(now, cfg)
	s.idleFromPause = cfg.IsPaused(now)
	if s.idle {
		s.state = model.SchedulerIdle
	}
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)

	log.Printf("[scheduler] Started, next break at %s", s.Status().NextFire.Format(time.DateTime))
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(s.now())
		}
	}
}

// Stop ends polling and waits for the loop to exit
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	log.Printf("[scheduler] Stopped")
}

// Tick evaluates the state machine once at now
func (s *Scheduler) Tick(now time.Time) {
	cfg := s.settings()

	fire := false
	warnSeconds := 0

	s.mu.Lock()
	if paused := cfg.IsPaused(now); paused || !WithinActiveHours(now, cfg) {
		if !s.idle {
			log.Printf("[scheduler] Idle (paused=%v)", paused)
		}
		s.idle = true
		s.idleFromPause = s.idleFromPause || paused
		s.state = model.SchedulerIdle
		s.mu.Unlock()
		return
	}

	if s.idle {
		s.idle = false
		// Leaving a pause always reschedules from now. Only the window
		// opening keeps a pending fire, such as the window start itself.
		fromPause := s.idleFromPause
		s.idleFromPause = false
		if fromPause || s.nextFire.IsZero() || now.Sub(s.nextFire) > MissedFireTolerance {
			s.recalculate(now, cfg)
		} else {
			s.state = model.SchedulerArmed
		}
		log.Printf("[scheduler] Armed, next break at %s", s.nextFire.Format(time.DateTime))
	}
	if s.state == model.SchedulerFired {
		s.state = model.SchedulerArmed
	}
	if lead := s.nextFire.Sub(now); lead > maxLead(cfg) {
		log.Printf("[scheduler] Next break %s ahead, clock moved back, rescheduling", lead.Round(time.Second))
		s.recalculate(now, cfg)
	}

	if !s.snoozeUntil.IsZero() {
		if now.Before(s.snoozeUntil) {
			s.state = model.SchedulerSnoozed
			s.mu.Unlock()
			return
		}
		s.snoozeUntil = time.Time{}
		s.nextFire = now.Add(SnoozeRetriggerDelay)
		s.preWarningShown = false
		s.state = model.SchedulerArmed
	}

	switch {
	case !now.Before(s.nextFire):
		late := now.Sub(s.nextFire)
		switch {
		case late > MissedFireTolerance:
			log.Printf("[scheduler] Break at %s missed by %s, rescheduling", s.nextFire.Format(time.DateTime), late.Round(time.Second))
		case s.forced:
			// skipNext stays pending for the regular break
			fire = true
		case s.skipNext:
			s.skipNext = false
			log.Printf("[scheduler] Skipping break at %s", s.nextFire.Format(time.DateTime))
		default:
			fire = true
		}
		s.nextFire = NextFire(now, cfg)
		s.preWarningShown = false
		s.forced = false
		s.state = model.SchedulerArmed
		if fire {
			s.state = model.SchedulerFired
		}
	case cfg.PreWarningEnabled && !s.preWarningShown:
		remaining := s.nextFire.Sub(now)
		if remaining > 0 && remaining <= time.Duration(cfg.PreWarningSeconds)*time.Second {
			s.preWarningShown = true
			s.state = model.SchedulerPreWarned
			warnSeconds = int(math.Ceil(remaining.Seconds()))
		}
	}
	next := s.nextFire
	s.mu.Unlock()

	if warnSeconds > 0 && s.onPreWarning != nil {
		s.onPreWarning(warnSeconds)
	}
	if fire {
		log.Printf("[scheduler] Break fired, next at %s", next.Format(time.DateTime))
		if s.onTrigger != nil {
			s.onTrigger()
		}
	}
}

// maxLead is the furthest a valid fire time can be from now
func maxLead(cfg config.Settings) time.Duration {
	return time.Duration(cfg.IntervalMinutes)*time.Minute + 24*time.Hour
}

// recalculate discards the pending fire time and computes a fresh one.
// Callers hold s.mu.
func (s *Scheduler) recalculate(now time.Time, cfg config.Settings) {
	s.nextFire = NextFire(now, cfg)
	s.preWarningShown = false
	s.snoozeUntil = time.Time{}
	s.forced = false
	if !s.idle {
		s.state = model.SchedulerArmed
	}
}

// Snooze postpones the break by minutes. On expiry the break fires a few
// seconds later without a full reschedule.
func (s *Scheduler) Snooze(minutes int) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snoozeUntil = now.Add(time.Duration(max(minutes, 1)) * time.Minute)
	s.preWarningShown = false
	s.skipNext = false
	s.forced = false
	if !s.idle {
		s.state = model.SchedulerSnoozed
	}
	log.Printf("[scheduler] Snoozed until %s", s.snoozeUntil.Format(time.DateTime))
}

// TriggerNow makes the next poll fire immediately, without a pre-warning.
// A pending SkipNext is not consumed and applies to the following break.
func (s *Scheduler) TriggerNow() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFire = now
	s.forced = true
	s.preWarningShown = true
	s.snoozeUntil = time.Time{}
}

// SkipNext suppresses the next fire once
func (s *Scheduler) SkipNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.skipNext = true
	log.Printf("[scheduler] Next break at %s will be skipped", s.nextFire.Format(time.DateTime))
}

// ClearSkip withdraws a pending SkipNext
func (s *Scheduler) ClearSkip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipNext = false
}

// RecalculateNextFire recomputes the schedule from the current settings and clock
func (s *Scheduler) RecalculateNextFire() {
	now := s.now()
	cfg := s.settings()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.recalculate(now, cfg)
	log.Printf("[scheduler] Recalculated, next break at %s", s.nextFire.Format(time.DateTime))
}

// Status returns a snapshot of the scheduler state
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{
		State:           s.state,
		NextFire:        s.nextFire,
		SnoozeUntil:     s.snoozeUntil,
		SkipNext:        s.skipNext,
		PreWarningShown: s.preWarningShown,
	}
}
