package app

import (
	"log"

	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/report"
	"github.com/ytget/movebreak/internal/scheduler"
)

// Status is what the host shows in its tray menu and status line
type Status struct {
	Scheduler    scheduler.Status
	Settings     config.Settings
	Coverage     model.CoverageStats
	Paused       bool
	NextBreak    string
	StatusLine   string
	CoverageLine string
}

// Status returns a snapshot for display. An expired temporary pause is
// cleared on the way.
func (a *App) Status() Status {
	now := a.now()
	if a.Settings().PauseExpired(now) {
		if err := a.Resume(); err != nil {
			log.Printf("[app] Failed to clear expired pause: %v", err)
		}
	}

	cfg := a.Settings()
	sched := a.scheduler.Status()
	stats := a.tracker.CoverageStats()

	st := Status{
		Scheduler:    sched,
		Settings:     cfg,
		Coverage:     stats,
		Paused:       cfg.IsPaused(now),
		StatusLine:   report.StatusLine(now, cfg, stats),
		CoverageLine: report.CoverageLine(stats),
	}

	switch {
	case st.Paused && cfg.PausedUntil != nil:
		st.NextBreak = "Paused until " + cfg.FormatTime(*cfg.PausedUntil)
	case st.Paused:
		st.NextBreak = "Paused"
	case !sched.SnoozeUntil.IsZero():
		st.NextBreak = "Snoozed until " + cfg.FormatTime(sched.SnoozeUntil)
	case !scheduler.WithinActiveHours(now, cfg):
		st.NextBreak = "Outside active hours, next at " + cfg.FormatTime(scheduler.NextFire(now, cfg))
	case !sched.NextFire.IsZero():
		st.NextBreak = "Next break at " + cfg.FormatTime(sched.NextFire)
		if sched.SkipNext {
			st.NextBreak += " (skipped)"
		}
	}
	return st
}
