package report

import (
	"fmt"
	"time"

	"github.com/ytget/movebreak/internal/config"
	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/scheduler"
)

const minutesPerDay = 24 * 60

// ExpectedBreaks returns how many breaks fit in the active window and how
// many of them should have happened by now.
func ExpectedBreaks(now time.Time, s config.Settings) (total, soFar int) {
	s = s.Normalize()
	from := s.ActiveFrom.Minutes()
	window := (s.ActiveTo.Minutes() - from + minutesPerDay) % minutesPerDay
	total = window / s.IntervalMinutes

	elapsed := (now.Hour()*60 + now.Minute() - from + minutesPerDay) % minutesPerDay
	if elapsed >= window {
		if beforeStart(now, s) {
			return total, 0
		}
		return total, total
	}
	return total, elapsed / s.IntervalMinutes
}

// StatusLine describes today's progress against the expected number of breaks
func StatusLine(now time.Time, s config.Settings, stats model.CoverageStats) string {
	s = s.Normalize()
	total, soFar := ExpectedBreaks(now, s)
	done := stats.Completed

	if !scheduler.WithinActiveHours(now, s) {
		if beforeStart(now, s) {
			return fmt.Sprintf("Work starts at %s (%d breaks planned today)", s.FormatClock(s.ActiveFrom), total)
		}
		if done >= total {
			return fmt.Sprintf("Day complete! %d of %d breaks done", done, total)
		}
		return fmt.Sprintf("Day ended: %d of %d breaks (%d missed)", done, total, total-done)
	}

	remaining := total - done
	if done >= soFar {
		if remaining <= 0 {
			return fmt.Sprintf("All %d breaks complete! Great job!", total)
		}
		if stats.Escaped > 0 {
			return fmt.Sprintf("%d of %d breaks done (%d escaped, %d to go)", done, total, stats.Escaped, remaining)
		}
		return fmt.Sprintf("%d of %d breaks done (%d to go)", done, total, remaining)
	}

	behind := soFar - done
	if stats.Escaped > 0 {
		return fmt.Sprintf("%d of %d breaks done (%d escaped, %d behind)", done, total, stats.Escaped, behind)
	}
	return fmt.Sprintf("%d of %d breaks done (%d behind schedule, %d total remaining)", done, total, behind, remaining)
}

// beforeStart reports whether a same-day window has not opened yet today.
// Overnight windows are never "before start" once outside the window.
func beforeStart(now time.Time, s config.Settings) bool {
	from, to := s.ActiveFrom.Minutes(), s.ActiveTo.Minutes()
	m := now.Hour()*60 + now.Minute()
	return from < to && m < from
}
