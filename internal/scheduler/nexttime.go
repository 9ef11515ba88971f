package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/ytget/movebreak/internal/config"
)

// maxAdvanceSteps bounds the "add one interval until future" loop
const maxAdvanceSteps = 64

// WithinActiveHours reports whether t falls in [ActiveFrom, ActiveTo). When
// ActiveFrom is later than ActiveTo the window spans midnight. Equal bounds
// make an empty window.
func WithinActiveHours(t time.Time, s config.Settings) bool {
	return inWindow(config.ClockOf(t).Minutes(), s.ActiveFrom.Minutes(), s.ActiveTo.Minutes())
}

func inWindow(minute, start, end int) bool {
	switch {
	case start < end:
		return minute >= start && minute < end
	case start > end:
		return minute >= start || minute < end
	default:
		return false
	}
}

// NextFire returns the next break time strictly after now. The result lies
// inside the active window, or is the next occurrence of ActiveFrom when
// no slot fits.
func NextFire(now time.Time, s config.Settings) time.Time {
	s = s.Normalize()
	c := advance(candidate(now, s), now, s.IntervalMinutes)
	if WithinActiveHours(c, s) {
		return c
	}
	return nextActiveStart(c, s)
}

// candidate aligns to the trigger pattern without looking at the window
func candidate(now time.Time, s config.Settings) time.Time {
	y, mo, d := now.Date()
	h, m := now.Hour(), now.Minute()
	offset := s.TriggerOffsetMinute

	if s.IntervalMinutes >= 60 {
		hoursPer := s.IntervalMinutes / 60
		hour := h
		if m > offset {
			hour = h + 1
		}
		for hour%hoursPer != 0 {
			hour++
		}
		return time.Date(y, mo, d, hour, offset, 0, 0, now.Location())
	}

	target := offset
	for target <= m {
		target += s.IntervalMinutes
	}
	return time.Date(y, mo, d, h, 0, 0, 0, now.Location()).Add(time.Duration(target) * time.Minute)
}

func advance(c, now time.Time, intervalMinutes int) time.Time {
	step := time.Duration(intervalMinutes) * time.Minute
	for i := 0; !c.After(now) && i < maxAdvanceSteps; i++ {
		c = c.Add(step)
	}
	if !c.After(now) {
		c = now.Truncate(time.Minute).Add(step)
	}
	return c
}

// nextActiveStart returns the first ActiveFrom at or after t
func nextActiveStart(t time.Time, s config.Settings) time.Time {
	start := s.ActiveFrom.On(t)
	if start.Before(t) {
		start = s.ActiveFrom.On(t.AddDate(0, 0, 1))
	}
	return start
}

// PreviewTimes returns the next n fire times after now
func PreviewTimes(now time.Time, s config.Settings, n int) []time.Time {
	out := make([]time.Time, 0, n)
	t := now
	for i := 0; i < n; i++ {
		t = NextFire(t, s)
		out = append(out, t)
	}
	return out
}

// ValidTriggerMinutes lists the offsets allowed for an interval
func ValidTriggerMinutes(intervalMinutes int) []int {
	limit := 60
	if intervalMinutes < 60 {
		limit = max(intervalMinutes, 1)
	}
	out := make([]int, limit)
	for i := range out {
		out[i] = i
	}
	return out
}

// Describe renders the trigger pattern, e.g. "every 30 min at :05 and :35"
func Describe(s config.Settings) string {
	s = s.Normalize()
	interval, offset := s.IntervalMinutes, s.TriggerOffsetMinute

	if interval >= 60 {
		hours := interval / 60
		if hours == 1 {
			return fmt.Sprintf("every hour at :%02d", offset)
		}
		return fmt.Sprintf("every %d hours at :%02d", hours, offset)
	}

	if 60%interval != 0 {
		return fmt.Sprintf("every %d min, starting at :%02d each hour", interval, offset)
	}
	var marks []string
	for m := offset; m < 60; m += interval {
		marks = append(marks, fmt.Sprintf(":%02d", m))
	}
	if len(marks) == 1 {
		return fmt.Sprintf("every %d min at %s", interval, marks[0])
	}
	return fmt.Sprintf("every %d min at %s and %s", interval, strings.Join(marks[:len(marks)-1], ", "), marks[len(marks)-1])
}
