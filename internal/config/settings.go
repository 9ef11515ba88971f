package config

import (
	"fmt"
	"time"

	"github.com/ytget/movebreak/internal/model"
)

// Settings keys as they appear in config.json
const (
	KeyActiveFrom             = "activeFrom"
	KeyActiveTo               = "activeTo"
	KeyIntervalMinutes        = "intervalMinutes"
	KeyTriggerOffsetMinute    = "triggerOffsetMinute"
	KeyLegacyBreakOffset      = "breakOffsetMinutes"
	KeyLockSeconds            = "lockSeconds"
	KeyActivityType           = "activityType"
	KeyPositionPreference     = "positionPreference"
	KeyPaused                 = "paused"
	KeyPausedUntil            = "pausedUntil"
	KeyPreWarningEnabled      = "preWarningEnabled"
	KeyPreWarningSeconds      = "preWarningSeconds"
	KeyPreWarningFlash        = "preWarningFlash"
	KeyPreWarningFlashSeconds = "preWarningFlashSeconds"
	KeyTheme                  = "theme"
	KeyTimeFormat24h          = "timeFormat24h"
)

// Default values
const (
	DefaultActiveFrom             = "09:00"
	DefaultActiveTo               = "17:00"
	DefaultIntervalMinutes        = 60
	DefaultTriggerOffsetMinute    = 0
	DefaultLockSeconds            = 60
	DefaultActivityType           = model.ActivityBoth
	DefaultPositionPreference     = model.PreferSittingStanding
	DefaultPreWarningEnabled      = true
	DefaultPreWarningSeconds      = 30
	DefaultPreWarningFlash        = true
	DefaultPreWarningFlashSeconds = 3
	DefaultTheme                  = "dark"
	DefaultTimeFormat24h          = true
)

// Limits
const (
	MinIntervalMinutes        = 5
	MaxIntervalMinutes        = 480
	MinLockSeconds            = 30
	MaxLockSeconds            = 180
	MinPreWarningSeconds      = 5
	MaxPreWarningSeconds      = 300
	MinPreWarningFlashSeconds = 1
	MaxPreWarningFlashSeconds = 10
)

// ThemeOptions lists the overlay color themes
var ThemeOptions = []string{"green", "blue", "purple", "dark", "sunset", "pink", "teal", "indigo"}

// Settings is the persisted user configuration
type Settings struct {
	ActiveFrom             Clock                    `json:"activeFrom"`
	ActiveTo               Clock                    `json:"activeTo"`
	IntervalMinutes        int                      `json:"intervalMinutes"`
	TriggerOffsetMinute    int                      `json:"triggerOffsetMinute"`
	LockSeconds            int                      `json:"lockSeconds"`
	ActivityType           model.ActivityType       `json:"activityType"`
	PositionPreference     model.PositionPreference `json:"positionPreference"`
	Paused                 bool                     `json:"paused"`
	PausedUntil            *time.Time               `json:"pausedUntil,omitempty"`
	PreWarningEnabled      bool                     `json:"preWarningEnabled"`
	PreWarningSeconds      int                      `json:"preWarningSeconds"`
	PreWarningFlash        bool                     `json:"preWarningFlash"`
	PreWarningFlashSeconds int                      `json:"preWarningFlashSeconds"`
	Theme                  string                   `json:"theme"`
	TimeFormat24h          bool                     `json:"timeFormat24h"`
}

// Default returns the 9-to-5, hourly, one-minute-break configuration
func Default() Settings {
	return Settings{
		ActiveFrom:             MustParseClock(DefaultActiveFrom),
		ActiveTo:               MustParseClock(DefaultActiveTo),
		IntervalMinutes:        DefaultIntervalMinutes,
		TriggerOffsetMinute:    DefaultTriggerOffsetMinute,
		LockSeconds:            DefaultLockSeconds,
		ActivityType:           DefaultActivityType,
		PositionPreference:     DefaultPositionPreference,
		PreWarningEnabled:      DefaultPreWarningEnabled,
		PreWarningSeconds:      DefaultPreWarningSeconds,
		PreWarningFlash:        DefaultPreWarningFlash,
		PreWarningFlashSeconds: DefaultPreWarningFlashSeconds,
		Theme:                  DefaultTheme,
		TimeFormat24h:          DefaultTimeFormat24h,
	}
}

// Normalize clamps numeric fields into their ranges and maps unknown enum
// values to their defaults.
func (s Settings) Normalize() Settings {
	s.IntervalMinutes = clamp(s.IntervalMinutes, MinIntervalMinutes, MaxIntervalMinutes)
	s.LockSeconds = clamp(s.LockSeconds, MinLockSeconds, MaxLockSeconds)
	s.PreWarningSeconds = clamp(s.PreWarningSeconds, MinPreWarningSeconds, MaxPreWarningSeconds)
	s.PreWarningFlashSeconds = clamp(s.PreWarningFlashSeconds, MinPreWarningFlashSeconds, MaxPreWarningFlashSeconds)

	if s.IntervalMinutes < 60 {
		s.TriggerOffsetMinute = clamp(s.TriggerOffsetMinute, 0, s.IntervalMinutes-1)
	} else {
		s.TriggerOffsetMinute = clamp(s.TriggerOffsetMinute, 0, 59)
	}

	s.ActivityType = model.ParseActivityType(string(s.ActivityType))
	s.PositionPreference = model.ParsePositionPreference(string(s.PositionPreference))

	if !validTheme(s.Theme) {
		s.Theme = DefaultTheme
	}
	if !s.Paused {
		s.PausedUntil = nil
	}
	return s
}

// IsPaused reports whether breaks are suspended at now. A temporary pause
// whose deadline has passed no longer counts.
func (s Settings) IsPaused(now time.Time) bool {
	if !s.Paused {
		return false
	}
	return s.PausedUntil == nil || now.Before(*s.PausedUntil)
}

// PauseExpired reports whether a temporary pause has run out at now
func (s Settings) PauseExpired(now time.Time) bool {
	return s.Paused && s.PausedUntil != nil && !now.Before(*s.PausedUntil)
}

// ScheduleChanged reports whether other differs in a field that moves fire times
func (s Settings) ScheduleChanged(other Settings) bool {
	return s.ActiveFrom != other.ActiveFrom ||
		s.ActiveTo != other.ActiveTo ||
		s.IntervalMinutes != other.IntervalMinutes ||
		s.TriggerOffsetMinute != other.TriggerOffsetMinute
}

// Equal reports field-by-field equality
func (s Settings) Equal(other Settings) bool {
	if (s.PausedUntil == nil) != (other.PausedUntil == nil) {
		return false
	}
	if s.PausedUntil != nil && !s.PausedUntil.Equal(*other.PausedUntil) {
		return false
	}
	a, b := s, other
	a.PausedUntil, b.PausedUntil = nil, nil
	return a == b
}

// FormatClock renders c in the configured 12 or 24 hour style
func (s Settings) FormatClock(c Clock) string {
	if s.TimeFormat24h {
		return c.String()
	}
	period := "AM"
	if c.Hour >= 12 {
		period = "PM"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, period)
}

// FormatTime renders the time of day of t like FormatClock
func (s Settings) FormatTime(t time.Time) string {
	return s.FormatClock(ClockOf(t))
}

// GetActivityTypeOptions returns available activity types
func GetActivityTypeOptions() []model.ActivityType {
	return []model.ActivityType{model.ActivityBoth, model.ActivityStretchOnly, model.ActivityExerciseOnly}
}

// GetPositionPreferenceOptions returns available position preferences
func GetPositionPreferenceOptions() []model.PositionPreference {
	return []model.PositionPreference{
		model.PreferSittingStanding,
		model.PreferAll,
		model.PreferSittingOnly,
		model.PreferStandingOnly,
		model.PreferLyingOnly,
	}
}

func validTheme(name string) bool {
	for _, t := range ThemeOptions {
		if t == name {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
