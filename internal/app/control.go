package app

import (
	"log"
	"strconv"

	"github.com/ytget/movebreak/internal/control"
)

// HandleCommand runs a request from the control directory
func (a *App) HandleCommand(cmd control.Command, payload string) {
	var err error

	switch cmd {
	case control.CommandTogglePause:
		err = a.TogglePause()
	case control.CommandTriggerBreak:
		a.TriggerNow()
	case control.CommandSkipNext:
		a.SkipNext()
	case control.CommandSnooze:
		minutes, convErr := strconv.Atoi(payload)
		if convErr != nil {
			minutes = DefaultSnoozeMinutes
		}
		a.Snooze(minutes)
	case control.CommandResetSchedule:
		err = a.ResetSchedule()
	case control.CommandShowSettings:
		if a.display != nil {
			a.display.ShowSettings()
		}
	case control.CommandQuit:
		if a.display != nil {
			a.display.Quit()
		}
	default:
		log.Printf("[app] Unhandled command %s", cmd)
	}

	if err != nil {
		log.Printf("[app] Command %s failed: %v", cmd, err)
	}
}

// SettingsChanged reloads settings edited outside the app
func (a *App) SettingsChanged() {
	s, err := a.store.Load()
	if err != nil {
		log.Printf("[app] Failed to reload settings: %v", err)
		return
	}
	if s.Equal(a.Settings()) {
		return
	}
	log.Printf("[app] Settings reloaded from %s", a.store.Path())
	a.apply(s)
}
