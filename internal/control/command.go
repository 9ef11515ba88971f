package control

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/movebreak/internal/platform"
)

// DirName is the control directory under the data folder
const DirName = "control"

// Command is a control file name
type Command string

// Commands
const (
	CommandTogglePause   Command = "toggle_pause"
	CommandTriggerBreak  Command = "trigger_break"
	CommandSkipNext      Command = "skip_next"
	CommandSnooze        Command = "snooze"
	CommandResetSchedule Command = "reset_schedule"
	CommandShowSettings  Command = "show_settings"
	CommandQuit          Command = "quit"
)

var commands = []Command{
	CommandTogglePause,
	CommandTriggerBreak,
	CommandSkipNext,
	CommandSnooze,
	CommandResetSchedule,
	CommandShowSettings,
	CommandQuit,
}

// Commands returns every supported command
func Commands() []Command {
	return append([]Command(nil), commands...)
}

// String returns the string representation of Command
func (c Command) String() string {
	return string(c)
}

// IsValid reports whether c is a known command
func (c Command) IsValid() bool {
	for _, known := range commands {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCommand converts a file or argument name into a Command
func ParseCommand(s string) (Command, bool) {
	c := Command(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// Send drops a command file into dir. payload is optional, e.g. the snooze
// length in minutes.
func Send(dir string, cmd Command, payload string) error {
	if !cmd.IsValid() {
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err := platform.WriteFileAtomic(filepath.Join(dir, cmd.String()), []byte(payload)); err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}
	return nil
}

// readAndRemove consumes a command file. ok is false when the file is
// already gone.
func readAndRemove(path string) (payload string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(string(data)), true, nil
}
