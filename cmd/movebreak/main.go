package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/viper"

	"github.com/ytget/movebreak/internal/app"
	"github.com/ytget/movebreak/internal/control"
	"github.com/ytget/movebreak/internal/platform"
	"github.com/ytget/movebreak/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID    = "com.ytget.movebreak"
	AppName  = "movebreak"
	AppTitle = "MoveBreak"

	WindowWidth  = 520
	WindowHeight = 360
)

func main() {
	home, err := configHome()
	if err != nil {
		log.Fatalf("%v", err)
	}
	boot, err := setupViper(viper.New(), home)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if len(os.Args) > 1 {
		os.Exit(runCommand(boot, os.Args[1:]))
	}

	if boot.LogFile {
		closeLog, err := setupLogFile(boot.DataFolder)
		if err != nil {
			log.Printf("Log file disabled: %v", err)
		} else {
			defer closeLog()
		}
	}

	log.Printf("%s v%s starting, config %s", AppTitle, version, boot.ConfigPath)

	fa := fyneapp.NewWithID(AppID)
	window := fa.NewWindow(fmt.Sprintf("%s v%s", AppTitle, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	shell := ui.NewRootUI(fa, window)
	core, err := app.New(app.Options{
		DataDir:        boot.DataFolder,
		ControlEnabled: boot.ControlEnabled,
		ExportReports:  boot.ExportReports,
	}, shell)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	shell.Attach(core)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fa.Lifecycle().SetOnStarted(func() { core.Start(ctx) })
	fa.Lifecycle().SetOnStopped(func() {
		shell.Close()
		core.Stop()
	})

	fa.Run()
}

// runCommand handles "movebreak send <command> [payload]" against a running
// instance and returns the exit code
func runCommand(boot bootstrap, args []string) int {
	if args[0] != "send" || len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s send <command> [payload]\n", AppName)
		fmt.Fprintf(os.Stderr, "commands: %s\n", commandList())
		return 2
	}

	cmd, ok := control.ParseCommand(args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q, expected one of: %s\n", args[1], commandList())
		return 2
	}
	payload := strings.Join(args[2:], " ")

	if err := control.Send(filepath.Join(boot.DataFolder, control.DirName), cmd, payload); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func commandList() string {
	names := make([]string, 0, len(control.Commands()))
	for _, c := range control.Commands() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// setupLogFile mirrors the standard logger into <dataDir>/movebreak.log
func setupLogFile(dataDir string) (func(), error) {
	if err := platform.CreateDirectoryIfNotExists(dataDir); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, platform.DefaultFilePermissions)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
