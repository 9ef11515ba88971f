package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/ytget/movebreak/internal/platform"
)

// Bootstrap config keys
const (
	KeyDataFolder     = "data_folder"
	KeyLogFile        = "log_file"
	KeyControlEnabled = "control_enabled"
	KeyExportReports  = "export_reports"
)

// LogFileName is written inside the data folder when log_file is on
const LogFileName = "movebreak.log"

// bootstrap is the host configuration read before the core starts
type bootstrap struct {
	ConfigPath     string
	DataFolder     string
	LogFile        bool
	ControlEnabled bool
	ExportReports  bool
}

// configHome returns the per-user configuration root
func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(homeDir, "AppData", "Roaming"), nil
	}
	return filepath.Join(homeDir, ".config"), nil
}

// setupViper reads <home>/movebreak/movebreak.yml, creating it with
// defaults when missing
func setupViper(v *viper.Viper, home string) (bootstrap, error) {
	path := filepath.Join(home, AppName, AppName+".yml")
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := os.MkdirAll(filepath.Dir(path), platform.DefaultDirPermissions); err != nil {
		return bootstrap{}, fmt.Errorf("error creating config directory: %w", err)
	}

	v.SetDefault(KeyDataFolder, "~/"+platform.DataDirName)
	v.SetDefault(KeyLogFile, true)
	v.SetDefault(KeyControlEnabled, true)
	v.SetDefault(KeyExportReports, true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			log.Println("Config file not found; creating one with default values")
			if err := v.WriteConfigAs(path); err != nil {
				return bootstrap{}, fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return bootstrap{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return bootstrap{
		ConfigPath:     path,
		DataFolder:     platform.ExpandHome(v.GetString(KeyDataFolder)),
		LogFile:        v.GetBool(KeyLogFile),
		ControlEnabled: v.GetBool(KeyControlEnabled),
		ExportReports:  v.GetBool(KeyExportReports),
	}, nil
}
