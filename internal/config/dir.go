// Package config locates and loads monoscope configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// HomeEnv overrides the configuration directory.
	HomeEnv = "MONOSCOPE_CONFIG_HOME"
	// GlobalFileName is the user-wide config file inside Dir.
	GlobalFileName = "config.yaml"

	appName = "monoscope"
)

// Dir returns the monoscope configuration directory, or "" when none can
// be determined. In order: $MONOSCOPE_CONFIG_HOME, $XDG_CONFIG_HOME/monoscope
// (on every platform), %AppData%/monoscope on Windows, ~/.config/monoscope.
func Dir() string {
	return dirFrom(os.Getenv, runtime.GOOS, os.UserHomeDir)
}

func dirFrom(getenv func(string) string, goos string, home func() (string, error)) string {
	if dir := getenv(HomeEnv); dir != "" {
		return dir
	}
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if appData := getenv("APPDATA"); goos == "windows" && appData != "" {
		return filepath.Join(appData, appName)
	}
	if h, err := home(); err == nil && h != "" {
		return filepath.Join(h, ".config", appName)
	}
	return ""
}

// GlobalFile returns the path of the user-wide config file, or "" when no
// config directory can be determined.
func GlobalFile() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, GlobalFileName)
	}
	return ""
}
