// Package config locates, loads and validates the wpexport configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the wpexport configuration directory.
//
// Resolution:
//   - $WPEXPORT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/wpexport if set (respects XDG on any platform)
//   - %AppData%/wpexport on Windows
//   - ~/.config/wpexport on macOS and Linux
func Dir() string {
	if dir := os.Getenv("WPEXPORT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wpexport")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wpexport")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wpexport")
}
