// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for inkwire configuration.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// rootOverride replaces the user config directory when set.
var rootOverride string

// SetRoot points the store at dir instead of $XDG_CONFIG_HOME/inkwire and
// drops anything already loaded.
func SetRoot(dir string) {
	mu.Lock()
	rootOverride = dir
	mu.Unlock()
	once = sync.Once{}
}

// Root returns the directory holding inkwire.json and apps/.
func Root() (string, error) {
	return configRoot()
}

func configRoot() (string, error) {
	if rootOverride != "" {
		return rootOverride, nil
	}
	if dir := os.Getenv("INKWIRE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "inkwire"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func appConfigPath(app string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("tile name is required")
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apps", app, "config.json"), nil
}
