// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration files.

package defaults

import (
	"embed"
	"fmt"
)

//go:embed inkwire.json apps/*/config.json
var fs embed.FS

// SystemConfig returns the embedded system config JSON.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("inkwire.json")
}

// AppConfig returns the embedded config JSON for the named tile.
func AppConfig(app string) ([]byte, error) {
	if app == "" {
		return nil, fmt.Errorf("tile name is required")
	}
	return fs.ReadFile(fmt.Sprintf("apps/%s/config.json", app))
}
