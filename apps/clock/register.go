// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/register.go
// Summary: Registers the clock tile with the tile registry.

package clock

import (
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.Factory) {
		return &registry.Manifest{
				Name:        "clock",
				DisplayName: "Clock",
				Description: "Date line refreshed each minute",
			}, func(cfg config.Config) (server.Tile, error) {
				return FromConfig(cfg), nil
			}
	})
}
