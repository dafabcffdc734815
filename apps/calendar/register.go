// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/calendar/register.go
// Summary: Registers the calendar tile with the tile registry.

package calendar

import (
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.Factory) {
		return &registry.Manifest{
				Name:        "calendar",
				DisplayName: "Calendar",
				Description: "Month grid paged with hardware buttons",
			}, func(cfg config.Config) (server.Tile, error) {
				return FromConfig(cfg), nil
			}
	})
}
