// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/keyboard/register.go
// Summary: Registers the keyboard tile with the tile registry.

package keyboard

import (
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.Factory) {
		return &registry.Manifest{
				Name:        "keyboard",
				DisplayName: "Keyboard",
				Description: "On-screen keyboard with draft line",
			}, func(cfg config.Config) (server.Tile, error) {
				return FromConfig(cfg), nil
			}
	})
}
