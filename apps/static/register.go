// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/static/register.go
// Summary: Registers the static tile with the tile registry.

package static

import (
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.Factory) {
		return &registry.Manifest{
				Name:        "static",
				DisplayName: "Static",
				Description: "Widgets declared in configuration",
			}, func(cfg config.Config) (server.Tile, error) {
				tile, err := FromConfig(cfg)
				if err != nil {
					return nil, err
				}
				return tile, nil
			}
	})
}
