// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/picture/register.go
// Summary: Registers the picture tile with the tile registry.

package picture

import (
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.Factory) {
		return &registry.Manifest{
				Name:        "picture",
				DisplayName: "Picture",
				Description: "Grayscale image scaled to a box",
			}, func(cfg config.Config) (server.Tile, error) {
				return FromConfig(cfg), nil
			}
	})
}
