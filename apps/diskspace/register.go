// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/diskspace/register.go
// Summary: Registers the diskspace tile with the tile registry.

package diskspace

import (
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.Factory) {
		return &registry.Manifest{
				Name:        "diskspace",
				DisplayName: "Disk space",
				Description: "Free space of one filesystem",
			}, func(cfg config.Config) (server.Tile, error) {
				return FromConfig(cfg), nil
			}
	})
}
