// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/manifest.go
// Summary: Tile manifest describing a built-in tile or a configured variant of one.
// Usage: Variants live in <config>/tiles/<name>/manifest.json.

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TileType says how a tile is created.
type TileType string

const (
	// TileTypeBuiltIn uses a factory compiled into the server.
	TileTypeBuiltIn TileType = "built-in"

	// TileTypeWrapper creates a built-in tile with its own settings.
	// Example: "kitchen-photo" = picture with a fixed path and position.
	TileTypeWrapper TileType = "wrapper"
)

// Manifest describes a tile.
type Manifest struct {
	// Name is the identifier used in layout.tiles.
	Name string `json:"name"`

	DisplayName string `json:"displayName,omitempty"`

	Description string `json:"description,omitempty"`

	// Type defaults to "wrapper" for manifests read from disk.
	Type TileType `json:"type,omitempty"`

	// Wraps names the built-in tile a wrapper instantiates.
	Wraps string `json:"wraps,omitempty"`

	// Config replaces the wrapped tile's config section.
	Config map[string]interface{} `json:"config,omitempty"`
}

// LoadManifest reads and parses manifest.json from dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest missing required field: name")
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	if m.Type == "" {
		m.Type = TileTypeWrapper
	}
	return &m, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	switch m.Type {
	case TileTypeWrapper:
		if m.Wraps == "" {
			return fmt.Errorf("wrapper tile must specify 'wraps' field")
		}
		if m.Wraps == m.Name {
			return fmt.Errorf("wrapper tile %q cannot wrap itself", m.Name)
		}
	case TileTypeBuiltIn:
	default:
		return fmt.Errorf("unknown tile type: %s", m.Type)
	}
	return nil
}
