package main

import (
	"io"
	"log"
	"path/filepath"

	_ "github.com/framegrace/inkwire/apps/calendar"
	_ "github.com/framegrace/inkwire/apps/clock"
	_ "github.com/framegrace/inkwire/apps/diskspace"
	_ "github.com/framegrace/inkwire/apps/keyboard"
	_ "github.com/framegrace/inkwire/apps/picture"
	_ "github.com/framegrace/inkwire/apps/static"
	_ "github.com/framegrace/inkwire/apps/status"
	_ "github.com/framegrace/inkwire/apps/stopwatch"
	_ "github.com/framegrace/inkwire/apps/tasks"
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/registry"
	"github.com/framegrace/inkwire/server"
)

var defaultLayout = []string{"status", "clock", "tasks", "stopwatch", "diskspace"}

// newRegistry registers the built-in tiles and the wrapper tiles found under
// <config root>/tiles.
func newRegistry() *registry.Registry {
	reg := registry.New()
	registry.RegisterBuiltIns(reg)
	rescan(reg)
	return reg
}

func rescan(reg *registry.Registry) {
	root, err := config.Root()
	if err != nil {
		log.Printf("inkwire: no config root, wrapper tiles disabled: %v", err)
		return
	}
	if err := reg.Scan(filepath.Join(root, "tiles")); err != nil {
		log.Printf("inkwire: scanning wrapper tiles: %v", err)
	}
}

// buildLayout builds the tiles listed in layout.tiles, in draw order. A tile
// that fails to build is skipped with a log line.
func buildLayout(reg *registry.Registry) []server.NamedTile {
	names := config.System().GetStringList("layout", "tiles", defaultLayout)
	tiles := make([]server.NamedTile, 0, len(names))
	for _, name := range names {
		tile, err := reg.Create(name)
		if err != nil {
			log.Printf("inkwire: tile %s disabled: %v", name, err)
			continue
		}
		tiles = append(tiles, server.NamedTile{Name: name, Tile: tile})
	}
	return tiles
}

func closeTiles(tiles []server.NamedTile) {
	for _, t := range tiles {
		if c, ok := t.Tile.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("inkwire: closing tile %s: %v", t.Name, err)
			}
		}
	}
}
