// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Registry of tile factories: built-ins plus wrapper variants found on disk.
// Usage: The server resolves each name in layout.tiles through Create.

package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/server"
)

// Factory creates a tile from its configuration.
type Factory func(cfg config.Config) (server.Tile, error)

// Entry is a known tile with its metadata and factory.
type Entry struct {
	Manifest *Manifest
	Dir      string
	Factory  Factory
}

// Registry manages the available tiles.
type Registry struct {
	mu       sync.RWMutex
	builtIn  map[string]*Entry
	wrappers map[string]*Entry
}

func New() *Registry {
	return &Registry{
		builtIn:  make(map[string]*Entry),
		wrappers: make(map[string]*Entry),
	}
}

// RegisterBuiltIn registers a tile compiled into the binary. Built-ins win
// over wrappers of the same name.
func (r *Registry) RegisterBuiltIn(manifest *Manifest, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	manifest.Type = TileTypeBuiltIn
	if manifest.DisplayName == "" {
		manifest.DisplayName = manifest.Name
	}
	r.builtIn[manifest.Name] = &Entry{Manifest: manifest, Factory: factory}
}

// Scan loads wrapper manifests from the subdirectories of baseDir. A missing
// directory is not an error.
func (r *Registry) Scan(baseDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wrappers = make(map[string]*Entry)

	entries, err := os.ReadDir(baseDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read tile directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, entry.Name())
		if err := r.loadWrapper(dir); err != nil {
			log.Printf("registry: skipping %s: %v", dir, err)
		}
	}
	log.Printf("registry: %d built-in tiles, %d wrappers", len(r.builtIn), len(r.wrappers))
	return nil
}

func (r *Registry) loadWrapper(dir string) error {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("validate manifest: %w", err)
	}
	if manifest.Type != TileTypeWrapper {
		return fmt.Errorf("only wrapper tiles can be declared on disk, got %s", manifest.Type)
	}
	r.wrappers[manifest.Name] = &Entry{Manifest: manifest, Dir: dir}
	return nil
}

// Get returns the entry for name, or nil.
func (r *Registry) Get(name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.builtIn[name]; ok {
		return entry
	}
	return r.wrappers[name]
}

// List returns all tiles sorted by name.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Entry, 0, len(r.builtIn)+len(r.wrappers))
	for _, e := range r.builtIn {
		entries = append(entries, e)
	}
	for name, e := range r.wrappers {
		if _, shadowed := r.builtIn[name]; !shadowed {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Manifest.Name < entries[j].Manifest.Name
	})
	return entries
}

// Create builds the named tile. Built-ins read their own config file;
// wrappers feed the wrapped factory the manifest's config section.
func (r *Registry) Create(name string) (server.Tile, error) {
	entry := r.Get(name)
	if entry == nil {
		return nil, fmt.Errorf("unknown tile %q", name)
	}
	if entry.Manifest.Type == TileTypeBuiltIn {
		return entry.Factory(config.App(name))
	}

	wrapped := r.Get(entry.Manifest.Wraps)
	if wrapped == nil || wrapped.Manifest.Type != TileTypeBuiltIn {
		return nil, fmt.Errorf("tile %q wraps unknown built-in %q", name, entry.Manifest.Wraps)
	}
	cfg := config.Clone(config.App(entry.Manifest.Wraps))
	if cfg == nil {
		cfg = make(config.Config)
	}
	if entry.Manifest.Config != nil {
		section := cfg.Section(entry.Manifest.Wraps)
		if section == nil {
			section = make(config.Section)
			cfg[entry.Manifest.Wraps] = section
		}
		for k, v := range entry.Manifest.Config {
			section[k] = v
		}
	}
	return wrapped.Factory(cfg)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builtIn) + len(r.wrappers)
}
