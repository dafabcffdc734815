// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Supports init-time registration of built-in tiles.

package registry

import "sync"

// BuiltInProvider returns a manifest and factory for a built-in tile.
type BuiltInProvider func() (*Manifest, Factory)

var (
	builtInMu        sync.RWMutex
	builtInProviders []BuiltInProvider
)

// RegisterBuiltInProvider registers an init-time built-in provider.
func RegisterBuiltInProvider(provider BuiltInProvider) {
	if provider == nil {
		return
	}
	builtInMu.Lock()
	builtInProviders = append(builtInProviders, provider)
	builtInMu.Unlock()
}

// RegisterBuiltIns registers all init-time built-ins into the provided registry.
func RegisterBuiltIns(reg *Registry) {
	if reg == nil {
		return
	}
	builtInMu.RLock()
	providers := append([]BuiltInProvider(nil), builtInProviders...)
	builtInMu.RUnlock()

	for _, provider := range providers {
		manifest, factory := provider()
		if manifest == nil || factory == nil {
			continue
		}
		reg.RegisterBuiltIn(manifest, factory)
	}
}
