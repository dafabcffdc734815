// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and first-run seeding logic for the config store.

package config

import "log"

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read system config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if !exists || len(cfg) == 0 {
		if def := defaultSystemConfig(); def != nil {
			cfg = def
		} else if cfg == nil {
			cfg = make(Config)
		}
		applySystemDefaults(cfg)
		if readErr == nil {
			if err := writeConfig(path, cfg); err != nil {
				log.Printf("Config: Failed to write default system config: %v", err)
				readErr = err
			}
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded system config from %s", path)
	}
	return readErr
}

func loadAppLocked(name string) (Config, error) {
	path, err := appConfigPath(name)
	if err != nil {
		return nil, err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read tile config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if !exists || len(cfg) == 0 {
		if def := defaultAppConfig(name); def != nil {
			cfg = def
		} else if cfg == nil {
			cfg = make(Config)
		}
		applyAppDefaults(name, cfg)
		if readErr == nil {
			if err := writeConfig(path, cfg); err != nil {
				log.Printf("Config: Failed to write default tile config: %v", err)
				readErr = err
			}
		}
	} else {
		applyAppDefaults(name, cfg)
	}

	if readErr == nil && exists {
		log.Printf("Config: Loaded tile %q config from %s", name, path)
	}
	return cfg, readErr
}
