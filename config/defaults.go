// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and tile configuration files.

package config

// Panel geometry of the M5Paper class displays the firmware targets.
const (
	DefaultDisplayWidth  = 540
	DefaultDisplayHeight = 960
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("server", Section{
		"addr":          ":3377",
		"verbose_logs":  false,
		"payload_dump":  "",
		"device_header": "X-Device-ID",
	})
	cfg.RegisterDefaults("display", Section{
		"width":  DefaultDisplayWidth,
		"height": DefaultDisplayHeight,
	})
	cfg.RegisterDefaults("layout", Section{
		"tiles": []interface{}{"status", "clock", "tasks", "stopwatch", "diskspace"},
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "clock":
		cfg.RegisterDefaults("clock", Section{
			"format": "Monday, January 2",
			"x":      0,
			"y":      40,
			"w":      DefaultDisplayWidth,
			"h":      60,
		})
	case "tasks":
		cfg.RegisterDefaults("tasks", Section{
			"path":   "tasks.md",
			"sqlite": "",
			"x":      0,
			"y":      110,
			"w":      DefaultDisplayWidth,
			"h":      540,
		})
	case "stopwatch":
		cfg.RegisterDefaults("stopwatch", Section{
			"x": 90,
			"y": 700,
		})
	case "calendar":
		cfg.RegisterDefaults("calendar", Section{
			"x": 0,
			"y": 110,
			"w": DefaultDisplayWidth,
			"h": 420,
		})
	case "keyboard":
		cfg.RegisterDefaults("keyboard", Section{
			"y": 640,
		})
	case "diskspace":
		cfg.RegisterDefaults("diskspace", Section{
			"path": "/",
			"name": "Root",
			"x":    16,
			"y":    920,
		})
	case "picture":
		cfg.RegisterDefaults("picture", Section{
			"path": "",
			"x":    0,
			"y":    0,
			"w":    0,
			"h":    0,
		})
	case "status":
		cfg.RegisterDefaults("status", Section{
			"y":                    10,
			"font_size":            2,
			"battery":              true,
			"temperature":          true,
			"humidity":             true,
			"full_refresh_minutes": 30,
		})
	case "static":
		cfg.RegisterDefaults("static", Section{
			"widgets": []interface{}{},
		})
	}
}
