// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func resetStore(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	rootOverride = root
	once = sync.Once{}
	system = nil
	apps = nil
	loadErr = nil
	t.Cleanup(func() {
		rootOverride = ""
		once = sync.Once{}
	})
	return root
}

func TestSystemDefaultsWritten(t *testing.T) {
	resetStore(t)

	cfg := System()
	if got := cfg.GetString("server", "addr", ""); got != ":3377" {
		t.Fatalf("expected default addr, got %q", got)
	}
	if got := cfg.GetInt("display", "width", 0); got != DefaultDisplayWidth {
		t.Fatalf("expected display width %d, got %d", DefaultDisplayWidth, got)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if disk.Section("layout") == nil {
		t.Fatalf("expected layout section to be present")
	}
}

func TestLayoutTileOrder(t *testing.T) {
	resetStore(t)
	got := System().GetStringList("layout", "tiles", nil)
	want := []string{"status", "clock", "tasks", "stopwatch", "diskspace"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tiles = %v, want %v", got, want)
	}
}

func TestExistingSystemConfigKeepsValues(t *testing.T) {
	root := resetStore(t)
	if err := writeConfig(filepath.Join(root, systemConfigName), Config{
		"server": map[string]interface{}{"addr": "127.0.0.1:9000"},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := System()
	if got := cfg.GetString("server", "addr", ""); got != "127.0.0.1:9000" {
		t.Fatalf("expected configured addr, got %q", got)
	}
	if got := cfg.GetString("server", "device_header", ""); got != "X-Device-ID" {
		t.Fatalf("expected default header to be filled in, got %q", got)
	}
	if Err() != nil {
		t.Fatalf("unexpected load error: %v", Err())
	}
}

func TestBrokenSystemConfigReportsError(t *testing.T) {
	root := resetStore(t)
	if err := os.WriteFile(filepath.Join(root, systemConfigName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := System()
	if Err() == nil {
		t.Fatalf("expected load error")
	}
	if got := cfg.GetInt("display", "height", 0); got != DefaultDisplayHeight {
		t.Fatalf("expected defaults after failed load, got %d", got)
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	resetStore(t)

	SetSystem(Config{
		"server": map[string]interface{}{"addr": ":4000"},
	})
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if got := disk.GetString("server", "addr", ""); got != ":4000" {
		t.Fatalf("expected addr :4000, got %q", got)
	}
}

func TestAppDefaultsWritten(t *testing.T) {
	resetStore(t)

	cfg := App("tasks")
	if cfg.Section("tasks") == nil {
		t.Fatalf("expected tasks section to be present")
	}
	if got := cfg.GetString("tasks", "path", ""); got != "tasks.md" {
		t.Fatalf("expected default task path, got %q", got)
	}

	path, err := appConfigPath("tasks")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected tile config to be written: %v", err)
	}
}

func TestAppWithoutEmbeddedDefaults(t *testing.T) {
	resetStore(t)

	cfg := App("diskspace")
	if got := cfg.GetString("diskspace", "path", ""); got != "/" {
		t.Fatalf("expected Go defaults for diskspace, got %q", got)
	}
}

func TestSaveAppWritesUpdates(t *testing.T) {
	resetStore(t)

	SetApp("stopwatch", Config{
		"stopwatch": map[string]interface{}{"x": 12},
	})
	if err := SaveApp("stopwatch"); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}

	path, err := appConfigPath("stopwatch")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read tile config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal tile config: %v", err)
	}
	if got := disk.GetInt("stopwatch", "x", 0); got != 12 {
		t.Fatalf("expected x=12, got %d", got)
	}
}

func TestGetJSON(t *testing.T) {
	cfg := Config{"static": map[string]interface{}{
		"widgets": []interface{}{map[string]interface{}{"type": "Line"}},
	}}
	data, ok := cfg.GetJSON("static", "widgets")
	if !ok {
		t.Fatalf("expected widgets value")
	}
	if string(data) != `[{"type":"Line"}]` {
		t.Fatalf("unexpected json %s", data)
	}
	if _, ok := cfg.GetJSON("static", "missing"); ok {
		t.Fatalf("expected missing key to report false")
	}
}
