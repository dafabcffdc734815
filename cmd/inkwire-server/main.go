// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/inkwire-server/main.go
// Summary: Starts the HTTP server that feeds payloads to e-ink panels.
// Usage: inkwire-server [-addr :3377] [-config dir] [-dump dir] [-save-config] [-verbose-logs]
// Notes: SIGHUP reloads configuration and rebuilds the tile layout.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/server"
)

func main() {
	configDir := flag.String("config", "", "Configuration directory (default $INKWIRE_CONFIG_DIR or the user config dir)")
	addr := flag.String("addr", "", "Listen address (overrides server.addr)")
	dumpDir := flag.String("dump", "", "Write every payload to this directory (overrides server.payload_dump)")
	cpuProfile := flag.String("pprof-cpu", "", "Write CPU profile to file")
	verboseLogs := flag.Bool("verbose-logs", false, "Enable verbose server logging")
	saveConfig := flag.Bool("save-config", false, "Write -addr and -dump into inkwire.json")
	flag.Parse()

	if *configDir != "" {
		config.SetRoot(*configDir)
	}
	sys := config.System()
	if err := config.Err(); err != nil {
		log.Printf("inkwire: config load failed, using defaults: %v", err)
	}

	server.SetVerboseLogging(*verboseLogs || sys.GetBool("server", "verbose_logs", false))

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create CPU profile: %v\n", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if *saveConfig {
		if err := saveOverrides(*addr, *dumpDir); err != nil {
			log.Printf("inkwire: saving config failed: %v", err)
		}
		sys = config.System()
	}

	listen := *addr
	if listen == "" {
		listen = sys.GetString("server", "addr", ":3377")
	}
	display := server.Display{
		Width:  sys.GetInt("display", "width", config.DefaultDisplayWidth),
		Height: sys.GetInt("display", "height", config.DefaultDisplayHeight),
	}

	reg := newRegistry()
	tiles := buildLayout(reg)
	publisher := server.NewTilePublisher(display, tiles...)
	publisher.SetObserver(server.NewPublishLogger(log.Default()))
	server.SetSessionStatsObserver(server.NewSessionStatsLogger(log.Default()))

	dump := *dumpDir
	if dump == "" {
		dump = sys.GetString("server", "payload_dump", "")
	}
	if dump != "" {
		publisher.SetPayloadStore(server.NewPayloadStore(dump))
	}

	sink := server.NewTileSink(tiles...)
	srv := server.NewServer(listen, server.NewManager(), publisher)
	srv.SetEventSink(sink)
	srv.SetDeviceHeader(sys.GetString("server", "device_header", "X-Device-ID"))

	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("inkwire: listening on %s with %d tiles (%d known)", srv.Addr(), len(tiles), reg.Count())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigCh
		if sig == syscall.SIGHUP {
			log.Println("inkwire: SIGHUP, reloading configuration")
			if err := config.Reload(); err != nil {
				log.Printf("inkwire: reload failed: %v", err)
				continue
			}
			rescan(reg)
			old := tiles
			tiles = buildLayout(reg)
			publisher.SetTiles(tiles...)
			sink.SetTiles(tiles...)
			closeTiles(old)
			log.Printf("inkwire: layout rebuilt with %d tiles", len(tiles))
			continue
		}
		break
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Printf("inkwire: shutdown: %v", err)
	}
	closeTiles(tiles)
	log.Println("inkwire: stopped")
}

// saveOverrides stores non-empty flag overrides in the system config and
// writes it back to disk.
func saveOverrides(addr, dump string) error {
	cfg := config.Clone(config.System())
	if cfg == nil {
		cfg = make(config.Config)
	}
	section := cfg.Section("server")
	if section == nil {
		section = make(config.Section)
		cfg["server"] = section
	}
	if addr != "" {
		section["addr"] = addr
	}
	if dump != "" {
		section["payload_dump"] = dump
	}
	config.SetSystem(cfg)
	return config.SaveSystem()
}
