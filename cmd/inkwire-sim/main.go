// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/inkwire-sim/main.go
// Summary: Terminal stand-in for the e-ink panel.
// Usage: inkwire-sim -url http://host:3377 ; click to touch, arrows/enter for hardware buttons.
// Notes: -png renders one payload to a file and exits; -replay shows a payload dump without a server.

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/framegrace/inkwire/client"
	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/internal/preview"
	"github.com/framegrace/inkwire/protocol"
	"github.com/framegrace/inkwire/server"
)

func main() {
	url := flag.String("url", "http://localhost:3377", "Server base URL")
	device := flag.String("device", "sim", "Device id sent with every request")
	width := flag.Int("width", config.DefaultDisplayWidth, "Panel width in pixels")
	height := flag.Int("height", config.DefaultDisplayHeight, "Panel height in pixels")
	pngPath := flag.String("png", "", "Render one payload to this PNG file and exit")
	replayDir := flag.String("replay", "", "Show the payload dumped for -device in this directory instead of polling")
	flag.Parse()

	var src source
	if *replayDir != "" {
		src = &replaySource{store: server.NewPayloadStore(*replayDir), device: *device}
	} else {
		src = &httpSource{c: client.New(*url, *device)}
	}

	if *pngPath != "" {
		if err := writePNG(src, *pngPath, *width, *height); err != nil {
			fmt.Fprintf(os.Stderr, "inkwire-sim: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "inkwire-sim: stdout is not a terminal; use -png to render to a file")
		os.Exit(2)
	}
	if err := run(src, *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "inkwire-sim: %v\n", err)
		os.Exit(1)
	}
}

// source yields payloads either from a live server or from a dump.
type source interface {
	Fetch(ctx context.Context) (client.Frame, error)
	Touch(ctx context.Context, x, y int) (client.Frame, error)
	Press(ctx context.Context, b protocol.HardwareButton) (client.Frame, error)
}

type httpSource struct {
	c *client.Client
}

func (s *httpSource) Fetch(ctx context.Context) (client.Frame, error) { return s.c.Fetch(ctx) }
func (s *httpSource) Touch(ctx context.Context, x, y int) (client.Frame, error) {
	return s.c.Touch(ctx, x, y)
}
func (s *httpSource) Press(ctx context.Context, b protocol.HardwareButton) (client.Frame, error) {
	return s.c.Press(ctx, b)
}

// replaySource serves the same dumped payload forever; input is ignored.
type replaySource struct {
	store  *server.PayloadStore
	device string
}

func (s *replaySource) Fetch(ctx context.Context) (client.Frame, error) {
	meta, raw, err := s.store.Load(s.device)
	if err != nil {
		return client.Frame{}, err
	}
	env, err := protocol.Decode(raw)
	if err != nil {
		return client.Frame{}, err
	}
	return client.Frame{Envelope: env, Raw: raw, Sequence: meta.Sequence, Changed: true}, nil
}

func (s *replaySource) Touch(ctx context.Context, x, y int) (client.Frame, error) {
	return s.Fetch(ctx)
}

func (s *replaySource) Press(ctx context.Context, b protocol.HardwareButton) (client.Frame, error) {
	return s.Fetch(ctx)
}

func writePNG(src source, path string, w, h int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	frame, err := src.Fetch(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, preview.Render(frame.Envelope, w, h)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
