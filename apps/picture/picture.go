// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/picture/picture.go
// Summary: Bitmap tile: loads a BMP (or PNG) file and sends it as a gray Image widget.
// Usage: Configure "path" and a target box; zero width and height keep the source size.
// Notes: The decoded pixels are cached until the file's modification time changes.

package picture

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

// Options places the picture. W and H scale the source when non-zero.
type Options struct {
	Path       string
	X, Y, W, H int
	Invert     bool
}

type Tile struct {
	opts Options

	mu      sync.Mutex
	modTime time.Time
	pixels  [][]uint8
}

func New(opts Options) *Tile {
	return &Tile{opts: opts}
}

func FromConfig(cfg config.Config) *Tile {
	return New(Options{
		Path:   cfg.GetString("picture", "path", ""),
		X:      cfg.GetInt("picture", "x", 0),
		Y:      cfg.GetInt("picture", "y", 0),
		W:      cfg.GetInt("picture", "w", 0),
		H:      cfg.GetInt("picture", "h", 0),
		Invert: cfg.GetBool("picture", "invert", false),
	})
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	pixels, err := t.load()
	if err != nil {
		return protocol.Envelope{}, err
	}
	return protocol.Envelope{
		UpdateMode: protocol.UpdateQuality,
		Widgets: []protocol.Widget{
			protocol.Image{X: t.opts.X, Y: t.opts.Y, Color: protocol.White, Pixels: pixels},
		},
	}, nil
}

func (t *Tile) load() ([][]uint8, error) {
	info, err := os.Stat(t.opts.Path)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pixels != nil && info.ModTime().Equal(t.modTime) {
		return t.pixels, nil
	}

	f, err := os.Open(t.opts.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("picture: decode %s: %w", t.opts.Path, err)
	}

	t.pixels = Quantize(img, t.opts.W, t.opts.H, t.opts.Invert)
	t.modTime = info.ModTime()
	return t.pixels, nil
}

// Quantize scales img to w by h (source size when either is zero) and maps
// luminance onto the panel's 16 gray levels, 0 black and 15 white.
func Quantize(img image.Image, w, h int, invert bool) [][]uint8 {
	b := img.Bounds()
	if w <= 0 || h <= 0 {
		w, h = b.Dx(), b.Dy()
	}
	gray := image.NewGray(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(gray, gray.Bounds(), img, b, draw.Src, nil)
	}

	rows := make([][]uint8, h)
	for y := 0; y < h; y++ {
		row := make([]uint8, w)
		for x := 0; x < w; x++ {
			level := color.GrayModel.Convert(gray.At(x, y)).(color.Gray).Y >> 4
			if invert {
				level = 15 - level
			}
			row[x] = level
		}
		rows[y] = row
	}
	return rows
}
