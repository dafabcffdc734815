// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/preview/preview.go
// Summary: Software rasteriser approximating how the panel draws a payload.
// Usage: The simulator renders decoded payloads with it; tests use it to check layouts.
// Notes: Fonts are basicfont 7x13 scaled by the label font size, so glyph metrics differ from the firmware's.

package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/framegrace/inkwire/protocol"
)

const (
	glyphW   = 7
	glyphH   = 13
	glyphAsc = 11
)

// Palette holds the panel's 16 gray levels; index 0 is black.
var Palette = func() color.Palette {
	p := make(color.Palette, 16)
	for i := range p {
		v := uint8(i * 17)
		p[i] = color.Gray{Y: v}
	}
	return p
}()

// Canvas is a paletted framebuffer the size of the panel.
type Canvas struct {
	Img *image.Paletted
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Img: image.NewPaletted(image.Rect(0, 0, w, h), Palette)}
}

// Render draws env on a fresh black canvas. Composite widgets are expanded
// first; touch areas are not drawn.
func Render(env protocol.Envelope, w, h int) *image.Paletted {
	c := NewCanvas(w, h)
	c.Draw(protocol.Expand(env.Widgets))
	return c.Img
}

func (c *Canvas) Draw(widgets []protocol.Widget) {
	for _, w := range widgets {
		switch w := w.(type) {
		case protocol.Rect:
			if w.Fill {
				c.fillRect(w.X, w.Y, w.X+w.W-1, w.Y+w.H-1, w.Color)
			} else {
				c.rectOutline(w.X, w.Y, w.X+w.W-1, w.Y+w.H-1, w.Color)
			}
		case protocol.Line:
			c.line(w.X1, w.Y1, w.X2, w.Y2, w.Color)
		case protocol.Label:
			c.text(w.X, w.Y, w.Datum, w.FontSize, w.Text, w.Color)
		case protocol.Image:
			c.image(w)
		case protocol.BatteryStatus:
			c.text(w.X, w.Y, protocol.TopLeft, w.FontSize, "100%", w.Color)
		case protocol.Temperature:
			c.text(w.X, w.Y, protocol.TopLeft, w.FontSize, "21.5C", w.Color)
		case protocol.Humidity:
			c.text(w.X, w.Y, protocol.TopLeft, w.FontSize, "45%", w.Color)
		}
	}
}

func (c *Canvas) set(x, y int, level protocol.Color) {
	if image.Pt(x, y).In(c.Img.Rect) {
		c.Img.SetColorIndex(x, y, uint8(level&0x0f))
	}
}

func (c *Canvas) fillRect(x0, y0, x1, y1 int, level protocol.Color) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.set(x, y, level)
		}
	}
}

func (c *Canvas) rectOutline(x0, y0, x1, y1 int, level protocol.Color) {
	c.line(x0, y0, x1, y0, level)
	c.line(x0, y1, x1, y1, level)
	c.line(x0, y0, x0, y1, level)
	c.line(x1, y0, x1, y1, level)
}

func (c *Canvas) line(x0, y0, x1, y1 int, level protocol.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0, level)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) image(im protocol.Image) {
	w, h := im.Size()
	for y := 0; y < h && y < len(im.Pixels); y++ {
		row := im.Pixels[y]
		for x := 0; x < w && x < len(row); x++ {
			c.set(im.X+x, im.Y+y, protocol.Color(row[x]))
		}
	}
}

// text draws s scaled by size, anchored at (x, y) per datum.
func (c *Canvas) text(x, y int, datum protocol.Datum, size int, s string, level protocol.Color) {
	if s == "" {
		return
	}
	if size < 1 {
		size = 1
	}
	mask := image.NewAlpha(image.Rect(0, 0, len(s)*glyphW, glyphH))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, glyphAsc),
	}
	d.DrawString(s)

	tw, th := mask.Rect.Dx()*size, glyphH*size
	ox, oy := anchor(datum, tw, th, glyphAsc*size)
	left, top := x-ox, y-oy
	for my := 0; my < glyphH; my++ {
		for mx := 0; mx < mask.Rect.Dx(); mx++ {
			if mask.AlphaAt(mx, my).A < 0x80 {
				continue
			}
			for sy := 0; sy < size; sy++ {
				for sx := 0; sx < size; sx++ {
					c.set(left+mx*size+sx, top+my*size+sy, level)
				}
			}
		}
	}
}

// anchor returns the offset of the datum point from the text box's top left.
func anchor(d protocol.Datum, w, h, baseline int) (int, int) {
	var ox, oy int
	switch d {
	case protocol.TopCenter, protocol.MiddleCenter, protocol.BottomCenter, protocol.CenterBaseline:
		ox = w / 2
	case protocol.TopRight, protocol.MiddleRight, protocol.BottomRight, protocol.RightBaseline:
		ox = w
	}
	switch d {
	case protocol.MiddleLeft, protocol.MiddleCenter, protocol.MiddleRight:
		oy = h / 2
	case protocol.BottomLeft, protocol.BottomCenter, protocol.BottomRight:
		oy = h
	case protocol.LeftBaseline, protocol.CenterBaseline, protocol.RightBaseline:
		oy = baseline
	}
	return ox, oy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
