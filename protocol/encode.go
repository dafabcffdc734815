// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/encode.go
// Summary: Serialises an expanded envelope into the panel's binary payload.
// Usage: Called by the server publisher once per outgoing payload.
// Notes: Layout is big-endian and must match the firmware byte for byte.
//
// Payload layout:
//
//	u32 updateTimer
//	u8  updateMode
//	u16 drawable widget count (touch areas excluded)
//	per drawable widget: u8 type tag, then the fields below
//
//	Rect          x,y,w,h u16, color u8, roundRadius u8, fill u8
//	Label         x,y u16, datum u8, fontSize u8, color u8, textLength u8, text, 0
//	Line          x1,y1,x2,y2 u16, color u8
//	Image         x,y,w,h u16, color u8, w*h pixel bytes row major
//	BatteryStatus x,y u16, fontSize u8, color u8 (Temperature, Humidity alike)

package protocol

import (
	"encoding/binary"
	"fmt"
)

const (
	rectSize   = 1 + 4*2 + 3
	labelSize  = 1 + 2*2 + 4 // plus text and terminator
	lineSize   = 1 + 4*2 + 1
	imageSize  = 1 + 4*2 + 1 // plus pixels
	statusSize = 1 + 2*2 + 2
)

// EncodeError reports the widget and field that could not be encoded.
type EncodeError struct {
	Index  int
	Widget string
	Field  string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("protocol: widget %d (%s): %v", e.Index, e.Widget, e.Err)
	}
	return fmt.Sprintf("protocol: widget %d (%s) field %s: %v", e.Index, e.Widget, e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Encode serialises env. Every widget is validated before anything is
// written; on error no bytes are returned. Touch areas are skipped and
// composite widgets are rejected, so callers expand first.
func Encode(env Envelope) ([]byte, error) {
	size, count, err := measure(env.Widgets)
	if err != nil {
		return nil, err
	}

	w := writer{buf: make([]byte, size)}
	w.u32(env.UpdateTimer.Wire())
	w.u8(uint8(env.UpdateMode))
	w.u16(count)
	for _, widget := range env.Widgets {
		w.widget(widget)
	}
	if w.off != size {
		return nil, fmt.Errorf("protocol: wrote %d bytes, measured %d", w.off, size)
	}
	return w.buf, nil
}

// EncodedSize returns the exact length Encode would produce for env.
func EncodedSize(env Envelope) (int, error) {
	size, _, err := measure(env.Widgets)
	return size, err
}

// Validate checks a single widget the same way Encode does.
func Validate(w Widget) error {
	_, _, err := widgetSize(0, w)
	return err
}

// measure validates every widget and sums the payload size in one pass.
func measure(widgets []Widget) (int, int, error) {
	size, count := headerSize, 0
	for i, w := range widgets {
		n, drawable, err := widgetSize(i, w)
		if err != nil {
			return 0, 0, err
		}
		if drawable {
			count++
		}
		size += n
	}
	if count > maxU16 {
		return 0, 0, ErrTooManyWidgets
	}
	return size, count, nil
}

func widgetSize(i int, w Widget) (int, bool, error) {
	c := checker{index: i, widget: kindOf(w)}
	switch v := w.(type) {
	case Rect:
		c.u16("x", v.X)
		c.u16("y", v.Y)
		c.u16("w", v.W)
		c.u16("h", v.H)
		c.color(v.Color)
		c.u8("roundRadius", v.RoundRadius)
		return rectSize, true, c.err
	case Label:
		c.u16("x", v.X)
		c.u16("y", v.Y)
		c.datum(v.Datum)
		c.u8("fontSize", v.FontSize)
		c.color(v.Color)
		c.text(v.Text)
		return labelSize + len(v.Text) + 1, true, c.err
	case Line:
		c.u16("x1", v.X1)
		c.u16("y1", v.Y1)
		c.u16("x2", v.X2)
		c.u16("y2", v.Y2)
		c.color(v.Color)
		return lineSize, true, c.err
	case Image:
		iw, ih := v.Size()
		c.u16("x", v.X)
		c.u16("y", v.Y)
		c.u16("w", iw)
		c.u16("h", ih)
		c.color(v.Color)
		c.pixels(v.Pixels, iw, ih)
		return imageSize + iw*ih, true, c.err
	case BatteryStatus:
		c.status(v.X, v.Y, v.FontSize, v.Color)
		return statusSize, true, c.err
	case Temperature:
		c.status(v.X, v.Y, v.FontSize, v.Color)
		return statusSize, true, c.err
	case Humidity:
		c.status(v.X, v.Y, v.FontSize, v.Color)
		return statusSize, true, c.err
	case TouchArea:
		return 0, false, nil
	case Button:
		return 0, false, &EncodeError{Index: i, Widget: c.widget, Err: ErrUnexpandedWidget}
	}
	return 0, false, &EncodeError{Index: i, Widget: c.widget, Err: ErrUnknownWidget}
}

// checker keeps the first range violation found for a widget.
type checker struct {
	index  int
	widget string
	err    error
}

func (c *checker) fail(field string, err error) {
	if c.err == nil {
		c.err = &EncodeError{Index: c.index, Widget: c.widget, Field: field, Err: err}
	}
}

func (c *checker) u16(field string, v int) {
	if v < 0 || v > maxU16 {
		c.fail(field, fmt.Errorf("%w: %d does not fit u16", ErrFieldRange, v))
	}
}

func (c *checker) u8(field string, v int) {
	if v < 0 || v > maxU8 {
		c.fail(field, fmt.Errorf("%w: %d does not fit u8", ErrFieldRange, v))
	}
}

func (c *checker) color(v Color) {
	if v > MaxColor {
		c.fail("color", fmt.Errorf("%w: color %d above %d", ErrFieldRange, v, MaxColor))
	}
}

func (c *checker) datum(d Datum) {
	if !d.Valid() {
		c.fail("datum", fmt.Errorf("%w: datum %d", ErrFieldRange, d))
	}
}

func (c *checker) text(s string) {
	if len(s) > MaxTextLen {
		c.fail("text", ErrTextTooLong)
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 || s[i] > 0x7f {
			c.fail("text", fmt.Errorf("%w: byte 0x%02x at %d", ErrNonASCII, s[i], i))
			return
		}
	}
}

func (c *checker) pixels(rows [][]uint8, w, h int) {
	if len(rows) != h {
		c.fail("pixels", fmt.Errorf("%w: %d rows, want %d", ErrFieldRange, len(rows), h))
		return
	}
	for y, row := range rows {
		if len(row) != w {
			c.fail("pixels", fmt.Errorf("%w: row %d has %d pixels, want %d", ErrFieldRange, y, len(row), w))
			return
		}
		for x, p := range row {
			if Color(p) > MaxColor {
				c.fail("pixels", fmt.Errorf("%w: pixel (%d,%d) = %d", ErrFieldRange, x, y, p))
				return
			}
		}
	}
}

func (c *checker) status(x, y, fontSize int, color Color) {
	c.u16("x", x)
	c.u16("y", y)
	c.u8("fontSize", fontSize)
	c.color(color)
}

// writer fills a buffer that measure has already sized; it never grows.
type writer struct {
	buf []byte
	off int
}

func (w *writer) u8(v uint8) {
	w.buf[w.off] = v
	w.off++
}

func (w *writer) u16(v int) {
	binary.BigEndian.PutUint16(w.buf[w.off:], uint16(v))
	w.off += 2
}

func (w *writer) u32(v uint32) {
	binary.BigEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) widget(widget Widget) {
	switch v := widget.(type) {
	case Rect:
		w.u8(uint8(TypeRect))
		w.u16(v.X)
		w.u16(v.Y)
		w.u16(v.W)
		w.u16(v.H)
		w.u8(uint8(v.Color))
		w.u8(uint8(v.RoundRadius))
		w.bool(v.Fill)
	case Label:
		w.u8(uint8(TypeLabel))
		w.u16(v.X)
		w.u16(v.Y)
		w.u8(uint8(v.Datum))
		w.u8(uint8(v.FontSize))
		w.u8(uint8(v.Color))
		w.u8(uint8(len(v.Text) + 1))
		w.off += copy(w.buf[w.off:], v.Text)
		w.u8(0)
	case Line:
		w.u8(uint8(TypeLine))
		w.u16(v.X1)
		w.u16(v.Y1)
		w.u16(v.X2)
		w.u16(v.Y2)
		w.u8(uint8(v.Color))
	case Image:
		iw, ih := v.Size()
		w.u8(uint8(TypeImage))
		w.u16(v.X)
		w.u16(v.Y)
		w.u16(iw)
		w.u16(ih)
		w.u8(uint8(v.Color))
		for _, row := range v.Pixels {
			w.off += copy(w.buf[w.off:], row)
		}
	case BatteryStatus:
		w.status(TypeBatteryStatus, v.X, v.Y, v.FontSize, v.Color)
	case Temperature:
		w.status(TypeTemperature, v.X, v.Y, v.FontSize, v.Color)
	case Humidity:
		w.status(TypeHumidity, v.X, v.Y, v.FontSize, v.Color)
	}
}

func (w *writer) status(t WidgetType, x, y, fontSize int, color Color) {
	w.u8(uint8(t))
	w.u16(x)
	w.u16(y)
	w.u8(uint8(fontSize))
	w.u8(uint8(color))
}
