// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/widgets.go
// Summary: Closed set of widget variants understood by the panel firmware.
// Usage: Tiles build []Widget values; Expand and Encode consume them.
// Notes: Adding a variant is a protocol change; update Expand, Encode and Decode together.

package protocol

// Widget is one entry of a payload widget list. The set of implementations
// is closed: only the types in this file satisfy it.
type Widget interface {
	isWidget()
}

// Token identifies what a touch area stands for. Tokens are defined by the
// application and handed back unmodified by Dispatch.
type Token interface {
	TouchKind() string
}

// NamedToken is a plain string token, used by widgets declared in config.
type NamedToken string

func (NamedToken) TouchKind() string { return "named" }

// Rect draws a rectangle outline, or a filled one when Fill is set.
type Rect struct {
	X, Y, W, H  int
	Color       Color
	RoundRadius int
	Fill        bool
}

// Label draws ASCII text anchored at (X, Y) according to Datum.
type Label struct {
	X, Y     int
	Datum    Datum
	FontSize int
	Color    Color
	Text     string
}

// Line draws a one pixel line between two points.
type Line struct {
	X1, Y1, X2, Y2 int
	Color          Color
}

// Image draws a bitmap. Pixels holds one gray level (0-15) per pixel, row
// major. When W and H are both zero they are taken from the matrix.
type Image struct {
	X, Y, W, H int
	Color      Color
	Pixels     [][]uint8
}

// BatteryStatus is drawn by the firmware from its own battery reading.
type BatteryStatus struct {
	X, Y     int
	FontSize int
	Color    Color
}

// Temperature is drawn by the firmware from its on-board sensor.
type Temperature struct {
	X, Y     int
	FontSize int
	Color    Color
}

// Humidity is drawn by the firmware from its on-board sensor.
type Humidity struct {
	X, Y     int
	FontSize int
	Color    Color
}

// TouchArea marks a tappable region. It is never sent to the panel; it only
// lives in the server-side copy of the last payload for Dispatch.
type TouchArea struct {
	X, Y, W, H int
	Token      Token
}

// Button is a composite widget: a border, an optional label and an optional
// touch area. Nil optional fields fall back to the defaults applied by Expand.
type Button struct {
	X, Y, W, H      int
	Label           string
	BorderColor     *Color
	LabelColor      *Color
	LabelDatum      *Datum
	LabelSize       *int
	LabelMarginLeft *int
	Token           Token
}

func (Rect) isWidget()          {}
func (Label) isWidget()         {}
func (Line) isWidget()          {}
func (Image) isWidget()         {}
func (BatteryStatus) isWidget() {}
func (Temperature) isWidget()   {}
func (Humidity) isWidget()      {}
func (TouchArea) isWidget()     {}
func (Button) isWidget()        {}

// Ptr returns a pointer to v, for filling Button's optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// Size returns the image dimensions, inferring them from the pixel matrix
// when W and H are unset.
func (im Image) Size() (w, h int) {
	if im.W != 0 || im.H != 0 {
		return im.W, im.H
	}
	if len(im.Pixels) == 0 {
		return 0, 0
	}
	return len(im.Pixels[0]), len(im.Pixels)
}

// Contains reports whether (x, y) lies inside the area. Both edges are
// inclusive, matching the panel's touch coordinates.
func (a TouchArea) Contains(x, y int) bool {
	return x >= a.X && x <= a.X+a.W && y >= a.Y && y <= a.Y+a.H
}

// Drawable reports whether w is written to the wire.
func Drawable(w Widget) bool {
	switch w.(type) {
	case Rect, Label, Line, Image, BatteryStatus, Temperature, Humidity:
		return true
	}
	return false
}

// DrawableCount returns how many entries of widgets are written to the wire.
func DrawableCount(widgets []Widget) int {
	n := 0
	for _, w := range widgets {
		if Drawable(w) {
			n++
		}
	}
	return n
}

func kindOf(w Widget) string {
	switch w.(type) {
	case Rect:
		return "Rect"
	case Label:
		return "Label"
	case Line:
		return "Line"
	case Image:
		return "Image"
	case BatteryStatus:
		return "BatteryStatus"
	case Temperature:
		return "Temperature"
	case Humidity:
		return "Humidity"
	case TouchArea:
		return "TouchArea"
	case Button:
		return "Button"
	case nil:
		return "nil"
	}
	return "unknown"
}
