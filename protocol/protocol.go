package protocol

import (
	"errors"
	"fmt"
)

// WidgetType is the wire tag written before every drawable widget.
type WidgetType uint8

const (
	TypeRect WidgetType = iota + 1
	TypeLabel
	TypeLine
	TypeImage
	TypeBatteryStatus
	TypeTemperature
	TypeHumidity
)

func (t WidgetType) String() string {
	switch t {
	case TypeRect:
		return "Rect"
	case TypeLabel:
		return "Label"
	case TypeLine:
		return "Line"
	case TypeImage:
		return "Image"
	case TypeBatteryStatus:
		return "BatteryStatus"
	case TypeTemperature:
		return "Temperature"
	case TypeHumidity:
		return "Humidity"
	}
	return fmt.Sprintf("WidgetType(%d)", uint8(t))
}

// UpdateMode hints the panel which refresh waveform to use. Higher values
// dominate lower ones when payloads are composed.
type UpdateMode uint8

const (
	UpdateFast UpdateMode = iota
	UpdateQuality
	UpdateFull
)

func (m UpdateMode) String() string {
	switch m {
	case UpdateFast:
		return "fast"
	case UpdateQuality:
		return "quality"
	case UpdateFull:
		return "full"
	}
	return fmt.Sprintf("UpdateMode(%d)", uint8(m))
}

// Color is a 4-bit gray level, 0 is black and 15 is white.
type Color uint8

const (
	Black    Color = 0
	Gray     Color = 8
	White    Color = 15
	MaxColor Color = 15
)

// Datum selects which point of the text box the label coordinates refer to.
type Datum uint8

const (
	TopLeft Datum = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
	LeftBaseline
	CenterBaseline
	RightBaseline
)

var datumNames = [...]string{
	"TopLeft", "TopCenter", "TopRight",
	"MiddleLeft", "MiddleCenter", "MiddleRight",
	"BottomLeft", "BottomCenter", "BottomRight",
	"LeftBaseline", "CenterBaseline", "RightBaseline",
}

func (d Datum) String() string {
	if int(d) < len(datumNames) {
		return datumNames[d]
	}
	return fmt.Sprintf("Datum(%d)", uint8(d))
}

// Valid reports whether d is one of the twelve known datums.
func (d Datum) Valid() bool {
	return int(d) < len(datumNames)
}

// MarshalText implements encoding.TextMarshaler.
func (d Datum) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: datum %d", ErrFieldRange, d)
	}
	return []byte(datumNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Datum) UnmarshalText(text []byte) error {
	for i, name := range datumNames {
		if name == string(text) {
			*d = Datum(i)
			return nil
		}
	}
	return fmt.Errorf("%w: datum %q", ErrFieldRange, text)
}

const (
	headerSize = 7 // timer u32, mode u8, count u16

	maxU8  = 0xFF
	maxU16 = 0xFFFF

	// MaxTextLen is the longest label text that still fits the u8 length
	// prefix once the terminator is counted.
	MaxTextLen = maxU8 - 1
)

var (
	ErrFieldRange       = errors.New("protocol: field out of range")
	ErrTextTooLong      = errors.New("protocol: text exceeds 254 bytes")
	ErrNonASCII         = errors.New("protocol: text is not ASCII")
	ErrUnexpandedWidget = errors.New("protocol: composite widget reached encoder")
	ErrUnknownWidget    = errors.New("protocol: unknown widget type")
	ErrTooManyWidgets   = errors.New("protocol: more than 65535 drawable widgets")
	ErrShortPayload     = errors.New("protocol: payload too short")
	ErrTrailingData     = errors.New("protocol: payload has trailing data")
	ErrMalformed        = errors.New("protocol: malformed payload")
)
