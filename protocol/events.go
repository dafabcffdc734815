// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/events.go
// Summary: Inbound event reports sent by the panel (touches, hardware buttons).
//
// Event layout:
//
//	u8 event type
//	touch  (1): x u16, y u16
//	button (2): u8 button id (0 up, 1 push, 2 down)

package protocol

import (
	"encoding/binary"
	"fmt"
)

// EventType tags an inbound event report.
type EventType uint8

const (
	EventTouch  EventType = 1
	EventButton EventType = 2
)

// HardwareButton names the panel's physical buttons.
type HardwareButton uint8

const (
	ButtonUp HardwareButton = iota
	ButtonPush
	ButtonDown
)

func (b HardwareButton) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonPush:
		return "push"
	case ButtonDown:
		return "down"
	}
	return fmt.Sprintf("HardwareButton(%d)", uint8(b))
}

// Event is a decoded inbound report.
type Event struct {
	Type   EventType
	X, Y   int
	Button HardwareButton
}

// ButtonToken is routed to tiles when a hardware button is pressed.
type ButtonToken struct {
	Button HardwareButton
}

func (ButtonToken) TouchKind() string { return "button" }

const (
	touchEventSize  = 5
	buttonEventSize = 2
)

// EncodeEvent serialises ev in the panel's report layout.
func EncodeEvent(ev Event) ([]byte, error) {
	switch ev.Type {
	case EventTouch:
		if ev.X < 0 || ev.X > maxU16 || ev.Y < 0 || ev.Y > maxU16 {
			return nil, fmt.Errorf("%w: touch (%d,%d)", ErrFieldRange, ev.X, ev.Y)
		}
		buf := make([]byte, touchEventSize)
		buf[0] = byte(EventTouch)
		binary.BigEndian.PutUint16(buf[1:3], uint16(ev.X))
		binary.BigEndian.PutUint16(buf[3:5], uint16(ev.Y))
		return buf, nil
	case EventButton:
		if ev.Button > ButtonDown {
			return nil, fmt.Errorf("%w: button %d", ErrFieldRange, ev.Button)
		}
		return []byte{byte(EventButton), byte(ev.Button)}, nil
	}
	return nil, fmt.Errorf("%w: event type %d", ErrMalformed, ev.Type)
}

// DecodeEvent parses an inbound report. Unknown event types and reports of
// the wrong length are rejected.
func DecodeEvent(b []byte) (Event, error) {
	var ev Event
	if len(b) < 1 {
		return ev, ErrShortPayload
	}
	ev.Type = EventType(b[0])
	switch ev.Type {
	case EventTouch:
		if len(b) < touchEventSize {
			return ev, ErrShortPayload
		}
		if len(b) > touchEventSize {
			return ev, ErrTrailingData
		}
		ev.X = int(binary.BigEndian.Uint16(b[1:3]))
		ev.Y = int(binary.BigEndian.Uint16(b[3:5]))
	case EventButton:
		if len(b) < buttonEventSize {
			return ev, ErrShortPayload
		}
		if len(b) > buttonEventSize {
			return ev, ErrTrailingData
		}
		ev.Button = HardwareButton(b[1])
		if ev.Button > ButtonDown {
			return ev, fmt.Errorf("%w: button %d", ErrMalformed, b[1])
		}
	default:
		return ev, fmt.Errorf("%w: event type %d", ErrMalformed, b[0])
	}
	return ev, nil
}
