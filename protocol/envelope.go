// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/envelope.go
// Summary: Payload envelope and the composition of independently built fragments.

package protocol

import (
	"math"
	"time"
)

// Timer is an optional refresh delay in seconds. The zero value means the
// payload does not ask for a timed refresh.
type Timer struct {
	Seconds uint32
	Set     bool
}

// After returns a timer asking the panel to poll again after seconds.
func After(seconds uint32) Timer {
	return Timer{Seconds: seconds, Set: true}
}

// AfterDuration converts d to a timer, rounding up to whole seconds.
func AfterDuration(d time.Duration) Timer {
	if d <= 0 {
		return After(0)
	}
	secs := (d + time.Second - 1) / time.Second
	if secs > math.MaxUint32 {
		return After(math.MaxUint32)
	}
	return After(uint32(secs))
}

// Wire returns the value written to the updateTimer field.
func (t Timer) Wire() uint32 {
	if !t.Set {
		return 0
	}
	return t.Seconds
}

// Envelope is one outgoing unit: refresh metadata plus an ordered widget
// list. List order is draw order. An envelope must not be modified once it
// has been encoded.
type Envelope struct {
	UpdateTimer Timer
	UpdateMode  UpdateMode
	Widgets     []Widget
}

// Expanded returns a copy of e with all composite widgets expanded.
func (e Envelope) Expanded() Envelope {
	e.Widgets = Expand(e.Widgets)
	return e
}

// Compose merges fragments into one envelope. Widgets are concatenated in
// the order given. The timer is the smallest timer any fragment set; the
// mode is the strongest mode any fragment asked for.
func Compose(fragments ...Envelope) Envelope {
	if len(fragments) == 1 {
		return fragments[0]
	}

	var out Envelope
	total := 0
	for _, f := range fragments {
		total += len(f.Widgets)
	}
	if total > 0 {
		out.Widgets = make([]Widget, 0, total)
	}

	for _, f := range fragments {
		out.Widgets = append(out.Widgets, f.Widgets...)
		if f.UpdateTimer.Set && (!out.UpdateTimer.Set || f.UpdateTimer.Seconds < out.UpdateTimer.Seconds) {
			out.UpdateTimer = f.UpdateTimer
		}
		if f.UpdateMode > out.UpdateMode {
			out.UpdateMode = f.UpdateMode
		}
	}
	return out
}
