package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

func fixedNow() time.Time {
	// A Wednesday; the first of the month is a Sunday.
	return time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)
}

func TestCalendarGrid(t *testing.T) {
	tile := New(Options{X: 0, Y: 110, W: 540, H: 420, Now: fixedNow})
	env, err := tile.Payload(context.Background())
	if err != nil {
		t.Fatalf("payload failed: %v", err)
	}

	title := env.Widgets[1].(protocol.Label)
	if title.Text != "March 2026" {
		t.Fatalf("unexpected title %q", title.Text)
	}

	var first, today protocol.Label
	var highlight *protocol.Rect
	for i, w := range env.Widgets[3:] {
		switch w := w.(type) {
		case protocol.Label:
			if w.Text == "1" {
				first = w
			}
			if w.Text == "18" {
				today = w
				if r, ok := env.Widgets[3+i-1].(protocol.Rect); ok {
					highlight = &r
				}
			}
		}
	}

	// March 1st 2026 is a Sunday: last column of the first week.
	wantX := 0 + 463 + 540/14
	if first.X != wantX || first.Y != 110+50+420/12 {
		t.Fatalf("unexpected placement of day 1: %+v", first)
	}
	if today.Color != protocol.Black {
		t.Fatalf("today should be drawn inverted: %+v", today)
	}
	if highlight == nil || !highlight.Fill || highlight.Color != protocol.White {
		t.Fatalf("expected a filled rect before today, got %+v", highlight)
	}

	if _, err := protocol.Encode(env.Expanded()); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
}

func TestCalendarPaging(t *testing.T) {
	tile := New(Options{W: 540, H: 420, Now: fixedNow})
	tile.HandleTouch(Token{Step: 1})
	if m := tile.Month(); m.Month() != time.April {
		t.Fatalf("expected April, got %s", m.Month())
	}
	tile.HandleTouch(protocol.ButtonToken{Button: protocol.ButtonUp})
	tile.HandleTouch(protocol.ButtonToken{Button: protocol.ButtonUp})
	if m := tile.Month(); m.Month() != time.February {
		t.Fatalf("expected February, got %s", m.Month())
	}
	if tile.HandleTouch(protocol.ButtonToken{Button: protocol.ButtonPush}) {
		t.Fatalf("push should not page")
	}

	env, _ := tile.Payload(context.Background())
	for _, w := range env.Widgets {
		if _, ok := w.(protocol.Rect); ok {
			t.Fatalf("no day should be highlighted outside the current month")
		}
	}
}
