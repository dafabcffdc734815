// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/widgets_test.go
// Summary: Exercises button expansion, payload composition and touch dispatch.
// Usage: Executed during `go test` to guard against regressions.

package protocol

import (
	"errors"
	"reflect"
	"testing"
)

type taskToken struct {
	Line int
}

func (taskToken) TouchKind() string { return "task" }

func TestButtonExpansion(t *testing.T) {
	b := Button{X: 100, Y: 200, W: 300, H: 150, Label: "OK", Token: NamedToken("ok")}
	got := Expand([]Widget{b})
	want := []Widget{
		Rect{X: 100, Y: 200, W: 300, H: 150, Color: White},
		Label{X: 250, Y: 275, Datum: MiddleCenter, FontSize: 3, Color: White, Text: "OK"},
		TouchArea{X: 100, Y: 200, W: 300, H: 150, Token: NamedToken("ok")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expand mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestButtonExpansionOverrides(t *testing.T) {
	b := Button{
		X: 0, Y: 15, W: 540, H: 60,
		Label:           "Buy milk",
		BorderColor:     Ptr(Black),
		LabelColor:      Ptr(Color(3)),
		LabelDatum:      Ptr(TopLeft),
		LabelSize:       Ptr(2),
		LabelMarginLeft: Ptr(60),
	}
	got := b.Expand()
	want := []Widget{
		Rect{X: 0, Y: 15, W: 540, H: 60, Color: Black},
		Label{X: 60, Y: 45, Datum: TopLeft, FontSize: 2, Color: 3, Text: "Buy milk"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expand mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestBareButtonEmitsBorderOnly(t *testing.T) {
	got := Expand([]Widget{Button{X: 1, Y: 2, W: 3, H: 4}})
	want := []Widget{Rect{X: 1, Y: 2, W: 3, H: 4, Color: White}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	list := []Widget{
		Label{Text: "title"},
		Button{X: 10, Y: 10, W: 50, H: 50, Label: "<", Token: NamedToken("prev")},
		Line{X2: 10},
		Button{X: 70, Y: 10, W: 50, H: 50},
	}
	once := Expand(list)
	twice := Expand(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expand not idempotent:\n once %#v\ntwice %#v", once, twice)
	}
	if len(once) != 6 {
		t.Fatalf("expected 6 primitives, got %d", len(once))
	}
}

func TestComposeSingletonIsIdentity(t *testing.T) {
	f := Envelope{UpdateTimer: After(5), UpdateMode: UpdateQuality, Widgets: []Widget{Label{Text: "x"}}}
	if got := Compose(f); !reflect.DeepEqual(got, f) {
		t.Fatalf("compose([f]) = %#v, want %#v", got, f)
	}
}

func TestComposeTimerAndMode(t *testing.T) {
	got := Compose(
		Envelope{UpdateTimer: After(5), Widgets: []Widget{Label{Text: "a"}}},
		Envelope{UpdateMode: UpdateFull, Widgets: []Widget{Label{Text: "b"}}},
		Envelope{UpdateTimer: After(2), UpdateMode: UpdateQuality, Widgets: []Widget{Label{Text: "c"}, Label{Text: "d"}}},
	)
	if got.UpdateTimer != After(2) {
		t.Fatalf("timer = %+v, want 2", got.UpdateTimer)
	}
	if got.UpdateMode != UpdateFull {
		t.Fatalf("mode = %v, want full", got.UpdateMode)
	}
	var texts []string
	for _, w := range got.Widgets {
		texts = append(texts, w.(Label).Text)
	}
	if !reflect.DeepEqual(texts, []string{"a", "b", "c", "d"}) {
		t.Fatalf("widget order = %v", texts)
	}
}

func TestComposeWithoutTimers(t *testing.T) {
	got := Compose(Envelope{}, Envelope{Widgets: []Widget{Line{}}})
	if got.UpdateTimer.Set || got.UpdateTimer.Wire() != 0 {
		t.Fatalf("expected absent timer, got %+v", got.UpdateTimer)
	}
	if got.UpdateMode != UpdateFast {
		t.Fatalf("expected fast default, got %v", got.UpdateMode)
	}
}

func TestDispatchFirstAreaWins(t *testing.T) {
	widgets := []Widget{
		Rect{W: 10, H: 10},
		TouchArea{X: 0, Y: 0, W: 100, H: 100, Token: NamedToken("A")},
		TouchArea{X: 50, Y: 50, W: 150, H: 150, Token: NamedToken("B")},
	}
	tok, ok := Dispatch(60, 60, widgets)
	if !ok || tok != NamedToken("A") {
		t.Fatalf("dispatch = %v/%v, want A", tok, ok)
	}
	tok, ok = Dispatch(180, 180, widgets)
	if !ok || tok != NamedToken("B") {
		t.Fatalf("dispatch = %v/%v, want B", tok, ok)
	}
}

func TestDispatchInclusiveEdges(t *testing.T) {
	widgets := []Widget{TouchArea{X: 10, Y: 10, W: 20, H: 20, Token: taskToken{Line: 4}}}
	for _, pt := range [][2]int{{10, 10}, {30, 30}, {10, 30}, {30, 10}} {
		tok, ok := Dispatch(pt[0], pt[1], widgets)
		if !ok || tok != (taskToken{Line: 4}) {
			t.Fatalf("point %v should hit, got %v/%v", pt, tok, ok)
		}
	}
	for _, pt := range [][2]int{{9, 10}, {31, 30}, {20, 31}} {
		if tok, ok := Dispatch(pt[0], pt[1], widgets); ok {
			t.Fatalf("point %v should miss, got %v", pt, tok)
		}
	}
}

func TestDispatchIgnoresDrawables(t *testing.T) {
	widgets := Expand([]Widget{Button{X: 0, Y: 0, W: 50, H: 50, Label: "no token"}})
	if _, ok := Dispatch(10, 10, widgets); ok {
		t.Fatalf("button without token must not dispatch")
	}
}

func TestButtonEndToEnd(t *testing.T) {
	widgets := Expand([]Widget{Button{X: 100, Y: 200, W: 300, H: 150, Label: "OK", Token: NamedToken("ok")}})
	payload, err := Encode(Envelope{Widgets: widgets})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if count := int(payload[5])<<8 | int(payload[6]); count != 2 {
		t.Fatalf("drawable count = %d, want 2", count)
	}
	if DrawableCount(widgets) != 2 {
		t.Fatalf("DrawableCount disagrees with encoder")
	}
	tok, ok := Dispatch(250, 275, widgets)
	if !ok || tok != NamedToken("ok") {
		t.Fatalf("dispatch = %v/%v, want ok", tok, ok)
	}
}

func TestParseWidgets(t *testing.T) {
	data := []byte(`[
		{"type": "Rect", "x": 1, "y": 2, "w": 3, "h": 4, "fill": true},
		{"type": "Label", "x": 5, "y": 6, "datum": "MiddleLeft", "text": "hi", "color": 0},
		{"type": "Button", "x": 0, "y": 0, "w": 10, "h": 10, "label": "go", "borderColor": 0, "touch": "go"},
		{"type": "Humidity", "x": 7, "y": 8}
	]`)
	got, err := ParseWidgets(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Widget{
		Rect{X: 1, Y: 2, W: 3, H: 4, Color: White, Fill: true},
		Label{X: 5, Y: 6, Datum: MiddleLeft, FontSize: 3, Color: Black, Text: "hi"},
		Button{W: 10, H: 10, Label: "go", BorderColor: Ptr(Black), Token: NamedToken("go")},
		Humidity{X: 7, Y: 8, FontSize: 3, Color: White},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parse mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestParseWidgetRejectsUnknown(t *testing.T) {
	if _, err := ParseWidgets([]byte(`[{"type": "Slider", "x": 1}]`)); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
	if _, err := ParseWidget([]byte(`{"type": "Rect", "colour": 3}`)); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := ParseWidget([]byte(`{"type": "Rect", "x": 70000}`)); !errors.Is(err, ErrFieldRange) {
		t.Fatalf("expected range error, got %v", err)
	}
	if _, err := ParseWidget([]byte(`{"type": "Label", "datum": "Sideways"}`)); err == nil {
		t.Fatalf("expected datum error")
	}
}

func TestFoldASCII(t *testing.T) {
	cases := map[string]string{
		"Crème brûlée": "Creme brulee",
		"plain":        "plain",
		"日本":           "??",
	}
	for in, want := range cases {
		if got := FoldASCII(in); got != want {
			t.Fatalf("FoldASCII(%q) = %q, want %q", in, got, want)
		}
	}
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	if got := FoldASCII(string(long)); len(got) != MaxTextLen {
		t.Fatalf("expected clip to %d, got %d", MaxTextLen, len(got))
	}
}
