package stopwatch

import (
	"context"
	"testing"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTile() (*Tile, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	tile := New(90, 700)
	tile.now = clk.now
	return tile, clk
}

func labelText(t *testing.T, env protocol.Envelope) string {
	t.Helper()
	return env.Widgets[1].(protocol.Label).Text
}

func TestStopwatchLifecycle(t *testing.T) {
	tile, clk := newTestTile()
	ctx := context.Background()

	env, _ := tile.Payload(ctx)
	if labelText(t, env) != "00:00" || env.UpdateTimer.Set {
		t.Fatalf("idle stopwatch should read 00:00 with no timer: %+v", env)
	}
	if b := env.Widgets[2].(protocol.Button); b.Label != "Start" {
		t.Fatalf("expected Start, got %q", b.Label)
	}

	tile.HandleTouch(Token{Action: ActionToggle})
	clk.advance(75 * time.Second)
	env, _ = tile.Payload(ctx)
	if labelText(t, env) != "01:15" {
		t.Fatalf("unexpected reading %q", labelText(t, env))
	}
	if env.UpdateTimer.Wire() != 1 {
		t.Fatalf("running stopwatch should poll every second")
	}
	if b := env.Widgets[2].(protocol.Button); b.Label != "Pause" {
		t.Fatalf("expected Pause, got %q", b.Label)
	}

	tile.HandleTouch(Token{Action: ActionToggle})
	clk.advance(time.Hour)
	if tile.Elapsed() != 75*time.Second {
		t.Fatalf("paused stopwatch kept counting: %s", tile.Elapsed())
	}

	tile.HandleTouch(Token{Action: ActionReset})
	env, _ = tile.Payload(ctx)
	if labelText(t, env) != "00:00" {
		t.Fatalf("reset did not clear: %q", labelText(t, env))
	}
}

func TestStopwatchDispatchThroughButtons(t *testing.T) {
	tile, _ := newTestTile()
	env, _ := tile.Payload(context.Background())
	widgets := protocol.Expand(env.Widgets)

	tok, ok := protocol.Dispatch(90+240+10, 710, widgets)
	if !ok || tok != (Token{Action: ActionToggle}) {
		t.Fatalf("expected toggle token, got %v %v", tok, ok)
	}
	if tile.HandleTouch(protocol.NamedToken("x")) {
		t.Fatalf("foreign token handled")
	}
}
