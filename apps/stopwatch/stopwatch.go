package stopwatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

const (
	buttonWidth  = 120
	buttonHeight = 40
)

// Action names a stopwatch button.
type Action string

const (
	ActionReset  Action = "reset"
	ActionToggle Action = "toggle"
)

// Token is attached to the stopwatch buttons.
type Token struct {
	Action Action
}

func (Token) TouchKind() string { return "stopwatch" }

// Tile is a start/pause/reset stopwatch. Elapsed time is derived from the
// clock rather than counted by a ticker.
type Tile struct {
	x, y int
	now  func() time.Time

	mu        sync.Mutex
	running   bool
	startedAt time.Time
	elapsed   time.Duration
}

func New(x, y int) *Tile {
	return &Tile{x: x, y: y, now: time.Now}
}

func FromConfig(cfg config.Config) *Tile {
	return New(cfg.GetInt("stopwatch", "x", 90), cfg.GetInt("stopwatch", "y", 700))
}

// Elapsed returns the accumulated running time.
func (t *Tile) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Tile) elapsedLocked() time.Duration {
	if t.running {
		return t.elapsed + t.now().Sub(t.startedAt)
	}
	return t.elapsed
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	secs := int(t.elapsedLocked() / time.Second)
	toggle := "Start"
	if t.running {
		toggle = "Pause"
	}

	env := protocol.Envelope{
		Widgets: []protocol.Widget{
			protocol.Button{
				X: t.x, Y: t.y, W: buttonWidth, H: buttonHeight,
				Label: "Reset",
				Token: Token{Action: ActionReset},
			},
			protocol.Label{
				X:        t.x + 180,
				Y:        t.y + buttonHeight/2,
				Datum:    protocol.MiddleCenter,
				FontSize: protocol.DefaultLabelSize,
				Color:    protocol.White,
				Text:     fmt.Sprintf("%02d:%02d", secs/60, secs%60),
			},
			protocol.Button{
				X: t.x + 240, Y: t.y, W: buttonWidth, H: buttonHeight,
				Label: toggle,
				Token: Token{Action: ActionToggle},
			},
		},
	}
	if t.running {
		env.UpdateTimer = protocol.After(1)
	}
	return env, nil
}

func (t *Tile) HandleTouch(tok protocol.Token) bool {
	sw, ok := tok.(Token)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	switch sw.Action {
	case ActionReset:
		t.running = false
		t.elapsed = 0
	case ActionToggle:
		if t.running {
			t.elapsed += t.now().Sub(t.startedAt)
			t.running = false
		} else {
			t.startedAt = t.now()
			t.running = true
		}
	default:
		return false
	}
	return true
}
