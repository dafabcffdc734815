package keyboard

import (
	"context"
	"log"
	"sync"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

const (
	keyWidth     = 54
	keyHeight    = 60
	spaceWidth   = 440
	bspcWidth    = 100
	backspaceKey = "bspc"
	draftOffset  = 40
)

var layout = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{"z", "x", "c", "v", "b", "n", "m"},
	{" ", backspaceKey},
}

// KeyToken is attached to every key.
type KeyToken struct {
	Key string
}

func (KeyToken) TouchKind() string { return "keyboard" }

// Tile is an on-screen qwerty keyboard editing a single draft line shown
// above the keys.
type Tile struct {
	y     int
	width int

	// persist, when set, is called with the draft after every edit.
	persist func(draft string) error

	mu    sync.Mutex
	draft []byte
}

func New(y, width int) *Tile {
	if width == 0 {
		width = config.DefaultDisplayWidth
	}
	return &Tile{y: y, width: width}
}

// FromConfig builds the keyboard from the "keyboard" section. The draft is
// restored from "draft" and, unless remember_draft is false, written back to
// the keyboard config file after each key.
func FromConfig(cfg config.Config) *Tile {
	t := New(cfg.GetInt("keyboard", "y", 640), cfg.GetInt("keyboard", "width", config.DefaultDisplayWidth))
	t.draft = []byte(protocol.FoldASCII(cfg.GetString("keyboard", "draft", "")))
	if cfg.GetBool("keyboard", "remember_draft", true) {
		t.persist = saveDraft
	}
	return t
}

func saveDraft(draft string) error {
	cfg := config.Clone(config.App("keyboard"))
	if cfg == nil {
		cfg = make(config.Config)
	}
	section := cfg.Section("keyboard")
	if section == nil {
		section = make(config.Section)
		cfg["keyboard"] = section
	}
	section["draft"] = draft
	config.SetApp("keyboard", cfg)
	return config.SaveApp("keyboard")
}

// Draft returns the text typed so far.
func (t *Tile) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.draft)
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	t.mu.Lock()
	draft := string(t.draft)
	t.mu.Unlock()

	widgets := []protocol.Widget{
		protocol.Label{
			X:        16,
			Y:        t.y - draftOffset,
			Datum:    protocol.MiddleLeft,
			FontSize: protocol.DefaultLabelSize,
			Color:    protocol.White,
			Text:     draft + "_",
		},
	}

	x, y := 0, t.y
	for row, keys := range layout {
		for _, key := range keys {
			w := keyWidth
			switch key {
			case " ":
				w = spaceWidth
			case backspaceKey:
				w = bspcWidth
			}
			widgets = append(widgets, protocol.Button{
				X: x, Y: y, W: w, H: keyHeight,
				Label: key,
				Token: KeyToken{Key: key},
			})
			x += w
		}
		y += keyHeight
		x = 0
		// Letter rows are centered; the space bar row starts at the edge.
		if next := row + 1; next < len(layout)-1 {
			x = (t.width - len(layout[next])*keyWidth) / 2
		}
	}
	return protocol.Envelope{Widgets: widgets}, nil
}

func (t *Tile) HandleTouch(tok protocol.Token) bool {
	key, ok := tok.(KeyToken)
	if !ok {
		return false
	}
	t.mu.Lock()
	switch key.Key {
	case backspaceKey:
		if n := len(t.draft); n > 0 {
			t.draft = t.draft[:n-1]
		}
	default:
		// Leave room for the cursor.
		if len(t.draft)+len(key.Key) < protocol.MaxTextLen {
			t.draft = append(t.draft, key.Key...)
		}
	}
	draft := string(t.draft)
	t.mu.Unlock()

	if t.persist != nil {
		if err := t.persist(draft); err != nil {
			log.Printf("keyboard: saving draft failed: %v", err)
		}
	}
	return true
}
