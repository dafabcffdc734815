package static

import (
	"context"
	"fmt"
	"log"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

// Tile sends a fixed widget list declared in configuration. Touches on its
// named areas are only logged.
type Tile struct {
	widgets []protocol.Widget
	names   map[protocol.NamedToken]bool
}

func New(widgets []protocol.Widget) *Tile {
	names := make(map[protocol.NamedToken]bool)
	for _, w := range widgets {
		var tok protocol.Token
		switch w := w.(type) {
		case protocol.Button:
			tok = w.Token
		case protocol.TouchArea:
			tok = w.Token
		}
		if name, ok := tok.(protocol.NamedToken); ok {
			names[name] = true
		}
	}
	return &Tile{widgets: widgets, names: names}
}

// FromConfig parses the "widgets" array of the "static" section.
func FromConfig(cfg config.Config) (*Tile, error) {
	data, ok := cfg.GetJSON("static", "widgets")
	if !ok {
		return New(nil), nil
	}
	widgets, err := protocol.ParseWidgets(data)
	if err != nil {
		return nil, fmt.Errorf("static: %w", err)
	}
	return New(widgets), nil
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	return protocol.Envelope{Widgets: t.widgets}, nil
}

func (t *Tile) HandleTouch(tok protocol.Token) bool {
	name, ok := tok.(protocol.NamedToken)
	if !ok || !t.names[name] {
		return false
	}
	log.Printf("static: touch %q", string(name))
	return true
}
