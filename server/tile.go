package server

import (
	"context"

	"github.com/framegrace/inkwire/protocol"
)

// Tile produces one payload fragment. Tiles are the widget producers behind
// the panel: clock, task list, stopwatch and so on.
type Tile interface {
	Payload(ctx context.Context) (protocol.Envelope, error)
}

// TouchHandler is implemented by tiles that react to dispatched tokens. It
// reports whether the token was meant for the tile.
type TouchHandler interface {
	HandleTouch(tok protocol.Token) bool
}

// FallbackProvider lets a tile supply the fragment shown when Payload fails.
type FallbackProvider interface {
	Fallback(err error) protocol.Envelope
}

// NamedTile pairs a tile with the name used in config and logs.
type NamedTile struct {
	Name string
	Tile Tile
}

// TileFunc adapts a function to the Tile interface.
type TileFunc func(ctx context.Context) (protocol.Envelope, error)

func (f TileFunc) Payload(ctx context.Context) (protocol.Envelope, error) {
	return f(ctx)
}

// Display is the panel geometry in pixels.
type Display struct {
	Width  int
	Height int
}

// FallbackEnvelope is the minimal payload sent when nothing else can be
// encoded: one centered label and a one minute retry.
func FallbackEnvelope(d Display, text string) protocol.Envelope {
	return protocol.Envelope{
		UpdateTimer: protocol.After(60),
		UpdateMode:  protocol.UpdateFull,
		Widgets: []protocol.Widget{
			protocol.Label{
				X:        d.Width / 2,
				Y:        d.Height / 2,
				Datum:    protocol.MiddleCenter,
				FontSize: protocol.DefaultLabelSize,
				Color:    protocol.White,
				Text:     protocol.FoldASCII(text),
			},
		},
	}
}
