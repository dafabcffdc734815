package diskspace

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

// Usage is the space reported for a mount point, in bytes.
type Usage struct {
	Free  uint64
	Total uint64
}

// Tile shows free and total space of one filesystem.
type Tile struct {
	name string
	path string
	x, y int

	stat func(path string) (Usage, error)
}

func New(name, path string, x, y int) *Tile {
	return &Tile{name: name, path: path, x: x, y: y, stat: statfs}
}

func FromConfig(cfg config.Config) *Tile {
	return New(
		cfg.GetString("diskspace", "name", "Root"),
		cfg.GetString("diskspace", "path", "/"),
		cfg.GetInt("diskspace", "x", 16),
		cfg.GetInt("diskspace", "y", 920),
	)
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	u, err := t.stat(t.path)
	if err != nil {
		return protocol.Envelope{}, fmt.Errorf("diskspace: statfs %s: %w", t.path, err)
	}
	return protocol.Envelope{Widgets: []protocol.Widget{t.label(Text(t.name, u))}}, nil
}

// Fallback keeps the slot on screen when the mount cannot be read.
func (t *Tile) Fallback(err error) protocol.Envelope {
	return protocol.Envelope{Widgets: []protocol.Widget{t.label(t.name + ": unavailable")}}
}

func (t *Tile) label(text string) protocol.Label {
	return protocol.Label{
		X:        t.x,
		Y:        t.y,
		Datum:    protocol.MiddleLeft,
		FontSize: protocol.DefaultLabelSize,
		Color:    protocol.White,
		Text:     protocol.FoldASCII(text),
	}
}

// Text formats u the way the tile shows it, in SI units.
func Text(name string, u Usage) string {
	return fmt.Sprintf("%s: %s free of %s", name, humanize.Bytes(u.Free), humanize.Bytes(u.Total))
}
