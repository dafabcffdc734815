package clock

import (
	"context"
	"time"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

// Options places the clock label and picks its Go time layout.
type Options struct {
	Format     string
	X, Y, W, H int
	FontSize   int
	// Now is overridden in tests.
	Now func() time.Time
}

// Tile renders the current date or time centered in its box.
type Tile struct {
	opts Options
}

func New(opts Options) *Tile {
	if opts.Format == "" {
		opts.Format = "Monday, January 2"
	}
	if opts.FontSize == 0 {
		opts.FontSize = protocol.DefaultLabelSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Tile{opts: opts}
}

// FromConfig builds the tile from the "clock" section of cfg.
func FromConfig(cfg config.Config) *Tile {
	return New(Options{
		Format:   cfg.GetString("clock", "format", ""),
		X:        cfg.GetInt("clock", "x", 0),
		Y:        cfg.GetInt("clock", "y", 40),
		W:        cfg.GetInt("clock", "w", config.DefaultDisplayWidth),
		H:        cfg.GetInt("clock", "h", 60),
		FontSize: cfg.GetInt("clock", "font_size", 0),
	})
}

// Payload returns the label and asks to be polled again at the next minute.
func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	now := t.opts.Now()
	return protocol.Envelope{
		UpdateTimer: protocol.After(uint32(60 - now.Second())),
		Widgets: []protocol.Widget{
			protocol.Label{
				X:        t.opts.X + t.opts.W/2,
				Y:        t.opts.Y + t.opts.H/2,
				Datum:    protocol.MiddleCenter,
				FontSize: t.opts.FontSize,
				Color:    protocol.White,
				Text:     protocol.FoldASCII(now.Format(t.opts.Format)),
			},
		},
	}, nil
}
