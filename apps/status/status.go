package status

import (
	"context"
	"sync"
	"time"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

// Options selects the firmware-drawn readings and their row.
type Options struct {
	Y           int
	FontSize    int
	Width       int
	Battery     bool
	Temperature bool
	Humidity    bool
	// FullRefresh forces a full waveform at most this often; zero disables it.
	FullRefresh time.Duration
	Now         func() time.Time
}

// Tile is the status row. Its readings are rendered by the panel itself; the
// tile only places them and schedules periodic full refreshes to clear ghosting.
type Tile struct {
	opts Options

	mu       sync.Mutex
	lastFull time.Time
}

func New(opts Options) *Tile {
	if opts.FontSize == 0 {
		opts.FontSize = 2
	}
	if opts.Width == 0 {
		opts.Width = config.DefaultDisplayWidth
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Tile{opts: opts}
}

func FromConfig(cfg config.Config) *Tile {
	return New(Options{
		Y:           cfg.GetInt("status", "y", 10),
		FontSize:    cfg.GetInt("status", "font_size", 2),
		Width:       config.System().GetInt("display", "width", config.DefaultDisplayWidth),
		Battery:     cfg.GetBool("status", "battery", true),
		Temperature: cfg.GetBool("status", "temperature", true),
		Humidity:    cfg.GetBool("status", "humidity", true),
		FullRefresh: time.Duration(cfg.GetFloat("status", "full_refresh_minutes", 30) * float64(time.Minute)),
	})
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	o := t.opts
	var widgets []protocol.Widget
	if o.Temperature {
		widgets = append(widgets, protocol.Temperature{X: 16, Y: o.Y, FontSize: o.FontSize, Color: protocol.White})
	}
	if o.Humidity {
		widgets = append(widgets, protocol.Humidity{X: 150, Y: o.Y, FontSize: o.FontSize, Color: protocol.White})
	}
	if o.Battery {
		widgets = append(widgets, protocol.BatteryStatus{X: o.Width - 100, Y: o.Y, FontSize: o.FontSize, Color: protocol.White})
	}

	env := protocol.Envelope{Widgets: widgets}
	if o.FullRefresh > 0 {
		now := o.Now()
		t.mu.Lock()
		if t.lastFull.IsZero() || now.Sub(t.lastFull) >= o.FullRefresh {
			env.UpdateMode = protocol.UpdateFull
			t.lastFull = now
		}
		t.mu.Unlock()
	}
	return env, nil
}
