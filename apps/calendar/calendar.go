package calendar

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

const (
	navSize     = 50
	headerSpace = 50
)

// Token moves the shown month by Step months.
type Token struct {
	Step int
}

func (Token) TouchKind() string { return "calendar" }

// Options places the month grid.
type Options struct {
	X, Y, W, H int
	Now        func() time.Time
}

// Tile is a month view with weeks starting on Monday. The up and down
// hardware buttons page months as well.
type Tile struct {
	opts Options

	mu    sync.Mutex
	month time.Time
}

func New(opts Options) *Tile {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.W == 0 {
		opts.W = config.DefaultDisplayWidth
	}
	return &Tile{opts: opts, month: firstOfMonth(opts.Now())}
}

func FromConfig(cfg config.Config) *Tile {
	return New(Options{
		X: cfg.GetInt("calendar", "x", 0),
		Y: cfg.GetInt("calendar", "y", 110),
		W: cfg.GetInt("calendar", "w", config.DefaultDisplayWidth),
		H: cfg.GetInt("calendar", "h", 420),
	})
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Month returns the first day of the month on display.
func (t *Tile) Month() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.month
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	t.mu.Lock()
	month := t.month
	t.mu.Unlock()

	o := t.opts
	widgets := []protocol.Widget{
		protocol.Button{X: o.X, Y: o.Y, W: navSize, H: navSize, Label: "<", Token: Token{Step: -1}},
		protocol.Label{
			X:        o.X + o.W/2,
			Y:        o.Y + navSize/2,
			Datum:    protocol.MiddleCenter,
			FontSize: protocol.DefaultLabelSize,
			Color:    protocol.White,
			Text:     month.Format("January 2006"),
		},
		protocol.Button{X: o.X + o.W - navSize, Y: o.Y, W: navSize, H: navSize, Label: ">", Token: Token{Step: 1}},
	}

	now := o.Now()
	cellW := float64(o.W) / 7
	rowH := int(math.Ceil(float64(o.H) / 6))
	offset := (int(month.Weekday()) + 6) % 7
	days := month.AddDate(0, 1, -1).Day()

	for day := 1; day <= days; day++ {
		idx := offset + day - 1
		col, row := idx%7, idx/7
		x := o.X + int(math.Round(float64(col)*cellW))
		y := o.Y + headerSpace + row*rowH

		today := now.Year() == month.Year() && now.Month() == month.Month() && now.Day() == day
		color := protocol.White
		if today {
			color = protocol.Black
			widgets = append(widgets, protocol.Rect{
				X:     x + 12,
				Y:     y + 10,
				W:     int(math.Round(cellW)) - 28,
				H:     int(math.Round(float64(o.H)/6)) - 20,
				Color: protocol.White,
				Fill:  true,
			})
		}
		widgets = append(widgets, protocol.Label{
			X:        x + o.W/14,
			Y:        y + o.H/12,
			Datum:    protocol.MiddleCenter,
			FontSize: protocol.DefaultLabelSize,
			Color:    color,
			Text:     strconv.Itoa(day),
		})
	}
	return protocol.Envelope{UpdateMode: protocol.UpdateQuality, Widgets: widgets}, nil
}

func (t *Tile) HandleTouch(tok protocol.Token) bool {
	step := 0
	switch tok := tok.(type) {
	case Token:
		step = tok.Step
	case protocol.ButtonToken:
		switch tok.Button {
		case protocol.ButtonUp:
			step = -1
		case protocol.ButtonDown:
			step = 1
		}
	}
	if step == 0 {
		return false
	}
	t.mu.Lock()
	t.month = t.month.AddDate(0, step, 0)
	t.mu.Unlock()
	return true
}
