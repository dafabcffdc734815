package tasks

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/inkwire/config"
	"github.com/framegrace/inkwire/protocol"
)

// Row geometry of the list, in pixels.
const (
	rowHeight     = 60
	rowOffset     = 15
	labelMargin   = 60
	iconOffsetX   = 14
	iconOffsetY   = 28
	strikeOffsetX = 55
	strikeOffsetY = 45
	textOffsetX   = 16
	glyphWidth    = 18
)

// TaskToken is attached to each task row; Index is the entry position.
type TaskToken struct {
	Index int
}

func (TaskToken) TouchKind() string { return "task" }

// Options places the list on the panel.
type Options struct {
	X, Y, W, H int
}

// Tile shows a checklist and toggles entries when they are touched.
type Tile struct {
	opts  Options
	store Store

	mu sync.Mutex
}

func New(store Store, opts Options) *Tile {
	if opts.W == 0 {
		opts.W = config.DefaultDisplayWidth
	}
	return &Tile{store: store, opts: opts}
}

// FromConfig builds the tile from the "tasks" section. A non-empty "sqlite"
// path selects the SQLite backend over the markdown file; an empty database
// is filled from the markdown file named by "seed". Relative paths are taken
// from the config directory.
func FromConfig(cfg config.Config) (*Tile, error) {
	opts := Options{
		X: cfg.GetInt("tasks", "x", 0),
		Y: cfg.GetInt("tasks", "y", 110),
		W: cfg.GetInt("tasks", "w", config.DefaultDisplayWidth),
		H: cfg.GetInt("tasks", "h", 540),
	}
	if path := cfg.GetString("tasks", "sqlite", ""); path != "" {
		store, err := OpenSQLiteStore(resolve(path))
		if err != nil {
			return nil, err
		}
		if seed := cfg.GetString("tasks", "seed", ""); seed != "" {
			n, err := store.Seed(context.Background(), NewMarkdownStore(resolve(seed)))
			if err != nil {
				store.Close()
				return nil, err
			}
			if n > 0 {
				log.Printf("tasks: seeded %d tasks from %s", n, seed)
			}
		}
		return New(store, opts), nil
	}
	return New(NewMarkdownStore(resolve(cfg.GetString("tasks", "path", "tasks.md"))), opts), nil
}

func resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	root, err := config.Root()
	if err != nil {
		return path
	}
	return filepath.Join(root, path)
}

func (t *Tile) Payload(ctx context.Context) (protocol.Envelope, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries, err := t.store.Load(ctx)
	if err != nil {
		return protocol.Envelope{}, err
	}

	var widgets []protocol.Widget
	for i, e := range entries {
		top := t.opts.Y + rowOffset + i*rowHeight
		if t.opts.H > 0 && top+rowHeight > t.opts.Y+t.opts.H {
			break
		}
		if !e.IsTask {
			if e.Text == "" {
				continue
			}
			widgets = append(widgets, protocol.Label{
				X:        t.opts.X + textOffsetX,
				Y:        t.opts.Y + strikeOffsetY + i*rowHeight,
				Datum:    protocol.MiddleLeft,
				FontSize: protocol.DefaultLabelSize,
				Color:    protocol.White,
				Text:     protocol.FoldASCII(e.Text),
			})
			continue
		}
		widgets = append(widgets, t.taskRow(i, top, e)...)
	}
	return protocol.Envelope{Widgets: widgets}, nil
}

// labelColumns is how many glyphs fit between the checkbox and the row's
// right edge.
func (t *Tile) labelColumns() int {
	return (t.opts.W - labelMargin - textOffsetX) / glyphWidth
}

func (t *Tile) taskRow(i, top int, e Entry) []protocol.Widget {
	text := runewidth.Truncate(protocol.FoldASCII(e.Text), t.labelColumns(), "...")
	row := []protocol.Widget{
		protocol.Button{
			X:               t.opts.X,
			Y:               top,
			W:               t.opts.W,
			H:               rowHeight,
			Label:           text,
			BorderColor:     protocol.Ptr(protocol.Black),
			LabelDatum:      protocol.Ptr(protocol.MiddleLeft),
			LabelMarginLeft: protocol.Ptr(labelMargin),
			Token:           TaskToken{Index: i},
		},
		protocol.Image{
			X:      t.opts.X + iconOffsetX,
			Y:      t.opts.Y + iconOffsetY + i*rowHeight,
			Color:  protocol.White,
			Pixels: checkbox(e.Done),
		},
	}
	if e.Done {
		y := t.opts.Y + strikeOffsetY + i*rowHeight
		x := t.opts.X + strikeOffsetX
		row = append(row, protocol.Line{
			X1:    x,
			Y1:    y,
			X2:    x + runewidth.StringWidth(text)*glyphWidth + 8,
			Y2:    y,
			Color: protocol.White,
		})
	}
	return row
}

// Fallback is shown when the list cannot be loaded.
func (t *Tile) Fallback(err error) protocol.Envelope {
	return protocol.Envelope{Widgets: []protocol.Widget{
		protocol.Label{
			X:        t.opts.X + t.opts.W/2,
			Y:        t.opts.Y + t.opts.H/2,
			Datum:    protocol.MiddleCenter,
			FontSize: protocol.DefaultLabelSize,
			Color:    protocol.White,
			Text:     "Failed to read file",
		},
	}}
}

func (t *Tile) HandleTouch(tok protocol.Token) bool {
	task, ok := tok.(TaskToken)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.Toggle(context.Background(), task.Index); err != nil {
		log.Printf("tasks: toggle %d failed: %v", task.Index, err)
	}
	return true
}

// Close releases the store when it holds resources.
func (t *Tile) Close() error {
	if c, ok := t.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
