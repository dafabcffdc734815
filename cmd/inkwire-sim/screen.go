package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/inkwire/client"
	"github.com/framegrace/inkwire/internal/preview"
	"github.com/framegrace/inkwire/protocol"
)

const requestTimeout = 10 * time.Second

// viewport maps panel pixels onto terminal cells. Each cell shows two
// vertically stacked blocks of scale x scale pixels using a half block glyph.
type viewport struct {
	scale int
}

func fit(panelW, panelH, cols, rows int) viewport {
	rows-- // status line
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s := (panelW + cols - 1) / cols
	if v := (panelH + 2*rows - 1) / (2 * rows); v > s {
		s = v
	}
	if s < 1 {
		s = 1
	}
	return viewport{scale: s}
}

// toPanel returns the pixel at the center of the cell's upper half.
func (v viewport) toPanel(cx, cy int) (int, int) {
	return cx*v.scale + v.scale/2, cy*2*v.scale + v.scale/2
}

// level samples the brightest pixel of a block so thin lines survive scaling.
func (v viewport) level(img *image.Paletted, x0, y0 int) uint8 {
	var best uint8
	for y := y0; y < y0+v.scale; y++ {
		for x := x0; x < x0+v.scale; x++ {
			if !image.Pt(x, y).In(img.Rect) {
				continue
			}
			if l := img.ColorIndexAt(x, y); l > best {
				best = l
			}
		}
	}
	return best
}

func grayColor(level uint8) tcell.Color {
	v := int32(level) * 17
	return tcell.NewRGBColor(v, v, v)
}

type sim struct {
	screen tcell.Screen
	src    source
	w, h   int

	frame  client.Frame
	img    *image.Paletted
	status string
}

func run(src source, w, h int) error {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	s := &sim{screen: screen, src: src, w: w, h: h}
	s.apply(withTimeout(src.Fetch))

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		s.draw()

		var timer <-chan time.Time
		if t := s.frame.Envelope.UpdateTimer; t.Set {
			timer = time.After(time.Duration(t.Seconds) * time.Second)
		}

		select {
		case <-timer:
			s.apply(withTimeout(src.Fetch))
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := s.handle(ev); quit {
				return nil
			}
		}
	}
}

func withTimeout(f func(context.Context) (client.Frame, error)) (client.Frame, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return f(ctx)
}

func (s *sim) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			s.press(protocol.ButtonUp)
		case tcell.KeyDown:
			s.press(protocol.ButtonDown)
		case tcell.KeyEnter:
			s.press(protocol.ButtonPush)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'r':
				s.apply(withTimeout(s.src.Fetch))
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return false
		}
		cols, rows := s.screen.Size()
		cx, cy := ev.Position()
		vp := fit(s.w, s.h, cols, rows)
		x, y := vp.toPanel(cx, cy)
		if x >= s.w || y >= s.h {
			return false
		}
		s.apply(withTimeout(func(ctx context.Context) (client.Frame, error) {
			return s.src.Touch(ctx, x, y)
		}))
	}
	return false
}

func (s *sim) press(b protocol.HardwareButton) {
	s.apply(withTimeout(func(ctx context.Context) (client.Frame, error) {
		return s.src.Press(ctx, b)
	}))
}

func (s *sim) apply(frame client.Frame, err error) {
	if err != nil {
		s.status = "error: " + err.Error()
		return
	}
	if frame.Changed || s.img == nil {
		s.img = preview.Render(frame.Envelope, s.w, s.h)
	}
	s.frame = frame
	env := frame.Envelope
	timer := "none"
	if env.UpdateTimer.Set {
		timer = fmt.Sprintf("%ds", env.UpdateTimer.Seconds)
	}
	s.status = fmt.Sprintf("seq %d | %d bytes | %d widgets | mode %s | timer %s | q quit, r refresh",
		frame.Sequence, len(frame.Raw), protocol.DrawableCount(env.Widgets), env.UpdateMode, timer)
}

func (s *sim) draw() {
	s.screen.Clear()
	cols, rows := s.screen.Size()
	if s.img != nil {
		vp := fit(s.w, s.h, cols, rows)
		for cy := 0; cy < rows-1; cy++ {
			y0 := cy * 2 * vp.scale
			if y0 >= s.h {
				break
			}
			for cx := 0; cx < cols; cx++ {
				x0 := cx * vp.scale
				if x0 >= s.w {
					break
				}
				top := vp.level(s.img, x0, y0)
				bottom := vp.level(s.img, x0, y0+vp.scale)
				style := tcell.StyleDefault.Foreground(grayColor(top)).Background(grayColor(bottom))
				s.screen.SetContent(cx, cy, '▀', nil, style)
			}
		}
	}

	line := runewidth.Truncate(s.status, cols, "...")
	x := 0
	for _, r := range line {
		s.screen.SetContent(x, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
		x += runewidth.RuneWidth(r)
	}
	s.screen.Show()
}
