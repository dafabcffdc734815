package server

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

var testDisplay = Display{Width: 540, Height: 960}

type fallbackTile struct {
	err error
}

func (f fallbackTile) Payload(context.Context) (protocol.Envelope, error) {
	return protocol.Envelope{}, f.err
}

func (f fallbackTile) Fallback(err error) protocol.Envelope {
	return protocol.Envelope{Widgets: []protocol.Widget{
		protocol.Label{X: 1, Y: 1, FontSize: 2, Color: protocol.White, Text: "oops"},
	}}
}

func staticTile(env protocol.Envelope) Tile {
	return TileFunc(func(context.Context) (protocol.Envelope, error) { return env, nil })
}

func TestTilePublisherComposesInOrder(t *testing.T) {
	first := protocol.Envelope{
		UpdateTimer: protocol.After(60),
		Widgets:     []protocol.Widget{protocol.Rect{W: 1, H: 1, Color: protocol.White}},
	}
	second := protocol.Envelope{
		UpdateTimer: protocol.After(1),
		UpdateMode:  protocol.UpdateQuality,
		Widgets: []protocol.Widget{
			protocol.Button{X: 10, Y: 10, W: 20, H: 20, Label: "go", Token: protocol.NamedToken("go")},
		},
	}
	p := NewTilePublisher(testDisplay,
		NamedTile{Name: "one", Tile: staticTile(first)},
		NamedTile{Name: "two", Tile: staticTile(second)},
	)
	session := NewSession("panel")
	res, err := p.Publish(context.Background(), session)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if res.Fallback {
		t.Fatalf("unexpected fallback")
	}
	if res.Drawables != 3 || res.TouchAreas != 1 {
		t.Fatalf("unexpected counts: drawables=%d touch=%d", res.Drawables, res.TouchAreas)
	}
	if res.Envelope.UpdateTimer.Wire() != 1 || res.Envelope.UpdateMode != protocol.UpdateQuality {
		t.Fatalf("unexpected composition: %+v", res.Envelope)
	}

	decoded, err := protocol.Decode(res.Payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := decoded.Widgets[0].(protocol.Rect); !ok {
		t.Fatalf("expected first tile first, got %T", decoded.Widgets[0])
	}
	if tok, ok := session.Dispatch(15, 15); !ok || tok != protocol.NamedToken("go") {
		t.Fatalf("expected session to dispatch the button, got %v %v", tok, ok)
	}
}

func TestTilePublisherTileFailure(t *testing.T) {
	p := NewTilePublisher(testDisplay,
		NamedTile{Name: "broken", Tile: fallbackTile{err: errors.New("boom")}},
		NamedTile{Name: "silent", Tile: TileFunc(func(context.Context) (protocol.Envelope, error) {
			return protocol.Envelope{}, errors.New("no fallback")
		})},
	)
	res, err := p.Publish(context.Background(), NewSession("panel"))
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if res.Drawables != 1 {
		t.Fatalf("expected only the fallback label, got %d", res.Drawables)
	}
	label := res.Envelope.Widgets[0].(protocol.Label)
	if label.Text != "oops" {
		t.Fatalf("unexpected fallback label %q", label.Text)
	}
}

func TestTilePublisherEncodeFailureFallsBack(t *testing.T) {
	bad := protocol.Envelope{Widgets: []protocol.Widget{
		protocol.Label{Text: strings.Repeat("x", protocol.MaxTextLen+1), FontSize: 1},
	}}
	p := NewTilePublisher(testDisplay, NamedTile{Name: "bad", Tile: staticTile(bad)})

	var observed PublishResult
	p.SetObserver(observerFunc(func(_ *Session, r PublishResult, _ time.Duration) { observed = r }))

	res, err := p.Publish(context.Background(), NewSession("panel"))
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !res.Fallback || !observed.Fallback {
		t.Fatalf("expected fallback payload")
	}
	if res.Envelope.UpdateTimer.Wire() != 60 || res.Envelope.UpdateMode != protocol.UpdateFull {
		t.Fatalf("unexpected fallback envelope: %+v", res.Envelope)
	}
	if _, err := protocol.Decode(res.Payload); err != nil {
		t.Fatalf("fallback payload does not decode: %v", err)
	}
}

func TestTilePublisherCancelledKeepsLastPayload(t *testing.T) {
	area := protocol.Envelope{Widgets: []protocol.Widget{
		protocol.Rect{W: 100, H: 100, Color: protocol.White},
		protocol.TouchArea{W: 100, H: 100, Token: protocol.NamedToken("ok")},
	}}
	p := NewTilePublisher(testDisplay, NamedTile{Name: "area", Tile: staticTile(area)})
	p.SetPayloadStore(NewPayloadStore(t.TempDir()))

	var published int
	p.SetObserver(observerFunc(func(*Session, PublishResult, time.Duration) { published++ }))

	session := NewSession("panel")
	if _, err := p.Publish(context.Background(), session); err != nil {
		t.Fatalf("first publish failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.SetTiles(
		NamedTile{Name: "cancel", Tile: TileFunc(func(context.Context) (protocol.Envelope, error) {
			cancel()
			return protocol.Envelope{}, nil
		})},
		NamedTile{Name: "area", Tile: staticTile(area)},
	)
	if _, err := p.Publish(ctx, session); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if session.Sequence() != 1 || published != 1 {
		t.Fatalf("cancelled publish was recorded: seq=%d observed=%d", session.Sequence(), published)
	}
	if tok, ok := session.Dispatch(50, 50); !ok || tok != protocol.NamedToken("ok") {
		t.Fatalf("touch area of the shown payload lost: %v %v", tok, ok)
	}
}

func TestTilePublisherComposeCancelledBeforeStart(t *testing.T) {
	p := NewTilePublisher(testDisplay, NamedTile{Name: "one", Tile: staticTile(protocol.Envelope{})})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Compose(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTilePublisherSettersWhileServing(t *testing.T) {
	p := NewTilePublisher(testDisplay, NamedTile{Name: "one", Tile: staticTile(protocol.Envelope{
		Widgets: []protocol.Widget{protocol.Rect{W: 1, H: 1}},
	})})
	session := NewSession("panel")
	dir := t.TempDir()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if _, err := p.Publish(context.Background(), session); err != nil {
				t.Errorf("publish failed: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			p.SetObserver(observerFunc(func(*Session, PublishResult, time.Duration) {}))
			p.SetPayloadStore(NewPayloadStore(dir))
		}
	}()
	wg.Wait()
}

type observerFunc func(*Session, PublishResult, time.Duration)

func (f observerFunc) ObservePublish(s *Session, r PublishResult, d time.Duration) { f(s, r, d) }
