package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

// counterTile shows a button whose presses it counts.
type counterTile struct {
	mu      sync.Mutex
	presses int
	buttons []protocol.HardwareButton
}

func (c *counterTile) Payload(context.Context) (protocol.Envelope, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return protocol.Envelope{Widgets: []protocol.Widget{
		protocol.Button{X: 200, Y: 250, W: 100, H: 50, Label: "OK", Token: protocol.NamedToken("ok")},
		protocol.Label{X: 0, Y: 0, FontSize: 2, Color: protocol.White, Text: string(rune('0' + c.presses%10))},
	}}, nil
}

func (c *counterTile) HandleTouch(tok protocol.Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch tok := tok.(type) {
	case protocol.NamedToken:
		if tok == "ok" {
			c.presses++
			return true
		}
	case protocol.ButtonToken:
		c.buttons = append(c.buttons, tok.Button)
		return true
	}
	return false
}

func newTestServer(tile *counterTile) *Server {
	named := NamedTile{Name: "counter", Tile: tile}
	srv := NewServer("127.0.0.1:0", NewManager(), NewTilePublisher(testDisplay, named))
	srv.SetEventSink(NewTileSink(named))
	return srv
}

func doRequest(t *testing.T, h http.Handler, method string, body []byte, device string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", bytes.NewReader(body))
	if device != "" {
		req.Header.Set("X-Device-ID", device)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerPollReturnsPayload(t *testing.T) {
	srv := newTestServer(&counterTile{})
	rec := doRequest(t, srv.Handler(), http.MethodGet, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	env, err := protocol.Decode(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(env.Widgets) != 3 {
		t.Fatalf("expected 3 drawables, got %d", len(env.Widgets))
	}
	if rec.Header().Get("X-Inkwire-Sequence") != "1" {
		t.Fatalf("unexpected sequence header %q", rec.Header().Get("X-Inkwire-Sequence"))
	}
}

func TestServerTouchDispatchesToTile(t *testing.T) {
	tile := &counterTile{}
	srv := newTestServer(tile)
	h := srv.Handler()

	doRequest(t, h, http.MethodGet, nil, "panel")

	touch, err := protocol.EncodeEvent(protocol.Event{Type: protocol.EventTouch, X: 250, Y: 275})
	if err != nil {
		t.Fatalf("encode event: %v", err)
	}
	rec := doRequest(t, h, http.MethodPost, touch, "panel")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if tile.presses != 1 {
		t.Fatalf("expected one press, got %d", tile.presses)
	}
	env, err := protocol.Decode(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if label := env.Widgets[2].(protocol.Label); label.Text != "1" {
		t.Fatalf("response should reflect the press, got %q", label.Text)
	}

	// A touch outside every area changes nothing.
	miss, _ := protocol.EncodeEvent(protocol.Event{Type: protocol.EventTouch, X: 5, Y: 900})
	doRequest(t, h, http.MethodPost, miss, "panel")
	if tile.presses != 1 {
		t.Fatalf("miss should not press, got %d", tile.presses)
	}
}

func TestServerTouchBeforeAnyPoll(t *testing.T) {
	tile := &counterTile{}
	srv := newTestServer(tile)
	touch, _ := protocol.EncodeEvent(protocol.Event{Type: protocol.EventTouch, X: 250, Y: 275})
	rec := doRequest(t, srv.Handler(), http.MethodPost, touch, "fresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if tile.presses != 0 {
		t.Fatalf("nothing was on screen yet, got %d presses", tile.presses)
	}
}

func TestServerHardwareButton(t *testing.T) {
	tile := &counterTile{}
	srv := newTestServer(tile)
	ev, _ := protocol.EncodeEvent(protocol.Event{Type: protocol.EventButton, Button: protocol.ButtonDown})
	doRequest(t, srv.Handler(), http.MethodPost, ev, "")
	if len(tile.buttons) != 1 || tile.buttons[0] != protocol.ButtonDown {
		t.Fatalf("unexpected buttons %v", tile.buttons)
	}
}

func TestServerRejectsBadRequests(t *testing.T) {
	srv := newTestServer(&counterTile{})
	h := srv.Handler()

	if rec := doRequest(t, h, http.MethodPost, []byte{9, 9}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown event, got %d", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodPost, []byte{1, 0}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short event, got %d", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodPut, nil, ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestServerDevicesAreIndependent(t *testing.T) {
	srv := newTestServer(&counterTile{})
	h := srv.Handler()
	doRequest(t, h, http.MethodGet, nil, "a")
	doRequest(t, h, http.MethodGet, nil, "a")
	rec := doRequest(t, h, http.MethodGet, nil, "b")
	if rec.Header().Get("X-Inkwire-Sequence") != "1" {
		t.Fatalf("device b should start its own sequence")
	}
	if srv.Manager().ActiveSessions() != 2 {
		t.Fatalf("expected 2 sessions, got %d", srv.Manager().ActiveSessions())
	}
}

func TestServerStartStop(t *testing.T) {
	srv := newTestServer(&counterTile{})
	if err := srv.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if _, err := protocol.Decode(body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
