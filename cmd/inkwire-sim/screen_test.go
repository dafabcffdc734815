package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/inkwire/protocol"
	"github.com/framegrace/inkwire/server"
)

func TestFitKeepsPanelOnScreen(t *testing.T) {
	vp := fit(540, 960, 80, 25)
	if 540/vp.scale > 80 {
		t.Fatalf("panel too wide at scale %d", vp.scale)
	}
	if 960/(2*vp.scale) > 24 {
		t.Fatalf("panel too tall at scale %d", vp.scale)
	}
	x, y := vp.toPanel(0, 0)
	if x != vp.scale/2 || y != vp.scale/2 {
		t.Fatalf("unexpected origin mapping (%d,%d)", x, y)
	}
}

func TestReplaySourceAndPNG(t *testing.T) {
	dir := t.TempDir()
	store := server.NewPayloadStore(dir)
	env := protocol.Envelope{Widgets: []protocol.Widget{protocol.Rect{X: 1, Y: 1, W: 5, H: 5, Color: protocol.White}}}
	payload, err := protocol.Encode(env)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := store.Save("sim", server.PublishResult{Sequence: 4, Envelope: env, Payload: payload, Drawables: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}

	src := &replaySource{store: store, device: "sim"}
	frame, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if frame.Sequence != 4 || len(frame.Envelope.Widgets) != 1 {
		t.Fatalf("unexpected frame %+v", frame)
	}

	out := filepath.Join(dir, "out.png")
	if err := writePNG(src, out, 540, 960); err != nil {
		t.Fatalf("png: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("expected a PNG file: %v", err)
	}
}
