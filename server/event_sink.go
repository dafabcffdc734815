package server

import (
	"sync"

	"github.com/framegrace/inkwire/protocol"
)

// EventSink receives the tokens produced by panel events.
type EventSink interface {
	HandleToken(session *Session, tok protocol.Token) bool
}

// nopSink discards tokens when no sink is provided.
type nopSink struct{}

func (nopSink) HandleToken(*Session, protocol.Token) bool { return false }

// TileSink forwards tokens to every tile that handles touches.
type TileSink struct {
	mu    sync.RWMutex
	tiles []NamedTile
}

func NewTileSink(tiles ...NamedTile) *TileSink {
	return &TileSink{tiles: tiles}
}

// SetTiles replaces the routed tiles.
func (s *TileSink) SetTiles(tiles ...NamedTile) {
	s.mu.Lock()
	s.tiles = tiles
	s.mu.Unlock()
}

func (s *TileSink) HandleToken(session *Session, tok protocol.Token) bool {
	s.mu.RLock()
	tiles := s.tiles
	s.mu.RUnlock()

	handled := false
	for _, t := range tiles {
		h, ok := t.Tile.(TouchHandler)
		if !ok {
			continue
		}
		if h.HandleTouch(tok) {
			debugLog.Printf("server: device %s token %s handled by %s", session.Device(), tok.TouchKind(), t.Name)
			handled = true
		}
	}
	return handled
}
