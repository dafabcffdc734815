// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/publisher.go
// Summary: Builds the outgoing payload for a session from the configured tiles.
// Usage: Called once per request by the HTTP handler.
// Notes: A tile failure or an encoding error still yields a valid payload.

package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

// PublishResult describes one payload handed to a panel.
type PublishResult struct {
	Sequence   uint64
	Envelope   protocol.Envelope
	Payload    []byte
	Drawables  int
	TouchAreas int
	Fallback   bool
}

// Publisher produces the next payload for a session.
type Publisher interface {
	Publish(ctx context.Context, session *Session) (PublishResult, error)
}

// TilePublisher composes tile fragments, expands and encodes them, and
// records the result on the session. Setters may be called while serving.
type TilePublisher struct {
	mu       sync.RWMutex
	tiles    []NamedTile
	display  Display
	observer PublishObserver
	store    *PayloadStore
}

func NewTilePublisher(display Display, tiles ...NamedTile) *TilePublisher {
	return &TilePublisher{tiles: tiles, display: display}
}

// SetObserver registers an optional metrics observer invoked after each publish.
func (p *TilePublisher) SetObserver(observer PublishObserver) {
	p.mu.Lock()
	p.observer = observer
	p.mu.Unlock()
}

// SetPayloadStore enables dumping every payload to disk.
func (p *TilePublisher) SetPayloadStore(store *PayloadStore) {
	p.mu.Lock()
	p.store = store
	p.mu.Unlock()
}

func (p *TilePublisher) Tiles() []NamedTile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tiles
}

// SetTiles replaces the tile set, e.g. after a config reload.
func (p *TilePublisher) SetTiles(tiles ...NamedTile) {
	p.mu.Lock()
	p.tiles = tiles
	p.mu.Unlock()
}

// Compose asks every tile for its fragment, in configured order, and merges
// them. A failing tile contributes its fallback, or nothing. A cancelled
// context aborts the whole payload; a partial list is never returned.
func (p *TilePublisher) Compose(ctx context.Context) (protocol.Envelope, error) {
	tiles := p.Tiles()
	fragments := make([]protocol.Envelope, 0, len(tiles))
	for _, t := range tiles {
		if err := ctx.Err(); err != nil {
			return protocol.Envelope{}, err
		}
		env, err := t.Tile.Payload(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return protocol.Envelope{}, ctxErr
			}
			log.Printf("server: tile %s failed: %v", t.Name, err)
			fb, ok := t.Tile.(FallbackProvider)
			if !ok {
				continue
			}
			env = fb.Fallback(err)
		}
		fragments = append(fragments, env)
	}
	if err := ctx.Err(); err != nil {
		return protocol.Envelope{}, err
	}
	return protocol.Compose(fragments...), nil
}

func (p *TilePublisher) Publish(ctx context.Context, session *Session) (PublishResult, error) {
	start := time.Now()

	composed, err := p.Compose(ctx)
	if err != nil {
		return PublishResult{}, err
	}
	env := composed.Expanded()
	payload, err := protocol.Encode(env)
	fallback := false
	if err != nil {
		log.Printf("server: encode failed for device %s: %v", session.Device(), err)
		env = FallbackEnvelope(p.display, "render error")
		payload, err = protocol.Encode(env)
		if err != nil {
			return PublishResult{}, err
		}
		fallback = true
	}

	seq, err := session.Publish(env.Widgets, len(payload), time.Now())
	if err != nil {
		return PublishResult{}, err
	}

	drawables := protocol.DrawableCount(env.Widgets)
	result := PublishResult{
		Sequence:   seq,
		Envelope:   env,
		Payload:    payload,
		Drawables:  drawables,
		TouchAreas: len(env.Widgets) - drawables,
		Fallback:   fallback,
	}

	p.mu.RLock()
	store, observer := p.store, p.observer
	p.mu.RUnlock()

	if store != nil {
		if err := store.Save(session.Device(), result); err != nil {
			log.Printf("server: payload dump failed: %v", err)
		}
	}
	if observer != nil {
		observer.ObservePublish(session, result, time.Since(start))
	}
	return result, nil
}
