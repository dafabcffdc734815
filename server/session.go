// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: server/session.go
// Summary: Per-device session holding the last payload sent to the panel.
// Usage: The HTTP handler publishes into it and dispatches touches against it.
// Notes: The last-sent list is replaced whole under the session lock; dispatch never sees a mix.

package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/framegrace/inkwire/protocol"
)

var (
	ErrSessionClosed = errors.New("server: session closed")
)

var sessionStatsReporter func(SessionStats)

// SetSessionStatsObserver registers an observer for session stats.
func SetSessionStatsObserver(observer SessionStatsObserver) {
	if observer == nil {
		sessionStatsReporter = nil
		return
	}
	sessionStatsReporter = observer.ObserveSessionStats
}

// SessionStats summarises a session for logging.
type SessionStats struct {
	ID          uuid.UUID
	Device      string
	Sequence    uint64
	Widgets     int
	TouchAreas  int
	PayloadSize int
	Dispatches  uint64
	Misses      uint64
	LastPublish time.Time
}

// Session tracks what one panel is currently showing.
type Session struct {
	id     uuid.UUID
	device string

	mu          sync.Mutex
	sequence    uint64
	lastSent    []protocol.Widget
	payloadSize int
	lastPublish time.Time
	dispatches  uint64
	misses      uint64
	closed      bool
}

func NewSession(device string) *Session {
	return &Session{id: uuid.New(), device: device}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Device() string {
	return s.device
}

// Publish records widgets as the list the panel now shows and returns the
// payload sequence number. The session keeps its own copy of the list.
func (s *Session) Publish(widgets []protocol.Widget, payloadSize int, now time.Time) (uint64, error) {
	owned := make([]protocol.Widget, len(widgets))
	copy(owned, widgets)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrSessionClosed
	}
	s.sequence++
	s.lastSent = owned
	s.payloadSize = payloadSize
	s.lastPublish = now
	seq := s.sequence
	stats := s.statsLocked()
	s.mu.Unlock()

	if sessionStatsReporter != nil {
		sessionStatsReporter(stats)
	}
	return seq, nil
}

// Dispatch hit-tests (x, y) against the last published list.
func (s *Session) Dispatch(x, y int) (protocol.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := protocol.Dispatch(x, y, s.lastSent)
	if ok {
		s.dispatches++
	} else {
		s.misses++
	}
	return tok, ok
}

// LastSent returns a copy of the last published widget list.
func (s *Session) LastSent() []protocol.Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.Widget, len(s.lastSent))
	copy(out, s.lastSent)
	return out
}

func (s *Session) Sequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequence
}

func (s *Session) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Session) statsLocked() SessionStats {
	return SessionStats{
		ID:          s.id,
		Device:      s.device,
		Sequence:    s.sequence,
		Widgets:     protocol.DrawableCount(s.lastSent),
		TouchAreas:  len(s.lastSent) - protocol.DrawableCount(s.lastSent),
		PayloadSize: s.payloadSize,
		Dispatches:  s.dispatches,
		Misses:      s.misses,
		LastPublish: s.lastPublish,
	}
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.lastSent = nil
}
