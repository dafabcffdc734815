package server

import (
	"errors"
	"sync"
)

var (
	ErrSessionNotFound = errors.New("server: session not found")
)

// DefaultDevice names the session used when a request carries no device id.
const DefaultDevice = "default"

// Manager tracks one session per panel.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Session returns the session for device, creating it on first contact.
func (m *Manager) Session(device string) *Session {
	if device == "" {
		device = DefaultDevice
	}
	m.mu.RLock()
	session, ok := m.sessions[device]
	m.mu.RUnlock()
	if ok {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[device]; ok {
		return session
	}
	session = NewSession(device)
	m.sessions[device] = session
	debugLog.Printf("server: new session %s for device %q", session.ID(), device)
	return session
}

func (m *Manager) Lookup(device string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[device]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *Manager) Close(device string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[device]; ok {
		session.Close()
		delete(m.sessions, device)
	}
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for device, session := range m.sessions {
		session.Close()
		delete(m.sessions, device)
	}
}

func (m *Manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
