package server

import (
	"errors"
	"testing"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	session := m.Session("panel-1")
	if m.ActiveSessions() != 1 {
		t.Fatalf("expected 1 active session")
	}
	if again := m.Session("panel-1"); again != session {
		t.Fatalf("expected the same session for the same device")
	}

	found, err := m.Lookup("panel-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found != session {
		t.Fatalf("lookup returned different session")
	}

	m.Close("panel-1")
	if m.ActiveSessions() != 0 {
		t.Fatalf("expected 0 active sessions after close")
	}
	if _, err := m.Lookup("panel-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerDefaultDevice(t *testing.T) {
	m := NewManager()
	s := m.Session("")
	if s.Device() != DefaultDevice {
		t.Fatalf("expected default device, got %q", s.Device())
	}
	if m.Session(DefaultDevice) != s {
		t.Fatalf("empty device and default device should share a session")
	}
}

func TestManagerCloseAll(t *testing.T) {
	m := NewManager()
	a := m.Session("a")
	m.Session("b")
	m.CloseAll()
	if m.ActiveSessions() != 0 {
		t.Fatalf("expected no sessions after CloseAll")
	}
	if _, err := a.Publish(nil, 0, a.Stats().LastPublish); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected closed session, got %v", err)
	}
}
