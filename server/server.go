package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

// maxEventSize bounds the body of an event report.
const maxEventSize = 64

// Server answers panel polls over HTTP. GET returns the current payload;
// POST carries an event report and returns the payload that follows it.
type Server struct {
	addr         string
	manager      *Manager
	publisher    Publisher
	sink         EventSink
	deviceHeader string

	// cycle serialises event handling and publishing: one inbound request,
	// one outbound payload, one at a time.
	cycle sync.Mutex

	httpServer *http.Server
	listener   net.Listener
	wg         sync.WaitGroup
}

func NewServer(addr string, manager *Manager, publisher Publisher) *Server {
	if manager == nil {
		manager = NewManager()
	}
	return &Server{
		addr:         addr,
		manager:      manager,
		publisher:    publisher,
		sink:         nopSink{},
		deviceHeader: "X-Device-ID",
	}
}

func (s *Server) SetEventSink(sink EventSink) {
	if sink == nil {
		sink = nopSink{}
	}
	s.sink = sink
}

// SetDeviceHeader names the request header that identifies the panel.
func (s *Server) SetDeviceHeader(name string) {
	if name != "" {
		s.deviceHeader = name
	}
}

func (s *Server) Manager() *Manager {
	return s.manager
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handlePoll)
	mux.HandleFunc("POST /", s.handleEvent)
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = l
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: serve failed: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound listener address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.manager.CloseAll()
	return nil
}

func (s *Server) session(r *http.Request) *Session {
	return s.manager.Session(r.Header.Get(s.deviceHeader))
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)

	s.cycle.Lock()
	defer s.cycle.Unlock()
	s.respond(w, r, session)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventSize+1))
	if err != nil {
		http.Error(w, "read failed", http.StatusBadRequest)
		return
	}
	ev, err := protocol.DecodeEvent(body)
	if err != nil {
		debugLog.Printf("server: bad event from %s: %v", session.Device(), err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.cycle.Lock()
	defer s.cycle.Unlock()

	switch ev.Type {
	case protocol.EventTouch:
		tok, ok := session.Dispatch(ev.X, ev.Y)
		if !ok || tok == nil {
			debugLog.Printf("server: device %s touch (%d,%d) hit nothing", session.Device(), ev.X, ev.Y)
			break
		}
		s.sink.HandleToken(session, tok)
	case protocol.EventButton:
		s.sink.HandleToken(session, protocol.ButtonToken{Button: ev.Button})
	}
	s.respond(w, r, session)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, session *Session) {
	result, err := s.publisher.Publish(r.Context(), session)
	if err != nil {
		log.Printf("server: publish for %s failed: %v", session.Device(), err)
		http.Error(w, "publish failed", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "application/octet-stream")
	h.Set("Content-Length", strconv.Itoa(len(result.Payload)))
	h.Set("X-Inkwire-Sequence", strconv.FormatUint(result.Sequence, 10))
	if _, err := w.Write(result.Payload); err != nil {
		debugLog.Printf("server: write to %s failed: %v", session.Device(), err)
	}
}
