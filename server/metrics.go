package server

import (
	"io"
	"log"
	"os"
	"time"
)

// debugLog carries per-request chatter; it is silent unless verbose logging is on.
var debugLog = log.New(io.Discard, "inkwire ", log.LstdFlags)

// SetVerboseLogging routes debug output to stderr when enable is true.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
		return
	}
	debugLog.SetOutput(io.Discard)
}

// PublishObserver records publish metrics for instrumentation.
type PublishObserver interface {
	ObservePublish(session *Session, result PublishResult, duration time.Duration)
}

// PublishLogger logs publish metrics to the provided logger.
type PublishLogger struct {
	logger *log.Logger
}

// NewPublishLogger creates a new publish observer that logs metrics.
func NewPublishLogger(l *log.Logger) *PublishLogger {
	if l == nil {
		l = log.Default()
	}
	return &PublishLogger{logger: l}
}

func (p *PublishLogger) ObservePublish(session *Session, result PublishResult, duration time.Duration) {
	if p == nil || p.logger == nil || session == nil {
		return
	}
	id := session.ID()
	p.logger.Printf("publish device=%s session=%x seq=%d bytes=%d widgets=%d touch=%d mode=%s timer=%d fallback=%t duration=%s",
		session.Device(), id[:4], result.Sequence, len(result.Payload), result.Drawables, result.TouchAreas,
		result.Envelope.UpdateMode, result.Envelope.UpdateTimer.Wire(), result.Fallback, duration)
}

// SessionStatsObserver records session metrics.
type SessionStatsObserver interface {
	ObserveSessionStats(stats SessionStats)
}

// SessionStatsLogger logs session stats.
type SessionStatsLogger struct {
	logger *log.Logger
}

// NewSessionStatsLogger returns an observer that logs session stats.
func NewSessionStatsLogger(l *log.Logger) *SessionStatsLogger {
	if l == nil {
		l = log.Default()
	}
	return &SessionStatsLogger{logger: l}
}

func (s *SessionStatsLogger) ObserveSessionStats(stats SessionStats) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("session=%x device=%s seq=%d widgets=%d touch=%d dispatches=%d misses=%d",
		stats.ID[:4], stats.Device, stats.Sequence, stats.Widgets, stats.TouchAreas, stats.Dispatches, stats.Misses)
}
