// Package session binds a clock controller to the event publisher so connected
// clients hear about every change of their clock.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/internal/metrics"
	"github.com/tecu23/chess-clock/pkg/clock"
	"github.com/tecu23/chess-clock/pkg/events"
	"github.com/tecu23/chess-clock/pkg/messages"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusRunning    Status = "running"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
	StatusTerminated Status = "terminated"
)

type CreateParams struct {
	SessionID    uuid.UUID
	ConnectionID uuid.UUID
	Preset       string // Name of the preset the control came from, if any
	Control      timecontrol.TimeControl
	ClockOptions []clock.Option
}

type Session struct {
	ID           uuid.UUID
	ConnectionID uuid.UUID
	Type         timecontrol.Type
	Preset       string
	CreatedAt    time.Time

	Clock *clock.Controller

	mu         sync.Mutex
	started    bool
	terminated bool

	publisher *events.Publisher
	metrics   *metrics.Registry
	logger    *zap.Logger
}

// New creates a session around params.Control and wires the clock callbacks to
// the publisher. The clock is not started.
func New(
	params CreateParams,
	publisher *events.Publisher,
	m *metrics.Registry,
	logger *zap.Logger,
) *Session {
	logger = logger.With(
		zap.String("session_id", params.SessionID.String()),
		zap.String("connection_id", params.ConnectionID.String()),
	)

	opts := append([]clock.Option{clock.WithLogger(logger)}, params.ClockOptions...)

	s := &Session{
		ID:           params.SessionID,
		ConnectionID: params.ConnectionID,
		Type:         params.Control.Type(),
		Preset:       params.Preset,
		CreatedAt:    time.Now(),
		Clock:        clock.NewController(params.Control, opts...),
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
	}

	s.Clock.OnStateUpdate(s.publishState)
	s.Clock.OnMoveCountUpdate(s.publishMoves)
	s.Clock.OnGameOver(s.publishGameOver)

	return s
}

func (s *Session) publish(eventType events.EventType, payload any) {
	s.publisher.Publish(events.Event{
		Type:         eventType,
		SessionID:    s.ID.String(),
		ConnectionID: s.ConnectionID.String(),
		Payload:      payload,
	})
}

func (s *Session) publishState(state clock.State) {
	s.publish(events.EventClockUpdated, messages.ClockUpdatedPayload{
		SessionID:    s.ID.String(),
		Times:        state.Times,
		ActivePlayer: state.ActivePlayer,
		Status:       state.Status,
	})
}

func (s *Session) publishMoves(moves clock.MoveCount) {
	s.publish(events.EventMoveCountUpdated, messages.MoveCountUpdatedPayload{
		SessionID: s.ID.String(),
		MoveCount: moves,
	})
}

func (s *Session) publishGameOver(loser timecontrol.Player) {
	s.metrics.RecordGameOver(string(s.Type))
	s.publish(events.EventGameOver, messages.GameOverPayload{
		SessionID: s.ID.String(),
		Loser:     loser,
	})
}

// Announce publishes the session's creation along with its initial state.
func (s *Session) Announce() {
	s.publish(events.EventSessionCreated, messages.SessionCreatedPayload{
		SessionID: s.ID.String(),
		Type:      string(s.Type),
		State:     s.Clock.State(),
	})
}

func (s *Session) Start() {
	if s.isTerminated() {
		return
	}
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.Clock.Start()
}

func (s *Session) Pause() {
	s.Clock.Pause()
}

// Switch ends the active player's move. It reports whether the clock accepted it.
func (s *Session) Switch() bool {
	if s.isTerminated() {
		return false
	}
	if !s.Clock.SwitchPlayer() {
		return false
	}
	s.metrics.RecordSwitch(string(s.Type))
	return true
}

func (s *Session) Reset() {
	if s.isTerminated() {
		return
	}
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	s.Clock.Reset()
}

// Terminate stops the clock and announces the end of the session. Later calls do nothing.
func (s *Session) Terminate() {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	s.mu.Unlock()

	s.Clock.OnStateUpdate(nil)
	s.Clock.OnMoveCountUpdate(nil)
	s.Clock.OnGameOver(nil)
	s.Clock.Pause()

	s.publish(events.EventSessionTerminated, messages.SessionTerminatedPayload{
		SessionID: s.ID.String(),
	})
	s.logger.Info("session terminated")
}

func (s *Session) isTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

// Status derives the session status from the clock.
func (s *Session) Status() Status {
	s.mu.Lock()
	terminated, started := s.terminated, s.started
	s.mu.Unlock()

	state := s.Clock.State()
	switch {
	case terminated:
		return StatusTerminated
	case state.GameOver:
		return StatusCompleted
	case state.Running:
		return StatusRunning
	case started:
		return StatusPaused
	default:
		return StatusPending
	}
}
