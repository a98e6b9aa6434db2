package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/internal/metrics"
	"github.com/tecu23/chess-clock/pkg/events"
	"github.com/tecu23/chess-clock/pkg/manager"
	"github.com/tecu23/chess-clock/pkg/messages"
	"github.com/tecu23/chess-clock/pkg/presets"
	"github.com/tecu23/chess-clock/pkg/session"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

// InboundHubMessage are the messages that the hub receives
type InboundHubMessage struct {
	Conn    *Connection             // who sent it
	Message messages.InboundMessage // decoded envelope, payload still raw
}

// Hub keeps track of all active connections and routes their messages to the
// session manager. Session events are delivered to the connection that owns the
// session.
type Hub struct {
	mu          sync.RWMutex              // Protects connections
	connections map[uuid.UUID]*Connection // Registered connections

	register   chan *Connection       // Incoming registration
	unregister chan *Connection       // Incoming unregistration
	inbound    chan InboundHubMessage // Messages read from the connections

	quit     chan struct{}
	quitOnce sync.Once

	manager   *manager.Manager
	presets   *presets.Registry
	publisher *events.Publisher
	metrics   *metrics.Registry
	logger    *zap.Logger
}

// NewHub creates a new hub and subscribes it to session events
func NewHub(
	m *manager.Manager,
	registry *presets.Registry,
	publisher *events.Publisher,
	mr *metrics.Registry,
	logger *zap.Logger,
) *Hub {
	h := &Hub{
		connections: make(map[uuid.UUID]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundHubMessage),
		quit:        make(chan struct{}),
		manager:     m,
		presets:     registry,
		publisher:   publisher,
		metrics:     mr,
		logger:      logger,
	}

	for _, t := range []events.EventType{
		events.EventSessionCreated,
		events.EventClockUpdated,
		events.EventMoveCountUpdated,
		events.EventGameOver,
		events.EventSessionTerminated,
	} {
		publisher.Subscribe(t, h.deliver)
	}

	return h
}

// Run is the main execution of the hub. It returns after Shutdown.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.quit:
	}
}

func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}

// Inbound queues a message read from conn. It reports false once the hub is shut down.
func (h *Hub) Inbound(msg InboundHubMessage) bool {
	select {
	case h.inbound <- msg:
		return true
	case <-h.quit:
		return false
	}
}

// Shutdown stops the hub and closes every connection's outbound queue, which
// ends their write pumps.
func (h *Hub) Shutdown() {
	h.quitOnce.Do(func() {
		close(h.quit)

		h.mu.Lock()
		defer h.mu.Unlock()
		for id, conn := range h.connections {
			delete(h.connections, id)
			close(conn.send)
			h.metrics.Connections.Dec()
		}
		h.logger.Info("hub shut down")
	})
}

// ConnectionCount returns the number of registered connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	h.connections[conn.ID] = conn
	total := len(h.connections)
	h.mu.Unlock()

	h.metrics.Connections.Inc()
	h.logger.Info("connection registered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("total", total),
	)

	h.send(conn.ID, messages.Connected, messages.ConnectedPayload{ConnectionID: conn.ID.String()})
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[conn.ID]; ok {
		delete(h.connections, conn.ID)
		close(conn.send)
		h.metrics.Connections.Dec()
		h.logger.Info("connection unregistered",
			zap.String("connection_id", conn.ID.String()),
			zap.Int("total", len(h.connections)),
		)
	}
}

// deliver forwards a session event to the connection owning the session
func (h *Hub) deliver(event events.Event) {
	id, err := uuid.Parse(event.ConnectionID)
	if err != nil {
		return
	}
	h.send(id, string(event.Type), event.Payload)
}

// send queues a message for a registered connection. Connections are only closed
// under the write lock, so holding the read lock keeps the queue open.
func (h *Hub) send(connectionID uuid.UUID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.connections[connectionID]
	if !ok {
		return
	}
	conn.SendJSON(messages.OutboundMessage{Event: event, Payload: payload})
}

func (h *Hub) sendError(conn *Connection, msg string) {
	h.send(conn.ID, messages.Error, messages.ErrorPayload{Message: msg})
}

// handleInbound decodes the message payload and routes it.
func (h *Hub) handleInbound(msg InboundHubMessage) {
	conn := msg.Conn

	switch msg.Message.Type {
	case messages.ListControls:
		h.send(conn.ID, messages.Controls, messages.ControlsPayload{Controls: timecontrol.List()})

	case messages.GetParams:
		var payload messages.GetParamsPayload
		if err := decode(msg.Message.Payload, &payload); err != nil {
			h.sendError(conn, "Invalid GET_PARAMS payload")
			return
		}
		params, err := timecontrol.ParamsFor(timecontrol.Type(payload.Type))
		if err != nil {
			h.sendError(conn, err.Error())
			return
		}
		h.send(conn.ID, messages.Params, messages.ParamsPayload{Type: payload.Type, Params: params})

	case messages.ListPresets:
		h.send(conn.ID, messages.Presets, messages.PresetsPayload{Presets: h.presets.List()})

	case messages.CreateSession:
		var payload messages.CreateSessionPayload
		if err := decode(msg.Message.Payload, &payload); err != nil {
			h.sendError(conn, "Invalid CREATE_SESSION payload")
			return
		}

		// The SESSION_CREATED event answers the request.
		var err error
		if payload.Preset != "" {
			_, err = h.manager.CreateFromPreset(conn.ID, payload.Preset)
		} else {
			_, err = h.manager.CreateSession(conn.ID, timecontrol.Type(payload.Type), payload.Config)
		}
		if err != nil {
			h.sendError(conn, err.Error())
		}

	case messages.StartClock:
		h.withSession(msg, (*session.Session).Start)

	case messages.PauseClock:
		h.withSession(msg, (*session.Session).Pause)

	case messages.SwitchPlayer:
		h.withSession(msg, func(s *session.Session) {
			if !s.Switch() {
				h.sendError(conn, "Clock is not running")
			}
		})

	case messages.ResetClock:
		h.withSession(msg, (*session.Session).Reset)

	case messages.TerminateSession:
		h.withSession(msg, func(s *session.Session) {
			if err := h.manager.TerminateSession(s.ID); err != nil {
				h.sendError(conn, err.Error())
			}
		})

	default:
		h.sendError(conn, fmt.Sprintf("Unknown message type %q", msg.Message.Type))
	}
}

// withSession resolves the session named in the payload and runs fn on it. A
// connection can only reach the sessions it created.
func (h *Hub) withSession(msg InboundHubMessage, fn func(*session.Session)) {
	var payload messages.SessionPayload
	if err := decode(msg.Message.Payload, &payload); err != nil {
		h.sendError(msg.Conn, fmt.Sprintf("Invalid %s payload", msg.Message.Type))
		return
	}

	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		h.sendError(msg.Conn, fmt.Sprintf("Invalid session id %q", payload.SessionID))
		return
	}

	s, err := h.manager.GetSession(id)
	if err == nil && s.ConnectionID != msg.Conn.ID {
		err = fmt.Errorf("%w: %s", manager.ErrSessionNotFound, id)
	}
	if err != nil {
		h.sendError(msg.Conn, err.Error())
		return
	}

	fn(s)
}

var errMissingPayload = errors.New("missing payload")

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errMissingPayload
	}
	return json.Unmarshal(raw, v)
}
