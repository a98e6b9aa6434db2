package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/pkg/events"
	"github.com/tecu23/chess-clock/pkg/messages"
)

const (
	maxMessageSize = 4096
	sendBuffer     = 256
	writeWait      = 10 * time.Second
)

type Connection struct {
	ID   uuid.UUID
	ws   *websocket.Conn // The underlying Websocket connection
	hub  *Hub
	send chan []byte // Buffered channel of outbound messages, closed by the hub

	publisher *events.Publisher
	logger    *zap.Logger
}

func NewConnection(
	ws *websocket.Conn,
	hub *Hub,
	publisher *events.Publisher,
	logger *zap.Logger,
) *Connection {
	id := uuid.New()
	return &Connection{
		ID:        id,
		ws:        ws,
		hub:       hub,
		send:      make(chan []byte, sendBuffer),
		publisher: publisher,
		logger:    logger.With(zap.String("connection_id", id.String())),
	}
}

// ReadPump handles inbound messages from the client. When the client goes away
// the connection is unregistered and its sessions are terminated.
func (c *Connection) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.ws.Close()

		c.publisher.Publish(events.Event{
			Type:         events.EventConnectionClosed,
			ConnectionID: c.ID.String(),
		})
	}()

	c.ws.SetReadLimit(maxMessageSize)

	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read error", zap.Error(err))
			}
			return
		}

		// We only handle text
		if msgType != websocket.TextMessage {
			continue
		}

		var inbound messages.InboundMessage
		if err := json.Unmarshal(msg, &inbound); err != nil {
			c.logger.Debug("failed to parse inbound JSON", zap.Error(err))
			c.hub.sendError(c, "Malformed message")
			continue
		}

		if !c.hub.Inbound(InboundHubMessage{Conn: c, Message: inbound}) {
			return
		}
	}
}

// WritePump handles outbound messages to the client
func (c *Connection) WritePump() {
	defer c.ws.Close()

	for message := range c.send {
		if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			c.logger.Warn("set write deadline", zap.Error(err))
			return
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			c.logger.Warn("write error", zap.Error(err))
			return
		}
	}

	c.logger.Debug("send channel closed")
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// SendJSON queues v for the client. A client that stops reading loses messages
// instead of stalling the clocks that publish to it.
func (c *Connection) SendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("error marshaling JSON", zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping message")
	}
}
