package events

import "sync"

// EventType represents the type of event
type EventType string

// Define event types
const (
	EventSessionCreated    EventType = "SESSION_CREATED"
	EventClockUpdated      EventType = "CLOCK_UPDATED"
	EventMoveCountUpdated  EventType = "MOVE_COUNT_UPDATED"
	EventGameOver          EventType = "GAME_OVER"
	EventSessionTerminated EventType = "SESSION_TERMINATED"
	EventConnectionClosed  EventType = "CONNECTION_CLOSED"

	// EventAll subscribes a handler to every event type
	EventAll EventType = "*"
)

// Event represents an event in the system
type Event struct {
	Type         EventType
	SessionID    string // Optional, empty for events not tied to a session
	ConnectionID string // Connection that owns the session, if any
	Payload      any
}

// Handler is a function that processes events
type Handler func(event Event)

// Publisher is the central event publisher
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (p *Publisher) Subscribe(eventType EventType, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[eventType] = append(p.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for all event types
func (p *Publisher) SubscribeAll(handler Handler) {
	p.Subscribe(EventAll, handler)
}

// Publish delivers an event to the handlers of its type, then to the handlers of
// all events. Handlers run on the publishing goroutine, in subscription order, so
// events from one source arrive in the order they were published.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	handlers := p.subscribers[event.Type]
	allHandlers := p.subscribers[EventAll]
	p.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}

	for _, handler := range allHandlers {
		handler(event)
	}
}
