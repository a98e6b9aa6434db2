package manager

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/internal/metrics"
	"github.com/tecu23/chess-clock/pkg/clock"
	"github.com/tecu23/chess-clock/pkg/events"
	"github.com/tecu23/chess-clock/pkg/presets"
	"github.com/tecu23/chess-clock/pkg/repository"
	"github.com/tecu23/chess-clock/pkg/session"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

var ErrSessionNotFound = errors.New("session not found")

// Option configures a Manager
type Option func(*Manager)

// WithTickInterval sets how often running clocks publish updates.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) { m.tickInterval = d }
}

// WithClock makes every session read time from source and take its scheduler
// from newScheduler. Tests use it to drive clocks by hand.
func WithClock(source clock.Source, newScheduler func() clock.Scheduler) Option {
	return func(m *Manager) {
		m.source = source
		m.newScheduler = newScheduler
	}
}

type Manager struct {
	repo      *repository.InMemorySessionRepository
	presets   *presets.Registry
	publisher *events.Publisher
	metrics   *metrics.Registry
	logger    *zap.Logger

	tickInterval time.Duration
	source       clock.Source
	newScheduler func() clock.Scheduler
}

// NewManager creates a new manager with in-memory storage
func NewManager(
	logger *zap.Logger,
	publisher *events.Publisher,
	registry *presets.Registry,
	m *metrics.Registry,
	opts ...Option,
) *Manager {
	manager := &Manager{
		repo:         repository.NewInMemoryRepository(logger),
		presets:      registry,
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
		tickInterval: clock.DefaultFrameInterval,
	}

	for _, opt := range opts {
		opt(manager)
	}

	manager.setupEventHandlers()

	return manager
}

// setupEventHandlers sets up event handlers for the session manager
func (m *Manager) setupEventHandlers() {
	m.publisher.Subscribe(events.EventConnectionClosed, func(event events.Event) {
		connectionID, err := uuid.Parse(event.ConnectionID)
		if err != nil {
			m.logger.Error("invalid connection id in connection closed event", zap.Error(err))
			return
		}
		m.TerminateByConnection(connectionID)
	})
}

func (m *Manager) clockOptions() []clock.Option {
	var opts []clock.Option
	if m.source != nil {
		opts = append(opts, clock.WithSource(m.source))
	}
	if m.newScheduler != nil {
		opts = append(opts, clock.WithScheduler(m.newScheduler()))
	} else {
		opts = append(opts, clock.WithScheduler(clock.FrameScheduler{Interval: m.tickInterval}))
	}
	return opts
}

// CreateSession builds a time control of type t from cfg and registers a session for it.
func (m *Manager) CreateSession(connectionID uuid.UUID, t timecontrol.Type, cfg map[string]any) (*session.Session, error) {
	control, err := timecontrol.New(t, cfg)
	if err != nil {
		return nil, err
	}
	return m.register(connectionID, control, ""), nil
}

// CreateFromPreset registers a session running the named preset.
func (m *Manager) CreateFromPreset(connectionID uuid.UUID, name string) (*session.Session, error) {
	control, err := m.presets.Build(name)
	if err != nil {
		return nil, err
	}
	return m.register(connectionID, control, name), nil
}

func (m *Manager) register(connectionID uuid.UUID, control timecontrol.TimeControl, preset string) *session.Session {
	s := session.New(session.CreateParams{
		SessionID:    uuid.New(),
		ConnectionID: connectionID,
		Preset:       preset,
		Control:      control,
		ClockOptions: m.clockOptions(),
	}, m.publisher, m.metrics, m.logger)

	m.repo.Save(s)
	m.metrics.SessionCreated(string(s.Type))

	m.logger.Info("created new clock session",
		zap.String("session_id", s.ID.String()),
		zap.String("type", string(s.Type)),
		zap.String("preset", preset),
	)

	s.Announce()
	return s
}

// GetSession returns a session by ID
func (m *Manager) GetSession(id uuid.UUID) (*session.Session, error) {
	s, err := m.repo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, err
}

// TerminateSession stops a session and removes it
func (m *Manager) TerminateSession(id uuid.UUID) error {
	s, err := m.repo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return err
	}

	s.Terminate()
	m.metrics.SessionEnded()
	return nil
}

// TerminateByConnection terminates every session owned by a connection and
// returns how many there were.
func (m *Manager) TerminateByConnection(connectionID uuid.UUID) int {
	terminated := 0
	for _, s := range m.repo.ListByConnection(connectionID) {
		if err := m.TerminateSession(s.ID); err == nil {
			terminated++
		}
	}

	if terminated > 0 {
		m.logger.Info("terminated sessions for connection",
			zap.String("connection_id", connectionID.String()),
			zap.Int("count", terminated),
		)
	}
	return terminated
}

// ActiveCount returns the number of sessions held by the manager
func (m *Manager) ActiveCount() int {
	return m.repo.Count()
}

// Shutdown terminates every session
func (m *Manager) Shutdown() {
	for _, s := range m.repo.List() {
		_ = m.TerminateSession(s.ID)
	}
	m.logger.Info("session manager shut down")
}
