package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/internal/metrics"
	"github.com/tecu23/chess-clock/pkg/events"
	"github.com/tecu23/chess-clock/pkg/session"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

func newSession(connectionID uuid.UUID, created time.Time) *session.Session {
	s := session.New(session.CreateParams{
		SessionID:    uuid.New(),
		ConnectionID: connectionID,
		Control:      timecontrol.NewHourglass(timecontrol.HourglassConfig{InitialMs: 60_000}),
	}, events.NewPublisher(), metrics.New(prometheus.NewRegistry()), zap.NewNop())
	s.CreatedAt = created
	return s
}

func TestRepository_SaveGetDelete(t *testing.T) {
	r := NewInMemoryRepository(zap.NewNop())
	s := newSession(uuid.New(), time.Now())

	r.Save(s)
	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Count())

	deleted, err := r.Delete(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, deleted)

	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Delete(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, r.Count())
}

func TestRepository_ListByConnection(t *testing.T) {
	r := NewInMemoryRepository(zap.NewNop())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	owner, other := uuid.New(), uuid.New()

	second := newSession(owner, base.Add(time.Minute))
	first := newSession(owner, base)
	foreign := newSession(other, base.Add(-time.Minute))
	r.Save(second)
	r.Save(first)
	r.Save(foreign)

	owned := r.ListByConnection(owner)
	require.Len(t, owned, 2)
	assert.Same(t, first, owned[0])
	assert.Same(t, second, owned[1])

	all := r.List()
	require.Len(t, all, 3)
	assert.Same(t, foreign, all[0])

	assert.Empty(t, r.ListByConnection(uuid.New()))
}
