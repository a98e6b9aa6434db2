package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/pkg/clock"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyPause = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}
	keyReset = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func newTestModel(t *testing.T, control timecontrol.TimeControl) (Model, *clock.MockSource) {
	t.Helper()
	source := clock.NewMockSource(time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC))
	return NewModel("Test", control, source, zap.NewNop()), source
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModel_StartSwitchAndDecay(t *testing.T) {
	m, source := newTestModel(t, timecontrol.NewClassical(timecontrol.ClassicalConfig{InitialMs: 60_000}))

	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "space start")

	m = press(t, m, keySpace)
	require.True(t, m.Controller().IsRunning())

	source.Advance(1500 * time.Millisecond)
	next, cmd := m.Update(frameMsg(time.Now()))
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, int64(58_500), m.Controller().State().Times[timecontrol.PlayerOne].RemainingMs)
	assert.Contains(t, m.View(), "00:59")

	m = press(t, m, keySpace)
	assert.Equal(t, timecontrol.PlayerTwo, m.Controller().ActivePlayer())
	assert.Equal(t, clock.MoveCount{1, 0}, m.Controller().MoveCount())
}

func TestModel_PauseResume(t *testing.T) {
	m, source := newTestModel(t, timecontrol.NewClassical(timecontrol.ClassicalConfig{InitialMs: 60_000}))

	m = press(t, m, keySpace)
	source.Advance(time.Second)
	m = press(t, m, keyPause)
	assert.False(t, m.Controller().IsRunning())
	assert.Contains(t, m.View(), "Paused")

	// Space does not resume a paused clock.
	m = press(t, m, keySpace)
	assert.False(t, m.Controller().IsRunning())

	m = press(t, m, keyPause)
	assert.True(t, m.Controller().IsRunning())
	assert.Equal(t, int64(59_000), m.Controller().State().Times[timecontrol.PlayerOne].RemainingMs)
}

func TestModel_GameOverAndReset(t *testing.T) {
	m, source := newTestModel(t, timecontrol.NewClassical(timecontrol.ClassicalConfig{InitialMs: 1_000}))

	m = press(t, m, keySpace)
	source.Advance(2 * time.Second)
	m = press(t, m, frameMsg(time.Now()))

	assert.True(t, m.Controller().State().GameOver)
	assert.Contains(t, m.View(), "Player 1 ran out of time")

	m = press(t, m, keySpace)
	assert.False(t, m.Controller().IsRunning())

	m = press(t, m, keyReset)
	assert.False(t, m.Controller().State().GameOver)
	assert.Contains(t, m.View(), "00:01")
}

func TestModel_HourglassShowsGain(t *testing.T) {
	m, source := newTestModel(t, timecontrol.NewHourglass(timecontrol.HourglassConfig{InitialMs: 60_000}))

	m = press(t, m, keySpace)
	source.Advance(5 * time.Second)
	m = press(t, m, frameMsg(time.Now()))

	assert.Contains(t, m.View(), "01:05 +")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, timecontrol.NewClassical(timecontrol.ClassicalConfig{InitialMs: 60_000}))
	m = press(t, m, keySpace)

	next, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, next.(Model).Controller().IsRunning())
}
