package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

type harness struct {
	ctrl   *Controller
	source *MockSource
	sched  *HostScheduler

	times  []Times
	moves  []MoveCount
	losers []timecontrol.Player
}

func newHarness(t *testing.T, control timecontrol.TimeControl) *harness {
	t.Helper()

	h := &harness{
		source: NewMockSource(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)),
		sched:  &HostScheduler{},
	}
	h.ctrl = NewController(control, WithSource(h.source), WithScheduler(h.sched))
	h.ctrl.OnTimeUpdate(func(times Times) { h.times = append(h.times, times) })
	h.ctrl.OnMoveCountUpdate(func(moves MoveCount) { h.moves = append(h.moves, moves) })
	h.ctrl.OnGameOver(func(loser timecontrol.Player) { h.losers = append(h.losers, loser) })
	return h
}

// frame advances the mock time and runs one decay step.
func (h *harness) frame(d time.Duration) bool {
	h.source.Advance(d)
	return h.sched.Tick()
}

func (h *harness) remaining(p timecontrol.Player) int64 {
	return h.ctrl.State().Times[p].RemainingMs
}

func classical(ms int64) timecontrol.TimeControl {
	return timecontrol.NewClassical(timecontrol.ClassicalConfig{InitialMs: ms})
}

func TestController_DecaysActivePlayer(t *testing.T) {
	h := newHarness(t, classical(60_000))

	h.ctrl.Start()
	require.True(t, h.frame(1500*time.Millisecond))

	assert.Equal(t, int64(58_500), h.remaining(timecontrol.PlayerOne))
	assert.Equal(t, int64(60_000), h.remaining(timecontrol.PlayerTwo))
	require.Len(t, h.times, 1)
	assert.Equal(t, int64(58_500), h.times[0][timecontrol.PlayerOne].RemainingMs)
}

func TestController_NoTimeCountedTwice(t *testing.T) {
	h := newHarness(t, classical(60_000))
	h.ctrl.Start()

	for i := 0; i < 100; i++ {
		h.frame(10 * time.Millisecond)
	}
	assert.Equal(t, int64(59_000), h.remaining(timecontrol.PlayerOne))

	// Sub-millisecond frames still add up.
	for i := 0; i < 4; i++ {
		h.frame(1500 * time.Microsecond)
	}
	assert.Equal(t, int64(58_994), h.remaining(timecontrol.PlayerOne))
}

func TestController_StartWhileRunningKeepsAnchor(t *testing.T) {
	h := newHarness(t, classical(60_000))

	h.ctrl.Start()
	h.source.Advance(time.Second)
	h.ctrl.Start()
	h.frame(500 * time.Millisecond)

	assert.Equal(t, int64(58_500), h.remaining(timecontrol.PlayerOne))
}

func TestController_PauseIsIdempotent(t *testing.T) {
	h := newHarness(t, classical(60_000))

	h.ctrl.Start()
	h.source.Advance(time.Second)
	h.ctrl.Pause()
	h.ctrl.Pause()

	assert.False(t, h.ctrl.IsRunning())
	assert.False(t, h.sched.Scheduled())
	assert.Equal(t, int64(59_000), h.remaining(timecontrol.PlayerOne))

	assert.False(t, h.frame(5*time.Second))
	assert.Equal(t, int64(59_000), h.remaining(timecontrol.PlayerOne))

	// Resuming anchors at the resume instant.
	h.ctrl.Start()
	h.frame(time.Second)
	assert.Equal(t, int64(58_000), h.remaining(timecontrol.PlayerOne))
}

func TestController_SwitchPlayer(t *testing.T) {
	h := newHarness(t, timecontrol.NewIncrement(timecontrol.IncrementConfig{InitialMs: 60_000, IncrementMs: 2_000}))

	h.ctrl.Start()
	h.source.Advance(3 * time.Second)
	require.True(t, h.ctrl.SwitchPlayer())

	assert.Equal(t, timecontrol.PlayerTwo, h.ctrl.ActivePlayer())
	assert.Equal(t, MoveCount{1, 0}, h.ctrl.MoveCount())
	assert.Equal(t, []MoveCount{{1, 0}}, h.moves)
	assert.Equal(t, int64(59_000), h.remaining(timecontrol.PlayerOne))

	h.frame(time.Second)
	assert.Equal(t, int64(59_000), h.remaining(timecontrol.PlayerOne))
	assert.Equal(t, int64(59_000), h.remaining(timecontrol.PlayerTwo))
}

func TestController_SwitchIgnoredWhilePaused(t *testing.T) {
	h := newHarness(t, classical(60_000))

	assert.False(t, h.ctrl.SwitchPlayer())
	assert.Equal(t, timecontrol.PlayerOne, h.ctrl.ActivePlayer())
	assert.Equal(t, MoveCount{}, h.ctrl.MoveCount())
	assert.Empty(t, h.moves)
}

func TestController_GameOverFiresOnce(t *testing.T) {
	h := newHarness(t, classical(1_000))

	h.ctrl.Start()
	h.frame(600 * time.Millisecond)
	assert.Empty(t, h.losers)

	h.frame(600 * time.Millisecond)
	assert.Equal(t, []timecontrol.Player{timecontrol.PlayerOne}, h.losers)

	state := h.ctrl.State()
	assert.True(t, state.GameOver)
	assert.False(t, state.Running)
	assert.Equal(t, timecontrol.PlayerOne, state.Loser)
	assert.Equal(t, int64(0), state.Times[timecontrol.PlayerOne].RemainingMs)

	assert.False(t, h.frame(time.Second))
	h.ctrl.Start()
	assert.False(t, h.ctrl.IsRunning())
	assert.Len(t, h.losers, 1)
}

func TestController_SwitchAfterFlagEndsGame(t *testing.T) {
	h := newHarness(t, timecontrol.NewIncrement(timecontrol.IncrementConfig{InitialMs: 1_000, IncrementMs: 2_000}))

	h.ctrl.Start()
	h.frame(990 * time.Millisecond)
	h.source.Advance(50 * time.Millisecond)

	assert.False(t, h.ctrl.SwitchPlayer())
	assert.Equal(t, []timecontrol.Player{timecontrol.PlayerOne}, h.losers)
	assert.Empty(t, h.moves)

	state := h.ctrl.State()
	assert.True(t, state.GameOver)
	assert.False(t, state.Running)
	assert.Equal(t, timecontrol.PlayerOne, state.ActivePlayer)
	assert.Equal(t, int64(0), state.Times[timecontrol.PlayerOne].RemainingMs)

	assert.False(t, h.frame(time.Millisecond))
	assert.Equal(t, int64(0), h.remaining(timecontrol.PlayerOne))
	assert.Len(t, h.losers, 1)
}

func TestController_PauseAfterFlagEndsGame(t *testing.T) {
	h := newHarness(t, classical(1_000))

	h.ctrl.Start()
	h.frame(500 * time.Millisecond)
	h.source.Advance(600 * time.Millisecond)
	h.ctrl.Pause()

	assert.Equal(t, []timecontrol.Player{timecontrol.PlayerOne}, h.losers)
	assert.True(t, h.ctrl.State().GameOver)

	h.ctrl.Start()
	assert.False(t, h.ctrl.IsRunning())
	assert.Len(t, h.losers, 1)
}

func TestController_StateUpdateIsOneSnapshot(t *testing.T) {
	h := newHarness(t, timecontrol.NewIncrement(timecontrol.IncrementConfig{InitialMs: 60_000, IncrementMs: 2_000}))

	var states []State
	h.ctrl.OnStateUpdate(func(s State) { states = append(states, s) })

	h.ctrl.Start()
	h.frame(time.Second)
	require.True(t, h.ctrl.SwitchPlayer())

	require.Len(t, states, 2)
	last := states[1]
	assert.True(t, last.Running)
	assert.Equal(t, timecontrol.PlayerTwo, last.ActivePlayer)
	assert.Equal(t, int64(61_000), last.Times[timecontrol.PlayerOne].RemainingMs)
	assert.Equal(t, MoveCount{1, 0}, last.MoveCount)
	assert.Equal(t, h.times[1], last.Times)
}

func TestController_ResetAfterGameOver(t *testing.T) {
	h := newHarness(t, classical(1_000))

	h.ctrl.Start()
	h.source.Advance(500 * time.Millisecond)
	h.ctrl.SwitchPlayer()
	h.frame(2 * time.Second)
	require.Len(t, h.losers, 1)
	assert.Equal(t, timecontrol.PlayerTwo, h.losers[0])

	h.times, h.moves = nil, nil
	h.ctrl.Reset()

	state := h.ctrl.State()
	assert.False(t, state.GameOver)
	assert.Equal(t, timecontrol.PlayerOne, state.ActivePlayer)
	assert.Equal(t, MoveCount{}, state.MoveCount)
	assert.Equal(t, Times{{RemainingMs: 1_000}, {RemainingMs: 1_000}}, state.Times)
	assert.Len(t, h.times, 1)
	assert.Equal(t, []MoveCount{{}}, h.moves)

	h.ctrl.Start()
	assert.True(t, h.ctrl.IsRunning())
}

func TestController_ResetWhileRunning(t *testing.T) {
	h := newHarness(t, classical(60_000))

	h.ctrl.Start()
	h.source.Advance(time.Second)
	h.ctrl.SwitchPlayer()
	h.ctrl.Reset()

	assert.False(t, h.ctrl.IsRunning())
	assert.False(t, h.sched.Scheduled())
	assert.Equal(t, timecontrol.PlayerOne, h.ctrl.ActivePlayer())
	assert.Equal(t, int64(60_000), h.remaining(timecontrol.PlayerOne))
}

func TestController_ByoYomiThroughDecay(t *testing.T) {
	h := newHarness(t, timecontrol.NewByoYomi(timecontrol.ByoYomiConfig{InitialMs: 1_000, PeriodMs: 30_000, Periods: 2}))

	h.ctrl.Start()
	h.frame(time.Second)
	state := h.ctrl.State()
	assert.Equal(t, int64(30_000), state.Times[timecontrol.PlayerOne].RemainingMs)
	assert.Equal(t, "Byo-yomi: 2 periods left", state.Status[timecontrol.PlayerOne])

	h.frame(30 * time.Second)
	assert.Equal(t, "Byo-yomi: 1 period left", h.ctrl.State().Status[timecontrol.PlayerOne])
	assert.Empty(t, h.losers)

	h.frame(30 * time.Second)
	assert.Equal(t, []timecontrol.Player{timecontrol.PlayerOne}, h.losers)
}

func TestController_HourglassOpponentGains(t *testing.T) {
	h := newHarness(t, timecontrol.NewHourglass(timecontrol.HourglassConfig{InitialMs: 60_000}))

	h.ctrl.Start()
	h.frame(4 * time.Second)

	state := h.ctrl.State()
	assert.Equal(t, timecontrol.PlayerTime{RemainingMs: 56_000}, state.Times[timecontrol.PlayerOne])
	assert.Equal(t, timecontrol.PlayerTime{RemainingMs: 64_000, IsGaining: true}, state.Times[timecontrol.PlayerTwo])
}

func TestController_CallbacksMayReenter(t *testing.T) {
	h := newHarness(t, classical(1_000))

	var seen State
	h.ctrl.OnGameOver(func(timecontrol.Player) {
		seen = h.ctrl.State()
		h.ctrl.Pause()
	})

	h.ctrl.Start()
	h.frame(2 * time.Second)
	assert.True(t, seen.GameOver)
}

func TestController_ReplacingCallback(t *testing.T) {
	h := newHarness(t, classical(60_000))

	var first, second int
	h.ctrl.OnMoveCountUpdate(func(MoveCount) { first++ })
	h.ctrl.OnMoveCountUpdate(func(MoveCount) { second++ })
	h.ctrl.OnTimeUpdate(nil)

	h.ctrl.Start()
	h.ctrl.SwitchPlayer()
	h.frame(time.Second)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestController_FrameSchedulerEndToEnd(t *testing.T) {
	ctrl := NewController(classical(30), WithScheduler(FrameScheduler{Interval: time.Millisecond}))

	done := make(chan timecontrol.Player, 1)
	ctrl.OnGameOver(func(loser timecontrol.Player) { done <- loser })
	ctrl.Start()

	select {
	case loser := <-done:
		assert.Equal(t, timecontrol.PlayerOne, loser)
	case <-time.After(2 * time.Second):
		t.Fatal("game over was never signalled")
	}
	assert.False(t, ctrl.IsRunning())
}
