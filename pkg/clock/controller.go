package clock

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

// Times is a snapshot of both players' clocks
type Times [2]timecontrol.PlayerTime

// MoveCount is the number of moves each player has made
type MoveCount [2]int

// State is a consistent snapshot of the controller and its control
type State struct {
	Running      bool               `json:"running"`
	GameOver     bool               `json:"game_over"`
	Loser        timecontrol.Player `json:"loser"` // Only meaningful when GameOver is set
	ActivePlayer timecontrol.Player `json:"active_player"`
	MoveCount    MoveCount          `json:"move_count"`
	Times        Times              `json:"times"`
	Status       [2]string          `json:"status"`
}

// handler holds zero or one registered callback and is safe to fire when empty
type handler[T any] struct {
	fn func(T)
}

func (h handler[T]) fire(v T) {
	if h.fn != nil {
		h.fn(v)
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithSource sets the time source, the system clock by default.
func WithSource(s Source) Option {
	return func(c *Controller) { c.source = s }
}

// WithScheduler sets what re-invokes the decay step, a FrameScheduler by default.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller runs a time control in real time: it turns elapsed wall clock time
// into deductions from the active player's clock, orchestrates player switches,
// counts moves and detects the end of the game.
//
// Callbacks run synchronously on the goroutine that caused them, after the
// controller's lock is released, so they may call back into the controller.
type Controller struct {
	mu sync.Mutex

	control   timecontrol.TimeControl
	source    Source
	scheduler Scheduler
	logger    *zap.Logger

	running bool
	over    bool
	loser   timecontrol.Player
	active  timecontrol.Player
	anchor  time.Time // When the active player's unaccounted time started
	moves   MoveCount
	stop    func()

	onTime  handler[Times]
	onState handler[State]
	onMoves handler[MoveCount]
	onOver  handler[timecontrol.Player]

	pending []func()
}

// NewController wraps a freshly built or reset control.
func NewController(control timecontrol.TimeControl, opts ...Option) *Controller {
	c := &Controller{
		control:   control,
		source:    RealSource{},
		scheduler: FrameScheduler{},
		logger:    zap.NewNop(),
		active:    control.CurrentPlayer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(zap.String("control", string(control.Type())))

	return c
}

// OnTimeUpdate registers the time update callback, replacing any previous one.
func (c *Controller) OnTimeUpdate(fn func(Times)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTime = handler[Times]{fn: fn}
}

// OnStateUpdate registers a callback receiving the full state each time the
// times are reported, replacing any previous one.
func (c *Controller) OnStateUpdate(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = handler[State]{fn: fn}
}

// OnMoveCountUpdate registers the move count callback, replacing any previous one.
func (c *Controller) OnMoveCountUpdate(fn func(MoveCount)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMoves = handler[MoveCount]{fn: fn}
}

// OnGameOver registers the game over callback, replacing any previous one.
// It receives the player who ran out of time.
func (c *Controller) OnGameOver(fn func(loser timecontrol.Player)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOver = handler[timecontrol.Player]{fn: fn}
}

// Start starts the clock for the active player. It does nothing while running
// or once the game is over.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.over {
		return
	}

	c.running = true
	c.anchor = c.source.Now()
	c.stop = c.scheduler.Schedule(c.step)

	c.logger.Debug("clock started", zap.Stringer("player", c.active))
}

// Pause accounts the time elapsed so far and stops the clock.
func (c *Controller) Pause() {
	c.mu.Lock()

	if !c.running {
		c.mu.Unlock()
		return
	}

	c.decay()
	over := c.checkGameOver()
	if !over {
		c.halt()
		c.logger.Debug("clock paused", zap.Stringer("player", c.active))
	}

	c.queueTimes()
	if over {
		c.queueGameOver()
	}
	c.unlockAndNotify()
}

// Reset stops the clock and restores the control and the move counters.
func (c *Controller) Reset() {
	c.mu.Lock()

	if c.running {
		c.decay()
		c.halt()
	}

	c.control.Reset()
	c.active = c.control.CurrentPlayer()
	c.moves = MoveCount{}
	c.over = false
	c.loser = timecontrol.PlayerOne

	c.queueTimes()
	c.queueMoves()

	c.logger.Debug("clock reset")
	c.unlockAndNotify()
}

// SwitchPlayer ends the active player's move. It only has an effect while the
// clock runs and reports whether the switch happened. A player whose time ran
// out before the switch loses instead.
func (c *Controller) SwitchPlayer() bool {
	c.mu.Lock()

	if !c.running {
		c.mu.Unlock()
		return false
	}

	c.decay()
	if c.checkGameOver() {
		c.queueTimes()
		c.queueGameOver()
		c.unlockAndNotify()
		return false
	}

	outgoing := c.active
	c.moves[outgoing]++
	c.queueMoves()

	c.control.SwitchPlayer()
	c.active = outgoing.Opp()
	c.anchor = c.source.Now()
	c.queueTimes()

	c.logger.Debug("player switched",
		zap.Stringer("from", outgoing),
		zap.Int("moves", c.moves[outgoing]),
	)
	c.unlockAndNotify()
	return true
}

// step is the decay step invoked by the scheduler.
func (c *Controller) step() {
	c.mu.Lock()

	if !c.running {
		c.mu.Unlock()
		return
	}

	c.decay()
	over := c.checkGameOver()

	c.queueTimes()
	if over {
		c.queueGameOver()
	}
	c.unlockAndNotify()
}

// checkGameOver stops the clock once the control reports a loser and reports
// whether the game is over.
func (c *Controller) checkGameOver() bool {
	loser, over := c.control.GameOver()
	if !over {
		return false
	}

	c.halt()
	c.over = true
	c.loser = loser

	c.logger.Info("game over",
		zap.Stringer("loser", loser),
		zap.Int("moves_one", c.moves[timecontrol.PlayerOne]),
		zap.Int("moves_two", c.moves[timecontrol.PlayerTwo]),
	)
	return true
}

// decay deducts the time elapsed since the anchor from the active player. The
// anchor moves forward by exactly the deducted amount so no time is counted twice
// and sub-millisecond remainders carry over to the next step.
func (c *Controller) decay() {
	elapsed := c.source.Now().Sub(c.anchor).Milliseconds()
	if elapsed <= 0 {
		return
	}

	remaining := c.control.RemainingTime(c.active).RemainingMs
	c.control.SetRemainingTime(c.active, max(0, remaining-elapsed))
	c.anchor = c.anchor.Add(time.Duration(elapsed) * time.Millisecond)
}

func (c *Controller) halt() {
	c.running = false
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

func (c *Controller) times() Times {
	return Times{
		c.control.RemainingTime(timecontrol.PlayerOne),
		c.control.RemainingTime(timecontrol.PlayerTwo),
	}
}

// queueTimes queues the time update and the state update, both taken from the
// same snapshot.
func (c *Controller) queueTimes() {
	state := c.snapshot()
	onTime, onState := c.onTime, c.onState
	c.pending = append(c.pending, func() {
		onTime.fire(state.Times)
		onState.fire(state)
	})
}

func (c *Controller) queueGameOver() {
	fire, loser := c.onOver, c.loser
	c.pending = append(c.pending, func() { fire.fire(loser) })
}

func (c *Controller) queueMoves() {
	fire, moves := c.onMoves, c.moves
	c.pending = append(c.pending, func() { fire.fire(moves) })
}

func (c *Controller) unlockAndNotify() {
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, notify := range pending {
		notify()
	}
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	return State{
		Running:      c.running,
		GameOver:     c.over,
		Loser:        c.loser,
		ActivePlayer: c.active,
		MoveCount:    c.moves,
		Times:        c.times(),
		Status: [2]string{
			c.control.Status(timecontrol.PlayerOne),
			c.control.Status(timecontrol.PlayerTwo),
		},
	}
}

// IsRunning reports whether the clock is running.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// ActivePlayer returns whose clock runs.
func (c *Controller) ActivePlayer() timecontrol.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// MoveCount returns the moves made by each player.
func (c *Controller) MoveCount() MoveCount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moves
}

// Type returns the type of the wrapped control.
func (c *Controller) Type() timecontrol.Type {
	return c.control.Type()
}
