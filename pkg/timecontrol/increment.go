package timecontrol

// IncrementConfig configures a Fischer increment
type IncrementConfig struct {
	InitialMs   int64
	IncrementMs int64
}

var incrementParams = []Param{
	numberParam("initialTimeMinutes", "Initial Time (minutes)", 3, 1, 180),
	numberParam("incrementSeconds", "Increment (seconds)", 2, 0, 60),
}

func incrementConfig(v Values) IncrementConfig {
	return IncrementConfig{
		InitialMs:   minutesToMs(v.Number("initialTimeMinutes")),
		IncrementMs: secondsToMs(v.Number("incrementSeconds")),
	}
}

// Increment adds a fixed amount to the clock of the player who just moved
type Increment struct {
	cfg IncrementConfig
	base
}

// NewIncrement creates a Fischer increment control
func NewIncrement(cfg IncrementConfig) *Increment {
	c := &Increment{cfg: cfg}
	c.Reset()
	return c
}

func (c *Increment) Type() Type { return TypeIncrement }

func (c *Increment) RemainingTime(p Player) PlayerTime {
	return PlayerTime{RemainingMs: clamp(c.times[p])}
}

func (c *Increment) SetRemainingTime(p Player, remainingMs int64) {
	c.times[p] = remainingMs
}

// SwitchPlayer credits the increment to the outgoing player before the turn flips.
func (c *Increment) SwitchPlayer() {
	c.times[c.current] += c.cfg.IncrementMs
	c.flip()
}

func (c *Increment) GameOver() (Player, bool) {
	return c.expired()
}

func (c *Increment) Reset() {
	c.base = base{times: [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}}
}

func (c *Increment) Params() []Param { return cloneParams(incrementParams) }

func (c *Increment) Status(Player) string { return "" }
