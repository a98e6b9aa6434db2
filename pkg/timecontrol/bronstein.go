package timecontrol

// BronsteinConfig configures a Bronstein delay
type BronsteinConfig struct {
	InitialMs int64
	DelayMs   int64
}

var bronsteinParams = []Param{
	numberParam("initialTimeMinutes", "Initial Time (minutes)", 5, 1, 180),
	numberParam("delaySeconds", "Delay (seconds)", 3, 0, 60),
}

func bronsteinConfig(v Values) BronsteinConfig {
	return BronsteinConfig{
		InitialMs: minutesToMs(v.Number("initialTimeMinutes")),
		DelayMs:   secondsToMs(v.Number("delaySeconds")),
	}
}

// Bronstein gives back the time spent on a move, capped at the delay
type Bronstein struct {
	cfg BronsteinConfig
	base

	// moveStart is the remaining time when the player's current turn began,
	// captured on the first update of the turn while awaitingStart is set.
	moveStart     [2]int64
	awaitingStart [2]bool
}

// NewBronstein creates a Bronstein delay control
func NewBronstein(cfg BronsteinConfig) *Bronstein {
	c := &Bronstein{cfg: cfg}
	c.Reset()
	return c
}

func (c *Bronstein) Type() Type { return TypeBronstein }

func (c *Bronstein) RemainingTime(p Player) PlayerTime {
	return PlayerTime{RemainingMs: clamp(c.times[p])}
}

func (c *Bronstein) SetRemainingTime(p Player, remainingMs int64) {
	if p == c.current && c.awaitingStart[p] {
		c.moveStart[p] = c.times[p]
		c.awaitingStart[p] = false
	}
	c.times[p] = remainingMs
}

// SwitchPlayer credits min(spent, delay) to the outgoing player.
func (c *Bronstein) SwitchPlayer() {
	p := c.current
	if !c.awaitingStart[p] {
		c.times[p] += c.Credit(c.moveStart[p] - c.times[p])
	}
	c.awaitingStart[p] = true
	c.flip()
}

// Credit is the amount given back for a move that used spentMs.
func (c *Bronstein) Credit(spentMs int64) int64 {
	if spentMs <= 0 {
		return 0
	}
	return min(spentMs, c.cfg.DelayMs)
}

func (c *Bronstein) GameOver() (Player, bool) {
	return c.expired()
}

func (c *Bronstein) Reset() {
	c.base = base{times: [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}}
	c.moveStart = [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}
	c.awaitingStart = [2]bool{true, true}
}

func (c *Bronstein) Params() []Param { return cloneParams(bronsteinParams) }

func (c *Bronstein) Status(Player) string { return "" }
