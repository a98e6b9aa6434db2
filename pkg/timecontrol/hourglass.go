package timecontrol

// HourglassConfig configures an hourglass
type HourglassConfig struct {
	InitialMs int64
}

var hourglassParams = []Param{
	numberParam("initialTimeMinutes", "Initial Time (minutes)", 3, 1, 30),
}

func hourglassConfig(v Values) HourglassConfig {
	return HourglassConfig{InitialMs: minutesToMs(v.Number("initialTimeMinutes"))}
}

// Hourglass moves the time the player on move spends onto the opponent's clock,
// so the sum of both clocks stays constant
type Hourglass struct {
	cfg HourglassConfig
	base
}

// NewHourglass creates an hourglass control
func NewHourglass(cfg HourglassConfig) *Hourglass {
	c := &Hourglass{cfg: cfg}
	c.Reset()
	return c
}

func (c *Hourglass) Type() Type { return TypeHourglass }

func (c *Hourglass) RemainingTime(p Player) PlayerTime {
	return PlayerTime{RemainingMs: clamp(c.times[p]), IsGaining: p != c.current}
}

// SetRemainingTime redistributes a decrease of the player on move. Any other
// write is applied as is.
func (c *Hourglass) SetRemainingTime(p Player, remainingMs int64) {
	diff := c.times[p] - remainingMs
	c.times[p] = remainingMs
	if diff > 0 && p == c.current {
		c.times[p.Opp()] += diff
	}
}

func (c *Hourglass) SwitchPlayer() {
	c.flip()
}

func (c *Hourglass) GameOver() (Player, bool) {
	return c.expired()
}

func (c *Hourglass) Reset() {
	c.base = base{times: [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}}
}

func (c *Hourglass) Params() []Param { return cloneParams(hourglassParams) }

func (c *Hourglass) Status(Player) string { return "" }
