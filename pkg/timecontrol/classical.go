package timecontrol

// ClassicalConfig configures a plain countdown
type ClassicalConfig struct {
	InitialMs int64
}

var classicalParams = []Param{
	numberParam("initialTimeMinutes", "Initial Time (minutes)", 5, 1, 180),
}

func classicalConfig(v Values) ClassicalConfig {
	return ClassicalConfig{InitialMs: minutesToMs(v.Number("initialTimeMinutes"))}
}

// Classical is two independent countdowns
type Classical struct {
	cfg ClassicalConfig
	base
}

// NewClassical creates a classical control
func NewClassical(cfg ClassicalConfig) *Classical {
	c := &Classical{cfg: cfg}
	c.Reset()
	return c
}

func (c *Classical) Type() Type { return TypeClassical }

func (c *Classical) RemainingTime(p Player) PlayerTime {
	return PlayerTime{RemainingMs: clamp(c.times[p])}
}

func (c *Classical) SetRemainingTime(p Player, remainingMs int64) {
	c.times[p] = remainingMs
}

func (c *Classical) SwitchPlayer() {
	c.flip()
}

func (c *Classical) GameOver() (Player, bool) {
	return c.expired()
}

func (c *Classical) Reset() {
	c.base = base{times: [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}}
}

func (c *Classical) Params() []Param { return cloneParams(classicalParams) }

func (c *Classical) Status(Player) string { return "" }
