package timecontrol

import "fmt"

// ByoYomiConfig configures main time followed by byo-yomi periods
type ByoYomiConfig struct {
	InitialMs int64
	PeriodMs  int64
	Periods   int
}

var byoYomiParams = []Param{
	numberParam("initialTimeMin", "Initial Time (minutes)", 30, 1, 180),
	numberParam("periodTimeSec", "Period Time (seconds)", 30, 5, 60),
	numberParam("numPeriods", "Number of Periods", 5, 1, 10),
}

func byoYomiConfig(v Values) ByoYomiConfig {
	return ByoYomiConfig{
		InitialMs: minutesToMs(v.Number("initialTimeMin")),
		PeriodMs:  secondsToMs(v.Number("periodTimeSec")),
		Periods:   v.Int("numPeriods"),
	}
}

// ByoYomi runs main time, then a fixed number of fixed length periods. A move
// made inside a period restores the period in full.
type ByoYomi struct {
	cfg ByoYomiConfig
	base

	period    [2]int64
	inByoYomi [2]bool
	periods   [2]int
}

// NewByoYomi creates a byo-yomi control
func NewByoYomi(cfg ByoYomiConfig) *ByoYomi {
	c := &ByoYomi{cfg: cfg}
	c.Reset()
	return c
}

func (c *ByoYomi) Type() Type { return TypeByoYomi }

func (c *ByoYomi) RemainingTime(p Player) PlayerTime {
	if c.inByoYomi[p] {
		return PlayerTime{RemainingMs: clamp(c.period[p])}
	}
	return PlayerTime{RemainingMs: clamp(c.times[p])}
}

func (c *ByoYomi) SetRemainingTime(p Player, remainingMs int64) {
	if !c.inByoYomi[p] {
		c.times[p] = remainingMs
		if remainingMs <= 0 {
			c.times[p] = 0
			c.inByoYomi[p] = true
			c.periods[p] = c.cfg.Periods
			c.period[p] = c.cfg.PeriodMs
			if c.periods[p] <= 0 {
				c.period[p] = 0
			}
		}
		return
	}

	if c.periods[p] <= 0 {
		c.period[p] = 0
		return
	}

	c.period[p] = remainingMs
	if remainingMs <= 0 {
		c.periods[p]--
		if c.periods[p] > 0 {
			c.period[p] = c.cfg.PeriodMs
		} else {
			c.period[p] = 0
		}
	}
}

func (c *ByoYomi) SwitchPlayer() {
	p := c.current
	if c.inByoYomi[p] && c.periods[p] > 0 {
		c.period[p] = c.cfg.PeriodMs
	}
	c.flip()
}

func (c *ByoYomi) GameOver() (Player, bool) {
	for _, p := range [2]Player{c.current, c.current.Opp()} {
		if c.inByoYomi[p] && c.periods[p] <= 0 {
			return p, true
		}
	}
	return PlayerOne, false
}

func (c *ByoYomi) Reset() {
	c.base = base{times: [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}}
	c.period = [2]int64{c.cfg.PeriodMs, c.cfg.PeriodMs}
	c.inByoYomi = [2]bool{}
	c.periods = [2]int{c.cfg.Periods, c.cfg.Periods}
}

func (c *ByoYomi) Params() []Param { return cloneParams(byoYomiParams) }

// InByoYomi reports whether the player's main time is exhausted.
func (c *ByoYomi) InByoYomi(p Player) bool { return c.inByoYomi[p] }

// PeriodsRemaining is the number of periods the player still has.
func (c *ByoYomi) PeriodsRemaining(p Player) int { return c.periods[p] }

func (c *ByoYomi) Status(p Player) string {
	if !c.inByoYomi[p] {
		return ""
	}
	if c.periods[p] == 1 {
		return "Byo-yomi: 1 period left"
	}
	return fmt.Sprintf("Byo-yomi: %d periods left", c.periods[p])
}
