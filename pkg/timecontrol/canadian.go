package timecontrol

import "fmt"

// CanadianConfig configures main time followed by Canadian overtime blocks
type CanadianConfig struct {
	InitialMs     int64
	OvertimeMs    int64
	MovesRequired int
}

var canadianParams = []Param{
	numberParam("initialTimeMin", "Initial Time (minutes)", 25, 1, 180),
	numberParam("overtimeMin", "Overtime (minutes)", 5, 1, 30),
	numberParam("movesRequired", "Moves per Overtime Block", 20, 5, 50),
}

func canadianConfig(v Values) CanadianConfig {
	return CanadianConfig{
		InitialMs:     minutesToMs(v.Number("initialTimeMin")),
		OvertimeMs:    minutesToMs(v.Number("overtimeMin")),
		MovesRequired: v.Int("movesRequired"),
	}
}

// Canadian runs main time, then overtime blocks that must each cover a number of moves
type Canadian struct {
	cfg CanadianConfig
	base

	overtime   [2]int64
	inOvertime [2]bool
	movesMade  [2]int
}

// NewCanadian creates a Canadian overtime control
func NewCanadian(cfg CanadianConfig) *Canadian {
	c := &Canadian{cfg: cfg}
	c.Reset()
	return c
}

func (c *Canadian) Type() Type { return TypeCanadian }

func (c *Canadian) RemainingTime(p Player) PlayerTime {
	if c.inOvertime[p] {
		return PlayerTime{RemainingMs: clamp(c.overtime[p])}
	}
	return PlayerTime{RemainingMs: clamp(c.times[p])}
}

func (c *Canadian) SetRemainingTime(p Player, remainingMs int64) {
	if !c.inOvertime[p] {
		c.times[p] = remainingMs
		if remainingMs <= 0 {
			c.times[p] = 0
			c.inOvertime[p] = true
			c.movesMade[p] = 0
			c.overtime[p] = c.cfg.OvertimeMs
		}
		return
	}

	c.overtime[p] = clamp(remainingMs)
}

// SwitchPlayer counts a move made in overtime and starts a new block once the
// required number of moves is reached.
func (c *Canadian) SwitchPlayer() {
	p := c.current
	if c.inOvertime[p] && c.overtime[p] > 0 {
		c.movesMade[p]++
		if c.movesMade[p] >= c.cfg.MovesRequired {
			c.movesMade[p] = 0
			c.overtime[p] = c.cfg.OvertimeMs
		}
	}
	c.flip()
}

func (c *Canadian) GameOver() (Player, bool) {
	for _, p := range [2]Player{c.current, c.current.Opp()} {
		if c.inOvertime[p] && c.overtime[p] <= 0 {
			return p, true
		}
	}
	return PlayerOne, false
}

func (c *Canadian) Reset() {
	c.base = base{times: [2]int64{c.cfg.InitialMs, c.cfg.InitialMs}}
	c.overtime = [2]int64{c.cfg.OvertimeMs, c.cfg.OvertimeMs}
	c.inOvertime = [2]bool{}
	c.movesMade = [2]int{}
}

func (c *Canadian) Params() []Param { return cloneParams(canadianParams) }

// InOvertime reports whether the player's main time is exhausted.
func (c *Canadian) InOvertime(p Player) bool { return c.inOvertime[p] }

// MovesMade is the number of moves made in the player's current overtime block.
func (c *Canadian) MovesMade(p Player) int { return c.movesMade[p] }

func (c *Canadian) Status(p Player) string {
	if !c.inOvertime[p] {
		return ""
	}
	return fmt.Sprintf("Overtime moves: %d/%d", c.movesMade[p], c.cfg.MovesRequired)
}
