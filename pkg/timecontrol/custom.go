package timecontrol

import "fmt"

// Stage is one allotment of a custom control: the initial stage or an overtime stage
type Stage struct {
	MainMs      int64
	IncrementMs int64
	// ExtraMs is the per move bank used once main time is gone.
	ExtraMs int64
	// Accumulate carries unused extra time into the next move.
	Accumulate bool
	// TransferMainTime credits the main time spent on a move to the opponent.
	TransferMainTime bool
}

func (s Stage) empty() bool {
	return s.MainMs <= 0 && s.ExtraMs <= 0
}

// CustomConfig is the initial stage followed by the overtime stages, entered in order
type CustomConfig struct {
	Main     Stage
	Overtime []Stage
}

// Overtime modes accepted by the overtimeMode parameter
const (
	OvertimeNone   = "none"
	OvertimeSame   = "same"
	OvertimeCustom = "custom"
)

var customParams = []Param{
	numberParam("initialMinutes", "Initial Time (minutes)", 5, 0, 180),
	numberParam("incrementSeconds", "Increment (seconds)", 0, 0, 60),
	numberParam("extraSeconds", "Extra Time per Move (seconds)", 0, 0, 60),
	yesNoParam("accumulate", "Accumulate Extra Time"),
	yesNoParam("transferMainTime", "Transfer Spent Main Time"),
	selectParam("overtimeMode", "Overtime", OvertimeNone,
		Option{Label: "Off", Value: OvertimeNone},
		Option{Label: "Same Settings", Value: OvertimeSame},
		Option{Label: "Custom", Value: OvertimeCustom},
	),
	numberParam("overtimeStages", "Overtime Stages", 1, 1, 5),
	numberParam("otInitialMinutes", "Overtime Initial Time (minutes)", 5, 0, 180).when("overtimeMode", OvertimeCustom),
	numberParam("otIncrementSeconds", "Overtime Increment (seconds)", 0, 0, 60).when("overtimeMode", OvertimeCustom),
	numberParam("otExtraSeconds", "Overtime Extra Time per Move (seconds)", 0, 0, 60).when("overtimeMode", OvertimeCustom),
	yesNoParam("otAccumulate", "Overtime Accumulate Extra Time").when("overtimeMode", OvertimeCustom),
	yesNoParam("otTransferMainTime", "Overtime Transfer Spent Main Time").when("overtimeMode", OvertimeCustom),
}

func customConfig(v Values) CustomConfig {
	cfg := CustomConfig{Main: Stage{
		MainMs:           minutesToMs(v.Number("initialMinutes")),
		IncrementMs:      secondsToMs(v.Number("incrementSeconds")),
		ExtraMs:          secondsToMs(v.Number("extraSeconds")),
		Accumulate:       v.Bool("accumulate"),
		TransferMainTime: v.Bool("transferMainTime"),
	}}

	var stage Stage
	switch v.String("overtimeMode") {
	case OvertimeSame:
		stage = cfg.Main
	case OvertimeCustom:
		stage = Stage{
			MainMs:           minutesToMs(v.Number("otInitialMinutes")),
			IncrementMs:      secondsToMs(v.Number("otIncrementSeconds")),
			ExtraMs:          secondsToMs(v.Number("otExtraSeconds")),
			Accumulate:       v.Bool("otAccumulate"),
			TransferMainTime: v.Bool("otTransferMainTime"),
		}
	default:
		return cfg
	}

	for i := 0; i < max(1, v.Int("overtimeStages")); i++ {
		cfg.Overtime = append(cfg.Overtime, stage)
	}
	return cfg
}

// Custom composes main time, increment, a per move extra time bank and a chain of
// overtime stages.
//
// While main time is positive it is what the clock spends. Once it is gone the
// extra bank of the stage runs, and exhausting that moves the player to the next
// stage. Exhausting the last stage ends the game for that player.
type Custom struct {
	cfg  CustomConfig
	base // times hold main time

	extra     [2]int64
	leftover  [2]int64
	stage     [2]int // 0 is the initial stage, n is overtime stage n
	turnStart [2]int64
	exhausted [2]bool
}

// NewCustom creates a custom control
func NewCustom(cfg CustomConfig) *Custom {
	c := &Custom{cfg: cfg}
	c.Reset()
	return c
}

func (c *Custom) Type() Type { return TypeCustom }

func (c *Custom) stageConfig(i int) Stage {
	if i == 0 {
		return c.cfg.Main
	}
	return c.cfg.Overtime[i-1]
}

// enterStage moves the player to the first stage from idx on that holds any time.
func (c *Custom) enterStage(p Player, idx int) {
	for ; idx <= len(c.cfg.Overtime); idx++ {
		st := c.stageConfig(idx)
		if st.empty() {
			continue
		}
		c.stage[p] = idx
		c.times[p] = st.MainMs
		c.extra[p] = st.ExtraMs
		c.leftover[p] = 0
		c.turnStart[p] = st.MainMs
		return
	}

	c.stage[p] = len(c.cfg.Overtime)
	c.times[p] = 0
	c.extra[p] = 0
	c.leftover[p] = 0
	c.turnStart[p] = 0
	c.exhausted[p] = true
}

// RemainingTime is main time while there is some, the extra bank otherwise. For
// the player not on move the bank already holds what the next turn starts with.
func (c *Custom) RemainingTime(p Player) PlayerTime {
	if c.times[p] > 0 {
		return PlayerTime{RemainingMs: c.times[p]}
	}
	return PlayerTime{RemainingMs: clamp(c.extra[p])}
}

func (c *Custom) SetRemainingTime(p Player, remainingMs int64) {
	if c.exhausted[p] {
		return
	}

	if c.times[p] > 0 {
		c.times[p] = remainingMs
		if remainingMs <= 0 {
			c.times[p] = 0
			if c.extra[p] <= 0 {
				c.enterStage(p, c.stage[p]+1)
			}
		}
		return
	}

	c.extra[p] = remainingMs
	if remainingMs <= 0 {
		c.extra[p] = 0
		c.enterStage(p, c.stage[p]+1)
	}
}

// SwitchPlayer settles the outgoing player's move: increment while main time
// runs, extra bank refill otherwise, and the optional main time transfer.
func (c *Custom) SwitchPlayer() {
	p := c.current
	np := p.Opp()

	if !c.exhausted[p] {
		st := c.stageConfig(c.stage[p])
		spent := c.turnStart[p] - c.times[p]

		if c.times[p] > 0 {
			c.times[p] += st.IncrementMs
		} else {
			c.leftover[p] = 0
			if st.Accumulate {
				c.leftover[p] = c.extra[p]
			}
			c.extra[p] = st.ExtraMs + c.leftover[p]
		}

		if st.TransferMainTime && spent > 0 && c.times[np] > 0 {
			c.times[np] += spent
		}
	}

	c.flip()
	c.turnStart[np] = c.times[np]
}

func (c *Custom) GameOver() (Player, bool) {
	for _, p := range [2]Player{c.current, c.current.Opp()} {
		if c.exhausted[p] {
			return p, true
		}
	}
	return PlayerOne, false
}

func (c *Custom) Reset() {
	c.base = base{}
	c.extra = [2]int64{}
	c.leftover = [2]int64{}
	c.stage = [2]int{}
	c.turnStart = [2]int64{}
	c.exhausted = [2]bool{}
	c.enterStage(PlayerOne, 0)
	c.enterStage(PlayerTwo, 0)
}

func (c *Custom) Params() []Param { return cloneParams(customParams) }

// Stage is the stage the player is in, zero before any overtime.
func (c *Custom) Stage(p Player) int { return c.stage[p] }

// Extra is the player's current extra time bank.
func (c *Custom) Extra(p Player) int64 { return clamp(c.extra[p]) }

func (c *Custom) Status(p Player) string {
	if c.stage[p] == 0 || c.exhausted[p] {
		return ""
	}
	return fmt.Sprintf("Overtime %d", c.stage[p])
}
