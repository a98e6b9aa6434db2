package timecontrol

import "fmt"

// Phase is one stage of a tournament control. Moves is ignored for the last phase.
type Phase struct {
	TimeMs      int64
	IncrementMs int64
	Moves       int
}

// TournamentConfig configures the three phases
type TournamentConfig struct {
	Phases [3]Phase
}

var tournamentParams = []Param{
	numberParam("phase1Minutes", "Phase 1 Time (minutes)", 90, 1, 180),
	numberParam("phase1Moves", "Phase 1 Moves", 40, 1, 100),
	numberParam("phase1IncrementSeconds", "Phase 1 Increment (seconds)", 0, 0, 60),
	numberParam("phase2Minutes", "Phase 2 Time (minutes)", 30, 0, 180),
	numberParam("phase2Moves", "Phase 2 Moves", 20, 0, 100),
	numberParam("phase2IncrementSeconds", "Phase 2 Increment (seconds)", 0, 0, 60),
	numberParam("phase3Minutes", "Phase 3 Time (minutes)", 15, 0, 180),
	numberParam("phase3IncrementSeconds", "Phase 3 Increment (seconds)", 30, 0, 60),
}

func tournamentConfig(v Values) TournamentConfig {
	return TournamentConfig{Phases: [3]Phase{
		{
			TimeMs:      minutesToMs(v.Number("phase1Minutes")),
			IncrementMs: secondsToMs(v.Number("phase1IncrementSeconds")),
			Moves:       v.Int("phase1Moves"),
		},
		{
			TimeMs:      minutesToMs(v.Number("phase2Minutes")),
			IncrementMs: secondsToMs(v.Number("phase2IncrementSeconds")),
			Moves:       v.Int("phase2Moves"),
		},
		{
			TimeMs:      minutesToMs(v.Number("phase3Minutes")),
			IncrementMs: secondsToMs(v.Number("phase3IncrementSeconds")),
		},
	}}
}

// PhaseStatus describes where a player stands in the tournament phases
type PhaseStatus struct {
	Phase            int  `json:"phase"`
	MovesMade        int  `json:"moves_made"`
	NextPhaseAt      int  `json:"next_phase_at"` // Zero in the last phase
	JustChangedPhase bool `json:"just_changed_phase"`
}

// Tournament is a three phase control. Reaching a phase's cumulative move quota
// adds the next phase's allotment to the clock.
type Tournament struct {
	cfg TournamentConfig
	base

	movesMade   [2]int
	phase       [2]int // 1, 2 or 3
	justChanged [2]bool
}

// NewTournament creates a tournament control
func NewTournament(cfg TournamentConfig) *Tournament {
	c := &Tournament{cfg: cfg}
	c.Reset()
	return c
}

func (c *Tournament) Type() Type { return TypeTournament }

func (c *Tournament) RemainingTime(p Player) PlayerTime {
	return PlayerTime{RemainingMs: clamp(c.times[p])}
}

func (c *Tournament) SetRemainingTime(p Player, remainingMs int64) {
	c.times[p] = remainingMs
}

// SwitchPlayer applies the increment of the outgoing player's phase, counts the
// move and advances the phase when the quota is met.
func (c *Tournament) SwitchPlayer() {
	p := c.current
	c.justChanged[p] = false
	c.times[p] += c.cfg.Phases[c.phase[p]-1].IncrementMs
	c.movesMade[p]++

	for c.phase[p] < 3 && c.movesMade[p] >= c.threshold(c.phase[p]) {
		c.phase[p]++
		c.times[p] += c.cfg.Phases[c.phase[p]-1].TimeMs
		c.justChanged[p] = true
	}

	c.flip()
}

// threshold is the cumulative move count that ends the given phase.
func (c *Tournament) threshold(phase int) int {
	total := 0
	for i := 0; i < phase && i < 2; i++ {
		total += c.cfg.Phases[i].Moves
	}
	return total
}

func (c *Tournament) GameOver() (Player, bool) {
	return c.expired()
}

func (c *Tournament) Reset() {
	initial := c.cfg.Phases[0].TimeMs
	c.base = base{times: [2]int64{initial, initial}}
	c.movesMade = [2]int{}
	c.phase = [2]int{1, 1}
	c.justChanged = [2]bool{}
}

func (c *Tournament) Params() []Param { return cloneParams(tournamentParams) }

// PhaseStatus reports the player's phase and progress toward the next one.
func (c *Tournament) PhaseStatus(p Player) PhaseStatus {
	status := PhaseStatus{
		Phase:            c.phase[p],
		MovesMade:        c.movesMade[p],
		JustChangedPhase: c.justChanged[p],
	}
	if c.phase[p] < 3 {
		status.NextPhaseAt = c.threshold(c.phase[p])
	}
	return status
}

func (c *Tournament) Status(p Player) string {
	s := c.PhaseStatus(p)
	if s.NextPhaseAt == 0 {
		return fmt.Sprintf("Phase %d: %d moves", s.Phase, s.MovesMade)
	}
	return fmt.Sprintf("Phase %d: %d/%d moves", s.Phase, s.MovesMade, s.NextPhaseAt)
}
