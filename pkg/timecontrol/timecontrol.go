// Package timecontrol defines the time control algorithms a two player clock can run
package timecontrol

import (
	"errors"
	"fmt"
)

// Player identifies one side of the clock
type Player int

// The two players, in the order they move
const (
	PlayerOne Player = iota
	PlayerTwo
)

// Opp returns the other player.
func (p Player) Opp() Player {
	return 1 - p
}

func (p Player) String() string {
	return fmt.Sprintf("player %d", int(p)+1)
}

// PlayerTime is what a control reports for one player
type PlayerTime struct {
	RemainingMs int64 `json:"remaining_ms"`
	IsGaining   bool  `json:"is_gaining"` // Presentation hint, the clock is currently increasing
}

// Type is the discriminant used to build a control and to switch on it later
type Type string

// All the available time controls
const (
	TypeClassical  Type = "classical"
	TypeIncrement  Type = "increment"
	TypeBronstein  Type = "bronstein"
	TypeHourglass  Type = "hourglass"
	TypeByoYomi    Type = "byoYomi"
	TypeCanadian   Type = "canadian"
	TypeTournament Type = "tournament"
	TypeCustom     Type = "custom"
)

var (
	// ErrUnknownType is returned when a control type is not registered
	ErrUnknownType = errors.New("unknown time control type")
	// ErrInvalidValue is returned when a config value does not fit its parameter kind
	ErrInvalidValue = errors.New("invalid config value")
)

// TimeControl owns the remaining time of both players and the rules for changing it.
//
// SetRemainingTime is the only write path used while the clock runs. Every
// implementation treats a call with an unchanged value as a no-op.
type TimeControl interface {
	Type() Type
	RemainingTime(p Player) PlayerTime
	SetRemainingTime(p Player, remainingMs int64)
	// SwitchPlayer finalizes the current player's move and hands the turn over.
	SwitchPlayer()
	CurrentPlayer() Player
	// GameOver reports the player who ran out of time, if any.
	GameOver() (loser Player, over bool)
	Reset()
	Params() []Param
	// Status returns a short description of special states, empty when there is none.
	Status(p Player) string
}

// Info describes a control type for presentation
type Info struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// base is the state shape shared by every control: two clocks and whose turn it is
type base struct {
	times   [2]int64
	current Player
}

func (b *base) CurrentPlayer() Player {
	return b.current
}

func (b *base) flip() {
	b.current = b.current.Opp()
}

// expired reports a player whose clock reached zero, checking the player on move first.
func (b *base) expired() (Player, bool) {
	if b.times[b.current] <= 0 {
		return b.current, true
	}
	if b.times[b.current.Opp()] <= 0 {
		return b.current.Opp(), true
	}
	return PlayerOne, false
}

func clamp(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms
}

func minutesToMs(minutes float64) int64 {
	return int64(minutes*60_000 + 0.5)
}

func secondsToMs(seconds float64) int64 {
	return int64(seconds*1_000 + 0.5)
}
