package timecontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourglass_ConservesTotal(t *testing.T) {
	c := NewHourglass(HourglassConfig{InitialMs: 180_000})

	steps := []int64{1_500, 3_000, 700, 12_000, 250}
	for _, spent := range steps {
		p := c.CurrentPlayer()
		c.SetRemainingTime(p, c.RemainingTime(p).RemainingMs-spent)
		c.SwitchPlayer()

		total := c.RemainingTime(PlayerOne).RemainingMs + c.RemainingTime(PlayerTwo).RemainingMs
		assert.Equal(t, int64(360_000), total)
	}
}

func TestHourglass_OpponentGains(t *testing.T) {
	c := NewHourglass(HourglassConfig{InitialMs: 180_000})

	c.SetRemainingTime(PlayerOne, 170_000)

	assert.Equal(t, PlayerTime{RemainingMs: 170_000}, c.RemainingTime(PlayerOne))
	assert.Equal(t, PlayerTime{RemainingMs: 190_000, IsGaining: true}, c.RemainingTime(PlayerTwo))
}

func TestHourglass_DirectSetBypassesRedistribution(t *testing.T) {
	c := NewHourglass(HourglassConfig{InitialMs: 180_000})

	c.SetRemainingTime(PlayerTwo, 100_000)
	assert.Equal(t, int64(180_000), c.RemainingTime(PlayerOne).RemainingMs)

	c.SetRemainingTime(PlayerOne, 200_000)
	assert.Equal(t, int64(100_000), c.RemainingTime(PlayerTwo).RemainingMs)
}

func TestHourglass_GameOver(t *testing.T) {
	c := NewHourglass(HourglassConfig{InitialMs: 180_000})

	c.SetRemainingTime(PlayerOne, 0)
	loser, over := c.GameOver()
	assert.True(t, over)
	assert.Equal(t, PlayerOne, loser)
	assert.Equal(t, int64(360_000), c.RemainingTime(PlayerTwo).RemainingMs)
}
