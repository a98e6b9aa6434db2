package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameScheduler_StopEndsCalls(t *testing.T) {
	var calls atomic.Int64
	stop := FrameScheduler{Interval: time.Millisecond}.Schedule(func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	stop()
	stop()
	time.Sleep(10 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}

func TestFrameScheduler_StopFromInsideStep(t *testing.T) {
	var calls atomic.Int64
	var stop func()
	ready := make(chan struct{})

	stop = FrameScheduler{Interval: time.Millisecond}.Schedule(func() {
		<-ready
		calls.Add(1)
		stop()
	})
	close(ready)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func TestHostScheduler(t *testing.T) {
	s := &HostScheduler{}
	assert.False(t, s.Tick())

	var calls int
	stop := s.Schedule(func() { calls++ })
	assert.True(t, s.Scheduled())
	assert.True(t, s.Tick())
	assert.True(t, s.Tick())

	stop()
	assert.False(t, s.Scheduled())
	assert.False(t, s.Tick())
	assert.Equal(t, 2, calls)
}

func TestHostScheduler_StaleStopKeepsNewStep(t *testing.T) {
	s := &HostScheduler{}

	stale := s.Schedule(func() {})
	s.Schedule(func() {})
	stale()

	assert.True(t, s.Scheduled())
}

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{-5, "00:00"},
		{0, "00:00"},
		{1, "00:01"},
		{999, "00:01"},
		{1_000, "00:01"},
		{59_001, "01:00"},
		{5 * 60_000, "05:00"},
		{3_599_000, "59:59"},
		{3_600_000, "01:00:00"},
		{90*60_000 + 30_500, "01:30:31"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClockTime(tt.ms), tt.ms)
	}
}
