package clock

import (
	"sync"
	"time"
)

// DefaultFrameInterval is roughly one display frame at 60Hz
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler re-invokes the controller's decay step while the clock runs.
//
// Schedule must not call step before it returns. The returned stop function
// prevents any further call once it returns and is safe to call more than once,
// including from inside step.
type Scheduler interface {
	Schedule(step func()) (stop func())
}

// FrameScheduler calls step from its own goroutine at a fixed interval. The
// controller measures real elapsed time on every call, so the interval only
// affects how often updates are published, not their accuracy.
type FrameScheduler struct {
	Interval time.Duration
}

// Schedule starts the ticker goroutine.
func (s FrameScheduler) Schedule(step func()) func() {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// done may have been closed while this tick was pending
				select {
				case <-done:
					return
				default:
				}
				step()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// HostScheduler lets a host loop, such as a UI frame callback, drive the decay
// step by calling Tick once per frame.
type HostScheduler struct {
	mu   sync.Mutex
	step func()
	gen  int
}

// Schedule records step until the returned stop is called.
func (s *HostScheduler) Schedule(step func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	s.step = step

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.step = nil
		}
	}
}

// Tick runs the scheduled step, if any. It reports whether a step ran.
func (s *HostScheduler) Tick() bool {
	s.mu.Lock()
	step := s.step
	s.mu.Unlock()

	if step == nil {
		return false
	}
	step()
	return true
}

// Scheduled reports whether a step is waiting for the next Tick.
func (s *HostScheduler) Scheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step != nil
}
