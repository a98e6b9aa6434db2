// Package clock drives a time control against wall clock time
package clock

import (
	"sync"
	"time"
)

// Source is where the controller reads the current time from
type Source interface {
	Now() time.Time
}

// RealSource provides the actual system time.
type RealSource struct{}

// Now returns the current system time.
func (RealSource) Now() time.Time {
	return time.Now()
}

// MockSource is a test time source with controllable time.
type MockSource struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockSource creates a mock source set to the given time.
func NewMockSource(t time.Time) *MockSource {
	return &MockSource{current: t}
}

// Now returns the mock time.
func (s *MockSource) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set sets the mock time.
func (s *MockSource) Set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = t
}

// Advance advances the mock time by d.
func (s *MockSource) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.current.Add(d)
}
