package mocks

import (
	"time"

	"github.com/mcoot/connectn-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// When Step is set, every call to Now advances the clock by Step first.
type MockClock struct {
	CurrentTime time.Time
	Step        time.Duration
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.CurrentTime = c.CurrentTime.Add(c.Step)
	return c.CurrentTime
}

// Since returns the mocked duration between t and the current time.
// It does not advance the clock.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.CurrentTime.Sub(t)
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
