// Package timeutil abstracts the clock so time-dependent code can be tested
// deterministically.
package timeutil

import "time"

// Provider supplies the current time.
type Provider interface {
	Now() time.Time
}

// RealProvider reads the system clock.
type RealProvider struct{}

// Now returns the current time in UTC.
func (RealProvider) Now() time.Time { return time.Now().UTC() }

// Mock returns a preset time, for tests.
type Mock struct{ CurrentTime time.Time }

// NewMock creates a Mock frozen at t.
func NewMock(t time.Time) *Mock { return &Mock{CurrentTime: t} }

// Now returns the preset time.
func (m Mock) Now() time.Time { return m.CurrentTime }

// Advance moves the mock time forward by the specified duration.
func (m *Mock) Advance(d time.Duration) { m.CurrentTime = m.CurrentTime.Add(d) }
