package clock

import "time"

// Clocker abstracts the time source so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Static is a test clock that always returns the same instant.
type Static struct {
	T time.Time
}

// Now returns the fixed instant.
func (s Static) Now() time.Time {
	return s.T
}
