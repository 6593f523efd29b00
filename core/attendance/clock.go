package attendance

import "time"

// Clock supplies the reference instant for session windowing so it can be
// driven by an arbitrary time in tests instead of wall-clock sampling.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
