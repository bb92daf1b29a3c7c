package animation

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSpeed is returned for speeds outside Slowest..Fastest.
var ErrInvalidSpeed = errors.New("invalid animation speed")

// Speed is the pace of a software animation.
type Speed uint8

const (
	Slowest Speed = iota
	Slower
	Slow
	Normal
	Fast
	Faster
	Fastest
)

var speedIntervals = [...]time.Duration{
	Slowest: 600 * time.Millisecond,
	Slower:  400 * time.Millisecond,
	Slow:    300 * time.Millisecond,
	Normal:  200 * time.Millisecond,
	Fast:    50 * time.Millisecond,
	Faster:  20 * time.Millisecond,
	Fastest: 5 * time.Millisecond,
}

var speedNames = [...]string{
	Slowest: "slowest",
	Slower:  "slower",
	Slow:    "slow",
	Normal:  "normal",
	Fast:    "fast",
	Faster:  "faster",
	Fastest: "fastest",
}

// Interval returns the pause between two steps, or 0 for unknown speeds.
func (s Speed) Interval() time.Duration {
	if int(s) >= len(speedIntervals) {
		return 0
	}
	return speedIntervals[s]
}

// Validate reports whether s is a known speed.
func (s Speed) Validate() error {
	if int(s) >= len(speedIntervals) {
		return fmt.Errorf("speed %d: %w", uint8(s), ErrInvalidSpeed)
	}
	return nil
}

// String returns the speed name.
func (s Speed) String() string {
	if int(s) >= len(speedNames) {
		return fmt.Sprintf("speed(%d)", uint8(s))
	}
	return speedNames[s]
}

// ParseSpeed parses a name produced by String.
func ParseSpeed(name string) (Speed, error) {
	for i, n := range speedNames {
		if n == name {
			return Speed(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrInvalidSpeed)
}
