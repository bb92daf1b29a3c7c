package animation

import (
	"errors"
	"fmt"

	"github.com/ledly-go/ledly/pkg/capability"
)

// ErrInvalidRepeat is returned for negative repeat counts.
var ErrInvalidRepeat = errors.New("invalid repeat count")

// Repeat is how many breaths an animation performs.
type Repeat struct {
	count    int
	infinite bool
}

// InfiniteCount breathes until cancelled or until a write fails.
var InfiniteCount = Repeat{infinite: true}

// FiniteCount performs exactly n breaths.
func FiniteCount(n int) Repeat {
	return Repeat{count: n}
}

// Infinite reports whether r never ends on its own.
func (r Repeat) Infinite() bool { return r.infinite }

// Count returns the number of breaths of a finite repeat.
func (r Repeat) Count() int { return r.count }

// Validate reports whether r is well formed.
func (r Repeat) Validate() error {
	if !r.infinite && r.count < 0 {
		return fmt.Errorf("%d: %w", r.count, ErrInvalidRepeat)
	}
	return nil
}

// String returns "infinite" or the count.
func (r Repeat) String() string {
	if r.infinite {
		return "infinite"
	}
	return fmt.Sprintf("%d", r.count)
}

// Breathing is the software breathing animation.
type Breathing struct {
	Color  capability.Color
	Repeat Repeat
	Speed  Speed
}

// Validate reports whether b is well formed.
func (b Breathing) Validate() error {
	if err := b.Repeat.Validate(); err != nil {
		return err
	}
	return b.Speed.Validate()
}

// StepsPerBreath is the number of writes in one breath.
const StepsPerBreath = 2 * (maxLevel + 1)

const maxLevel = 100

// Steps returns the brightness levels, in percent, of one breath.
func Steps() []int {
	steps := make([]int, 0, StepsPerBreath)
	for l := 0; l <= maxLevel; l++ {
		steps = append(steps, l)
	}
	for l := maxLevel; l >= 0; l-- {
		steps = append(steps, l)
	}
	return steps
}
