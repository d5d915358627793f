package movement

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/raincatch/internal/core"
)

// Distribution yields values used to place respawned entities.
type Distribution interface {
	Next() float64
}

// Uniform draws uniformly from [min, max] using its own seeded source, so
// replays with the same seed land droplets in the same columns.
type Uniform struct {
	min, max float64
	rng      *rand.Rand
}

// NewUniform creates a uniform distribution over [min, max].
func NewUniform(min, max float64, seed int64) (*Uniform, error) {
	u := &Uniform{rng: rand.New(rand.NewSource(seed))}
	if err := u.SetRange(min, max); err != nil {
		return nil, err
	}
	return u, nil
}

// Next returns the next sample.
func (u *Uniform) Next() float64 {
	return u.min + u.rng.Float64()*(u.max-u.min)
}

// SetRange replaces the range. Both bounds must be finite and min <= max.
func (u *Uniform) SetRange(min, max float64) error {
	if !core.IsFinite(min) || !core.IsFinite(max) {
		return fmt.Errorf("%w: range [%v, %v]", ErrNonFinite, min, max)
	}
	if min > max {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, min, max)
	}
	u.min, u.max = min, max
	return nil
}

// Range returns the current bounds.
func (u *Uniform) Range() (float64, float64) {
	return u.min, u.max
}
