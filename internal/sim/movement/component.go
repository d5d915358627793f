// Package movement provides the velocity-owning components that move
// entities each frame, and the registry that drives them.
//
// Every variant shares the same integration step, position += velocity * dt,
// through the embedded Body.
package movement

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

var (
	// ErrInvalidDelta is returned for a NaN, infinite or negative frame delta.
	ErrInvalidDelta = errors.New("movement: delta time must be finite and non-negative")
	// ErrNonFinite is returned when a parameter or result is NaN or infinite.
	ErrNonFinite = errors.New("movement: non-finite value")
	// ErrNilEntity is returned when a component is created without an owner.
	ErrNilEntity = errors.New("movement: nil entity")
	// ErrNilComponent is returned when registering a nil component.
	ErrNilComponent = errors.New("movement: nil component")
	// ErrNilSource is returned when an input component has no axis source.
	ErrNilSource = errors.New("movement: nil axis source")
	// ErrInvalidRange is returned for an inverted or negative range.
	ErrInvalidRange = errors.New("movement: invalid range")
)

// Component moves exactly one entity.
type Component interface {
	// Entity returns the owned entity.
	Entity() *entity.Entity
	// Update advances the entity by dt seconds.
	Update(dt float64) error
	Enabled() bool
	Enable()
	Disable()
	Velocity() (vx, vy float64)
	SetVelocity(vx, vy float64) error
}

// Body holds the state every component variant shares: the owner, the
// velocity and the enabled flag.
type Body struct {
	owner    *entity.Entity
	vx, vy   float64
	disabled bool
}

func newBody(e *entity.Entity) (Body, error) {
	if e == nil {
		return Body{}, ErrNilEntity
	}
	return Body{owner: e}, nil
}

// Entity returns the owned entity.
func (b *Body) Entity() *entity.Entity { return b.owner }

// Enabled reports whether the component is updated by the registry.
func (b *Body) Enabled() bool { return !b.disabled }

// Enable resumes updates.
func (b *Body) Enable() { b.disabled = false }

// Disable freezes position and velocity until Enable is called.
func (b *Body) Disable() { b.disabled = true }

// Velocity returns the current velocity in units per second.
func (b *Body) Velocity() (float64, float64) { return b.vx, b.vy }

// SetVelocity replaces the velocity. Non-finite values are rejected.
func (b *Body) SetVelocity(vx, vy float64) error {
	if !core.IsFinite(vx) || !core.IsFinite(vy) {
		return fmt.Errorf("%w: velocity (%v, %v)", ErrNonFinite, vx, vy)
	}
	b.vx, b.vy = vx, vy
	return nil
}

// integrate applies one explicit Euler step to the owner's position.
func (b *Body) integrate(dt float64) error {
	return b.owner.Translate(b.vx*dt, b.vy*dt)
}

func checkDelta(dt float64) error {
	if !core.ValidDelta(dt) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	return nil
}

func checkFinite(what string, vals ...float64) error {
	for _, v := range vals {
		if !core.IsFinite(v) {
			return fmt.Errorf("%w: %s %v", ErrNonFinite, what, v)
		}
	}
	return nil
}

// Linear is a component that only integrates a constant velocity.
type Linear struct {
	Body
}

// NewLinear creates a component moving e at (vx, vy).
func NewLinear(e *entity.Entity, vx, vy float64) (*Linear, error) {
	body, err := newBody(e)
	if err != nil {
		return nil, err
	}
	l := &Linear{Body: body}
	if err := l.SetVelocity(vx, vy); err != nil {
		return nil, err
	}
	return l, nil
}

// Update integrates the velocity.
func (l *Linear) Update(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	if !l.Enabled() {
		return nil
	}
	return l.integrate(dt)
}
