package movement

import (
	"math"

	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

// Rotation spins its entity at a constant angular velocity and optionally
// drifts it at a constant linear velocity.
type Rotation struct {
	Body

	angle           float64
	angularVelocity float64 // degrees per second

	// handle is nil when the entity has no rotation capability.
	handle *entity.Rotation
}

// NewRotation creates a rotation component starting at angle degrees.
func NewRotation(e *entity.Entity, angle float64) (*Rotation, error) {
	body, err := newBody(e)
	if err != nil {
		return nil, err
	}
	if err := checkFinite("angle", angle); err != nil {
		return nil, err
	}
	return &Rotation{
		Body:   body,
		angle:  normalizeAngle(angle),
		handle: e.Rotation(),
	}, nil
}

// Update advances the angle, pushes it to the entity and integrates the
// linear velocity.
func (r *Rotation) Update(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	if !r.Enabled() {
		return nil
	}

	next := r.angle + r.angularVelocity*dt
	if err := checkFinite("angle", next); err != nil {
		return err
	}
	if err := r.integrate(dt); err != nil {
		return err
	}
	r.angle = normalizeAngle(next)

	if r.handle != nil {
		return r.handle.SetAngle(r.angle)
	}
	return nil
}

// SetAngularVelocity sets the spin in degrees per second.
func (r *Rotation) SetAngularVelocity(w float64) error {
	if err := checkFinite("angular velocity", w); err != nil {
		return err
	}
	r.angularVelocity = w
	return nil
}

// AngularVelocity returns the spin in degrees per second.
func (r *Rotation) AngularVelocity() float64 { return r.angularVelocity }

// SetAngle replaces the angle, normalized into [0, 360).
func (r *Rotation) SetAngle(deg float64) error {
	if err := checkFinite("angle", deg); err != nil {
		return err
	}
	r.angle = normalizeAngle(deg)
	return nil
}

// Angle returns the angle in [0, 360).
func (r *Rotation) Angle() float64 { return r.angle }

// normalizeAngle maps any finite angle into [0, 360).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// a tiny negative remainder plus 360 rounds to exactly 360
	if a >= 360 {
		a = 0
	}
	return a
}
