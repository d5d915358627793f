package movement

import (
	"fmt"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

// Input moves its entity horizontally from an axis value.
type Input struct {
	Body

	source core.AxisSource
	axis   core.Axis
	speed  float64

	hasBounds  bool
	minX, maxX float64
}

// NewInput creates an input-driven component moving e at speed units per
// second at full axis deflection.
func NewInput(e *entity.Entity, source core.AxisSource, axis core.Axis, speed float64) (*Input, error) {
	body, err := newBody(e)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNilSource
	}
	if err := checkFinite("speed", speed); err != nil {
		return nil, err
	}
	return &Input{Body: body, source: source, axis: axis, speed: speed}, nil
}

// SetBounds clamps the entity's x into [min, max] after each move.
func (in *Input) SetBounds(min, max float64) error {
	if err := checkFinite("bounds", min, max); err != nil {
		return err
	}
	if min > max {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, min, max)
	}
	in.minX, in.maxX, in.hasBounds = min, max, true
	return nil
}

// Speed returns the speed at full deflection.
func (in *Input) Speed() float64 { return in.speed }

// Update reads the axis and moves the entity.
func (in *Input) Update(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	if !in.Enabled() {
		return nil
	}

	v := in.source.AxisValue(in.axis)
	if !core.IsFinite(v) {
		v = 0
	}
	v = core.ClampF(v, -1, 1)

	x := in.owner.X() + v*in.speed*dt
	if in.hasBounds {
		x = core.ClampF(x, in.minX, in.maxX)
	}
	return in.owner.SetX(x)
}
