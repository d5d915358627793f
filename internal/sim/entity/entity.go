// Package entity provides the movable entity record and the registry that
// forwards per-frame update, draw and dispose calls to entities.
//
// Entities are referenced, never copied: registries compare them by pointer.
// Behavior is attached per instance through options rather than subtypes.
package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/raincatch/internal/core"
)

var (
	// ErrNonFinite is returned when a position or angle is NaN or infinite.
	ErrNonFinite = errors.New("entity: non-finite value")
	// ErrNilEntity is returned when a nil entity is passed to the registry.
	ErrNilEntity = errors.New("entity: nil entity")
	// ErrDuplicate is returned when an entity is already registered.
	ErrDuplicate = errors.New("entity: already registered")
	// ErrInvalidDelta is returned for a NaN, infinite or negative frame delta.
	ErrInvalidDelta = errors.New("entity: delta time must be finite and non-negative")
)

// Rotation is the optional rotation capability of an entity.
// The angle is in degrees; the rotation component keeps it in [0, 360).
type Rotation struct {
	angle float64
}

// Angle returns the current angle in degrees.
func (r *Rotation) Angle() float64 {
	return r.angle
}

// SetAngle stores a new angle. Non-finite angles are rejected.
func (r *Rotation) SetAngle(deg float64) error {
	if !core.IsFinite(deg) {
		return fmt.Errorf("%w: angle %v", ErrNonFinite, deg)
	}
	r.angle = deg
	return nil
}

// UpdateFunc is an entity's own per-frame hook.
type UpdateFunc func(e *Entity, dt float64) error

// DrawFunc draws an entity during one render pass.
type DrawFunc func(e *Entity, dst *core.Screen)

// DisposeFunc releases whatever the entity holds.
type DisposeFunc func(e *Entity) error

// Entity is a positioned object in the world.
type Entity struct {
	id       uuid.UUID
	name     string
	x, y     float64
	rotation *Rotation
	payload  any

	update      UpdateFunc
	drawTexture DrawFunc
	drawShape   DrawFunc
	dispose     DisposeFunc
}

// Option configures an entity at construction.
type Option func(*Entity)

// WithRotation attaches a rotation capability starting at the given angle.
func WithRotation(deg float64) Option {
	return func(e *Entity) {
		e.rotation = &Rotation{angle: deg}
	}
}

// WithPayload attaches an opaque render payload.
func WithPayload(p any) Option {
	return func(e *Entity) { e.payload = p }
}

// WithUpdate sets the entity's own update hook.
func WithUpdate(fn UpdateFunc) Option {
	return func(e *Entity) { e.update = fn }
}

// WithTextureDraw sets the hook called during the texture pass.
func WithTextureDraw(fn DrawFunc) Option {
	return func(e *Entity) { e.drawTexture = fn }
}

// WithShapeDraw sets the hook called during the shape pass.
func WithShapeDraw(fn DrawFunc) Option {
	return func(e *Entity) { e.drawShape = fn }
}

// WithDispose sets the hook called when the registry is disposed.
func WithDispose(fn DisposeFunc) Option {
	return func(e *Entity) { e.dispose = fn }
}

// New creates an entity at (x, y). The position must be finite.
func New(name string, x, y float64, opts ...Option) (*Entity, error) {
	if !core.IsFinite(x) || !core.IsFinite(y) {
		return nil, fmt.Errorf("%w: position (%v, %v)", ErrNonFinite, x, y)
	}
	e := &Entity{
		id:   uuid.New(),
		name: name,
		x:    x,
		y:    y,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rotation != nil && !core.IsFinite(e.rotation.angle) {
		return nil, fmt.Errorf("%w: angle %v", ErrNonFinite, e.rotation.angle)
	}
	return e, nil
}

// ID returns the entity's identifier, used in logs.
func (e *Entity) ID() uuid.UUID { return e.id }

// Name returns the entity's name.
func (e *Entity) Name() string { return e.name }

// X returns the horizontal position.
func (e *Entity) X() float64 { return e.x }

// Y returns the vertical position.
func (e *Entity) Y() float64 { return e.y }

// Position returns both coordinates.
func (e *Entity) Position() (float64, float64) { return e.x, e.y }

// Payload returns the opaque render payload.
func (e *Entity) Payload() any { return e.payload }

// Rotation returns the rotation capability, or nil if the entity has none.
func (e *Entity) Rotation() *Rotation { return e.rotation }

// SetX sets the horizontal position. Non-finite values are rejected.
func (e *Entity) SetX(x float64) error {
	if !core.IsFinite(x) {
		return fmt.Errorf("%w: x %v", ErrNonFinite, x)
	}
	e.x = x
	return nil
}

// SetY sets the vertical position. Non-finite values are rejected.
func (e *Entity) SetY(y float64) error {
	if !core.IsFinite(y) {
		return fmt.Errorf("%w: y %v", ErrNonFinite, y)
	}
	e.y = y
	return nil
}

// SetPosition sets both coordinates, or neither if either is non-finite.
func (e *Entity) SetPosition(x, y float64) error {
	if !core.IsFinite(x) || !core.IsFinite(y) {
		return fmt.Errorf("%w: position (%v, %v)", ErrNonFinite, x, y)
	}
	e.x, e.y = x, y
	return nil
}

// Translate moves the entity by (dx, dy).
func (e *Entity) Translate(dx, dy float64) error {
	return e.SetPosition(e.x+dx, e.y+dy)
}

// String returns the name with a short id suffix.
func (e *Entity) String() string {
	return fmt.Sprintf("%s#%s", e.name, e.id.String()[:8])
}
