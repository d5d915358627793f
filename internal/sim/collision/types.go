// Package collision detects overlapping bounding boxes, infers the
// collision direction from the axis of minimum penetration and dispatches
// reaction callbacks, isolating callbacks that fail.
package collision

import (
	"errors"

	"github.com/vovakirdan/raincatch/internal/core"
)

var (
	// ErrNilCollidable is returned when adding a nil collidable.
	ErrNilCollidable = errors.New("collision: nil collidable")
	// ErrDuplicate is returned when a collidable is already registered.
	ErrDuplicate = errors.New("collision: already registered")
	// ErrInvalidBounds is returned for non-finite or negative-size bounds.
	ErrInvalidBounds = errors.New("collision: invalid bounds")
	// ErrInvalidType is returned for a collidable without a type name.
	ErrInvalidType = errors.New("collision: invalid type")
)

// Direction names the face of the minimum-penetration axis a collision
// occurred on, from one participant's point of view.
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Top:
		return "TOP"
	case Bottom:
		return "BOTTOM"
	default:
		return "UNKNOWN"
	}
}

// Horizontal reports whether the direction lies on the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Type describes a kind of collidable. BlocksMovement is advisory and not
// read by the registry; TriggersEvent gates the reaction callback.
type Type struct {
	Name           string
	BlocksMovement bool
	TriggersEvent  bool
}

// NewType creates a collision type.
func NewType(name string, blocksMovement, triggersEvent bool) Type {
	return Type{Name: name, BlocksMovement: blocksMovement, TriggersEvent: triggersEvent}
}

// Result describes one side of a detected overlap. Other is borrowed and
// valid only for the duration of the callback.
type Result struct {
	Other     Collidable
	OverlapX  float64
	OverlapY  float64
	Direction Direction
}

// Collidable pairs a bounding box, a type and a reaction callback.
// Implementations should be pointer types: the registry compares them by
// identity and rejects values that cannot be compared.
type Collidable interface {
	Bounds() core.RectF
	Type() Type
	OnCollision(res Result) error
}

// Detect reports whether the bounds of a and b overlap. It is symmetric.
func Detect(a, b Collidable) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

// Resolve describes the collision from a's point of view.
func Resolve(a, b Collidable) Result {
	ox, oy, dir := resolveRects(a.Bounds(), b.Bounds())
	return Result{Other: b, OverlapX: ox, OverlapY: oy, Direction: dir}
}

// resolveRects computes the penetration depth along each axis and picks the
// axis with the smaller depth. Equal depths resolve vertically.
func resolveRects(ra, rb core.RectF) (overlapX, overlapY float64, dir Direction) {
	overlapX = min(ra.X+ra.W-rb.X, rb.X+rb.W-ra.X)
	overlapY = min(ra.Y+ra.H-rb.Y, rb.Y+rb.H-ra.Y)

	if overlapX < overlapY {
		if ra.X < rb.X {
			return overlapX, overlapY, Right
		}
		return overlapX, overlapY, Left
	}
	if ra.Y < rb.Y {
		return overlapX, overlapY, Top
	}
	return overlapX, overlapY, Bottom
}

// validate checks a collidable's live geometry and type.
func validate(c Collidable) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = ErrInvalidBounds
		}
	}()

	b := c.Bounds()
	if !b.Finite() || b.W < 0 || b.H < 0 {
		return ErrInvalidBounds
	}
	if c.Type().Name == "" {
		return ErrInvalidType
	}
	return nil
}
