package movement

import (
	"fmt"
	"math"

	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

// Defaults for a new Gravity component.
const (
	DefaultGravity         = 9.81
	DefaultSpeedMultiplier = 2.0
	DefaultMaxDropSpeed    = 10.0
)

// Gravity accelerates its entity and, when vertical bounds are set, respawns
// it at the top once it crosses the bottom, speeding it up each time.
type Gravity struct {
	Body

	ax, ay          float64
	gravity         float64
	speedMultiplier float64
	maxDropSpeed    float64

	hasBounds bool
	bottomY   float64
	resetTopY float64

	xDist   Distribution
	resets  int
	onReset func(*Gravity)
}

// NewGravity creates a gravity component. The gravity constant is added to
// the vertical velocity every second; in y-up worlds a falling object uses a
// negative constant or starts with a negative velocity.
func NewGravity(e *entity.Entity, gravity float64) (*Gravity, error) {
	body, err := newBody(e)
	if err != nil {
		return nil, err
	}
	if err := checkFinite("gravity", gravity); err != nil {
		return nil, err
	}
	return &Gravity{
		Body:            body,
		gravity:         gravity,
		speedMultiplier: DefaultSpeedMultiplier,
		maxDropSpeed:    DefaultMaxDropSpeed,
	}, nil
}

// Update applies acceleration and gravity, integrates, then checks the
// reset boundary. Nothing is committed unless the whole step succeeds.
func (g *Gravity) Update(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	if !g.Enabled() {
		return nil
	}

	vx := g.vx + g.ax*dt
	vy := g.vy + g.ay*dt + g.gravity*dt
	if err := checkFinite("velocity", vx, vy); err != nil {
		return err
	}
	x, y := g.owner.X()+vx*dt, g.owner.Y()+vy*dt
	if err := checkFinite("position", x, y); err != nil {
		return err
	}

	reset := g.hasBounds && y <= g.bottomY
	if reset {
		y = g.resetTopY
		if g.xDist != nil {
			x = g.xDist.Next()
			if err := checkFinite("reset x", x); err != nil {
				return err
			}
		}
		speed := math.Min(math.Abs(vy)*g.speedMultiplier, g.maxDropSpeed)
		if vy < 0 {
			vy = -speed
		} else {
			vy = speed
		}
	}

	if err := g.owner.SetPosition(x, y); err != nil {
		return err
	}
	g.vx, g.vy = vx, vy

	if reset {
		g.resets++
		if g.onReset != nil {
			g.onReset(g)
		}
	}
	return nil
}

// OnReset registers a hook called after each respawn.
func (g *Gravity) OnReset(fn func(*Gravity)) {
	g.onReset = fn
}

// Resets returns how many times the entity has been respawned.
func (g *Gravity) Resets() int { return g.resets }

// SetVerticalBounds enables the respawn loop: once y <= bottom the entity
// is moved to resetTop.
func (g *Gravity) SetVerticalBounds(bottom, resetTop float64) error {
	if err := checkFinite("bounds", bottom, resetTop); err != nil {
		return err
	}
	g.bottomY, g.resetTopY, g.hasBounds = bottom, resetTop, true
	return nil
}

// ClearVerticalBounds disables the respawn loop.
func (g *Gravity) ClearVerticalBounds() {
	g.hasBounds = false
}

// SetXDistribution sets where a respawned entity lands horizontally.
// A nil distribution keeps the current x.
func (g *Gravity) SetXDistribution(d Distribution) {
	g.xDist = d
}

// SetAcceleration sets the constant acceleration added each second.
func (g *Gravity) SetAcceleration(ax, ay float64) error {
	if err := checkFinite("acceleration", ax, ay); err != nil {
		return err
	}
	g.ax, g.ay = ax, ay
	return nil
}

// Acceleration returns the constant acceleration.
func (g *Gravity) Acceleration() (float64, float64) { return g.ax, g.ay }

// SetGravity replaces the gravity constant.
func (g *Gravity) SetGravity(gravity float64) error {
	if err := checkFinite("gravity", gravity); err != nil {
		return err
	}
	g.gravity = gravity
	return nil
}

// Gravity returns the gravity constant.
func (g *Gravity) Gravity() float64 { return g.gravity }

// SetSpeedMultiplier sets the factor applied to the fall speed on respawn.
func (g *Gravity) SetSpeedMultiplier(m float64) error {
	if err := checkFinite("speed multiplier", m); err != nil {
		return err
	}
	if m < 0 {
		return fmt.Errorf("%w: speed multiplier %v", ErrInvalidRange, m)
	}
	g.speedMultiplier = m
	return nil
}

// SetMaxDropSpeed caps the respawn speed.
func (g *Gravity) SetMaxDropSpeed(s float64) error {
	if err := checkFinite("max drop speed", s); err != nil {
		return err
	}
	if s < 0 {
		return fmt.Errorf("%w: max drop speed %v", ErrInvalidRange, s)
	}
	g.maxDropSpeed = s
	return nil
}

// MaxDropSpeed returns the respawn speed cap.
func (g *Gravity) MaxDropSpeed() float64 { return g.maxDropSpeed }
