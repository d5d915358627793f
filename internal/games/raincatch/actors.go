package raincatch

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/raincatch/internal/config"
	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/collision"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
	"github.com/vovakirdan/raincatch/internal/sim/movement"
)

// errGroundingFault is what the storm's lightning rod reports on every hit.
var errGroundingFault = errors.New("lightning rod: grounding fault")

// bucket is the player-controlled catcher. Its position is its lower-left
// corner.
type bucket struct {
	g      *Game
	e      *entity.Entity
	motion *movement.Input
	box    *collision.Box
}

func (g *Game) newBucket() (*bucket, error) {
	bc := g.cfg.Bucket
	b := &bucket{g: g}

	e, err := entity.New("bucket", (g.cfg.Field.Width-bc.Width)/2, bc.Y,
		entity.WithTextureDraw(b.draw))
	if err != nil {
		return nil, err
	}
	b.e = e

	b.motion, err = movement.NewInput(e, &g.input, core.AxisMoveX, bc.Speed)
	if err != nil {
		return nil, err
	}
	if err := b.motion.SetBounds(0, g.cfg.Field.Width-bc.Width); err != nil {
		return nil, err
	}

	b.box = collision.NewBox(e, bc.Width, bc.Height, bucketType, b.onCollision)
	if err := g.world.Spawn(e, []movement.Component{b.motion}, []collision.Collidable{b.box}); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *bucket) onCollision(res collision.Result) error {
	if res.Other.Type().Name == dropletType.Name {
		b.g.play(SoundClick)
	}
	return nil
}

// follow centres the bucket under a pointer given as a fraction of the
// screen width.
func (b *bucket) follow(frac float64) {
	if !core.IsFinite(frac) {
		return
	}
	w := b.g.cfg.Field.Width
	x := core.ClampF(frac*w-b.g.cfg.Bucket.Width/2, 0, w-b.g.cfg.Bucket.Width)
	_ = b.e.SetX(x)
}

// droplet falls, respawns at the top when caught or missed and bounces off
// obstacles. Its position is its lower-left corner.
type droplet struct {
	g      *Game
	e      *entity.Entity
	motion *movement.Gravity
	box    *collision.Box
	xDist  *movement.Uniform
}

func (g *Game) addDroplet() error {
	d, err := g.newDroplet(len(g.droplets), g.spawned)
	if err != nil {
		return err
	}
	g.spawned++
	g.droplets = append(g.droplets, d)
	return nil
}

// newDroplet builds the droplet in slot i; serial numbers every droplet the
// scene has spawned and seeds its spawn column.
func (g *Game) newDroplet(i, serial int) (*droplet, error) {
	dc := g.cfg.Droplets
	field := g.cfg.Field
	d := &droplet{g: g}

	dist, err := g.fieldDistribution(int64(serial) + 1)
	if err != nil {
		return nil, err
	}
	d.xDist = dist

	e, err := entity.New(fmt.Sprintf("droplet-%d", serial), dist.Next(), field.Height+float64(i)*dc.Stagger,
		entity.WithUpdate(d.update),
		entity.WithTextureDraw(d.draw))
	if err != nil {
		return nil, err
	}
	d.e = e

	gm, err := movement.NewGravity(e, dc.Gravity)
	if err != nil {
		return nil, err
	}
	setters := []error{
		gm.SetVelocity(0, -(dc.FallSpeed + float64(i)*dc.FallStep)),
		gm.SetAcceleration(0, dc.AccelerationY),
		gm.SetVerticalBounds(dc.BottomY, field.Height+dc.ResetOffset),
		gm.SetSpeedMultiplier(dc.SpeedMultiplier),
		gm.SetMaxDropSpeed(g.difficulty.Speed(dc.MaxDropSpeed, g.score, g.tickCount)),
	}
	if err := errors.Join(setters...); err != nil {
		return nil, err
	}
	gm.SetXDistribution(dist)
	gm.OnReset(d.missed)
	d.motion = gm

	d.box = collision.NewBox(e, dc.Size, dc.Size, dropletType, d.onCollision)
	if err := g.world.Spawn(e, []movement.Component{gm}, []collision.Collidable{d.box}); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *droplet) onCollision(res collision.Result) error {
	switch res.Other.Type().Name {
	case dropletType.Name:
		return nil
	case bucketType.Name:
		d.catch()
		return nil
	default:
		return d.bounce(res)
	}
}

// catch scores the droplet and either retires it or respawns it at the top
// with a gentle fall.
func (d *droplet) catch() {
	d.g.score++
	if d.g.cfg.Gameplay.RetireCaught {
		d.retire()
		return
	}
	top := d.g.cfg.Field.Height + d.g.cfg.Droplets.ResetOffset
	if err := d.e.SetPosition(d.xDist.Next(), top); err != nil {
		d.g.log.Warn("droplet respawn failed", "droplet", d.e, "error", err)
	}
	_ = d.motion.SetVelocity(0, -d.g.cfg.Droplets.RespawnSpeed)
}

// retire removes the droplet from the world and from the scene. Inside a
// collision pass the world applies the removal once the pass ends.
func (d *droplet) retire() {
	if !d.g.world.Retire(d.e) {
		return
	}
	d.g.droplets = slices.DeleteFunc(d.g.droplets, func(o *droplet) bool { return o == d })
	d.g.log.Debug("droplet retired", "droplet", d.e, "remaining", len(d.g.droplets))
}

// bounce separates the droplet from an obstacle along the collision axis and
// reflects its velocity with damping.
func (d *droplet) bounce(res collision.Result) error {
	dc := d.g.cfg.Droplets
	vx, vy := d.motion.Velocity()
	kick := (d.g.rng.Float64()*2 - 1) * dc.BounceKick
	x, y := d.e.Position()

	switch res.Direction {
	case collision.Bottom:
		y += res.OverlapY + 1
		vx, vy = vx+kick, math.Abs(vy)*dc.BounceDamping
	case collision.Top:
		y -= res.OverlapY + 1
		vx, vy = vx+kick, -math.Abs(vy)*dc.BounceDamping
	case collision.Left:
		x += res.OverlapX + 1
		vx = math.Abs(vx)*dc.BounceDamping + dc.SidePush
	case collision.Right:
		x -= res.OverlapX + 1
		vx = -(math.Abs(vx)*dc.BounceDamping + dc.SidePush)
	}

	x = core.ClampF(x, 0, d.g.cfg.Field.Width-dc.Size)
	if err := d.e.SetPosition(x, y); err != nil {
		return err
	}
	if err := d.motion.SetVelocity(vx, vy); err != nil {
		return err
	}
	d.g.play(SoundSplash)
	return nil
}

// missed is called by the gravity component when the droplet falls out of
// the field.
func (d *droplet) missed(*movement.Gravity) {
	d.g.missed++
	d.g.play(SoundMiss)
}

// update keeps bounced droplets inside the field: a droplet that drifts off
// the sides is pushed back and one that floats above the spawn band is
// respawned without scoring.
func (d *droplet) update(e *entity.Entity, _ float64) error {
	dc := d.g.cfg.Droplets
	field := d.g.cfg.Field
	vx, vy := d.motion.Velocity()

	if x := e.X(); x < 0 || x > field.Width-dc.Size {
		if err := e.SetX(core.ClampF(x, 0, field.Width-dc.Size)); err != nil {
			return err
		}
		if err := d.motion.SetVelocity(-vx, vy); err != nil {
			return err
		}
	}

	ceiling := field.Height + dc.ResetOffset + float64(len(d.g.droplets))*dc.Stagger + dc.Size
	if e.Y() > ceiling && vy > 0 {
		if err := e.SetPosition(d.xDist.Next(), field.Height+dc.ResetOffset); err != nil {
			return err
		}
		return d.motion.SetVelocity(0, -dc.RespawnSpeed)
	}
	return nil
}

// shapeKind selects how an obstacle is drawn.
type shapeKind int

const (
	kindTriangle shapeKind = iota
	kindCircle
	kindSquare
	kindLightning
)

// shape is an obstacle. Its position is its centre.
type shape struct {
	g      *Game
	kind   shapeKind
	radius float64
	e      *entity.Entity
	motion movement.Component
	box    *collision.Box
}

func (g *Game) newShape(name string, kind shapeKind, sc config.ShapeConfig, kindType collision.Type, opts ...entity.Option) (*shape, error) {
	s := &shape{g: g, kind: kind, radius: sc.Radius}
	opts = append(opts, entity.WithShapeDraw(s.draw))

	e, err := entity.New(name, sc.X*g.cfg.Field.Width, sc.Y*g.cfg.Field.Height, opts...)
	if err != nil {
		return nil, err
	}
	s.e = e

	var handler collision.Handler
	if kindType.TriggersEvent {
		handler = s.onCollision
	}
	s.box = collision.NewBox(e, 2*sc.Radius, 2*sc.Radius, kindType, handler).WithOffset(-sc.Radius, -sc.Radius)
	return s, nil
}

func (s *shape) spawn(components ...movement.Component) error {
	if len(components) > 0 {
		s.motion = components[0]
	}
	return s.g.world.Spawn(s.e, components, []collision.Collidable{s.box})
}

func (g *Game) newTriangle(sc config.ShapeConfig) (*shape, error) {
	s, err := g.newShape("triangle", kindTriangle, sc, shapeType, entity.WithRotation(0))
	if err != nil {
		return nil, err
	}
	rc, err := movement.NewRotation(s.e, 0)
	if err != nil {
		return nil, err
	}
	if err := rc.SetAngularVelocity(sc.AngularVelocity); err != nil {
		return nil, err
	}
	return s, s.spawn(rc)
}

func (g *Game) newCircle(sc config.ShapeConfig) (*shape, error) {
	var s *shape
	s, err := g.newShape("circle", kindCircle, sc, shapeType, entity.WithUpdate(func(e *entity.Entity, _ float64) error {
		return s.bounceOffWalls()
	}))
	if err != nil {
		return nil, err
	}
	rc, err := movement.NewRotation(s.e, 0)
	if err != nil {
		return nil, err
	}
	if err := errors.Join(rc.SetAngularVelocity(sc.AngularVelocity), rc.SetVelocity(sc.VelocityX, sc.VelocityY)); err != nil {
		return nil, err
	}
	return s, s.spawn(rc)
}

func (g *Game) newSquare(sc config.ShapeConfig) (*shape, error) {
	s, err := g.newShape("square", kindSquare, sc, shapeType)
	if err != nil {
		return nil, err
	}
	return s, s.spawn()
}

// newLightning builds the storm's faulty obstacle: a lightning rod whose
// collision handler fails on every hit and panics on every third.
func (g *Game) newLightning() (*shape, error) {
	sc := config.ShapeConfig{X: 0.5, Y: 0.82, Radius: 28}
	s, err := g.newShape("lightning", kindLightning, sc, lightningType)
	if err != nil {
		return nil, err
	}
	return s, s.spawn()
}

// onCollision is only wired for triggering obstacles; the lightning rod
// fails on every strike.
func (s *shape) onCollision(collision.Result) error {
	if s.kind != kindLightning {
		return nil
	}
	s.g.strikes++
	if s.g.strikes%3 == 0 {
		panic(errGroundingFault)
	}
	return errGroundingFault
}

// bounceOffWalls reflects a drifting shape off the field edges.
func (s *shape) bounceOffWalls() error {
	if s.motion == nil {
		return nil
	}
	r := s.radius
	field := s.g.cfg.Field
	x, y := s.e.Position()
	vx, vy := s.motion.Velocity()

	changed := false
	if x-r <= 0 || x+r >= field.Width {
		vx = -vx
		x = core.ClampF(x, r, field.Width-r)
		changed = true
	}
	if y-r <= 0 || y+r >= field.Height {
		vy = -vy
		y = core.ClampF(y, r, field.Height-r)
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.motion.SetVelocity(vx, vy); err != nil {
		return err
	}
	return s.e.SetPosition(x, y)
}
