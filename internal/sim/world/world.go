// Package world ties the entity, movement and collision registries together
// and owns entity lifetime across them.
package world

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/collision"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
	"github.com/vovakirdan/raincatch/internal/sim/movement"
)

var (
	// ErrInvalidDelta is returned when Step receives a NaN, infinite or
	// negative delta. The whole step is skipped.
	ErrInvalidDelta = errors.New("world: delta time must be finite and non-negative")
	// ErrAlreadySpawned is returned when spawning an entity twice.
	ErrAlreadySpawned = errors.New("world: entity already spawned")
	// ErrForeignComponent is returned when a component belongs to another entity.
	ErrForeignComponent = errors.New("world: component owned by another entity")
)

// binding remembers what was registered for one entity.
type binding struct {
	components  []movement.Component
	collidables []collision.Collidable
}

// Option configures a World.
type Option func(*options)

type options struct {
	logger     *log.Logger
	collisions collision.Config
	collOpts   []collision.Option
}

// WithLogger sets the logger shared by the world and its registries.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCollisionConfig replaces the collision registry configuration.
func WithCollisionConfig(cfg collision.Config) Option {
	return func(o *options) {
		o.collisions = cfg
	}
}

// WithCollisionOptions forwards extra options to the collision registry.
func WithCollisionOptions(opts ...collision.Option) Option {
	return func(o *options) {
		o.collOpts = append(o.collOpts, opts...)
	}
}

// World steps a scene: movement, then entity hooks, then collisions.
type World struct {
	entities   *entity.Registry
	movement   *movement.Registry
	collisions *collision.Registry

	bindings map[*entity.Entity]*binding
	retiring []*entity.Entity
	stepping bool
	frame    uint64
	logger   *log.Logger
}

// New creates an empty world.
func New(opts ...Option) *World {
	o := options{
		logger:     log.New(io.Discard),
		collisions: collision.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	collOpts := append([]collision.Option{collision.WithLogger(o.logger.WithPrefix("collision"))}, o.collOpts...)
	return &World{
		entities:   entity.NewRegistry(o.logger.WithPrefix("entity")),
		movement:   movement.NewRegistry(o.logger.WithPrefix("movement")),
		collisions: collision.NewRegistry(o.collisions, collOpts...),
		bindings:   make(map[*entity.Entity]*binding),
		logger:     o.logger,
	}
}

// Spawn registers e together with its movement components and collidables.
// Nothing is registered if any part is rejected.
func (w *World) Spawn(e *entity.Entity, components []movement.Component, collidables []collision.Collidable) error {
	if e == nil {
		return entity.ErrNilEntity
	}
	if _, ok := w.bindings[e]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadySpawned, e)
	}
	for _, c := range components {
		if c == nil {
			return movement.ErrNilComponent
		}
		if c.Entity() != e {
			return fmt.Errorf("%w: %s", ErrForeignComponent, c.Entity())
		}
	}

	if err := w.entities.Add(e); err != nil {
		return err
	}
	b := &binding{}
	for _, c := range collidables {
		if err := w.collisions.Add(c); err != nil {
			for _, added := range b.collidables {
				w.collisions.Remove(added)
			}
			w.entities.Remove(e)
			return fmt.Errorf("spawn %s: %w", e, err)
		}
		b.collidables = append(b.collidables, c)
	}
	for _, c := range components {
		_ = w.movement.Register(c)
		b.components = append(b.components, c)
	}
	w.bindings[e] = b

	w.logger.Debug("spawned", "entity", e, "components", len(components), "collidables", len(collidables))
	return nil
}

// Retire removes e from every registry as one operation. During a step the
// removal is queued and applied once the step finishes. Retiring an unknown
// or already retired entity is a no-op. Reports whether e was alive.
func (w *World) Retire(e *entity.Entity) bool {
	b, ok := w.bindings[e]
	if !ok || slices.Contains(w.retiring, e) {
		return false
	}
	if w.stepping || w.collisions.Checking() {
		w.retiring = append(w.retiring, e)
		for _, c := range b.collidables {
			w.collisions.Remove(c)
		}
		return true
	}
	w.unbind(e, b)
	return true
}

// Alive reports whether e is spawned and not queued for retirement.
func (w *World) Alive(e *entity.Entity) bool {
	_, ok := w.bindings[e]
	return ok && !slices.Contains(w.retiring, e)
}

// Step advances the world by dt seconds. An invalid dt skips the step.
// Component and hook failures are logged by their registries, joined and
// returned; they never stop the step.
func (w *World) Step(dt float64) error {
	if !core.ValidDelta(dt) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	w.stepping = true
	defer func() {
		w.stepping = false
		w.flush()
	}()

	w.frame++
	moveErr := w.movement.Update(dt)
	hookErr := w.entities.Update(dt)
	w.collisions.Check()
	return errors.Join(moveErr, hookErr)
}

// Draw renders every entity for the active pass.
func (w *World) Draw(pass core.PassState, dst *core.Screen) {
	w.entities.Draw(pass, dst)
}

// Teardown disposes every entity and empties all registries.
func (w *World) Teardown() error {
	err := w.entities.Dispose()
	w.movement.Clear()
	w.collisions.Clear()
	clear(w.bindings)
	w.retiring = nil
	return err
}

// Frame returns the number of completed steps.
func (w *World) Frame() uint64 {
	return w.frame
}

// Entities exposes the entity registry.
func (w *World) Entities() *entity.Registry { return w.entities }

// Movement exposes the movement registry.
func (w *World) Movement() *movement.Registry { return w.movement }

// Collisions exposes the collision registry.
func (w *World) Collisions() *collision.Registry { return w.collisions }

// Components returns the movement components spawned with e.
func (w *World) Components(e *entity.Entity) []movement.Component {
	if b, ok := w.bindings[e]; ok {
		return slices.Clone(b.components)
	}
	return nil
}

func (w *World) flush() {
	for _, e := range w.retiring {
		if b, ok := w.bindings[e]; ok {
			w.unbind(e, b)
		}
	}
	w.retiring = w.retiring[:0]
}

func (w *World) unbind(e *entity.Entity, b *binding) {
	for _, c := range b.components {
		w.movement.Unregister(c)
	}
	for _, c := range b.collidables {
		w.collisions.Remove(c)
	}
	if _, err := w.entities.Release(e); err != nil {
		w.logger.Warn("retire dispose failed", "entity", e, "error", err)
	}
	delete(w.bindings, e)
	w.logger.Debug("retired", "entity", e)
}
