package entity

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raincatch/internal/core"
)

// Registry owns the list of drawable and updatable entities.
type Registry struct {
	entities []*Entity
	logger   *log.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{logger: logger}
}

// Add registers an entity. Nil and already registered entities are rejected.
func (r *Registry) Add(e *Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	if r.Contains(e) {
		return fmt.Errorf("%w: %s", ErrDuplicate, e)
	}
	r.entities = append(r.entities, e)
	return nil
}

// Remove unregisters an entity by identity. Reports whether it was present.
func (r *Registry) Remove(e *Entity) bool {
	i := slices.Index(r.entities, e)
	if i < 0 || e == nil {
		return false
	}
	r.entities = slices.Delete(r.entities, i, i+1)
	return true
}

// Release removes e and runs its dispose hook. Reports whether e was present.
func (r *Registry) Release(e *Entity) (bool, error) {
	if !r.Remove(e) {
		return false, nil
	}
	if e.dispose == nil {
		return true, nil
	}
	if err := safeDispose(e); err != nil {
		r.logger.Warn("entity dispose failed", "entity", e, "error", err)
		return true, err
	}
	return true, nil
}

// Contains reports whether e is registered.
func (r *Registry) Contains(e *Entity) bool {
	return e != nil && slices.Contains(r.entities, e)
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Entities returns a copy of the registered entities in registration order.
func (r *Registry) Entities() []*Entity {
	return slices.Clone(r.entities)
}

// Update runs every entity's own update hook. It is independent of any
// movement component the entity may have. A failing hook does not stop the
// others; all failures are returned joined.
func (r *Registry) Update(dt float64) error {
	if !core.ValidDelta(dt) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	var errs []error
	for _, e := range slices.Clone(r.entities) {
		if e.update == nil {
			continue
		}
		if err := safeUpdate(e, dt); err != nil {
			r.logger.Error("entity update failed", "entity", e, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Draw calls each entity's texture hook while the texture pass is active and
// its shape hook while the shape pass is active.
func (r *Registry) Draw(pass core.PassState, dst *core.Screen) {
	for _, e := range r.entities {
		if pass.Texture && e.drawTexture != nil {
			r.safeDraw(e, e.drawTexture, dst)
		}
		if pass.Shape && e.drawShape != nil {
			r.safeDraw(e, e.drawShape, dst)
		}
	}
}

// Dispose releases every entity and clears the registry.
func (r *Registry) Dispose() error {
	var errs []error
	for _, e := range r.entities {
		if e.dispose == nil {
			continue
		}
		if err := safeDispose(e); err != nil {
			r.logger.Warn("entity dispose failed", "entity", e, "error", err)
			errs = append(errs, err)
		}
	}
	r.entities = nil
	return errors.Join(errs...)
}

func safeUpdate(e *Entity, dt float64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("entity %s: update panicked: %v", e, p)
		}
	}()
	return e.update(e, dt)
}

func safeDispose(e *Entity) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("entity %s: dispose panicked: %v", e, p)
		}
	}()
	return e.dispose(e)
}

func (r *Registry) safeDraw(e *Entity, fn DrawFunc, dst *core.Screen) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("entity draw panicked", "entity", e, "panic", p)
		}
	}()
	fn(e, dst)
}
