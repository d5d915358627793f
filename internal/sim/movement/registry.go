package movement

import (
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

// Registry owns the active movement components and integrates them each frame.
type Registry struct {
	components []Component
	logger     *log.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{logger: logger}
}

// Register adds a component. Registering the same component twice is a no-op.
func (r *Registry) Register(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if slices.Contains(r.components, c) {
		return nil
	}
	r.components = append(r.components, c)
	return nil
}

// Unregister removes a component by identity. Reports whether it was present.
func (r *Registry) Unregister(c Component) bool {
	i := slices.Index(r.components, c)
	if i < 0 {
		return false
	}
	r.components = slices.Delete(r.components, i, i+1)
	return true
}

// Find returns the first component owned by e, or nil.
func (r *Registry) Find(e *entity.Entity) Component {
	for _, c := range r.components {
		if c.Entity() == e {
			return c
		}
	}
	return nil
}

// Components returns every component owned by e.
func (r *Registry) Components(e *entity.Entity) []Component {
	var owned []Component
	for _, c := range r.components {
		if c.Entity() == e {
			owned = append(owned, c)
		}
	}
	return owned
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}

// Clear unregisters every component.
func (r *Registry) Clear() {
	r.components = nil
}

// Update integrates every enabled component. An invalid dt is rejected for
// the whole call before any component moves. A failing component is logged
// and skipped; the rest still run.
func (r *Registry) Update(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}

	var errs []error
	for _, c := range slices.Clone(r.components) {
		if !c.Enabled() {
			continue
		}
		if err := c.Update(dt); err != nil {
			r.logger.Warn("movement update failed", "entity", c.Entity(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
