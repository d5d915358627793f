package collision

import (
	"fmt"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

// Handler reacts to a collision.
type Handler func(res Result) error

// Box is a Collidable whose bounds follow an entity's position.
// One entity may back several boxes.
type Box struct {
	owner      *entity.Entity
	offX, offY float64
	w, h       float64
	kind       Type
	handler    Handler
}

// NewBox creates a w×h box anchored at the owner's position.
// A nil handler ignores collisions.
func NewBox(owner *entity.Entity, w, h float64, kind Type, handler Handler) *Box {
	return &Box{owner: owner, w: w, h: h, kind: kind, handler: handler}
}

// WithOffset shifts the box relative to the owner's position and returns it.
func (b *Box) WithOffset(dx, dy float64) *Box {
	b.offX, b.offY = dx, dy
	return b
}

// SetSize replaces the box dimensions.
func (b *Box) SetSize(w, h float64) {
	b.w, b.h = w, h
}

// Owner returns the entity backing the box.
func (b *Box) Owner() *entity.Entity {
	return b.owner
}

// Bounds returns the box in world coordinates.
func (b *Box) Bounds() core.RectF {
	return core.NewRectF(b.owner.X()+b.offX, b.owner.Y()+b.offY, b.w, b.h)
}

// Type returns the collision type.
func (b *Box) Type() Type {
	return b.kind
}

// OnCollision forwards to the handler.
func (b *Box) OnCollision(res Result) error {
	if b.handler == nil {
		return nil
	}
	return b.handler(res)
}

// String identifies the box in logs.
func (b *Box) String() string {
	return fmt.Sprintf("%s(%s)", b.kind.Name, b.owner)
}

// describe names a collidable for logs.
func describe(c Collidable) (s string) {
	defer func() {
		if recover() != nil {
			s = "<broken collidable>"
		}
	}()
	if st, ok := c.(fmt.Stringer); ok {
		return st.String()
	}
	return c.Type().Name
}
