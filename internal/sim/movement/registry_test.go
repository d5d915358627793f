package movement

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

func TestRegistryRegisterDeduplicates(t *testing.T) {
	r := NewRegistry(nil)
	e := newEntity(t, 0, 0)
	l, _ := NewLinear(e, 1, 0)

	if err := r.Register(nil); !errors.Is(err, ErrNilComponent) {
		t.Errorf("Register(nil) error = %v", err)
	}
	if err := r.Register(l); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(l); err != nil {
		t.Errorf("re-register should be a no-op, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", r.Len())
	}

	if !r.Unregister(l) {
		t.Error("Unregister() = false")
	}
	if r.Unregister(l) {
		t.Error("second Unregister() = true")
	}
}

func TestRegistryFind(t *testing.T) {
	r := NewRegistry(nil)
	a := newEntity(t, 0, 0)
	b := newEntity(t, 0, 0)
	stranger := newEntity(t, 0, 0)

	la, _ := NewLinear(a, 0, 0)
	ga, _ := NewGravity(a, 0)
	lb, _ := NewLinear(b, 0, 0)
	_ = r.Register(la)
	_ = r.Register(ga)
	_ = r.Register(lb)

	if got := r.Find(b); got != Component(lb) {
		t.Errorf("Find(b) = %v, expected lb", got)
	}
	if got := r.Find(stranger); got != nil {
		t.Errorf("Find(stranger) = %v, expected nil", got)
	}
	if got := r.Components(a); len(got) != 2 {
		t.Errorf("Components(a) len = %d, expected 2", len(got))
	}
}

func TestRegistryUpdateSkipsDisabled(t *testing.T) {
	r := NewRegistry(nil)
	moving := newEntity(t, 0, 0)
	frozen := newEntity(t, 3, 4)

	lm, _ := NewLinear(moving, 1, 1)
	lf, _ := NewLinear(frozen, 5, 5)
	lf.Disable()
	_ = r.Register(lm)
	_ = r.Register(lf)

	for i := 0; i < 10; i++ {
		if err := r.Update(0.1); err != nil {
			t.Fatal(err)
		}
	}

	if x, y := frozen.Position(); x != 3 || y != 4 {
		t.Errorf("disabled component moved entity to (%v, %v)", x, y)
	}
	if vx, vy := lf.Velocity(); vx != 5 || vy != 5 {
		t.Errorf("disabled component velocity changed to (%v, %v)", vx, vy)
	}
	if math.Abs(moving.X()-1) > 1e-9 {
		t.Errorf("enabled component X() = %v, expected 1", moving.X())
	}

	lf.Enable()
	_ = r.Update(1)
	if frozen.X() != 8 {
		t.Errorf("re-enabled X() = %v, expected 8", frozen.X())
	}
}

func TestRegistryUpdateRejectsWholeCall(t *testing.T) {
	r := NewRegistry(nil)
	var ents []*entity.Entity
	for i := 0; i < 3; i++ {
		e := newEntity(t, 0, 0)
		l, _ := NewLinear(e, 1, 1)
		_ = r.Register(l)
		ents = append(ents, e)
	}

	if err := r.Update(math.NaN()); !errors.Is(err, ErrInvalidDelta) {
		t.Fatalf("Update(NaN) error = %v", err)
	}
	for i, e := range ents {
		if e.X() != 0 || e.Y() != 0 {
			t.Errorf("entity %d moved despite rejected delta", i)
		}
	}
}

// brokenComponent always fails.
type brokenComponent struct {
	Body
}

func (b *brokenComponent) Update(float64) error { return errors.New("broken") }

func TestRegistryUpdateContinuesPastFailure(t *testing.T) {
	r := NewRegistry(nil)
	bad := &brokenComponent{Body: Body{owner: newEntity(t, 0, 0)}}
	e := newEntity(t, 0, 0)
	good, _ := NewLinear(e, 1, 0)
	_ = r.Register(bad)
	_ = r.Register(good)

	if err := r.Update(1); err == nil {
		t.Error("Update() should report the broken component")
	}
	if e.X() != 1 {
		t.Errorf("good component X() = %v, expected 1", e.X())
	}
}
