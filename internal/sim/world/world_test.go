package world

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/collision"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
	"github.com/vovakirdan/raincatch/internal/sim/movement"
)

var (
	bucketType  = collision.NewType("bucket", true, true)
	dropletType = collision.NewType("droplet", false, true)
)

func mustEntity(t *testing.T, name string, x, y float64, opts ...entity.Option) *entity.Entity {
	t.Helper()
	e, err := entity.New(name, x, y, opts...)
	if err != nil {
		t.Fatalf("entity.New(%q) failed: %v", name, err)
	}
	return e
}

func assertGone(t *testing.T, w *World, e *entity.Entity, boxes ...collision.Collidable) {
	t.Helper()
	if w.Alive(e) {
		t.Error("entity still alive")
	}
	if w.Entities().Contains(e) {
		t.Error("entity registry still holds the entity")
	}
	if w.Movement().Find(e) != nil {
		t.Error("movement registry still holds a component")
	}
	for _, b := range boxes {
		if w.Collisions().Contains(b) {
			t.Error("collision registry still holds a collidable")
		}
	}
}

func TestStepOrder(t *testing.T) {
	w := New()
	var seen []float64
	e := mustEntity(t, "mover", 0, 0, entity.WithUpdate(func(e *entity.Entity, dt float64) error {
		seen = append(seen, e.X())
		return nil
	}))
	lin, _ := movement.NewLinear(e, 10, 0)
	if err := w.Spawn(e, []movement.Component{lin}, nil); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := w.Step(0.5); err != nil {
			t.Fatal(err)
		}
	}

	// Movement runs before the entity's own hook.
	expected := []float64{5, 10, 15}
	for i, x := range expected {
		if seen[i] != x {
			t.Errorf("hook %d saw X() = %v, expected %v", i, seen[i], x)
		}
	}
	if w.Frame() != 3 {
		t.Errorf("Frame() = %d, expected 3", w.Frame())
	}
}

func TestStepRejectsBadDelta(t *testing.T) {
	w := New()
	e := mustEntity(t, "mover", 1, 1)
	lin, _ := movement.NewLinear(e, 1, 1)
	_ = w.Spawn(e, []movement.Component{lin}, nil)

	for _, dt := range []float64{math.NaN(), -1, math.Inf(1)} {
		if err := w.Step(dt); !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Step(%v) error = %v, expected ErrInvalidDelta", dt, err)
		}
	}
	if w.Frame() != 0 {
		t.Errorf("Frame() = %d, expected 0", w.Frame())
	}
	if x, y := e.Position(); x != 1 || y != 1 {
		t.Errorf("Position() = (%v, %v), expected unchanged", x, y)
	}
}

func TestRetireRemovesFromEveryRegistry(t *testing.T) {
	w := New()
	e := mustEntity(t, "droplet", 0, 0)
	g, _ := movement.NewGravity(e, -1)
	box := collision.NewBox(e, 1, 1, dropletType, nil)
	if err := w.Spawn(e, []movement.Component{g}, []collision.Collidable{box}); err != nil {
		t.Fatal(err)
	}

	if !w.Retire(e) {
		t.Fatal("Retire() = false for a live entity")
	}
	assertGone(t, w, e, box)

	if w.Retire(e) {
		t.Error("second Retire() = true")
	}
	if w.Retire(mustEntity(t, "stranger", 0, 0)) {
		t.Error("Retire(unknown) = true")
	}
}

func TestRetireFromCollisionCallbackIsDeferred(t *testing.T) {
	w := New()
	drop := mustEntity(t, "droplet", 2, 2)
	dropBox := collision.NewBox(drop, 2, 2, dropletType, nil)
	g, _ := movement.NewGravity(drop, 0)

	bucket := mustEntity(t, "bucket", 0, 0)
	var duringPass bool
	bucketBox := collision.NewBox(bucket, 6, 6, bucketType, func(res collision.Result) error {
		if res.Other == collision.Collidable(dropBox) {
			w.Retire(drop)
			duringPass = w.Entities().Contains(drop) && !w.Alive(drop)
		}
		return nil
	})

	witness := mustEntity(t, "witness", 3, 3)
	witnessHits := 0
	witnessBox := collision.NewBox(witness, 1, 1, dropletType, func(res collision.Result) error {
		if res.Other == collision.Collidable(dropBox) {
			witnessHits++
		}
		return nil
	})

	_ = w.Spawn(bucket, nil, []collision.Collidable{bucketBox})
	_ = w.Spawn(drop, []movement.Component{g}, []collision.Collidable{dropBox})
	_ = w.Spawn(witness, nil, []collision.Collidable{witnessBox})

	if err := w.Step(0.016); err != nil {
		t.Fatal(err)
	}

	if !duringPass {
		t.Error("entity should stay registered but not alive during the pass")
	}
	if witnessHits != 0 {
		t.Error("retired droplet collided after its retirement was requested")
	}
	assertGone(t, w, drop, dropBox)
	if !w.Alive(bucket) || !w.Alive(witness) {
		t.Error("other entities should survive")
	}
}

func TestRetireFromHookIsDeferred(t *testing.T) {
	w := New()
	var self *entity.Entity
	self = mustEntity(t, "fuse", 0, 0, entity.WithUpdate(func(e *entity.Entity, dt float64) error {
		w.Retire(self)
		return nil
	}))
	_ = w.Spawn(self, nil, nil)

	_ = w.Step(0.1)
	assertGone(t, w, self)
}

func TestSpawnValidation(t *testing.T) {
	w := New()
	a := mustEntity(t, "a", 0, 0)
	b := mustEntity(t, "b", 0, 0)
	foreign, _ := movement.NewLinear(b, 0, 0)

	if err := w.Spawn(nil, nil, nil); !errors.Is(err, entity.ErrNilEntity) {
		t.Errorf("Spawn(nil) error = %v", err)
	}
	if err := w.Spawn(a, []movement.Component{foreign}, nil); !errors.Is(err, ErrForeignComponent) {
		t.Errorf("foreign component error = %v", err)
	}

	good := collision.NewBox(a, 1, 1, bucketType, nil)
	bad := collision.NewBox(a, -1, 1, bucketType, nil)
	if err := w.Spawn(a, nil, []collision.Collidable{good, bad}); !errors.Is(err, collision.ErrInvalidBounds) {
		t.Errorf("invalid collidable error = %v", err)
	}
	if w.Entities().Contains(a) || w.Collisions().Contains(good) {
		t.Error("failed spawn left registrations behind")
	}

	if err := w.Spawn(a, nil, []collision.Collidable{good}); err != nil {
		t.Fatal(err)
	}
	if err := w.Spawn(a, nil, nil); !errors.Is(err, ErrAlreadySpawned) {
		t.Errorf("double Spawn error = %v", err)
	}
}

func TestStepReportsFailuresButContinues(t *testing.T) {
	w := New()
	broken := mustEntity(t, "broken", 0, 0, entity.WithUpdate(func(*entity.Entity, float64) error {
		return errors.New("hook failed")
	}))
	mover := mustEntity(t, "mover", 0, 0)
	lin, _ := movement.NewLinear(mover, 1, 0)
	_ = w.Spawn(broken, nil, nil)
	_ = w.Spawn(mover, []movement.Component{lin}, nil)

	if err := w.Step(1); err == nil {
		t.Error("Step() should report the failing hook")
	}
	if mover.X() != 1 {
		t.Errorf("mover X() = %v, expected 1", mover.X())
	}
	if w.Frame() != 1 {
		t.Errorf("Frame() = %d, expected 1", w.Frame())
	}
}

func TestDrawAndTeardown(t *testing.T) {
	w := New()
	disposed := 0
	e := mustEntity(t, "glyph", 1, 1,
		entity.WithTextureDraw(func(e *entity.Entity, dst *core.Screen) {
			dst.Set(int(e.X()), int(e.Y()), '*')
		}),
		entity.WithDispose(func(*entity.Entity) error {
			disposed++
			return nil
		}),
	)
	box := collision.NewBox(e, 1, 1, bucketType, nil)
	_ = w.Spawn(e, nil, []collision.Collidable{box})

	screen := core.NewScreen(4, 4)
	w.Draw(core.TexturePass, screen)
	if screen.Get(1, 1) != '*' {
		t.Error("texture pass did not draw the entity")
	}

	if err := w.Teardown(); err != nil {
		t.Fatal(err)
	}
	if disposed != 1 {
		t.Errorf("disposed = %d, expected 1", disposed)
	}
	if w.Entities().Len() != 0 || w.Collisions().Len() != 0 || w.Movement().Len() != 0 {
		t.Error("Teardown() left registrations behind")
	}
}
