package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/raincatch/internal/core"
)

func TestRegistryAddRemove(t *testing.T) {
	r := NewRegistry(nil)
	e := mustNew(t, "bucket", 0, 0)

	if err := r.Add(nil); !errors.Is(err, ErrNilEntity) {
		t.Errorf("Add(nil) error = %v, expected ErrNilEntity", err)
	}
	if err := r.Add(e); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := r.Add(e); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Add(dup) error = %v, expected ErrDuplicate", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", r.Len())
	}

	if !r.Remove(e) {
		t.Error("Remove() = false, expected true")
	}
	if r.Remove(e) {
		t.Error("second Remove() = true, expected false")
	}
	if r.Contains(e) {
		t.Error("Contains() after Remove = true")
	}
}

func TestRegistryUpdateForwardsAndIsolates(t *testing.T) {
	r := NewRegistry(nil)

	var calls []string
	ok := mustNew(t, "ok", 0, 0, WithUpdate(func(e *Entity, dt float64) error {
		calls = append(calls, e.Name())
		return e.Translate(dt, 0)
	}))
	failing := mustNew(t, "failing", 0, 0, WithUpdate(func(*Entity, float64) error {
		calls = append(calls, "failing")
		return errors.New("boom")
	}))
	panicking := mustNew(t, "panicking", 0, 0, WithUpdate(func(*Entity, float64) error {
		calls = append(calls, "panicking")
		panic("bad entity")
	}))
	silent := mustNew(t, "silent", 0, 0)
	after := mustNew(t, "after", 0, 0, WithUpdate(func(e *Entity, _ float64) error {
		calls = append(calls, e.Name())
		return nil
	}))

	for _, e := range []*Entity{ok, failing, panicking, silent, after} {
		if err := r.Add(e); err != nil {
			t.Fatal(err)
		}
	}

	err := r.Update(0.5)
	if err == nil {
		t.Fatal("Update() should report the failing hooks")
	}
	if len(calls) != 4 || calls[3] != "after" {
		t.Errorf("hooks called = %v, expected all four with hooks", calls)
	}
	if ok.X() != 0.5 {
		t.Errorf("ok.X() = %v, expected 0.5", ok.X())
	}
}

func TestRegistryUpdateRejectsBadDelta(t *testing.T) {
	r := NewRegistry(nil)
	called := false
	e := mustNew(t, "e", 0, 0, WithUpdate(func(*Entity, float64) error {
		called = true
		return nil
	}))
	_ = r.Add(e)

	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := r.Update(dt); !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Update(%v) error = %v, expected ErrInvalidDelta", dt, err)
		}
	}
	if called {
		t.Error("hook called despite invalid delta")
	}
}

func TestRegistryDrawPasses(t *testing.T) {
	r := NewRegistry(nil)
	var texture, shape int

	e := mustNew(t, "both", 0, 0,
		WithTextureDraw(func(*Entity, *core.Screen) { texture++ }),
		WithShapeDraw(func(*Entity, *core.Screen) { shape++ }),
	)
	crashy := mustNew(t, "crashy", 0, 0,
		WithTextureDraw(func(*Entity, *core.Screen) { panic("draw") }),
	)
	_ = r.Add(crashy)
	_ = r.Add(e)

	dst := core.NewScreen(4, 4)

	r.Draw(core.TexturePass, dst)
	if texture != 1 || shape != 0 {
		t.Errorf("texture pass: texture=%d shape=%d, expected 1/0", texture, shape)
	}

	r.Draw(core.ShapePass, dst)
	if texture != 1 || shape != 1 {
		t.Errorf("shape pass: texture=%d shape=%d, expected 1/1", texture, shape)
	}

	r.Draw(core.PassState{}, dst)
	if texture != 1 || shape != 1 {
		t.Errorf("no pass: texture=%d shape=%d, expected unchanged", texture, shape)
	}
}

func TestRegistryDispose(t *testing.T) {
	r := NewRegistry(nil)
	disposed := 0
	for i := 0; i < 3; i++ {
		e := mustNew(t, "e", 0, 0, WithDispose(func(*Entity) error {
			disposed++
			return nil
		}))
		_ = r.Add(e)
	}

	if err := r.Dispose(); err != nil {
		t.Fatalf("Dispose() failed: %v", err)
	}
	if disposed != 3 {
		t.Errorf("disposed = %d, expected 3", disposed)
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Dispose = %d, expected 0", r.Len())
	}
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry(nil)
	fail := errors.New("stuck")
	released := 0
	e := mustNew(t, "e", 0, 0, WithDispose(func(*Entity) error {
		released++
		return fail
	}))
	_ = r.Add(e)

	ok, err := r.Release(e)
	if !ok || !errors.Is(err, fail) {
		t.Errorf("Release() = (%v, %v), expected (true, stuck)", ok, err)
	}
	if r.Contains(e) {
		t.Error("released entity still registered")
	}

	ok, err = r.Release(e)
	if ok || err != nil || released != 1 {
		t.Errorf("second Release() = (%v, %v), dispose ran %d times", ok, err, released)
	}
}

func TestRegistryDisposeRecoversPanics(t *testing.T) {
	r := NewRegistry(nil)
	disposed := 0
	count := func(*Entity) error {
		disposed++
		return nil
	}
	_ = r.Add(mustNew(t, "first", 0, 0, WithDispose(count)))
	_ = r.Add(mustNew(t, "panicking", 0, 0, WithDispose(func(*Entity) error {
		panic("broken texture")
	})))
	_ = r.Add(mustNew(t, "last", 0, 0, WithDispose(count)))

	if err := r.Dispose(); err == nil {
		t.Error("Dispose() error = nil, expected the recovered panic")
	}
	if disposed != 2 {
		t.Errorf("disposed = %d, expected 2", disposed)
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Dispose = %d, expected 0", r.Len())
	}

	e := mustNew(t, "released", 0, 0, WithDispose(func(*Entity) error {
		panic("broken sound")
	}))
	_ = r.Add(e)
	ok, err := r.Release(e)
	if !ok || err == nil {
		t.Errorf("Release() = (%v, %v), expected (true, error)", ok, err)
	}
	if r.Contains(e) {
		t.Error("released entity still registered")
	}
}
