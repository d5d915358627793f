package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/raincatch/internal/core"
)

func mustNew(t *testing.T, name string, x, y float64, opts ...Option) *Entity {
	t.Helper()
	e, err := New(name, x, y, opts...)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", name, err)
	}
	return e
}

func TestNewRejectsNonFinite(t *testing.T) {
	if _, err := New("bad", math.NaN(), 0); !errors.Is(err, ErrNonFinite) {
		t.Errorf("New(NaN) error = %v, expected ErrNonFinite", err)
	}
	if _, err := New("bad", 0, 0, WithRotation(math.Inf(1))); !errors.Is(err, ErrNonFinite) {
		t.Errorf("New(rotation Inf) error = %v, expected ErrNonFinite", err)
	}
}

func TestSettersKeepPriorStateOnRejection(t *testing.T) {
	e := mustNew(t, "drop", 1, 2)

	if err := e.SetX(math.Inf(1)); !errors.Is(err, ErrNonFinite) {
		t.Errorf("SetX(Inf) error = %v", err)
	}
	if err := e.SetPosition(5, math.NaN()); !errors.Is(err, ErrNonFinite) {
		t.Errorf("SetPosition(5, NaN) error = %v", err)
	}
	if x, y := e.Position(); x != 1 || y != 2 {
		t.Errorf("Position() = (%v, %v), expected (1, 2)", x, y)
	}

	if err := e.Translate(1, -1); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if x, y := e.Position(); x != 2 || y != 1 {
		t.Errorf("Position() after Translate = (%v, %v), expected (2, 1)", x, y)
	}
}

func TestRotationCapability(t *testing.T) {
	plain := mustNew(t, "bucket", 0, 0)
	if plain.Rotation() != nil {
		t.Error("entity without WithRotation should have nil Rotation()")
	}

	spinner := mustNew(t, "triangle", 0, 0, WithRotation(45))
	rot := spinner.Rotation()
	if rot == nil || rot.Angle() != 45 {
		t.Fatalf("Rotation() = %+v, expected angle 45", rot)
	}
	if err := rot.SetAngle(math.NaN()); err == nil {
		t.Error("SetAngle(NaN) should fail")
	}
	if rot.Angle() != 45 {
		t.Errorf("Angle() = %v after rejected set, expected 45", rot.Angle())
	}
}

func TestIdentityIsPerInstance(t *testing.T) {
	a := mustNew(t, "drop", 0, 0, WithPayload(core.ColorCyan))
	b := mustNew(t, "drop", 0, 0)

	if a.ID() == b.ID() {
		t.Error("two entities share an ID")
	}
	if a.Payload() != core.ColorCyan {
		t.Errorf("Payload() = %v", a.Payload())
	}
	if len(a.String()) != len("drop#")+8 {
		t.Errorf("String() = %q", a.String())
	}
}
