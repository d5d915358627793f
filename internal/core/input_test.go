package core

import (
	"math"
	"testing"
)

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	if !f.ActionJustTriggered(ActionPause) {
		t.Error("ActionJustTriggered(Pause) = false, expected true")
	}
	if f.ActionJustTriggered(ActionToggleMute) {
		t.Error("ActionJustTriggered(ToggleMute) = true, expected false")
	}

	var zero InputFrame
	if zero.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameAxis(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"within range", 0.5, 0.5},
		{"above range", 3, 1},
		{"below range", -2, -1},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(-1), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			f.SetAxis(AxisMoveX, tc.in)
			if got := f.AxisValue(AxisMoveX); got != tc.expected {
				t.Errorf("AxisValue() = %v, expected %v", got, tc.expected)
			}
		})
	}

	var zero InputFrame
	if zero.AxisValue(AxisMoveY) != 0 {
		t.Error("unset axis should read 0")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRestart)
	f.SetAxis(AxisMoveX, -1)
	f.PointerX, f.HasPointer = 0.5, true

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionRestart) || f.AxisValue(AxisMoveX) != 0 || f.HasPointer {
		t.Error("Clear should reset actions, axes and pointer")
	}
	if !clone.Has(ActionRestart) || clone.AxisValue(AxisMoveX) != -1 || clone.PointerX != 0.5 {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionToggleMouse.String() != "ToggleMouse" {
		t.Errorf("String() = %q", ActionToggleMouse.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q, expected Unknown", Action(99).String())
	}
}
