package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionConfirm           // Enter - confirm selection
	ActionRestart           // R - restart after game over
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P, Escape - pause/unpause
	ActionToggleMute        // M - mute/unmute audio
	ActionToggleMouse       // T - switch bucket between keyboard and mouse control
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleMute:
		return "ToggleMute"
	case ActionToggleMouse:
		return "ToggleMouse"
	default:
		return "Unknown"
	}
}

// Axis names a continuous input in the range [-1, 1].
type Axis int

const (
	AxisMoveX Axis = iota // A/D, Left/Right
	AxisMoveY             // W/S, Up/Down
)

// AxisSource is the input collaborator queried by input-driven movement.
type AxisSource interface {
	AxisValue(axis Axis) float64
}

// ActionSource is the input collaborator queried for one-shot actions.
type ActionSource interface {
	ActionJustTriggered(action Action) bool
}

// InputFrame is the input state for a single simulation tick: the actions
// triggered during the tick, the axis values and the pointer column.
type InputFrame struct {
	Actions map[Action]bool
	Axes    map[Axis]float64

	// PointerX is the pointer column as a fraction of the screen width in
	// [0, 1], valid when HasPointer is set.
	PointerX   float64
	HasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Axes:    make(map[Axis]float64),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// ActionJustTriggered implements ActionSource.
func (f InputFrame) ActionJustTriggered(a Action) bool {
	return f.Has(a)
}

// SetAxis records an axis value, clamped into [-1, 1].
// Non-finite values are stored as 0.
func (f *InputFrame) SetAxis(axis Axis, v float64) {
	if f.Axes == nil {
		f.Axes = make(map[Axis]float64)
	}
	if !IsFinite(v) {
		v = 0
	}
	f.Axes[axis] = ClampF(v, -1, 1)
}

// AxisValue implements AxisSource. Unset axes read as 0.
func (f InputFrame) AxisValue(axis Axis) float64 {
	if f.Axes == nil {
		return 0
	}
	return f.Axes[axis]
}

// Clear resets all actions and axes for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Axes {
		delete(f.Axes, k)
	}
	f.HasPointer = false
	f.PointerX = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Axes {
		clone.Axes[k] = v
	}
	clone.PointerX = f.PointerX
	clone.HasPointer = f.HasPointer
	return clone
}
