package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/raincatch/internal/core"
)

// DefaultHoldTicks is how many ticks a steering key stays held after its
// last press or auto-repeat.
const DefaultHoldTicks = 8

// KeyMap defines the key bindings for a running scene.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Pause      key.Binding
	Mute       key.Binding
	Mouse      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Mute, k.Mouse, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Mouse},
		{k.Pause, k.Mute, k.Restart},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Mouse: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "mouse mode"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action and a steering direction.
// dir is -1 or 1 for steering keys and 0 otherwise.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, dir float64) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, 0
	case key.Matches(msg, k.Left):
		return core.ActionNone, -1
	case key.Matches(msg, k.Right):
		return core.ActionNone, 1
	case key.Matches(msg, k.Pause):
		return core.ActionPause, 0
	case key.Matches(msg, k.Mute):
		return core.ActionToggleMute, 0
	case key.Matches(msg, k.Mouse):
		return core.ActionToggleMouse, 0
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, 0
	}
	return core.ActionNone, 0
}

// heldAxis turns discrete key presses into a continuous axis. Terminals
// report presses and auto-repeats but never releases, so a press holds the
// axis for a number of ticks and it decays to zero afterwards.
type heldAxis struct {
	value     float64
	remaining int
	hold      int
}

func newHeldAxis(hold int) heldAxis {
	if hold < 1 {
		hold = DefaultHoldTicks
	}
	return heldAxis{hold: hold}
}

// press holds the axis at v. Reversing direction takes effect at once.
func (a *heldAxis) press(v float64) {
	a.value = v
	a.remaining = a.hold
}

// release drops the axis immediately.
func (a *heldAxis) release() {
	a.value, a.remaining = 0, 0
}

// tick returns the axis value for this tick and ages the hold.
func (a *heldAxis) tick() float64 {
	if a.remaining <= 0 {
		a.value = 0
		return 0
	}
	a.remaining--
	return a.value
}
