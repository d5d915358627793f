package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/registry"
)

// Model is the Bubble Tea model for running a scene.
type Model struct {
	scene     registry.Scene
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	input     core.InputFrame
	axis      heldAxis
	state     core.GameState
	logger    *log.Logger
	shotDir   string
	quitting  bool
	holdTicks int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The terminal belongs to the program, so it
// should write to a file.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHoldTicks sets how long a steering key stays held.
func WithHoldTicks(n int) Option {
	return func(m *Model) { m.holdTicks = n }
}

// WithScreenshotDir sets where ctrl+s writes screenshots.
func WithScreenshotDir(dir string) Option {
	return func(m *Model) { m.shotDir = dir }
}

// NewModel creates a model for scene and resets the scene.
func NewModel(scene registry.Scene, cfg core.RuntimeConfig, opts ...Option) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		scene:   scene,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   core.NewInputFrame(),
		logger:  log.New(io.Discard),
		shotDir: filepath.Join(os.Getenv("HOME"), ".raincatch", "screenshots"),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.axis = newHeldAxis(m.holdTicks)
	m.help.Width = cfg.ScreenW

	if err := scene.Reset(cfg); err != nil {
		return m, fmt.Errorf("reset %s: %w", scene.ID(), err)
	}
	m.state = scene.State()
	m.logger.Info("scene started", "scene", scene.ID(), "seed", cfg.Seed,
		"size", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, dir := m.keys.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case dir != 0:
		m.axis.press(dir)
	case action == core.ActionRestart:
		if m.state.GameOver {
			m.input.Set(action)
		}
	case action != core.ActionNone:
		m.input.Set(action)
	}
	return m, nil
}

// handleMouse records the pointer column as a fraction of the width.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.input.PointerX = pointerFraction(msg.X, m.screen.Width())
	m.input.HasPointer = true
	return m, nil
}

func pointerFraction(col, width int) float64 {
	if width <= 1 {
		return 0.5
	}
	return core.ClampF(float64(col)/float64(width-1), 0, 1)
}

// handleResize processes window resize events. Scenes draw in world units
// scaled to the screen, so a resize never resets the scene.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick feeds the held axis and pending actions to the scene.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.input.SetAxis(core.AxisMoveX, m.axis.tick())

	prev := m.state
	m.state = m.scene.Step(m.input).State

	if m.state.GameOver && !prev.GameOver {
		m.axis.release()
		m.logger.Info("game over", "scene", m.scene.ID(), "score", m.state.Score, "missed", m.state.Missed)
	}
	if m.state.Paused != prev.Paused {
		m.logger.Debug("pause toggled", "paused", m.state.Paused)
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state.Paused && !m.state.GameOver {
		var diag *table.Model
		if inst, ok := m.scene.(registry.Instrumented); ok {
			t := NewDiagnosticsTable(inst.Metrics(), inst.Frame())
			diag = &t
		}
		panel := renderPausePanel(m.scene.Title()+": paused", diag, m.help.View(m.keys))
		return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, panel)
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last scene state seen by the model.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for scene and returns its final state.
func Run(scene registry.Scene, cfg core.RuntimeConfig, opts ...Option) (core.GameState, error) {
	model, err := NewModel(scene, cfg, opts...)
	if err != nil {
		return core.GameState{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return model.State(), err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return model.State(), nil
}
