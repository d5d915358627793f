// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/collision"
)

// ErrUnknownScene is returned by Create for an unregistered scene ID.
var ErrUnknownScene = errors.New("registry: unknown scene")

// Scene is the interface every playable scene implements.
// Scenes contain pure simulation logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, audio and terminal output.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "raincatch").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds or rebuilds the scene. Called once at start and again
	// when restarting after game over.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current scene into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current scene state.
	State() core.GameState
}

// Instrumented is implemented by scenes that expose collision diagnostics.
type Instrumented interface {
	Metrics() collision.Metrics
	Frame() uint64
}

// Audible is implemented by scenes that play sounds.
type Audible interface {
	SetSound(p core.MutableSound)
}

// Info contains metadata about a registered scene.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene package's init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}

	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
