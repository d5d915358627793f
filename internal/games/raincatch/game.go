// Package raincatch implements the rain-catching scene: a bucket catches
// falling droplets that bounce off drifting and rotating obstacles.
// The storm variant adds more droplets, gravity and a faulty obstacle.
package raincatch

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raincatch/internal/config"
	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/registry"
	"github.com/vovakirdan/raincatch/internal/sim/collision"
	"github.com/vovakirdan/raincatch/internal/sim/movement"
	"github.com/vovakirdan/raincatch/internal/sim/world"
)

// Scene IDs.
const (
	SceneRaincatch = "raincatch"
	SceneStorm     = "storm"
)

// Sound names.
const (
	SoundClick  = "click"
	SoundSplash = "splash"
	SoundMiss   = "miss"
)

// Collision types.
var (
	bucketType    = collision.NewType("bucket", true, true)
	dropletType   = collision.NewType("droplet", false, true)
	shapeType     = collision.NewType("shape", true, false)
	lightningType = collision.NewType("lightning", true, true)
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by scenes created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the raincatch scene logic.
type Game struct {
	id    string
	title string

	runtime    core.RuntimeConfig
	cfg        config.SceneConfig
	difficulty *config.DifficultyManager
	world      *world.World
	sound      core.MutableSound
	rng        *rand.Rand
	log        *log.Logger

	input     core.InputFrame // axis source for the bucket
	bucket    *bucket
	droplets  []*droplet
	shapes    []*shape
	lightning *shape

	score     int
	missed    int
	strikes   int
	spawned   int
	tickCount int
	gameOver  bool
	paused    bool
	mouseMode bool

	view viewport
}

// New creates the classic raincatch scene.
func New() *Game {
	return &Game{id: SceneRaincatch, title: "Rain Catch", sound: &core.NopSound{}}
}

// NewStorm creates the storm variant.
func NewStorm() *Game {
	return &Game{id: SceneStorm, title: "Rain Catch: Storm", sound: &core.NopSound{}}
}

// ID returns the unique identifier for this scene.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this scene.
func (g *Game) Title() string {
	return g.title
}

// SetSound replaces the audio collaborator. A nil player silences the scene.
func (g *Game) SetSound(p core.MutableSound) {
	if p == nil {
		p = &core.NopSound{}
	}
	g.sound = p
}

// Reset builds or rebuilds the scene.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime
	g.log = logger.WithPrefix(g.id)

	// Load scene config
	cfg, err := config.Load(g.id, configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "error", err)
	}

	// Apply difficulty preset if set
	config.ApplyPreset(&cfg, difficultyPreset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	if g.world != nil {
		if err := g.world.Teardown(); err != nil {
			g.log.Warn("teardown failed", "error", err)
		}
	}
	g.world = world.New(
		world.WithLogger(g.log),
		world.WithCollisionConfig(cfg.Collision.Registry()),
	)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.input = core.NewInputFrame()
	g.droplets = nil
	g.shapes = nil
	g.lightning = nil
	g.score = 0
	g.missed = 0
	g.strikes = 0
	g.spawned = 0
	g.tickCount = 0
	g.gameOver = false
	g.paused = false
	g.mouseMode = false

	if err := g.build(); err != nil {
		return fmt.Errorf("build %s: %w", g.id, err)
	}
	g.log.Info("scene ready",
		"droplets", len(g.droplets), "shapes", len(g.shapes), "seed", runtime.Seed)
	return nil
}

// build spawns every actor.
func (g *Game) build() error {
	b, err := g.newBucket()
	if err != nil {
		return err
	}
	g.bucket = b

	for i := 0; i < g.cfg.Droplets.Count; i++ {
		if err := g.addDroplet(); err != nil {
			return err
		}
	}

	sc := g.cfg.Shapes
	if sc.Triangle.Enabled {
		s, err := g.newTriangle(sc.Triangle)
		if err != nil {
			return err
		}
		g.shapes = append(g.shapes, s)
	}
	if sc.Circle.Enabled {
		s, err := g.newCircle(sc.Circle)
		if err != nil {
			return err
		}
		g.shapes = append(g.shapes, s)
	}
	if sc.Square.Enabled {
		s, err := g.newSquare(sc.Square)
		if err != nil {
			return err
		}
		g.shapes = append(g.shapes, s)
	}
	if g.cfg.Gameplay.FaultyObstacle {
		s, err := g.newLightning()
		if err != nil {
			return err
		}
		g.lightning = s
	}
	return nil
}

// Step advances the scene by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if g.handleActions(in) {
		return core.StepResult{State: g.State()}
	}

	g.input = in
	if g.mouseMode && in.HasPointer {
		g.bucket.follow(in.PointerX)
	}

	g.applyDifficulty()

	g.tickCount++
	if err := g.world.Step(g.runtime.Delta()); err != nil {
		g.log.Debug("step reported failures", "frame", g.world.Frame(), "error", err)
	}

	if limit := g.cfg.Gameplay.MissLimit; limit > 0 && g.missed >= limit {
		g.gameOver = true
		g.log.Info("game over", "score", g.score, "missed", g.missed)
	}

	return core.StepResult{State: g.State()}
}

// handleActions applies the one-shot actions of a tick. It reports whether
// the tick ends there: the game is over or paused.
func (g *Game) handleActions(actions core.ActionSource) bool {
	if actions.ActionJustTriggered(core.ActionToggleMute) {
		g.sound.SetMuted(!g.sound.Muted())
	}

	if g.gameOver {
		if actions.ActionJustTriggered(core.ActionRestart) {
			if err := g.Reset(g.runtime); err != nil {
				g.log.Error("restart failed", "error", err)
			}
		}
		return true
	}

	if actions.ActionJustTriggered(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return true
	}

	if actions.ActionJustTriggered(core.ActionToggleMouse) {
		g.setMouseMode(!g.mouseMode)
	}
	return false
}

// setMouseMode switches the bucket between keyboard and pointer control.
func (g *Game) setMouseMode(on bool) {
	g.mouseMode = on
	if on {
		g.bucket.motion.Disable()
	} else {
		g.bucket.motion.Enable()
	}
}

// applyDifficulty raises the droplets' speed cap and adds droplets as the
// score grows.
func (g *Game) applyDifficulty() {
	maxSpeed := g.difficulty.Speed(g.cfg.Droplets.MaxDropSpeed, g.score, g.tickCount)
	for _, d := range g.droplets {
		_ = d.motion.SetMaxDropSpeed(maxSpeed)
	}

	want := g.difficulty.Droplets(g.cfg.Droplets.Count, g.score, g.tickCount)
	for len(g.droplets) < want {
		if err := g.addDroplet(); err != nil {
			g.log.Warn("could not add droplet", "error", err)
			return
		}
	}
}

// State returns the current scene state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Missed:   g.missed,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Muted:    g.sound.Muted(),
	}
}

// Metrics returns the collision diagnostics.
func (g *Game) Metrics() collision.Metrics {
	if g.world == nil {
		return collision.Metrics{}
	}
	return g.world.Collisions().Metrics()
}

// Frame returns the number of simulated frames.
func (g *Game) Frame() uint64 {
	if g.world == nil {
		return 0
	}
	return g.world.Frame()
}

// MouseMode reports whether the bucket follows the pointer.
func (g *Game) MouseMode() bool {
	return g.mouseMode
}

// Close releases the scene's world.
func (g *Game) Close() error {
	if g.world == nil {
		return nil
	}
	err := g.world.Teardown()
	g.world = nil
	return err
}

func (g *Game) play(name string) {
	if !g.sound.Muted() {
		g.sound.PlaySound(name)
	}
}

// fieldDistribution returns a seeded uniform distribution over the columns a
// droplet may spawn in.
func (g *Game) fieldDistribution(salt int64) (*movement.Uniform, error) {
	d := g.cfg.Droplets
	return movement.NewUniform(d.Margin, g.cfg.Field.Width-d.Size-d.Margin, g.runtime.Seed+salt)
}

// Register the scenes with the registry
func init() {
	registry.Register(SceneRaincatch, func() registry.Scene {
		return New()
	})
	registry.Register(SceneStorm, func() registry.Scene {
		return NewStorm()
	})
}
