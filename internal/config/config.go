// Package config provides YAML-based scene configuration loading and
// difficulty management for raincatch.
package config

import (
	"time"

	"github.com/vovakirdan/raincatch/internal/sim/collision"
)

// SceneConfig contains all configuration for a raincatch scene.
type SceneConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Bucket     BucketConfig     `yaml:"bucket"`
	Droplets   DropletConfig    `yaml:"droplets"`
	Shapes     ShapesConfig     `yaml:"shapes"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Collision  CollisionConfig  `yaml:"collision"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the world size in world units. The renderer scales
// the field onto the terminal.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BucketConfig defines the player-controlled bucket.
type BucketConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
	Speed  float64 `yaml:"speed"` // units per second at full axis
}

// DropletConfig defines the falling droplets.
type DropletConfig struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Margin          float64 `yaml:"margin"`       // horizontal spawn margin
	FallSpeed       float64 `yaml:"fall_speed"`   // initial speed of the first droplet
	FallStep        float64 `yaml:"fall_step"`    // extra initial speed per droplet index
	Stagger         float64 `yaml:"stagger"`      // vertical spacing of initial spawns
	BottomY         float64 `yaml:"bottom_y"`     // y at which a droplet counts as missed
	ResetOffset     float64 `yaml:"reset_offset"` // respawn height above the field
	RespawnSpeed    float64 `yaml:"respawn_speed"`
	Gravity         float64 `yaml:"gravity"`
	AccelerationY   float64 `yaml:"acceleration_y"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	MaxDropSpeed    float64 `yaml:"max_drop_speed"`
	BounceDamping   float64 `yaml:"bounce_damping"`
	BounceKick      float64 `yaml:"bounce_kick"` // max random horizontal kick
	SidePush        float64 `yaml:"side_push"`   // speed added on side bounces
}

// ShapesConfig defines the obstacles.
type ShapesConfig struct {
	Triangle ShapeConfig `yaml:"triangle"`
	Circle   ShapeConfig `yaml:"circle"`
	Square   ShapeConfig `yaml:"square"`
}

// ShapeConfig places one obstacle. X and Y are fractions of the field.
type ShapeConfig struct {
	Enabled         bool    `yaml:"enabled"`
	X               float64 `yaml:"x"`
	Y               float64 `yaml:"y"`
	Radius          float64 `yaml:"radius"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	VelocityX       float64 `yaml:"velocity_x"`
	VelocityY       float64 `yaml:"velocity_y"`
}

// GameplayConfig defines win/lose rules.
type GameplayConfig struct {
	MissLimit      int  `yaml:"miss_limit"` // 0 = endless
	FaultyObstacle bool `yaml:"faulty_obstacle"`
	// RetireCaught removes caught droplets instead of respawning them;
	// difficulty progression tops the count back up.
	RetireCaught   bool `yaml:"retire_caught"`
}

// CollisionConfig mirrors collision.Config in YAML form.
type CollisionConfig struct {
	Hardened          bool          `yaml:"hardened"`
	BreakerThreshold  int           `yaml:"breaker_threshold"`
	BreakerCooldown   time.Duration `yaml:"breaker_cooldown"`
	FrameErrorBudget  int           `yaml:"frame_error_budget"`
	ObjectErrorBudget int           `yaml:"object_error_budget"`
}

// Registry converts the YAML form into the collision registry config.
func (c CollisionConfig) Registry() collision.Config {
	return collision.Config{
		Hardened:          c.Hardened,
		BreakerThreshold:  c.BreakerThreshold,
		BreakerCooldown:   c.BreakerCooldown,
		FrameErrorBudget:  c.FrameErrorBudget,
		ObjectErrorBudget: c.ObjectErrorBudget,
	}
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to max drop speed at max difficulty
	ExtraDroplets   int     `yaml:"extra_droplets"`   // Droplets added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", ErrUnknownPreset
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
