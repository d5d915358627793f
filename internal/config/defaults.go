package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/raincatch.yaml
var defaultRaincatchYAML []byte

//go:embed defaults/storm.yaml
var defaultStormYAML []byte

// DefaultSceneConfig returns the hard-coded raincatch configuration, used
// when even the embedded YAML cannot be parsed.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Field: FieldConfig{Width: 800, Height: 480},
		Bucket: BucketConfig{
			Width:  64,
			Height: 40,
			Y:      20,
			Speed:  300,
		},
		Droplets: DropletConfig{
			Count:           5,
			Size:            32,
			Margin:          20,
			FallSpeed:       120,
			FallStep:        30,
			Stagger:         80,
			BottomY:         -50,
			ResetOffset:     40,
			RespawnSpeed:    60,
			SpeedMultiplier: 1,
			MaxDropSpeed:    300,
			BounceDamping:   0.65,
			BounceKick:      80,
			SidePush:        30,
		},
		Shapes: ShapesConfig{
			Triangle: ShapeConfig{Enabled: true, X: 0.25, Y: 0.6, Radius: 30, AngularVelocity: 90},
			Circle:   ShapeConfig{Enabled: true, X: 0.5, Y: 0.5, Radius: 20, VelocityX: 100, VelocityY: 80},
			Square:   ShapeConfig{Enabled: true, X: 0.75, Y: 0.4, Radius: 25},
		},
		Gameplay: GameplayConfig{MissLimit: 10},
		Collision: CollisionConfig{
			Hardened:         true,
			BreakerThreshold: 5,
			BreakerCooldown:  2 * time.Second,
			FrameErrorBudget: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a scene.
func GetDefaultYAML(sceneID string) []byte {
	switch sceneID {
	case "raincatch":
		return defaultRaincatchYAML
	case "storm":
		return defaultStormYAML
	default:
		return nil
	}
}
