package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is returned when a loaded config fails validation.
	ErrInvalidConfig = errors.New("config: invalid scene config")
	// ErrUnknownPreset is returned for an unrecognised difficulty preset.
	ErrUnknownPreset = errors.New("config: unknown difficulty preset")
)

// Loader resolves scene configuration files.
type Loader struct {
	Home string // user home; "" skips the user config directory
	Dir  string // working directory holding configs/; "" means "."
}

// DefaultLoader uses the current user's home and working directory.
func DefaultLoader() Loader {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Loader{Home: home, Dir: "."}
}

// Load loads a scene configuration with the default loader.
func Load(sceneID, customPath string) (SceneConfig, error) {
	return DefaultLoader().Load(sceneID, customPath)
}

// Load loads the configuration for a scene.
// Search order: customPath -> ~/.raincatch/configs/<scene>.yaml ->
// ./configs/<scene>.yaml -> embedded default -> hard-coded default.
// Files are applied on top of the embedded default, so partial files work.
func (l Loader) Load(sceneID, customPath string) (SceneConfig, error) {
	base := l.embedded(sceneID)
	filename := sceneID + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := overlay(base, data)
		if err != nil {
			return base, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := Validate(cfg); err != nil {
			return base, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range l.searchPaths(filename) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := overlay(base, data)
		if err != nil || Validate(cfg) != nil {
			continue
		}
		return cfg, nil
	}

	return base, nil
}

// searchPaths lists the implicit config locations in priority order.
func (l Loader) searchPaths(filename string) []string {
	var paths []string
	if l.Home != "" {
		paths = append(paths, filepath.Join(l.Home, ".raincatch", "configs", filename))
	}
	dir := l.Dir
	if dir == "" {
		dir = "."
	}
	return append(paths, filepath.Join(dir, "configs", filename))
}

// embedded parses the embedded default for a scene, falling back to the
// hard-coded default.
func (l Loader) embedded(sceneID string) SceneConfig {
	data := GetDefaultYAML(sceneID)
	if data == nil {
		return DefaultSceneConfig()
	}
	cfg, err := overlay(DefaultSceneConfig(), data)
	if err != nil {
		return DefaultSceneConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// overlay decodes data on top of base. Unknown keys are rejected.
func overlay(base SceneConfig, data []byte) (SceneConfig, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, err
	}
	return cfg, nil
}

// Validate checks that a config describes a playable scene.
func Validate(cfg SceneConfig) error {
	switch {
	case cfg.Field.Width <= 0 || cfg.Field.Height <= 0:
		return fmt.Errorf("%w: field must have a positive size", ErrInvalidConfig)
	case cfg.Bucket.Width <= 0 || cfg.Bucket.Height <= 0:
		return fmt.Errorf("%w: bucket must have a positive size", ErrInvalidConfig)
	case cfg.Bucket.Width > cfg.Field.Width:
		return fmt.Errorf("%w: bucket wider than the field", ErrInvalidConfig)
	case cfg.Bucket.Speed < 0:
		return fmt.Errorf("%w: bucket speed must not be negative", ErrInvalidConfig)
	case cfg.Droplets.Count < 0:
		return fmt.Errorf("%w: droplet count must not be negative", ErrInvalidConfig)
	case cfg.Droplets.Size <= 0:
		return fmt.Errorf("%w: droplet size must be positive", ErrInvalidConfig)
	case cfg.Droplets.Size+2*cfg.Droplets.Margin > cfg.Field.Width:
		return fmt.Errorf("%w: droplets do not fit the field", ErrInvalidConfig)
	case cfg.Droplets.MaxDropSpeed < 0 || cfg.Droplets.SpeedMultiplier < 0:
		return fmt.Errorf("%w: droplet speeds must not be negative", ErrInvalidConfig)
	case cfg.Gameplay.MissLimit < 0:
		return fmt.Errorf("%w: miss limit must not be negative", ErrInvalidConfig)
	case cfg.Collision.BreakerThreshold < 0 || cfg.Collision.FrameErrorBudget < 0 || cfg.Collision.ObjectErrorBudget < 0:
		return fmt.Errorf("%w: collision limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SceneConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		if cfg.Gameplay.MissLimit > 0 {
			cfg.Gameplay.MissLimit += 5
		}
		cfg.Bucket.Width = min(cfg.Bucket.Width*1.25, cfg.Field.Width)
	case DifficultyHard:
		if cfg.Gameplay.MissLimit > 0 {
			cfg.Gameplay.MissLimit = max(cfg.Gameplay.MissLimit/2, 1)
		}
		cfg.Bucket.Width *= 0.8
	}
}
