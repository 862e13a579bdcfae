package tangent

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultCellSize = 2.0

// WorldConfig tunes the physics source driving collision events.
type WorldConfig struct {
	// Gravity acceleration applied to non-static bodies, in units/s².
	Gravity [2]float64 `yaml:"gravity"`
	// CellSize of the broadphase hash grid. Reasonable for objects ~1-2
	// units in size; defaults to 2.0.
	CellSize float64 `yaml:"cell_size"`
}

// SceneConfig is the top-level configuration for a scene.
type SceneConfig struct {
	Name  string      `yaml:"name"`
	Debug bool        `yaml:"debug"`
	World WorldConfig `yaml:"world"`
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:  [2]float64{0, -9.81},
		CellSize: defaultCellSize,
	}
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Name:  "scene",
		World: DefaultWorldConfig(),
	}
}

// ParseSceneConfig reads a YAML scene configuration. Unset fields keep their
// defaults.
func ParseSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

func (cfg SceneConfig) validate() error {
	if cfg.World.CellSize < 0 {
		return fmt.Errorf("scene config: cell_size must not be negative, got %v", cfg.World.CellSize)
	}
	return nil
}
