// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Vegetob VegetobConfig `yaml:"vegetob"`
	Erbast  SpeciesConfig `yaml:"erbast"`
	Carviz  SpeciesConfig `yaml:"carviz"`
	Seeding SeedingConfig `yaml:"seeding"`
}

// WorldConfig holds grid dimensions and continent generation settings.
type WorldConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	Generator    string  `yaml:"generator"`     // "bernoulli" or "simplex"
	WaterProb    float64 `yaml:"water_prob"`    // interior water probability (bernoulli)
	SeaLevel     float64 `yaml:"sea_level"`     // elevation below this is water (simplex)
	SimplexScale float64 `yaml:"simplex_scale"` // noise feature size in cells (simplex)
}

// VegetobConfig holds the ground resource parameters.
type VegetobConfig struct {
	GrowthRate int `yaml:"growth_rate"` // density gained per day
	MaxDensity int `yaml:"max_density"` // density ceiling per cell
}

// SpeciesConfig holds the per-species constant set.
// FightBonus and JoinThreshold only apply to carnivores; they are zero
// for the herbivore entry.
type SpeciesConfig struct {
	MaxEnergy     int     `yaml:"max_energy"`
	MaxLifetime   int     `yaml:"max_lifetime"`
	MinLifetime   int     `yaml:"min_lifetime"` // below this the animal is terminated
	AgingCost     int     `yaml:"aging_cost"`   // energy lost every 10th day of age
	MaxGroup      int     `yaml:"max_group"`
	Neighborhood  int     `yaml:"neighborhood"` // movement search radius
	MinMovement   float64 `yaml:"min_movement"`
	MaxMovement   float64 `yaml:"max_movement"`
	HungerDivisor float64 `yaml:"hunger_divisor"`
	EatBonus      float64 `yaml:"eat_bonus"`
	FightBonus    float64 `yaml:"fight_bonus"`
	JoinThreshold float64 `yaml:"join_threshold"`
}

// SeedingConfig holds the initial population ranges.
type SeedingConfig struct {
	HerdsMin  int `yaml:"herds_min"`
	HerdsMax  int `yaml:"herds_max"`
	PridesMin int `yaml:"prides_min"`
	PridesMax int `yaml:"prides_max"`
	ErbastMin int `yaml:"erbast_min"`
	ErbastMax int `yaml:"erbast_max"`
	CarvizMin int `yaml:"carviz_min"`
	CarvizMax int `yaml:"carviz_max"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedded defaults invalid: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration from a YAML file layered over the embedded
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.World.Rows < 3 || c.World.Cols < 3 {
		return fmt.Errorf("world grid %dx%d too small: the border is always water", c.World.Rows, c.World.Cols)
	}
	switch c.World.Generator {
	case "bernoulli", "simplex":
	default:
		return fmt.Errorf("unknown generator %q", c.World.Generator)
	}
	if c.World.WaterProb < 0 || c.World.WaterProb > 1 {
		return fmt.Errorf("water_prob %v out of [0,1]", c.World.WaterProb)
	}
	if c.Vegetob.MaxDensity <= 0 {
		return fmt.Errorf("vegetob max_density must be positive, got %d", c.Vegetob.MaxDensity)
	}
	if c.Vegetob.GrowthRate < 0 {
		return fmt.Errorf("vegetob growth_rate must not be negative, got %d", c.Vegetob.GrowthRate)
	}
	for _, sp := range []struct {
		name string
		s    SpeciesConfig
	}{{"erbast", c.Erbast}, {"carviz", c.Carviz}} {
		if sp.s.MaxEnergy <= 0 {
			return fmt.Errorf("%s max_energy must be positive", sp.name)
		}
		if sp.s.MaxLifetime < 1 {
			return fmt.Errorf("%s max_lifetime must be at least 1", sp.name)
		}
		if sp.s.MinLifetime < 1 || sp.s.MinLifetime > sp.s.MaxLifetime {
			return fmt.Errorf("%s min_lifetime %d out of [1, max_lifetime]", sp.name, sp.s.MinLifetime)
		}
		if sp.s.MaxGroup <= 0 {
			return fmt.Errorf("%s max_group must be positive", sp.name)
		}
		if sp.s.Neighborhood < 1 {
			return fmt.Errorf("%s neighborhood must be at least 1", sp.name)
		}
		if sp.s.HungerDivisor <= 1 {
			return fmt.Errorf("%s hunger_divisor must exceed 1 so hunger strictly lowers attitude", sp.name)
		}
	}
	if c.Seeding.HerdsMin < 0 || c.Seeding.HerdsMax < c.Seeding.HerdsMin {
		return fmt.Errorf("herd seeding range [%d, %d] invalid", c.Seeding.HerdsMin, c.Seeding.HerdsMax)
	}
	if c.Seeding.PridesMin < 0 || c.Seeding.PridesMax < c.Seeding.PridesMin {
		return fmt.Errorf("pride seeding range [%d, %d] invalid", c.Seeding.PridesMin, c.Seeding.PridesMax)
	}
	if c.Seeding.ErbastMin < 1 || c.Seeding.ErbastMax < c.Seeding.ErbastMin {
		return fmt.Errorf("erbast seeding range [%d, %d] invalid", c.Seeding.ErbastMin, c.Seeding.ErbastMax)
	}
	if c.Seeding.CarvizMin < 1 || c.Seeding.CarvizMax < c.Seeding.CarvizMin {
		return fmt.Errorf("carviz seeding range [%d, %d] invalid", c.Seeding.CarvizMin, c.Seeding.CarvizMax)
	}
	return nil
}
