package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"xianverse/internal/domain/cultivation"
)

// Load returns the game tuning, starting from built-in defaults and applying
// overrides from the YAML file at path when one is given. Fields absent from
// the file keep their default values.
func Load(path string) (cultivation.Config, error) {
	cfg := cultivation.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg cultivation.Config) error {
	if len(cfg.TierLadder) == 0 {
		return fmt.Errorf("tier ladder must not be empty")
	}
	for i := 1; i < len(cfg.TierLadder); i++ {
		if cfg.TierLadder[i].Level <= cfg.TierLadder[i-1].Level {
			return fmt.Errorf("tier ladder levels must be strictly increasing at %q", cfg.TierLadder[i].Name)
		}
	}
	for _, kind := range []cultivation.ActivityKind{
		cultivation.ActivityPractice,
		cultivation.ActivityExplore,
		cultivation.ActivityMine,
	} {
		lo, hi := cfg.DurationBounds(kind)
		if lo <= 0 || hi < lo {
			return fmt.Errorf("invalid duration bounds for %s", kind)
		}
	}
	return nil
}
