package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPinball loads the pinball configuration.
// Search order: customPath -> ~/.pinball/configs/pinball.yaml -> ./configs/pinball.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides what it names.
func LoadPinball(customPath string) (PinballConfig, error) {
	cfg := defaultFromEmbed()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pinball.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := cfg
			if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pinball.yaml"); err == nil {
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// defaultFromEmbed decodes the embedded default YAML.
func defaultFromEmbed() PinballConfig {
	var cfg PinballConfig
	if err := yaml.Unmarshal(defaultPinballYAML, &cfg); err != nil {
		return DefaultPinballConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pinball", "configs", filename)
}

// Validate reports every field that would make the simulation misbehave.
func (c PinballConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Round.TickRate > 0, "round.tick_rate must be positive, got %d", c.Round.TickRate)
	check(c.Round.InitialTimer > 0, "round.initial_timer must be positive, got %g", c.Round.InitialTimer)
	check(c.Round.CountdownSteps >= 0, "round.countdown_steps must not be negative")
	check(c.Round.DisplayDivisor > 0, "round.display_divisor must be positive, got %d", c.Round.DisplayDivisor)
	check(c.Round.CriticalBelow <= c.Round.WarningBelow, "round.critical_below must not exceed round.warning_below")

	check(c.Board.Width > 0 && c.Board.Height > 0, "board size must be positive")
	check(c.Board.OutOfBoundsMin < c.Board.OutOfBoundsMax, "board out-of-bounds range is inverted")

	check(c.Ball.Radius > 0, "ball.radius must be positive")
	check(c.Ball.Mass > 0, "ball.mass must be positive")
	check(c.Ball.MaxSpeed > 0 && c.Ball.DuplicateMax > 0, "ball speed caps must be positive")

	check(c.Flipper.Moment > 0 && c.Flipper.Mass > 0, "flipper mass and moment must be positive")
	check(c.Flipper.RestAngle < c.Flipper.PressedAngle, "flipper.rest_angle must be below flipper.pressed_angle")
	check(c.Flipper.Press.MaxTorque >= 0 && c.Flipper.Rest.MaxTorque >= 0, "flipper max torque must not be negative")

	check(c.Items.SpawnDelayMin > 0 && c.Items.SpawnDelayMin <= c.Items.SpawnDelayMax, "items spawn delay range is invalid")
	check(c.Items.SpawnMinX <= c.Items.SpawnMaxX && c.Items.SpawnMinY <= c.Items.SpawnMaxY, "items spawn area is inverted")
	check(c.Items.Timeout > 0, "items.timeout must be positive")
	check(c.Items.SpawnAttempts > 0, "items.spawn_attempts must be positive")

	check(c.Rota.Targets > 0, "rota.targets must be positive, got %d", c.Rota.Targets)
	check(c.Rota.TimeLimit > 0, "rota.time_limit must be positive")
	check(c.Rota.Attempts > 0, "rota.attempts must be positive")
	check(c.Rota.AreaMinX <= c.Rota.AreaMaxX && c.Rota.AreaMinY <= c.Rota.AreaMaxY, "rota area is inverted")

	check(c.Boss.PlayerHealth > 0 && c.Boss.BossHealth > 0, "boss health values must be positive")
	check(c.Boss.AttackPeriod > 0 && c.Boss.MeteorPeriod > 0, "boss loop periods must be positive")

	return errors.Join(errs...)
}

// ApplyPinballPreset modifies the config based on a difficulty preset.
// DifficultyFixed and DifficultyNormal keep the configured values.
func ApplyPinballPreset(cfg *PinballConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Round.InitialTimer = 420
		cfg.Items.SpawnDelayUnit = 6
		cfg.Items.DuplicateBonus = 90
		cfg.Boss.BossHealth = 300
		cfg.Boss.LaserDamage = 50
		cfg.Ball.MaxSpeed = 850
	case DifficultyHard:
		cfg.Round.InitialTimer = 180
		cfg.Items.SpawnDelayUnit = 14
		cfg.Items.DuplicateBonus = 30
		cfg.Rota.TimeLimit = 25
		cfg.Boss.BossHealth = 800
		cfg.Boss.AttackPeriod = 3
		cfg.Ball.MaxSpeed = 1200
	}
}
