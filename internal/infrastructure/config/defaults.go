package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "snakeladders.db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	// Game defaults
	if cfg.Game.DiceMaxPoints == 0 {
		cfg.Game.DiceMaxPoints = 12
	}
	if cfg.Game.HazardCount == 0 {
		cfg.Game.HazardCount = 14
	}
	if cfg.Game.MinGap == 0 {
		cfg.Game.MinGap = 10
	}
	if cfg.Game.MaxGap == 0 {
		cfg.Game.MaxGap = 40
	}
	if cfg.Game.RollWindow == 0 {
		cfg.Game.RollWindow = 15 * time.Second
	}
	if cfg.Game.LadderWindow == 0 {
		cfg.Game.LadderWindow = 5 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
