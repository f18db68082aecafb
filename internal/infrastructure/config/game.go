package config

import "time"

// GameConfig holds gameplay defaults
type GameConfig struct {
	// Starting maximum dice value
	DiceMaxPoints int `mapstructure:"dice_max_points" validate:"min=1"`

	// Random hazard generation parameters
	HazardCount int `mapstructure:"hazard_count" validate:"min=1"`
	MinGap      int `mapstructure:"min_gap" validate:"min=1"`
	MaxGap      int `mapstructure:"max_gap" validate:"min=1"`

	// Player-visible decision windows
	RollWindow   time.Duration `mapstructure:"roll_window"`
	LadderWindow time.Duration `mapstructure:"ladder_window"`
}
