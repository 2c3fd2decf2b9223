package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// GetDefaultYAML returns the embedded default snake.yaml.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}

// DefaultSnakeConfig returns the default snake configuration: a 15x15 field
// with 2x2 trees in every corner.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Size:        15,
			CornerBlock: 2,
		},
		Snake: SnakeStart{
			Start:     PointConfig{X: 7, Y: 7},
			Direction: "up",
		},
		Food: SnakeFood{
			Initial: PointConfig{X: 7, Y: 4},
		},
		Speed: SnakeSpeed{
			InitialMS: 150,
			MinMS:     80,
			StepMS:    10,
		},
		Milestone: SnakeMilestone{
			Every: 5,
		},
		Placement: SnakePlacement{
			MaxAttempts: 1024,
		},
	}
}
