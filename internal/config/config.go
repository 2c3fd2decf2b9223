// Package config provides YAML-based game configuration loading and
// difficulty presets for Pixel Snake.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/pixel-snake/internal/games/snake"
)

// ErrUnknownPreset is returned for a difficulty name that is not a preset.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid      SnakeGrid      `yaml:"grid"`
	Snake     SnakeStart     `yaml:"snake"`
	Food      SnakeFood      `yaml:"food"`
	Speed     SnakeSpeed     `yaml:"speed"`
	Milestone SnakeMilestone `yaml:"milestone"`
	Placement SnakePlacement `yaml:"placement"`
}

// PointConfig is a grid cell in YAML form.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SnakeGrid defines the field and its static walls.
type SnakeGrid struct {
	Size        int           `yaml:"size"`
	CornerBlock int           `yaml:"corner_block"` // Side of each corner tree block, 0 for none
	ExtraWalls  []PointConfig `yaml:"extra_walls,omitempty"`
}

// SnakeStart defines where the snake spawns.
type SnakeStart struct {
	Start     PointConfig `yaml:"start"`
	Direction string      `yaml:"direction"` // up, down, left or right
}

// SnakeFood defines the first food cell of every game.
type SnakeFood struct {
	Initial PointConfig `yaml:"initial"`
}

// SnakeSpeed defines the tick interval in milliseconds.
type SnakeSpeed struct {
	InitialMS int `yaml:"initial_ms"`
	MinMS     int `yaml:"min_ms"`
	StepMS    int `yaml:"step_ms"` // Decrease per milestone
}

// SnakeMilestone defines how often the game gets harder.
type SnakeMilestone struct {
	Every int `yaml:"every"` // Score period, 0 disables milestones
}

// SnakePlacement tunes random placement of food and stones.
type SnakePlacement struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Rules converts the config into validated engine rules.
func (c SnakeConfig) Rules() (snake.Rules, error) {
	dir, err := snake.ParseDirection(c.Snake.Direction)
	if err != nil {
		return snake.Rules{}, fmt.Errorf("config: snake.direction: %w", err)
	}

	walls := make([]snake.Point, 0, len(c.Grid.ExtraWalls))
	for _, w := range c.Grid.ExtraWalls {
		walls = append(walls, w.point())
	}

	r := snake.Rules{
		GridSize:             c.Grid.Size,
		CornerBlock:          c.Grid.CornerBlock,
		ExtraWalls:           walls,
		Start:                c.Snake.Start.point(),
		StartDirection:       dir,
		InitialFood:          c.Food.Initial.point(),
		InitialSpeed:         ms(c.Speed.InitialMS),
		MinSpeed:             ms(c.Speed.MinMS),
		SpeedStep:            ms(c.Speed.StepMS),
		MilestoneEvery:       c.Milestone.Every,
		MaxPlacementAttempts: c.Placement.MaxAttempts,
	}
	if err := r.Validate(); err != nil {
		return snake.Rules{}, fmt.Errorf("config: %w", err)
	}
	return r, nil
}

func (p PointConfig) point() snake.Point {
	return snake.Point{X: p.X, Y: p.Y}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
