package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/pixel-snake/internal/games/snake"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "snake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	got, err := cfg.Rules()
	if err != nil {
		t.Fatalf("Rules() failed: %v", err)
	}
	want := snake.DefaultRules()
	if got.GridSize != want.GridSize || got.CornerBlock != want.CornerBlock ||
		got.Start != want.Start || got.StartDirection != want.StartDirection ||
		got.InitialFood != want.InitialFood || got.InitialSpeed != want.InitialSpeed ||
		got.MinSpeed != want.MinSpeed || got.SpeedStep != want.SpeedStep ||
		got.MilestoneEvery != want.MilestoneEvery || got.MaxPlacementAttempts != want.MaxPlacementAttempts {
		t.Errorf("Embedded rules = %+v, expected %+v", got, want)
	}
}

func TestLoadSnakeCustomPathKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
grid:
  size: 21
speed:
  initial_ms: 100
`)

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Grid.Size != 21 || cfg.Speed.InitialMS != 100 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.Speed.MinMS != 80 || cfg.Snake.Direction != "up" || cfg.Milestone.Every != 5 {
		t.Errorf("Unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadSnakeUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".pixelsnake", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "grid:\n  corner_block: 0\n")

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Grid.CornerBlock != 0 {
		t.Errorf("CornerBlock = %d, expected 0 from user config", cfg.Grid.CornerBlock)
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	if _, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	path := writeConfig(t, t.TempDir(), "grid: [not, a, map\n")
	if _, err := LoadSnake(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestRulesConversion(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Grid.ExtraWalls = []PointConfig{{X: 3, Y: 3}}
	cfg.Snake.Direction = "Left"

	r, err := cfg.Rules()
	if err != nil {
		t.Fatalf("Rules() failed: %v", err)
	}
	if r.StartDirection != snake.DirLeft {
		t.Errorf("StartDirection = %v, expected left", r.StartDirection)
	}
	if len(r.ExtraWalls) != 1 || r.ExtraWalls[0] != (snake.Point{X: 3, Y: 3}) {
		t.Errorf("ExtraWalls = %v, expected [(3,3)]", r.ExtraWalls)
	}
	if r.SpeedStep != 10*time.Millisecond {
		t.Errorf("SpeedStep = %v, expected 10ms", r.SpeedStep)
	}
}

func TestRulesConversionErrors(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Snake.Direction = "sideways"
	if _, err := cfg.Rules(); err == nil {
		t.Error("Expected error for unknown direction")
	}

	cfg = DefaultSnakeConfig()
	cfg.Speed.MinMS = 500
	if _, err := cfg.Rules(); !errors.Is(err, snake.ErrInvalidRules) {
		t.Errorf("Rules() error = %v, expected ErrInvalidRules", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		err  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
		if tc.err && !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("ParsePreset(%q) error = %v, expected ErrUnknownPreset", tc.in, err)
		}
		if !tc.err && err != nil {
			t.Errorf("ParsePreset(%q) unexpected error: %v", tc.in, err)
		}
	}
}

func TestPresetsProduceValidRules(t *testing.T) {
	for _, p := range Presets {
		t.Run(string(p), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplySnakePreset(&cfg, p)
			r, err := cfg.Rules()
			if err != nil {
				t.Fatalf("Rules() failed: %v", err)
			}
			if IsFixedPreset(p) && r.SpeedStep != 0 {
				t.Errorf("Fixed preset should not speed up, step = %v", r.SpeedStep)
			}
		})
	}

	easy, hard := DefaultSnakeConfig(), DefaultSnakeConfig()
	ApplySnakePreset(&easy, DifficultyEasy)
	ApplySnakePreset(&hard, DifficultyHard)
	if easy.Speed.InitialMS <= hard.Speed.InitialMS {
		t.Errorf("Easy should start slower than hard: %d vs %d", easy.Speed.InitialMS, hard.Speed.InitialMS)
	}
}

func TestMarshalRoundTripsThroughLoader(t *testing.T) {
	cfg := DefaultSnakeConfig()
	ApplySnakePreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "snake.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if loaded.Speed != cfg.Speed || loaded.Milestone != cfg.Milestone {
		t.Errorf("Loaded %+v, expected %+v", loaded, cfg)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML()) == 0 {
		t.Error("Embedded default config is empty")
	}
}
