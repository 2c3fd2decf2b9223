package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-snake/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config as YAML, after --config and --difficulty are
applied. Use it as a starting point for a custom config file.

Config search order:
  1. --config <path>
  2. ~/.pixelsnake/configs/snake.yaml
  3. ./configs/snake.yaml
  4. built-in defaults

Examples:
  pixelsnake config
  pixelsnake config --difficulty hard > my-snake.yaml
  pixelsnake config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplySnakePreset(&cfg, preset)

	// Validate before printing so a broken file is reported, not echoed
	if _, err := cfg.Rules(); err != nil {
		fail("%v", err)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(out))
}
