package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-snake/internal/core"
	"github.com/vovakirdan/pixel-snake/internal/platform/tui"
	"github.com/vovakirdan/pixel-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Pixel Snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the menu.
Scores are stored per-server (all users share the same leaderboard
and best score).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pixelsnake/host_key

Examples:
  pixelsnake serve                           # Listen on :23234 with auto-generated key
  pixelsnake serve --ssh :2222               # Listen on port 2222
  pixelsnake serve --host-key ./my_host_key  # Use specific host key
  pixelsnake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr, "pixelsnake-ssh")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// A server without a database would lose every score on restart
	store, err := storage.Open(flagDBPath)
	if err != nil {
		closeLog()
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	base := settings.base
	opts := tui.Options{
		Rules:    settings.rules,
		Store:    store,
		Logger:   logger,
		Config:   core.RuntimeConfig{Seed: flagSeed},
		Settings: &base,
		Preset:   settings.preset,
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, opts)
	if err != nil {
		store.Close()
		closeLog()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Pixel Snake SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		store.Close()
		closeLog()
		fail("server: %v", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
