package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeEnv    string
	flagServeGrid   int
	flagServePilot  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake-gym SSH server",
	Long: `Start an SSH server that lets users connect and play an environment.

Each SSH connection gets its own environment instance.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakegym/host_key

Examples:
  snakegym serve                           # Listen on :23234 with auto-generated key
  snakegym serve --ssh :2222               # Listen on port 2222
  snakegym serve --host-key ./my_host_key  # Use specific host key
  snakegym serve --env snake-small-v0      # Serve the small grid

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeEnv, "env", "", "Environment preset (default from config)")
	serveCmd.Flags().IntVar(&flagServeGrid, "grid", 0, "Grid size override")
	serveCmd.Flags().StringVar(&flagServePilot, "autopilot", "greedy", "Policy sessions can toggle with P (empty disables)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, func(c *config.Config) {
		if flagServeEnv != "" {
			c.Env.ID = flagServeEnv
		}
		if flagServeGrid > 0 {
			c.Env.GridSize = flagServeGrid
		}
	})
	if err != nil {
		return err
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.EnvID = cfg.Env.ID
	srvCfg.GridSize = cfg.Env.GridSize
	srvCfg.Autopilot = flagServePilot
	srvCfg.TickRate = cfg.Render.FPS

	server, err := tui.NewSSHServer(srvCfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting snake-gym SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
