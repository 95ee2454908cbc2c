package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddone/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with its own clock and board.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.oddone/host_key

Examples:
  oddone serve                           # Listen on :23235 with auto-generated key
  oddone serve --ssh :2222               # Listen on port 2222
  oddone serve --host-key ./my_host_key  # Use specific host key
  oddone serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		appConfig.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		appConfig.SSH.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		appConfig.SSH.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     appConfig.SSH.Address,
		HostKeyPath: appConfig.SSH.HostKeyPath,
		DBPath:      appConfig.Storage.Path,
		IdleTimeout: appConfig.SSH.IdleTimeout,
		Seed:        appConfig.Game.Seed,
		Theme:       appConfig.Theme,
		Logger:      logger.WithPrefix("oddone-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting oddone SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
