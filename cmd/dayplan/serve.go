package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jyang234/dayplan/internal/auth"
	"github.com/jyang234/dayplan/internal/config"
	"github.com/jyang234/dayplan/internal/core"
	"github.com/jyang234/dayplan/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	Long: `Start the dayplan web server.

Requires TODOIST_API_TOKEN and DAYPLAN_PASSWORD in the environment
(a local .env file is also read).

Examples:
  dayplan serve
  dayplan serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	planner, err := core.NewPlanner(cfg.PlannerConfig())
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}
	defer planner.Close()

	if cfg.Cache.RefreshSchedule != "" {
		refresher, err := planner.StartAutoRefresh(cfg.Cache.RefreshSchedule)
		if err != nil {
			return err
		}
		defer refresher.Stop()
	}

	sessions, err := auth.New(cfg.Password)
	if err != nil {
		return err
	}

	server := web.NewServer(planner, sessions)
	fmt.Printf("Starting dayplan server on %s\n", cfg.Server.Addr)
	return server.Run(cfg.Server.Addr)
}
