package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jyang234/dayplan/internal/config"
	"github.com/jyang234/dayplan/internal/core"
	"github.com/jyang234/dayplan/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and storage status",
	Long: `Display dayplan status including:
- Configuration summary
- Secret presence
- SQLite storage status and row counts`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Dayplan Status")
	fmt.Println(strings.Repeat("=", 40))

	fmt.Println("\nConfiguration:")
	fmt.Printf("  Config file: %s\n", config.Path())
	fmt.Printf("  Listen addr: %s\n", cfg.Server.Addr)
	fmt.Printf("  Database:    %s\n", cfg.Storage.DBPath)
	fmt.Printf("  Work hours:  %.1f\n", cfg.Planning.DefaultWorkHours)
	fmt.Printf("  Cache TTL:   %dm\n", cfg.Cache.TaskTTLMinutes)

	fmt.Println("\nSecrets:")
	fmt.Printf("  Todoist token: %s\n", keyStatus(cfg.TodoistToken))
	fmt.Printf("  Password:      %s\n", keyStatus(cfg.Password))

	fmt.Println("\nConnecting to storage...")
	store, err := storage.NewStore(cfg.Storage.DBPath)
	if err != nil {
		fmt.Printf("  Status:    FAILED (%s)\n", err)
		return nil // Don't fail command, just report status
	}
	defer store.Close()

	fmt.Println("  Status:    CONNECTED")

	allocations, err := store.CountAllocations(core.DefaultUserID)
	if err == nil {
		fmt.Printf("\nAllocations:  %d\n", allocations)
	}
	entries, err := store.CountTimeEntries(core.DefaultUserID)
	if err == nil {
		fmt.Printf("Time entries: %d\n", entries)
	}

	return nil
}

func keyStatus(value string) string {
	if value == "" {
		return "not set"
	}
	return "set"
}
