package main

import (
	"fmt"
	"log"
	"os"

	"github.com/zivolabs/zivo/internal/config"
	"github.com/zivolabs/zivo/internal/history"
)

// loadConfig loads ~/.zivo/config.json or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// openHistory opens the watch history database or fatals.
func openHistory(cfg *config.Config) *history.Store {
	st, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		log.Fatalf("failed to open history database: %v", err)
	}
	return st
}

// requireUserID returns the configured user id or fatals.
func requireUserID(cfg *config.Config) string {
	if cfg.API.UserID == "" {
		fmt.Fprintln(os.Stderr, "error: no user id configured")
		fmt.Fprintln(os.Stderr, "  export ZIVO_USER_ID=... or edit ~/.zivo/config.json")
		os.Exit(1)
	}
	return cfg.API.UserID
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
